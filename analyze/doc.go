// Copyright © 2025 The Procwatch Project.

/*
Package analyze summarizes the process log. Rows are grouped by process name, so a command's
footprint is tracked across restarts and pid reuse rather than per process instance.

The analyze package defines the following command line flags:
  - -top:    to set the count of consumers to report (default 5)
  - -format: to select the report format, text, yaml, or json (default text)
*/
package analyze
