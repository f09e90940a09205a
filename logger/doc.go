// Copyright © 2025 The Procwatch Project.

/*
Package logger samples the process table at a fixed interval for a fixed number of cycles,
appending each cycle to the process log, and summarizes the log when done or interrupted.

The logger package defines the following command line flags:
  - -cycles:   to set the number of sampling cycles (default 5)
  - -interval: to set the wait between cycles (default 10s)
*/
package logger
