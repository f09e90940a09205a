// Copyright © 2025 The Procwatch Project.

/*
Package main implements the "procwatch" interactive process menu, which
  - lists running processes with their CPU and memory usage
  - inspects the detail of a process by PID
  - sends a termination request to a process by PID

Related commands are proclog, which logs process samples and summarizes the log, and procdash,
which displays a live terminal dashboard and serves the process table over HTTP.

The main package uses the following command line flag:
  - -inspect: to set the interval over which an inspected process' CPU usage is measured (default 1s)
*/
package main
