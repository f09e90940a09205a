// Copyright © 2025 The Procwatch Project.

/*
Package process performs the following for the "procwatch" commands:
  - enumeration of the processes on the system through a Source
  - sampling of a snapshot, dropping processes that vanish or deny access while being read
  - inspection of, and termination requests to, a single process

The process package defines the following command line flag:
  - -inspect: to set the interval over which Inspect measures CPU usage (default 1s)
*/
package process
