// Copyright © 2025 The Procwatch Project.

/*
Package store implements the append-only CSV log of process samples.

The log has the header row

	timestamp,pid,name,cpu_percent,memory_mb

and one row per sampled process. All rows of one logging cycle share a timestamp, and
timestamps never decrease down the file. Rows are only ever appended.

The store package defines the following command line flag:
  - -store: to set the path of the log (default process_log.csv)
*/
package store
