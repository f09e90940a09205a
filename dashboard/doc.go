// Copyright © 2025 The Procwatch Project.

/*
Package dashboard renders the terminal dashboard of the procdash command: the live process table
sorted by CPU, the top logged consumers, and the logged CPU and memory history of a selected
process name. Press q or Ctrl-C to quit, and the Up and Down arrows to select a process name.
*/
package dashboard
