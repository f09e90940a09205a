// Copyright © 2025 The Procwatch Project.

/*
Package menu implements the interactive process menu of the procwatch command. The menu lists
running processes, shows the detail of one process, and sends a termination request to one
process, reading choices line by line until the user quits.
*/
package menu
