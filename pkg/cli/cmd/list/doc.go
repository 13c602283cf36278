// Package list provides the list command and its subcommands, which print the names
// of compose document elements.
package list
