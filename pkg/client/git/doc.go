// Package git reports the branch checked out in a working tree.
package git
