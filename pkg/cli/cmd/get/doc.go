// Package get provides the get command, which downloads a file over HTTP.
package get
