// Package notify writes colored, symbol-prefixed messages for CLI users.
//
// Message types are error (✗), warning (⚠), activity (►), success (✔) and info (ℹ).
// Colors are dropped automatically when the output is not a terminal or NO_COLOR is set.
package notify
