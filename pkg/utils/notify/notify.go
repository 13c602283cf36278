package notify

import (
	"fmt"
	"io"
	"os"
	"strings"

	fcolor "github.com/fatih/color"
)

// Message type constants.
// Each type determines the message styling (color and symbol).
const (
	// ErrorType represents an error message (red, with ✗ symbol).
	ErrorType MessageType = iota
	// WarningType represents a warning message (yellow, with ⚠ symbol).
	WarningType
	// ActivityType represents an activity/progress message (default color, with ► symbol).
	ActivityType
	// SuccessType represents a success message (green, with ✔ symbol).
	SuccessType
	// InfoType represents an informational message (blue, with ℹ symbol).
	InfoType
)

// MessageType defines the type of notification message.
type MessageType int

// Message represents a notification message to be displayed to the user.
type Message struct {
	// Type determines the message styling (color, symbol).
	Type MessageType
	// Content is the main message text to display.
	Content string
	// Writer is the output destination. If nil, defaults to os.Stderr.
	Writer io.Writer
	// Args are format arguments for Content if it contains format specifiers.
	Args []any
}

// Errorf writes an error message to the writer.
func Errorf(writer io.Writer, format string, args ...any) {
	WriteMessage(Message{Type: ErrorType, Content: format, Args: args, Writer: writer})
}

// Warningf writes a warning message to the writer.
func Warningf(writer io.Writer, format string, args ...any) {
	WriteMessage(Message{Type: WarningType, Content: format, Args: args, Writer: writer})
}

// Activityf writes an activity/progress message to the writer.
func Activityf(writer io.Writer, format string, args ...any) {
	WriteMessage(Message{Type: ActivityType, Content: format, Args: args, Writer: writer})
}

// Successf writes a success message to the writer.
func Successf(writer io.Writer, format string, args ...any) {
	WriteMessage(Message{Type: SuccessType, Content: format, Args: args, Writer: writer})
}

// Infof writes an informational message to the writer.
func Infof(writer io.Writer, format string, args ...any) {
	WriteMessage(Message{Type: InfoType, Content: format, Args: args, Writer: writer})
}

// WriteMessage writes a formatted message based on the message configuration.
// The whole line is written with a single call so concurrent writers sharing a
// synchronized writer never interleave partial lines.
func WriteMessage(msg Message) {
	if msg.Writer == nil {
		msg.Writer = os.Stderr
	}

	content := msg.Content
	if len(msg.Args) > 0 {
		content = fmt.Sprintf(msg.Content, msg.Args...)
	}

	config := getMessageConfig(msg.Type)
	content = indentMultilineContent(content, config.symbol)

	_, err := config.color.Fprint(msg.Writer, config.symbol+content+"\n")
	handleNotifyError(err)
}

// messageConfig holds the styling configuration for each message type.
type messageConfig struct {
	symbol string
	color  *fcolor.Color
}

// getMessageConfig returns the styling configuration for a given message type.
func getMessageConfig(msgType MessageType) messageConfig {
	switch msgType {
	case ErrorType:
		return messageConfig{symbol: "✗ ", color: fcolor.New(fcolor.FgRed)}
	case WarningType:
		return messageConfig{symbol: "⚠ ", color: fcolor.New(fcolor.FgYellow)}
	case ActivityType:
		return messageConfig{symbol: "► ", color: fcolor.New(fcolor.Reset)}
	case SuccessType:
		return messageConfig{symbol: "✔ ", color: fcolor.New(fcolor.FgGreen)}
	case InfoType:
		return messageConfig{symbol: "ℹ ", color: fcolor.New(fcolor.FgBlue)}
	default:
		return messageConfig{symbol: "", color: fcolor.New(fcolor.Reset)}
	}
}

// handleNotifyError reports failures to print on stderr rather than returning them.
func handleNotifyError(err error) {
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "notify: failed to print message: %v\n", err)
	}
}

// indentMultilineContent aligns continuation lines with the text after the symbol.
func indentMultilineContent(content, symbol string) string {
	if symbol == "" || !strings.Contains(content, "\n") {
		return content
	}

	indent := strings.Repeat(" ", len([]rune(symbol)))
	lines := strings.Split(content, "\n")

	for i := 1; i < len(lines); i++ {
		if lines[i] == "" {
			continue
		}

		lines[i] = indent + lines[i]
	}

	return strings.Join(lines, "\n")
}
