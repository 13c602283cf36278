package helpers

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/devantler-tech/pose/pkg/cli/ui/errorhandler"
	"github.com/spf13/cobra"
)

// PrettyFlag selects the name list format.
const PrettyFlag = "pretty"

// Name list formats.
const (
	PrettyFull    = "full"
	PrettyOneline = "oneline"
)

// ErrUnknownPretty is returned for a --pretty value other than full or oneline.
var ErrUnknownPretty = errors.New("unknown --pretty format")

// AddPrettyFlag registers --pretty on cmd.
func AddPrettyFlag(cmd *cobra.Command) {
	cmd.Flags().String(PrettyFlag, PrettyFull,
		fmt.Sprintf("Output format: %s (one per line) or %s (space separated)", PrettyFull, PrettyOneline))
}

// PrintNames writes names one per line, or space separated on a single line for
// PrettyOneline. An empty list prints nothing.
func PrintNames(out io.Writer, names []string, pretty string) error {
	var separator string

	switch pretty {
	case "", PrettyFull:
		separator = "\n"
	case PrettyOneline:
		separator = " "
	default:
		return errorhandler.UsageError(fmt.Errorf("%w: %q (expected %s or %s)",
			ErrUnknownPretty, pretty, PrettyFull, PrettyOneline))
	}

	if len(names) == 0 {
		return nil
	}

	_, err := fmt.Fprintln(out, strings.Join(names, separator))
	if err != nil {
		return fmt.Errorf("write names: %w", err)
	}

	return nil
}
