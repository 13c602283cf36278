package errorhandler_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/devantler-tech/pose/pkg/cli/ui/errorhandler"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	errTestBoom        = errors.New("boom")
	errOriginalFailure = errors.New("Error: original failure")
	errWrapped         = errors.New("wrapped")
)

type codedError struct {
	code int
}

func (e codedError) Error() string {
	return fmt.Sprintf("failed with %d", e.code)
}

func (e codedError) ExitCode() int {
	return e.code
}

func TestExecutorExecuteSuccess(t *testing.T) {
	t.Parallel()

	cmd := &cobra.Command{
		Use: "test",
		RunE: func(_ *cobra.Command, _ []string) error {
			return nil
		},
	}

	require.NoError(t, errorhandler.NewExecutor().Execute(cmd))
}

func TestExecutorExecuteNilCommand(t *testing.T) {
	t.Parallel()

	require.NoError(t, errorhandler.NewExecutor().Execute(nil))
}

func TestExecutorExecuteUnknownSubcommand(t *testing.T) {
	t.Parallel()

	root := &cobra.Command{Use: "test", Args: errorhandler.NoSubcommandArgs, RunE: func(*cobra.Command, []string) error {
		return nil
	}}
	root.AddCommand(&cobra.Command{Use: "valid"})
	root.SetArgs([]string{"invalid"})

	err := errorhandler.NewExecutor().Execute(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown command "invalid" for "test"`)
	assert.Contains(t, err.Error(), "Run 'test --help' for usage")
	assert.Equal(t, errorhandler.ExitUsage, errorhandler.ExitCode(err))
}

func TestExecutorExecuteUnknownFlag(t *testing.T) {
	t.Parallel()

	root := &cobra.Command{Use: "test", RunE: func(*cobra.Command, []string) error {
		return nil
	}}
	child := &cobra.Command{Use: "child", RunE: func(*cobra.Command, []string) error {
		return nil
	}}
	root.AddCommand(child)
	root.SetArgs([]string{"child", "--nope"})

	err := errorhandler.NewExecutor().Execute(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown flag: --nope")
	assert.Equal(t, errorhandler.ExitUsage, errorhandler.ExitCode(err))

	var cmdErr *errorhandler.CommandError

	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, "test child", cmdErr.Command())
}

func TestExecutorExecuteArgsValidation(t *testing.T) {
	t.Parallel()

	root := &cobra.Command{
		Use:  "test",
		Args: errorhandler.UsageArgs(cobra.ExactArgs(1)),
		RunE: func(*cobra.Command, []string) error {
			return nil
		},
	}
	root.SetArgs([]string{})

	err := errorhandler.NewExecutor().Execute(root)
	assert.Equal(t, errorhandler.ExitUsage, errorhandler.ExitCode(err))
}

func TestExecutorExecuteReturnsCommandError(t *testing.T) {
	t.Parallel()

	cmd := &cobra.Command{
		Use: "test",
		RunE: func(_ *cobra.Command, _ []string) error {
			return errTestBoom
		},
	}

	err := errorhandler.NewExecutor().Execute(cmd)

	var cmdErr *errorhandler.CommandError

	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, "boom", cmdErr.Error())
	assert.Equal(t, errorhandler.ExitFailure, errorhandler.ExitCode(err))
}

func TestExecutorExecuteStripsErrorPrefix(t *testing.T) {
	t.Parallel()

	cmd := &cobra.Command{
		Use: "test",
		RunE: func(_ *cobra.Command, _ []string) error {
			return errOriginalFailure
		},
	}

	err := errorhandler.NewExecutor().Execute(cmd)
	require.Error(t, err)
	assert.Equal(t, "original failure", err.Error())
}

func TestExecutorExecuteKeepsExitCodeOfCause(t *testing.T) {
	t.Parallel()

	cmd := &cobra.Command{
		Use: "test",
		RunE: func(_ *cobra.Command, _ []string) error {
			return fmt.Errorf("rendering: %w", codedError{code: 18})
		},
	}

	err := errorhandler.NewExecutor().Execute(cmd)
	assert.Equal(t, 18, errorhandler.ExitCode(err))
}

func TestCommandErrorNilReceiver(t *testing.T) {
	t.Parallel()

	var cmdErr *errorhandler.CommandError

	assert.Empty(t, cmdErr.Error())
	assert.Empty(t, cmdErr.Command())
	require.NoError(t, cmdErr.Unwrap())
	assert.Equal(t, 0, cmdErr.ExitCode())
}

func TestCommandErrorEmptyStruct(t *testing.T) {
	t.Parallel()

	assert.Empty(t, (&errorhandler.CommandError{}).Error())
}

func TestCommandErrorUnwrap(t *testing.T) {
	t.Parallel()

	cmd := &cobra.Command{
		Use: "test",
		RunE: func(_ *cobra.Command, _ []string) error {
			return errWrapped
		},
	}

	err := errorhandler.NewExecutor().Execute(cmd)
	require.ErrorIs(t, err, errWrapped)
}

func TestDefaultNormalizerNormalize(t *testing.T) {
	t.Parallel()

	normalizer := errorhandler.DefaultNormalizer{}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty input returns empty string",
			input:    "   \n\t  ",
			expected: "",
		},
		{
			name:     "strips error prefix and trims",
			input:    "  Error: something bad \nRun help\n",
			expected: "something bad\nRun help",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.expected, normalizer.Normalize(testCase.input))
		})
	}
}
