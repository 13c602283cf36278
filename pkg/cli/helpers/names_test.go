package helpers_test

import (
	"bytes"
	"testing"

	"github.com/devantler-tech/pose/pkg/cli/helpers"
	"github.com/devantler-tech/pose/pkg/cli/ui/errorhandler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintNames(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		names  []string
		pretty string
		want   string
	}{
		{name: "full", names: []string{"app", "db"}, pretty: helpers.PrettyFull, want: "app\ndb\n"},
		{name: "default", names: []string{"app"}, want: "app\n"},
		{name: "oneline", names: []string{"app", "db", "cache"}, pretty: helpers.PrettyOneline, want: "app db cache\n"},
		{name: "empty", names: []string{}, pretty: helpers.PrettyOneline, want: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer

			require.NoError(t, helpers.PrintNames(&out, tc.names, tc.pretty))
			assert.Equal(t, tc.want, out.String())
		})
	}
}

func TestPrintNames_UnknownFormat(t *testing.T) {
	t.Parallel()

	err := helpers.PrintNames(&bytes.Buffer{}, []string{"app"}, "json")

	require.ErrorIs(t, err, helpers.ErrUnknownPretty)
	assert.Equal(t, errorhandler.ExitUsage, errorhandler.ExitCode(err))
}
