package fetch_test

import (
	"testing"

	"github.com/devantler-tech/pose/pkg/svc/fetch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplaceAll(t *testing.T) {
	t.Parallel()

	replaced, err := fetch.ReplaceAll(
		"https://github.com/mrsarm/pose/archive/refs/tags/0.3.0.zip",
		[]string{"0.3.0:0.4.0", "0.3.0:latest"},
	)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://github.com/mrsarm/pose/archive/refs/tags/0.4.0.zip",
		"https://github.com/mrsarm/pose/archive/refs/tags/latest.zip",
	}, replaced)

	replaced, err = fetch.ReplaceAll("-", []string{"-:something", "-:totally", "-:new"})
	require.NoError(t, err)
	assert.Equal(t, []string{"something", "totally", "new"}, replaced)
}

func TestReplaceAll_Errors(t *testing.T) {
	t.Parallel()

	_, err := fetch.ReplaceAll("pose-0.3.zip", []string{"0.3:0.4", "missing-separator"})
	require.ErrorIs(t, err, fetch.ErrMissingSeparator)
	assert.Contains(t, err.Error(), `"missing-separator"`)

	_, err = fetch.ReplaceAll("hard-to-replace", []string{"not-there:something"})
	require.ErrorIs(t, err, fetch.ErrLeftPartNotFound)
	assert.Contains(t, err.Error(), `"not-there:something" in "hard-to-replace"`)

	_, err = fetch.ReplaceAll("anything", []string{":prefix"})
	require.ErrorIs(t, err, fetch.ErrLeftPartNotFound)
}

func TestParseScript(t *testing.T) {
	t.Parallel()

	script, err := fetch.ParseScript("feature-x:main")
	require.NoError(t, err)
	assert.Equal(t, fetch.Script{From: "feature-x", To: "main"}, script)
	assert.Equal(t, "feature-x:main", script.String())

	script, err = fetch.ParseScript("htps:https:")
	require.NoError(t, err)
	assert.Equal(t, "https:", script.To)

	_, err = fetch.ParseScript("no-separator")
	require.ErrorIs(t, err, fetch.ErrMissingSeparator)
}
