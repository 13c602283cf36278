package git_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/devantler-tech/pose/pkg/client/git"
	"github.com/devantler-tech/pose/pkg/cmd/runner"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func initRepoWithCommit(t *testing.T) (string, *gogit.Repository) {
	t.Helper()

	dir := t.TempDir()

	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "compose.yaml"), []byte("services: {}\n"), 0o600))

	worktree, err := repo.Worktree()
	require.NoError(t, err)

	_, err = worktree.Add("compose.yaml")
	require.NoError(t, err)

	_, err = worktree.Commit("Initial commit", &gogit.CommitOptions{
		Author: &object.Signature{Name: "pose", Email: "pose@example.com", When: time.Now()},
	})
	require.NoError(t, err)

	return dir, repo
}

func TestProvider_CurrentBranch_DefaultBranch(t *testing.T) {
	t.Parallel()

	dir, _ := initRepoWithCommit(t)

	branch, err := git.NewProvider(dir, nil, nil).CurrentBranch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "master", branch)
}

func TestProvider_CurrentBranch_FeatureBranchFromSubdirectory(t *testing.T) {
	t.Parallel()

	dir, repo := initRepoWithCommit(t)

	worktree, err := repo.Worktree()
	require.NoError(t, err)
	require.NoError(t, worktree.Checkout(&gogit.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName("feature/Login-Page"),
		Create: true,
	}))

	subdir := filepath.Join(dir, "docker")
	require.NoError(t, os.Mkdir(subdir, 0o750))

	branch, err := git.NewProvider(subdir, nil, nil).CurrentBranch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "feature/Login-Page", branch)
}

func TestProvider_CurrentBranch_DetachedHead(t *testing.T) {
	t.Parallel()

	dir, repo := initRepoWithCommit(t)

	head, err := repo.Head()
	require.NoError(t, err)
	require.NoError(t, repo.Storer.SetReference(plumbing.NewHashReference(plumbing.HEAD, head.Hash())))

	branch, err := git.NewProvider(dir, nil, nil).CurrentBranch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "HEAD", branch)
}

func TestProvider_CurrentBranch_FallsBackToBinary(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	fake := runner.NewMockRunner()
	fake.On("Run", mock.Anything, mock.Anything, []string{"-C", dir, "rev-parse", "--abbrev-ref", "HEAD"}).
		Return(runner.Result{Stdout: "main\n"}, nil)

	branch, err := git.NewProvider(dir, fake, nil).CurrentBranch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "main", branch)
	fake.AssertExpectations(t)
}

func TestProvider_CurrentBranch_Failure(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	fake := runner.NewMockRunner()
	fake.On("Run", mock.Anything, mock.Anything, mock.Anything).Return(
		runner.Result{ExitCode: 128},
		&runner.CommandError{Command: "git rev-parse", Code: 128, Stderr: "fatal: not a git repository"},
	)

	_, err := git.NewProvider(dir, fake, nil).CurrentBranch(context.Background())
	require.ErrorIs(t, err, git.ErrBranchLookup)

	var branchErr *git.BranchError

	require.ErrorAs(t, err, &branchErr)
	assert.Equal(t, 21, branchErr.ExitCode())

	_, err = git.NewProvider(dir, nil, nil).CurrentBranch(context.Background())
	require.ErrorIs(t, err, git.ErrNoFallback)
}
