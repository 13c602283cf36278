package git

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/devantler-tech/pose/pkg/cmd/runner"
	gogit "github.com/go-git/go-git/v5"
	"github.com/sirupsen/logrus"
)

// Branch lookup errors.
var (
	// ErrBranchLookup is returned when neither the repository nor the git binary can
	// report the current branch.
	ErrBranchLookup = errors.New("failed to determine the current git branch")
	// ErrNoFallback is returned when go-git fails and no runner is configured.
	ErrNoFallback = errors.New("no git fallback configured")
)

// detachedHead is what `git rev-parse --abbrev-ref HEAD` prints for a detached HEAD.
const detachedHead = "HEAD"

// branchLookupExitCode is the CLI exit code for branch lookup failures.
const branchLookupExitCode = 21

// BranchProvider returns the name of the branch checked out in the working tree.
type BranchProvider interface {
	CurrentBranch(ctx context.Context) (string, error)
}

// BranchError wraps a failed branch lookup.
type BranchError struct {
	Err error
}

// Error implements the error interface.
func (e *BranchError) Error() string {
	return fmt.Sprintf("%s: %v", ErrBranchLookup, e.Err)
}

// Unwrap exposes ErrBranchLookup and the underlying cause.
func (e *BranchError) Unwrap() []error {
	return []error{ErrBranchLookup, e.Err}
}

// ExitCode returns the CLI exit code for a failed branch lookup.
func (e *BranchError) ExitCode() int {
	return branchLookupExitCode
}

// Provider reads HEAD of the repository containing dir with go-git, and falls back to
// `git rev-parse --abbrev-ref HEAD` for repositories go-git cannot open.
type Provider struct {
	dir    string
	runner runner.Runner
	binary string
	logger logrus.FieldLogger
}

// NewProvider creates a provider for the repository containing dir. The fallback runs
// the binary named by GIT_BIN through r.
func NewProvider(dir string, r runner.Runner, logger logrus.FieldLogger) *Provider {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Provider{dir: dir, runner: r, binary: runner.GitBinary(), logger: logger}
}

// CurrentBranch returns the short branch name, or "HEAD" when HEAD is detached.
func (p *Provider) CurrentBranch(ctx context.Context) (string, error) {
	branch, err := p.fromRepository()
	if err == nil {
		return branch, nil
	}

	p.logger.Debugf("go-git could not read HEAD in %s: %v", p.dir, err)

	return p.fromBinary(ctx)
}

func (p *Provider) fromRepository() (string, error) {
	repo, err := gogit.PlainOpenWithOptions(p.dir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", fmt.Errorf("open repository: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("read HEAD: %w", err)
	}

	if !head.Name().IsBranch() {
		return detachedHead, nil
	}

	return head.Name().Short(), nil
}

func (p *Provider) fromBinary(ctx context.Context) (string, error) {
	if p.runner == nil {
		return "", &BranchError{Err: ErrNoFallback}
	}

	result, err := p.runner.Run(ctx, p.binary, "-C", p.dir, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", &BranchError{Err: err}
	}

	return strings.TrimSpace(result.Stdout), nil
}
