package di

import (
	"fmt"

	"github.com/devantler-tech/pose/pkg/client/git"
	"github.com/devantler-tech/pose/pkg/cmd/runner"
	"github.com/devantler-tech/pose/pkg/registry"
	"github.com/samber/do/v2"
	"github.com/sirupsen/logrus"
)

// Dependency resolvers.

// ResolveLogger retrieves the logger dependency from the injector.
func ResolveLogger(injector Injector) (logrus.FieldLogger, error) {
	logger, err := do.Invoke[logrus.FieldLogger](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve logger dependency: %w", err)
	}

	return logger, nil
}

// ResolveRunner retrieves the process runner dependency from the injector.
func ResolveRunner(injector Injector) (runner.Runner, error) {
	r, err := do.Invoke[runner.Runner](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve runner dependency: %w", err)
	}

	return r, nil
}

// ResolveOracleFactory retrieves the registry oracle factory from the injector.
func ResolveOracleFactory(injector Injector) (registry.Factory, error) {
	factory, err := do.Invoke[registry.Factory](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve oracle factory dependency: %w", err)
	}

	return factory, nil
}

// ResolveBranchProvider retrieves the branch provider from the injector.
func ResolveBranchProvider(injector Injector) (git.BranchProvider, error) {
	provider, err := do.Invoke[git.BranchProvider](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve branch provider dependency: %w", err)
	}

	return provider, nil
}
