package di

import (
	"fmt"
	"os"

	"github.com/devantler-tech/pose/pkg/client/git"
	"github.com/devantler-tech/pose/pkg/cmd/runner"
	"github.com/devantler-tech/pose/pkg/registry"
	"github.com/samber/do/v2"
	"github.com/sirupsen/logrus"
)

// Dependency providers.

// NewRuntime constructs the shared runtime container used by root command and tests.
// It registers the logger, process runner, registry oracle factory and branch provider,
// followed by extra modules which may override any of them.
func NewRuntime(extra ...Module) *Runtime {
	modules := []Module{
		provideLogger,
		provideRunner,
		provideOracleFactory,
		provideBranchProvider,
	}

	return New(append(modules, extra...)...)
}

// ProvideLogger returns a module registering logger, replacing the standard logger.
func ProvideLogger(logger logrus.FieldLogger) Module {
	return func(i Injector) error {
		do.OverrideValue(i, logger)

		return nil
	}
}

// ProvideRunner returns a module registering r, replacing the process runner.
func ProvideRunner(r runner.Runner) Module {
	return func(i Injector) error {
		do.OverrideValue(i, r)

		return nil
	}
}

// ProvideOracleFactory returns a module registering factory.
func ProvideOracleFactory(factory registry.Factory) Module {
	return func(i Injector) error {
		do.OverrideValue(i, factory)

		return nil
	}
}

// ProvideBranchProvider returns a module registering provider.
func ProvideBranchProvider(provider git.BranchProvider) Module {
	return func(i Injector) error {
		do.OverrideValue(i, provider)

		return nil
	}
}

// provideLogger registers the logrus standard logger.
func provideLogger(i Injector) error {
	do.Provide(i, func(Injector) (logrus.FieldLogger, error) {
		return logrus.StandardLogger(), nil
	})

	return nil
}

// provideRunner registers the os/exec backed runner.
func provideRunner(i Injector) error {
	do.Provide(i, func(injector Injector) (runner.Runner, error) {
		logger, err := ResolveLogger(injector)
		if err != nil {
			return nil, err
		}

		return runner.NewProcessRunner(logger), nil
	})

	return nil
}

// provideOracleFactory registers the default registry oracle factory.
func provideOracleFactory(i Injector) error {
	do.Provide(i, func(injector Injector) (registry.Factory, error) {
		r, err := ResolveRunner(injector)
		if err != nil {
			return nil, err
		}

		return registry.DefaultFactory{Runner: r}, nil
	})

	return nil
}

// provideBranchProvider registers the branch provider for the working directory.
func provideBranchProvider(i Injector) error {
	do.Provide(i, func(injector Injector) (git.BranchProvider, error) {
		dir, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}

		r, err := ResolveRunner(injector)
		if err != nil {
			return nil, err
		}

		logger, err := ResolveLogger(injector)
		if err != nil {
			return nil, err
		}

		return git.NewProvider(dir, r, logger), nil
	})

	return nil
}
