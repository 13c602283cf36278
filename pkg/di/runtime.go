package di

import (
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
)

// Injector is the dependency container handed to modules and handlers.
type Injector = do.Injector

// Module registers dependencies with an injector.
type Module func(Injector) error

// Runtime creates a fresh injector per invocation, registers its modules and runs a
// handler against it.
type Runtime struct {
	modules []Module
}

// New creates a runtime with the given modules. Nil modules are skipped.
func New(modules ...Module) *Runtime {
	return &Runtime{modules: modules}
}

// Invoke builds an injector from the runtime modules followed by extra, runs handler
// and shuts the injector down.
func (r *Runtime) Invoke(handler func(Injector) error, extra ...Module) error {
	injector := do.New()
	defer func() { _ = injector.Shutdown() }()

	for _, module := range append(append([]Module(nil), r.modules...), extra...) {
		if module == nil {
			continue
		}

		err := module(injector)
		if err != nil {
			return err
		}
	}

	return handler(injector)
}

// RunEWithRuntime adapts a handler needing an injector into a cobra RunE function.
func RunEWithRuntime(
	runtime *Runtime,
	handler func(cmd *cobra.Command, args []string, injector Injector) error,
) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return runtime.Invoke(func(injector Injector) error {
			return handler(cmd, args, injector)
		})
	}
}
