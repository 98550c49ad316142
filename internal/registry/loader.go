// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"fmt"

	"github.com/sprockets/sprockets/pkg/controller"
)

type (
	// Loader resolves a module identifier to a controller.
	Loader interface {
		Load(module string) (controller.Controller, error)
	}

	// LoaderFunc adapts a function to the Loader interface.
	LoaderFunc func(module string) (controller.Controller, error)

	// LoadError is reported when a controller module cannot be loaded.
	// The registry logs it and drops the entry.
	LoadError struct {
		Name   string
		Module string
		Err    error
	}
)

// Load implements Loader.
func (f LoaderFunc) Load(module string) (controller.Controller, error) { return f(module) }

// Error implements the error interface.
func (e *LoadError) Error() string {
	return fmt.Sprintf("load controller %q from module %q: %v", e.Name, e.Module, e.Err)
}

// Unwrap returns the underlying load failure.
func (e *LoadError) Unwrap() error { return e.Err }
