// SPDX-License-Identifier: MPL-2.0

package controller

import (
	"errors"
	"fmt"
)

var (
	// ErrContractMismatch is returned (wrapped) by a controller that rejects
	// the invocation it was handed, e.g. an application form it cannot run
	// or positional arguments it does not accept.
	ErrContractMismatch = errors.New("controller contract mismatch")

	// ErrModuleNotFound is returned when no factory is registered for a module.
	ErrModuleNotFound = errors.New("module not registered")
)

// ContractMismatchError describes why a controller rejected an invocation.
// It wraps ErrContractMismatch for errors.Is() compatibility.
type ContractMismatchError struct {
	Reason string
}

// Mismatch builds a ContractMismatchError with a formatted reason.
func Mismatch(format string, args ...any) error {
	return &ContractMismatchError{Reason: fmt.Sprintf(format, args...)}
}

// Error implements the error interface.
func (e *ContractMismatchError) Error() string { return e.Reason }

// Unwrap returns ErrContractMismatch so callers can use errors.Is for programmatic detection.
func (e *ContractMismatchError) Unwrap() error { return ErrContractMismatch }
