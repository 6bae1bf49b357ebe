// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrStartupFailure is returned when the hosted node fails to initialize.
	// It is fatal to the harness instance and is never retried.
	ErrStartupFailure = errors.New("node startup failed")

	// ErrServiceNotFound is returned when a node-internal service cannot be resolved,
	// typically because the node has been stopped or is misconfigured.
	ErrServiceNotFound = errors.New("service not found")

	// ErrBoundaryViolation is matched by every BoundaryViolation via errors.Is.
	ErrBoundaryViolation = errors.New("value is not remote-callable")

	// ErrInvalidLossPercentage is returned when a loss percentage falls outside [0,100].
	ErrInvalidLossPercentage = errors.New("loss percentage must be within [0,100]")

	// ErrUndefinedDestination is returned when a fault rule is requested for a nil destination.
	ErrUndefinedDestination = errors.New("destination is not defined")

	// ErrUndefinedFactory is returned when the harness is created without a node factory.
	ErrUndefinedFactory = errors.New("node factory is not defined")

	// ErrUndefinedNode is returned when the node factory yields no node.
	ErrUndefinedNode = errors.New("node factory returned no node")

	// ErrServiceAlreadyRegistered is returned when a service identifier is registered twice.
	ErrServiceAlreadyRegistered = errors.New("service already registered")

	// ErrInvalidServiceID is returned when a service identifier is malformed.
	ErrInvalidServiceID = errors.New("invalid service id, must contain only word characters (i.e. [a-zA-Z0-9] plus non-leading '-' or '_')")

	// ErrInvalidServiceType is returned when a resolved service does not implement the expected contract.
	ErrInvalidServiceType = errors.New("service does not implement the expected contract")
)

// NewErrStartupFailure wraps the node's reported fault with ErrStartupFailure.
func NewErrStartupFailure(err error) error {
	return errors.Join(ErrStartupFailure, err)
}

// NewErrServiceNotFound formats an ErrServiceNotFound with the given service id.
func NewErrServiceNotFound(id string) error {
	return fmt.Errorf("service=(%s) %w", id, ErrServiceNotFound)
}

// NewErrServiceAlreadyRegistered formats an ErrServiceAlreadyRegistered with the given service id.
func NewErrServiceAlreadyRegistered(id string) error {
	return fmt.Errorf("service=(%s) %w", id, ErrServiceAlreadyRegistered)
}

// NewErrInvalidServiceType formats an ErrInvalidServiceType with the service id and its concrete type.
func NewErrInvalidServiceType(id string, service any) error {
	return fmt.Errorf("service=(%s) type=(%T) %w", id, service, ErrInvalidServiceType)
}

// NewErrInvalidLossPercentage formats an ErrInvalidLossPercentage with the rejected value.
func NewErrInvalidLossPercentage(percentage int) error {
	return fmt.Errorf("percentage=(%d) %w", percentage, ErrInvalidLossPercentage)
}

// BoundaryViolation is returned when a value about to cross the isolation
// boundary is neither nil nor remote-callable.
type BoundaryViolation struct {
	// Type is the concrete type of the offending value
	Type string
	// Role is the human-readable label of the value's role
	Role string
}

// enforce compilation error
var _ error = (*BoundaryViolation)(nil)

// NewBoundaryViolation creates a BoundaryViolation for the given value and role label.
func NewBoundaryViolation(value any, role string) *BoundaryViolation {
	return &BoundaryViolation{
		Type: fmt.Sprintf("%T", value),
		Role: role,
	}
}

// Error implements the error interface
func (e *BoundaryViolation) Error() string {
	return fmt.Sprintf("%s=(%s) %s", e.Role, e.Type, ErrBoundaryViolation.Error())
}

// Is reports whether target is ErrBoundaryViolation
func (e *BoundaryViolation) Is(target error) bool {
	return target == ErrBoundaryViolation
}
