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

package node

import (
	"regexp"

	gerrors "github.com/tochemey/goakt-testhooks/errors"
	"github.com/tochemey/goakt-testhooks/internal/validation"
)

// Well-known identifiers of node-internal services.
const (
	// MessageCenterID identifies the MessageCenter service
	MessageCenterID = "GoAktMessageCenter"
	// MembershipOracleID identifies the MembershipOracle service
	MembershipOracleID = "GoAktMembershipOracle"
	// DirectoryID identifies the local grain Directory service
	DirectoryID = "GoAktDirectory"
	// ProvidersID identifies the ProviderManager service
	ProvidersID = "GoAktProviders"
	// TestHooksID identifies the harness endpoint registered inside the node
	TestHooksID = "GoAktTestHooks"
)

var serviceIDPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-_]*$`)

// Service is anything registered in the node's internal service registry.
type Service interface {
	// ID returns the unique identifier of the service.
	//
	// The identifier must:
	//   - Be no more than 255 characters long.
	//   - Start with an alphanumeric character [a-zA-Z0-9].
	//   - Contain only alphanumeric characters, hyphens (-), or underscores (_) thereafter.
	ID() string
}

// ServiceRegistry is the node's internal service lookup.
type ServiceRegistry interface {
	// Register adds a service. Registering an identifier twice fails.
	Register(service Service) error
	// Service resolves a service by identifier.
	Service(id string) (Service, bool)
}

// ValidateServiceID reports whether id is a well-formed service identifier.
func ValidateServiceID(id string) error {
	return validation.New(validation.FailFast()).
		AddCondition(len(id) <= 255, gerrors.ErrInvalidServiceID).
		AddValidator(validation.NewPatternValidator(serviceIDPattern, id, gerrors.ErrInvalidServiceID)).
		Validate()
}

// Lookup resolves the service registered under id and asserts it implements T.
func Lookup[T any](registry ServiceRegistry, id string) (T, error) {
	var zero T
	if registry == nil {
		return zero, gerrors.NewErrServiceNotFound(id)
	}

	service, ok := registry.Service(id)
	if !ok || service == nil {
		return zero, gerrors.NewErrServiceNotFound(id)
	}

	typed, ok := service.(T)
	if !ok {
		return zero, gerrors.NewErrInvalidServiceType(id, service)
	}
	return typed, nil
}
