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

// Package address provides the identity of a node endpoint in a Go-Akt
// actor system.
//
// An endpoint is made of the following parts:
//
//   - System: logical name of the actor system
//   - Host: network host or IP where the node is reachable
//   - Port: TCP port where the node is reachable
//
// The canonical textual representation of an Address is:
//
//	goakt://<system>@<host>:<port>
//
// The canonical form is the key used by the fault injector to match message
// destinations, so two addresses are the same endpoint iff their String
// values are equal. Address is immutable and safe for concurrent use.
package address

import (
	"errors"
	"net"
	"regexp"
	"strconv"
	"strings"

	"github.com/tochemey/goakt-testhooks/internal/validation"
)

// scheme defines the Go-Akt addressing scheme
const scheme = "goakt"

var (
	// ErrInvalidSystem is returned when the system name is empty or malformed
	ErrInvalidSystem = errors.New("invalid actor system name, must contain only word characters (i.e. [a-zA-Z0-9] plus non-leading '-', '_' or '.')")
	// ErrInvalidHostPort is returned when host and port do not form a valid TCP address
	ErrInvalidHostPort = errors.New("invalid host:port")
	// ErrInvalidAddress is returned when a textual address cannot be parsed
	ErrInvalidAddress = errors.New("invalid address")

	systemPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-_\.]*$`)
)

// Address identifies a node endpoint: the node address returned by the
// harness and the destination of outgoing messages.
type Address struct {
	system string
	host   string
	port   int
}

// New creates an Address. It does not validate the inputs; call Validate.
//
// Example canonical form of the returned address:
//
//	goakt://system@127.0.0.1:9000
func New(system, host string, port int) *Address {
	return &Address{
		system: system,
		host:   host,
		port:   port,
	}
}

// Parse reconstructs an Address from its canonical textual form.
func Parse(s string) (*Address, error) {
	rest, ok := strings.CutPrefix(s, scheme+"://")
	if !ok {
		return nil, ErrInvalidAddress
	}

	system, hostPort, ok := strings.Cut(rest, "@")
	if !ok {
		return nil, ErrInvalidAddress
	}

	host, portStr, err := net.SplitHostPort(hostPort)
	if err != nil {
		return nil, errors.Join(ErrInvalidAddress, err)
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, errors.Join(ErrInvalidAddress, err)
	}

	addr := New(system, host, port)
	if err := addr.Validate(); err != nil {
		return nil, err
	}
	return addr, nil
}

// System returns the actor system name component of the Address.
func (x *Address) System() string {
	if x == nil {
		return ""
	}
	return x.system
}

// Host returns the host component of the Address.
func (x *Address) Host() string {
	if x == nil {
		return ""
	}
	return x.host
}

// Port returns the port component of the Address.
func (x *Address) Port() int {
	if x == nil {
		return 0
	}
	return x.port
}

// HostPort returns the "host:port" portion of the Address.
func (x *Address) HostPort() string {
	return net.JoinHostPort(x.Host(), strconv.Itoa(x.Port()))
}

// String returns the canonical textual form of the Address.
// It is safe to call on a nil receiver and returns an empty string then.
func (x *Address) String() string {
	if x == nil {
		return ""
	}

	var builder strings.Builder
	hostPort := x.HostPort()
	builder.Grow(len(scheme) + len("://") + len(x.system) + 1 + len(hostPort))
	_, _ = builder.WriteString(scheme)
	_, _ = builder.WriteString("://")
	_, _ = builder.WriteString(x.system)
	_ = builder.WriteByte('@')
	_, _ = builder.WriteString(hostPort)
	return builder.String()
}

// Equals reports whether x and y represent the same endpoint.
// It returns false if either is nil.
func (x *Address) Equals(y *Address) bool {
	if x == nil || y == nil {
		return false
	}
	return x.system == y.system &&
		x.host == y.host &&
		x.port == y.port
}

// Validate checks whether the Address is well-formed.
func (x *Address) Validate() error {
	if x == nil {
		return ErrInvalidSystem
	}

	return validation.New(validation.FailFast()).
		AddValidator(validation.NewPatternValidator(systemPattern, x.system, ErrInvalidSystem)).
		AddValidator(validation.NewHostPortValidator(x.host, x.port, ErrInvalidHostPort)).
		Validate()
}
