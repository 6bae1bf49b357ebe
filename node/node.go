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

// Package node defines the contracts of the hosted Go-Akt node as seen by the
// test hooks harness.
//
// The actor runtime is an external collaborator: the harness never activates,
// schedules or places grains itself. It only builds a node through a Factory,
// drives its asynchronous start and stop, and resolves node-internal services
// from the node's ServiceRegistry to query or toggle them.
package node

import (
	"context"

	"github.com/tochemey/goakt-testhooks/address"
	"github.com/tochemey/goakt-testhooks/future"
)

// Node is one instance of the hosted actor runtime.
type Node interface {
	// Start begins the node startup procedure and returns its completion.
	Start(ctx context.Context) future.Future
	// Stop begins the node shutdown procedure and returns its completion.
	// Once stopped, the node tears down its ServiceRegistry.
	Stop(ctx context.Context) future.Future
	// Address returns the externally-visible address of the node.
	Address() *address.Address
	// Services returns the node's internal service registry.
	Services() ServiceRegistry
}

// Factory builds the node hosted by the harness.
type Factory interface {
	NewNode() (Node, error)
}

// FactoryFunc adapts an ordinary function to Factory.
type FactoryFunc func() (Node, error)

// enforce compilation error
var _ Factory = FactoryFunc(nil)

// NewNode implements Factory.
func (f FactoryFunc) NewNode() (Node, error) {
	return f()
}
