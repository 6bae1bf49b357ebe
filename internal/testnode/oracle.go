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

package testnode

import (
	"context"

	"go.uber.org/atomic"

	"github.com/tochemey/goakt-testhooks/address"
	"github.com/tochemey/goakt-testhooks/internal/protocolfilter"
	"github.com/tochemey/goakt-testhooks/node"
)

// ProtocolEnvelope is a clustering protocol message.
type ProtocolEnvelope struct {
	From *address.Address
	To   *address.Address
	Kind string
}

// Destination implements node.ProtocolMessage
func (p ProtocolEnvelope) Destination() *address.Address { return p.To }

// Sender implements node.ProtocolMessage
func (p ProtocolEnvelope) Sender() *address.Address { return p.From }

// Type implements node.ProtocolMessage
func (p ProtocolEnvelope) Type() string { return p.Kind }

// Oracle is the membership oracle of the test node.
type Oracle struct {
	filter   *protocolfilter.Holder
	running  *atomic.Bool
	admitted *atomic.Int64
	rejected *atomic.Int64
}

var _ node.MembershipOracle = (*Oracle)(nil)

func newOracle() *Oracle {
	return &Oracle{
		filter:   protocolfilter.NewHolder(),
		running:  atomic.NewBool(false),
		admitted: atomic.NewInt64(0),
		rejected: atomic.NewInt64(0),
	}
}

// ID implements node.Service
func (x *Oracle) ID() string {
	return node.MembershipOracleID
}

// ProtocolFilter implements node.MembershipOracle
func (x *Oracle) ProtocolFilter() node.ProtocolFilter {
	return x.filter.Load()
}

// SetProtocolFilter implements node.MembershipOracle
func (x *Oracle) SetProtocolFilter(filter node.ProtocolFilter) {
	x.filter.Store(filter)
}

// Process hands a protocol message to the oracle and reports whether it was admitted.
func (x *Oracle) Process(message node.ProtocolMessage) bool {
	if !x.running.Load() {
		return false
	}

	if !x.filter.Admits(message) {
		x.rejected.Inc()
		return false
	}
	x.admitted.Inc()
	return true
}

// Admitted returns the number of admitted protocol messages.
func (x *Oracle) Admitted() int64 {
	return x.admitted.Load()
}

// Rejected returns the number of protocol messages rejected by the filter.
func (x *Oracle) Rejected() int64 {
	return x.rejected.Load()
}

func (x *Oracle) start(context.Context) error {
	x.running.Store(true)
	return nil
}

func (x *Oracle) stop(context.Context) error {
	x.running.Store(false)
	x.filter.Store(nil)
	return nil
}
