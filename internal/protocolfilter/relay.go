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

// Package protocolfilter relays the protocol message filter between the
// harness and the node's membership oracle.
//
// There is a single filter at a time. Setting a filter replaces the previous
// one, there is no composition or queuing, and a nil filter admits every
// protocol message.
package protocolfilter

import (
	"go.uber.org/atomic"

	"github.com/tochemey/goakt-testhooks/node"
)

// Relay forwards filter reads and writes to a membership oracle.
type Relay struct {
	oracle node.MembershipOracle
}

// NewRelay creates a Relay over oracle.
func NewRelay(oracle node.MembershipOracle) *Relay {
	return &Relay{oracle: oracle}
}

// Filter returns the filter installed on the oracle, nil when none is set.
func (r *Relay) Filter() node.ProtocolFilter {
	return r.oracle.ProtocolFilter()
}

// SetFilter replaces the filter installed on the oracle.
func (r *Relay) SetFilter(filter node.ProtocolFilter) {
	r.oracle.SetProtocolFilter(filter)
}

// Reset restores admit-all.
func (r *Relay) Reset() {
	r.oracle.SetProtocolFilter(nil)
}

// Admits reports whether filter admits message. A nil filter admits everything.
func Admits(filter node.ProtocolFilter, message node.ProtocolMessage) bool {
	return filter == nil || filter(message)
}

// Holder stores a filter for an oracle implementation. Loads and stores are atomic.
type Holder struct {
	filter *atomic.Pointer[node.ProtocolFilter]
}

// NewHolder creates a Holder with no filter installed.
func NewHolder() *Holder {
	return &Holder{filter: atomic.NewPointer[node.ProtocolFilter](nil)}
}

// Load returns the stored filter, nil when none is set.
func (h *Holder) Load() node.ProtocolFilter {
	if stored := h.filter.Load(); stored != nil {
		return *stored
	}
	return nil
}

// Store replaces the stored filter. Storing nil clears it.
func (h *Holder) Store(filter node.ProtocolFilter) {
	if filter == nil {
		h.filter.Store(nil)
		return
	}
	h.filter.Store(&filter)
}

// Admits reports whether the stored filter admits message.
func (h *Holder) Admits(message node.ProtocolMessage) bool {
	return Admits(h.Load(), message)
}
