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

import "github.com/tochemey/goakt-testhooks/address"

// Message is an outgoing message as seen by the message center.
type Message interface {
	// Destination returns the endpoint the message is sent to.
	Destination() *address.Address
}

// ProtocolMessage is a message of the inter-node clustering protocol.
type ProtocolMessage interface {
	Message
	// Sender returns the endpoint that emitted the message.
	Sender() *address.Address
	// Type returns the protocol message type, e.g. "ping" or "join".
	Type() string
}

// DropFunc decides whether an outgoing message must be dropped before transmission.
type DropFunc func(message Message) bool

// ProtocolFilter decides whether a protocol message is admitted.
// A nil ProtocolFilter admits every message.
type ProtocolFilter func(message ProtocolMessage) bool

// MessageCenter is the node component that transmits outgoing messages.
type MessageCenter interface {
	Service
	// SetShouldDrop installs the drop predicate consulted on every outgoing message.
	// A nil predicate restores admit-all.
	SetShouldDrop(fn DropFunc)
}

// MembershipOracle is the clustering component that processes protocol messages.
type MembershipOracle interface {
	Service
	// ProtocolFilter returns the installed filter, nil when none is set.
	ProtocolFilter() ProtocolFilter
	// SetProtocolFilter atomically replaces the installed filter.
	SetProtocolFilter(filter ProtocolFilter)
}
