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
	"sync"

	"go.uber.org/atomic"

	"github.com/tochemey/goakt-testhooks/address"
	"github.com/tochemey/goakt-testhooks/node"
)

// Envelope is a message sent through the MessageCenter.
type Envelope struct {
	To      *address.Address
	Payload string
}

// Destination implements node.Message
func (e Envelope) Destination() *address.Address {
	return e.To
}

// MessageCenter transmits outgoing messages, consulting the installed drop predicate first.
type MessageCenter struct {
	shouldDrop *atomic.Pointer[node.DropFunc]
	running    *atomic.Bool
	sent       *atomic.Int64
	dropped    *atomic.Int64

	mu        sync.Mutex
	delivered []node.Message
}

var _ node.MessageCenter = (*MessageCenter)(nil)

func newMessageCenter() *MessageCenter {
	return &MessageCenter{
		shouldDrop: atomic.NewPointer[node.DropFunc](nil),
		running:    atomic.NewBool(false),
		sent:       atomic.NewInt64(0),
		dropped:    atomic.NewInt64(0),
	}
}

// ID implements node.Service
func (x *MessageCenter) ID() string {
	return node.MessageCenterID
}

// SetShouldDrop implements node.MessageCenter
func (x *MessageCenter) SetShouldDrop(fn node.DropFunc) {
	if fn == nil {
		x.shouldDrop.Store(nil)
		return
	}
	x.shouldDrop.Store(&fn)
}

// HasDropPredicate reports whether a drop predicate is installed.
func (x *MessageCenter) HasDropPredicate() bool {
	return x.shouldDrop.Load() != nil
}

// Send transmits message and reports whether it went out.
// Messages are silently lost when the node is not running or the drop predicate says so.
func (x *MessageCenter) Send(ctx context.Context, message node.Message) bool {
	if ctx.Err() != nil || !x.running.Load() {
		return false
	}

	x.sent.Inc()
	if fn := x.shouldDrop.Load(); fn != nil && (*fn)(message) {
		x.dropped.Inc()
		return false
	}

	x.mu.Lock()
	x.delivered = append(x.delivered, message)
	x.mu.Unlock()
	return true
}

// Sent returns the number of transmission attempts.
func (x *MessageCenter) Sent() int64 {
	return x.sent.Load()
}

// Dropped returns the number of messages lost to the drop predicate.
func (x *MessageCenter) Dropped() int64 {
	return x.dropped.Load()
}

// Delivered returns a copy of the transmitted messages.
func (x *MessageCenter) Delivered() []node.Message {
	x.mu.Lock()
	defer x.mu.Unlock()
	out := make([]node.Message, len(x.delivered))
	copy(out, x.delivered)
	return out
}

func (x *MessageCenter) start(context.Context) error {
	x.running.Store(true)
	return nil
}

func (x *MessageCenter) stop(context.Context) error {
	x.running.Store(false)
	x.shouldDrop.Store(nil)
	return nil
}
