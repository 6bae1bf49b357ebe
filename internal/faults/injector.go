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

// Package faults implements simulated message loss for the hosted node.
//
// An Injector keeps a loss table mapping destination endpoints to a loss
// percentage and exposes ShouldDrop, the predicate the node's message center
// consults on every outgoing message. ShouldDrop is safe for concurrent use
// by any number of senders.
package faults

import (
	"context"
	"math/rand/v2"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.uber.org/atomic"

	"github.com/tochemey/goakt-testhooks/address"
	gerrors "github.com/tochemey/goakt-testhooks/errors"
	"github.com/tochemey/goakt-testhooks/internal/metric"
	"github.com/tochemey/goakt-testhooks/internal/validation"
	"github.com/tochemey/goakt-testhooks/node"
)

// Option configures an Injector
type Option func(*Injector)

// WithSeed makes the random draws reproducible.
func WithSeed(seed uint64) Option {
	return func(x *Injector) {
		source := &lockedRand{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
		x.draw = source.percent
	}
}

// WithMetric records drops and configured rules on the given instruments.
func WithMetric(instruments *metric.FaultMetric) Option {
	return func(x *Injector) {
		x.metric = instruments
	}
}

// Injector decides which outgoing messages are lost.
type Injector struct {
	// nil until the first Block; Unblock swaps it back to nil in one step
	table  *atomic.Pointer[lossTable]
	draw   func() float64
	metric *metric.FaultMetric

	// serializes Block and Unblock; ShouldDrop never takes it
	writeMu sync.Mutex
}

// New creates an Injector with an empty loss table.
func New(opts ...Option) *Injector {
	x := &Injector{
		table: atomic.NewPointer[lossTable](nil),
		draw:  percent,
	}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// Block sets the loss percentage of messages sent to destination.
// A later Block for the same destination replaces the percentage.
func (x *Injector) Block(destination *address.Address, percentage int) error {
	if err := validation.New(validation.FailFast()).
		AddCondition(destination != nil, gerrors.ErrUndefinedDestination).
		AddCondition(percentage >= 0 && percentage <= 100, gerrors.NewErrInvalidLossPercentage(percentage)).
		Validate(); err != nil {
		return err
	}

	x.writeMu.Lock()
	defer x.writeMu.Unlock()
	if created := x.lossTable().set(destination.String(), percentage); created && x.metric != nil {
		x.metric.RulesCount().Add(context.Background(), 1)
	}
	return nil
}

// Unblock removes every loss rule. Calling it with no rule configured is a no-op.
func (x *Injector) Unblock() {
	x.writeMu.Lock()
	defer x.writeMu.Unlock()
	previous := x.table.Swap(nil)
	if previous != nil && x.metric != nil {
		x.metric.RulesCount().Add(context.Background(), -int64(previous.len()))
	}
}

// LossPercentage returns the configured loss percentage of destination, 0 when none.
func (x *Injector) LossPercentage(destination *address.Address) int {
	table := x.table.Load()
	if table == nil || destination == nil {
		return 0
	}
	return table.get(destination.String())
}

// ShouldDrop reports whether message must be dropped.
//
// Each call draws independently: a resent message is just another attempt.
// The outcome only depends on the percentage configured for the message
// destination, never on the message content.
func (x *Injector) ShouldDrop(message node.Message) bool {
	table := x.table.Load()
	if table == nil || message == nil {
		return false
	}

	destination := message.Destination()
	if destination == nil {
		return false
	}

	key := destination.String()
	percentage := table.get(key)
	if percentage <= 0 {
		return false
	}

	drop := x.draw() < float64(percentage)
	if drop && x.metric != nil {
		x.metric.DroppedCount().Add(context.Background(), 1,
			otelmetric.WithAttributes(attribute.String("destination", key)))
	}
	return drop
}

// percent draws uniformly in [0,100) from the goroutine-safe runtime source
func percent() float64 {
	return rand.Float64() * 100
}

// lockedRand serializes a seeded source. Its lock is never shared with the loss table.
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *lockedRand) percent() float64 {
	l.mu.Lock()
	value := l.r.Float64()
	l.mu.Unlock()
	return value * 100
}

func (x *Injector) lossTable() lossTable {
	for {
		if table := x.table.Load(); table != nil {
			return *table
		}
		fresh := newLossTable()
		if x.table.CompareAndSwap(nil, &fresh) {
			return fresh
		}
	}
}
