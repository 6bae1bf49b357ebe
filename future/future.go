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

// Package future models the completion of an asynchronous node operation.
//
// The hosted node starts and stops asynchronously. Each of those operations
// hands back a Future that settles exactly once, either successfully or with
// the fault the node reported.
package future

import (
	"context"
	"sync"
)

// Future is the completion handle of an asynchronous operation.
type Future interface {
	// Await blocks until the operation settles and returns its fault, if any.
	// When ctx is done first, Await returns ctx.Err() and the operation keeps running.
	Await(ctx context.Context) error
	// Done is closed once the operation has settled.
	Done() <-chan struct{}
}

type future struct {
	once sync.Once
	done chan struct{}
	err  error
}

var _ Future = (*future)(nil)

// New runs task in its own goroutine and returns the Future of its completion.
func New(task func() error) Future {
	f := newFuture()
	go func() {
		f.complete(task())
	}()
	return f
}

// Completed returns a Future that has already settled with err.
func Completed(err error) Future {
	f := newFuture()
	f.complete(err)
	return f
}

func newFuture() *future {
	return &future{done: make(chan struct{})}
}

// Await implements Future.
func (x *future) Await(ctx context.Context) error {
	select {
	case <-x.done:
		return x.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done implements Future.
func (x *future) Done() <-chan struct{} {
	return x.done
}

func (x *future) complete(err error) {
	x.once.Do(func() {
		x.err = err
		close(x.done)
	})
}

// Promise is the producer side of a Future. The first Success or Failure wins.
type Promise struct {
	future *future
}

// NewPromise creates an unsettled Promise.
func NewPromise() *Promise {
	return &Promise{future: newFuture()}
}

// Success settles the Future without a fault.
func (p *Promise) Success() {
	p.future.complete(nil)
}

// Failure settles the Future with err.
func (p *Promise) Failure(err error) {
	p.future.complete(err)
}

// Future returns the consumer side of the Promise.
func (p *Promise) Future() Future {
	return p.future
}
