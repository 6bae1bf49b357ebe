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

// Package testhooks hosts one node of the actor runtime inside the test
// process and exposes the fault injection and introspection primitives the
// runtime's integration tests rely on.
//
// The node sits behind an isolation boundary: every value the harness hands
// back from a node-internal service must be nil or remote-callable,
// otherwise the call fails with a BoundaryViolation. Lifecycle operations
// block until the node's asynchronous start or stop settles. Every other
// operation resolves the node-internal services it needs on demand, so once
// the node is stopped they fail with ErrServiceNotFound.
package testhooks

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/atomic"
	"go.uber.org/multierr"

	"github.com/tochemey/goakt-testhooks/address"
	"github.com/tochemey/goakt-testhooks/boundary"
	gerrors "github.com/tochemey/goakt-testhooks/errors"
	"github.com/tochemey/goakt-testhooks/internal/directory"
	"github.com/tochemey/goakt-testhooks/internal/faults"
	imetric "github.com/tochemey/goakt-testhooks/internal/metric"
	"github.com/tochemey/goakt-testhooks/internal/protocolfilter"
	"github.com/tochemey/goakt-testhooks/log"
	"github.com/tochemey/goakt-testhooks/node"
)

const (
	instrumentationName = "github.com/tochemey/goakt-testhooks"

	bootstrapProviderRole = "bootstrap provider"
	storageProviderRole   = "storage provider"
)

// Harness controls one hosted node.
//
// Start and Stop are serialized. The fault injection and introspection
// operations may be called from any goroutine.
type Harness struct {
	node          node.Node
	logger        log.Logger
	meterProvider metric.MeterProvider
	seed          *uint64
	injector      *faults.Injector

	// guards the lifecycle transitions
	mu         sync.Mutex
	started    *atomic.Bool
	stopped    *atomic.Bool
	startupErr error
}

// New builds the node through factory and registers the harness control
// endpoint in the node's service registry. The node is not started.
func New(factory node.Factory, opts ...Option) (*Harness, error) {
	if factory == nil {
		return nil, gerrors.ErrUndefinedFactory
	}

	h := &Harness{
		logger:        log.DiscardLogger,
		meterProvider: noop.NewMeterProvider(),
		started:       atomic.NewBool(false),
		stopped:       atomic.NewBool(false),
	}

	for _, opt := range opts {
		opt.Apply(h)
	}

	hosted, err := factory.NewNode()
	if err != nil {
		return nil, err
	}

	if hosted == nil || hosted.Services() == nil {
		return nil, gerrors.ErrUndefinedNode
	}

	instruments, err := imetric.NewFaultMetric(h.meterProvider.Meter(instrumentationName))
	if err != nil {
		return nil, err
	}

	injectorOpts := []faults.Option{faults.WithMetric(instruments)}
	if h.seed != nil {
		injectorOpts = append(injectorOpts, faults.WithSeed(*h.seed))
	}

	if err := hosted.Services().Register(newHooks(hosted.Services())); err != nil {
		return nil, err
	}

	h.node = hosted
	h.injector = faults.New(injectorOpts...)
	h.logger = h.logger.With("node", hosted.Address().String())
	return h, nil
}

// Start starts the hosted node and blocks until it is ready.
//
// When the node reports a fault, the harness stops it and returns an
// ErrStartupFailure wrapping that fault. The failure is final: later calls
// return the same error without trying again. Start on a running harness is
// a no-op and Start on a stopped harness fails with ErrServiceNotFound.
func (h *Harness) Start(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.startupErr != nil {
		return h.startupErr
	}

	// the node is never restarted once stopped
	if h.stopped.Load() {
		return gerrors.NewErrServiceNotFound(node.TestHooksID)
	}

	if h.started.Load() {
		return nil
	}

	if _, err := h.hooks(); err != nil {
		return err
	}

	h.logger.Debug("starting node")
	if err := h.node.Start(ctx).Await(ctx); err != nil {
		if stopErr := h.node.Stop(ctx).Await(ctx); stopErr != nil {
			h.logger.Debugf("node cleanup after failed start: %v", stopErr)
		}
		h.injector.Unblock()
		h.stopped.Store(true)
		h.startupErr = gerrors.NewErrStartupFailure(err)
		return h.startupErr
	}

	h.started.Store(true)
	h.logger.Debug("node started")
	return nil
}

// Stop uninstalls every fault hook and stops the hosted node, blocking
// until the shutdown settles. The node is stopped at most once; further
// calls are no-ops.
func (h *Harness) Stop(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.stopped.Load() {
		return nil
	}

	h.logger.Debug("stopping node")
	var err error
	if endpoint, lookupErr := h.hooks(); lookupErr == nil {
		err = multierr.Combine(resetMessageCenter(endpoint), resetProtocolFilter(endpoint))
	}
	h.injector.Unblock()

	err = multierr.Append(err, h.node.Stop(ctx).Await(ctx))
	h.stopped.Store(true)
	h.started.Store(false)
	h.logger.Debug("node stopped")
	return err
}

// NodeAddress returns the externally-visible address of the hosted node.
func (h *Harness) NodeAddress() *address.Address {
	return h.node.Address()
}

// BootstrapProvider returns the named bootstrap provider, nil when the node has none by that name.
func (h *Harness) BootstrapProvider(name string) (node.BootstrapProvider, error) {
	providers, err := h.providers()
	if err != nil {
		return nil, err
	}

	provider, ok := providers.BootstrapProvider(name)
	if !ok {
		return nil, nil
	}
	return boundary.Check(provider, bootstrapProviderRole)
}

// StorageProvider returns the named storage provider, nil when the node has none by that name.
func (h *Harness) StorageProvider(name string) (node.StorageProvider, error) {
	providers, err := h.providers()
	if err != nil {
		return nil, err
	}

	provider, ok := providers.StorageProvider(name)
	if !ok {
		return nil, nil
	}
	return boundary.Check(provider, storageProviderRole)
}

// EntriesMatching returns the ordinary grain entries of the local directory
// whose kind contains substring. See directory.Inspector for the matching rules.
func (h *Harness) EntriesMatching(substring string) (map[node.GrainID]node.GrainAddress, error) {
	endpoint, err := h.hooks()
	if err != nil {
		return nil, err
	}

	dir, err := endpoint.directory()
	if err != nil {
		return nil, err
	}
	return directory.NewInspector(dir).EntriesMatching(substring), nil
}

// BlockCommunication drops outgoing messages sent to destination with the
// given probability, expressed in percent. Calling it again for the same
// destination replaces the percentage.
func (h *Harness) BlockCommunication(destination *address.Address, percentage int) error {
	endpoint, err := h.hooks()
	if err != nil {
		return err
	}

	center, err := endpoint.messageCenter()
	if err != nil {
		return err
	}

	if err := h.injector.Block(destination, percentage); err != nil {
		return err
	}

	center.SetShouldDrop(h.injector.ShouldDrop)
	h.logger.Debugf("blocking %d%% of messages to %s", percentage, destination)
	return nil
}

// UnblockCommunication removes every loss rule and restores admit-all on the message center.
func (h *Harness) UnblockCommunication() error {
	endpoint, err := h.hooks()
	if err != nil {
		return err
	}

	if err := resetMessageCenter(endpoint); err != nil {
		return err
	}

	h.injector.Unblock()
	h.logger.Debug("communication unblocked")
	return nil
}

// LossPercentage returns the loss percentage configured for destination, 0 when none.
func (h *Harness) LossPercentage(destination *address.Address) int {
	return h.injector.LossPercentage(destination)
}

// ProtocolFilter returns the protocol message filter installed on the
// membership oracle, nil when every protocol message is admitted.
func (h *Harness) ProtocolFilter() (node.ProtocolFilter, error) {
	relay, err := h.relay()
	if err != nil {
		return nil, err
	}
	return relay.Filter(), nil
}

// SetProtocolFilter replaces the protocol message filter of the membership
// oracle. A nil filter admits every protocol message.
func (h *Harness) SetProtocolFilter(filter node.ProtocolFilter) error {
	relay, err := h.relay()
	if err != nil {
		return err
	}
	relay.SetFilter(filter)
	return nil
}

func (h *Harness) hooks() (*hooks, error) {
	return node.Lookup[*hooks](h.node.Services(), node.TestHooksID)
}

func (h *Harness) providers() (node.ProviderManager, error) {
	endpoint, err := h.hooks()
	if err != nil {
		return nil, err
	}
	return endpoint.providers()
}

func (h *Harness) relay() (*protocolfilter.Relay, error) {
	endpoint, err := h.hooks()
	if err != nil {
		return nil, err
	}

	oracle, err := endpoint.oracle()
	if err != nil {
		return nil, err
	}
	return protocolfilter.NewRelay(oracle), nil
}

func resetMessageCenter(endpoint *hooks) error {
	center, err := endpoint.messageCenter()
	if err != nil {
		return err
	}
	center.SetShouldDrop(nil)
	return nil
}

func resetProtocolFilter(endpoint *hooks) error {
	oracle, err := endpoint.oracle()
	if err != nil {
		return err
	}
	protocolfilter.NewRelay(oracle).Reset()
	return nil
}
