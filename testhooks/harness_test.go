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

package testhooks

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/tochemey/goakt-testhooks/address"
	gerrors "github.com/tochemey/goakt-testhooks/errors"
	"github.com/tochemey/goakt-testhooks/internal/testnode"
	"github.com/tochemey/goakt-testhooks/log"
	"github.com/tochemey/goakt-testhooks/node"
)

var errMeter = errors.New("meter unavailable")

type failingMeterProvider struct {
	noop.MeterProvider
}

func (failingMeterProvider) Meter(string, ...metric.MeterOption) metric.Meter {
	return failingMeter{}
}

type failingMeter struct {
	noop.Meter
}

func (failingMeter) Int64Counter(string, ...metric.Int64CounterOption) (metric.Int64Counter, error) {
	return nil, errMeter
}

func newTestNode(opts ...testnode.Option) *testnode.Node {
	return testnode.New(append([]testnode.Option{testnode.WithHost("127.0.0.1")}, opts...)...)
}

func send(ctx context.Context, center *testnode.MessageCenter, to *address.Address, count int) int {
	delivered := 0
	for range count {
		if center.Send(ctx, testnode.Envelope{To: to}) {
			delivered++
		}
	}
	return delivered
}

func TestNew(t *testing.T) {
	t.Run("With undefined factory", func(t *testing.T) {
		harness, err := New(nil)
		require.ErrorIs(t, err, gerrors.ErrUndefinedFactory)
		assert.Nil(t, harness)
	})
	t.Run("With factory failure", func(t *testing.T) {
		fault := errors.New("invalid configuration")
		harness, err := New(node.FactoryFunc(func() (node.Node, error) { return nil, fault }))
		require.ErrorIs(t, err, fault)
		assert.Nil(t, harness)
	})
	t.Run("With factory returning no node", func(t *testing.T) {
		harness, err := New(node.FactoryFunc(func() (node.Node, error) { return nil, nil }))
		require.ErrorIs(t, err, gerrors.ErrUndefinedNode)
		assert.Nil(t, harness)
	})
	t.Run("With failing meter provider", func(t *testing.T) {
		harness, err := New(newTestNode().Factory(), WithMeterProvider(failingMeterProvider{}))
		require.ErrorIs(t, err, errMeter)
		assert.Nil(t, harness)
	})
	t.Run("With hooks registered before start", func(t *testing.T) {
		hosted := newTestNode()
		harness, err := New(hosted.Factory())
		require.NoError(t, err)
		require.NotNil(t, harness)
		assert.Contains(t, hosted.ServiceIDs(), node.TestHooksID)
		assert.Zero(t, hosted.Starts())
	})
	t.Run("With node already hosted", func(t *testing.T) {
		hosted := newTestNode()
		_, err := New(hosted.Factory())
		require.NoError(t, err)
		_, err = New(hosted.Factory())
		require.ErrorIs(t, err, gerrors.ErrServiceAlreadyRegistered)
	})
}

func TestLifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run("With start and stop", func(t *testing.T) {
		hosted := newTestNode()
		harness, err := New(hosted.Factory())
		require.NoError(t, err)

		require.NoError(t, harness.Start(ctx))
		assert.True(t, hosted.Running())
		// already started
		require.NoError(t, harness.Start(ctx))
		assert.Equal(t, 1, hosted.Starts())

		require.NoError(t, harness.Stop(ctx))
		assert.False(t, hosted.Running())
		// already stopped
		require.NoError(t, harness.Stop(ctx))
		assert.Equal(t, 1, hosted.Stops())
	})
	t.Run("With startup failure", func(t *testing.T) {
		fault := errors.New("cannot bind address")
		hosted := newTestNode(testnode.WithStartupFault(fault))
		harness, err := New(hosted.Factory())
		require.NoError(t, err)

		err = harness.Start(ctx)
		require.ErrorIs(t, err, gerrors.ErrStartupFailure)
		require.ErrorIs(t, err, fault)
		assert.False(t, hosted.Running())
		assert.Equal(t, 1, hosted.Stops())
		assert.Empty(t, hosted.ServiceIDs())

		// not retried
		assert.Equal(t, err, harness.Start(ctx))
		assert.Equal(t, 1, hosted.Starts())

		require.NoError(t, harness.Stop(ctx))
		assert.Equal(t, 1, hosted.Stops())
	})
	t.Run("With canceled start", func(t *testing.T) {
		hosted := newTestNode()
		harness, err := New(hosted.Factory())
		require.NoError(t, err)

		canceled, cancel := context.WithCancel(ctx)
		cancel()
		err = harness.Start(canceled)
		require.ErrorIs(t, err, gerrors.ErrStartupFailure)
		require.ErrorIs(t, err, context.Canceled)
		assert.False(t, hosted.Running())
	})
	t.Run("With shutdown failure", func(t *testing.T) {
		fault := errors.New("flush failed")
		hosted := newTestNode(testnode.WithShutdownFault(fault))
		harness, err := New(hosted.Factory())
		require.NoError(t, err)

		require.NoError(t, harness.Start(ctx))
		require.ErrorIs(t, harness.Stop(ctx), fault)
		require.NoError(t, harness.Stop(ctx))
		assert.Equal(t, 1, hosted.Stops())
	})
	t.Run("With logger", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		hosted := newTestNode()
		harness, err := New(hosted.Factory(), WithLogger(log.NewZap(log.DebugLevel, buffer)))
		require.NoError(t, err)

		require.NoError(t, harness.Start(ctx))
		require.NoError(t, harness.Stop(ctx))

		output := buffer.String()
		assert.Contains(t, output, "node started")
		assert.Contains(t, output, "node stopped")
		assert.Contains(t, output, hosted.Address().String())
	})
	t.Run("With nil logger", func(t *testing.T) {
		hosted := newTestNode()
		harness, err := New(hosted.Factory(), WithLogger(nil))
		require.NoError(t, err)
		require.NoError(t, harness.Start(ctx))
		require.NoError(t, harness.Stop(ctx))
	})
	t.Run("With start then stop nothing leaks to a fresh harness", func(t *testing.T) {
		destination := address.New("orders", "127.0.0.1", 9001)
		first := newTestNode()
		harness, err := New(first.Factory())
		require.NoError(t, err)
		require.NoError(t, harness.Start(ctx))
		require.NoError(t, harness.BlockCommunication(destination, 100))
		require.NoError(t, harness.SetProtocolFilter(func(node.ProtocolMessage) bool { return false }))
		require.NoError(t, harness.Stop(ctx))

		assert.False(t, first.MessageCenter().HasDropPredicate())
		assert.Nil(t, first.Oracle().ProtocolFilter())
		assert.Zero(t, harness.LossPercentage(destination))

		second := newTestNode()
		fresh := NewTestHarness(t, second.Factory())
		assert.Zero(t, fresh.LossPercentage(destination))
		assert.False(t, second.MessageCenter().HasDropPredicate())

		filter, err := fresh.ProtocolFilter()
		require.NoError(t, err)
		assert.Nil(t, filter)
		assert.Equal(t, 10, send(ctx, second.MessageCenter(), destination, 10))
	})
}

// durableNode keeps its service registry across Stop.
type durableNode struct {
	*testnode.Node
	mu       sync.RWMutex
	services map[string]node.Service
}

var _ node.Node = (*durableNode)(nil)

func newDurableNode() *durableNode {
	hosted := newTestNode()
	services := make(map[string]node.Service)
	for _, id := range hosted.ServiceIDs() {
		services[id], _ = hosted.Services().Service(id)
	}
	return &durableNode{Node: hosted, services: services}
}

func (n *durableNode) Services() node.ServiceRegistry { return n }

func (n *durableNode) Register(service node.Service) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, ok := n.services[service.ID()]; ok {
		return gerrors.NewErrServiceAlreadyRegistered(service.ID())
	}
	n.services[service.ID()] = service
	return nil
}

func (n *durableNode) Service(id string) (node.Service, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	service, ok := n.services[id]
	return service, ok
}

func TestAfterStop(t *testing.T) {
	ctx := context.Background()

	t.Run("With registry torn down", func(t *testing.T) {
		hosted := newTestNode(testnode.WithStorageProviders(testnode.NewRemoteProvider("memory")))
		harness, err := New(hosted.Factory())
		require.NoError(t, err)
		require.NoError(t, harness.Start(ctx))
		require.NoError(t, harness.Stop(ctx))

		destination := address.New("orders", "127.0.0.1", 9001)

		assert.ErrorIs(t, harness.Start(ctx), gerrors.ErrServiceNotFound)
		assert.ErrorIs(t, harness.BlockCommunication(destination, 50), gerrors.ErrServiceNotFound)
		assert.ErrorIs(t, harness.UnblockCommunication(), gerrors.ErrServiceNotFound)
		assert.ErrorIs(t, harness.SetProtocolFilter(nil), gerrors.ErrServiceNotFound)

		_, err = harness.ProtocolFilter()
		assert.ErrorIs(t, err, gerrors.ErrServiceNotFound)
		_, err = harness.EntriesMatching("")
		assert.ErrorIs(t, err, gerrors.ErrServiceNotFound)
		_, err = harness.StorageProvider("memory")
		assert.ErrorIs(t, err, gerrors.ErrServiceNotFound)
		_, err = harness.BootstrapProvider("seed")
		assert.ErrorIs(t, err, gerrors.ErrServiceNotFound)

		// the address stays readable
		assert.True(t, harness.NodeAddress().Equals(hosted.Address()))
	})
	t.Run("With registry surviving stop", func(t *testing.T) {
		hosted := newDurableNode()
		harness, err := New(node.FactoryFunc(func() (node.Node, error) { return hosted, nil }))
		require.NoError(t, err)

		require.NoError(t, harness.Start(ctx))
		require.NoError(t, harness.Stop(ctx))
		_, ok := hosted.Service(node.TestHooksID)
		require.True(t, ok)

		// no restart
		assert.ErrorIs(t, harness.Start(ctx), gerrors.ErrServiceNotFound)
		require.NoError(t, harness.Stop(ctx))

		assert.Equal(t, 1, hosted.Starts())
		assert.Equal(t, 1, hosted.Stops())
		assert.False(t, hosted.Running())
	})
}

func TestProviders(t *testing.T) {
	hosted := newTestNode(
		testnode.WithBootstrapProviders(testnode.NewRemoteProvider("seed"), testnode.NewLocalProvider("local-seed")),
		testnode.WithStorageProviders(testnode.NewRemoteProvider("memory"), testnode.NewLocalProvider("disk")),
	)
	harness := NewTestHarness(t, hosted.Factory())

	t.Run("With remote-callable bootstrap provider", func(t *testing.T) {
		provider, err := harness.BootstrapProvider("seed")
		require.NoError(t, err)
		require.NotNil(t, provider)
		assert.Equal(t, "seed", provider.Name())
	})
	t.Run("With remote-callable storage provider", func(t *testing.T) {
		provider, err := harness.StorageProvider("memory")
		require.NoError(t, err)
		require.NotNil(t, provider)
		assert.Equal(t, "memory", provider.Name())
	})
	t.Run("With missing provider", func(t *testing.T) {
		provider, err := harness.StorageProvider("missing")
		require.NoError(t, err)
		assert.Nil(t, provider)

		bootstrap, err := harness.BootstrapProvider("missing")
		require.NoError(t, err)
		assert.Nil(t, bootstrap)
	})
	t.Run("With node-local storage provider", func(t *testing.T) {
		provider, err := harness.StorageProvider("disk")
		require.ErrorIs(t, err, gerrors.ErrBoundaryViolation)
		assert.Nil(t, provider)

		var violation *gerrors.BoundaryViolation
		require.ErrorAs(t, err, &violation)
		assert.Equal(t, "*testnode.LocalProvider", violation.Type)
		assert.Equal(t, storageProviderRole, violation.Role)
	})
	t.Run("With node-local bootstrap provider", func(t *testing.T) {
		_, err := harness.BootstrapProvider("local-seed")
		var violation *gerrors.BoundaryViolation
		require.ErrorAs(t, err, &violation)
		assert.Equal(t, bootstrapProviderRole, violation.Role)
	})
}

func TestEntriesMatching(t *testing.T) {
	hosted := newTestNode()
	harness := NewTestHarness(t, hosted.Factory())

	cart := hosted.Directory().Activate(node.NewGrainID("orders.CartGrain", "cart-1"))
	invoice := hosted.Directory().Activate(node.NewGrainID("billing.InvoiceGrain", "invoice-1"))
	hosted.Directory().Activate(node.NewGrainID("GoAktDeadletter", "deadletter"))
	hosted.Directory().Activate(node.NewGrainID(node.ClientKind, "client-1"))
	hosted.Directory().Activate(node.NewGrainID("orders.LostGrain", ""))

	t.Run("With empty substring", func(t *testing.T) {
		entries, err := harness.EntriesMatching("")
		require.NoError(t, err)
		assert.Equal(t, map[node.GrainID]node.GrainAddress{
			cart.Grain:    cart,
			invoice.Grain: invoice,
		}, entries)
	})
	t.Run("With substring", func(t *testing.T) {
		entries, err := harness.EntriesMatching("orders.")
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, cart, entries[cart.Grain])
	})
	t.Run("With substring matching internal entries only", func(t *testing.T) {
		entries, err := harness.EntriesMatching("GoAkt")
		require.NoError(t, err)
		require.NotNil(t, entries)
		assert.Empty(t, entries)
	})
	t.Run("With case sensitive match", func(t *testing.T) {
		entries, err := harness.EntriesMatching("cartgrain")
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
	t.Run("With directory left untouched", func(t *testing.T) {
		_, err := harness.EntriesMatching("")
		require.NoError(t, err)
		assert.Equal(t, 5, hosted.Directory().Len())
	})
}

func TestBlockCommunication(t *testing.T) {
	ctx := context.Background()
	destination := address.New("orders", "127.0.0.1", 9001)
	other := address.New("orders", "127.0.0.1", 9002)

	t.Run("With full loss", func(t *testing.T) {
		hosted := newTestNode()
		harness := NewTestHarness(t, hosted.Factory())

		require.NoError(t, harness.BlockCommunication(destination, 100))
		assert.Equal(t, 100, harness.LossPercentage(destination))
		assert.True(t, hosted.MessageCenter().HasDropPredicate())
		assert.Zero(t, send(ctx, hosted.MessageCenter(), destination, 100))
		assert.Equal(t, 100, send(ctx, hosted.MessageCenter(), other, 100))
	})
	t.Run("With zero loss", func(t *testing.T) {
		hosted := newTestNode()
		harness := NewTestHarness(t, hosted.Factory())

		require.NoError(t, harness.BlockCommunication(destination, 0))
		assert.Equal(t, 100, send(ctx, hosted.MessageCenter(), destination, 100))
	})
	t.Run("With partial loss", func(t *testing.T) {
		const total = 20_000
		hosted := newTestNode()
		harness := NewTestHarness(t, hosted.Factory(), WithSeed(42))

		require.NoError(t, harness.BlockCommunication(destination, 50))
		delivered := send(ctx, hosted.MessageCenter(), destination, total)
		assert.InDelta(t, 0.5, float64(delivered)/total, 0.02)
		assert.Equal(t, total, send(ctx, hosted.MessageCenter(), other, total))
	})
	t.Run("With upsert", func(t *testing.T) {
		hosted := newTestNode()
		harness := NewTestHarness(t, hosted.Factory())

		require.NoError(t, harness.BlockCommunication(destination, 100))
		require.NoError(t, harness.BlockCommunication(destination, 0))
		assert.Zero(t, harness.LossPercentage(destination))
		assert.Equal(t, 10, send(ctx, hosted.MessageCenter(), destination, 10))
	})
	t.Run("With invalid input", func(t *testing.T) {
		hosted := newTestNode()
		harness := NewTestHarness(t, hosted.Factory())

		assert.ErrorIs(t, harness.BlockCommunication(destination, 101), gerrors.ErrInvalidLossPercentage)
		assert.ErrorIs(t, harness.BlockCommunication(destination, -1), gerrors.ErrInvalidLossPercentage)
		assert.ErrorIs(t, harness.BlockCommunication(nil, 50), gerrors.ErrUndefinedDestination)
		assert.False(t, hosted.MessageCenter().HasDropPredicate())
	})
	t.Run("With unblock", func(t *testing.T) {
		hosted := newTestNode()
		harness := NewTestHarness(t, hosted.Factory())

		require.NoError(t, harness.BlockCommunication(destination, 100))
		require.NoError(t, harness.BlockCommunication(other, 75))
		require.NoError(t, harness.UnblockCommunication())

		assert.False(t, hosted.MessageCenter().HasDropPredicate())
		assert.Zero(t, harness.LossPercentage(destination))
		assert.Zero(t, harness.LossPercentage(other))
		assert.Equal(t, 10, send(ctx, hosted.MessageCenter(), destination, 10))
		assert.Equal(t, 10, send(ctx, hosted.MessageCenter(), other, 10))
	})
	t.Run("With unblock before any block", func(t *testing.T) {
		hosted := newTestNode()
		harness := NewTestHarness(t, hosted.Factory())
		require.NoError(t, harness.UnblockCommunication())
		assert.False(t, hosted.MessageCenter().HasDropPredicate())
	})
	t.Run("With concurrent senders", func(t *testing.T) {
		hosted := newTestNode()
		harness := NewTestHarness(t, hosted.Factory())

		var wg sync.WaitGroup
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				send(ctx, hosted.MessageCenter(), destination, 1_000)
			}()
		}

		for range 50 {
			require.NoError(t, harness.BlockCommunication(destination, 60))
			require.NoError(t, harness.UnblockCommunication())
		}
		wg.Wait()

		assert.EqualValues(t, 8_000, hosted.MessageCenter().Sent())
		assert.Zero(t, harness.LossPercentage(destination))
	})
}

func TestProtocolFilter(t *testing.T) {
	hosted := newTestNode()
	harness := NewTestHarness(t, hosted.Factory())
	peer := address.New("orders", "127.0.0.1", 9001)
	ping := testnode.ProtocolEnvelope{From: peer, To: hosted.Address(), Kind: "ping"}
	join := testnode.ProtocolEnvelope{From: peer, To: hosted.Address(), Kind: "join"}

	filter, err := harness.ProtocolFilter()
	require.NoError(t, err)
	assert.Nil(t, filter)
	assert.True(t, hosted.Oracle().Process(ping))

	require.NoError(t, harness.SetProtocolFilter(func(message node.ProtocolMessage) bool {
		return message.Type() != "ping"
	}))
	filter, err = harness.ProtocolFilter()
	require.NoError(t, err)
	require.NotNil(t, filter)
	assert.False(t, filter(ping))
	assert.False(t, hosted.Oracle().Process(ping))
	assert.True(t, hosted.Oracle().Process(join))

	// the latest filter wins
	require.NoError(t, harness.SetProtocolFilter(func(message node.ProtocolMessage) bool {
		return message.Type() != "join"
	}))
	assert.True(t, hosted.Oracle().Process(ping))
	assert.False(t, hosted.Oracle().Process(join))

	// unblocking communication leaves the filter alone
	require.NoError(t, harness.UnblockCommunication())
	filter, err = harness.ProtocolFilter()
	require.NoError(t, err)
	assert.NotNil(t, filter)

	require.NoError(t, harness.SetProtocolFilter(nil))
	filter, err = harness.ProtocolFilter()
	require.NoError(t, err)
	assert.Nil(t, filter)
	assert.True(t, hosted.Oracle().Process(join))
}

func TestNodeAddress(t *testing.T) {
	hosted := newTestNode(testnode.WithSystem("orders"), testnode.WithPort(9050))
	harness := NewTestHarness(t, hosted.Factory())
	assert.Equal(t, "goakt://orders@127.0.0.1:9050", harness.NodeAddress().String())
}
