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

// Package testnode provides an in-process implementation of the node
// contracts. It hosts the services the harness talks to (message center,
// membership oracle, directory and providers) without any real clustering,
// so harness behavior can be exercised end to end in unit tests.
package testnode

import (
	"context"
	"time"

	sockaddr "github.com/hashicorp/go-sockaddr"
	"github.com/travisjeffery/go-dynaport"
	"go.uber.org/atomic"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/tochemey/goakt-testhooks/address"
	"github.com/tochemey/goakt-testhooks/future"
	"github.com/tochemey/goakt-testhooks/log"
	"github.com/tochemey/goakt-testhooks/node"
)

const (
	defaultSystem = "testSystem"
	loopbackHost  = "127.0.0.1"
)

// Option configures a test node
type Option func(*Node)

// WithSystem sets the actor system name
func WithSystem(system string) Option {
	return func(n *Node) { n.system = system }
}

// WithHost sets the node host. The private IP of the machine is used otherwise.
func WithHost(host string) Option {
	return func(n *Node) { n.host = host }
}

// WithPort sets the node port. A free port is picked otherwise.
func WithPort(port int) Option {
	return func(n *Node) { n.port = port }
}

// WithLogger sets the node logger
func WithLogger(logger log.Logger) Option {
	return func(n *Node) { n.logger = logger }
}

// WithStartupFault makes the startup procedure fail with err once subsystems are up.
func WithStartupFault(err error) Option {
	return func(n *Node) { n.startupFault = err }
}

// WithShutdownFault makes the shutdown procedure report err.
func WithShutdownFault(err error) Option {
	return func(n *Node) { n.shutdownFault = err }
}

// WithStartDelay delays the completion of the startup procedure.
func WithStartDelay(delay time.Duration) Option {
	return func(n *Node) { n.startDelay = delay }
}

// WithBootstrapProviders configures the node bootstrap providers
func WithBootstrapProviders(providers ...node.BootstrapProvider) Option {
	return func(n *Node) { n.bootstrap = append(n.bootstrap, providers...) }
}

// WithStorageProviders configures the node storage providers
func WithStorageProviders(providers ...node.StorageProvider) Option {
	return func(n *Node) { n.storage = append(n.storage, providers...) }
}

// Node is an in-process node.
type Node struct {
	system string
	host   string
	port   int
	logger log.Logger

	bootstrap     []node.BootstrapProvider
	storage       []node.StorageProvider
	startupFault  error
	shutdownFault error
	startDelay    time.Duration

	address       *address.Address
	registry      *registry
	messageCenter *MessageCenter
	oracle        *Oracle
	directory     *Directory
	providers     *Providers

	started *atomic.Bool
	starts  *atomic.Int32
	stops   *atomic.Int32
}

var _ node.Node = (*Node)(nil)

// New creates a test node and registers its internal services.
func New(opts ...Option) *Node {
	n := &Node{
		system:  defaultSystem,
		logger:  log.DiscardLogger,
		started: atomic.NewBool(false),
		starts:  atomic.NewInt32(0),
		stops:   atomic.NewInt32(0),
	}

	for _, opt := range opts {
		opt(n)
	}

	if n.host == "" {
		n.host = privateHost()
	}

	if n.port == 0 {
		n.port = dynaport.Get(1)[0]
	}

	n.address = address.New(n.system, n.host, n.port)
	n.messageCenter = newMessageCenter()
	n.oracle = newOracle()
	n.directory = newDirectory(n.address)
	n.providers = newProviders(n.bootstrap, n.storage)
	n.registry = newRegistry()
	for _, service := range []node.Service{n.messageCenter, n.oracle, n.directory, n.providers} {
		// built-in identifiers are valid and distinct
		_ = n.registry.Register(service)
	}
	return n
}

// Factory returns a node.Factory that yields this node.
func (n *Node) Factory() node.Factory {
	return node.FactoryFunc(func() (node.Node, error) {
		return n, nil
	})
}

// Start implements node.Node
func (n *Node) Start(ctx context.Context) future.Future {
	return future.New(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if n.startDelay > 0 {
			timer := time.NewTimer(n.startDelay)
			defer timer.Stop()
			select {
			case <-timer.C:
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		eg, egCtx := errgroup.WithContext(ctx)
		eg.Go(func() error { return n.messageCenter.start(egCtx) })
		eg.Go(func() error { return n.oracle.start(egCtx) })
		if err := eg.Wait(); err != nil {
			return err
		}

		n.starts.Inc()
		if n.startupFault != nil {
			n.logger.Errorf("node %s failed to start: %v", n.address, n.startupFault)
			return n.startupFault
		}

		n.started.Store(true)
		n.logger.Debugf("node %s started", n.address)
		return nil
	})
}

// Stop implements node.Node
func (n *Node) Stop(ctx context.Context) future.Future {
	return future.New(func() error {
		err := multierr.Combine(
			n.messageCenter.stop(ctx),
			n.oracle.stop(ctx),
			n.directory.stop(ctx),
			n.shutdownFault,
		)

		n.registry.reset()
		n.started.Store(false)
		n.stops.Inc()
		n.logger.Debugf("node %s stopped", n.address)
		return err
	})
}

// Address implements node.Node
func (n *Node) Address() *address.Address {
	return n.address
}

// Services implements node.Node
func (n *Node) Services() node.ServiceRegistry {
	return n.registry
}

// ServiceIDs returns the identifiers currently registered, sorted.
func (n *Node) ServiceIDs() []string {
	return n.registry.ids()
}

// MessageCenter returns the node message center
func (n *Node) MessageCenter() *MessageCenter {
	return n.messageCenter
}

// Oracle returns the node membership oracle
func (n *Node) Oracle() *Oracle {
	return n.oracle
}

// Directory returns the node grain directory
func (n *Node) Directory() *Directory {
	return n.directory
}

// Running reports whether the node completed its startup and is not stopped.
func (n *Node) Running() bool {
	return n.started.Load()
}

// Starts returns how many times the startup procedure ran to completion or fault.
func (n *Node) Starts() int {
	return int(n.starts.Load())
}

// Stops returns how many times the shutdown procedure ran.
func (n *Node) Stops() int {
	return int(n.stops.Load())
}

func privateHost() string {
	ip, err := sockaddr.GetPrivateIP()
	if err != nil || ip == "" {
		return loopbackHost
	}
	return ip
}
