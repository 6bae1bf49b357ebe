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
	"github.com/tochemey/goakt-testhooks/node"
)

// Providers holds the bootstrap and storage providers configured on the test node.
type Providers struct {
	bootstrap map[string]node.BootstrapProvider
	storage   map[string]node.StorageProvider
}

var _ node.ProviderManager = (*Providers)(nil)

func newProviders(bootstrap []node.BootstrapProvider, storage []node.StorageProvider) *Providers {
	providers := &Providers{
		bootstrap: make(map[string]node.BootstrapProvider, len(bootstrap)),
		storage:   make(map[string]node.StorageProvider, len(storage)),
	}
	for _, provider := range bootstrap {
		providers.bootstrap[provider.Name()] = provider
	}
	for _, provider := range storage {
		providers.storage[provider.Name()] = provider
	}
	return providers
}

// ID implements node.Service
func (x *Providers) ID() string {
	return node.ProvidersID
}

// BootstrapProvider implements node.ProviderManager
func (x *Providers) BootstrapProvider(name string) (node.BootstrapProvider, bool) {
	provider, ok := x.bootstrap[name]
	return provider, ok
}

// StorageProvider implements node.ProviderManager
func (x *Providers) StorageProvider(name string) (node.StorageProvider, bool) {
	provider, ok := x.storage[name]
	return provider, ok
}

// RemoteProvider is a provider handed to the driver by reference.
type RemoteProvider struct {
	name string
}

// NewRemoteProvider creates a remote-callable provider.
func NewRemoteProvider(name string) *RemoteProvider {
	return &RemoteProvider{name: name}
}

// Name returns the provider name
func (x *RemoteProvider) Name() string { return x.name }

// RemoteCallable marks the provider as remote-callable
func (x *RemoteProvider) RemoteCallable() {}

// LocalProvider is a provider that cannot leave the node.
type LocalProvider struct {
	name string
}

// NewLocalProvider creates a node-local provider.
func NewLocalProvider(name string) *LocalProvider {
	return &LocalProvider{name: name}
}

// Name returns the provider name
func (x *LocalProvider) Name() string { return x.name }
