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
	"github.com/tochemey/goakt-testhooks/node"
)

// hooks is the control endpoint the harness registers inside the node.
// Every accessor resolves its collaborator on demand, so once the node tears
// down its registry all of them fail with ErrServiceNotFound.
type hooks struct {
	registry node.ServiceRegistry
}

var _ node.Service = (*hooks)(nil)

func newHooks(registry node.ServiceRegistry) *hooks {
	return &hooks{registry: registry}
}

// ID implements node.Service
func (x *hooks) ID() string {
	return node.TestHooksID
}

func (x *hooks) messageCenter() (node.MessageCenter, error) {
	return node.Lookup[node.MessageCenter](x.registry, node.MessageCenterID)
}

func (x *hooks) oracle() (node.MembershipOracle, error) {
	return node.Lookup[node.MembershipOracle](x.registry, node.MembershipOracleID)
}

func (x *hooks) directory() (node.Directory, error) {
	return node.Lookup[node.Directory](x.registry, node.DirectoryID)
}

func (x *hooks) providers() (node.ProviderManager, error) {
	return node.Lookup[node.ProviderManager](x.registry, node.ProvidersID)
}
