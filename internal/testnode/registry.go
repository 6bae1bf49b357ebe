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
	"slices"

	gerrors "github.com/tochemey/goakt-testhooks/errors"
	"github.com/tochemey/goakt-testhooks/internal/xsync"
	"github.com/tochemey/goakt-testhooks/node"
)

// registry is the node service registry. reset tears it down on shutdown.
type registry struct {
	services *xsync.Map[string, node.Service]
}

var _ node.ServiceRegistry = (*registry)(nil)

func newRegistry() *registry {
	return &registry{services: xsync.NewMap[string, node.Service]()}
}

// Register implements node.ServiceRegistry
func (r *registry) Register(service node.Service) error {
	if service == nil {
		return gerrors.ErrInvalidServiceID
	}

	id := service.ID()
	if err := node.ValidateServiceID(id); err != nil {
		return err
	}

	if !r.services.SetIfAbsent(id, service) {
		return gerrors.NewErrServiceAlreadyRegistered(id)
	}
	return nil
}

// Service implements node.ServiceRegistry
func (r *registry) Service(id string) (node.Service, bool) {
	return r.services.Get(id)
}

func (r *registry) ids() []string {
	ids := r.services.Keys()
	slices.Sort(ids)
	return ids
}

func (r *registry) reset() {
	r.services.Reset()
}
