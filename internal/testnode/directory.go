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

	"github.com/google/uuid"

	"github.com/tochemey/goakt-testhooks/address"
	"github.com/tochemey/goakt-testhooks/internal/xsync"
	"github.com/tochemey/goakt-testhooks/node"
)

// Directory is the local grain directory of the test node.
type Directory struct {
	host    *address.Address
	entries *xsync.Map[node.GrainID, node.GrainAddress]
}

var _ node.Directory = (*Directory)(nil)

func newDirectory(host *address.Address) *Directory {
	return &Directory{
		host:    host,
		entries: xsync.NewMap[node.GrainID, node.GrainAddress](),
	}
}

// ID implements node.Service
func (x *Directory) ID() string {
	return node.DirectoryID
}

// Activate records an activation of id on this node and returns its directory entry.
func (x *Directory) Activate(id node.GrainID) node.GrainAddress {
	entry := node.GrainAddress{
		Grain:        id,
		Node:         x.host,
		ActivationID: uuid.NewString(),
	}
	x.entries.Set(id, entry)
	return entry
}

// Deactivate removes the entry of id.
func (x *Directory) Deactivate(id node.GrainID) {
	x.entries.Delete(id)
}

// Len returns the number of entries, internal ones included.
func (x *Directory) Len() int {
	return x.entries.Len()
}

// Range implements node.Directory
func (x *Directory) Range(fn func(id node.GrainID, entry node.GrainAddress) bool) {
	x.entries.Range(fn)
}

func (x *Directory) stop(context.Context) error {
	x.entries.Reset()
	return nil
}
