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

package directory

import (
	"strings"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/tochemey/goakt-testhooks/node"
)

// only ordinary grains surface through inspection queries
var excluded = mapset.NewSet(node.CategoryUnknown, node.CategorySystem, node.CategoryClient)

// Inspector runs read-only queries over the node's local grain directory.
type Inspector struct {
	directory node.Directory
}

// NewInspector creates an Inspector over directory.
func NewInspector(directory node.Directory) *Inspector {
	return &Inspector{directory: directory}
}

// EntriesMatching scans the directory once and returns the ordinary grain
// entries whose kind contains substring. The match is a plain, case-sensitive
// substring match; the empty substring matches every ordinary entry.
// The returned map is never nil.
func (x *Inspector) EntriesMatching(substring string) map[node.GrainID]node.GrainAddress {
	entries := make(map[node.GrainID]node.GrainAddress)
	if x.directory == nil {
		return entries
	}

	x.directory.Range(func(id node.GrainID, entry node.GrainAddress) bool {
		if excluded.Contains(id.Category()) {
			return true
		}

		if strings.Contains(id.Kind(), substring) {
			entries[id] = entry
		}
		return true
	})
	return entries
}
