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

package faults

import (
	"runtime"
	"sync"

	"github.com/zeebo/xxh3"
)

const maxShards = 64

type shard struct {
	sync.RWMutex
	m map[string]int
}

// lossTable maps a destination endpoint to its loss percentage.
// Reads and single-key upserts only lock the shard owning the key.
type lossTable []*shard

func newLossTable() lossTable {
	numShards := calculateNumShards()
	shards := make([]*shard, numShards)
	for i := range numShards {
		shards[i] = &shard{m: make(map[string]int)}
	}
	return shards
}

// get returns the loss percentage of key, 0 when absent
func (t lossTable) get(key string) int {
	s := t.shard(key)
	s.RLock()
	percentage := s.m[key]
	s.RUnlock()
	return percentage
}

// set upserts key and reports whether the key is new
func (t lossTable) set(key string, percentage int) bool {
	s := t.shard(key)
	s.Lock()
	_, exists := s.m[key]
	s.m[key] = percentage
	s.Unlock()
	return !exists
}

func (t lossTable) len() int {
	var size int
	for _, s := range t {
		s.RLock()
		size += len(s.m)
		s.RUnlock()
	}
	return size
}

func (t lossTable) shard(key string) *shard {
	return t[xxh3.HashString(key)%uint64(len(t))]
}

func calculateNumShards() int {
	return min(runtime.NumCPU()*4, maxShards)
}
