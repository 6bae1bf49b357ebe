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

package node

import (
	"fmt"
	"strings"

	"github.com/tochemey/goakt-testhooks/address"
)

const (
	// systemKindPrefix marks the kinds of system targets
	systemKindPrefix = "GoAkt"
	// ClientKind is the kind of client identities
	ClientKind = "GoAktClient"

	identitySeparator = "/"
)

// Category classifies a directory identity.
type Category int

const (
	// CategoryUnknown is an identity that is not an addressable entity
	CategoryUnknown Category = iota
	// CategoryGrain is an ordinary grain
	CategoryGrain
	// CategorySystem is a system target
	CategorySystem
	// CategoryClient is a client connected to the node
	CategoryClient
)

// String returns the textual form of the category
func (c Category) String() string {
	switch c {
	case CategoryGrain:
		return "grain"
	case CategorySystem:
		return "system"
	case CategoryClient:
		return "client"
	default:
		return "unknown"
	}
}

// GrainID identifies an addressable entity in the node directory.
// It is comparable and used as a map key.
type GrainID struct {
	kind     string
	name     string
	category Category
}

// NewGrainID creates a GrainID and classifies it from its kind:
// the client kind is a client, any other GoAkt-prefixed kind is a system
// target, an empty kind or name is unknown, everything else is a grain.
func NewGrainID(kind, name string) GrainID {
	return GrainID{
		kind:     kind,
		name:     name,
		category: classify(kind, name),
	}
}

// NewGrainIDWithCategory creates a GrainID with an explicit category.
func NewGrainIDWithCategory(kind, name string, category Category) GrainID {
	return GrainID{
		kind:     kind,
		name:     name,
		category: category,
	}
}

// Kind returns the logical type name of the entity.
func (g GrainID) Kind() string {
	return g.kind
}

// Name returns the instance name of the entity.
func (g GrainID) Name() string {
	return g.name
}

// Category returns the classification of the entity.
func (g GrainID) Category() Category {
	return g.category
}

// IsGrain reports whether the identity is an ordinary grain.
func (g GrainID) IsGrain() bool {
	return g.category == CategoryGrain
}

// String returns "kind/name"
func (g GrainID) String() string {
	return fmt.Sprintf("%s%s%s", g.kind, identitySeparator, g.name)
}

func classify(kind, name string) Category {
	switch {
	case strings.TrimSpace(kind) == "" || strings.TrimSpace(name) == "":
		return CategoryUnknown
	case kind == ClientKind:
		return CategoryClient
	case strings.HasPrefix(kind, systemKindPrefix):
		return CategorySystem
	default:
		return CategoryGrain
	}
}

// GrainAddress is the placement metadata of a directory entry.
type GrainAddress struct {
	// Grain is the identity the entry belongs to
	Grain GrainID
	// Node is the node hosting the activation
	Node *address.Address
	// ActivationID identifies the activation on that node
	ActivationID string
}

// Directory is the node's local directory of address mappings.
type Directory interface {
	Service
	// Range calls fn for each entry until fn returns false. It must not mutate the directory.
	Range(fn func(id GrainID, entry GrainAddress) bool)
}
