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

// Package boundary gates what may cross the isolation boundary between the
// test driver and the hosted node.
//
// A value is boundary-safe when it is nil, when it is passed by reference
// through a remote-callable handle (Remotable), or when it can be copied
// across the boundary on the wire (proto.Message). Anything else is rejected
// with a BoundaryViolation naming the offending concrete type.
package boundary

import (
	"reflect"

	"google.golang.org/protobuf/proto"

	gerrors "github.com/tochemey/goakt-testhooks/errors"
)

// Remotable is implemented by node-side types handed to the driver by reference.
type Remotable interface {
	// RemoteCallable marks the type as remote-callable.
	RemoteCallable()
}

// Check returns value unchanged when it is boundary-safe and a
// BoundaryViolation labelled with role otherwise.
//
// Check is meant for values originating from node-internal services. Values
// built by the harness itself do not need to go through it.
func Check[T any](value T, role string) (T, error) {
	if IsSafe(value) {
		return value, nil
	}
	var zero T
	return zero, gerrors.NewBoundaryViolation(value, role)
}

// IsSafe reports whether value may cross the boundary.
func IsSafe(value any) bool {
	if isNil(value) {
		return true
	}

	switch value.(type) {
	case Remotable, proto.Message:
		return true
	default:
		return false
	}
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
