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
	"go.opentelemetry.io/otel/metric"

	"github.com/tochemey/goakt-testhooks/log"
)

// Option is the interface that applies a configuration option.
type Option interface {
	// Apply sets the Option value of a config.
	Apply(h *Harness)
}

// enforce compilation error
var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(*Harness)

// Apply implements Option
func (f OptionFunc) Apply(h *Harness) {
	f(h)
}

// WithLogger sets the harness logger. The harness only logs its own
// lifecycle transitions at debug level. A nil logger is ignored.
func WithLogger(logger log.Logger) Option {
	return OptionFunc(func(h *Harness) {
		if logger != nil {
			h.logger = logger
		}
	})
}

// WithMeterProvider sets the meter provider used to record fault injection metrics.
// Nothing is exported unless a provider is supplied.
func WithMeterProvider(provider metric.MeterProvider) Option {
	return OptionFunc(func(h *Harness) {
		h.meterProvider = provider
	})
}

// WithSeed makes the message loss draws reproducible across runs.
func WithSeed(seed uint64) Option {
	return OptionFunc(func(h *Harness) {
		h.seed = &seed
	})
}
