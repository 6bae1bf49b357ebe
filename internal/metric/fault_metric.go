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

package metric

import "go.opentelemetry.io/otel/metric"

const (
	droppedMessagesName = "testhooks.messages.dropped"
	lossRulesName       = "testhooks.loss.rules"
)

// FaultMetric groups the OpenTelemetry instruments of the fault injector.
//
// Instruments:
//   - testhooks.messages.dropped (Int64Counter)
//   - testhooks.loss.rules       (Int64UpDownCounter)
type FaultMetric struct {
	droppedCount metric.Int64Counter
	rulesCount   metric.Int64UpDownCounter
}

// NewFaultMetric creates the fault injector instruments using the provided Meter.
// It returns an error if any instrument cannot be created.
func NewFaultMetric(meter metric.Meter) (*FaultMetric, error) {
	var instruments FaultMetric
	var err error

	if instruments.droppedCount, err = meter.Int64Counter(
		droppedMessagesName,
		metric.WithDescription("Total number of outgoing messages dropped by simulated message loss"),
	); err != nil {
		return nil, err
	}

	if instruments.rulesCount, err = meter.Int64UpDownCounter(
		lossRulesName,
		metric.WithDescription("Number of destinations with a configured loss percentage"),
	); err != nil {
		return nil, err
	}

	return &instruments, nil
}

// DroppedCount returns the counter incremented for every dropped message.
func (x *FaultMetric) DroppedCount() metric.Int64Counter {
	return x.droppedCount
}

// RulesCount returns the up-down counter tracking configured destinations.
func (x *FaultMetric) RulesCount() metric.Int64UpDownCounter {
	return x.rulesCount
}
