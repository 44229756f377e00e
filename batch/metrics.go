// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package batch

import (
	"sync"
	"sync/atomic"
	"time"
)

// Metrics tracks digest counts. It is safe for concurrent use.
type Metrics struct {
	submitted atomic.Uint64
	digested  atomic.Uint64
	failed    atomic.Uint64

	mu           sync.RWMutex
	lastDuration time.Duration
	startTime    time.Time
}

// Stats is a snapshot of Metrics
type Stats struct {
	Submitted uint64
	Digested  uint64
	Failed    uint64
	// LastBatchDuration is the wall time of the most recent batch
	LastBatchDuration time.Duration
	StartTime         time.Time
}

func NewMetrics() *Metrics {
	return &Metrics{
		startTime: time.Now(),
	}
}

// RecordSubmit adds n submitted values
func (m *Metrics) RecordSubmit(n int) {
	m.submitted.Add(uint64(n)) // #nosec G115
}

// RecordDigest records the outcome of one value
func (m *Metrics) RecordDigest(err error) {
	if err != nil {
		m.failed.Add(1)
	} else {
		m.digested.Add(1)
	}
}

// RecordBatch records the wall time of a finished batch
func (m *Metrics) RecordBatch(duration time.Duration) {
	m.mu.Lock()
	m.lastDuration = duration
	m.mu.Unlock()
}

// Stats returns a snapshot of the current metrics
func (m *Metrics) Stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Stats{
		Submitted:         m.submitted.Load(),
		Digested:          m.digested.Load(),
		Failed:            m.failed.Load(),
		LastBatchDuration: m.lastDuration,
		StartTime:         m.startTime,
	}
}

// Reset resets all metrics
func (m *Metrics) Reset() {
	m.submitted.Store(0)
	m.digested.Store(0)
	m.failed.Store(0)

	m.mu.Lock()
	m.lastDuration = 0
	m.startTime = time.Now()
	m.mu.Unlock()
}
