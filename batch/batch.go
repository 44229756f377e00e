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

// Package batch digests many independent values concurrently. Each worker
// owns its hash state, so no sink is ever shared between encodes.
package batch

import (
	"context"
	"errors"
	"fmt"
	"hash"
	"log/slog"
	"sync"
	"time"

	"github.com/blinklabs-io/canonhash"
	"github.com/blinklabs-io/canonhash/hasher"
)

// ErrEncodeAborted is returned when encoding a value panicked, which happens
// when its EncodeDigest method violates the slot contract
var ErrEncodeAborted = errors.New("batch: encode aborted")

// Digester computes digests of values in parallel
type Digester struct {
	config  Config
	logger  *slog.Logger
	metrics *Metrics
}

// New creates a Digester using functional options
//
// Example:
//
//	d, err := batch.New(
//	    batch.WithTag("orders"),
//	    batch.WithAlgorithm(hasher.Blake2b256),
//	)
func New(opts ...Option) (*Digester, error) {
	config := DefaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	config.normalize()
	if _, err := hasher.New(config.Algorithm); err != nil {
		return nil, err
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Digester{
		config:  config,
		logger:  logger,
		metrics: NewMetrics(),
	}, nil
}

// Config returns the configuration in effect
func (d *Digester) Config() Config {
	return d.config
}

// Metrics returns the metrics shared by all batches of this Digester
func (d *Digester) Metrics() *Metrics {
	return d.metrics
}

type job struct {
	index int
	value canonhash.Digestable
}

// Digest returns the digests of values in input order. The first value
// that cannot be encoded fails the whole batch; no partial result is
// returned.
func (d *Digester) Digest(
	ctx context.Context,
	values []canonhash.Digestable,
) ([][]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return [][]byte{}, nil
	}
	start := time.Now()
	d.metrics.RecordSubmit(len(values))
	workers := min(d.config.Workers, len(values))
	d.logger.Debug(
		"batch digest started",
		"items",
		len(values),
		"workers",
		workers,
		"algorithm",
		d.config.Algorithm.String(),
	)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	fail := func(err error) {
		errOnce.Do(func() {
			firstErr = err
			cancel()
		})
	}

	results := make([][]byte, len(values))
	jobs := make(chan job, d.config.BufferSize)

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(jobs)
		for i, v := range values {
			select {
			case jobs <- job{index: i, value: v}:
			case <-ctx.Done():
				return
			}
		}
	}()

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.worker(ctx, jobs, results, fail)
		}()
	}
	wg.Wait()
	d.metrics.RecordBatch(time.Since(start))

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func (d *Digester) worker(
	ctx context.Context,
	jobs <-chan job,
	results [][]byte,
	fail func(error),
) {
	h, err := hasher.New(d.config.Algorithm)
	if err != nil {
		fail(err)
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case j, ok := <-jobs:
			if !ok {
				return
			}
			h.Reset()
			sum, err := digestOne(h, d.config.Tag, j)
			d.metrics.RecordDigest(err)
			if err != nil {
				d.logger.Warn(
					"digest aborted",
					"index",
					j.index,
					"error",
					err,
				)
				fail(err)
				return
			}
			// each index is written by exactly one worker
			results[j.index] = sum
		}
	}
}

func digestOne(h hash.Hash, tag string, j job) (sum []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			if rErr, ok := r.(error); ok {
				err = fmt.Errorf("%w: item %d: %w", ErrEncodeAborted, j.index, rErr)
			} else {
				err = fmt.Errorf("%w: item %d: %v", ErrEncodeAborted, j.index, r)
			}
		}
	}()
	if j.value == nil {
		return nil, fmt.Errorf("%w: item %d: nil value", ErrEncodeAborted, j.index)
	}
	return canonhash.Hash(h, tag, j.value), nil
}
