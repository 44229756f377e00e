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

package batch_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/blinklabs-io/canonhash"
	"github.com/blinklabs-io/canonhash/batch"
	"github.com/blinklabs-io/canonhash/canon"
	"github.com/blinklabs-io/canonhash/hasher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func values(n int) []canonhash.Digestable {
	ret := make([]canonhash.Digestable, n)
	for i := range ret {
		ret[i] = canonhash.Inline().
			Field("index", canonhash.FromInt(i)).
			Field("label", canonhash.Text(fmt.Sprintf("item-%d", i)))
	}
	return ret
}

func TestDigestPreservesOrder(t *testing.T) {
	defer goleak.VerifyNone(t)

	d, err := batch.New(
		batch.WithWorkers(4),
		batch.WithBufferSize(2),
		batch.WithTag("items"),
		batch.WithAlgorithm(hasher.Blake2b256),
		batch.WithLogger(quietLogger),
	)
	require.NoError(t, err)

	input := values(100)
	sums, err := d.Digest(context.Background(), input)
	require.NoError(t, err)
	require.Len(t, sums, len(input))
	for i, v := range input {
		expected, err := canonhash.Digest(hasher.Blake2b256, "items", v)
		require.NoError(t, err)
		assert.Equal(t, expected, sums[i], "item %d", i)
	}

	stats := d.Metrics().Stats()
	assert.Equal(t, uint64(100), stats.Submitted)
	assert.Equal(t, uint64(100), stats.Digested)
	assert.Equal(t, uint64(0), stats.Failed)
}

func TestDigestWithZeroConfig(t *testing.T) {
	defer goleak.VerifyNone(t)

	tests := []struct {
		name   string
		config batch.Config
	}{
		{"zero workers", batch.Config{Algorithm: hasher.SHA256, BufferSize: 8}},
		{"zero workers and buffer", batch.Config{Algorithm: hasher.SHA256}},
		{"negative buffer", batch.Config{Algorithm: hasher.SHA256, Workers: 2, BufferSize: -1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.config.Logger = quietLogger
			d, err := batch.New(batch.WithConfig(tc.config))
			require.NoError(t, err)
			assert.GreaterOrEqual(t, d.Config().Workers, 1)
			assert.GreaterOrEqual(t, d.Config().BufferSize, 0)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			input := values(3)
			sums, err := d.Digest(ctx, input)
			require.NoError(t, err)
			require.Len(t, sums, len(input))
			for i, v := range input {
				expected, err := canonhash.Digest(hasher.SHA256, "", v)
				require.NoError(t, err)
				assert.Equal(t, expected, sums[i], "item %d", i)
			}
		})
	}
}

func TestDigestEmpty(t *testing.T) {
	defer goleak.VerifyNone(t)

	d, err := batch.New(batch.WithLogger(quietLogger))
	require.NoError(t, err)
	sums, err := d.Digest(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, sums)
}

func TestDigestContractViolation(t *testing.T) {
	defer goleak.VerifyNone(t)

	d, err := batch.New(batch.WithWorkers(2), batch.WithLogger(quietLogger))
	require.NoError(t, err)

	input := values(10)
	input[5] = canon.Func(func(s *canon.Slot) {
		s.Uint8(1)
		s.Uint8(2)
	})
	sums, err := d.Digest(context.Background(), input)
	assert.Nil(t, sums)
	assert.ErrorIs(t, err, batch.ErrEncodeAborted)
	assert.ErrorIs(t, err, canon.ErrSlotReused)
	assert.GreaterOrEqual(t, d.Metrics().Stats().Failed, uint64(1))
}

func TestDigestNilValue(t *testing.T) {
	defer goleak.VerifyNone(t)

	d, err := batch.New(batch.WithLogger(quietLogger))
	require.NoError(t, err)
	_, err = d.Digest(context.Background(), []canonhash.Digestable{nil})
	assert.ErrorIs(t, err, batch.ErrEncodeAborted)
}

func TestDigestCanceledContext(t *testing.T) {
	defer goleak.VerifyNone(t)

	d, err := batch.New(batch.WithLogger(quietLogger))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = d.Digest(ctx, values(3))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewUnknownAlgorithm(t *testing.T) {
	_, err := batch.New(batch.WithAlgorithm("md5"))
	assert.ErrorIs(t, err, hasher.ErrUnknownAlgorithm)
}

func TestOptions(t *testing.T) {
	config := batch.DefaultConfig()
	assert.Equal(t, hasher.DefaultAlgorithm, config.Algorithm)
	assert.GreaterOrEqual(t, config.Workers, 1)

	d, err := batch.New(
		batch.WithConfig(batch.Config{
			Workers:    3,
			Algorithm:  hasher.SHA3_256,
			BufferSize: 5,
		}),
		batch.WithWorkers(0),
		batch.WithBufferSize(-1),
		batch.WithTag("t"),
	)
	require.NoError(t, err)
	got := d.Config()
	assert.Equal(t, 3, got.Workers)
	assert.Equal(t, 5, got.BufferSize)
	assert.Equal(t, hasher.SHA3_256, got.Algorithm)
	assert.Equal(t, "t", got.Tag)
}

func TestMetricsReset(t *testing.T) {
	m := batch.NewMetrics()
	m.RecordSubmit(2)
	m.RecordDigest(nil)
	m.RecordDigest(batch.ErrEncodeAborted)
	stats := m.Stats()
	assert.Equal(t, uint64(2), stats.Submitted)
	assert.Equal(t, uint64(1), stats.Digested)
	assert.Equal(t, uint64(1), stats.Failed)

	m.Reset()
	assert.Equal(t, batch.Stats{StartTime: m.Stats().StartTime}, m.Stats())
}
