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
	"log/slog"
	"runtime"

	"github.com/blinklabs-io/canonhash/hasher"
)

// Config holds configuration for a Digester
type Config struct {
	// Workers is the number of values digested in parallel
	Workers int
	// Algorithm is the hash function used for every value
	Algorithm hasher.Algorithm
	// Tag is the domain separation tag every value is digested under
	Tag string
	// BufferSize is the capacity of the work queue
	BufferSize int
	// Logger receives debug and failure messages. slog.Default() is used
	// when nil.
	Logger *slog.Logger
}

// DefaultConfig returns a Config with one worker per CPU and SHA-256
func DefaultConfig() Config {
	return Config{
		Workers:    defaultWorkers(),
		Algorithm:  hasher.DefaultAlgorithm,
		BufferSize: 64,
	}
}

func defaultWorkers() int {
	return max(runtime.NumCPU(), 1)
}

// normalize replaces out of range values left by WithConfig. A zero worker
// count means one worker per CPU and a negative buffer size means an
// unbuffered queue.
func (c *Config) normalize() {
	if c.Workers < 1 {
		c.Workers = defaultWorkers()
	}
	if c.BufferSize < 0 {
		c.BufferSize = 0
	}
}

// Option is a functional option for configuring a Digester
type Option func(*Config)

// WithConfig applies a complete Config, replacing all default values.
// Options applied after WithConfig still override the config values. A
// Workers value below 1 selects one worker per CPU.
func WithConfig(config Config) Option {
	return func(c *Config) {
		*c = config
	}
}

// WithWorkers sets the number of workers. Values below 1 are ignored.
func WithWorkers(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.Workers = n
		}
	}
}

// WithAlgorithm sets the hash algorithm
func WithAlgorithm(alg hasher.Algorithm) Option {
	return func(c *Config) {
		c.Algorithm = alg
	}
}

// WithTag sets the domain separation tag
func WithTag(tag string) Option {
	return func(c *Config) {
		c.Tag = tag
	}
}

// WithBufferSize sets the work queue capacity. Values below 1 are ignored.
func WithBufferSize(size int) Option {
	return func(c *Config) {
		if size > 0 {
			c.BufferSize = size
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}
