// Copyright 2025 Poiesic Systems
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

package tagraph

import (
	"fmt"
	"runtime"
	"strings"
)

// Config holds the thresholds and resources used to build and query an index.
type Config struct {
	// MinCount is the frequency floor for canonical tags.
	// Tags seen fewer times across the corpus are dropped.
	// Default: 10
	MinCount int

	// MinNumber is the smallest candidate set a query may narrow to.
	// Default: 5
	MinNumber int

	// MinSimilarity is the acceptance floor for fuzzy query expansion, in [0, 1].
	// Default: 0.5
	MinSimilarity float64

	// PoolSize is the number of construction workers.
	// Default: runtime.NumCPU() / 2, with a minimum of 1
	PoolSize int

	// Language selects the stemmer and stopword set.
	// Default: "russian"
	Language string

	// Verbose logs every tag a query applies.
	Verbose bool

	// NoExpand disables fuzzy query expansion.
	NoExpand bool
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithMinCount sets the frequency floor.
func WithMinCount(n int) ConfigOption {
	return func(c *Config) {
		c.MinCount = n
	}
}

// WithMinNumber sets the minimum candidate set size.
func WithMinNumber(n int) ConfigOption {
	return func(c *Config) {
		c.MinNumber = n
	}
}

// WithMinSimilarity sets the fuzzy acceptance floor.
func WithMinSimilarity(s float64) ConfigOption {
	return func(c *Config) {
		c.MinSimilarity = s
	}
}

// WithPoolSize sets the number of construction workers.
func WithPoolSize(n int) ConfigOption {
	return func(c *Config) {
		c.PoolSize = n
	}
}

// WithLanguage sets the lemmatization language.
func WithLanguage(language string) ConfigOption {
	return func(c *Config) {
		c.Language = language
	}
}

// WithVerbose enables the per-tag query trace.
func WithVerbose(verbose bool) ConfigOption {
	return func(c *Config) {
		c.Verbose = verbose
	}
}

// WithoutExpansion disables fuzzy query expansion.
func WithoutExpansion() ConfigOption {
	return func(c *Config) {
		c.NoExpand = true
	}
}

// DefaultConfig returns a Config with the default thresholds.
func DefaultConfig() *Config {
	return &Config{
		MinCount:      10,
		MinNumber:     5,
		MinSimilarity: 0.5,
		PoolSize:      max(runtime.NumCPU()/2, 1),
		Language:      "russian",
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
//
// Example:
//
//	cfg := NewConfig(
//	    WithMinCount(5),
//	    WithMinNumber(2),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize puts the configuration in canonical form.
func (c *Config) Normalize() {
	c.Language = strings.ToLower(strings.TrimSpace(c.Language))
}

// Validate checks that the configuration is valid and complete.
// It normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.MinCount < 0 {
		return fmt.Errorf("%w: MinCount must not be negative", ErrInvalidConfig)
	}
	if c.MinNumber < 0 {
		return fmt.Errorf("%w: MinNumber must not be negative", ErrInvalidConfig)
	}
	if c.MinSimilarity < 0 || c.MinSimilarity > 1 {
		return fmt.Errorf("%w: MinSimilarity must be between 0 and 1", ErrInvalidConfig)
	}
	if c.PoolSize < 1 {
		return fmt.Errorf("%w: PoolSize must be at least 1", ErrInvalidConfig)
	}
	if c.Language == "" {
		return fmt.Errorf("%w: Language is required", ErrInvalidConfig)
	}
	return nil
}
