// ruleminer - Sequential rule mining and context-aware prediction engine
// SPDX-License-Identifier: MIT

package ruleminer

import "fmt"

// Config holds the tunables of the mining, enrichment, and prediction
// stages: a flat struct of numeric knobs with a package-level
// constructor for defaults and a Validate method that reports the
// first violated bound as a wrapped ErrInvalidInput.
type Config struct {
	// MinSup is the anti-monotone support pruning threshold, in (0,1].
	MinSup float64
	// MinConf is the rule-validity confidence threshold, in (0,1].
	MinConf float64
	// SingleConsequent, when true, skips left expansion: every emitted
	// rule has a singleton consequent.
	SingleConsequent bool
	// Quantile is the percentile (0-100) used for DeltaT during
	// enrichment. Default 25.
	Quantile int
	// C1..C4 are the non-negative score weights for confidence,
	// support, day probability, and hour probability respectively.
	// They are not required to sum to 1.
	C1, C2, C3, C4 float64
	// WindowSize is the preprocessing window length. It is not
	// consumed by Fit/Predict directly (reshaping the live window is
	// the caller's responsibility) but is carried here so a single
	// Config round-trips through internal/config unchanged.
	WindowSize int
	// MinThreshold gates prediction selection. Nil means "unset":
	// Predict picks the largest-score candidate rather than gating on
	// a threshold.
	MinThreshold *float64
}

// DefaultConfig returns the default tunables: MinSup 0.1, MinConf 0.5,
// Quantile 25, uniform score weights of 1, WindowSize 5, no threshold.
func DefaultConfig() Config {
	return Config{
		MinSup:     0.1,
		MinConf:    0.5,
		Quantile:   25,
		C1:         1,
		C2:         1,
		C3:         1,
		C4:         1,
		WindowSize: 5,
	}
}

// Validate checks every tunable's bound, returning the first
// violation found wrapped in ErrInvalidInput.
func (c Config) Validate() error {
	if c.MinSup <= 0 || c.MinSup > 1 {
		return fmt.Errorf("minsup must be in (0,1], got %v: %w", c.MinSup, ErrInvalidInput)
	}
	if c.MinConf <= 0 || c.MinConf > 1 {
		return fmt.Errorf("minconf must be in (0,1], got %v: %w", c.MinConf, ErrInvalidInput)
	}
	if c.Quantile < 0 || c.Quantile > 100 {
		return fmt.Errorf("quantile must be in [0,100], got %d: %w", c.Quantile, ErrInvalidInput)
	}
	if c.C1 < 0 || c.C2 < 0 || c.C3 < 0 || c.C4 < 0 {
		return fmt.Errorf("score weights must be non-negative, got c1=%v c2=%v c3=%v c4=%v: %w",
			c.C1, c.C2, c.C3, c.C4, ErrInvalidInput)
	}
	if c.WindowSize < 0 {
		return fmt.Errorf("window_size must be non-negative, got %d: %w", c.WindowSize, ErrInvalidInput)
	}
	if c.MinThreshold != nil && *c.MinThreshold < 0 {
		return fmt.Errorf("min_threshold must be non-negative, got %v: %w", *c.MinThreshold, ErrInvalidInput)
	}
	return nil
}
