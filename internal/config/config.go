// ruleminer - Sequential rule mining and context-aware prediction engine
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"

	"github.com/nextaction/ruleminer/internal/ruleminer"
)

// Tunables is the koanf-tagged mirror of ruleminer.Config. It exists
// separately from ruleminer.Config so the core package never imports
// Koanf: this struct is pure ambient plumbing translated to
// ruleminer.Config at the boundary via ToRuleminerConfig.
type Tunables struct {
	MinSup           float64  `koanf:"minsup"`
	MinConf          float64  `koanf:"minconf"`
	SingleConsequent bool     `koanf:"single_consequent"`
	Quantile         int      `koanf:"quantile"`
	C1               float64  `koanf:"c1"`
	C2               float64  `koanf:"c2"`
	C3               float64  `koanf:"c3"`
	C4               float64  `koanf:"c4"`
	WindowSize       int      `koanf:"window_size"`
	// MinThreshold is unset by default; a value <0 means "disabled"
	// so a flat struct field (rather than a pointer, which koanf's
	// structs provider cannot default-populate) can still express an
	// optional MinThreshold.
	MinThreshold float64 `koanf:"min_threshold"`
}

// noThreshold is the Tunables sentinel meaning "MinThreshold unset",
// mirroring ruleminer.Config.MinThreshold's nil.
const noThreshold = -1

// defaultTunables mirrors ruleminer.DefaultConfig(): MinSup 0.1,
// MinConf 0.5, Quantile 25, uniform score weights of 1, WindowSize 5,
// no threshold.
func defaultTunables() Tunables {
	d := ruleminer.DefaultConfig()
	return Tunables{
		MinSup:       d.MinSup,
		MinConf:      d.MinConf,
		Quantile:     d.Quantile,
		C1:           d.C1,
		C2:           d.C2,
		C3:           d.C3,
		C4:           d.C4,
		WindowSize:   d.WindowSize,
		MinThreshold: noThreshold,
	}
}

// ToRuleminerConfig translates the loaded tunables into the core
// ruleminer.Config value Fit/Enrich/Predict actually consume.
func (t Tunables) ToRuleminerConfig() ruleminer.Config {
	cfg := ruleminer.Config{
		MinSup:           t.MinSup,
		MinConf:          t.MinConf,
		SingleConsequent: t.SingleConsequent,
		Quantile:         t.Quantile,
		C1:               t.C1,
		C2:               t.C2,
		C3:               t.C3,
		C4:               t.C4,
		WindowSize:       t.WindowSize,
	}
	if t.MinThreshold >= 0 {
		v := t.MinThreshold
		cfg.MinThreshold = &v
	}
	return cfg
}

// Validate reports the first violated bound, delegating to
// ruleminer.Config.Validate so the rules are defined in exactly one
// place.
func (t Tunables) Validate() error {
	if err := t.ToRuleminerConfig().Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
