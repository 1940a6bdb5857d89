// ruleminer - Sequential rule mining and context-aware prediction engine
// SPDX-License-Identifier: MIT

// Package config loads the mining/prediction tunables into a
// ruleminer.Config, layering defaults, an optional YAML file, and
// environment variables via Koanf v2.
package config
