// ruleminer - Sequential rule mining and context-aware prediction engine
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"os"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/nextaction/ruleminer/internal/ruleminer"
)

// DefaultConfigPaths lists the paths searched for an optional YAML
// tunables file, in priority order.
var DefaultConfigPaths = []string{
	"ruleminer.yaml",
	"ruleminer.yml",
	"/etc/ruleminer/ruleminer.yaml",
}

// ConfigPathEnvVar overrides the search paths with a single explicit
// file location.
const ConfigPathEnvVar = "RULEMINER_CONFIG_PATH"

// envPrefix is stripped from every RULEMINER_-prefixed environment
// variable before it is treated as a koanf path, e.g.
// RULEMINER_MINSUP -> minsup, RULEMINER_SINGLE_CONSEQUENT ->
// single_consequent.
const envPrefix = "RULEMINER_"

// Load layers defaults, an optional YAML file, and RULEMINER_*
// environment variables via Koanf v2 — defaults < file < env — and
// returns the resulting ruleminer.Config, validated.
func Load() (ruleminer.Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultTunables(), "koanf"), nil); err != nil {
		return ruleminer.Config{}, fmt.Errorf("loading tunable defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return ruleminer.Config{}, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	envProvider := env.Provider(envPrefix, ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return ruleminer.Config{}, fmt.Errorf("loading environment variables: %w", err)
	}

	var t Tunables
	if err := k.Unmarshal("", &t); err != nil {
		return ruleminer.Config{}, fmt.Errorf("unmarshaling tunables: %w", err)
	}

	if err := t.Validate(); err != nil {
		return ruleminer.Config{}, err
	}
	return t.ToRuleminerConfig(), nil
}

func findConfigFile() string {
	if explicit := os.Getenv(ConfigPathEnvVar); explicit != "" {
		if _, err := os.Stat(explicit); err == nil {
			return explicit
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// envTransformFunc strips envPrefix from a RULEMINER_-prefixed
// environment variable name and lowercases the rest into its koanf
// path, e.g. RULEMINER_MINSUP -> minsup,
// RULEMINER_SINGLE_CONSEQUENT -> single_consequent.
func envTransformFunc(key string) string {
	if len(key) >= len(envPrefix) && key[:len(envPrefix)] == envPrefix {
		key = key[len(envPrefix):]
	}
	out := make([]byte, len(key))
	for i := 0; i < len(key); i++ {
		c := key[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		out[i] = c
	}
	return string(out)
}
