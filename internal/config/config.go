// Package config loads the run manifest that cmd/actorsh uses to decide
// which demo actor set to launch and what init-context values to give it:
// defaults, then a file merged on top, then CLI overrides, parsed with
// hujson so the manifest can carry comments explaining each actor's
// tuning.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tailscale/hujson"
)

// Config is the run manifest for the inspector binary.
type Config struct {
	Scenario       string `json:"scenario"`
	TickIntervalMS int    `json:"tick_interval_ms,omitempty"`
	PoolCapacity   int    `json:"pool_capacity,omitempty"`
}

// DefaultConfig returns the configuration used when no manifest file is
// given and no CLI flags override it.
func DefaultConfig() Config {
	return Config{
		Scenario:       "pingpong",
		TickIntervalMS: 100,
		PoolCapacity:   2,
	}
}

// Load reads path (a hujson document, i.e. JSON with comments and trailing
// commas) and merges it over DefaultConfig. An empty path is not an error:
// it returns the defaults unchanged; the manifest file is optional.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	standardized, err := hujson.Standardize(raw)
	if err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config %s: %w", path, err)
	}

	if err := validate(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func validate(cfg Config) error {
	switch cfg.Scenario {
	case "pingpong", "drain", "anyupdate", "initread", "chunklife":
	default:
		return fmt.Errorf("config: unknown scenario %q", cfg.Scenario)
	}

	if cfg.TickIntervalMS <= 0 {
		return fmt.Errorf("config: tick_interval_ms must be positive, got %d", cfg.TickIntervalMS)
	}

	if cfg.PoolCapacity <= 0 {
		return fmt.Errorf("config: pool_capacity must be positive, got %d", cfg.PoolCapacity)
	}

	return nil
}
