package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/rgoulet/dugout/core/metrics"
	"github.com/rgoulet/dugout/sim"
)

// Config is the full service configuration.
type Config struct {
	// StatePath locates the persisted recovery store.
	StatePath string `json:"state_path"`
	// PlayersFile and RosterDir point at the CSV roster layout.
	PlayersFile string `json:"players_file"`
	RosterDir   string `json:"roster_dir"`
	// PlayBalance holds flat numeric overrides for the usage model
	// (enableUsageModelV2, restDaysPitchesLvl0..5, maxApps3Day_MR, ...).
	PlayBalance map[string]float64 `json:"playbalance"`
	Metrics     metrics.Config     `json:"metrics"`
	Sim         sim.Config         `json:"sim"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.StatePath == "" {
		c.StatePath = "data/pitcher_recovery.json"
	}
	if c.PlayersFile == "" {
		c.PlayersFile = "data/players.csv"
	}
	if c.RosterDir == "" {
		c.RosterDir = "data/rosters"
	}
	c.Metrics.SetDefaults()
	c.Sim.SetDefaults()
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.StatePath == "" {
		return fmt.Errorf("state_path is required")
	}
	return c.Sim.Validate()
}

// Load reads the configuration file, applying DUGOUT_-prefixed environment
// overrides on top.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("DUGOUT_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "dugout_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
