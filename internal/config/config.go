package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pable/csround/internal/identity"
)

// Built-in defaults. A run with no config file and no flags uses exactly these.
const (
	DefaultDemoRoot       = "demos"
	DefaultOutputDir      = "."
	DefaultEconThreshold  = 2000
	DefaultDuelThreshold  = 200
	DefaultSnapshotWindow = 16
	DefaultMinRounds      = 1000
	DefaultLogLevel       = "info"
)

// Config is the complete run configuration.
type Config struct {
	Input    InputConfig    `mapstructure:"input"`
	Output   OutputConfig   `mapstructure:"output"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Logging  LoggingConfig  `mapstructure:"logging"`

	// Aliases replaces the built-in alias table when non-empty. Order matters.
	Aliases []identity.Alias `mapstructure:"aliases"`
	// Teams adds to or overrides the built-in player team table.
	Teams []TeamEntry `mapstructure:"teams"`
}

// InputConfig locates the replays.
type InputConfig struct {
	DemoRoot string `mapstructure:"demo_root"`
}

// OutputConfig controls what a run writes.
type OutputConfig struct {
	Dir         string `mapstructure:"dir"`
	Chart       bool   `mapstructure:"chart"`
	MinRounds   int    `mapstructure:"min_rounds"` // chart filter
	MetricsFile string `mapstructure:"metrics_file"`
}

// StorageConfig holds the run-history database location. Empty disables it.
type StorageConfig struct {
	DBPath string `mapstructure:"db_path"`
}

// AnalysisConfig holds classifier parameters.
type AnalysisConfig struct {
	EconThreshold  int `mapstructure:"econ_threshold"`
	DuelThreshold  int `mapstructure:"duel_threshold"`
	SnapshotWindow int `mapstructure:"snapshot_window"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// TeamEntry assigns a canonical player to a team. A list is used instead of
// a map because viper folds map keys to lower case.
type TeamEntry struct {
	Player string `mapstructure:"player"`
	Team   string `mapstructure:"team"`
}

// Load builds the configuration from defaults, the optional file at path,
// CSROUND_* environment variables and the bound command-line flags, in
// increasing order of precedence. flags maps config keys to flags.
func Load(path string, flags map[string]*pflag.Flag) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("CSROUND")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, f := range flags {
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", f.Name, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// setDefaults configures default values for all configuration options
func setDefaults(v *viper.Viper) {
	v.SetDefault("input.demo_root", DefaultDemoRoot)

	v.SetDefault("output.dir", DefaultOutputDir)
	v.SetDefault("output.chart", false)
	v.SetDefault("output.min_rounds", DefaultMinRounds)
	v.SetDefault("output.metrics_file", "")

	v.SetDefault("storage.db_path", "")

	v.SetDefault("analysis.econ_threshold", DefaultEconThreshold)
	v.SetDefault("analysis.duel_threshold", DefaultDuelThreshold)
	v.SetDefault("analysis.snapshot_window", DefaultSnapshotWindow)

	v.SetDefault("logging.level", DefaultLogLevel)
}

// Validate checks that all configuration values are usable.
func (c *Config) Validate() error {
	if c.Input.DemoRoot == "" {
		return errors.New("input.demo_root is required")
	}
	if c.Output.Dir == "" {
		return errors.New("output.dir is required")
	}
	if c.Output.MinRounds < 0 {
		return errors.New("output.min_rounds must not be negative")
	}
	if c.Analysis.EconThreshold < 0 {
		return errors.New("analysis.econ_threshold must not be negative")
	}
	if c.Analysis.DuelThreshold < 0 {
		return errors.New("analysis.duel_threshold must not be negative")
	}
	if c.Analysis.SnapshotWindow < 0 {
		return errors.New("analysis.snapshot_window must not be negative")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		return errors.New("logging.level must be one of: debug, info, warn, error")
	}

	for i, a := range c.Aliases {
		if strings.TrimSpace(a.Canonical) == "" {
			return fmt.Errorf("aliases[%d].canonical is required", i)
		}
	}
	for i, t := range c.Teams {
		if t.Player == "" || t.Team == "" {
			return fmt.Errorf("teams[%d] needs both player and team", i)
		}
	}
	return nil
}

// Normalizer returns the identity normalizer for this configuration.
func (c *Config) Normalizer() *identity.Normalizer {
	if len(c.Aliases) > 0 {
		return identity.New(c.Aliases)
	}
	return identity.Default()
}

// TeamTable returns the built-in team table with configured entries applied.
func (c *Config) TeamTable() identity.Teams {
	teams := make(identity.Teams, len(identity.DefaultTeams)+len(c.Teams))
	for p, t := range identity.DefaultTeams {
		teams[p] = t
	}
	for _, e := range c.Teams {
		teams[e.Player] = e.Team
	}
	return teams
}
