// Package config loads recipe-match configuration with viper: defaults, then
// an optional recipe-match.yaml, then RECIPE_MATCH_* environment variables,
// then any flags bound by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. RECIPE_MATCH_STORE_BACKEND.
const EnvPrefix = "RECIPE_MATCH"

// Config holds all configuration.
type Config struct {
	Store  StoreConfig  `mapstructure:"store"`
	Log    LogConfig    `mapstructure:"log"`
	Engine EngineConfig `mapstructure:"engine"`
}

// StoreConfig selects the recipe collection backend.
type StoreConfig struct {
	Backend string `mapstructure:"backend" validate:"oneof=sqlite memory badger"`
	Path    string `mapstructure:"path"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level       string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format      string `mapstructure:"format" validate:"oneof=json console"`
	Development bool   `mapstructure:"development"`
}

// EngineConfig tunes the recommender.
type EngineConfig struct {
	CandidateLimit      int   `mapstructure:"candidate_limit" validate:"gte=1,lte=1000"`
	Seed                int64 `mapstructure:"seed"`
	IngredientScreening bool  `mapstructure:"ingredient_screening"`
	DegradedFallback    bool  `mapstructure:"degraded_fallback"`
}

// Load reads configuration into v. A nil v gets a fresh viper instance.
// configPath may be empty, in which case recipe-match.yaml is looked up in
// the working directory and ~/.recipe-match.
func Load(v *viper.Viper, configPath string) (*Config, error) {
	if v == nil {
		v = viper.New()
	}
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("recipe-match")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".recipe-match"))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("store.backend", "sqlite")
	v.SetDefault("store.path", "")

	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.development", false)

	v.SetDefault("engine.candidate_limit", 25)
	v.SetDefault("engine.seed", 0)
	v.SetDefault("engine.ingredient_screening", true)
	v.SetDefault("engine.degraded_fallback", true)
}

// Validate checks struct constraints.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

// ResolvedPath returns Path, or the per-backend default under
// ~/.recipe-match when Path is empty. The memory backend has no path.
func (s StoreConfig) ResolvedPath() string {
	if s.Path != "" || s.Backend == "memory" {
		return s.Path
	}
	home, _ := os.UserHomeDir()
	if s.Backend == "badger" {
		return filepath.Join(home, ".recipe-match", "badger")
	}
	return filepath.Join(home, ".recipe-match", "recipes.db")
}
