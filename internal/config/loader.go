// Package config provides configuration management for the Goleador engine.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Load reads and parses the configuration from file and environment
// variables. Environment variable placeholders in the YAML file
// (${VAR_NAME}) are expanded before parsing.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	v := newViper()
	if err := v.ReadConfig(bytes.NewBufferString(expanded)); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

// LoadWithDefaults loads configuration with default values for the model
// knobs and optional fields, so a minimal config file still yields a
// fully specified engine. The defaults are the hand-tuned values; they
// are calibration constants, not placeholders.
func LoadWithDefaults(configPath string) (*Config, error) {
	v := newViper()

	if configPath == "" {
		configPath = "config/config.yaml"
	}

	setModelDefaults(v)

	if data, err := os.ReadFile(configPath); err == nil {
		expanded := os.ExpandEnv(string(data))
		if err := v.ReadConfig(bytes.NewBufferString(expanded)); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	// If the file doesn't exist, continue with defaults and environment.

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("GOLEADOR")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

func setModelDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "goleador")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.port", 9090)
	v.SetDefault("metrics.path", "/metrics")

	v.SetDefault("feed.timeout_seconds", 30)
	v.SetDefault("feed.max_retries", 4)
	v.SetDefault("feed.rate_limit", 5.0)
	v.SetDefault("feed.cache_ttl_minutes", 60)

	// Rating window and decay.
	v.SetDefault("model.history_window", 6)
	v.SetDefault("model.min_history", 3)
	v.SetDefault("model.decay_alpha", 0.88)
	v.SetDefault("model.goal_weight", 0.6)
	v.SetDefault("model.shot_divisor", 3.0)

	// Expected goals and scoreline grid.
	v.SetDefault("model.home_advantage", 1.10)
	v.SetDefault("model.cross_home_advantage", 1.15)
	v.SetDefault("model.dixon_coles_rho", -0.13)
	v.SetDefault("model.overround", 1.05)
	v.SetDefault("model.simulations", 10000)
	v.SetDefault("model.max_goals", 6)

	// Totals calibration.
	v.SetDefault("model.over_shrink", 0.75)
	v.SetDefault("model.blend_tolerance", 0.08)
	v.SetDefault("model.sim_blend_weight", 0.75)
	v.SetDefault("model.mismatch_total_lambda", 3.0)
	v.SetDefault("model.mismatch_ratio", 0.35)
	v.SetDefault("model.mismatch_damp", 0.92)

	// Candidate filters.
	v.SetDefault("selection.min_odd", 1.30)
	v.SetDefault("selection.min_probability", 0.40)
	v.SetDefault("selection.max_expected_value", 0.45)
	v.SetDefault("selection.min_chaos_score", 55.0)
	v.SetDefault("selection.goal_prob_min", 0.35)
	v.SetDefault("selection.goal_prob_max", 0.65)
	v.SetDefault("selection.low_variance_boost", 1.15)
	v.SetDefault("selection.default_min_ev", 0.03)

	// Staking.
	v.SetDefault("staking.kelly_fraction", 0.20)
	v.SetDefault("staking.max_stake_pct", 5.0)
	v.SetDefault("staking.boost_threshold", 0.60)
	v.SetDefault("staking.boost_factor", 1.2)
	v.SetDefault("staking.full_confidence", 75.0)

	v.SetDefault("schedule.analysis_cron", "0 10 * * *")
	v.SetDefault("schedule.audit_cron", "0 8 * * *")
}
