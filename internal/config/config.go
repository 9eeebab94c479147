// Package config provides configuration management for the Goleador engine.
package config

import (
	"fmt"
)

// Config represents the complete application configuration
type Config struct {
	App       AppConfig       `mapstructure:"app" validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database" validate:"required"`
	Feed      FeedConfig      `mapstructure:"feed" validate:"required"`
	Model     ModelConfig     `mapstructure:"model" validate:"required"`
	Selection SelectionConfig `mapstructure:"selection" validate:"required"`
	Staking   StakingConfig   `mapstructure:"staking" validate:"required"`
	Leagues   []LeagueConfig  `mapstructure:"leagues" validate:"required,min=1,dive"`
	CupTies   []CupTieConfig  `mapstructure:"cup_ties" validate:"dive"`
	Metrics   MetricsConfig   `mapstructure:"metrics" validate:"required"`
	Schedule  ScheduleConfig  `mapstructure:"schedule" validate:"required"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// DatabaseConfig represents the ledger database connection configuration
type DatabaseConfig struct {
	Host               string `mapstructure:"host" validate:"required"`
	Port               int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Name               string `mapstructure:"name" validate:"required"`
	User               string `mapstructure:"user" validate:"required"`
	Password           string `mapstructure:"password" validate:"required"`
	SSLMode            string `mapstructure:"ssl_mode" validate:"required,oneof=disable require verify-full"`
	MaxConnections     int    `mapstructure:"max_connections" validate:"required,gt=0"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections" validate:"required,gt=0"`
}

// FeedConfig represents the historical/fixture data feed configuration
type FeedConfig struct {
	BaseURL        string  `mapstructure:"base_url" validate:"required,url"`
	APIKey         string  `mapstructure:"api_key"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	MaxRetries     int     `mapstructure:"max_retries" validate:"gte=0"`
	RateLimit      float64 `mapstructure:"rate_limit" validate:"required,gt=0"`
	CacheTTLMinutes int    `mapstructure:"cache_ttl_minutes" validate:"required,gt=0"`
}

// ModelConfig holds the hand-tuned calibration knobs of the outcome model.
// The values are empirical; treat them as calibration constants, not bugs.
type ModelConfig struct {
	HistoryWindow        int     `mapstructure:"history_window" validate:"required,gt=0"`
	MinHistory           int     `mapstructure:"min_history" validate:"required,gt=0"`
	DecayAlpha           float64 `mapstructure:"decay_alpha" validate:"required,gt=0,lt=1"`
	GoalWeight           float64 `mapstructure:"goal_weight" validate:"required,gt=0,lte=1"`
	ShotDivisor          float64 `mapstructure:"shot_divisor" validate:"required,gt=0"`
	HomeAdvantage        float64 `mapstructure:"home_advantage" validate:"required,gte=1"`
	CrossHomeAdvantage   float64 `mapstructure:"cross_home_advantage" validate:"required,gte=1"`
	DixonColesRho        float64 `mapstructure:"dixon_coles_rho" validate:"required,lt=0"`
	Overround            float64 `mapstructure:"overround" validate:"required,gte=1"`
	Simulations          int     `mapstructure:"simulations" validate:"required,gte=10000"`
	MaxGoals             int     `mapstructure:"max_goals" validate:"required,gt=0"`
	OverShrink           float64 `mapstructure:"over_shrink" validate:"required,gt=0,lte=1"`
	BlendTolerance       float64 `mapstructure:"blend_tolerance" validate:"required,gt=0"`
	SimBlendWeight       float64 `mapstructure:"sim_blend_weight" validate:"required,gt=0,lte=1"`
	MismatchTotalLambda  float64 `mapstructure:"mismatch_total_lambda" validate:"required,gt=0"`
	MismatchRatio        float64 `mapstructure:"mismatch_ratio" validate:"required,gt=0,lt=1"`
	MismatchDamp         float64 `mapstructure:"mismatch_damp" validate:"required,gt=0,lte=1"`
}

// SelectionConfig represents candidate acceptance filters and scoring.
type SelectionConfig struct {
	MinOdd           float64 `mapstructure:"min_odd" validate:"required,gt=1"`
	MinProbability   float64 `mapstructure:"min_probability" validate:"required,gt=0,lt=1"`
	MaxExpectedValue float64 `mapstructure:"max_expected_value" validate:"required,gt=0"`
	MinChaosScore    float64 `mapstructure:"min_chaos_score" validate:"required,gte=0,lte=100"`
	GoalProbMin      float64 `mapstructure:"goal_prob_min" validate:"required,gt=0,lt=1"`
	GoalProbMax      float64 `mapstructure:"goal_prob_max" validate:"required,gt=0,lt=1"`
	LowVarianceBoost float64 `mapstructure:"low_variance_boost" validate:"required,gte=1"`
	DefaultMinEV     float64 `mapstructure:"default_min_ev" validate:"required,gt=0"`
}

// StakingConfig represents the fractional-Kelly staking parameters.
type StakingConfig struct {
	KellyFraction   float64 `mapstructure:"kelly_fraction" validate:"required,gt=0,lte=1"`
	MaxStakePct     float64 `mapstructure:"max_stake_pct" validate:"required,gt=0,lte=100"`
	BoostThreshold  float64 `mapstructure:"boost_threshold" validate:"required,gt=0,lt=1"`
	BoostFactor     float64 `mapstructure:"boost_factor" validate:"required,gte=1"`
	FullConfidence  float64 `mapstructure:"full_confidence" validate:"required,gt=0,lte=100"`
}

// LeagueConfig represents one tracked league.
type LeagueConfig struct {
	Code         string  `mapstructure:"code" validate:"required"`
	Name         string  `mapstructure:"name" validate:"required"`
	Tier         float64 `mapstructure:"tier" validate:"required,gt=0,lte=1"`
	MarketWeight float64 `mapstructure:"market_weight" validate:"gte=0,lte=1"`
	MinEV        float64 `mapstructure:"min_ev" validate:"gte=0"`
}

// CupTieConfig is a manually listed cross-league fixture pair that
// bypasses the per-league upcoming feed.
type CupTieConfig struct {
	HomeTeam string `mapstructure:"home_team" validate:"required"`
	AwayTeam string `mapstructure:"away_team" validate:"required"`
	Date     string `mapstructure:"date" validate:"required,datestr"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required"`
}

// ScheduleConfig represents the cron cadence of the two batch loops.
type ScheduleConfig struct {
	AnalysisCron string `mapstructure:"analysis_cron" validate:"required"`
	AuditCron    string `mapstructure:"audit_cron" validate:"required"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// LeagueByCode returns the configured league with the given code.
func (c *Config) LeagueByCode(code string) (LeagueConfig, bool) {
	for _, l := range c.Leagues {
		if l.Code == code {
			return l, true
		}
	}
	return LeagueConfig{}, false
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}
