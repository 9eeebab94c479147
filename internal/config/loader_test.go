package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalYAML = `app:
  name: goleador
  environment: development
  log_level: info

database:
  host: localhost
  port: 5432
  name: goleador_test
  user: tester
  password: ${TEST_DB_PASSWORD}
  ssl_mode: disable
  max_connections: 10
  max_idle_connections: 5

feed:
  base_url: https://feed.example.com/data
  timeout_seconds: 30
  rate_limit: 5.0
  cache_ttl_minutes: 30

leagues:
  - code: E0
    name: Premier League
    tier: 1.0
    market_weight: 0.6
    min_ev: 0.05
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadWithDefaultsFillsModelKnobs(t *testing.T) {
	t.Setenv("TEST_DB_PASSWORD", "hunter2")

	cfg, err := LoadWithDefaults(writeConfig(t, minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, "hunter2", cfg.Database.Password)

	// The calibration constants arrive from defaults.
	assert.Equal(t, 6, cfg.Model.HistoryWindow)
	assert.Equal(t, 3, cfg.Model.MinHistory)
	assert.Equal(t, 0.88, cfg.Model.DecayAlpha)
	assert.Equal(t, 0.6, cfg.Model.GoalWeight)
	assert.Equal(t, 1.10, cfg.Model.HomeAdvantage)
	assert.Equal(t, 1.15, cfg.Model.CrossHomeAdvantage)
	assert.Equal(t, -0.13, cfg.Model.DixonColesRho)
	assert.Equal(t, 1.05, cfg.Model.Overround)
	assert.Equal(t, 10000, cfg.Model.Simulations)
	assert.Equal(t, 0.75, cfg.Model.OverShrink)

	assert.Equal(t, 1.30, cfg.Selection.MinOdd)
	assert.Equal(t, 0.40, cfg.Selection.MinProbability)
	assert.Equal(t, 0.45, cfg.Selection.MaxExpectedValue)

	assert.Equal(t, 0.20, cfg.Staking.KellyFraction)
	assert.Equal(t, 5.0, cfg.Staking.MaxStakePct)

	require.NoError(t, Validate(cfg))
}

func TestLoadWithDefaultsFileOverridesKnob(t *testing.T) {
	t.Setenv("TEST_DB_PASSWORD", "hunter2")

	yaml := minimalYAML + `
model:
  decay_alpha: 0.80
`
	cfg, err := LoadWithDefaults(writeConfig(t, yaml))
	require.NoError(t, err)

	assert.Equal(t, 0.80, cfg.Model.DecayAlpha)
	// Untouched siblings keep their defaults.
	assert.Equal(t, 6, cfg.Model.HistoryWindow)
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidateRejectsBadLeagueTier(t *testing.T) {
	t.Setenv("TEST_DB_PASSWORD", "hunter2")

	cfg, err := LoadWithDefaults(writeConfig(t, minimalYAML))
	require.NoError(t, err)

	cfg.Leagues[0].Tier = 1.5
	assert.Error(t, Validate(cfg))
}

func TestValidateRejectsDuplicateLeagueCodes(t *testing.T) {
	t.Setenv("TEST_DB_PASSWORD", "hunter2")

	cfg, err := LoadWithDefaults(writeConfig(t, minimalYAML))
	require.NoError(t, err)

	cfg.Leagues = append(cfg.Leagues, cfg.Leagues[0])
	assert.Error(t, Validate(cfg))
}

func TestValidateRejectsShallowHistory(t *testing.T) {
	t.Setenv("TEST_DB_PASSWORD", "hunter2")

	cfg, err := LoadWithDefaults(writeConfig(t, minimalYAML))
	require.NoError(t, err)

	cfg.Model.MinHistory = cfg.Model.HistoryWindow + 1
	assert.Error(t, Validate(cfg))
}

func TestLeagueByCode(t *testing.T) {
	cfg := &Config{Leagues: []LeagueConfig{{Code: "E0", Name: "Premier League"}}}

	league, ok := cfg.LeagueByCode("E0")
	assert.True(t, ok)
	assert.Equal(t, "Premier League", league.Name)

	_, ok = cfg.LeagueByCode("SP1")
	assert.False(t, ok)
}

func TestGetDatabaseDSN(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Host: "db", Port: 5432, Name: "goleador", User: "app", Password: "pw", SSLMode: "disable",
	}}
	assert.Equal(t, "postgres://app:pw@db:5432/goleador?sslmode=disable", cfg.GetDatabaseDSN())
}
