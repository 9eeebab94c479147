package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAverageOddsIgnoresMissingFields(t *testing.T) {
	quotes := []MarketOdds{
		{Home: 2.00, Draw: 3.40, Away: 3.80, Over25: 1.90},
		{Home: 2.20, Draw: 3.50, Away: 3.90},
		{BTTSYes: 1.85},
	}

	avg := AverageOdds(quotes)
	assert.InDelta(t, 2.10, avg.Home, 1e-9)
	assert.InDelta(t, 3.45, avg.Draw, 1e-9)
	assert.InDelta(t, 1.90, avg.Over25, 1e-9)
	assert.InDelta(t, 1.85, avg.BTTSYes, 1e-9)
}

func TestAverageOddsEmpty(t *testing.T) {
	avg := AverageOdds(nil)
	assert.False(t, avg.HasOutright())
	assert.False(t, avg.HasOver())
	assert.False(t, avg.HasBTTS())
}

func TestHasOutrightRequiresAllLegs(t *testing.T) {
	odds := &MarketOdds{Home: 2.0, Draw: 3.2}
	assert.False(t, odds.HasOutright())

	odds.Away = 3.6
	assert.True(t, odds.HasOutright())

	var missing *MarketOdds
	assert.False(t, missing.HasOutright())
}

func TestLedgerEntryKey(t *testing.T) {
	entry := &LedgerEntry{
		Date:     time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC),
		League:   "E0",
		HomeTeam: "Arsenal",
		AwayTeam: "Chelsea",
		Pick:     PickHomeWin,
	}

	key := entry.Key()
	assert.Contains(t, key, "2026-08-29")
	assert.Contains(t, key, "E0")
	assert.Contains(t, key, "Arsenal")
	assert.Contains(t, key, PickHomeWin)

	other := *entry
	other.Pick = PickOver25
	assert.NotEqual(t, key, other.Key())
}
