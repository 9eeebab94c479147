package rating

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/goleador/internal/models"
)

func leagueRows() []models.MatchRecord {
	day := func(d int) time.Time {
		return time.Date(2026, 8, d, 0, 0, 0, 0, time.UTC)
	}
	// Four teams, three rounds: everyone reaches the minimum history.
	return []models.MatchRecord{
		{Date: day(1), HomeTeam: "Alaves", AwayTeam: "Betis", HomeGoals: 2, AwayGoals: 1},
		{Date: day(1), HomeTeam: "Celta", AwayTeam: "Dinamo", HomeGoals: 0, AwayGoals: 0},
		{Date: day(8), HomeTeam: "Betis", AwayTeam: "Celta", HomeGoals: 3, AwayGoals: 2},
		{Date: day(8), HomeTeam: "Dinamo", AwayTeam: "Alaves", HomeGoals: 1, AwayGoals: 1},
		{Date: day(15), HomeTeam: "Alaves", AwayTeam: "Celta", HomeGoals: 4, AwayGoals: 0},
		{Date: day(15), HomeTeam: "Betis", AwayTeam: "Dinamo", HomeGoals: 2, AwayGoals: 2},
	}
}

func TestBuildLeagueContextNormalizesToUnitMean(t *testing.T) {
	lc := BuildLeagueContext(models.LeagueProfile{Code: "SP1", Tier: 0.97}, leagueRows(), testEstimator())

	teams := lc.Teams()
	require.Len(t, teams, 4)

	var attackSum, defenseSum float64
	for _, team := range teams {
		r, ok := lc.Rating(team)
		require.True(t, ok)
		assert.Positive(t, r.Attack)
		assert.Positive(t, r.Defense)
		attackSum += r.Attack
		defenseSum += r.Defense
	}

	n := float64(len(teams))
	assert.InDelta(t, 1.0, attackSum/n, 1e-9)
	assert.InDelta(t, 1.0, defenseSum/n, 1e-9)
}

func TestBuildLeagueContextComputesAvgGoals(t *testing.T) {
	lc := BuildLeagueContext(models.LeagueProfile{Code: "SP1"}, leagueRows(), testEstimator())

	// 18 goals over 6 matches.
	assert.InDelta(t, 3.0, lc.Profile().AvgGoals, 1e-9)
}

func TestRegistryMergeAndLookup(t *testing.T) {
	lc := BuildLeagueContext(models.LeagueProfile{Code: "SP1", Tier: 0.97}, leagueRows(), testEstimator())

	registry := NewRegistry()
	registry.Merge(lc)

	require.Equal(t, 4, registry.Len())

	entry, ok := registry.Lookup("Betis")
	require.True(t, ok)
	assert.Equal(t, "SP1", entry.League)
	assert.Equal(t, 0.97, entry.Tier)
	assert.InDelta(t, 3.0, entry.AvgGoals, 1e-9)

	_, ok = registry.Lookup("Oviedo")
	assert.False(t, ok)
}

func TestRegistryResolveFuzzyName(t *testing.T) {
	lc := BuildLeagueContext(models.LeagueProfile{Code: "SP1", Tier: 0.97}, leagueRows(), testEstimator())
	registry := NewRegistry()
	registry.Merge(lc)

	resolver := NewSimilarityResolver(0.80)

	entry, ok := registry.Resolve("Betis CF", resolver)
	require.True(t, ok)
	assert.Equal(t, "Betis", entry.Team)

	_, ok = registry.Resolve("Borussia Dortmund", resolver)
	assert.False(t, ok)
}

func TestRegistryMergeOverwritesRerated(t *testing.T) {
	registry := NewRegistry()
	est := testEstimator()

	first := BuildLeagueContext(models.LeagueProfile{Code: "SP1", Tier: 0.97}, leagueRows(), est)
	registry.Merge(first)

	// Re-rating with more rows replaces the earlier entries in place.
	extra := append(leagueRows(), models.MatchRecord{
		Date: time.Date(2026, 8, 22, 0, 0, 0, 0, time.UTC),
		HomeTeam: "Celta", AwayTeam: "Betis", HomeGoals: 5, AwayGoals: 0,
	})
	second := BuildLeagueContext(models.LeagueProfile{Code: "SP1", Tier: 0.97}, extra, est)
	registry.Merge(second)

	assert.Equal(t, 4, registry.Len())
	entry, ok := registry.Lookup("Celta")
	require.True(t, ok)
	updated, _ := second.Rating("Celta")
	assert.Equal(t, updated, entry.Rating)
}
