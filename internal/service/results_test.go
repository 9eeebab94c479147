package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/goleador/internal/ledger"
	"github.com/yourusername/goleador/internal/logger"
	"github.com/yourusername/goleador/internal/models"
)

func TestFeedResultSourceFindsCompletedFixture(t *testing.T) {
	src := newTestSource()
	src.history["E0"] = append(src.history["E0"], models.MatchRecord{
		Date:      time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC),
		HomeTeam:  "Arsenal",
		AwayTeam:  "Chelsea",
		HomeGoals: 3,
		AwayGoals: 1,
	})

	results := NewFeedResultSource(src)
	entry := &models.LedgerEntry{
		Date:     time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC), // same day, later clock
		League:   "E0",
		HomeTeam: "Arsenal",
		AwayTeam: "Chelsea",
	}

	home, away, found, err := results.FinalScore(context.Background(), entry)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 3, home)
	assert.Equal(t, 1, away)
}

func TestFeedResultSourceMissingFixtureStaysPending(t *testing.T) {
	results := NewFeedResultSource(newTestSource())
	entry := &models.LedgerEntry{
		Date:     time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC),
		League:   "E0",
		HomeTeam: "Arsenal",
		AwayTeam: "Liverpool",
	}

	_, _, found, err := results.FinalScore(context.Background(), entry)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestAuditCycleSettlesAgainstFeed(t *testing.T) {
	repo := ledger.NewMemoryRepository()
	ctx := context.Background()

	entry := &models.LedgerEntry{
		Date:     time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC),
		League:   "E0",
		HomeTeam: "Arsenal",
		AwayTeam: "Chelsea",
		Pick:     models.PickHomeWin,
		Market:   models.Market1X2,
		Odd:      2.10,
		Status:   models.OutcomePending,
		Stake:    2.0,
	}
	require.NoError(t, repo.Append(ctx, entry))

	src := newTestSource()
	src.history["E0"] = append(src.history["E0"], models.MatchRecord{
		Date:      time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC),
		HomeTeam:  "Arsenal",
		AwayTeam:  "Chelsea",
		HomeGoals: 2,
		AwayGoals: 0,
	})

	audit := NewAuditService(repo, NewFeedResultSource(src), logger.NewLogger("error"))
	report, summary, err := audit.RunCycle(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Settled)
	assert.Equal(t, 1, report.Wins)
	assert.Equal(t, 1, summary.Settled)
	assert.InDelta(t, 2.2, summary.TotalProfit, 1e-9)
	assert.InDelta(t, 110.0, summary.ROI, 1e-9)
}
