package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/goleador/internal/models"
)

func testEntry(pick string) *models.LedgerEntry {
	return &models.LedgerEntry{
		Date:          time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC),
		League:        "E0",
		HomeTeam:      "Arsenal",
		AwayTeam:      "Chelsea",
		Pick:          pick,
		Market:        models.Market1X2,
		Probability:   0.55,
		Odd:           2.10,
		ExpectedValue: 0.155,
		Status:        models.OutcomePending,
		Stake:         2.0,
	}
}

func TestAppendAssignsIDAndTimestamps(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	entry := testEntry(models.PickHomeWin)
	require.NoError(t, repo.Append(ctx, entry))

	assert.NotEqual(t, entry.ID.String(), "00000000-0000-0000-0000-000000000000")
	assert.False(t, entry.CreatedAt.IsZero())
}

func TestAppendRejectsDuplicateNaturalKey(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, testEntry(models.PickHomeWin)))
	err := repo.Append(ctx, testEntry(models.PickHomeWin))
	assert.ErrorIs(t, err, models.ErrDuplicateKey)

	// A different pick on the same fixture is a distinct entry.
	assert.NoError(t, repo.Append(ctx, testEntry(models.PickOver25)))
}

func TestSettleTransitionsExactlyOnce(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	entry := testEntry(models.PickHomeWin)
	require.NoError(t, repo.Append(ctx, entry))

	when := time.Now().UTC()
	require.NoError(t, repo.Settle(ctx, entry.ID, models.OutcomeWin, 2.2, 2, 1, when))

	err := repo.Settle(ctx, entry.ID, models.OutcomeLoss, -2.0, 0, 3, when)
	assert.ErrorIs(t, err, models.ErrAlreadySettled)

	settled, err := repo.Settled(ctx)
	require.NoError(t, err)
	require.Len(t, settled, 1)
	assert.Equal(t, models.OutcomeWin, settled[0].Status)
	require.NotNil(t, settled[0].Profit)
	assert.Equal(t, 2.2, *settled[0].Profit)
	require.NotNil(t, settled[0].FinalHome)
	assert.Equal(t, 2, *settled[0].FinalHome)
}

func TestSettleUnknownEntry(t *testing.T) {
	repo := NewMemoryRepository()

	entry := testEntry(models.PickHomeWin)
	err := repo.Settle(context.Background(), entry.ID, models.OutcomeWin, 1, 1, 0, time.Now())
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestPendingAndSettledPartition(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	first := testEntry(models.PickHomeWin)
	second := testEntry(models.PickOver25)
	require.NoError(t, repo.Append(ctx, first))
	require.NoError(t, repo.Append(ctx, second))

	require.NoError(t, repo.Settle(ctx, first.ID, models.OutcomeLoss, -2.0, 0, 1, time.Now().UTC()))

	pending, err := repo.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, models.PickOver25, pending[0].Pick)

	settled, err := repo.Settled(ctx)
	require.NoError(t, err)
	require.Len(t, settled, 1)

	all, err := repo.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestReadsReturnCopies(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	entry := testEntry(models.PickHomeWin)
	require.NoError(t, repo.Append(ctx, entry))

	pending, err := repo.Pending(ctx)
	require.NoError(t, err)
	pending[0].Status = models.OutcomeWin

	again, err := repo.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, again, 1)
	assert.Equal(t, models.OutcomePending, again[0].Status)
}
