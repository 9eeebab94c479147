// Package ledger persists decision records and their settlement state.
// The ledger is a single-writer append/update log: entries are created
// PENDING at decision time and transitioned exactly once by settlement.
package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/goleador/internal/models"
)

// Repository is the storage boundary for ledger entries.
type Repository interface {
	// Append inserts a new PENDING entry. Appending a second entry with
	// the same (date, league, home, away, pick) key returns
	// models.ErrDuplicateKey.
	Append(ctx context.Context, entry *models.LedgerEntry) error

	// Pending returns all entries awaiting settlement.
	Pending(ctx context.Context) ([]*models.LedgerEntry, error)

	// Settle transitions a PENDING entry to its terminal state and fixes
	// profit and final score. Settling an already-settled entry returns
	// models.ErrAlreadySettled; the stored state is left untouched.
	Settle(ctx context.Context, id uuid.UUID, status models.OutcomeStatus, profit float64, finalHome, finalAway int, settledAt time.Time) error

	// Settled returns all entries in a terminal state.
	Settled(ctx context.Context) ([]*models.LedgerEntry, error)

	// All returns every entry, newest first.
	All(ctx context.Context) ([]*models.LedgerEntry, error)
}
