package ledger

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/goleador/internal/models"
)

// MemoryRepository is an in-memory Repository used by tests and dry runs.
type MemoryRepository struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*models.LedgerEntry
	keys    map[string]uuid.UUID
}

// NewMemoryRepository creates an empty in-memory ledger.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		entries: make(map[uuid.UUID]*models.LedgerEntry),
		keys:    make(map[string]uuid.UUID),
	}
}

// Append inserts a new PENDING entry.
func (r *MemoryRepository) Append(ctx context.Context, entry *models.LedgerEntry) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.keys[entry.Key()]; exists {
		return models.ErrDuplicateKey
	}

	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	stored := *entry
	r.entries[entry.ID] = &stored
	r.keys[entry.Key()] = entry.ID

	return nil
}

// Pending returns all entries awaiting settlement.
func (r *MemoryRepository) Pending(ctx context.Context) ([]*models.LedgerEntry, error) {
	_ = ctx
	return r.filter(func(e *models.LedgerEntry) bool {
		return e.Status == models.OutcomePending
	}, true), nil
}

// Settle transitions a PENDING entry to its terminal state.
func (r *MemoryRepository) Settle(ctx context.Context, id uuid.UUID, status models.OutcomeStatus, profit float64, finalHome, finalAway int, settledAt time.Time) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[id]
	if !ok {
		return models.ErrNotFound
	}
	if entry.Status != models.OutcomePending {
		return models.ErrAlreadySettled
	}

	entry.Status = status
	entry.Profit = &profit
	entry.FinalHome = &finalHome
	entry.FinalAway = &finalAway
	entry.SettledAt = &settledAt

	return nil
}

// Settled returns all entries in a terminal state.
func (r *MemoryRepository) Settled(ctx context.Context) ([]*models.LedgerEntry, error) {
	_ = ctx
	return r.filter(func(e *models.LedgerEntry) bool {
		return e.Status.IsSettled()
	}, false), nil
}

// All returns every entry, newest first.
func (r *MemoryRepository) All(ctx context.Context) ([]*models.LedgerEntry, error) {
	_ = ctx
	return r.filter(func(e *models.LedgerEntry) bool { return true }, false), nil
}

func (r *MemoryRepository) filter(keep func(*models.LedgerEntry) bool, ascending bool) []*models.LedgerEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*models.LedgerEntry
	for _, entry := range r.entries {
		if keep(entry) {
			copied := *entry
			out = append(out, &copied)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if ascending {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Date.After(out[j].Date)
	})

	return out
}
