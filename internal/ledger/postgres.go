package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/yourusername/goleador/internal/database"
	"github.com/yourusername/goleador/internal/models"
)

// PostgresRepository implements Repository for PostgreSQL.
type PostgresRepository struct {
	db *database.DB
}

// NewPostgresRepository creates a new ledger repository.
func NewPostgresRepository(db *database.DB) Repository {
	return &PostgresRepository{db: db}
}

const ledgerColumns = `id, date, league, home_team, away_team, pick, market, probability,
	       odd, expected_value, status, stake, profit, final_home, final_away,
	       created_at, settled_at`

// Append inserts a new PENDING entry. The unique index on
// (date, league, home_team, away_team, pick) enforces the natural key.
func (r *PostgresRepository) Append(ctx context.Context, entry *models.LedgerEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO ledger_entries (id, date, league, home_team, away_team, pick, market,
		                            probability, odd, expected_value, status, stake, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		entry.ID, entry.Date, entry.League, entry.HomeTeam, entry.AwayTeam, entry.Pick,
		entry.Market, entry.Probability, entry.Odd, entry.ExpectedValue, entry.Status,
		entry.Stake, entry.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return models.ErrDuplicateKey
		}
		return fmt.Errorf("failed to append ledger entry: %w", err)
	}

	return nil
}

// Pending returns all entries awaiting settlement.
func (r *PostgresRepository) Pending(ctx context.Context) ([]*models.LedgerEntry, error) {
	return r.query(ctx, `
		SELECT `+ledgerColumns+`
		FROM ledger_entries
		WHERE status = $1
		ORDER BY date ASC
	`, models.OutcomePending)
}

// Settle transitions a PENDING entry to its terminal state. The WHERE
// clause on status makes the transition happen at most once.
func (r *PostgresRepository) Settle(ctx context.Context, id uuid.UUID, status models.OutcomeStatus, profit float64, finalHome, finalAway int, settledAt time.Time) error {
	query := `
		UPDATE ledger_entries
		SET status = $1, profit = $2, final_home = $3, final_away = $4, settled_at = $5
		WHERE id = $6 AND status = $7
	`

	tag, err := r.db.GetPool().Exec(ctx, query,
		status, profit, finalHome, finalAway, settledAt, id, models.OutcomePending,
	)
	if err != nil {
		return fmt.Errorf("failed to settle ledger entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrAlreadySettled
	}

	return nil
}

// Settled returns all entries in a terminal state.
func (r *PostgresRepository) Settled(ctx context.Context) ([]*models.LedgerEntry, error) {
	return r.query(ctx, `
		SELECT `+ledgerColumns+`
		FROM ledger_entries
		WHERE status != $1
		ORDER BY date DESC
	`, models.OutcomePending)
}

// All returns every entry, newest first.
func (r *PostgresRepository) All(ctx context.Context) ([]*models.LedgerEntry, error) {
	return r.query(ctx, `
		SELECT `+ledgerColumns+`
		FROM ledger_entries
		ORDER BY date DESC
	`)
}

func (r *PostgresRepository) query(ctx context.Context, sql string, args ...any) ([]*models.LedgerEntry, error) {
	rows, err := r.db.GetPool().Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger: %w", err)
	}
	defer rows.Close()

	var entries []*models.LedgerEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func scanEntry(rows pgx.Rows) (*models.LedgerEntry, error) {
	entry := &models.LedgerEntry{}
	err := rows.Scan(
		&entry.ID, &entry.Date, &entry.League, &entry.HomeTeam, &entry.AwayTeam,
		&entry.Pick, &entry.Market, &entry.Probability, &entry.Odd, &entry.ExpectedValue,
		&entry.Status, &entry.Stake, &entry.Profit, &entry.FinalHome, &entry.FinalAway,
		&entry.CreatedAt, &entry.SettledAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
	}
	return entry, nil
}
