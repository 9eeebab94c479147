package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// OutcomeStatus is the settlement state of a ledger entry.
type OutcomeStatus string

const (
	OutcomePending OutcomeStatus = "PENDING"
	OutcomeWin     OutcomeStatus = "WIN"
	OutcomeLoss    OutcomeStatus = "LOSS"
	OutcomePush    OutcomeStatus = "PUSH"
)

// IsSettled reports whether the entry has reached a terminal state.
func (s OutcomeStatus) IsSettled() bool {
	return s == OutcomeWin || s == OutcomeLoss || s == OutcomePush
}

// LedgerEntry is the persisted record of a decision and, once the fixture
// completes, its realized outcome. Created with status PENDING and a nil
// profit; mutated exactly once by the settlement auditor, immutable after.
type LedgerEntry struct {
	ID            uuid.UUID     `db:"id" json:"id"`
	Date          time.Time     `db:"date" json:"date" validate:"required"`
	League        string        `db:"league" json:"league" validate:"required"`
	HomeTeam      string        `db:"home_team" json:"home_team" validate:"required"`
	AwayTeam      string        `db:"away_team" json:"away_team" validate:"required"`
	Pick          string        `db:"pick" json:"pick" validate:"required"`
	Market        Market        `db:"market" json:"market" validate:"required"`
	Probability   float64       `db:"probability" json:"probability" validate:"gte=0,lte=1"`
	Odd           float64       `db:"odd" json:"odd" validate:"gt=1"`
	ExpectedValue float64       `db:"expected_value" json:"expected_value"`
	Status        OutcomeStatus `db:"status" json:"status" validate:"required"`
	Stake         float64       `db:"stake" json:"stake" validate:"gte=0"`
	Profit        *float64      `db:"profit" json:"profit"`
	FinalHome     *int          `db:"final_home" json:"final_home"`
	FinalAway     *int          `db:"final_away" json:"final_away"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
	SettledAt     *time.Time    `db:"settled_at" json:"settled_at"`
}

// Key is the natural key that makes settlement idempotent: one entry per
// (date, league, home, away, pick).
func (e *LedgerEntry) Key() string {
	return strings.Join([]string{
		e.Date.Format("2006-01-02"),
		e.League,
		e.HomeTeam,
		e.AwayTeam,
		e.Pick,
	}, "|")
}

func (e *LedgerEntry) String() string {
	return fmt.Sprintf("%s %s vs %s [%s @ %.2f] %s",
		e.Date.Format("2006-01-02"), e.HomeTeam, e.AwayTeam, e.Pick, e.Odd, e.Status)
}
