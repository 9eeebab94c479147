// Package settle replays completed fixtures against the ledger: it
// grades pending entries, fixes realized profit and aggregates PnL.
package settle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/goleador/internal/ledger"
	"github.com/yourusername/goleador/internal/logger"
	"github.com/yourusername/goleador/internal/models"
)

// ResultSource looks up the final score of a fixture once it completed.
// A missing result is not an error: the entry stays PENDING and is
// re-attempted on the next cycle.
type ResultSource interface {
	FinalScore(ctx context.Context, entry *models.LedgerEntry) (homeGoals, awayGoals int, found bool, err error)
}

// Auditor settles pending ledger entries against completed fixtures.
// The transition happens at most once per entry; re-running the auditor
// over an already-settled ledger is a no-op.
type Auditor struct {
	repo    ledger.Repository
	results ResultSource
	logger  *logrus.Logger
	audit   *logger.DecisionLogger
}

// AuditReport summarizes one settlement pass.
type AuditReport struct {
	Examined int
	Settled  int
	Wins     int
	Losses   int
	Pushes   int
	Skipped  int
}

// NewAuditor creates a settlement auditor.
func NewAuditor(repo ledger.Repository, results ResultSource, baseLogger *logrus.Logger) *Auditor {
	return &Auditor{
		repo:    repo,
		results: results,
		logger:  baseLogger,
		audit:   logger.NewDecisionLogger(baseLogger),
	}
}

// Run settles every pending entry whose fixture has a recorded final
// score. Entries without a result remain pending.
func (a *Auditor) Run(ctx context.Context) (AuditReport, error) {
	var report AuditReport

	pending, err := a.repo.Pending(ctx)
	if err != nil {
		return report, fmt.Errorf("failed to load pending entries: %w", err)
	}
	report.Examined = len(pending)

	for _, entry := range pending {
		homeGoals, awayGoals, found, err := a.results.FinalScore(ctx, entry)
		if err != nil {
			a.logger.WithError(err).WithField("key", entry.Key()).
				Warn("Result lookup failed; entry stays pending")
			report.Skipped++
			continue
		}
		if !found {
			report.Skipped++
			continue
		}

		status, err := Grade(entry.Market, entry.Pick, homeGoals, awayGoals)
		if err != nil {
			a.logger.WithError(err).WithField("key", entry.Key()).
				Error("Ungradable ledger entry")
			report.Skipped++
			continue
		}

		profit := Profit(status, entry.Stake, entry.Odd)
		err = a.repo.Settle(ctx, entry.ID, status, profit, homeGoals, awayGoals, time.Now().UTC())
		if err != nil {
			if errors.Is(err, models.ErrAlreadySettled) {
				continue
			}
			return report, fmt.Errorf("failed to settle %s: %w", entry.Key(), err)
		}

		report.Settled++
		switch status {
		case models.OutcomeWin:
			report.Wins++
		case models.OutcomeLoss:
			report.Losses++
		case models.OutcomePush:
			report.Pushes++
		}

		entry.Status = status
		entry.Profit = &profit
		entry.FinalHome = &homeGoals
		entry.FinalAway = &awayGoals
		a.audit.LogSettlement(entry)
	}

	return report, nil
}

// Grade applies the market-specific win/loss/push rule to a final score.
func Grade(market models.Market, pick string, homeGoals, awayGoals int) (models.OutcomeStatus, error) {
	total := homeGoals + awayGoals
	diff := homeGoals - awayGoals

	switch pick {
	case models.PickHomeWin:
		return winIf(diff > 0), nil
	case models.PickDraw:
		return winIf(diff == 0), nil
	case models.PickAwayWin:
		return winIf(diff < 0), nil

	case models.PickDNBHome:
		if diff == 0 {
			return models.OutcomePush, nil
		}
		return winIf(diff > 0), nil
	case models.PickDNBAway:
		if diff == 0 {
			return models.OutcomePush, nil
		}
		return winIf(diff < 0), nil

	case models.PickHomeOrDraw:
		return winIf(diff >= 0), nil
	case models.PickAwayOrDraw:
		return winIf(diff <= 0), nil

	case models.PickOver25:
		return winIf(total > 2), nil
	case models.PickUnder25:
		return winIf(total < 3), nil

	case models.PickBTTSYes:
		return winIf(homeGoals > 0 && awayGoals > 0), nil
	case models.PickBTTSNo:
		return winIf(homeGoals == 0 || awayGoals == 0), nil

	case models.PickHomeMinus:
		return winIf(diff >= 2), nil
	case models.PickHomePlus:
		return winIf(diff >= -1), nil
	case models.PickAwayMinus:
		return winIf(diff <= -2), nil
	case models.PickAwayPlus:
		return winIf(diff <= 1), nil
	}

	return models.OutcomePending, fmt.Errorf("unknown pick %q in market %s", pick, market)
}

// Profit computes realized profit: stake*odd - stake on a win, -stake on
// a loss, 0 on a push. Decimal arithmetic avoids float drift in the
// ledger totals.
func Profit(status models.OutcomeStatus, stake, odd float64) float64 {
	switch status {
	case models.OutcomeWin:
		s := decimal.NewFromFloat(stake)
		o := decimal.NewFromFloat(odd)
		profit, _ := s.Mul(o).Sub(s).Round(4).Float64()
		return profit
	case models.OutcomeLoss:
		return -stake
	default:
		return 0
	}
}

func winIf(won bool) models.OutcomeStatus {
	if won {
		return models.OutcomeWin
	}
	return models.OutcomeLoss
}
