// Package logger provides decision and settlement audit logging.
package logger

import (
	"github.com/sirupsen/logrus"

	"github.com/yourusername/goleador/internal/models"
)

// DecisionLogger provides a dedicated audit trail for ledger writes.
type DecisionLogger struct {
	*logrus.Entry
}

// NewDecisionLogger creates a new decision audit logger.
func NewDecisionLogger(baseLogger *logrus.Logger) *DecisionLogger {
	return &DecisionLogger{
		Entry: baseLogger.WithField("component", "decision-audit"),
	}
}

// LogDecision logs a recorded principal pick.
func (dl *DecisionLogger) LogDecision(fixture models.Fixture, pick *models.Candidate, stakePct float64) {
	dl.WithFields(logrus.Fields{
		"league":      fixture.League,
		"home":        fixture.HomeTeam,
		"away":        fixture.AwayTeam,
		"date":        fixture.Date.Format("2006-01-02"),
		"market":      pick.Market,
		"pick":        pick.Pick,
		"probability": pick.Probability,
		"odd":         pick.Odd,
		"ev":          pick.ExpectedValue,
		"stake_pct":   stakePct,
	}).Info("Decision recorded")
}

// LogNoPick logs a fixture for which every candidate was filtered out.
func (dl *DecisionLogger) LogNoPick(fixture models.Fixture, best *models.Candidate) {
	fields := logrus.Fields{
		"league": fixture.League,
		"home":   fixture.HomeTeam,
		"away":   fixture.AwayTeam,
	}
	if best != nil {
		fields["best_rejected_pick"] = best.Pick
		fields["best_rejected_reason"] = best.Reason
	}
	dl.WithFields(fields).Info("No valid pick for fixture")
}

// LogSettlement logs a ledger entry transition out of PENDING.
func (dl *DecisionLogger) LogSettlement(entry *models.LedgerEntry) {
	fields := logrus.Fields{
		"key":    entry.Key(),
		"pick":   entry.Pick,
		"status": entry.Status,
	}
	if entry.Profit != nil {
		fields["profit"] = *entry.Profit
	}
	if entry.FinalHome != nil && entry.FinalAway != nil {
		fields["final_score"] = []int{*entry.FinalHome, *entry.FinalAway}
	}
	dl.WithFields(fields).Info("Ledger entry settled")
}
