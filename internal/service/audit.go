package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/goleador/internal/ledger"
	"github.com/yourusername/goleador/internal/metrics"
	"github.com/yourusername/goleador/internal/models"
	"github.com/yourusername/goleador/internal/settle"
)

// AuditService runs the settlement pass and refreshes the cumulative
// PnL view afterwards.
type AuditService struct {
	auditor    *settle.Auditor
	aggregator *settle.Aggregator
	repo       ledger.Repository
	log        *logrus.Logger
}

// NewAuditService wires the settlement cycle.
func NewAuditService(repo ledger.Repository, results settle.ResultSource, log *logrus.Logger) *AuditService {
	return &AuditService{
		auditor:    settle.NewAuditor(repo, results, log),
		aggregator: settle.NewAggregator(repo),
		repo:       repo,
		log:        log,
	}
}

// RunCycle settles whatever fixtures have completed and recomputes the
// cumulative PnL summary. Running it twice in a row settles nothing new
// the second time.
func (s *AuditService) RunCycle(ctx context.Context) (settle.AuditReport, settle.PnLSummary, error) {
	report, err := s.auditor.Run(ctx)
	if err != nil {
		return report, settle.PnLSummary{}, fmt.Errorf("settlement pass failed: %w", err)
	}

	for i := 0; i < report.Wins; i++ {
		metrics.RecordSettlement(string(models.OutcomeWin))
	}
	for i := 0; i < report.Losses; i++ {
		metrics.RecordSettlement(string(models.OutcomeLoss))
	}
	for i := 0; i < report.Pushes; i++ {
		metrics.RecordSettlement(string(models.OutcomePush))
	}

	summary, err := s.aggregator.Summarize(ctx)
	if err != nil {
		return report, summary, fmt.Errorf("pnl aggregation failed: %w", err)
	}
	metrics.UpdatePnL(summary.TotalProfit, summary.ROI)

	pending, err := s.repo.Pending(ctx)
	if err != nil {
		return report, summary, fmt.Errorf("failed to count pending entries: %w", err)
	}
	metrics.UpdatePending(float64(len(pending)))

	s.log.WithFields(logrus.Fields{
		"settled": report.Settled,
		"skipped": report.Skipped,
		"pnl":     summary.String(),
	}).Info("Audit cycle completed")

	return report, summary, nil
}
