package settle

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/yourusername/goleador/internal/ledger"
	"github.com/yourusername/goleador/internal/models"
)

// PnLSummary is the aggregated result of all settled ledger entries.
type PnLSummary struct {
	TotalProfit float64 `json:"total_profit"`
	TotalStaked float64 `json:"total_staked"`
	ROI         float64 `json:"roi"` // percent, 0 when nothing staked
	Settled     int     `json:"settled"`
	Wins        int     `json:"wins"`
	Losses      int     `json:"losses"`
	Pushes      int     `json:"pushes"`
}

func (s PnLSummary) String() string {
	return fmt.Sprintf("settled=%d W/L/P=%d/%d/%d profit=%.2f staked=%.2f roi=%.2f%%",
		s.Settled, s.Wins, s.Losses, s.Pushes, s.TotalProfit, s.TotalStaked, s.ROI)
}

// Aggregator sums the ledger into cumulative profit and ROI.
type Aggregator struct {
	repo ledger.Repository
}

// NewAggregator creates a PnL aggregator over the ledger.
func NewAggregator(repo ledger.Repository) *Aggregator {
	return &Aggregator{repo: repo}
}

// Summarize sums profit and stake across all settled entries.
func (a *Aggregator) Summarize(ctx context.Context) (PnLSummary, error) {
	var summary PnLSummary

	entries, err := a.repo.Settled(ctx)
	if err != nil {
		return summary, fmt.Errorf("failed to load settled entries: %w", err)
	}

	profit := decimal.Zero
	staked := decimal.Zero
	for _, entry := range entries {
		if entry.Profit != nil {
			profit = profit.Add(decimal.NewFromFloat(*entry.Profit))
		}
		staked = staked.Add(decimal.NewFromFloat(entry.Stake))

		summary.Settled++
		switch entry.Status {
		case models.OutcomeWin:
			summary.Wins++
		case models.OutcomeLoss:
			summary.Losses++
		case models.OutcomePush:
			summary.Pushes++
		}
	}

	summary.TotalProfit, _ = profit.Round(4).Float64()
	summary.TotalStaked, _ = staked.Round(4).Float64()
	if staked.IsPositive() {
		roi := profit.Div(staked).Mul(decimal.NewFromInt(100))
		summary.ROI, _ = roi.Round(2).Float64()
	}

	return summary, nil
}
