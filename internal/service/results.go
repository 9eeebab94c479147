package service

import (
	"context"

	"github.com/yourusername/goleador/internal/feed"
	"github.com/yourusername/goleador/internal/models"
)

// FeedResultSource resolves final scores from the historical feed: once
// a fixture completes, it shows up as a history row for its league.
type FeedResultSource struct {
	source feed.DataSource
}

// NewFeedResultSource creates a result source over the data feed.
func NewFeedResultSource(source feed.DataSource) *FeedResultSource {
	return &FeedResultSource{source: source}
}

// FinalScore looks the entry's fixture up in the league history. A
// fixture not yet present in the feed is reported as not found.
func (r *FeedResultSource) FinalScore(ctx context.Context, entry *models.LedgerEntry) (int, int, bool, error) {
	rows, err := r.source.HistoricalMatches(ctx, entry.League)
	if err != nil {
		return 0, 0, false, err
	}

	day := entry.Date.Format("2006-01-02")
	for _, row := range rows {
		if row.HomeTeam != entry.HomeTeam || row.AwayTeam != entry.AwayTeam {
			continue
		}
		if row.Date.Format("2006-01-02") != day {
			continue
		}
		return row.HomeGoals, row.AwayGoals, true, nil
	}

	return 0, 0, false, nil
}
