// Package feed consumes the external tabular data feed: per-league
// historical match rows and upcoming fixtures with quoted odds.
package feed

import (
	"context"

	"github.com/yourusername/goleador/internal/models"
)

// DataSource provides parsed tabular match data per league code. A
// failure for one league is isolated to that league; callers skip it
// and proceed with the rest of the cycle.
type DataSource interface {
	// Name returns the source identifier for logging.
	Name() string

	// HistoricalMatches returns the league's completed matches in
	// chronological order.
	HistoricalMatches(ctx context.Context, leagueCode string) ([]models.MatchRecord, error)

	// UpcomingFixtures returns the league's unsettled fixture rows with
	// their quoted odds.
	UpcomingFixtures(ctx context.Context, leagueCode string) ([]models.FixtureRow, error)
}
