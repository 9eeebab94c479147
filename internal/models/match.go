package models

import "time"

// MatchRecord represents one completed match row from the historical feed,
// ordered chronologically within a league.
type MatchRecord struct {
	Date              time.Time `json:"date"`
	HomeTeam          string    `json:"home_team" validate:"required"`
	AwayTeam          string    `json:"away_team" validate:"required"`
	HomeGoals         int       `json:"home_goals" validate:"gte=0"`
	AwayGoals         int       `json:"away_goals" validate:"gte=0"`
	HomeShotsOnTarget *int      `json:"home_shots_on_target"`
	AwayShotsOnTarget *int      `json:"away_shots_on_target"`
	Odds              *MarketOdds `json:"odds"`
}

// TotalGoals returns the summed goal count of the match.
func (m *MatchRecord) TotalGoals() int {
	return m.HomeGoals + m.AwayGoals
}

// Fixture is the unit of analysis: an upcoming match resolved to rated teams.
type Fixture struct {
	League      string      `json:"league" validate:"required"`
	Date        time.Time   `json:"date"`
	HomeTeam    string      `json:"home_team" validate:"required"`
	AwayTeam    string      `json:"away_team" validate:"required"`
	CrossLeague bool        `json:"cross_league"`
	Odds        *MarketOdds `json:"odds"`
}

// FixtureRow is a raw upcoming-fixture row from the feed, before team name
// resolution. Unresolvable rows are skipped, not treated as errors.
type FixtureRow struct {
	League   string
	Date     time.Time
	HomeTeam string
	AwayTeam string
	Odds     *MarketOdds
}
