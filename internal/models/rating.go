package models

// TeamRating holds the attack and defense strength of a team, normalized
// so the league-wide mean of each is 1.0. Values are always positive.
type TeamRating struct {
	Attack  float64 `json:"attack"`
	Defense float64 `json:"defense"`
}

// NeutralRating is returned for teams with insufficient match history.
func NeutralRating() TeamRating {
	return TeamRating{Attack: 1.0, Defense: 1.0}
}

// LeagueProfile describes league-level scoring context.
type LeagueProfile struct {
	Code     string  `json:"code"`
	Name     string  `json:"name"`
	AvgGoals float64 `json:"avg_goals"` // average total goals per match
	Tier     float64 `json:"tier"`      // (0,1], 1.0 for top leagues
}

// RegistryEntry is a team's cross-league registry record: its normalized
// rating together with the context of the league it was rated in.
type RegistryEntry struct {
	Team     string     `json:"team"`
	League   string     `json:"league"`
	Rating   TeamRating `json:"rating"`
	Tier     float64    `json:"tier"`
	AvgGoals float64    `json:"avg_goals"`
}
