package rating

import (
	"sort"

	"github.com/yourusername/goleador/internal/models"
)

// LeagueContext holds the rated teams of one league, normalized so the
// cross-team mean of attack and of defense is 1.0, together with the
// league's average goal rate and static tier weight.
type LeagueContext struct {
	profile models.LeagueProfile
	ratings map[string]models.TeamRating
}

// BuildLeagueContext rates every team appearing in the league's match
// rows and normalizes the ratings against the league mean. The average
// goals per match is computed over the same data window.
func BuildLeagueContext(profile models.LeagueProfile, rows []models.MatchRecord, est *Estimator) *LeagueContext {
	histories := make(map[string][]TeamMatch)
	totalGoals := 0
	for _, row := range rows {
		totalGoals += row.TotalGoals()
		histories[row.HomeTeam] = append(histories[row.HomeTeam], TeamMatch{
			GoalsFor:     row.HomeGoals,
			GoalsAgainst: row.AwayGoals,
			ShotsFor:     row.HomeShotsOnTarget,
			ShotsAgainst: row.AwayShotsOnTarget,
		})
		histories[row.AwayTeam] = append(histories[row.AwayTeam], TeamMatch{
			GoalsFor:     row.AwayGoals,
			GoalsAgainst: row.HomeGoals,
			ShotsFor:     row.AwayShotsOnTarget,
			ShotsAgainst: row.HomeShotsOnTarget,
		})
	}

	if len(rows) > 0 {
		profile.AvgGoals = float64(totalGoals) / float64(len(rows))
	}

	ratings := make(map[string]models.TeamRating, len(histories))
	var attackSum, defenseSum float64
	for team, history := range histories {
		r := est.Rate(history)
		ratings[team] = r
		attackSum += r.Attack
		defenseSum += r.Defense
	}

	// Normalize so mean(attack) = mean(defense) = 1.0 within the league.
	if n := float64(len(ratings)); n > 0 {
		attackMean := attackSum / n
		defenseMean := defenseSum / n
		for team, r := range ratings {
			if attackMean > 0 {
				r.Attack /= attackMean
			}
			if defenseMean > 0 {
				r.Defense /= defenseMean
			}
			ratings[team] = r
		}
	}

	return &LeagueContext{profile: profile, ratings: ratings}
}

// Profile returns the league profile with the computed average goal rate.
func (lc *LeagueContext) Profile() models.LeagueProfile {
	return lc.profile
}

// Rating returns the normalized rating for a team in this league.
func (lc *LeagueContext) Rating(team string) (models.TeamRating, bool) {
	r, ok := lc.ratings[team]
	return r, ok
}

// Teams returns the rated team names in a stable order.
func (lc *LeagueContext) Teams() []string {
	teams := make([]string, 0, len(lc.ratings))
	for team := range lc.ratings {
		teams = append(teams, team)
	}
	sort.Strings(teams)
	return teams
}

// Registry is the cross-league record of all rated teams, enabling
// estimation for fixtures between teams of different leagues. It is an
// explicit object owned by the analysis cycle, not ambient global state.
type Registry struct {
	entries map[string]models.RegistryEntry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]models.RegistryEntry)}
}

// Merge adds every rated team of the league context to the registry.
// A team re-rated in a later merge overwrites its earlier entry.
func (r *Registry) Merge(lc *LeagueContext) {
	profile := lc.Profile()
	for _, team := range lc.Teams() {
		rating, _ := lc.Rating(team)
		r.entries[team] = models.RegistryEntry{
			Team:     team,
			League:   profile.Code,
			Rating:   rating,
			Tier:     profile.Tier,
			AvgGoals: profile.AvgGoals,
		}
	}
}

// Teams returns all registered team names in a stable order.
func (r *Registry) Teams() []string {
	teams := make([]string, 0, len(r.entries))
	for team := range r.entries {
		teams = append(teams, team)
	}
	sort.Strings(teams)
	return teams
}

// Lookup returns the registry entry for an exact team name.
func (r *Registry) Lookup(team string) (models.RegistryEntry, bool) {
	e, ok := r.entries[team]
	return e, ok
}

// Resolve maps a raw feed name to a registered team via the resolver.
func (r *Registry) Resolve(raw string, resolver Resolver) (models.RegistryEntry, bool) {
	if e, ok := r.entries[raw]; ok {
		return e, true
	}
	name, ok := resolver.Resolve(raw, r.Teams())
	if !ok {
		return models.RegistryEntry{}, false
	}
	return r.entries[name], true
}

// Len returns the number of registered teams.
func (r *Registry) Len() int {
	return len(r.entries)
}
