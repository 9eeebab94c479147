// Package rating derives team strength ratings from recent match history
// and aggregates them into league-level context.
package rating

import (
	"math"

	"github.com/yourusername/goleador/internal/config"
	"github.com/yourusername/goleador/internal/models"
)

// ratingFloor keeps ratings strictly positive even for teams that never
// scored inside the window.
const ratingFloor = 0.05

// TeamMatch is one completed match seen from the rated team's
// perspective, ordered most recent last.
type TeamMatch struct {
	GoalsFor     int
	GoalsAgainst int
	ShotsFor     *int
	ShotsAgainst *int
}

// Estimator computes exponentially time-decayed attack/defense ratings
// over a rolling window of a team's most recent matches.
type Estimator struct {
	Window      int
	MinHistory  int
	DecayAlpha  float64
	GoalWeight  float64
	ShotDivisor float64
}

// NewEstimator creates an estimator from the model configuration.
func NewEstimator(cfg config.ModelConfig) *Estimator {
	return &Estimator{
		Window:      cfg.HistoryWindow,
		MinHistory:  cfg.MinHistory,
		DecayAlpha:  cfg.DecayAlpha,
		GoalWeight:  cfg.GoalWeight,
		ShotDivisor: cfg.ShotDivisor,
	}
}

// Rate returns the team's raw (pre-normalization) rating. Teams with
// fewer than MinHistory matches get the neutral rating. Output is
// strictly positive and deterministic for a given input ordering.
func (e *Estimator) Rate(history []TeamMatch) models.TeamRating {
	if len(history) < e.MinHistory {
		return models.NeutralRating()
	}
	if len(history) > e.Window {
		history = history[len(history)-e.Window:]
	}

	n := len(history)
	var weightSum, attack, defense float64
	for i, m := range history {
		// Older matches count less: the most recent match carries
		// weight 1, each step back multiplies by DecayAlpha.
		w := math.Pow(e.DecayAlpha, float64(n-1-i))
		attack += w * e.blend(m.GoalsFor, m.ShotsFor)
		defense += w * e.blend(m.GoalsAgainst, m.ShotsAgainst)
		weightSum += w
	}

	attack /= weightSum
	defense /= weightSum

	return models.TeamRating{
		Attack:  math.Max(attack, ratingFloor),
		Defense: math.Max(defense, ratingFloor),
	}
}

// blend combines goals with shots on target when the feed provides them.
// Shots are divided by ShotDivisor to put them on a goal-like scale.
func (e *Estimator) blend(goals int, shots *int) float64 {
	shotSignal := float64(goals)
	if shots != nil {
		shotSignal = float64(*shots) / e.ShotDivisor
	}
	return e.GoalWeight*float64(goals) + (1.0-e.GoalWeight)*shotSignal
}
