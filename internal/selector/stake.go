package selector

import (
	"github.com/yourusername/goleador/internal/config"
	"github.com/yourusername/goleador/internal/models"
)

// StakeSizer converts a winning probability and a quoted price into a
// fractional-Kelly bankroll percentage.
type StakeSizer struct {
	cfg config.StakingConfig
}

// NewStakeSizer creates a stake sizer with the given staking parameters.
func NewStakeSizer(cfg config.StakingConfig) *StakeSizer {
	return &StakeSizer{cfg: cfg}
}

// Stake returns the stake as a percentage of bankroll, clamped into
// [0, MaxStakePct]. Goal-market picks are additionally scaled by the
// calibration confidence score, reaching full size at FullConfidence.
func (ss *StakeSizer) Stake(pick *models.Candidate, chaosScore float64) float64 {
	if pick == nil {
		return 0
	}
	return ss.stake(pick.Probability, pick.Odd, pick.Market.IsGoalMarket(), chaosScore)
}

func (ss *StakeSizer) stake(probability, odd float64, goalMarket bool, chaosScore float64) float64 {
	if probability <= 0 || probability >= 1 || odd <= 1 {
		return 0
	}

	b := odd - 1
	q := 1 - probability
	kelly := (b*probability - q) / b
	if kelly <= 0 {
		return 0
	}

	stakePct := kelly * ss.cfg.KellyFraction * 100

	if goalMarket {
		confidence := chaosScore / ss.cfg.FullConfidence
		if confidence > 1 {
			confidence = 1
		}
		if confidence < 0 {
			confidence = 0
		}
		stakePct *= confidence
	}

	if probability > ss.cfg.BoostThreshold {
		stakePct *= ss.cfg.BoostFactor
	}

	if stakePct < 0 {
		return 0
	}
	if stakePct > ss.cfg.MaxStakePct {
		return ss.cfg.MaxStakePct
	}
	return stakePct
}
