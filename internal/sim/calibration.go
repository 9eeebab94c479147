package sim

import (
	"math"

	"github.com/yourusername/goleador/internal/config"
	"github.com/yourusername/goleador/internal/models"
)

// Calibrator corrects the raw simulated totals probability for known
// simulation overconfidence and reconciles it with the quoted market.
type Calibrator struct {
	cfg config.ModelConfig
}

// NewCalibrator creates a calibrator with the given model configuration.
func NewCalibrator(cfg config.ModelConfig) *Calibrator {
	return &Calibrator{cfg: cfg}
}

// Calibrate adjusts the simulated Over 2.5 probability in place and
// recomputes the chaos score from the calibrated view.
//
// Three corrections, in order: shrink toward 0.5, an extra downward
// adjustment for high-scoring but mismatched fixtures (blowouts produce
// fewer total goals than raw Poisson implies), and a 75/25 blend against
// the quoted market when the implied probability diverges beyond
// tolerance.
func (c *Calibrator) Calibrate(result *models.SimulationResult, odds *models.MarketOdds) {
	p := 0.5 + (result.ProbOver25-0.5)*c.cfg.OverShrink

	total := result.TotalLambda()
	if total > c.cfg.MismatchTotalLambda {
		asymmetry := math.Abs(result.LambdaHome-result.LambdaAway) / total
		if asymmetry > c.cfg.MismatchRatio {
			p *= c.cfg.MismatchDamp
		}
	}

	if odds.HasOver() {
		implied := impliedProb(odds.Over25, c.cfg.Overround)
		if math.Abs(p-implied) > c.cfg.BlendTolerance {
			p = c.cfg.SimBlendWeight*p + (1-c.cfg.SimBlendWeight)*implied
		}
	}

	result.ProbOver25 = clamp(p, 0.01, 0.99)
	result.ChaosScore = chaosScore(result)
}
