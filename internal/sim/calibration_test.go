package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yourusername/goleador/internal/models"
)

func TestCalibrateShrinksTowardHalf(t *testing.T) {
	c := NewCalibrator(testModelConfig())

	result := &models.SimulationResult{
		LambdaHome: 1.4,
		LambdaAway: 1.4,
		ProbOver25: 0.9,
		ProbBTTS:   0.6,
	}
	c.Calibrate(result, &models.MarketOdds{})

	// 0.5 + (0.9-0.5)*0.75
	assert.InDelta(t, 0.8, result.ProbOver25, 1e-9)
}

func TestCalibrateDampsMismatchedHighScoringFixtures(t *testing.T) {
	c := NewCalibrator(testModelConfig())

	result := &models.SimulationResult{
		LambdaHome: 3.0,
		LambdaAway: 0.5,
		ProbOver25: 0.9,
		ProbBTTS:   0.4,
	}
	c.Calibrate(result, &models.MarketOdds{})

	// Shrink first, then the blowout damp: (0.5+0.4*0.75)*0.92.
	assert.InDelta(t, 0.8*0.92, result.ProbOver25, 1e-9)
}

func TestCalibrateSkipsDampForBalancedFixtures(t *testing.T) {
	c := NewCalibrator(testModelConfig())

	result := &models.SimulationResult{
		LambdaHome: 1.9,
		LambdaAway: 1.6,
		ProbOver25: 0.9,
		ProbBTTS:   0.6,
	}
	c.Calibrate(result, &models.MarketOdds{})

	// Total 3.5 exceeds the threshold but asymmetry 0.3/3.5 does not.
	assert.InDelta(t, 0.8, result.ProbOver25, 1e-9)
}

func TestCalibrateBlendsAgainstDivergentMarket(t *testing.T) {
	c := NewCalibrator(testModelConfig())

	result := &models.SimulationResult{
		LambdaHome: 1.4,
		LambdaAway: 1.4,
		ProbOver25: 0.9,
		ProbBTTS:   0.6,
	}
	c.Calibrate(result, &models.MarketOdds{Over25: 2.0})

	// Shrunk to 0.8; implied (1/2)/1.05 diverges beyond tolerance, so
	// the final value is the 75/25 blend.
	implied := (1.0 / 2.0) / 1.05
	assert.InDelta(t, 0.75*0.8+0.25*implied, result.ProbOver25, 1e-9)
}

func TestCalibrateKeepsAgreeingMarketUntouched(t *testing.T) {
	c := NewCalibrator(testModelConfig())

	// Quote implying ~0.595 sits within tolerance of the shrunk 0.65.
	result := &models.SimulationResult{
		LambdaHome: 1.4,
		LambdaAway: 1.4,
		ProbOver25: 0.7,
		ProbBTTS:   0.6,
	}
	c.Calibrate(result, &models.MarketOdds{Over25: 1.6})

	assert.InDelta(t, 0.65, result.ProbOver25, 1e-9)
}

func TestCalibrateRecomputesChaosScore(t *testing.T) {
	c := NewCalibrator(testModelConfig())

	result := &models.SimulationResult{
		LambdaHome: 1.4,
		LambdaAway: 1.4,
		ProbOver25: 0.9,
		ProbBTTS:   0.6,
	}
	before := chaosScore(result)
	c.Calibrate(result, &models.MarketOdds{})

	assert.NotEqual(t, before, result.ChaosScore)
	assert.Equal(t, chaosScore(result), result.ChaosScore)
}
