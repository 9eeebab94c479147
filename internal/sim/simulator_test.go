package sim

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/goleador/internal/config"
	"github.com/yourusername/goleador/internal/models"
)

func testModelConfig() config.ModelConfig {
	return config.ModelConfig{
		HistoryWindow:       6,
		MinHistory:          3,
		DecayAlpha:          0.88,
		GoalWeight:          0.6,
		ShotDivisor:         3.0,
		HomeAdvantage:       1.10,
		CrossHomeAdvantage:  1.15,
		DixonColesRho:       -0.13,
		Overround:           1.05,
		Simulations:         10000,
		MaxGoals:            6,
		OverShrink:          0.75,
		BlendTolerance:      0.08,
		SimBlendWeight:      0.75,
		MismatchTotalLambda: 3.0,
		MismatchRatio:       0.35,
		MismatchDamp:        0.92,
	}
}

func entry(team, league string, attack, defense, tier, avgGoals float64) models.RegistryEntry {
	return models.RegistryEntry{
		Team:     team,
		League:   league,
		Rating:   models.TeamRating{Attack: attack, Defense: defense},
		Tier:     tier,
		AvgGoals: avgGoals,
	}
}

func TestSimulateOutcomeProbsSumToOne(t *testing.T) {
	s := NewSimulator(testModelConfig())
	rng := rand.New(rand.NewSource(7))

	result, err := s.Simulate(FixtureInput{
		Home: entry("Strong", "E0", 1.3, 0.8, 1.0, 2.7),
		Away: entry("Weak", "E0", 0.8, 1.2, 1.0, 2.7),
		Odds: &models.MarketOdds{},
	}, rng)
	require.NoError(t, err)

	sum := result.ProbHome + result.ProbDraw + result.ProbAway
	assert.InDelta(t, 1.0, sum, 1e-9)
	assert.Greater(t, result.ProbHome, result.ProbAway)
}

func TestSimulateExpectedGoalsFavorStrongerSide(t *testing.T) {
	s := NewSimulator(testModelConfig())
	rng := rand.New(rand.NewSource(7))

	result, err := s.Simulate(FixtureInput{
		Home: entry("Strong", "E0", 1.4, 0.7, 1.0, 2.7),
		Away: entry("Weak", "E0", 0.7, 1.4, 1.0, 2.7),
		Odds: &models.MarketOdds{},
	}, rng)
	require.NoError(t, err)

	// lambdaHome = 1.4*1.4*(2.7/2)*1.10, lambdaAway = 0.7*0.7*(2.7/2)
	assert.InDelta(t, 1.4*1.4*1.35*1.10, result.LambdaHome, 1e-9)
	assert.InDelta(t, 0.7*0.7*1.35, result.LambdaAway, 1e-9)
	assert.Greater(t, result.LambdaHome, result.LambdaAway)
}

func TestSimulateEvenFixtureIsBalanced(t *testing.T) {
	s := NewSimulator(testModelConfig())
	rng := rand.New(rand.NewSource(7))

	result, err := s.Simulate(FixtureInput{
		Home: entry("A", "E0", 1.0, 1.0, 1.0, 2.7),
		Away: entry("B", "E0", 1.0, 1.0, 1.0, 2.7),
		Odds: &models.MarketOdds{},
	}, rng)
	require.NoError(t, err)

	// Home advantage tilts an otherwise even fixture.
	assert.Greater(t, result.ProbHome, result.ProbAway)
	assert.Greater(t, result.ProbDraw, 0.15)
}

func TestSimulateDeterministicForFixedSeed(t *testing.T) {
	s := NewSimulator(testModelConfig())
	in := FixtureInput{
		Home: entry("A", "E0", 1.2, 0.9, 1.0, 2.7),
		Away: entry("B", "E0", 0.9, 1.1, 1.0, 2.7),
		Odds: &models.MarketOdds{},
	}

	first, err := s.Simulate(in, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	second, err := s.Simulate(in, rand.New(rand.NewSource(42)))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSimulateMarketBlendPullsTowardQuotes(t *testing.T) {
	s := NewSimulator(testModelConfig())
	in := FixtureInput{
		Home: entry("A", "E0", 1.3, 0.8, 1.0, 2.7),
		Away: entry("B", "E0", 0.8, 1.2, 1.0, 2.7),
		Odds: &models.MarketOdds{},
	}

	unblended, err := s.Simulate(in, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	// The market strongly disagrees: it prices the away side as favorite.
	in.Odds = &models.MarketOdds{Home: 5.0, Draw: 4.0, Away: 1.6}
	in.MarketWeight = 0.6
	blended, err := s.Simulate(in, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	assert.Less(t, blended.ProbHome, unblended.ProbHome)
	assert.Greater(t, blended.ProbAway, unblended.ProbAway)
	assert.InDelta(t, 1.0, blended.ProbHome+blended.ProbDraw+blended.ProbAway, 1e-9)
	assert.Equal(t, 0.6, blended.MarketWeight)
	assert.Equal(t, 0.0, unblended.MarketWeight)
}

func TestSimulateGoalMarketsConsistent(t *testing.T) {
	s := NewSimulator(testModelConfig())
	rng := rand.New(rand.NewSource(99))

	result, err := s.Simulate(FixtureInput{
		Home: entry("A", "E0", 1.1, 1.0, 1.0, 2.9),
		Away: entry("B", "E0", 1.0, 1.0, 1.0, 2.9),
		Odds: &models.MarketOdds{},
	}, rng)
	require.NoError(t, err)

	assert.Greater(t, result.ProbOver25, 0.0)
	assert.Less(t, result.ProbOver25, 1.0)
	assert.Greater(t, result.ProbBTTS, 0.0)
	assert.Less(t, result.ProbBTTS, 1.0)

	h := result.Handicaps
	// Coverage lines are complementary by construction.
	assert.InDelta(t, 1.0, h.HomeMinus15+h.AwayPlus15, 1e-9)
	assert.InDelta(t, 1.0, h.AwayMinus15+h.HomePlus15, 1e-9)

	assert.GreaterOrEqual(t, result.ChaosScore, 0.0)
	assert.LessOrEqual(t, result.ChaosScore, 100.0)
	assert.Greater(t, result.TopScore.Prob, 0.0)
}

func TestSimulateCrossLeagueTierAdjustment(t *testing.T) {
	s := NewSimulator(testModelConfig())

	strongHome, err := s.Simulate(FixtureInput{
		Home:        entry("TopFlight", "E0", 1.0, 1.0, 1.00, 2.8),
		Away:        entry("SecondTier", "P1", 1.0, 1.0, 0.85, 2.4),
		CrossLeague: true,
		Odds:        &models.MarketOdds{},
	}, rand.New(rand.NewSource(3)))
	require.NoError(t, err)

	// Tier gap 0.15: the higher-tier side scores more and concedes less.
	base := (2.8 + 2.4) / 2 / 2
	assert.InDelta(t, 1.15*base*1.15*1.15, strongHome.LambdaHome, 1e-9)
	assert.InDelta(t, base/(1.15*1.15), strongHome.LambdaAway, 1e-9)
	assert.Greater(t, strongHome.ProbHome, strongHome.ProbAway)
}

func TestSimulateRejectsNonPositiveRatings(t *testing.T) {
	s := NewSimulator(testModelConfig())

	_, err := s.Simulate(FixtureInput{
		Home: entry("Bad", "E0", 0, 1.0, 1.0, 2.7),
		Away: entry("B", "E0", 1.0, 1.0, 1.0, 2.7),
		Odds: &models.MarketOdds{},
	}, rand.New(rand.NewSource(1)))
	assert.Error(t, err)
}

func TestPoissonPMFMatchesClosedForm(t *testing.T) {
	lambda := 1.7
	for k := 0; k <= 6; k++ {
		want := math.Exp(-lambda) * math.Pow(lambda, float64(k)) / factorial(k)
		assert.InDelta(t, want, poissonPMF(lambda, k), 1e-12)
	}
}

func factorial(k int) float64 {
	f := 1.0
	for i := 2; i <= k; i++ {
		f *= float64(i)
	}
	return f
}

func TestDixonColesTauOnlyTouchesLowScores(t *testing.T) {
	rho := -0.13
	assert.Equal(t, 1.0, dixonColesTau(2, 2, 1.5, 1.2, rho))
	assert.Equal(t, 1.0, dixonColesTau(0, 3, 1.5, 1.2, rho))

	assert.InDelta(t, 1-1.5*1.2*rho, dixonColesTau(0, 0, 1.5, 1.2, rho), 1e-12)
	assert.InDelta(t, 1+1.5*rho, dixonColesTau(0, 1, 1.5, 1.2, rho), 1e-12)
	assert.InDelta(t, 1+1.2*rho, dixonColesTau(1, 0, 1.5, 1.2, rho), 1e-12)
	assert.InDelta(t, 1-rho, dixonColesTau(1, 1, 1.5, 1.2, rho), 1e-12)
}
