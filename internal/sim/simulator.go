// Package sim computes the probabilistic outcome view of a fixture:
// analytic Dixon-Coles corrected 1X2 probabilities plus a randomized
// goal-count simulation for the derived goal markets.
package sim

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/yourusername/goleador/internal/config"
	"github.com/yourusername/goleador/internal/models"
)

// Expected goals are clamped into this range before sampling.
const (
	minLambda = 0.05
	maxLambda = 8.0
)

// FixtureInput bundles the rated sides and market context of one fixture.
type FixtureInput struct {
	Home        models.RegistryEntry
	Away        models.RegistryEntry
	CrossLeague bool
	Odds        *models.MarketOdds
	// MarketWeight is the per-league confidence weight toward quoted
	// prices when blending the 1X2 triple.
	MarketWeight float64
}

// Simulator derives expected goals, analytic 1X2 probabilities and the
// sampled goal-market distributions for a fixture.
type Simulator struct {
	cfg config.ModelConfig
}

// NewSimulator creates a simulator with the given model configuration.
func NewSimulator(cfg config.ModelConfig) *Simulator {
	return &Simulator{cfg: cfg}
}

// Simulate computes the full simulation result for a fixture. The RNG is
// injected so tests can fix the seed while production runs free.
func (s *Simulator) Simulate(in FixtureInput, rng *rand.Rand) (*models.SimulationResult, error) {
	lambdaHome, lambdaAway, err := s.expectedGoals(in)
	if err != nil {
		return nil, err
	}

	grid := s.scorelineGrid(lambdaHome, lambdaAway)
	probHome, probDraw, probAway := outcomeProbs(grid)

	marketWeight := 0.0
	if in.Odds.HasOutright() && in.MarketWeight > 0 {
		probHome, probDraw, probAway = s.blendMarket(probHome, probDraw, probAway, in.Odds, in.MarketWeight)
		marketWeight = in.MarketWeight
	}

	result := &models.SimulationResult{
		LambdaHome:   lambdaHome,
		LambdaAway:   lambdaAway,
		ProbHome:     probHome,
		ProbDraw:     probDraw,
		ProbAway:     probAway,
		MarketWeight: marketWeight,
	}

	s.sampleGoalMarkets(result, rng)
	result.ChaosScore = chaosScore(result)

	return result, nil
}

// expectedGoals computes the Poisson rates for both sides. For
// cross-league fixtures the ratings are first adjusted by the tier
// differential and the average goal baseline is shared between leagues.
func (s *Simulator) expectedGoals(in FixtureInput) (float64, float64, error) {
	home := in.Home.Rating
	away := in.Away.Rating
	if home.Attack <= 0 || home.Defense <= 0 || away.Attack <= 0 || away.Defense <= 0 {
		return 0, 0, fmt.Errorf("non-positive rating for %s vs %s", in.Home.Team, in.Away.Team)
	}

	avgGoals := in.Home.AvgGoals
	homeAdvantage := s.cfg.HomeAdvantage

	if in.CrossLeague {
		avgGoals = (in.Home.AvgGoals + in.Away.AvgGoals) / 2
		homeAdvantage = s.cfg.CrossHomeAdvantage

		// The stronger league's side attacks more and concedes less,
		// proportionally to the tier gap.
		diff := in.Home.Tier - in.Away.Tier
		if diff > 0 {
			home.Attack *= 1 + diff
			home.Defense /= 1 + diff
			away.Attack /= 1 + diff
			away.Defense *= 1 + diff
		} else if diff < 0 {
			gap := -diff
			away.Attack *= 1 + gap
			away.Defense /= 1 + gap
			home.Attack /= 1 + gap
			home.Defense *= 1 + gap
		}
	}

	if avgGoals <= 0 {
		return 0, 0, fmt.Errorf("league average goals not available for %s", in.Home.League)
	}

	base := avgGoals / 2
	lambdaHome := clamp(home.Attack*away.Defense*base*homeAdvantage, minLambda, maxLambda)
	lambdaAway := clamp(away.Attack*home.Defense*base, minLambda, maxLambda)

	return lambdaHome, lambdaAway, nil
}

// scorelineGrid builds the independent-Poisson scoreline matrix over
// 0..MaxGoals per side, applies the Dixon-Coles low-score correction at
// (0,0), (0,1), (1,0) and (1,1), and renormalizes.
func (s *Simulator) scorelineGrid(lambdaHome, lambdaAway float64) [][]float64 {
	size := s.cfg.MaxGoals + 1
	grid := make([][]float64, size)
	total := 0.0
	for h := 0; h < size; h++ {
		grid[h] = make([]float64, size)
		for a := 0; a < size; a++ {
			p := poissonPMF(lambdaHome, h) * poissonPMF(lambdaAway, a)
			p *= dixonColesTau(h, a, lambdaHome, lambdaAway, s.cfg.DixonColesRho)
			grid[h][a] = p
			total += p
		}
	}

	if total > 0 {
		for h := range grid {
			for a := range grid[h] {
				grid[h][a] /= total
			}
		}
	}

	return grid
}

// blendMarket mixes the analytic triple with de-margined implied
// probabilities and renormalizes the result to sum to 1.
func (s *Simulator) blendMarket(pHome, pDraw, pAway float64, odds *models.MarketOdds, w float64) (float64, float64, float64) {
	impHome := impliedProb(odds.Home, s.cfg.Overround)
	impDraw := impliedProb(odds.Draw, s.cfg.Overround)
	impAway := impliedProb(odds.Away, s.cfg.Overround)

	bHome := w*impHome + (1-w)*pHome
	bDraw := w*impDraw + (1-w)*pDraw
	bAway := w*impAway + (1-w)*pAway

	total := bHome + bDraw + bAway
	return bHome / total, bDraw / total, bAway / total
}

// sampleGoalMarkets runs the Monte Carlo layer: independent Poisson goal
// draws per side, from which the totals, BTTS, top scoreline and
// handicap coverage probabilities are estimated.
func (s *Simulator) sampleGoalMarkets(result *models.SimulationResult, rng *rand.Rand) {
	n := s.cfg.Simulations
	maxGoals := s.cfg.MaxGoals

	over := 0
	btts := 0
	var handicaps models.HandicapProbs
	scoreCounts := make(map[[2]int]int)

	for i := 0; i < n; i++ {
		h := poissonDraw(result.LambdaHome, rng)
		a := poissonDraw(result.LambdaAway, rng)

		if h+a > 2 {
			over++
		}
		if h > 0 && a > 0 {
			btts++
		}

		diff := h - a
		if diff >= 2 {
			handicaps.HomeMinus15++
		}
		if diff >= -1 {
			handicaps.HomePlus15++
		}
		if diff <= -2 {
			handicaps.AwayMinus15++
		}
		if diff <= 1 {
			handicaps.AwayPlus15++
		}

		scoreCounts[[2]int{capGoals(h, maxGoals), capGoals(a, maxGoals)}]++
	}

	fn := float64(n)
	result.ProbOver25 = float64(over) / fn
	result.ProbBTTS = float64(btts) / fn
	result.Handicaps = models.HandicapProbs{
		HomeMinus15: handicaps.HomeMinus15 / fn,
		HomePlus15:  handicaps.HomePlus15 / fn,
		AwayMinus15: handicaps.AwayMinus15 / fn,
		AwayPlus15:  handicaps.AwayPlus15 / fn,
	}
	result.TopScore = topScoreline(scoreCounts, n)
}

// chaosScore is the 0-100 composite confidence gate for goal markets:
// total expected goals, attack balance, over/under extremeness and
// BTTS/over agreement. It is a heuristic, not a probability.
func chaosScore(result *models.SimulationResult) float64 {
	total := result.TotalLambda()
	if total <= 0 {
		return 0
	}

	goalSignal := clamp(total/4.0, 0, 1)
	balance := 1.0 - clamp(math.Abs(result.LambdaHome-result.LambdaAway)/total, 0, 1)
	extremeness := clamp(math.Abs(result.ProbOver25-0.5)*2, 0, 1)
	agreement := 1.0 - clamp(math.Abs(result.ProbBTTS-result.ProbOver25), 0, 1)

	score := 30*goalSignal + 20*balance + 25*extremeness + 25*agreement
	return clamp(score, 0, 100)
}

func topScoreline(counts map[[2]int]int, samples int) models.Scoreline {
	best := [2]int{0, 0}
	bestCount := -1
	for score, count := range counts {
		if count > bestCount ||
			(count == bestCount && (score[0] < best[0] || (score[0] == best[0] && score[1] < best[1]))) {
			best = score
			bestCount = count
		}
	}
	return models.Scoreline{
		Home: best[0],
		Away: best[1],
		Prob: float64(bestCount) / float64(samples),
	}
}

func outcomeProbs(grid [][]float64) (home, draw, away float64) {
	for h := range grid {
		for a := range grid[h] {
			switch {
			case h > a:
				home += grid[h][a]
			case h == a:
				draw += grid[h][a]
			default:
				away += grid[h][a]
			}
		}
	}
	return home, draw, away
}

// dixonColesTau is the low-score correlation correction factor; it is
// 1.0 everywhere except the four lowest scorelines.
func dixonColesTau(homeGoals, awayGoals int, lambda1, lambda2, rho float64) float64 {
	switch {
	case homeGoals == 0 && awayGoals == 0:
		return 1 - lambda1*lambda2*rho
	case homeGoals == 0 && awayGoals == 1:
		return 1 + lambda1*rho
	case homeGoals == 1 && awayGoals == 0:
		return 1 + lambda2*rho
	case homeGoals == 1 && awayGoals == 1:
		return 1 - rho
	}
	return 1.0
}

func poissonPMF(lambda float64, k int) float64 {
	logP := -lambda + float64(k)*math.Log(lambda) - logFactorial(k)
	return math.Exp(logP)
}

func logFactorial(k int) float64 {
	sum := 0.0
	for i := 2; i <= k; i++ {
		sum += math.Log(float64(i))
	}
	return sum
}

// poissonDraw samples a Poisson count using Knuth's algorithm, with a
// normal approximation for large rates.
func poissonDraw(lambda float64, rng *rand.Rand) int {
	if lambda < 30 {
		limit := math.Exp(-lambda)
		k := 0
		p := 1.0
		for p > limit {
			k++
			p *= rng.Float64()
		}
		return k - 1
	}

	draw := int(math.Round(lambda + math.Sqrt(lambda)*rng.NormFloat64()))
	if draw < 0 {
		return 0
	}
	return draw
}

func impliedProb(odd, overround float64) float64 {
	if odd <= 1 {
		return 0
	}
	return (1.0 / odd) / overround
}

func capGoals(goals, maxGoals int) int {
	if goals > maxGoals {
		return maxGoals
	}
	return goals
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
