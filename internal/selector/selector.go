// Package selector enumerates priceable market/pick combinations for a
// fixture, filters and ranks them, and sizes the chosen stake.
package selector

import (
	"github.com/yourusername/goleador/internal/config"
	"github.com/yourusername/goleador/internal/models"
)

// Evaluation holds every scored candidate plus the selection outcome.
type Evaluation struct {
	Candidates []models.Candidate
	// Principal is the highest-scoring VALID candidate, nil when every
	// candidate was filtered out. Never a handicap pick.
	Principal *models.Candidate
	// Backup is the highest-scoring handicap coverage candidate,
	// independent of whether a principal pick was found.
	Backup *models.Candidate
	// BestRejected is reported for visibility when Principal is nil.
	BestRejected *models.Candidate
}

// Selector applies the acceptance filters and composite scoring over all
// priceable markets of a fixture.
type Selector struct {
	cfg       config.SelectionConfig
	overround float64
}

// NewSelector creates a selector. The overround is used to synthesize
// bookmaker-style prices for markets without a direct quote, so the EV
// identity holds for every candidate.
func NewSelector(cfg config.SelectionConfig, overround float64) *Selector {
	return &Selector{cfg: cfg, overround: overround}
}

// Evaluate builds and scores all candidates for the fixture. leagueMinEV
// is the per-league expected-value floor.
func (s *Selector) Evaluate(sim *models.SimulationResult, odds *models.MarketOdds, leagueMinEV float64) Evaluation {
	var eval Evaluation

	for _, spec := range s.enumerate(sim, odds) {
		if spec.prob <= 0 || spec.prob >= 1 || spec.odd <= 1 {
			continue
		}
		if spec.market == models.MarketHandicap {
			c := s.backupCandidate(spec)
			eval.Candidates = append(eval.Candidates, c)
			if eval.Backup == nil || c.Score > eval.Backup.Score {
				eval.Backup = cloneCandidate(c)
			}
			continue
		}
		if spec.odd < s.cfg.MinOdd {
			// Below the odds floor the pick is not even scored.
			continue
		}

		c := s.scoreCandidate(spec, leagueMinEV, sim.ChaosScore)
		eval.Candidates = append(eval.Candidates, c)

		switch c.Status {
		case models.PickStatusValid:
			if eval.Principal == nil || c.Score > eval.Principal.Score {
				eval.Principal = cloneCandidate(c)
			}
		case models.PickStatusRejected:
			if eval.BestRejected == nil || c.Score > eval.BestRejected.Score {
				eval.BestRejected = cloneCandidate(c)
			}
		}
	}

	if eval.Principal != nil {
		eval.BestRejected = nil
	}

	return eval
}

type candidateSpec struct {
	market models.Market
	pick   string
	prob   float64
	odd    float64
}

// enumerate lists every priceable market/pick pair. Prices without a
// direct quote (DNB, double chance, Under, BTTS No, handicap) are
// synthesized from the quoted 1X2 triple or from the model probability
// under the standard overround.
func (s *Selector) enumerate(sim *models.SimulationResult, odds *models.MarketOdds) []candidateSpec {
	var specs []candidateSpec

	if odds.HasOutright() {
		specs = append(specs,
			candidateSpec{models.Market1X2, models.PickHomeWin, sim.ProbHome, odds.Home},
			candidateSpec{models.Market1X2, models.PickDraw, sim.ProbDraw, odds.Draw},
			candidateSpec{models.Market1X2, models.PickAwayWin, sim.ProbAway, odds.Away},
		)

		// Draw-no-bet: draw stake refunded, price derived by laying off
		// the draw leg of the 1X2 quote.
		drawHedge := 1 - 1/odds.Draw
		if noDraw := sim.ProbHome + sim.ProbAway; noDraw > 0 {
			specs = append(specs,
				candidateSpec{models.MarketDrawNoBet, models.PickDNBHome, sim.ProbHome / noDraw, odds.Home * drawHedge},
				candidateSpec{models.MarketDrawNoBet, models.PickDNBAway, sim.ProbAway / noDraw, odds.Away * drawHedge},
			)
		}

		specs = append(specs,
			candidateSpec{models.MarketDoubleChance, models.PickHomeOrDraw, sim.ProbHome + sim.ProbDraw, combinedOdd(odds.Home, odds.Draw)},
			candidateSpec{models.MarketDoubleChance, models.PickAwayOrDraw, sim.ProbAway + sim.ProbDraw, combinedOdd(odds.Away, odds.Draw)},
		)
	}

	overOdd := odds.Over25
	underOdd := s.complementOdd(overOdd)
	if !odds.HasOver() {
		overOdd = s.fairPrice(sim.ProbOver25)
		underOdd = s.fairPrice(1 - sim.ProbOver25)
	}
	specs = append(specs,
		candidateSpec{models.MarketTotals, models.PickOver25, sim.ProbOver25, overOdd},
		candidateSpec{models.MarketTotals, models.PickUnder25, 1 - sim.ProbOver25, underOdd},
	)

	bttsOdd := odds.BTTSYes
	bttsNoOdd := s.complementOdd(bttsOdd)
	if !odds.HasBTTS() {
		bttsOdd = s.fairPrice(sim.ProbBTTS)
		bttsNoOdd = s.fairPrice(1 - sim.ProbBTTS)
	}
	specs = append(specs,
		candidateSpec{models.MarketBTTS, models.PickBTTSYes, sim.ProbBTTS, bttsOdd},
		candidateSpec{models.MarketBTTS, models.PickBTTSNo, 1 - sim.ProbBTTS, bttsNoOdd},
	)

	h := sim.Handicaps
	specs = append(specs,
		candidateSpec{models.MarketHandicap, models.PickHomeMinus, h.HomeMinus15, s.fairPrice(h.HomeMinus15)},
		candidateSpec{models.MarketHandicap, models.PickHomePlus, h.HomePlus15, s.fairPrice(h.HomePlus15)},
		candidateSpec{models.MarketHandicap, models.PickAwayMinus, h.AwayMinus15, s.fairPrice(h.AwayMinus15)},
		candidateSpec{models.MarketHandicap, models.PickAwayPlus, h.AwayPlus15, s.fairPrice(h.AwayPlus15)},
	)

	return specs
}

// scoreCandidate applies the rejection rules in priority order and the
// composite score, boosting the lower-variance derived markets.
func (s *Selector) scoreCandidate(spec candidateSpec, leagueMinEV, chaos float64) models.Candidate {
	ev := spec.prob*spec.odd - 1

	c := models.Candidate{
		Market:        spec.market,
		Pick:          spec.pick,
		Probability:   spec.prob,
		Odd:           spec.odd,
		ExpectedValue: ev,
		Status:        models.PickStatusValid,
	}

	switch {
	case ev < leagueMinEV:
		c.Status = models.PickStatusRejected
		c.Reason = models.ReasonLowEV
	case spec.prob < s.cfg.MinProbability:
		c.Status = models.PickStatusRejected
		c.Reason = models.ReasonHighRisk
	case ev > s.cfg.MaxExpectedValue:
		c.Status = models.PickStatusRejected
		c.Reason = models.ReasonModelError
	case spec.market.IsGoalMarket() &&
		(chaos < s.cfg.MinChaosScore || spec.prob < s.cfg.GoalProbMin || spec.prob > s.cfg.GoalProbMax):
		c.Status = models.PickStatusRejected
		c.Reason = models.ReasonLowChaos
	}

	c.Score = 100*spec.prob + 50*ev
	if spec.market == models.MarketDoubleChance || spec.market == models.MarketDrawNoBet {
		c.Score *= s.cfg.LowVarianceBoost
	}

	return c
}

// backupCandidate builds a handicap coverage candidate: never a
// principal pick, ranked by probability as a lower-variance banker.
func (s *Selector) backupCandidate(spec candidateSpec) models.Candidate {
	ev := spec.prob*spec.odd - 1
	return models.Candidate{
		Market:        spec.market,
		Pick:          spec.pick,
		Probability:   spec.prob,
		Odd:           spec.odd,
		ExpectedValue: ev,
		Score:         100*spec.prob + 50*ev,
		Status:        models.PickStatusBackup,
	}
}

// fairPrice converts a model probability into a bookmaker-style price
// under the standard overround.
func (s *Selector) fairPrice(prob float64) float64 {
	if prob <= 0 {
		return 0
	}
	return 1.0 / (prob * s.overround)
}

// complementOdd derives the opposite side's price from a quoted
// two-way market, assuming the same overround on both sides.
func (s *Selector) complementOdd(odd float64) float64 {
	if odd <= 1 {
		return 0
	}
	implied := (1.0 / odd) / s.overround
	return s.fairPrice(1 - implied)
}

// combinedOdd is the double-chance price synthesized from two 1X2 legs.
func combinedOdd(oddA, oddB float64) float64 {
	if oddA <= 1 || oddB <= 1 {
		return 0
	}
	return 1.0 / (1.0/oddA + 1.0/oddB)
}

func cloneCandidate(c models.Candidate) *models.Candidate {
	out := c
	return &out
}
