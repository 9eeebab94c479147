package models

// Scoreline is a single final-score cell of the simulated distribution.
type Scoreline struct {
	Home int     `json:"home"`
	Away int     `json:"away"`
	Prob float64 `json:"prob"`
}

// HandicapProbs holds Asian handicap coverage probabilities at the
// half-goal lines evaluated by the simulation.
type HandicapProbs struct {
	HomeMinus15 float64 `json:"home_minus_15"` // home wins by 2 or more
	HomePlus15  float64 `json:"home_plus_15"`  // home does not lose by 2 or more
	AwayMinus15 float64 `json:"away_minus_15"` // away wins by 2 or more
	AwayPlus15  float64 `json:"away_plus_15"`  // away does not lose by 2 or more
}

// SimulationResult is the full probabilistic view of a fixture. It is a
// pure function of the rating pair, league context, quoted odds and the
// model configuration (plus the injected RNG for the sampled markets).
type SimulationResult struct {
	LambdaHome float64 `json:"lambda_home"`
	LambdaAway float64 `json:"lambda_away"`

	// Analytic 1X2, Dixon-Coles corrected and market blended when quotes
	// exist. Always sums to 1.
	ProbHome float64 `json:"prob_home"`
	ProbDraw float64 `json:"prob_draw"`
	ProbAway float64 `json:"prob_away"`

	ProbOver25 float64 `json:"prob_over25"`
	ProbBTTS   float64 `json:"prob_btts"`

	TopScore  Scoreline     `json:"top_score"`
	Handicaps HandicapProbs `json:"handicaps"`

	// ChaosScore is a 0-100 confidence gate for goal markets, not a
	// probability.
	ChaosScore float64 `json:"chaos_score"`

	// MarketWeight is the per-league blend weight that was applied toward
	// the quoted prices (0 when no quote was available).
	MarketWeight float64 `json:"market_weight"`
}

// TotalLambda returns the combined expected goal count.
func (s *SimulationResult) TotalLambda() float64 {
	return s.LambdaHome + s.LambdaAway
}
