package models

// Market identifies a priceable wager market.
type Market string

const (
	Market1X2          Market = "1X2"
	MarketDrawNoBet    Market = "DNB"
	MarketDoubleChance Market = "DOBLE"
	MarketTotals       Market = "GOLES"
	MarketBTTS         Market = "BTTS"
	MarketHandicap     Market = "HANDICAP"
)

// IsGoalMarket reports whether the market is gated by the goal-chaos
// confidence score.
func (m Market) IsGoalMarket() bool {
	return m == MarketTotals || m == MarketBTTS
}

// PickStatus is the evaluation outcome of a candidate.
type PickStatus string

const (
	PickStatusValid    PickStatus = "VALID"
	PickStatusRejected PickStatus = "REJECTED"
	PickStatusBackup   PickStatus = "BACKUP"
)

// Pick labels, carried verbatim into the ledger.
const (
	PickHomeWin    = "GANA HOME"
	PickDraw       = "EMPATE"
	PickAwayWin    = "GANA AWAY"
	PickDNBHome    = "DNB HOME"
	PickDNBAway    = "DNB AWAY"
	PickHomeOrDraw = "1X"
	PickAwayOrDraw = "X2"
	PickOver25     = "OVER 2.5"
	PickUnder25    = "UNDER 2.5"
	PickBTTSYes    = "BTTS SI"
	PickBTTSNo     = "BTTS NO"
	PickHomeMinus  = "HOME -1.5"
	PickHomePlus   = "HOME +1.5"
	PickAwayMinus  = "AWAY -1.5"
	PickAwayPlus   = "AWAY +1.5"
)

// Rejection reasons, carried verbatim into decision reports.
const (
	ReasonLowEV      = "EV Bajo"
	ReasonHighRisk   = "Riesgo Alto"
	ReasonModelError = "Error Modelo"
	ReasonLowChaos   = "Confianza Goles Baja"
)

// Candidate is one evaluated market/pick pair for a fixture.
type Candidate struct {
	Market        Market     `json:"market"`
	Pick          string     `json:"pick"`
	Probability   float64    `json:"probability"`
	Odd           float64    `json:"odd"`
	ExpectedValue float64    `json:"expected_value"`
	Score         float64    `json:"score"`
	Status        PickStatus `json:"status"`
	Reason        string     `json:"reason,omitempty"`
}

// Decision is the selection outcome for a fixture: at most one principal
// wager, plus at most one independent low-variance backup.
type Decision struct {
	Fixture    Fixture           `json:"fixture"`
	Principal  *Candidate        `json:"principal,omitempty"`
	Backup     *Candidate        `json:"backup,omitempty"`
	StakePct   float64           `json:"stake_pct"`
	Simulation *SimulationResult `json:"simulation"`

	// BestRejected is reported for visibility when no candidate passed
	// the filters; no stake is recorded for it.
	BestRejected *Candidate `json:"best_rejected,omitempty"`
}

// HasPick reports whether a principal wager was selected.
func (d *Decision) HasPick() bool {
	return d.Principal != nil
}
