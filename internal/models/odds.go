package models

// MarketOdds holds decimal prices for a fixture, averaged across the
// quoting sources available in the feed. A zero value means no quote.
type MarketOdds struct {
	Home    float64 `json:"home"`
	Draw    float64 `json:"draw"`
	Away    float64 `json:"away"`
	Over25  float64 `json:"over25"`
	BTTSYes float64 `json:"btts_yes"`
}

// HasOutright reports whether a full 1X2 quote is present.
func (o *MarketOdds) HasOutright() bool {
	return o != nil && o.Home > 1 && o.Draw > 1 && o.Away > 1
}

// HasOver reports whether an Over 2.5 quote is present.
func (o *MarketOdds) HasOver() bool {
	return o != nil && o.Over25 > 1
}

// HasBTTS reports whether a BTTS Yes quote is present.
func (o *MarketOdds) HasBTTS() bool {
	return o != nil && o.BTTSYes > 1
}

// AverageOdds averages quotes across sources, ignoring missing prices
// per field so one source lacking a market does not drag the mean down.
func AverageOdds(quotes []MarketOdds) MarketOdds {
	var out MarketOdds
	out.Home = averageField(quotes, func(q MarketOdds) float64 { return q.Home })
	out.Draw = averageField(quotes, func(q MarketOdds) float64 { return q.Draw })
	out.Away = averageField(quotes, func(q MarketOdds) float64 { return q.Away })
	out.Over25 = averageField(quotes, func(q MarketOdds) float64 { return q.Over25 })
	out.BTTSYes = averageField(quotes, func(q MarketOdds) float64 { return q.BTTSYes })
	return out
}

func averageField(quotes []MarketOdds, get func(MarketOdds) float64) float64 {
	sum := 0.0
	n := 0
	for _, q := range quotes {
		v := get(q)
		if v > 1 {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
