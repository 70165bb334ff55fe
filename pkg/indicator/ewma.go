package indicator

// EWMA keeps the O(1) recurrence state of an exponential moving average:
//
//	EMA_t = multiplier * close + (1 - multiplier) * EMA_{t-1}
//
// where multiplier = 2 / (window + 1).
//
// The first Window closes are averaged arithmetically to produce the seed
// value. Until the seed is complete Last reports unavailable, so consumers
// never see spurious values during warm-up.
//
// All fields are exported for snapshot persistence.
type EWMA struct {
	Window int `json:"window"`

	SeedCount int     `json:"seedCount"`
	SeedSum   float64 `json:"seedSum"`

	Value float64 `json:"value"`
	Ready bool    `json:"ready"`
}

func NewEWMA(window int) *EWMA {
	return &EWMA{Window: window}
}

func (inc *EWMA) Update(value float64) {
	if !inc.Ready {
		inc.SeedSum += value
		inc.SeedCount++

		if inc.SeedCount >= inc.Window {
			// The first EMA is actually SMA
			inc.Value = inc.SeedSum / float64(inc.Window)
			inc.Ready = true
		}

		return
	}

	var multiplier = 2.0 / float64(1+inc.Window)
	inc.Value = multiplier*value + (1-multiplier)*inc.Value
}

// Last returns the current average. ok is false during warm-up.
func (inc *EWMA) Last() (value float64, ok bool) {
	return inc.Value, inc.Ready
}
