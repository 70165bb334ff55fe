package indicator

/*
macd implements moving average convergence divergence indicator

Moving Average Convergence Divergence (MACD)
- https://www.investopedia.com/terms/m/macd.asp
- https://school.stockcharts.com/doku.php?id=technical_indicators:macd-histogram
*/

const (
	DefaultMACDShortPeriod  = 12
	DefaultMACDLongPeriod   = 26
	DefaultMACDSignalPeriod = 9
)

type MACDConfig struct {
	// ShortPeriod is the short term period EMA, usually 12
	ShortPeriod int `json:"short"`
	// LongPeriod is the long term period EMA, usually 26
	LongPeriod int `json:"long"`
	// SignalPeriod smooths the macd line into the signal line, usually 9
	SignalPeriod int `json:"signal"`
}

func (c *MACDConfig) Defaults() {
	if c.ShortPeriod == 0 {
		c.ShortPeriod = DefaultMACDShortPeriod
	}
	if c.LongPeriod == 0 {
		c.LongPeriod = DefaultMACDLongPeriod
	}
	if c.SignalPeriod == 0 {
		c.SignalPeriod = DefaultMACDSignalPeriod
	}
}

type Trend string

const (
	TrendBullish = Trend("bullish")
	TrendBearish = Trend("bearish")
	TrendNeutral = Trend("neutral")
)

// MACD derives from two EMA states plus a signal-line EMA over the macd
// line. PrevMACD/PrevSignal hold the (macdLine, signalLine) pair of the
// previous update, which is what crossover detection compares against.
type MACD struct {
	MACDConfig

	FastEWMA   EWMA `json:"fastEWMA"`
	SlowEWMA   EWMA `json:"slowEWMA"`
	SignalLine EWMA `json:"signalLine"`

	PrevMACD   float64 `json:"prevMACD"`
	PrevSignal float64 `json:"prevSignal"`
	PrevReady  bool    `json:"prevReady"`
}

func NewMACD(config MACDConfig) *MACD {
	config.Defaults()

	return &MACD{
		MACDConfig: config,
		FastEWMA:   EWMA{Window: config.ShortPeriod},
		SlowEWMA:   EWMA{Window: config.LongPeriod},
		SignalLine: EWMA{Window: config.SignalPeriod},
	}
}

func (inc *MACD) Update(x float64) {
	// retain the previous pair before applying the new close
	if macd, signal, _, ok := inc.Last(); ok {
		inc.PrevMACD = macd
		inc.PrevSignal = signal
		inc.PrevReady = true
	}

	inc.FastEWMA.Update(x)
	inc.SlowEWMA.Update(x)

	fast, fastOK := inc.FastEWMA.Last()
	slow, slowOK := inc.SlowEWMA.Last()
	if !fastOK || !slowOK {
		return
	}

	// the macd line feeds the signal-line EMA, which has its own seeding
	inc.SignalLine.Update(fast - slow)
}

// Last returns the current (macdLine, signalLine, histogram). ok is false
// until the slow EMA and the signal-line EMA are both past warm-up.
func (inc *MACD) Last() (macd, signal, histogram float64, ok bool) {
	fast, fastOK := inc.FastEWMA.Last()
	slow, slowOK := inc.SlowEWMA.Last()
	sig, sigOK := inc.SignalLine.Last()
	if !fastOK || !slowOK || !sigOK {
		return 0, 0, 0, false
	}

	macd = fast - slow
	return macd, sig, macd - sig, true
}

// GoldenCross is true exactly when the macd line crossed above the signal
// line on the most recent update. Always false during warm-up.
func (inc *MACD) GoldenCross() bool {
	macd, signal, _, ok := inc.Last()
	if !ok || !inc.PrevReady {
		return false
	}

	return inc.PrevMACD <= inc.PrevSignal && macd > signal
}

// DeathCross is the mirror condition of GoldenCross.
func (inc *MACD) DeathCross() bool {
	macd, signal, _, ok := inc.Last()
	if !ok || !inc.PrevReady {
		return false
	}

	return inc.PrevMACD >= inc.PrevSignal && macd < signal
}

// TrendSignal classifies the current state by comparing the macd line
// against the signal line.
func (inc *MACD) TrendSignal() Trend {
	macd, signal, _, ok := inc.Last()
	if !ok {
		return TrendNeutral
	}

	switch {
	case macd > signal:
		return TrendBullish
	case macd < signal:
		return TrendBearish
	}

	return TrendNeutral
}
