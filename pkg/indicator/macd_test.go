package indicator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_MACD_Defaults(t *testing.T) {
	inc := NewMACD(MACDConfig{})
	assert.Equal(t, 12, inc.ShortPeriod)
	assert.Equal(t, 26, inc.LongPeriod)
	assert.Equal(t, 9, inc.SignalPeriod)
}

func Test_MACD_WarmUp(t *testing.T) {
	inc := NewMACD(MACDConfig{ShortPeriod: 2, LongPeriod: 4, SignalPeriod: 3})

	// the signal line needs 4 closes for the slow seed plus 3 macd values
	for i := 0; i < 5; i++ {
		inc.Update(10)

		_, _, _, ok := inc.Last()
		assert.False(t, ok, "macd must be unavailable at update %d", i)
		assert.False(t, inc.GoldenCross(), "no cross may be reported during warm-up")
		assert.False(t, inc.DeathCross())
		assert.Equal(t, TrendNeutral, inc.TrendSignal())
	}

	inc.Update(10)
	_, _, _, ok := inc.Last()
	assert.True(t, ok, "macd becomes available on the 6th close")
}

func Test_MACD_Crosses(t *testing.T) {
	// flat closes keep macd == signal == 0 once steady; the jump to 20
	// pushes the macd line above the lagging signal line, and the drop
	// to 1 pushes it below.
	closes := []float64{10, 10, 10, 10, 10, 10, 10, 10, 20, 20, 1}
	goldenAt := 8
	deathAt := 10

	inc := NewMACD(MACDConfig{ShortPeriod: 2, LongPeriod: 4, SignalPeriod: 3})
	for i, c := range closes {
		inc.Update(c)

		assert.Equal(t, i == goldenAt, inc.GoldenCross(), "golden cross at update %d", i)
		assert.Equal(t, i == deathAt, inc.DeathCross(), "death cross at update %d", i)
	}
}

func Test_MACD_TrendSignal(t *testing.T) {
	inc := NewMACD(MACDConfig{ShortPeriod: 2, LongPeriod: 4, SignalPeriod: 3})

	closes := []float64{10, 10, 10, 10, 10, 10, 10, 10}
	for _, c := range closes {
		inc.Update(c)
	}
	assert.Equal(t, TrendNeutral, inc.TrendSignal())

	inc.Update(20)
	assert.Equal(t, TrendBullish, inc.TrendSignal())

	inc.Update(1)
	assert.Equal(t, TrendBearish, inc.TrendSignal())
}
