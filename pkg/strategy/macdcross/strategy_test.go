package macdcross

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c9s/signalcore/pkg/fixedpoint"
	"github.com/c9s/signalcore/pkg/indicator"
	"github.com/c9s/signalcore/pkg/strategy"
	"github.com/c9s/signalcore/pkg/types"
)

func input(macd *indicator.MACDSnapshot) *strategy.Input {
	return &strategy.Input{
		SubscriptionKey: types.NewSubscriptionKey(types.ExchangeBinance, "BTCUSDT", types.Interval1m),
		Symbol:          "BTCUSDT",
		Interval:        types.Interval1m,
		KLine: types.KLine{
			Close: fixedpoint.NewFromFloat(42000.0),
		},
		Indicators: indicator.Snapshot{MACD: macd},
	}
}

func TestNew_Defaults(t *testing.T) {
	s, err := New(nil)
	require.NoError(t, err)

	cfg := s.Indicators().MACD
	require.NotNil(t, cfg)
	assert.Equal(t, 12, cfg.ShortPeriod)
	assert.Equal(t, 26, cfg.LongPeriod)
}

func TestNew_InvalidParams(t *testing.T) {
	s, err := New(json.RawMessage(`{"short": 26, "long": 12}`))
	require.NoError(t, err)

	validator := s.(strategy.Validator)
	assert.Error(t, validator.Validate())
}

func TestEvaluate(t *testing.T) {
	s, err := New(nil)
	require.NoError(t, err)

	ctx := context.Background()

	// warm-up produces no signal
	signal, err := s.Evaluate(ctx, input(&indicator.MACDSnapshot{Ready: false, GoldenCross: false}))
	require.NoError(t, err)
	assert.Nil(t, signal)

	// steady state without a cross produces no signal
	signal, err = s.Evaluate(ctx, input(&indicator.MACDSnapshot{Ready: true, Trend: indicator.TrendBullish}))
	require.NoError(t, err)
	assert.Nil(t, signal)

	// golden cross emits a long signal
	signal, err = s.Evaluate(ctx, input(&indicator.MACDSnapshot{Ready: true, GoldenCross: true, MACD: 1.5, Signal: 1.0, Histogram: 0.5, Trend: indicator.TrendBullish}))
	require.NoError(t, err)
	require.NotNil(t, signal)
	assert.Equal(t, types.SignalSideLong, signal.Side)
	assert.Equal(t, 1.5, signal.Payload["macd"])

	// death cross emits a short signal
	signal, err = s.Evaluate(ctx, input(&indicator.MACDSnapshot{Ready: true, DeathCross: true, Trend: indicator.TrendBearish}))
	require.NoError(t, err)
	require.NotNil(t, signal)
	assert.Equal(t, types.SignalSideShort, signal.Side)
}
