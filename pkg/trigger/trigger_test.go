package trigger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c9s/signalcore/pkg/types"
)

func kline(eventTime int64, closed bool) *types.KLine {
	return &types.KLine{
		Exchange:  types.ExchangeBinance,
		Symbol:    "BTCUSDT",
		Interval:  types.Interval1m,
		EventTime: types.NewMillisecondTimestampFromEpoch(eventTime),
		Closed:    closed,
	}
}

func Test_Once_FiresExactlyOnce(t *testing.T) {
	registry := NewRegistry()
	policy, err := registry.Get(TypeOnce)
	require.NoError(t, err)

	state, err := registry.NewState(TypeOnce)
	require.NoError(t, err)

	fires := 0
	for i := int64(0); i < 100; i++ {
		var fire bool
		fire, state = policy.ShouldFire(kline(1000+i, i%2 == 0), state)
		if fire {
			fires++
		}
	}

	assert.Equal(t, 1, fires)
	assert.True(t, state.FiredOnce)
	assert.Equal(t, int64(1000), state.LastFiredAt)
}

func Test_EachKline_AlwaysFires(t *testing.T) {
	policy := eachKlinePolicy{}
	state := State{Type: TypeEachKline}

	for i := int64(0); i < 10; i++ {
		var fire bool
		fire, state = policy.ShouldFire(kline(1000+i, false), state)
		assert.True(t, fire)
		assert.Equal(t, int64(1000+i), state.LastKlineTime)
	}
}

func Test_EachKlineClose_Idempotent(t *testing.T) {
	policy := eachKlineClosePolicy{}
	state := State{Type: TypeEachKlineClose}

	// forming candle never fires
	fire, state := policy.ShouldFire(kline(60000, false), state)
	assert.False(t, fire)

	// first closed delivery fires
	fire, state = policy.ShouldFire(kline(60000, true), state)
	assert.True(t, fire)

	// re-delivering the identical closed candle produces no additional fire
	fire, state = policy.ShouldFire(kline(60000, true), state)
	assert.False(t, fire)

	// next closed candle fires again
	fire, _ = policy.ShouldFire(kline(120000, true), state)
	assert.True(t, fire)
}

func Test_EachMinute_FiresOncePerBucket(t *testing.T) {
	policy := eachMinutePolicy{}
	state := State{Type: TypeEachMinute}

	// 1,000 events spaced 200 ms apart span 3 minute-boundaries
	fires := 0
	for i := int64(0); i < 1000; i++ {
		var fire bool
		fire, state = policy.ShouldFire(kline(i*200, false), state)
		if fire {
			fires++
		}
	}

	assert.Equal(t, 3, fires)
}

func Test_Replay_IsDeterministic(t *testing.T) {
	registry := NewRegistry()

	events := []*types.KLine{
		kline(1000, false),
		kline(1000, true),
		kline(61000, false),
		kline(61000, true),
		kline(121000, true),
	}

	for _, triggerType := range registry.Types() {
		policy, err := registry.Get(triggerType)
		require.NoError(t, err)

		replay := func() (decisions []bool) {
			state, err := registry.NewState(triggerType)
			require.NoError(t, err)

			for _, e := range events {
				var fire bool
				fire, state = policy.ShouldFire(e, state)
				decisions = append(decisions, fire)
			}
			return decisions
		}

		assert.Equal(t, replay(), replay(), "replaying the same events must yield the same decisions for %s", triggerType)
	}
}

func Test_Registry_UnknownType(t *testing.T) {
	registry := NewRegistry()

	_, err := registry.Get(Type("EACH_TICK"))
	assert.Error(t, err)

	var configurationErr *types.ConfigurationError
	assert.ErrorAs(t, err, &configurationErr)

	_, err = registry.NewState(Type("EACH_TICK"))
	assert.Error(t, err)
}
