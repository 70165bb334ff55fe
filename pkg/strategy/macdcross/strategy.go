package macdcross

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/c9s/signalcore/pkg/indicator"
	"github.com/c9s/signalcore/pkg/strategy"
	"github.com/c9s/signalcore/pkg/types"
)

const ID = "macdcross"

// Strategy emits a long signal on a golden cross and a short signal on a
// death cross of the MACD line against its signal line.
type Strategy struct {
	indicator.MACDConfig
}

func New(params json.RawMessage) (strategy.Strategy, error) {
	s := &Strategy{}
	if len(params) > 0 {
		if err := json.Unmarshal(params, &s.MACDConfig); err != nil {
			return nil, err
		}
	}

	s.MACDConfig.Defaults()
	return s, nil
}

func (s *Strategy) ID() string {
	return ID
}

func (s *Strategy) Validate() error {
	if s.ShortPeriod >= s.LongPeriod {
		return fmt.Errorf("short period %d must be less than long period %d", s.ShortPeriod, s.LongPeriod)
	}

	return nil
}

func (s *Strategy) Indicators() indicator.Config {
	return indicator.Config{MACD: &s.MACDConfig}
}

func (s *Strategy) Evaluate(ctx context.Context, input *strategy.Input) (*types.Signal, error) {
	macd := input.Indicators.MACD
	if macd == nil || !macd.Ready {
		return nil, nil
	}

	var side types.SignalSide
	switch {
	case macd.GoldenCross:
		side = types.SignalSideLong
	case macd.DeathCross:
		side = types.SignalSideShort
	default:
		return nil, nil
	}

	return &types.Signal{
		Side: side,
		Payload: map[string]interface{}{
			"macd":      macd.MACD,
			"signal":    macd.Signal,
			"histogram": macd.Histogram,
			"trend":     macd.Trend,
			"close":     input.KLine.Close.Float64(),
		},
	}, nil
}
