package ematrend

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/c9s/signalcore/pkg/indicator"
	"github.com/c9s/signalcore/pkg/strategy"
	"github.com/c9s/signalcore/pkg/types"
)

const ID = "ematrend"

const DefaultWindow = 21

// Strategy reports which side of its EMA the close is on. Stateless across
// evaluations, so every firing past warm-up produces a signal.
type Strategy struct {
	Window int `json:"window"`
}

func New(params json.RawMessage) (strategy.Strategy, error) {
	s := &Strategy{}
	if len(params) > 0 {
		if err := json.Unmarshal(params, s); err != nil {
			return nil, err
		}
	}

	if s.Window == 0 {
		s.Window = DefaultWindow
	}

	return s, nil
}

func (s *Strategy) ID() string {
	return ID
}

func (s *Strategy) Validate() error {
	if s.Window <= 0 {
		return fmt.Errorf("window %d must be positive", s.Window)
	}

	return nil
}

func (s *Strategy) Indicators() indicator.Config {
	return indicator.Config{EWMAWindows: []int{s.Window}}
}

func (s *Strategy) Evaluate(ctx context.Context, input *strategy.Input) (*types.Signal, error) {
	ema, ok := input.Indicators.EWMA[s.Window]
	if !ok || !ema.Ready {
		return nil, nil
	}

	closePrice := input.KLine.Close.Float64()

	side := types.SignalSideNeutral
	switch {
	case closePrice > ema.Value:
		side = types.SignalSideLong
	case closePrice < ema.Value:
		side = types.SignalSideShort
	}

	return &types.Signal{
		Side: side,
		Payload: map[string]interface{}{
			"window": s.Window,
			"ema":    ema.Value,
			"close":  closePrice,
		},
	}, nil
}
