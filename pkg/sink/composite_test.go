package sink

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/c9s/signalcore/pkg/types"
	"github.com/c9s/signalcore/pkg/util/backoff"
)

type recordingSink struct {
	name    string
	signals []*types.Signal
	err     error
}

func (s *recordingSink) Name() string { return s.name }

func (s *recordingSink) EmitSignal(ctx context.Context, signal *types.Signal) error {
	if s.err != nil {
		return s.err
	}

	s.signals = append(s.signals, signal)
	return nil
}

func TestCompositeSink(t *testing.T) {
	prevRetries := backoff.MaxRetries
	backoff.MaxRetries = 0
	defer func() { backoff.MaxRetries = prevRetries }()

	good := &recordingSink{name: "good"}
	bad := &recordingSink{name: "bad", err: errors.New("connection refused")}
	alsoGood := &recordingSink{name: "also-good"}

	composite := NewCompositeSink(good, bad, alsoGood)

	signal := &types.Signal{
		ID:              "sig-1",
		SubscriptionKey: types.SubscriptionKey("BINANCE:BTCUSDT@KLINE_1m"),
		StrategyID:      "macdcross",
		Side:            types.SignalSideLong,
	}

	err := composite.EmitSignal(context.Background(), signal)
	assert.Error(t, err, "a failing child sink surfaces an aggregated error")

	var sinkErr *types.SinkError
	assert.ErrorAs(t, err, &sinkErr)
	assert.Equal(t, "bad", sinkErr.Sink)

	// the failure does not stop delivery to the remaining sinks
	assert.Len(t, good.signals, 1)
	assert.Len(t, alsoGood.signals, 1)
}
