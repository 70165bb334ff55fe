package sink

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/c9s/signalcore/pkg/types"
)

type LogSink struct{}

func NewLogSink() *LogSink {
	return &LogSink{}
}

func (s *LogSink) Name() string {
	return "log"
}

func (s *LogSink) EmitSignal(ctx context.Context, signal *types.Signal) error {
	log.WithFields(log.Fields{
		"subscription": signal.SubscriptionKey,
		"strategy":     signal.StrategyID,
		"trigger":      signal.TriggerReason,
		"side":         signal.Side,
	}).Infof("signal %s emitted", signal.ID)
	return nil
}
