package engine

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/c9s/signalcore/pkg/indicator"
	"github.com/c9s/signalcore/pkg/metrics"
	"github.com/c9s/signalcore/pkg/strategy"
	"github.com/c9s/signalcore/pkg/trigger"
	"github.com/c9s/signalcore/pkg/types"
)

// subscription is one entry of the registry. All mutable state below the
// lane marker is owned by the lane goroutine; the only field shared with
// other goroutines is lastEventTime, which is read atomically by Dispatch.
type subscription struct {
	key      types.SubscriptionKey
	exchange types.ExchangeName
	symbol   string
	interval types.Interval

	strategyID  string
	params      string
	strat       strategy.Strategy
	triggerType trigger.Type
	policy      trigger.Policy

	// lane-owned state
	indicators   *indicator.Set
	triggerState trigger.State
	lastKLine    types.KLine

	lastEventTime atomic.Int64

	eventC  chan types.KLine
	closing chan struct{}
	done    chan struct{}
}

// runLane is the single writer for one subscription's state. Closing the
// subscription is cooperative: buffered events are drained before exit.
func (e *Engine) runLane(sub *subscription) {
	defer close(sub.done)

	for {
		select {
		case k := <-sub.eventC:
			e.process(sub, &k)

		case <-sub.closing:
			for {
				select {
				case k := <-sub.eventC:
					e.process(sub, &k)
				default:
					return
				}
			}
		}
	}
}

// process applies one event: indicator and trigger state transitions are
// committed first, so a slow or failing evaluation never stalls state
// correctness for future events.
func (e *Engine) process(sub *subscription, k *types.KLine) {
	eventTime := k.EventTime.UnixMilli()
	last := sub.lastEventTime.Load()

	switch {
	case last != 0 && eventTime < last:
		// events may still arrive out of order behind Dispatch's check
		metrics.DroppedEventsMetrics.WithLabelValues(
			k.Exchange.String(), k.Symbol, k.Interval.String(), "out_of_order").Inc()
		return

	case last != 0 && eventTime == last:
		// in-place refinement of the still-forming candle; not a new data
		// point, so the indicator recurrence is not applied again
		sub.lastKLine.Merge(k)

	default:
		sub.lastKLine = *k
		sub.indicators.Update(k.Close.Float64())
		sub.lastEventTime.Store(eventTime)
	}

	metrics.KLineEventsMetrics.WithLabelValues(
		k.Exchange.String(), k.Symbol, k.Interval.String()).Inc()

	fire, next := sub.policy.ShouldFire(&sub.lastKLine, sub.triggerState)
	sub.triggerState = next
	if !fire {
		return
	}

	metrics.TriggerFiresMetrics.WithLabelValues(sub.triggerType.String(), sub.strategyID).Inc()

	input := &strategy.Input{
		SubscriptionKey: sub.key,
		Symbol:          sub.symbol,
		Interval:        sub.interval,
		KLine:           sub.lastKLine,
		ComputedAt:      time.Now(),
		Indicators:      sub.indicators.Snapshot(),
	}

	// the evaluation runs outside the lane so it can not stall subsequent
	// events for this key
	e.evalWG.Add(1)
	go e.evaluate(sub, input)
}

func (e *Engine) evaluate(sub *subscription, input *strategy.Input) {
	defer e.evalWG.Done()

	ctx, cancel := context.WithTimeout(context.Background(), e.evaluationTimeout)
	defer cancel()

	start := time.Now()
	signal, err := evaluateStrategy(ctx, sub.strat, input)
	metrics.EvaluationDurationMetrics.WithLabelValues(sub.strategyID).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.EvaluationErrorsMetrics.WithLabelValues(sub.strategyID).Inc()

		evalErr := &types.EvaluationError{Key: sub.key, StrategyID: sub.strategyID, Err: err}
		log.WithError(evalErr).WithField("subscription", sub.key).
			Error("strategy evaluation failed")
		return
	}

	if signal == nil {
		return
	}

	if signal.ID == "" {
		signal.ID = uuid.NewString()
	}
	signal.SubscriptionKey = sub.key
	signal.StrategyID = sub.strategyID
	signal.TriggerReason = sub.triggerType.String()
	if signal.ComputedAt.IsZero() {
		signal.ComputedAt = input.ComputedAt
	}

	if err := e.sink.EmitSignal(ctx, signal); err != nil {
		log.WithError(err).WithField("subscription", sub.key).
			Error("signal delivery failed")
		return
	}

	metrics.SignalsEmittedMetrics.WithLabelValues(sub.strategyID, string(signal.Side)).Inc()
}

// evaluateStrategy isolates panics inside a strategy to the single firing.
func evaluateStrategy(ctx context.Context, strat strategy.Strategy, input *strategy.Input) (signal *types.Signal, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("strategy panicked: %v", r)
		}
	}()

	return strat.Evaluate(ctx, input)
}
