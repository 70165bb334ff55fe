package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"github.com/c9s/signalcore/pkg/indicator"
	"github.com/c9s/signalcore/pkg/metrics"
	"github.com/c9s/signalcore/pkg/service"
	"github.com/c9s/signalcore/pkg/sink"
	"github.com/c9s/signalcore/pkg/strategy"
	"github.com/c9s/signalcore/pkg/trigger"
	"github.com/c9s/signalcore/pkg/types"
)

const DefaultEvaluationTimeout = 10 * time.Second

const DefaultLaneBufferSize = 64

const persistenceID = "signalcore"

// Engine owns the subscription registry: the mapping from subscription key
// to indicator state, trigger state and the bound strategy. Events for
// independent keys are processed in parallel; events for the same key are
// applied strictly in order by a single lane goroutine per key.
type Engine struct {
	mu            sync.RWMutex
	subscriptions map[types.SubscriptionKey]*subscription

	catalog  *strategy.Catalog
	triggers *trigger.Registry
	sink     sink.Sink

	persistence service.PersistenceService

	evaluationTimeout time.Duration
	laneBufferSize    int

	evalWG sync.WaitGroup
}

type Option func(*Engine)

// WithPersistence enables state snapshot persistence: snapshots are saved
// on shutdown and restored on register.
func WithPersistence(persistence service.PersistenceService) Option {
	return func(e *Engine) {
		e.persistence = persistence
	}
}

func WithEvaluationTimeout(timeout time.Duration) Option {
	return func(e *Engine) {
		if timeout > 0 {
			e.evaluationTimeout = timeout
		}
	}
}

func WithLaneBufferSize(size int) Option {
	return func(e *Engine) {
		if size > 0 {
			e.laneBufferSize = size
		}
	}
}

func New(catalog *strategy.Catalog, triggers *trigger.Registry, signalSink sink.Sink, options ...Option) *Engine {
	e := &Engine{
		subscriptions:     make(map[types.SubscriptionKey]*subscription),
		catalog:           catalog,
		triggers:          triggers,
		sink:              signalSink,
		evaluationTimeout: DefaultEvaluationTimeout,
		laneBufferSize:    DefaultLaneBufferSize,
	}

	for _, o := range options {
		o(e)
	}

	return e
}

// Subscribe validates the strategy and trigger types, binds them to the
// symbol/interval and returns the subscription key. This is the only place
// the strategy catalog is consulted; the per-event hot path never is.
func (e *Engine) Subscribe(
	exchange types.ExchangeName, symbol string, interval types.Interval,
	strategyType string, triggerType trigger.Type, params json.RawMessage,
) (types.SubscriptionKey, error) {
	key := types.NewSubscriptionKey(exchange, symbol, interval)
	return key, e.Register(key, strategyType, triggerType, params)
}

// Register creates the subscription entry if absent. Re-registering with
// identical parameters is a no-op; differing parameters fail with a
// ConflictError.
func (e *Engine) Register(
	key types.SubscriptionKey, strategyType string, triggerType trigger.Type, params json.RawMessage,
) error {
	exchange, symbol, interval, err := types.ParseSubscriptionKey(key.String())
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if existing, ok := e.subscriptions[key]; ok {
		if existing.strategyID == strategyType &&
			existing.triggerType == triggerType &&
			existing.params == string(params) {
			return nil
		}

		return types.NewConflictError(key, "already registered with strategy %s and trigger %s",
			existing.strategyID, existing.triggerType)
	}

	strat, err := e.catalog.New(strategyType, params)
	if err != nil {
		return err
	}

	policy, err := e.triggers.Get(triggerType)
	if err != nil {
		return err
	}

	triggerState, err := e.triggers.NewState(triggerType)
	if err != nil {
		return err
	}

	sub := &subscription{
		key:      key,
		exchange: exchange,
		symbol:   symbol,
		interval: interval,

		strategyID:  strategyType,
		params:      string(params),
		strat:       strat,
		triggerType: triggerType,
		policy:      policy,

		indicators:   indicator.NewSet(strat.Indicators()),
		triggerState: triggerState,

		eventC:  make(chan types.KLine, e.laneBufferSize),
		closing: make(chan struct{}),
		done:    make(chan struct{}),
	}

	e.restoreSnapshot(sub)

	e.subscriptions[key] = sub
	metrics.ActiveSubscriptionsMetrics.Set(float64(len(e.subscriptions)))

	go e.runLane(sub)

	log.WithFields(log.Fields{
		"subscription": key,
		"strategy":     strategyType,
		"trigger":      triggerType,
	}).Info("subscription registered")
	return nil
}

// Unregister removes all state for the key. Cooperative: in-flight
// processing for the key is allowed to complete before the state is
// discarded. The persisted snapshot is reset so a later re-registration
// starts fresh.
func (e *Engine) Unregister(key types.SubscriptionKey) error {
	e.mu.Lock()
	sub, ok := e.subscriptions[key]
	if !ok {
		e.mu.Unlock()
		return types.NewValidationError(fmt.Sprintf("unknown subscription %s", key))
	}

	delete(e.subscriptions, key)
	metrics.ActiveSubscriptionsMetrics.Set(float64(len(e.subscriptions)))
	e.mu.Unlock()

	close(sub.closing)
	<-sub.done

	if e.persistence != nil {
		store := e.persistence.NewStore(persistenceID, "state", key.String())
		if err := store.Reset(); err != nil {
			log.WithError(err).WithField("subscription", key).
				Warn("can not reset persisted state snapshot")
		}
	}

	log.WithField("subscription", key).Info("subscription unregistered")
	return nil
}

// Dispatch routes one kline event to its subscription lane. Validation
// failures and unknown keys are surfaced synchronously; the caller decides
// retry-or-drop.
func (e *Engine) Dispatch(k types.KLine) error {
	if err := k.Validate(); err != nil {
		metrics.DroppedEventsMetrics.WithLabelValues(
			k.Exchange.String(), k.Symbol, k.Interval.String(), "invalid").Inc()
		return err
	}

	key := k.SubscriptionKey()

	e.mu.RLock()
	sub, ok := e.subscriptions[key]
	e.mu.RUnlock()

	if !ok {
		metrics.DroppedEventsMetrics.WithLabelValues(
			k.Exchange.String(), k.Symbol, k.Interval.String(), "unknown").Inc()
		return types.NewValidationError(fmt.Sprintf("unknown subscription %s", key))
	}

	// drop strictly-older events before they reach the lane
	if last := sub.lastEventTime.Load(); last != 0 && k.EventTime.UnixMilli() < last {
		metrics.DroppedEventsMetrics.WithLabelValues(
			k.Exchange.String(), k.Symbol, k.Interval.String(), "out_of_order").Inc()
		return types.NewValidationError(fmt.Sprintf(
			"event time %d is older than the last applied event %d for %s",
			k.EventTime.UnixMilli(), last, key))
	}

	select {
	case sub.eventC <- k:
		return nil
	case <-sub.closing:
		return types.NewValidationError(fmt.Sprintf("unknown subscription %s", key))
	}
}

// Shutdown stops all lanes, persists state snapshots and waits for
// in-flight evaluations, bounded by ctx.
func (e *Engine) Shutdown(ctx context.Context) (err error) {
	e.mu.Lock()
	subs := make([]*subscription, 0, len(e.subscriptions))
	for _, sub := range e.subscriptions {
		subs = append(subs, sub)
	}
	e.subscriptions = make(map[types.SubscriptionKey]*subscription)
	metrics.ActiveSubscriptionsMetrics.Set(0)
	e.mu.Unlock()

	for _, sub := range subs {
		close(sub.closing)
	}

	for _, sub := range subs {
		select {
		case <-sub.done:
			err = multierr.Append(err, e.saveSnapshot(sub))
		case <-ctx.Done():
			return multierr.Append(err, ctx.Err())
		}
	}

	evalDone := make(chan struct{})
	go func() {
		e.evalWG.Wait()
		close(evalDone)
	}()

	select {
	case <-evalDone:
	case <-ctx.Done():
		err = multierr.Append(err, ctx.Err())
	}

	return err
}

// SubscriptionStatus is a consistent, non-blocking view of one
// subscription for introspection. It never exposes live mutable state.
type SubscriptionStatus struct {
	Key           types.SubscriptionKey `json:"key"`
	StrategyID    string                `json:"strategyId"`
	TriggerType   trigger.Type          `json:"triggerType"`
	LastEventTime int64                 `json:"lastEventTime"`
}

func (e *Engine) Subscriptions() (statuses []SubscriptionStatus) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	for _, sub := range e.subscriptions {
		statuses = append(statuses, SubscriptionStatus{
			Key:           sub.key,
			StrategyID:    sub.strategyID,
			TriggerType:   sub.triggerType,
			LastEventTime: sub.lastEventTime.Load(),
		})
	}

	return statuses
}
