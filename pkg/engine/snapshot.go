package engine

import (
	"reflect"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/c9s/signalcore/pkg/indicator"
	"github.com/c9s/signalcore/pkg/service"
	"github.com/c9s/signalcore/pkg/trigger"
	"github.com/c9s/signalcore/pkg/types"
)

// stateSnapshot is the persisted per-key state: everything needed to
// resume the recurrences after a process restart.
type stateSnapshot struct {
	Indicators    *indicator.Set `json:"indicators"`
	TriggerState  trigger.State  `json:"triggerState"`
	LastEventTime int64          `json:"lastEventTime"`
	LastKLine     types.KLine    `json:"lastKline"`
}

// restoreSnapshot loads the persisted state for a freshly registered
// subscription. A snapshot that no longer matches the subscription's
// trigger type or indicator configuration is ignored.
func (e *Engine) restoreSnapshot(sub *subscription) {
	if e.persistence == nil {
		return
	}

	store := e.persistence.NewStore(persistenceID, "state", sub.key.String())

	var snap stateSnapshot
	if err := store.Load(&snap); err != nil {
		if !errors.Is(err, service.ErrPersistenceNotExists) {
			log.WithError(err).WithField("subscription", sub.key).
				Warn("can not load state snapshot")
		}
		return
	}

	if snap.TriggerState.Type != sub.triggerType {
		log.WithField("subscription", sub.key).
			Warnf("ignoring state snapshot with trigger type %s, subscription uses %s",
				snap.TriggerState.Type, sub.triggerType)
		return
	}

	if snap.Indicators == nil || !sameIndicatorShape(snap.Indicators, sub.indicators) {
		log.WithField("subscription", sub.key).
			Warn("ignoring state snapshot with mismatched indicator configuration")
		return
	}

	sub.indicators = snap.Indicators
	sub.triggerState = snap.TriggerState
	sub.lastKLine = snap.LastKLine
	sub.lastEventTime.Store(snap.LastEventTime)

	log.WithField("subscription", sub.key).Info("state snapshot restored")
}

// saveSnapshot persists the per-key state. Only called after the lane has
// exited, so the state is no longer being written.
func (e *Engine) saveSnapshot(sub *subscription) error {
	if e.persistence == nil {
		return nil
	}

	store := e.persistence.NewStore(persistenceID, "state", sub.key.String())
	return store.Save(stateSnapshot{
		Indicators:    sub.indicators,
		TriggerState:  sub.triggerState,
		LastEventTime: sub.lastEventTime.Load(),
		LastKLine:     sub.lastKLine,
	})
}

func sameIndicatorShape(a, b *indicator.Set) bool {
	if !reflect.DeepEqual(a.Windows(), b.Windows()) {
		return false
	}

	if (a.MACD == nil) != (b.MACD == nil) {
		return false
	}

	if a.MACD != nil && a.MACD.MACDConfig != b.MACD.MACDConfig {
		return false
	}

	return true
}
