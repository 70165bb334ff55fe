package trigger

import (
	"github.com/c9s/signalcore/pkg/types"
)

// Type tags the closed set of trigger policies. Adding a type here requires
// registering its Policy in NewRegistry, which every dispatch site goes
// through.
type Type string

const (
	// TypeOnce fires on the first event and never again.
	TypeOnce = Type("ONCE")

	// TypeEachKline fires on every kline event, open or closed.
	TypeEachKline = Type("EACH_KLINE")

	// TypeEachKlineClose fires once per closed candle.
	TypeEachKlineClose = Type("EACH_KLINE_CLOSE")

	// TypeEachMinute fires when the event time enters a new minute bucket.
	TypeEachMinute = Type("EACH_MINUTE")
)

func (t Type) String() string {
	return string(t)
}

const minuteBucketMillis = 60_000

// State is the per-subscription trigger state. The zero value for a type is
// produced by NewState; transitions happen only through Policy.ShouldFire.
type State struct {
	Type Type `json:"type"`

	FiredOnce bool `json:"firedOnce,omitempty"`

	// LastFiredAt is the event time (epoch millis) of the last fire.
	LastFiredAt int64 `json:"lastFiredAt,omitempty"`

	// LastKlineTime guards EACH_KLINE_CLOSE against duplicate closed
	// candles with the same event time.
	LastKlineTime int64 `json:"lastKlineTime,omitempty"`

	LastMinuteBucket int64 `json:"lastMinuteBucket,omitempty"`
}

// Policy decides whether an event should cause a strategy re-evaluation.
// The decision depends only on (event, prior state), never on the wall
// clock, so replaying an identical event sequence yields identical fire
// decisions.
type Policy interface {
	Type() Type

	ShouldFire(k *types.KLine, prior State) (fire bool, next State)
}

type oncePolicy struct{}

func (oncePolicy) Type() Type { return TypeOnce }

func (oncePolicy) ShouldFire(k *types.KLine, prior State) (bool, State) {
	if prior.FiredOnce {
		return false, prior
	}

	prior.FiredOnce = true
	prior.LastFiredAt = k.EventTime.UnixMilli()
	return true, prior
}

type eachKlinePolicy struct{}

func (eachKlinePolicy) Type() Type { return TypeEachKline }

func (eachKlinePolicy) ShouldFire(k *types.KLine, prior State) (bool, State) {
	eventTime := k.EventTime.UnixMilli()
	prior.LastKlineTime = eventTime
	prior.LastFiredAt = eventTime
	return true, prior
}

type eachKlineClosePolicy struct{}

func (eachKlineClosePolicy) Type() Type { return TypeEachKlineClose }

func (eachKlineClosePolicy) ShouldFire(k *types.KLine, prior State) (bool, State) {
	eventTime := k.EventTime.UnixMilli()
	if !k.Closed || eventTime == prior.LastKlineTime {
		return false, prior
	}

	prior.LastKlineTime = eventTime
	prior.LastFiredAt = eventTime
	return true, prior
}

type eachMinutePolicy struct{}

func (eachMinutePolicy) Type() Type { return TypeEachMinute }

func (eachMinutePolicy) ShouldFire(k *types.KLine, prior State) (bool, State) {
	eventTime := k.EventTime.UnixMilli()
	bucket := eventTime / minuteBucketMillis
	if bucket == prior.LastMinuteBucket {
		return false, prior
	}

	prior.LastMinuteBucket = bucket
	prior.LastFiredAt = eventTime
	return true, prior
}
