package types

import (
	"fmt"
	"strings"

	"github.com/c9s/signalcore/pkg/fixedpoint"
)

type ExchangeName string

func (n ExchangeName) String() string {
	return string(n)
}

const (
	ExchangeBinance = ExchangeName("binance")
	ExchangeMax     = ExchangeName("max")
)

// KLine uses binance's kline payload as the standard structure.
// EventTime identifies the data point: two events with the same EventTime
// describe the same (possibly still-forming) candle.
type KLine struct {
	Exchange ExchangeName `json:"exchange" db:"exchange"`

	Symbol string `json:"symbol" db:"symbol"`

	Interval Interval `json:"interval" db:"interval"`

	Open   fixedpoint.Value `json:"open" db:"open"`
	High   fixedpoint.Value `json:"high" db:"high"`
	Low    fixedpoint.Value `json:"low" db:"low"`
	Close  fixedpoint.Value `json:"close" db:"close"`
	Volume fixedpoint.Value `json:"volume" db:"volume"`

	EventTime MillisecondTimestamp `json:"eventTime" db:"event_time"`

	Closed bool `json:"closed" db:"closed"`
}

// Merge refines a still-forming candle in place with a newer snapshot of the
// same EventTime. Closed may only flip from false to true.
func (k *KLine) Merge(o *KLine) {
	k.High = fixedpoint.Max(k.High, o.High)
	k.Low = fixedpoint.Min(k.Low, o.Low)
	k.Close = o.Close
	k.Volume = o.Volume
	k.Closed = k.Closed || o.Closed
}

func (k *KLine) Validate() error {
	if len(k.Symbol) == 0 {
		return NewValidationError("kline event has no symbol")
	}

	if len(k.Exchange) == 0 {
		return NewValidationError("kline event has no exchange")
	}

	if !k.Interval.IsValid() {
		return NewValidationError(fmt.Sprintf("kline event has unsupported interval %q", k.Interval))
	}

	if k.EventTime.IsZero() {
		return NewValidationError("kline event has no event time")
	}

	return nil
}

func (k *KLine) SubscriptionKey() SubscriptionKey {
	return NewSubscriptionKey(k.Exchange, k.Symbol, k.Interval)
}

func (k KLine) String() string {
	return fmt.Sprintf("%s %s %s O:%s H:%s L:%s C:%s V:%s closed=%v",
		strings.ToUpper(k.Exchange.String()), k.Symbol, k.Interval,
		k.Open, k.High, k.Low, k.Close, k.Volume, k.Closed)
}
