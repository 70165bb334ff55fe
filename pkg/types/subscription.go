package types

import (
	"fmt"
	"strings"
)

// SubscriptionKey identifies one subscription's state, formatted as
// EXCHANGE:SYMBOL@KLINE_INTERVAL, e.g. BINANCE:BTCUSDT@KLINE_1m
type SubscriptionKey string

func NewSubscriptionKey(exchange ExchangeName, symbol string, interval Interval) SubscriptionKey {
	return SubscriptionKey(fmt.Sprintf("%s:%s@KLINE_%s",
		strings.ToUpper(string(exchange)),
		strings.ToUpper(symbol),
		interval))
}

func (k SubscriptionKey) String() string {
	return string(k)
}

// ParseSubscriptionKey is the inverse of NewSubscriptionKey.
func ParseSubscriptionKey(s string) (exchange ExchangeName, symbol string, interval Interval, err error) {
	colon := strings.Index(s, ":")
	at := strings.Index(s, "@KLINE_")
	if colon <= 0 || at <= colon {
		err = NewValidationError(fmt.Sprintf("invalid subscription key %q", s))
		return
	}

	exchange = ExchangeName(strings.ToLower(s[:colon]))
	symbol = s[colon+1 : at]
	interval = Interval(s[at+len("@KLINE_"):])
	if !interval.IsValid() {
		err = NewValidationError(fmt.Sprintf("invalid subscription key %q: unsupported interval", s))
	}
	return
}
