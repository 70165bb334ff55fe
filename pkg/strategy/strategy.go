package strategy

import (
	"context"
	"time"

	"github.com/c9s/signalcore/pkg/indicator"
	"github.com/c9s/signalcore/pkg/types"
)

// Input is the immutable snapshot built at fire time and handed to a
// strategy. It carries no references to live engine state.
type Input struct {
	SubscriptionKey types.SubscriptionKey `json:"subscriptionKey"`

	Symbol   string         `json:"symbol"`
	Interval types.Interval `json:"interval"`

	KLine types.KLine `json:"kline"`

	ComputedAt time.Time `json:"computedAt"`

	Indicators indicator.Snapshot `json:"indicators"`
}

// Strategy evaluates a fire-time snapshot into a signal. Implementations
// are bound per subscription and must be safe to call from the evaluation
// goroutine; they hold no mutable state across evaluations.
//
// A nil signal with a nil error means the strategy decided not to emit.
type Strategy interface {
	ID() string

	// Indicators declares the indicator states the engine maintains for
	// the subscription. Consulted once at subscribe time.
	Indicators() indicator.Config

	Evaluate(ctx context.Context, input *Input) (*types.Signal, error)
}

// Validator is implemented by strategies that validate their parameters at
// subscribe time.
type Validator interface {
	Validate() error
}
