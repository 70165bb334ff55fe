package types

import (
	"time"
)

type SignalSide string

const (
	SignalSideLong    = SignalSide("long")
	SignalSideShort   = SignalSide("short")
	SignalSideNeutral = SignalSide("neutral")
)

// Signal is the output of one strategy evaluation, handed to the sink
// collaborator for persistence or publication.
type Signal struct {
	ID string `json:"id" db:"id"`

	SubscriptionKey SubscriptionKey `json:"subscriptionKey" db:"subscription_key"`

	StrategyID string `json:"strategyId" db:"strategy_id"`

	TriggerReason string `json:"triggerReason" db:"trigger_reason"`

	Side SignalSide `json:"side" db:"side"`

	ComputedAt time.Time `json:"computedAt" db:"computed_at"`

	// Payload carries the indicator values and the strategy decision detail.
	Payload map[string]interface{} `json:"payload" db:"-"`
}
