package sink

import (
	"context"

	"github.com/c9s/signalcore/pkg/types"
)

// Sink receives emitted signals for persistence or publication. Delivery
// failures are scoped to the single signal; the engine never retries a
// signal that a sink has accepted.
type Sink interface {
	Name() string

	EmitSignal(ctx context.Context, signal *types.Signal) error
}
