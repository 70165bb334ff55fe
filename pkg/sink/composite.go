package sink

import (
	"context"

	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"github.com/c9s/signalcore/pkg/metrics"
	"github.com/c9s/signalcore/pkg/types"
	"github.com/c9s/signalcore/pkg/util/backoff"
)

// CompositeSink fans a signal out to every child sink. Each delivery is
// retried with bounded backoff; failures are aggregated and do not stop
// delivery to the remaining sinks.
type CompositeSink struct {
	sinks []Sink
}

func NewCompositeSink(sinks ...Sink) *CompositeSink {
	return &CompositeSink{sinks: sinks}
}

func (s *CompositeSink) Name() string {
	return "composite"
}

func (s *CompositeSink) EmitSignal(ctx context.Context, signal *types.Signal) (err error) {
	for _, child := range s.sinks {
		child := child
		deliverErr := backoff.RetryGeneral(ctx, func() error {
			return child.EmitSignal(ctx, signal)
		})

		if deliverErr != nil {
			metrics.SinkErrorsMetrics.WithLabelValues(child.Name()).Inc()
			log.WithError(deliverErr).
				WithField("sink", child.Name()).
				Errorf("signal %s delivery failed", signal.ID)

			err = multierr.Append(err, &types.SinkError{Sink: child.Name(), Err: deliverErr})
		}
	}

	return err
}
