package sink

import (
	"context"

	"github.com/c9s/signalcore/pkg/service"
	"github.com/c9s/signalcore/pkg/types"
)

type DatabaseSink struct {
	signalService *service.SignalService
}

func NewDatabaseSink(signalService *service.SignalService) *DatabaseSink {
	return &DatabaseSink{signalService: signalService}
}

func (s *DatabaseSink) Name() string {
	return "database"
}

func (s *DatabaseSink) EmitSignal(ctx context.Context, signal *types.Signal) error {
	return s.signalService.Insert(ctx, signal)
}
