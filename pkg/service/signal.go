package service

import (
	"context"
	"encoding/json"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/c9s/signalcore/pkg/types"
)

// SignalService persists emitted signals, the persistence half of the
// signal sink collaborator.
type SignalService struct {
	DB *sqlx.DB
}

func NewSignalService(db *sqlx.DB) *SignalService {
	return &SignalService{DB: db}
}

type signalRecord struct {
	ID              string `db:"id"`
	SubscriptionKey string `db:"subscription_key"`
	StrategyID      string `db:"strategy_id"`
	TriggerReason   string `db:"trigger_reason"`
	Side            string `db:"side"`
	ComputedAt      int64  `db:"computed_at"`
	Payload         []byte `db:"payload"`
}

func (s *SignalService) Insert(ctx context.Context, signal *types.Signal) error {
	payload, err := json.Marshal(signal.Payload)
	if err != nil {
		return errors.Wrap(err, "can not marshal signal payload")
	}

	_, err = s.DB.NamedExecContext(ctx, `
		INSERT INTO signals (id, subscription_key, strategy_id, trigger_reason, side, computed_at, payload)
		VALUES (:id, :subscription_key, :strategy_id, :trigger_reason, :side, :computed_at, :payload)`,
		signalRecord{
			ID:              signal.ID,
			SubscriptionKey: signal.SubscriptionKey.String(),
			StrategyID:      signal.StrategyID,
			TriggerReason:   signal.TriggerReason,
			Side:            string(signal.Side),
			ComputedAt:      signal.ComputedAt.UnixMilli(),
			Payload:         payload,
		})
	return errors.Wrap(err, "insert signal error")
}

// Query returns the signals of one subscription ordered by computed time.
func (s *SignalService) Query(ctx context.Context, key types.SubscriptionKey) ([]types.Signal, error) {
	rows, err := s.DB.NamedQueryContext(ctx, `
		SELECT id, subscription_key, strategy_id, trigger_reason, side, computed_at, payload
		FROM signals WHERE subscription_key = :subscription_key ORDER BY computed_at ASC`,
		map[string]interface{}{
			"subscription_key": key.String(),
		})
	if err != nil {
		return nil, errors.Wrap(err, "query signals error")
	}

	defer rows.Close()

	return s.scanRows(rows)
}

func (s *SignalService) scanRows(rows *sqlx.Rows) (signals []types.Signal, err error) {
	for rows.Next() {
		var record signalRecord
		if err = rows.StructScan(&record); err != nil {
			return nil, err
		}

		signal, err := record.toSignal()
		if err != nil {
			return nil, err
		}

		signals = append(signals, signal)
	}

	return signals, rows.Err()
}

func (record *signalRecord) toSignal() (types.Signal, error) {
	signal := types.Signal{
		ID:              record.ID,
		SubscriptionKey: types.SubscriptionKey(record.SubscriptionKey),
		StrategyID:      record.StrategyID,
		TriggerReason:   record.TriggerReason,
		Side:            types.SignalSide(record.Side),
		ComputedAt:      types.NewMillisecondTimestampFromEpoch(record.ComputedAt).Time(),
	}

	if len(record.Payload) > 0 {
		if err := json.Unmarshal(record.Payload, &signal.Payload); err != nil {
			return signal, errors.Wrap(err, "can not unmarshal signal payload")
		}
	}

	return signal, nil
}
