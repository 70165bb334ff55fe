package source

import (
	"context"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c9s/signalcore/pkg/types"
)

func TestJSONLSource(t *testing.T) {
	input := strings.Join([]string{
		`{"exchange":"binance","symbol":"BTCUSDT","interval":"1m","open":100,"high":101,"low":99,"close":100.5,"volume":12.5,"eventTime":1700000000000,"closed":true}`,
		`not json`,
		``,
		`{"exchange":"binance","symbol":"ETHUSDT","interval":"5m","open":10,"high":11,"low":9,"close":10.5,"volume":3,"eventTime":1700000060000,"closed":false}`,
	}, "\n")

	var received []types.KLine
	src := NewJSONLSource(strings.NewReader(input))

	err := src.Run(context.Background(), func(k types.KLine) error {
		received = append(received, k)
		if k.Symbol == "ETHUSDT" {
			// rejected events do not stop the stream
			return errors.New("rejected")
		}
		return nil
	})
	require.NoError(t, err)

	require.Len(t, received, 2)
	assert.Equal(t, "BTCUSDT", received[0].Symbol)
	assert.True(t, received[0].Closed)
	assert.Equal(t, int64(1700000000000), received[0].EventTime.UnixMilli())
	assert.Equal(t, types.Interval5m, received[1].Interval)
}
