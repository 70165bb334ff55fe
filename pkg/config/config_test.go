package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c9s/signalcore/pkg/types"
)

const sampleConfig = `
evaluationTimeout: 5s
metricsAddr: ":9090"

persistence:
  type: json
  json:
    directory: /tmp/signalcore

sinks:
  log: true
  slack:
    token: xoxb-test
    channel: "#signals"

subscriptions:
- exchange: binance
  symbol: BTCUSDT
  interval: 1m
  strategy: macdcross
  trigger: EACH_KLINE_CLOSE
  params:
    short: 12
    long: 26
    signal: 9
- exchange: binance
  symbol: ETHUSDT
  interval: 5m
  strategy: ematrend
  trigger: EACH_MINUTE
`

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "signalcore.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	c, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, c.EvaluationTimeout.Duration())
	assert.Equal(t, ":9090", c.MetricsAddr)

	require.NotNil(t, c.Persistence)
	assert.Equal(t, "json", c.Persistence.Type)

	assert.True(t, c.Sinks.Log)
	require.NotNil(t, c.Sinks.Slack)
	assert.Equal(t, "#signals", c.Sinks.Slack.Channel)

	require.Len(t, c.Subscriptions, 2)
	assert.Equal(t, types.Interval1m, c.Subscriptions[0].Interval)

	params, err := c.Subscriptions[0].ParamsJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"short": 12, "long": 26, "signal": 9}`, string(params))

	params, err = c.Subscriptions[1].ParamsJSON()
	require.NoError(t, err)
	assert.Nil(t, params)
}

func TestLoad_InvalidInterval(t *testing.T) {
	_, err := Load(writeConfig(t, `
subscriptions:
- exchange: binance
  symbol: BTCUSDT
  interval: 7m
  strategy: ematrend
  trigger: EACH_KLINE
`))
	assert.Error(t, err)
}

func TestLoad_InvalidPersistence(t *testing.T) {
	_, err := Load(writeConfig(t, `
persistence:
  type: etcd
subscriptions: []
`))
	assert.Error(t, err)
}
