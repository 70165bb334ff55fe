package metrics

import "github.com/prometheus/client_golang/prometheus"

var KLineEventsMetrics = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "signalcore_kline_events_total",
		Help: "number of kline events applied per subscription",
	}, []string{"exchange", "symbol", "interval"})

var DroppedEventsMetrics = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "signalcore_dropped_events_total",
		Help: "number of kline events dropped before state application",
	}, []string{"exchange", "symbol", "interval", "reason"})

var TriggerFiresMetrics = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "signalcore_trigger_fires_total",
		Help: "number of trigger fires per trigger type",
	}, []string{"trigger_type", "strategy_type"})

var EvaluationErrorsMetrics = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "signalcore_evaluation_errors_total",
		Help: "number of failed strategy evaluations",
	}, []string{"strategy_type"})

var SinkErrorsMetrics = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "signalcore_sink_errors_total",
		Help: "number of failed signal deliveries",
	}, []string{"sink"})

var SignalsEmittedMetrics = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "signalcore_signals_emitted_total",
		Help: "number of signals forwarded to the sink",
	}, []string{"strategy_type", "side"})

var ActiveSubscriptionsMetrics = prometheus.NewGauge(
	prometheus.GaugeOpts{
		Name: "signalcore_active_subscriptions",
		Help: "number of registered subscriptions",
	})

var EvaluationDurationMetrics = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "signalcore_evaluation_duration_seconds",
		Help:    "strategy evaluation latency",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14),
	}, []string{"strategy_type"})

func init() {
	prometheus.MustRegister(
		KLineEventsMetrics,
		DroppedEventsMetrics,
		TriggerFiresMetrics,
		EvaluationErrorsMetrics,
		SinkErrorsMetrics,
		SignalsEmittedMetrics,
		ActiveSubscriptionsMetrics,
		EvaluationDurationMetrics,
	)
}
