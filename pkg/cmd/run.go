package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/slack-go/slack"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	_ "github.com/go-sql-driver/mysql"

	"github.com/c9s/signalcore/pkg/config"
	"github.com/c9s/signalcore/pkg/engine"
	"github.com/c9s/signalcore/pkg/service"
	"github.com/c9s/signalcore/pkg/sink"
	"github.com/c9s/signalcore/pkg/source"
	"github.com/c9s/signalcore/pkg/trigger"
	"github.com/c9s/signalcore/pkg/types"
)

var RunCmd = &cobra.Command{
	Use:   "run",
	Short: "run the signal engine with the subscriptions of the config file",

	SilenceUsage: true,
	RunE:         run,
}

func init() {
	RootCmd.AddCommand(RunCmd)
}

func run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	userConfig, err := config.Load(viper.GetString("config"))
	if err != nil {
		return err
	}

	signalSink, closer, err := buildSinks(userConfig)
	if err != nil {
		return err
	}
	defer closer()

	persistence, err := userConfig.BuildPersistence()
	if err != nil {
		return err
	}

	var options []engine.Option
	if persistence != nil {
		options = append(options, engine.WithPersistence(persistence))
	}
	if userConfig.EvaluationTimeout > 0 {
		options = append(options, engine.WithEvaluationTimeout(userConfig.EvaluationTimeout.Duration()))
	}

	signalEngine := engine.New(builtinCatalog(), trigger.NewRegistry(), signalSink, options...)

	for _, sub := range userConfig.Subscriptions {
		params, err := sub.ParamsJSON()
		if err != nil {
			return err
		}

		key, err := signalEngine.Subscribe(sub.Exchange, sub.Symbol, sub.Interval,
			sub.Strategy, trigger.Type(sub.Trigger), params)
		if err != nil {
			return err
		}

		log.Infof("subscribed %s", key)
	}

	if userConfig.MetricsAddr != "" {
		go serveMetrics(userConfig.MetricsAddr)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// the exchange connectivity layer is an external collaborator;
		// events arrive as JSON lines on stdin
		src := source.NewJSONLSource(os.Stdin)
		return src.Run(gctx, func(k types.KLine) error {
			return signalEngine.Dispatch(k)
		})
	})

	sigC := make(chan os.Signal, 1)
	signal.Notify(sigC, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigC:
		log.Infof("received signal %v, shutting down", sig)
	case <-gctx.Done():
	}

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := signalEngine.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("engine shutdown error")
	}

	if err := g.Wait(); err != nil && err != context.Canceled {
		return err
	}

	return nil
}

func buildSinks(userConfig *config.Config) (sink.Sink, func(), error) {
	var sinks []sink.Sink
	var closers []func()

	if userConfig.Sinks.Log {
		sinks = append(sinks, sink.NewLogSink())
	}

	if c := userConfig.Sinks.Slack; c != nil {
		token := c.Token
		if token == "" {
			token = viper.GetString("slack-token")
		}

		channel := c.Channel
		if channel == "" {
			channel = viper.GetString("slack-channel")
		}

		sinks = append(sinks, sink.NewSlackSink(slack.New(token), channel))
	}

	if c := userConfig.Sinks.Database; c != nil {
		db, err := sqlx.Connect(c.Driver, c.DSN)
		if err != nil {
			return nil, nil, err
		}

		closers = append(closers, func() {
			if err := db.Close(); err != nil {
				log.WithError(err).Error("can not close database")
			}
		})

		sinks = append(sinks, sink.NewDatabaseSink(service.NewSignalService(db)))
	}

	if len(sinks) == 0 {
		sinks = append(sinks, sink.NewLogSink())
	}

	closer := func() {
		for _, c := range closers {
			c()
		}
	}

	return sink.NewCompositeSink(sinks...), closer, nil
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	log.Infof("serving prometheus metrics on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.WithError(err).Error("metrics server error")
	}
}
