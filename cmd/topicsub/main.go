// Command topicsub runs the consensus-ledger mirror node's topic-message
// subscription gRPC server.
package main

import (
	"context"
	"database/sql"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli"
	"go.uber.org/multierr"
	"google.golang.org/grpc"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/hashgraph/hedera-mirror-topicsub/api/topicsubpb"
	"github.com/hashgraph/hedera-mirror-topicsub/internal/config"
	"github.com/hashgraph/hedera-mirror-topicsub/internal/logging"
	"github.com/hashgraph/hedera-mirror-topicsub/internal/metrics"
	"github.com/hashgraph/hedera-mirror-topicsub/internal/rpc"
	"github.com/hashgraph/hedera-mirror-topicsub/internal/storage"
	"github.com/hashgraph/hedera-mirror-topicsub/internal/topic"
)

// shutdownGracePeriod bounds how long a graceful gRPC stop is allowed to
// wait for in-flight subscriptions to drain before streams are cut hard.
const shutdownGracePeriod = 20 * time.Second

func main() {
	app := cli.NewApp()
	app.Name = "topicsub"
	app.Usage = "streaming topic-message subscription engine"
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "config", Usage: "path to a viper config file"},
	}
	app.Commands = []cli.Command{
		{
			Name:  "migrate",
			Usage: "run pending database migrations",
			Action: func(c *cli.Context) error {
				return runMigrate(c.GlobalString("config"))
			},
		},
		{
			Name:  "serve",
			Usage: "run the ConsensusService gRPC server",
			Action: func(c *cli.Context) error {
				return runServe(c.GlobalString("config"))
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logging.Errorw("topicsub exited with error", "err", err)
		os.Exit(1)
	}
}

func runMigrate(configFile string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL())
	if err != nil {
		return errors.Wrap(err, "open migration connection")
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.Up(db, "migrations")
}

func runServe(configFile string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	gormDB, err := gorm.Open(postgres.Open(cfg.DatabaseURL()), &gorm.Config{})
	if err != nil {
		return errors.Wrap(err, "open gorm connection")
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return errors.Wrap(err, "unwrap sql.DB")
	}
	sqlxDB := sqlx.NewDb(sqlDB, "postgres")

	lookup := storage.NewEntityLookup(gormDB)
	pager := storage.NewPager(gormDB, sqlxDB, cfg.HistoricalPagesPerSecond())

	bus, err := storage.NewLiveBus(cfg.DatabaseURL(), cfg.ListenerBufferSize())
	if err != nil {
		return errors.Wrap(err, "start live bus")
	}
	// Every return from here on must route through shutdown so bus is
	// always closed exactly once, whether startup fails partway through
	// or the process runs to a clean signal-triggered shutdown.

	reg := prometheus.NewRegistry()
	metricRegistry := metrics.NewRegistry(reg)

	reporter := metrics.NewStatusReporter(metricRegistry)
	if cfg.MetricsEnabled() {
		if err := reporter.Start(cfg.StatusReportSchedule()); err != nil {
			return multierr.Append(errors.Wrap(err, "start status reporter"), bus.Close())
		}
	}

	engine := topic.NewEngine(lookup, pager, bus, metricRegistry, cfg)
	server := rpc.NewConsensusServer(engine)

	grpcServer := grpc.NewServer()
	topicsubpb.RegisterConsensusServiceServer(grpcServer, server)

	lis, err := net.Listen("tcp", cfg.GRPCListenAddress())
	if err != nil {
		if cfg.MetricsEnabled() {
			reporter.Stop()
		}
		return multierr.Append(errors.Wrap(err, "listen"), bus.Close())
	}

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	metricsMux.HandleFunc("/readyz", readyzHandler(bus))
	metricsSrv := &http.Server{Addr: cfg.MetricsListenAddress(), Handler: metricsMux}

	go func() {
		logging.Infow("metrics server listening", "addr", cfg.MetricsListenAddress())
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Errorw("metrics server stopped", "err", err)
		}
	}()

	go func() {
		logging.Infow("grpc server listening", "addr", cfg.GRPCListenAddress())
		if err := grpcServer.Serve(lis); err != nil {
			logging.Errorw("grpc server stopped", "err", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logging.Infow("shutting down", "gracePeriod", shutdownGracePeriod)
	if cfg.MetricsEnabled() {
		reporter.Stop()
	}
	grpcErr := gracefulStopWithDeadline(grpcServer, shutdownGracePeriod)
	return multierr.Combine(grpcErr, bus.Close(), metricsSrv.Close())
}

// gracefulStopWithDeadline races grpcServer.GracefulStop (which waits for
// every in-flight stream to finish or be cancelled by its own client)
// against shutdownGracePeriod; once the deadline passes, in-flight
// subscriptions are cut hard with Stop instead of left to drain forever.
func gracefulStopWithDeadline(grpcServer *grpc.Server, grace time.Duration) error {
	stopped := make(chan struct{})
	go func() {
		grpcServer.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
		return nil
	case <-time.After(grace):
		grpcServer.Stop()
		return errors.Errorf("grpc server did not drain within %s, forced stop", grace)
	}
}

// readyzHandler reports 200 when the live bus's underlying transport is
// connected and 503 otherwise, so an orchestrator can detect a subscriber
// whose live feed has silently died even though its gRPC stream is open.
func readyzHandler(bus topic.LiveBus) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !bus.Connected() {
			http.Error(w, "live bus disconnected", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}
