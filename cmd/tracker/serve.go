package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/banshee-data/vehicle.tracker/internal/api"
	"github.com/banshee-data/vehicle.tracker/internal/config"
	"github.com/banshee-data/vehicle.tracker/internal/db"
	"github.com/banshee-data/vehicle.tracker/internal/monitoring"
	"github.com/banshee-data/vehicle.tracker/internal/tracking"
	"github.com/banshee-data/vehicle.tracker/internal/version"
)

const shutdownTimeout = 10 * time.Second

type serveOptions struct {
	configPath string
	envFiles   []string
	cfg        *config.RegistryConfig
}

// parseServeFlags builds the effective configuration: the config file, then
// .env and TRACKER_* variables, then any flag given on the command line.
func parseServeFlags(args []string) (*serveOptions, error) {
	fs := pflag.NewFlagSet("tracker serve", pflag.ContinueOnError)
	configPath := fs.String("config", "", "config file (.json, .yaml or .yml)")
	envFiles := fs.StringSlice("env-file", []string{".env"}, "dotenv files loaded before TRACKER_* overrides")
	instanceID := fs.String("instance-id", "", "stable instance id (default: random per start)")
	grpcListen := fs.String("grpc-listen", ":50051", "gRPC listen address")
	httpListen := fs.String("http-listen", ":8080", "HTTP listen address")
	store := fs.String("store", config.StoreSQLite, "store backend: sqlite or memory")
	dbPath := fs.String("db-path", "tracker.db", "path to the SQLite database shared by all instances")
	staleAfter := fs.Duration("stale-after", tracking.DefaultStaleAfter, "heartbeat age after which a session is stale")
	sweepInterval := fs.Duration("sweep-interval", tracking.DefaultSweepInterval, "liveness sweeper period")
	conflictGrace := fs.Duration("conflict-grace", tracking.DefaultConflictGrace, "delay before closing a rejected duplicate stream")
	retention := fs.Duration("position-retention", 0, "drop logged positions older than this (0 keeps all)")
	historySize := fs.Int("history-size", tracking.DefaultHistorySize, "positions kept per live stream")
	logLevel := fs.String("log-level", "info", "debug, info, warn or error")
	logFormat := fs.String("log-format", "text", "text or json")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected argument: %s", fs.Arg(0))
	}

	if err := config.LoadDotEnv(*envFiles...); err != nil {
		return nil, err
	}
	cfg := &config.RegistryConfig{}
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(nil); err != nil {
		return nil, err
	}

	set := func(name string, apply func()) {
		if fs.Changed(name) {
			apply()
		}
	}
	str := func(v string) *string { return &v }
	set("instance-id", func() { cfg.InstanceID = str(*instanceID) })
	set("grpc-listen", func() { cfg.GRPCListen = str(*grpcListen) })
	set("http-listen", func() { cfg.HTTPListen = str(*httpListen) })
	set("store", func() { cfg.Store = str(*store) })
	set("db-path", func() { cfg.DBPath = str(*dbPath) })
	set("stale-after", func() { cfg.StaleAfter = str(staleAfter.String()) })
	set("sweep-interval", func() { cfg.SweepInterval = str(sweepInterval.String()) })
	set("conflict-grace", func() { cfg.ConflictGrace = str(conflictGrace.String()) })
	set("position-retention", func() { cfg.PositionRetention = str(retention.String()) })
	set("history-size", func() { cfg.HistorySize = historySize })
	set("log-level", func() { cfg.LogLevel = str(*logLevel) })
	set("log-format", func() { cfg.LogFormat = str(*logFormat) })
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}

	return &serveOptions{configPath: *configPath, envFiles: *envFiles, cfg: cfg}, nil
}

func serve(opts *serveOptions) error {
	cfg := opts.cfg
	logger := monitoring.NewLogger(cfg.GetLogLevel(), cfg.GetLogFormat())
	slog.SetDefault(logger)

	var (
		store    tracking.Store
		database *db.DB
	)
	switch cfg.GetStore() {
	case config.StoreMemory:
		logger.Warn("using in-memory store; sessions are not shared with other instances")
		store = tracking.NewMemStore()
	default:
		var err error
		database, err = db.NewDB(cfg.GetDBPath())
		if err != nil {
			log.Fatalf("Failed to open database %s: %v", cfg.GetDBPath(), err)
		}
		defer database.Close()
		store = db.NewTrackingStore(database)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// A restarted instance that kept its id cannot own any live stream yet.
	if id := cfg.GetInstanceID(); id != "" && database != nil {
		n, err := db.NewTrackingStore(database).ReleaseInstanceSessions(ctx, id)
		if err != nil {
			logger.Warn("failed to release sessions of previous run", "instance_id", id, "error", err)
		} else if n > 0 {
			logger.Info("released sessions of previous run", "instance_id", id, "released", n)
		}
	}

	metrics := monitoring.NewMetrics()
	reg := tracking.NewRegistry(store, tracking.Options{
		InstanceID:    cfg.GetInstanceID(),
		HistorySize:   cfg.GetHistorySize(),
		StaleAfter:    cfg.GetStaleAfter(),
		ConflictGrace: cfg.GetConflictGrace(),
		Logger:        logger,
		Metrics:       metrics,
	})
	sweeper := tracking.NewSweeper(reg, cfg.GetSweepInterval())
	sweeper.Retention = cfg.GetPositionRetention()

	logger.Info("tracker starting",
		"version", version.Version,
		"instance_id", reg.InstanceID(),
		"store", cfg.GetStore(),
		"config", opts.configPath,
		"stale_after", cfg.GetStaleAfter(),
		"sweep_interval", cfg.GetSweepInterval(),
	)

	grpcLis, err := net.Listen("tcp", cfg.GetGRPCListen())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.GetGRPCListen(), err)
	}
	grpcServer := grpc.NewServer()
	tracking.NewService(reg).Register(grpcServer)
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	mux := http.NewServeMux()
	if database != nil {
		database.AttachAdminRoutes(mux)
	}
	api.NewServer(reg, sweeper, metrics, logger).Attach(mux)
	httpServer := &http.Server{
		Addr:              cfg.GetHTTPListen(),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	var wg sync.WaitGroup
	errc := make(chan error, 2)

	sweeper.Start(ctx)

	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("gRPC server listening", "addr", grpcLis.Addr().String())
		if err := grpcServer.Serve(grpcLis); err != nil {
			errc <- fmt.Errorf("gRPC server: %w", err)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("HTTP server listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- fmt.Errorf("HTTP server: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received, draining streams")
	case runErr = <-errc:
		logger.Error("server failed", "error", runErr)
	}

	healthServer.Shutdown()
	sweeper.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("HTTP server shutdown error", "error", err)
	}

	// GracefulStop waits for streams to end; fall back to Stop so that a
	// vehicle that never hangs up cannot hold the process open. Stopped
	// streams still release their sessions on the way out.
	stopped := make(chan struct{})
	go func() {
		grpcServer.GracefulStop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-shutdownCtx.Done():
		grpcServer.Stop()
	}

	wg.Wait()
	logger.Info("tracker stopped")
	return runErr
}
