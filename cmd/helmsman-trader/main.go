package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc"

	"helmsman/internal/broker"
	"helmsman/internal/config"
	"helmsman/internal/engine"
	"helmsman/internal/httpapi"
	"helmsman/internal/live"
	sig "helmsman/internal/signal"
	"helmsman/internal/store"
	"helmsman/internal/util"
)

func main() {
	cfgPath := "config/helmsman.yaml"
	if p := os.Getenv("HELMSMAN_CONFIG"); p != "" {
		cfgPath = p
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := util.NewLogger(cfg.Logging.Level)
	util.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Durable state.
	dbPath := cfg.Storage.SQLitePath
	if dbPath == "" {
		dbPath = "helmsman.db"
	}
	db, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		logger.Error("opening sqlite store", "path", dbPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var journal store.Journal
	if cfg.Storage.DataDir != "" {
		journal = store.NewParquetJournal(cfg.Storage.DataDir)
	}

	// Broker gateway and holiday source.
	var gw broker.Gateway
	var holidays util.HolidaySource
	var refresher engine.Refresher
	if cfg.Trading.PaperMode {
		gw = broker.NewSimulatorGateway(cfg.Trading.TotalRiskCapital)
		holidays = util.NewStaticHolidaySource()
	} else {
		ag := broker.NewAlpacaGateway(cfg.Alpaca.APIKey, cfg.Alpaca.APISecret,
			cfg.Alpaca.BaseURL, cfg.Alpaca.DataURL, logger)
		hs := broker.NewAlpacaHolidaySource(ag, logger)
		gw = ag
		holidays = hs
		refresher = hs
	}
	logger.Info("broker gateway ready", "gateway", gw.Name())

	// Engine state, restored from the store.
	stops := engine.NewStopTracker(db, logger)
	if err := stops.Load(ctx); err != nil {
		logger.Error("restoring tracked positions", "error", err)
		os.Exit(1)
	}
	queue := sig.NewQueue(db, logger)
	if err := queue.Load(ctx); err != nil {
		logger.Error("restoring pending signals", "error", err)
		os.Exit(1)
	}

	feed := live.NewFeed(1024)
	alloc := engine.NewAllocator(cfg.Trading, logger)
	callTimeout := time.Duration(cfg.Trading.GatewayTimeoutSecs) * time.Second
	lifecycle := engine.NewLifecycle(gw, alloc, stops, journal, feed,
		cfg.Trading.TickOffset, callTimeout, logger)
	scheduler := engine.NewScheduler(holidays, cfg.Trading.LiquidationLookaheadDays, logger)
	eng := engine.NewEngine(gw, lifecycle, scheduler, queue, stops, cfg.Trading, refresher, logger)

	// REST API.
	apiServer := httpapi.NewServer(stops, queue, gw, journal, cfg.Trading.TotalRiskCapital, logger)
	httpPort := cfg.Server.Port
	if httpPort == 0 {
		httpPort = 8090
	}
	httpServer := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, httpPort),
		Handler: apiServer.Handler(),
	}
	go func() {
		logger.Info("HTTP server listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			cancel()
		}
	}()

	// gRPC event feed.
	grpcPort := cfg.Server.GRPCPort
	if grpcPort == 0 {
		grpcPort = 50051
	}
	lis, err := net.Listen("tcp", fmt.Sprintf("%s:%d", cfg.Server.Host, grpcPort))
	if err != nil {
		logger.Error("gRPC listen", "port", grpcPort, "error", err)
		os.Exit(1)
	}
	grpcServer := grpc.NewServer()
	live.NewServer(feed, logger).RegisterGRPC(grpcServer)
	go func() {
		logger.Info("gRPC server listening", "addr", lis.Addr().String())
		if err := grpcServer.Serve(lis); err != nil {
			logger.Error("gRPC server error", "error", err)
			cancel()
		}
	}()

	// Trading heartbeat.
	go func() {
		if err := eng.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Error("engine error", "error", err)
			cancel()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP shutdown", "error", err)
	}
	grpcServer.GracefulStop()
}
