package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	grpcadapter "github.com/simaogato/fintrack-backend/internal/adapter/grpc"
	"github.com/simaogato/fintrack-backend/internal/backend"
	"github.com/simaogato/fintrack-backend/internal/config"
	"github.com/simaogato/fintrack-backend/internal/logging"
	"github.com/simaogato/fintrack-backend/internal/metrics"
	"github.com/simaogato/fintrack-backend/internal/usecase/dashboard"
	"github.com/simaogato/fintrack-backend/internal/usecase/records"
	"github.com/simaogato/fintrack-backend/internal/usecase/report"
	"github.com/simaogato/fintrack-backend/internal/usecase/seeder"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// 1. Configuration and logging
	cfg := config.Load()

	logger, err := logging.NewLogger(cfg.Logging())
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	logging.SetGlobal(logger)

	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	// 2. Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewPrometheusCollector("fintrack")
	if err := collector.Register(registry); err != nil {
		logger.Fatal("failed to register metrics", zap.Error(err))
	}

	// 3. Storage backend
	ctx := context.Background()
	storage, err := backend.NewFactory(collector, logger).Create(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to initialize storage", zap.String("backend", cfg.StorageBackend), zap.Error(err))
	}
	defer func() {
		if err := storage.Cleanup(); err != nil {
			logger.Error("failed to close storage", zap.Error(err))
		}
	}()

	if cfg.SeedSampleData {
		seeded, err := seeder.NewSampleSeeder(storage.Store).Seed(ctx)
		if err != nil {
			logger.Fatal("failed to seed sample data", zap.Error(err))
		}
		logger.Info("sample data checked", zap.Bool("seeded", seeded))
	}

	// 4. Services
	recordStore := records.NewRecordStore(storage.Store, logger)
	recordStore.Observer = collector
	dashboardService := dashboard.NewDashboardService(recordStore)
	reportService := report.NewReportService(recordStore)

	// 5. gRPC server
	grpcServer := grpclib.NewServer(
		grpclib.ChainUnaryInterceptor(
			grpcadapter.LoggingInterceptor(logger),
			grpcadapter.AuthInterceptor(cfg.APIToken),
		),
	)
	grpcadapter.RegisterFinanceServiceServer(grpcServer, grpcadapter.NewServer(recordStore, dashboardService, reportService))
	reflection.Register(grpcServer)

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		logger.Fatal("failed to listen", zap.String("addr", cfg.GRPCAddr), zap.Error(err))
	}

	// 6. Metrics and health HTTP server
	r := mux.NewRouter()
	r.HandleFunc("/health", healthHandler(storage.Name)).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	httpServer := &http.Server{
		Addr:         cfg.MetricsAddr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("gRPC server listening", zap.String("addr", cfg.GRPCAddr))
		return grpcServer.Serve(lis)
	})
	g.Go(func() error {
		logger.Info("metrics server listening", zap.String("addr", cfg.MetricsAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		waitForShutdown(logger, grpcServer, httpServer)
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("server stopped with error", zap.Error(err))
		os.Exit(1)
	}
}

// waitForShutdown gracefully stops both servers
func waitForShutdown(logger *logging.Logger, grpcServer *grpclib.Server, httpServer *http.Server) {
	logger.Info("shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("metrics server shutdown error", zap.Error(err))
	}

	grpcServer.GracefulStop()
	logger.Info("gRPC server stopped")
}

func healthHandler(backendName string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok","storage":"` + backendName + `"}`))
	}
}
