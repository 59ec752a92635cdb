package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	"github.com/KirkDiggler/dex-api/internal/clients/pokeapi"
	"github.com/KirkDiggler/dex-api/internal/errors"
	v1 "github.com/KirkDiggler/dex-api/internal/handlers/http/v1"
)

// upstreamService is the health service name tracking the catalog API
const upstreamService = "catalog.upstream"

const shutdownTimeout = 30 * time.Second

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the HTTP and gRPC health servers",
	Long:  `Start the catalog HTTP API and a gRPC health endpoint that tracks the upstream catalog API.`,
	RunE:  runServer,
}

func runServer(cmd *cobra.Command, _ []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()
	log := a.logger

	handler, err := v1.NewHandler(&v1.HandlerConfig{DexService: a.service, Logger: log})
	if err != nil {
		return fmt.Errorf("failed to create http handler: %w", err)
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(log))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	handler.RegisterRoutes(router.Group("/v1"))

	httpSrv := &http.Server{
		Addr:              fmt.Sprintf(":%d", a.cfg.Server.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", a.cfg.Server.GRPCPort))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	logger := grpc_logging.LoggerFunc(logFunc(log))
	recovery := grpc_recovery.WithRecoveryHandlerContext(func(ctx context.Context, p any) error {
		log.ErrorContext(ctx, "panic in grpc handler", "panic", p)
		return errors.ToGRPCError(errors.Internalf("panic: %v", p))
	})
	grpcSrv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(logger),
			grpc_recovery.UnaryServerInterceptor(recovery),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(logger),
			grpc_recovery.StreamServerInterceptor(recovery),
		),
	)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcSrv, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(upstreamService, grpc_health_v1.HealthCheckResponse_NOT_SERVING)
	reflection.Register(grpcSrv)

	go probeUpstream(ctx, a.client, healthServer, a.cfg.Server.ProbeInterval, a.cfg.Server.ProbeTimeout, log)

	errChan := make(chan error, 2)
	go func() {
		log.Info("http server starting", "port", a.cfg.Server.HTTPPort)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("http server failed: %w", err)
		}
	}()
	go func() {
		log.Info("grpc server starting", "port", a.cfg.Server.GRPCPort)
		if err := grpcSrv.Serve(lis); err != nil {
			errChan <- fmt.Errorf("grpc server failed: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("shutting down")
	case err := <-errChan:
		cancel()
		shutdown(httpSrv, grpcSrv, healthServer, log)
		return err
	}

	shutdown(httpSrv, grpcSrv, healthServer, log)
	return nil
}

func shutdown(httpSrv *http.Server, grpcSrv *grpc.Server, healthServer *health.Server, log *slog.Logger) {
	healthServer.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http shutdown incomplete", "error", err)
	}

	stopped := make(chan struct{})
	go func() {
		grpcSrv.GracefulStop()
		close(stopped)
	}()

	select {
	case <-shutdownCtx.Done():
		log.Warn("graceful shutdown timeout exceeded, forcing stop")
		grpcSrv.Stop()
	case <-stopped:
		log.Info("servers stopped gracefully")
	}
}

// probeUpstream pings the catalog API every interval and mirrors the result
// onto the upstream health service.
func probeUpstream(ctx context.Context, client pokeapi.Client, hs *health.Server, interval, timeout time.Duration, log *slog.Logger) {
	check := func() {
		pingCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		next := grpc_health_v1.HealthCheckResponse_SERVING
		if err := client.Ping(pingCtx); err != nil {
			next = grpc_health_v1.HealthCheckResponse_NOT_SERVING
			log.Warn("catalog api probe failed", "error", err)
		}
		hs.SetServingStatus(upstreamService, next)
	}

	check()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			check()
		}
	}
}

func requestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}

func logFunc(log *slog.Logger) func(ctx context.Context, level grpc_logging.Level, msg string, fields ...any) {
	return func(ctx context.Context, level grpc_logging.Level, msg string, fields ...any) {
		log.Log(ctx, slog.Level(level), msg, fields...)
	}
}
