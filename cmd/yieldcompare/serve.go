package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	grpcadapter "github.com/simaogato/yieldcompare-backend/internal/adapter/grpc"
	httpadapter "github.com/simaogato/yieldcompare-backend/internal/adapter/http"
	"github.com/simaogato/yieldcompare-backend/internal/usecase/comparison"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the comparison over gRPC and HTTP",
		Long: `Starts the gRPC API (yieldcompare.v1.YieldCompareService, token auth via the
"authorization" metadata key) and the HTTP JSON API (POST /compare, GET /options,
rate limited per client IP). SIGINT or SIGTERM drains both and exits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			// 1. Load tax tables and build the service
			service, err := a.comparisonService(ctx)
			if err != nil {
				return err
			}

			// 2. Listen on both ports
			grpcLis, err := net.Listen("tcp", a.cfg.GRPCAddr)
			if err != nil {
				return fmt.Errorf("failed to listen on %s: %w", a.cfg.GRPCAddr, err)
			}
			httpLis, err := net.Listen("tcp", a.cfg.HTTPAddr)
			if err != nil {
				grpcLis.Close()
				return fmt.Errorf("failed to listen on %s: %w", a.cfg.HTTPAddr, err)
			}

			// 3. Serve until the context ends
			return a.serve(ctx, service, grpcLis, httpLis)
		},
	}
}

// serve runs both servers on the given listeners and shuts them down gracefully when ctx is done.
// A failure in either server stops the other.
func (a *app) serve(ctx context.Context, service *comparison.ComparisonService, grpcLis, httpLis net.Listener) error {
	grpcServer := grpcadapter.NewGRPCServer(grpcadapter.NewServer(service), a.cfg.APIToken, a.logger)

	limiter := httpadapter.NewRateLimiter(a.cfg.RateLimit.Capacity, a.cfg.RateLimit.Window)
	defer limiter.Stop()

	httpServer := &http.Server{
		Handler:           httpadapter.NewRouter(httpadapter.NewComparisonHandler(service, a.logger), limiter),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info("gRPC server listening", zap.String("addr", grpcLis.Addr().String()))
		if err := grpcServer.Serve(grpcLis); err != nil {
			return fmt.Errorf("failed to serve gRPC server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		a.logger.Info("HTTP server listening", zap.String("addr", httpLis.Addr().String()))
		if err := httpServer.Serve(httpLis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to serve HTTP server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("shutting down gracefully")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		grpcServer.GracefulStop()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down HTTP server: %w", err)
		}

		a.logger.Info("servers stopped")
		return nil
	})

	return g.Wait()
}
