package bootstrap

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"
	"webui-harness/internal/config"
	"webui-harness/internal/metrics"

	"github.com/gorilla/mux"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type metricsServer struct {
	server   *http.Server
	listener net.Listener
}

// Addr is the address the server listens on, once started.
func (s *metricsServer) Addr() string {
	if s == nil || s.listener == nil {
		return ""
	}

	return s.listener.Addr().String()
}

// newMetricsServer exposes /metrics on METRICS_ADDR. Nothing is served when
// the address is empty.
func newMetricsServer(lc fx.Lifecycle, config *config.Config, logger *zap.Logger) *metricsServer {
	addr := config.AppConfig.MetricsAddr
	if addr == "" {
		return nil
	}

	router := mux.NewRouter()
	router.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	srv := &metricsServer{
		server: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			listener, err := net.Listen("tcp", addr)
			if err != nil {
				logger.Error("Failed to listen for metrics", zap.String("addr", addr), zap.Error(err))

				return err
			}

			srv.listener = listener
			logger.Info("Serving metrics", zap.String("addr", listener.Addr().String()))

			go func() {
				if err := srv.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("Metrics server error", zap.Error(err))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.server.Shutdown(ctx)
		},
	})

	return srv
}
