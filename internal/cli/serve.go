package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	httpAdapter "github.com/aretw0/stencil/pkg/adapters/http"
)

// ShutdownTimeout bounds how long in-flight requests may finish after a signal.
const ShutdownTimeout = 5 * time.Second

// NewHandler builds the API handler for the environment, exposing /metrics
// when metrics are enabled.
func NewHandler(env *Env) http.Handler {
	opts := []httpAdapter.Option{httpAdapter.WithLogger(env.Logger)}
	if env.Metrics != nil {
		opts = append(opts, httpAdapter.WithMetrics(env.Metrics.Handler()))
	}
	return httpAdapter.NewHandler(env.Sessions(), env.Kit, opts...)
}

// Serve runs the API server on addr until ctx is done, then shuts it down
// gracefully. When ready is not nil it receives the bound address.
func Serve(ctx context.Context, env *Env, addr string, ready chan<- string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	srv := &http.Server{
		Handler:           NewHandler(env),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		env.Logger.Info("server listening", "addr", ln.Addr().String(), "store", env.Config.Store.Kind)
		serverErrors <- srv.Serve(ln)
	}()
	if ready != nil {
		ready <- ln.Addr().String()
	}

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		env.Logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			env.Logger.Warn("graceful shutdown incomplete", "err", err)
			return srv.Close()
		}
		env.Logger.Info("server stopped")
		return nil
	}
}
