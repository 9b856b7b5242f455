package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler serves the registry in the Prometheus text format
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Route is an extra handler mounted beside /metrics
type Route struct {
	Pattern string
	Handler http.Handler
}

// Serve exposes /metrics and any extra routes on addr until ctx is
// cancelled. System gauges are refreshed every interval.
func (r *Registry) Serve(ctx context.Context, addr string, interval time.Duration, routes ...Route) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return r.serve(ctx, ln, interval, routes...)
}

func (r *Registry) serve(ctx context.Context, ln net.Listener, interval time.Duration, routes ...Route) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", r.Handler())
	for _, route := range routes {
		mux.Handle(route.Pattern, route.Handler)
	}
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	start := time.Now()
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			r.UpdateSystemMetrics(start)
			select {
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				srv.Shutdown(shutdownCtx)
				return
			case <-ticker.C:
			}
		}
	}()

	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
