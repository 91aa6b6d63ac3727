// Package metrics exposes Prometheus collectors for assembly runs.
package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"autoreel/internal/logging"
)

// Recorder holds the run collectors on a private registry.
type Recorder struct {
	registry        *prometheus.Registry
	runs            *prometheus.CounterVec
	runDuration     prometheus.Histogram
	playlistSeconds prometheus.Gauge
	excluded        prometheus.Counter
	deleteFailures  prometheus.Counter
}

// New registers the autoreel collectors on a fresh registry.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "autoreel_runs_total",
			Help: "Assembly runs by final status.",
		}, []string{"status"}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "autoreel_run_duration_seconds",
			Help:    "Wall-clock duration of assembly runs.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		}),
		playlistSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "autoreel_playlist_seconds",
			Help: "Total duration of the most recently assembled playlist.",
		}),
		excluded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "autoreel_clips_excluded_total",
			Help: "Media items dropped because they could not be normalized or measured.",
		}),
		deleteFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "autoreel_deletions_failed_total",
			Help: "Source files that could not be moved to the trash.",
		}),
	}
	r.registry.MustRegister(r.runs, r.runDuration, r.playlistSeconds, r.excluded, r.deleteFailures)
	return r
}

// Registry exposes the underlying registry for scraping and tests.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// ObserveRun records the outcome of a single run. Nil recorders are ignored.
func (r *Recorder) ObserveRun(status string, elapsed time.Duration, playlistSeconds float64, excluded, deleteFailures int) {
	if r == nil {
		return
	}
	r.runs.WithLabelValues(status).Inc()
	r.runDuration.Observe(elapsed.Seconds())
	if playlistSeconds > 0 {
		r.playlistSeconds.Set(playlistSeconds)
	}
	if excluded > 0 {
		r.excluded.Add(float64(excluded))
	}
	if deleteFailures > 0 {
		r.deleteFailures.Add(float64(deleteFailures))
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on bind until ctx is canceled.
func (r *Recorder) Serve(ctx context.Context, bind string, logger *slog.Logger) error {
	logger = logging.NewComponentLogger(logger, "metrics")
	mux := http.NewServeMux()
	mux.Handle("/metrics", r.Handler())

	listener, err := net.Listen("tcp", bind)
	if err != nil {
		return err
	}
	server := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.Info("metrics endpoint listening", logging.String("bind", listener.Addr().String()))
	if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
