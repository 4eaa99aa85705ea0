// Package metrics exports spin cycle counters to Prometheus.
// The collector is an event handler: the game emits, the router dispatches, the collector counts.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/lixenwraith/pharaoh-slot/core"
	"github.com/lixenwraith/pharaoh-slot/event"
)

const namespace = "pharaoh_slot"

// Collector owns a private registry so several collectors can coexist in one process
type Collector struct {
	Registry *prometheus.Registry

	Sessions    prometheus.Counter
	Spins       prometheus.Counter
	Outcomes    *prometheus.CounterVec
	ReelErrors  prometheus.Counter
	GamesOver   prometheus.Counter
	CycleTime   prometheus.Histogram
	Attempts    prometheus.Gauge
	SessionTime prometheus.Histogram
}

// NewCollector registers every metric on a fresh registry
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Collector{
		Registry: reg,
		Sessions: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "sessions_total", Help: "Sessions started",
		}),
		Spins: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "spins_total", Help: "Accepted spin requests",
		}),
		Outcomes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "outcomes_total", Help: "Classified spins",
		}, []string{"classification"}),
		ReelErrors: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "reel_errors_total", Help: "Reels that settled with an error",
		}),
		GamesOver: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "game_over_total", Help: "Sessions that ran out of attempts",
		}),
		CycleTime: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "spin_cycle_seconds",
			Help:      "Virtual time from spin request to classification",
			Buckets:   []float64{1, 2, 3, 3.5, 4, 5, 10, 15},
		}),
		Attempts: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "attempts_remaining", Help: "Attempts left in the current session",
		}),
		SessionTime: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "session_seconds",
			Help:      "Virtual session length at game over",
			Buckets:   prometheus.ExponentialBuckets(5, 2, 8),
		}),
	}
}

// EventTypes implements event.Handler
func (c *Collector) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventSessionStarted,
		event.EventSpinStarted,
		event.EventReelSettled,
		event.EventOutcomeClassified,
		event.EventGameOver,
	}
}

// HandleEvent implements event.Handler
func (c *Collector) HandleEvent(ev event.GameEvent) {
	switch ev.Type {
	case event.EventSessionStarted:
		c.Sessions.Inc()
		if p, ok := ev.Payload.(*event.SessionPayload); ok {
			c.Attempts.Set(float64(p.Attempts))
		}

	case event.EventSpinStarted:
		c.Spins.Inc()

	case event.EventReelSettled:
		if p, ok := ev.Payload.(*event.ReelSettledPayload); ok && p.Err != nil {
			c.ReelErrors.Inc()
		}

	case event.EventOutcomeClassified:
		if p, ok := ev.Payload.(*event.OutcomePayload); ok {
			c.Outcomes.WithLabelValues(p.Classification).Inc()
			c.CycleTime.Observe(p.CycleDuration.Seconds())
			c.Attempts.Set(float64(p.Attempts))
		}

	case event.EventGameOver:
		c.GamesOver.Inc()
		if p, ok := ev.Payload.(*event.SessionPayload); ok {
			c.SessionTime.Observe(p.Elapsed.Seconds())
		}
	}
}

// Handler returns the HTTP handler serving this collector's registry
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.Registry, promhttp.HandlerOpts{Registry: c.Registry})
}

// Serve exposes /metrics on addr until ctx is done
func (c *Collector) Serve(ctx context.Context, addr string, log *zap.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	core.Go(func() {
		log.Info("metrics listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	})

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
