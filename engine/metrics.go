package engine

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/ftahirops/ttop/model"
)

// MetricsStore exposes the latest snapshot as Prometheus gauges for the
// optional scrape endpoint. It holds no history; every tick overwrites
// the previous values.
type MetricsStore struct {
	registry *prometheus.Registry

	cpu   *prometheus.GaugeVec
	mem   *prometheus.GaugeVec
	tasks *prometheus.GaugeVec

	uptime prometheus.Gauge
	users  prometheus.Gauge
}

// NewMetricsStore creates a store with a private registry so the
// endpoint serves only ttop's own gauges.
func NewMetricsStore() *MetricsStore {
	s := &MetricsStore{registry: prometheus.NewRegistry()}

	s.cpu = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "ttop", Name: "cpu_percent",
		Help: "Whole-system CPU percentages by mode.",
	}, []string{"mode"})
	s.mem = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "ttop", Name: "memory_mib",
		Help: "System memory figures in MiB.",
	}, []string{"kind"})
	s.tasks = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "ttop", Name: "tasks",
		Help: "Process counts by task state.",
	}, []string{"state"})
	s.uptime = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "ttop", Name: "uptime_seconds",
		Help: "Host uptime in seconds.",
	})
	s.users = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "ttop", Name: "user_sessions",
		Help: "Logged-in user sessions.",
	})

	s.registry.MustRegister(s.cpu, s.mem, s.tasks, s.uptime, s.users)
	return s
}

// Update overwrites the gauges with the latest tick's values.
func (s *MetricsStore) Update(snap *model.Snapshot, rates map[int32]float64) {
	s.cpu.WithLabelValues("util").Set(snap.CPU.UtilPct)
	s.cpu.WithLabelValues("idle").Set(snap.CPU.IdlePct)
	s.cpu.WithLabelValues("user").Set(snap.CPU.UserPct)
	s.cpu.WithLabelValues("privileged").Set(snap.CPU.PrivilegedPct)
	s.cpu.WithLabelValues("interrupt").Set(snap.CPU.InterruptPct)

	s.mem.WithLabelValues("total").Set(snap.Memory.TotalMB)
	s.mem.WithLabelValues("free").Set(snap.Memory.FreeMB)
	s.mem.WithLabelValues("in_use").Set(snap.Memory.InUseMB())
	s.mem.WithLabelValues("cached").Set(snap.Memory.CachedMB)
	s.mem.WithLabelValues("committed").Set(snap.Memory.CommittedMB)
	s.mem.WithLabelValues("commit_limit").Set(snap.Memory.CommitLimitMB)

	s.tasks.WithLabelValues("total").Set(float64(snap.Tasks.Total))
	s.tasks.WithLabelValues("running").Set(float64(snap.Tasks.Running))
	s.tasks.WithLabelValues("ready").Set(float64(snap.Tasks.Ready))
	s.tasks.WithLabelValues("suspended").Set(float64(snap.Tasks.Suspended))
	s.tasks.WithLabelValues("wait").Set(float64(snap.Tasks.Wait))

	s.uptime.Set(snap.UptimeSec)
	s.users.Set(float64(snap.Users))
}

// Handler serves the scrape endpoint.
func (s *MetricsStore) Handler() http.Handler {
	return promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})
}

// Serve runs the scrape endpoint until the context is cancelled.
func (s *MetricsStore) Serve(ctx context.Context, addr string, log zerolog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", s.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutCtx)
	}()

	log.Info().Str("addr", addr).Msg("metrics endpoint listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
