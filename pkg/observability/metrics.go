package observability

import (
	"errors"
	"log/slog"

	"github.com/aretw0/formation/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors of a formation process.
type Metrics struct {
	RoleUpdates     *prometheus.CounterVec
	TrainRuns       *prometheus.CounterVec
	TrainDuration   *prometheus.HistogramVec
	TrainSamples    *prometheus.GaugeVec
	DocumentReads   *prometheus.CounterVec
	PositionQueries *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		RoleUpdates: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "formation_role_updates_total",
				Help: "Total number of role updates by outcome",
			},
			[]string{"method", "result"},
		),
		TrainRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "formation_train_runs_total",
				Help: "Total number of training runs by outcome",
			},
			[]string{"method", "result"},
		),
		TrainDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "formation_train_duration_seconds",
				Help:    "Duration of training runs",
				Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
			},
			[]string{"method"},
		),
		TrainSamples: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "formation_train_samples",
				Help: "Number of samples used by the last training run",
			},
			[]string{"method"},
		),
		DocumentReads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "formation_document_reads_total",
				Help: "Total number of document reads by outcome",
			},
			[]string{"method", "result"},
		),
		PositionQueries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "formation_position_queries_total",
				Help: "Total number of position queries served by transport",
			},
			[]string{"transport"},
		),
	}

	if reg == nil {
		return m, nil
	}
	err := errors.Join(
		reg.Register(m.RoleUpdates),
		reg.Register(m.TrainRuns),
		reg.Register(m.TrainDuration),
		reg.Register(m.TrainSamples),
		reg.Register(m.DocumentReads),
		reg.Register(m.PositionQueries),
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func result(err error, skipped bool) string {
	switch {
	case err != nil:
		return "error"
	case skipped:
		return "skipped"
	default:
		return "ok"
	}
}

// Hooks returns lifecycle hooks that record every event in m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRoleUpdate: func(e *domain.RoleEvent) {
			m.RoleUpdates.WithLabelValues(e.Method, result(e.Err, false)).Inc()
		},
		OnTrain: func(e *domain.TrainEvent) {
			m.TrainRuns.WithLabelValues(e.Method, result(e.Err, e.Skipped)).Inc()
			if e.Skipped {
				return
			}
			m.TrainDuration.WithLabelValues(e.Method).Observe(e.Duration.Seconds())
			if e.Err == nil {
				m.TrainSamples.WithLabelValues(e.Method).Set(float64(e.Samples))
			}
		},
		OnRead: func(e *domain.ReadEvent) {
			m.DocumentReads.WithLabelValues(e.Method, result(e.Err, false)).Inc()
		},
	}
}

// LogHooks returns lifecycle hooks that log every event.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRoleUpdate: func(e *domain.RoleEvent) {
			if e.Err != nil {
				logger.Warn("role_update", "unum", e.Unum, "code", e.Code, "role", e.RoleName, "err", e.Err)
				return
			}
			logger.Debug("role_update", "unum", e.Unum, "code", e.Code, "role", e.RoleName)
		},
		OnTrain: func(e *domain.TrainEvent) {
			logger.Info("train", "method", e.Method, "samples", e.Samples, "duration", e.Duration, "skipped", e.Skipped, "err", e.Err)
		},
		OnRead: func(e *domain.ReadEvent) {
			logger.Info("read", "method", e.Method, "version", e.Version, "samples", e.Samples, "err", e.Err)
		},
	}
}

// MergeHooks returns hooks that call each of hooks in order.
func MergeHooks(hooks ...domain.LifecycleHooks) domain.LifecycleHooks {
	var out domain.LifecycleHooks
	for _, h := range hooks {
		if h.OnRoleUpdate != nil {
			prev, next := out.OnRoleUpdate, h.OnRoleUpdate
			out.OnRoleUpdate = func(e *domain.RoleEvent) {
				if prev != nil {
					prev(e)
				}
				next(e)
			}
		}
		if h.OnTrain != nil {
			prev, next := out.OnTrain, h.OnTrain
			out.OnTrain = func(e *domain.TrainEvent) {
				if prev != nil {
					prev(e)
				}
				next(e)
			}
		}
		if h.OnRead != nil {
			prev, next := out.OnRead, h.OnRead
			out.OnRead = func(e *domain.ReadEvent) {
				if prev != nil {
					prev(e)
				}
				next(e)
			}
		}
	}
	return out
}
