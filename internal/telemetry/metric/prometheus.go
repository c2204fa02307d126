// Package metric provides Prometheus metrics for redislight.
package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "redislight"

// Command outcome labels.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Registry holds all application metrics.
// A nil *Registry is valid and records nothing.
type Registry struct {
	registry *prometheus.Registry

	CommandsTotal   *prometheus.CounterVec
	CommandDuration *prometheus.HistogramVec
	Keys            prometheus.Gauge
	ExpiringKeys    prometheus.Gauge
	ExpiredKeys     prometheus.Counter
}

// NewRegistry creates and registers all metrics.
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
		CommandsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Evaluated commands by name and outcome",
		}, []string{"command", "status"}),
		CommandDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "command_duration_seconds",
			Help:      "Command evaluation latency including the expiry sweep",
			Buckets:   []float64{.00001, .00005, .0001, .0005, .001, .005, .01},
		}, []string{"command"}),
		Keys: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "keys",
			Help:      "Number of keys in the store",
		}),
		ExpiringKeys: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "expiring_keys",
			Help:      "Number of keys with a pending expiry deadline",
		}),
		ExpiredKeys: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "expired_keys_total",
			Help:      "Keys evicted by the expiry sweep",
		}),
	}

	r.registry.MustRegister(
		r.CommandsTotal,
		r.CommandDuration,
		r.Keys,
		r.ExpiringKeys,
		r.ExpiredKeys,
	)
	return r
}

// ObserveCommand records one evaluated command.
func (r *Registry) ObserveCommand(command, status string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.CommandsTotal.WithLabelValues(command, status).Inc()
	r.CommandDuration.WithLabelValues(command).Observe(elapsed.Seconds())
}

// SetKeys records the current keyspace size and how many of those keys
// carry a deadline.
func (r *Registry) SetKeys(keys, expiring int) {
	if r == nil {
		return
	}
	r.Keys.Set(float64(keys))
	r.ExpiringKeys.Set(float64(expiring))
}

// AddExpired records keys evicted by a sweep.
func (r *Registry) AddExpired(n int) {
	if r == nil || n == 0 {
		return
	}
	r.ExpiredKeys.Add(float64(n))
}

// Gatherer exposes the underlying registry.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile writes all metrics to path in the Prometheus text format.
// The file is written to a temporary name and renamed into place.
func (r *Registry) WriteTextfile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, r.registry)
}
