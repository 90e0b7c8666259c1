// Package metrics exports retry session events as Prometheus metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/saltfishpr/retrier/retry"
)

// PrometheusConfig is a config of the Prometheus metrics recorded for retry
// sessions.
//
// An instance can be created only by the [Prometheus] function. The zero value is invalid.
type PrometheusConfig struct {
	// Namespace of the metrics.
	Namespace string
	// Subsystem of the metrics.
	Subsystem string
	// Options for the attempts counter.
	Attempts prometheus.CounterOpts
	// Options for the failures counter.
	Failures prometheus.CounterOpts
	// Options for the sessions counter, labeled by outcome.
	Sessions prometheus.CounterOpts
	// Options for the retry delay histogram, in seconds.
	RetryDelay prometheus.HistogramOpts
	// Options for the session duration histogram, in seconds.
	SessionDuration prometheus.HistogramOpts

	registerer prometheus.Registerer
}

// Prometheus returns a [PrometheusConfig] with the provided registerer. If registerer is nil,
// metrics will not be registered. Default parameters can be changed by passing configuration
// functions.
func Prometheus(
	registerer prometheus.Registerer,
	configFuncs ...func(c *PrometheusConfig),
) *PrometheusConfig {
	const (
		namespace = "retrier"
		subsystem = ""
	)

	c := PrometheusConfig{
		registerer: registerer,
		Namespace:  namespace,
		Subsystem:  subsystem,
		Attempts: prometheus.CounterOpts{
			Name: "attempts_total",
			Help: "Number of operation invocations",
		},
		Failures: prometheus.CounterOpts{
			Name: "failures_total",
			Help: "Number of failed operation invocations",
		},
		Sessions: prometheus.CounterOpts{
			Name: "sessions_total",
			Help: "Number of finished retry sessions by outcome",
		},
		RetryDelay: prometheus.HistogramOpts{
			Name:    "retry_delay_seconds",
			Help:    "Delay applied before re-attempting an operation",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 18),
		},
		SessionDuration: prometheus.HistogramOpts{
			Name:    "session_duration_seconds",
			Help:    "Duration of retry sessions from first attempt to outcome",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 18),
		},
	}

	for _, cf := range configFuncs {
		if cf != nil {
			cf(&c)
		}
	}

	return &c
}

// Observer builds the metrics and returns an observer recording into them.
// It panics if registration fails, like prometheus.MustRegister.
func (c *PrometheusConfig) Observer() *Observer {
	c.Attempts.Namespace, c.Attempts.Subsystem = c.Namespace, c.Subsystem
	c.Failures.Namespace, c.Failures.Subsystem = c.Namespace, c.Subsystem
	c.Sessions.Namespace, c.Sessions.Subsystem = c.Namespace, c.Subsystem
	c.RetryDelay.Namespace, c.RetryDelay.Subsystem = c.Namespace, c.Subsystem
	c.SessionDuration.Namespace, c.SessionDuration.Subsystem = c.Namespace, c.Subsystem

	o := Observer{
		attempts:        prometheus.NewCounter(c.Attempts),
		failures:        prometheus.NewCounter(c.Failures),
		sessions:        prometheus.NewCounterVec(c.Sessions, []string{"outcome"}),
		retryDelay:      prometheus.NewHistogram(c.RetryDelay),
		sessionDuration: prometheus.NewHistogram(c.SessionDuration),
	}

	if c.registerer != nil {
		c.registerer.MustRegister(
			o.attempts,
			o.failures,
			o.sessions,
			o.retryDelay,
			o.sessionDuration,
		)
	}

	return &o
}

// Observer implements retry.Observer. A single Observer may be shared by any
// number of concurrent sessions.
type Observer struct {
	attempts        prometheus.Counter
	failures        prometheus.Counter
	sessions        *prometheus.CounterVec
	retryDelay      prometheus.Histogram
	sessionDuration prometheus.Histogram
}

var _ retry.Observer = (*Observer)(nil)

func (o *Observer) OnAttempt(int) {
	o.attempts.Inc()
}

func (o *Observer) OnFailure(int, error) {
	o.failures.Inc()
}

func (o *Observer) OnRetry(_ int, delay time.Duration) {
	o.retryDelay.Observe(delay.Seconds())
}

func (o *Observer) OnDone(outcome retry.Outcome, _ int, elapsed time.Duration) {
	o.sessions.WithLabelValues(outcome.String()).Inc()
	o.sessionDuration.Observe(elapsed.Seconds())
}
