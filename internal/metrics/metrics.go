package metrics

import (
	"net/http"
	"time"
	"webui-harness/pkg/apperr"
	"webui-harness/pkg/session"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "webui_harness"

const (
	OutcomeOK      = "ok"
	OutcomeError   = "error"
	OutcomeTimeout = "timeout"
	OutcomeClosed  = "closed"
)

var (
	metricSessionStarts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_starts_total",
		Help:      "Remote session start attempts by outcome.",
	}, []string{"outcome"})
	metricSessionStops = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_stops_total",
		Help:      "Remote session releases by outcome.",
	}, []string{"outcome"})
	metricActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "sessions_active",
		Help:      "Number of remote sessions currently started.",
	})
	metricCommands = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "commands_total",
		Help:      "Commands issued against remote sessions by command and outcome.",
	}, []string{"command", "outcome"})
	metricCommandDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "command_duration_seconds",
		Help:      "Round-trip time of remote session commands.",
		Buckets:   prometheus.ExponentialBuckets(0.005, 2, 14),
	}, []string{"command"})
	metricRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "scenario_runs_total",
		Help:      "Scenario runs by final status.",
	}, []string{"status"})
	metricRunDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "scenario_run_duration_seconds",
		Help:      "Wall time of scenario runs, session set up and teardown included.",
		Buckets:   prometheus.ExponentialBuckets(0.25, 2, 10),
	}, []string{"status"})
)

func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case apperr.Is(err, apperr.CodeTimeout):
		return OutcomeTimeout
	case apperr.Is(err, apperr.CodeSessionClosed):
		return OutcomeClosed
	default:
		return OutcomeError
	}
}

func ObserveSessionStart(err error) {
	metricSessionStarts.WithLabelValues(Outcome(err)).Inc()

	if err == nil {
		metricActiveSessions.Inc()
	}
}

func ObserveSessionStop(err error) {
	metricSessionStops.WithLabelValues(Outcome(err)).Inc()
	metricActiveSessions.Dec()
}

func ObserveCommand(command string, elapsed time.Duration, err error) {
	metricCommands.WithLabelValues(command, Outcome(err)).Inc()
	metricCommandDuration.WithLabelValues(command).Observe(elapsed.Seconds())
}

func ObserveRun(status string, elapsed time.Duration) {
	metricRuns.WithLabelValues(status).Inc()
	metricRunDuration.WithLabelValues(status).Observe(elapsed.Seconds())
}

// Observer records session lifecycle and command events as Prometheus
// metrics.
type Observer struct{}

var _ session.Observer = Observer{}

func NewObserver() session.Observer {
	return Observer{}
}

func (Observer) SessionStarted(err error) {
	ObserveSessionStart(err)
}

func (Observer) SessionStopped(err error) {
	ObserveSessionStop(err)
}

func (Observer) CommandDone(command string, elapsed time.Duration, err error) {
	ObserveCommand(command, elapsed, err)
}

func Handler() http.Handler {
	return promhttp.Handler()
}
