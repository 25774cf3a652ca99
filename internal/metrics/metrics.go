// Package metrics records intake and question-generation activity.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Question generation statuses.
const (
	StatusOK       = "ok"
	StatusDegraded = "degraded"
)

// Recorder receives observations from the chat surfaces and the question generator.
type Recorder interface {
	ObserveTurn(step, outcome string)
	ObserveQuestions(provider, status string, duration time.Duration)
	ObserveSession(result string)
}

// Nop discards all observations.
type Nop struct{}

func (Nop) ObserveTurn(string, string) {}

func (Nop) ObserveQuestions(string, string, time.Duration) {}

func (Nop) ObserveSession(string) {}

// PrometheusRecorder implements Recorder on top of Prometheus collectors.
type PrometheusRecorder struct {
	turnsTotal        *prometheus.CounterVec
	questionsTotal    *prometheus.CounterVec
	questionsDuration *prometheus.HistogramVec
	sessionsTotal     *prometheus.CounterVec
}

// NewPrometheusRecorder registers the collectors with reg. Pass
// prometheus.DefaultRegisterer in production and a fresh registry in tests.
func NewPrometheusRecorder(reg prometheus.Registerer) *PrometheusRecorder {
	factory := promauto.With(reg)

	return &PrometheusRecorder{
		turnsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "talentscout_turns_total",
				Help: "Total number of processed user turns by intake step and outcome",
			},
			[]string{"step", "outcome"},
		),
		questionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "talentscout_questions_total",
				Help: "Total number of technical question generations by provider and status",
			},
			[]string{"provider", "status"},
		),
		questionsDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "talentscout_question_duration_seconds",
				Help:    "Duration of technical question generation calls in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"provider"},
		),
		sessionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "talentscout_sessions_total",
				Help: "Total number of finished intake sessions by result",
			},
			[]string{"result"},
		),
	}
}

// ObserveTurn counts a processed turn.
func (p *PrometheusRecorder) ObserveTurn(step, outcome string) {
	p.turnsTotal.WithLabelValues(step, outcome).Inc()
}

// ObserveQuestions records a question generation call.
func (p *PrometheusRecorder) ObserveQuestions(provider, status string, duration time.Duration) {
	if provider == "" {
		provider = "none"
	}
	p.questionsTotal.WithLabelValues(provider, status).Inc()
	p.questionsDuration.WithLabelValues(provider).Observe(duration.Seconds())
}

// ObserveSession counts a finished session.
func (p *PrometheusRecorder) ObserveSession(result string) {
	p.sessionsTotal.WithLabelValues(result).Inc()
}
