// Package telemetry exposes Prometheus counters for the assistant.
package telemetry

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jonathan/interview-assistant/internal/types"
)

// Collaborator names used as the collaborator label.
const (
	CollaboratorExtraction    = "extraction"
	CollaboratorTranscription = "transcription"
	CollaboratorCompletion    = "completion"
	CollaboratorSessionStore  = "session_store"
	CollaboratorJobFetch      = "job_fetch"
)

// Metrics holds the assistant's collectors on a private registry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	questions         *prometheus.CounterVec
	collaboratorFails *prometheus.CounterVec
	resumeUploads     prometheus.Counter
	jobsAdded         *prometheus.CounterVec
	httpRequests      *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
}

// New creates and registers all collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		questions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "interview_assistant",
			Name:      "questions_total",
			Help:      "Answered questions by classified type.",
		}, []string{"type"}),
		collaboratorFails: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "interview_assistant",
			Name:      "collaborator_errors_total",
			Help:      "Failed calls to external collaborators.",
		}, []string{"collaborator"}),
		resumeUploads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "interview_assistant",
			Name:      "resume_uploads_total",
			Help:      "Résumés successfully extracted and stored.",
		}),
		jobsAdded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "interview_assistant",
			Name:      "jobs_added_total",
			Help:      "Job contexts stored, by input shape.",
		}, []string{"source"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "interview_assistant",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "interview_assistant",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"route"}),
	}

	m.registry.MustRegister(
		m.questions,
		m.collaboratorFails,
		m.resumeUploads,
		m.jobsAdded,
		m.httpRequests,
		m.httpDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// Export a zero for every type so rate() works before the first answer.
	for _, qt := range types.AllQuestionTypes {
		m.questions.WithLabelValues(string(qt))
	}
	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// QuestionAnswered counts an answered question.
func (m *Metrics) QuestionAnswered(questionType string) {
	if m == nil {
		return
	}
	m.questions.WithLabelValues(questionType).Inc()
}

// CollaboratorFailed counts a failed collaborator call.
func (m *Metrics) CollaboratorFailed(collaborator string) {
	if m == nil {
		return
	}
	m.collaboratorFails.WithLabelValues(collaborator).Inc()
}

// ResumeUploaded counts a stored résumé.
func (m *Metrics) ResumeUploaded() {
	if m == nil {
		return
	}
	m.resumeUploads.Inc()
}

// JobAdded counts a stored job context.
func (m *Metrics) JobAdded(source string) {
	if m == nil {
		return
	}
	m.jobsAdded.WithLabelValues(source).Inc()
}

// ObserveRequest records one HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}
