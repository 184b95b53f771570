package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector provides application metrics collection
type Collector struct {
	Registry *prometheus.Registry

	// Assessment metrics
	AssessmentsSubmitted  prometheus.Counter
	ValidationFailures    *prometheus.CounterVec
	CalculationDuration   prometheus.Histogram
	SustainabilityRatings *prometheus.CounterVec

	// Navigation metrics
	ScreenTransitions *prometheus.CounterVec
	SignIns           *prometheus.CounterVec
	SessionResets     prometheus.Counter

	// Location metrics
	LocationLookups  *prometheus.CounterVec
	LocationDuration prometheus.Histogram
}

// NewCollector registers all metrics on a fresh registry so several
// collectors can coexist in one process.
func NewCollector(namespace string) *Collector {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Collector{
		Registry: reg,

		AssessmentsSubmitted: f.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "assessments_submitted_total",
				Help:      "Total number of assessments that produced a result",
			},
		),

		ValidationFailures: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "assessment_validation_failures_total",
				Help:      "Rejected assessment submissions by offending field",
			},
			[]string{"field"},
		),

		CalculationDuration: f.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "assessment_calculation_duration_seconds",
				Help:      "Time from submission to result, including the calculating delay",
				Buckets:   []float64{0.01, 0.1, 0.5, 1, 1.5, 2, 3, 5},
			},
		),

		SustainabilityRatings: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "assessment_ratings_total",
				Help:      "Produced results by sustainability rating",
			},
			[]string{"rating"},
		),

		ScreenTransitions: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "screen_transitions_total",
				Help:      "Screen changes by destination screen",
			},
			[]string{"screen"},
		),

		SignIns: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sign_ins_total",
				Help:      "Mock sign-in and sign-up attempts by kind and outcome",
			},
			[]string{"kind", "outcome"},
		),

		SessionResets: f.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "session_idle_resets_total",
				Help:      "Sessions reset by the idle sweep",
			},
		),

		LocationLookups: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "location_lookups_total",
				Help:      "Location lookups by source and outcome",
			},
			[]string{"source", "outcome"},
		),

		LocationDuration: f.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "location_lookup_duration_seconds",
				Help:      "Duration of host location lookups",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 4, 8},
			},
		),
	}
}

// Timer provides timing functionality for operations
type Timer struct {
	start    time.Time
	observer prometheus.Observer
}

// NewTimer creates a new timer
func (c *Collector) NewTimer(histogram prometheus.Observer) *Timer {
	return &Timer{
		start:    time.Now(),
		observer: histogram,
	}
}

// ObserveDuration records the elapsed time since timer creation
func (t *Timer) ObserveDuration() time.Duration {
	duration := time.Since(t.start)
	if t.observer != nil {
		t.observer.Observe(duration.Seconds())
	}
	return duration
}

func (c *Collector) RecordTransition(screen string) {
	c.ScreenTransitions.WithLabelValues(screen).Inc()
}

func (c *Collector) RecordSignIn(kind, outcome string) {
	c.SignIns.WithLabelValues(kind, outcome).Inc()
}

func (c *Collector) RecordValidationFailure(field string) {
	c.ValidationFailures.WithLabelValues(field).Inc()
}

func (c *Collector) RecordAssessment(rating string) {
	c.AssessmentsSubmitted.Inc()
	c.SustainabilityRatings.WithLabelValues(rating).Inc()
}

func (c *Collector) RecordLocation(source, outcome string) {
	c.LocationLookups.WithLabelValues(source, outcome).Inc()
}
