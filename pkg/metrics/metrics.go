package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// Slot generation metrics
	SlotsGenerated        *prometheus.CounterVec
	SlotGenerationLatency prometheus.Histogram

	// Booking lifecycle metrics
	BookingsCreated      *prometheus.CounterVec
	BookingTransitions   *prometheus.CounterVec
	BookingConflicts     prometheus.Counter
	TransitionViolations prometheus.Counter

	// Calendar metrics
	CalendarViews     *prometheus.CounterVec
	CalendarCacheHits *prometheus.CounterVec
}

// NewMetrics creates and registers all application metrics
func NewMetrics(namespace, subsystem string) *Metrics {
	return &Metrics{
		SlotsGenerated: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "slots_generated_total",
			Help:      "Total number of slots produced by the generator, by state",
		}, []string{"state"}),
		SlotGenerationLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "slot_generation_duration_seconds",
			Help:      "Time spent expanding templates into slots",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}),
		BookingsCreated: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "bookings_created_total",
			Help:      "Total number of bookings created, by initial status",
		}, []string{"status"}),
		BookingTransitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "booking_transitions_total",
			Help:      "Total number of booking lifecycle transitions",
		}, []string{"from", "to"}),
		BookingConflicts: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "booking_conflicts_total",
			Help:      "Total number of creates rejected by the overlap guard",
		}),
		TransitionViolations: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "booking_transition_violations_total",
			Help:      "Total number of rejected lifecycle transitions",
		}),
		CalendarViews: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "calendar_views_total",
			Help:      "Total number of calendar views rendered",
		}, []string{"view"}),
		CalendarCacheHits: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "calendar_cache_hits_total",
			Help:      "Calendar memoization cache hits and misses",
		}, []string{"result"}),
	}
}
