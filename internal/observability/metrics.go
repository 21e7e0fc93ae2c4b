// Package observability exposes the Prometheus collectors and the process logger.
package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Summary update outcomes.
const (
	SummaryUpdated = "updated"
	SummarySkipped = "skipped"
	SummaryFailed  = "failed"
)

var (
	intakeLogsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hydration",
		Subsystem: "intake",
		Name:      "logs_recorded_total",
		Help:      "Intake logs recorded, by beverage type.",
	}, []string{"beverage"})
	intakeVolumeTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "hydration",
		Subsystem: "intake",
		Name:      "volume_ml_total",
		Help:      "Raw volume of all recorded intake logs in millilitres.",
	})
	summaryUpdatesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hydration",
		Subsystem: "summary",
		Name:      "updates_total",
		Help:      "Daily summary recomputations, by outcome.",
	}, []string{"result"})
	goalsMetTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "hydration",
		Subsystem: "summary",
		Name:      "goal_met_recomputations_total",
		Help:      "Summary recomputations that ended with the daily goal met.",
	})
	achievementsUnlockedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hydration",
		Subsystem: "achievements",
		Name:      "unlocked_total",
		Help:      "Achievements unlocked, by code.",
	}, []string{"code"})
	httpRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "hydration",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by method, route and status.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

func init() {
	prometheus.MustRegister(
		intakeLogsTotal,
		intakeVolumeTotal,
		summaryUpdatesTotal,
		goalsMetTotal,
		achievementsUnlockedTotal,
		httpRequestDuration,
	)
}

// RecordIntake counts a stored intake log.
func RecordIntake(beverage string, amountMl int) {
	intakeLogsTotal.WithLabelValues(beverage).Inc()
	intakeVolumeTotal.Add(float64(amountMl))
}

// RecordSummaryUpdate counts a summary recomputation outcome.
func RecordSummaryUpdate(result string, goalMet bool) {
	summaryUpdatesTotal.WithLabelValues(result).Inc()
	if goalMet {
		goalsMetTotal.Inc()
	}
}

// RecordAchievementUnlocked counts a newly unlocked achievement.
func RecordAchievementUnlocked(code string) {
	achievementsUnlockedTotal.WithLabelValues(code).Inc()
}

// ObserveHTTPRequest records the latency of a served request.
func ObserveHTTPRequest(method, route string, status int, d time.Duration) {
	httpRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}
