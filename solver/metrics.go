package solver

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	solvesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "timetable_solver",
		Name:      "solves_total",
		Help:      "Number of Solve calls, partitioned by constructor and outcome.",
	}, []string{"constructor", "outcome"})

	solveDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "timetable_solver",
		Name:      "solve_duration_seconds",
		Help:      "Wall-clock time spent in Solve, by constructor.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"constructor"})

	solutionPenalty = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "timetable_solver",
		Name:      "last_solution_penalty",
		Help:      "Total penalty of the most recently produced solution.",
	})

	unassignedSections = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "timetable_solver",
		Name:      "last_unassigned_sections",
		Help:      "Count of sections left without a room in the most recent solution.",
	})
)

func constructorLabel(useBeamSearch bool) string {
	if useBeamSearch {
		return "beam"
	}
	return "one_pass"
}

func recordSolve(useBeamSearch bool, seconds float64, sol Solution, err error) {
	constructor := constructorLabel(useBeamSearch)
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	solvesTotal.WithLabelValues(constructor, outcome).Inc()
	solveDuration.WithLabelValues(constructor).Observe(seconds)
	if err == nil {
		solutionPenalty.Set(sol.Penalty)
		unassignedSections.Set(float64(sol.UnassignedCount))
	}
}
