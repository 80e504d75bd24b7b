package solver

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Result labels for solvesTotal.
const (
	resultSolved     = "solved"
	resultNoSolution = "no_solution"
	resultError      = "error"
)

var (
	// solvesTotal counts Solve calls.
	// Labels: result (solved, no_solution, error)
	solvesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gocube",
		Subsystem: "solver",
		Name:      "solves_total",
		Help:      "Total solve calls by result",
	}, []string{"result"})

	searchNodes = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "gocube",
		Subsystem: "solver",
		Name:      "nodes",
		Help:      "Nodes expanded per search",
		Buckets:   prometheus.ExponentialBuckets(1000, 4, 10),
	})

	searchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "gocube",
		Subsystem: "solver",
		Name:      "duration_seconds",
		Help:      "Wall-clock time per search in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
	})

	solutionLength = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "gocube",
		Subsystem: "solver",
		Name:      "solution_length",
		Help:      "Number of moves in returned solutions",
		Buckets:   prometheus.LinearBuckets(14, 1, 11),
	})
)

// recordResult updates the solver metrics. sol is nil when no search ran.
func recordResult(result string, sol *Solution) {
	solvesTotal.WithLabelValues(result).Inc()
	if sol == nil {
		return
	}
	searchNodes.Observe(float64(sol.Nodes))
	searchDuration.Observe(sol.Elapsed.Seconds())
	if result == resultSolved {
		solutionLength.Observe(float64(sol.Len()))
	}
}
