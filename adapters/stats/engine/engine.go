package engine

import (
	dstats "handlestats/domain/stats"
	"handlestats/domain/survey"
)

// StatsEngine computes per-metric descriptive stats and handle-vs-handle comparisons
type StatsEngine struct{}

// NewStatsEngine creates a new statistical engine
func NewStatsEngine() *StatsEngine {
	return &StatsEngine{}
}

// Run compares every metric of the dataset, in metric order
func (e *StatsEngine) Run(ds *survey.Dataset) []dstats.MetricComparison {
	results := make([]dstats.MetricComparison, 0, len(survey.Metrics))
	for _, m := range survey.Metrics {
		results = append(results, e.CompareMetric(m, ds.Sample(m)))
	}
	return results
}

// CompareMetric describes each handle's sample and compares every handle pair
func (e *StatsEngine) CompareMetric(m survey.Metric, sample survey.PerHandle[[]float64]) dstats.MetricComparison {
	result := dstats.MetricComparison{
		Metric:      m,
		Comparisons: make([]dstats.PairwiseComparison, 0, len(survey.Pairs)),
	}
	for _, h := range survey.Handles {
		result.Stats[h] = Describe(sample[h])
	}
	for _, pair := range survey.Pairs {
		a, b := pair[0], pair[1]
		result.Comparisons = append(result.Comparisons, Compare(a, b, result.Stats[a], result.Stats[b]))
	}
	return result
}
