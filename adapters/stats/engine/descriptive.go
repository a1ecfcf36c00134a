package engine

import (
	"math"

	dstats "handlestats/domain/stats"

	"github.com/montanaflynn/stats"
)

// z-score of a two-sided 95% normal interval
const z95 = 1.96

// Describe computes mean, population standard deviation and a 95% CI.
// An empty sample describes as all zeros.
func Describe(sample []float64) dstats.DescriptiveStat {
	n := len(sample)
	if n == 0 {
		return dstats.DescriptiveStat{}
	}

	mean, err := stats.Mean(sample)
	if err != nil || !finite(mean) {
		return dstats.DescriptiveStat{N: n}
	}
	stdDev, err := stats.StandardDeviationPopulation(sample)
	if err != nil || !finite(stdDev) {
		stdDev = 0
	}

	return dstats.DescriptiveStat{
		Mean:   mean,
		StdDev: stdDev,
		N:      n,
		CI:     ConfidenceInterval(mean, stdDev, n),
	}
}

// ConfidenceInterval returns mean ± 1.96·sd/√n, or [0, 0] when n <= 1.
func ConfidenceInterval(mean, stdDev float64, n int) [2]float64 {
	if n <= 1 {
		return [2]float64{}
	}
	margin := z95 * stdDev / math.Sqrt(float64(n))
	return [2]float64{mean - margin, mean + margin}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
