package engine

import (
	"math"

	dstats "handlestats/domain/stats"
	"handlestats/domain/survey"
)

// |t| cut-offs for the p-value bands. These stand in for a t-distribution
// lookup and ignore degrees of freedom.
const (
	tCritical001 = 2.7
	tCritical005 = 2.0
)

// Cohen's conventional effect size boundaries
const (
	effectSmall  = 0.2
	effectMedium = 0.5
	effectLarge  = 0.8
)

// Compare contrasts two handles from their descriptive stats
func Compare(first, second survey.Handle, a, b dstats.DescriptiveStat) dstats.PairwiseComparison {
	t := TStatistic(a, b)
	d := CohensD(a, b)
	return dstats.PairwiseComparison{
		First:       first,
		Second:      second,
		TStatistic:  t,
		PValue:      BucketPValue(t),
		EffectSize:  d,
		EffectLabel: LabelEffect(d),
	}
}

// TStatistic computes Welch's t = (mean1 - mean2) / sqrt(var1/n1 + var2/n2) using
// population variances. Empty groups and zero standard error give 0.
func TStatistic(a, b dstats.DescriptiveStat) float64 {
	if a.N == 0 || b.N == 0 {
		return 0
	}
	se := math.Sqrt(a.Variance()/float64(a.N) + b.Variance()/float64(b.N))
	if se == 0 || !finite(se) {
		return 0
	}
	t := (a.Mean - b.Mean) / se
	if !finite(t) {
		return 0
	}
	return t
}

// BucketPValue maps |t| to a coarse p-value band
func BucketPValue(t float64) dstats.PValueBucket {
	absT := math.Abs(t)
	switch {
	case absT > tCritical001:
		return dstats.PBelow001
	case absT > tCritical005:
		return dstats.PBelow005
	default:
		return dstats.PAbove005
	}
}

// CohensD computes |mean1 - mean2| / pooled SD, where pooled SD weights each
// group's own variance by n-1. Degenerate inputs give 0.
func CohensD(a, b dstats.DescriptiveStat) float64 {
	if a.N == 0 || b.N == 0 {
		return 0
	}
	dof := float64(a.N + b.N - 2)
	if dof <= 0 {
		return 0
	}
	pooledSD := math.Sqrt((float64(a.N-1)*a.Variance() + float64(b.N-1)*b.Variance()) / dof)
	if pooledSD == 0 || !finite(pooledSD) {
		return 0
	}
	d := math.Abs(a.Mean-b.Mean) / pooledSD
	if !finite(d) {
		return 0
	}
	return d
}

// LabelEffect reads d against Cohen's thresholds
func LabelEffect(d float64) dstats.EffectLabel {
	switch {
	case d < effectSmall:
		return dstats.EffectNegligible
	case d < effectMedium:
		return dstats.EffectSmall
	case d < effectLarge:
		return dstats.EffectMedium
	default:
		return dstats.EffectLarge
	}
}
