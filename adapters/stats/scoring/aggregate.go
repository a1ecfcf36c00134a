// Package scoring rolls each participant's ratings into one weighted score per handle.
package scoring

import (
	"math"

	dstats "handlestats/domain/stats"
	"handlestats/domain/survey"

	"gonum.org/v1/gonum/floats"
)

const (
	// TotalWeight is the sum of every metric weight.
	TotalWeight = 8.0
	// AttemptCeiling is the attempt count that scores zero.
	AttemptCeiling = 5.0
)

// Weight is the contribution of one metric to the composite score.
type Weight struct {
	Metric survey.Metric
	Weight float64
}

// Weights lists every scored metric. Attempts are inverted before weighting.
var Weights = []Weight{
	{survey.PositioningAccuracy, 1.5},
	{survey.NumberOfAttempts, 1.0},
	{survey.Comfort, 1.2},
	{survey.GripSecurity, 1.0},
	{survey.EaseOfUse, 1.0},
	{survey.Intuitiveness, 0.8},
	{survey.OverallSatisfaction, 1.5},
}

// Score computes the weighted composite of one handle's ratings. Missing
// answers contribute 0, which pulls incomplete rows down. A composite that
// overflows to a non-finite value scores 0.
func Score(r survey.Ratings) float64 {
	sum := 0.0
	for _, w := range Weights {
		sum += w.Weight * contribution(r, w.Metric)
	}
	return finiteOrZero(sum / TotalWeight)
}

func contribution(r survey.Ratings, m survey.Metric) float64 {
	v := r.Get(m)
	if !v.Valid {
		return 0
	}
	if m.IsAttempt() {
		return AttemptCeiling - v.Value
	}
	return v.Value
}

// TopChoice returns the highest scoring handle. Ties go to the earlier handle.
func TopChoice(scores survey.PerHandle[float64]) survey.Handle {
	return survey.Handle(floats.MaxIdx(scores[:]))
}

// Aggregate scores every participant and summarises per handle.
//
// The circle handle's average skips zero scores while the other two average
// over every participant; the report has always been computed this way.
func Aggregate(responses []survey.Response) dstats.AggregateScores {
	out := dstats.AggregateScores{
		Detail: make([]dstats.ParticipantScore, 0, len(responses)),
	}
	if len(responses) == 0 {
		return out
	}

	var columns survey.PerHandle[[]float64]
	for _, r := range responses {
		var scores survey.PerHandle[float64]
		for _, h := range survey.Handles {
			scores[h] = Score(r.Ratings[h])
			columns[h] = append(columns[h], scores[h])
		}
		top := TopChoice(scores)
		out.TopChoiceCounts[top]++
		out.Detail = append(out.Detail, dstats.ParticipantScore{
			Row:       r.Row,
			Scores:    scores,
			TopChoice: top,
		})
	}

	out.Average[survey.Rectangle] = mean(columns[survey.Rectangle])
	out.Average[survey.Curved] = mean(columns[survey.Curved])
	out.Average[survey.Circle] = mean(nonZero(columns[survey.Circle]))
	return out
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return finiteOrZero(floats.Sum(values) / float64(len(values)))
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func nonZero(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if v != 0 {
			out = append(out, v)
		}
	}
	return out
}
