package stats

import (
	"handlestats/domain/survey"

	"github.com/google/uuid"
)

// ============================================================================
// DESCRIPTIVE STATISTICS
// ============================================================================

// DescriptiveStat summarises one (metric, handle) sample.
// INVARIANTS:
// - StdDev is the population standard deviation (divisor n)
// - N <= 1 implies CI == [0, 0]
// - an empty sample is all zeros
type DescriptiveStat struct {
	Mean   float64    `json:"mean"`
	StdDev float64    `json:"stdDev"`
	N      int        `json:"n"`
	CI     [2]float64 `json:"ci"`
}

// Variance returns the population variance.
func (d DescriptiveStat) Variance() float64 {
	return d.StdDev * d.StdDev
}

// ============================================================================
// PAIRWISE COMPARISONS
// ============================================================================

// PValueBucket is a coarse significance band derived from |t| alone.
type PValueBucket string

const (
	PBelow001 PValueBucket = "<0.01"
	PBelow005 PValueBucket = "<0.05"
	PAbove005 PValueBucket = ">0.05"
)

// EffectLabel is the qualitative reading of Cohen's d.
type EffectLabel string

const (
	EffectNegligible EffectLabel = "Negligible"
	EffectSmall      EffectLabel = "Small"
	EffectMedium     EffectLabel = "Medium"
	EffectLarge      EffectLabel = "Large"
)

// PairwiseComparison contrasts two handles on a single metric.
// EffectSize is always >= 0.
type PairwiseComparison struct {
	First       survey.Handle `json:"first"`
	Second      survey.Handle `json:"second"`
	TStatistic  float64       `json:"tStatistic"`
	PValue      PValueBucket  `json:"pValue"`
	EffectSize  float64       `json:"effectSize"`
	EffectLabel EffectLabel   `json:"effectLabel"`
}

// Significant reports whether either the p-value band or the effect size flags the pair.
func (c PairwiseComparison) Significant() bool {
	switch {
	case c.PValue == PBelow001 || c.PValue == PBelow005:
		return true
	case c.EffectLabel == EffectMedium || c.EffectLabel == EffectLarge:
		return true
	default:
		return false
	}
}

// MetricComparison bundles the descriptive stats and pairwise tests of one metric.
type MetricComparison struct {
	Metric      survey.Metric                     `json:"metric"`
	Stats       survey.PerHandle[DescriptiveStat] `json:"stats"`
	Comparisons []PairwiseComparison              `json:"comparisons"`
}

// SignificantComparisons returns the flagged pairs in comparison order.
func (m MetricComparison) SignificantComparisons() []PairwiseComparison {
	var out []PairwiseComparison
	for _, c := range m.Comparisons {
		if c.Significant() {
			out = append(out, c)
		}
	}
	return out
}

// ============================================================================
// AGGREGATE SCORING
// ============================================================================

// ParticipantScore is one participant's composite score per handle.
type ParticipantScore struct {
	Row       int                       `json:"row"`
	Scores    survey.PerHandle[float64] `json:"scores"`
	TopChoice survey.Handle             `json:"topChoice"`
}

// AggregateScores rolls participant scores up per handle.
type AggregateScores struct {
	Average         survey.PerHandle[float64] `json:"average"`
	TopChoiceCounts survey.PerHandle[int]     `json:"topChoiceCounts"`
	Detail          []ParticipantScore        `json:"detail"`
}

// ============================================================================
// DEMOGRAPHICS
// ============================================================================

// GroupStats is the preference summary of participants sharing one factor value.
// MeanRank is 0 for a handle whose RankCount is 0.
type GroupStats struct {
	Value     string                    `json:"value"`
	Count     int                       `json:"count"`
	MeanRank  survey.PerHandle[float64] `json:"meanRank"`
	RankCount survey.PerHandle[int]     `json:"rankCount"`
}

// FactorBreakdown groups participants by one demographic field.
type FactorBreakdown struct {
	Factor string       `json:"factor"`
	Groups []GroupStats `json:"groups"`
}

// DemographicBreakdown lists factors in schema order.
type DemographicBreakdown []FactorBreakdown

// Group looks up the stats of one (factor, value) cell.
func (d DemographicBreakdown) Group(factor, value string) (GroupStats, bool) {
	for _, f := range d {
		if f.Factor != factor {
			continue
		}
		for _, g := range f.Groups {
			if g.Value == value {
				return g, true
			}
		}
	}
	return GroupStats{}, false
}

// ============================================================================
// INSIGHTS AND PROJECTIONS
// ============================================================================

// Insight is one natural-language finding.
type Insight struct {
	Key         string   `json:"key"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Details     []string `json:"details,omitempty"`
}

// MetricMeans is the chart series of one metric.
type MetricMeans struct {
	Metric survey.Metric             `json:"metric"`
	Means  survey.PerHandle[float64] `json:"means"`
}

// VoteCount is the number of participants giving one answer.
type VoteCount struct {
	Answer string `json:"answer"`
	Count  int    `json:"count"`
}

// VoteTally counts answers to one attribute question, in first-seen order.
type VoteTally struct {
	Question string      `json:"question"`
	Counts   []VoteCount `json:"counts"`
}

// FeedbackList collects the non-empty free-text answers of one column.
type FeedbackList struct {
	Column  string   `json:"column"`
	Entries []string `json:"entries"`
}

// Projections are chart-ready views derived from the dataset.
// RankingTallies[h][k] counts participants ranking h in position k+1.
type Projections struct {
	RankingTallies survey.PerHandle[[survey.HandleCount]int] `json:"rankingTallies"`
	MetricMeans    []MetricMeans                             `json:"metricMeans"`
	AttributeVotes []VoteTally                               `json:"attributeVotes"`
	Feedback       []FeedbackList                            `json:"feedback"`
}

// ============================================================================
// RESULT SNAPSHOT
// ============================================================================

// Result is the full output of one analysis run. It is a pure function of the input bytes.
type Result struct {
	DatasetID            uuid.UUID            `json:"datasetId"`
	Participants         int                  `json:"participants"`
	MissingColumns       []string             `json:"missingColumns,omitempty"`
	StatisticalResults   []MetricComparison   `json:"statisticalResults"`
	AggregateScores      AggregateScores      `json:"aggregateScores"`
	DemographicBreakdown DemographicBreakdown `json:"demographicBreakdown"`
	Insights             []Insight            `json:"insights"`
	Projections          Projections          `json:"projections"`
}
