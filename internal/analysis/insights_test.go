package analysis

import (
	"testing"

	dstats "handlestats/domain/stats"
	"handlestats/domain/survey"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func comparison(m survey.Metric, means survey.PerHandle[float64], flagged ...dstats.PairwiseComparison) dstats.MetricComparison {
	mc := dstats.MetricComparison{Metric: m}
	for _, h := range survey.Handles {
		mc.Stats[h] = dstats.DescriptiveStat{Mean: means[h], N: 5}
	}
	for _, pair := range survey.Pairs {
		c := dstats.PairwiseComparison{First: pair[0], Second: pair[1], PValue: dstats.PAbove005, EffectLabel: dstats.EffectNegligible}
		for _, f := range flagged {
			if f.First == pair[0] && f.Second == pair[1] {
				c = f
			}
		}
		mc.Comparisons = append(mc.Comparisons, c)
	}
	return mc
}

func keys(insights []dstats.Insight) []string {
	out := make([]string, 0, len(insights))
	for _, i := range insights {
		out = append(out, i.Key)
	}
	return out
}

func TestSynthesize_NothingComputed(t *testing.T) {
	insights := Synthesize(Inputs{})
	assert.NotNil(t, insights)
	assert.Empty(t, insights)
}

func TestSynthesize_AllInsights(t *testing.T) {
	large := dstats.PairwiseComparison{
		First: survey.Rectangle, Second: survey.Curved,
		TStatistic: 3.06, PValue: dstats.PBelow001, EffectSize: 2.5, EffectLabel: dstats.EffectLarge,
	}
	medium := dstats.PairwiseComparison{
		First: survey.Curved, Second: survey.Circle,
		TStatistic: 1.1, PValue: dstats.PAbove005, EffectSize: 0.6, EffectLabel: dstats.EffectMedium,
	}
	in := Inputs{
		Statistical: []dstats.MetricComparison{
			comparison(survey.PositioningAccuracy, survey.PerHandle[float64]{4, 2.33, 4.67}, large),
			comparison(survey.Comfort, survey.PerHandle[float64]{3, 3.5, 3.2}),
			comparison(survey.GripSecurity, survey.PerHandle[float64]{3.1, 3.3, 2.8}, medium),
			comparison(survey.EaseOfUse, survey.PerHandle[float64]{4, 4, 1}, large),
		},
		Aggregate: &dstats.AggregateScores{
			Average:         survey.PerHandle[float64]{3.2, 4.1, 3.9},
			TopChoiceCounts: survey.PerHandle[int]{1, 2, 1},
			Detail:          make([]dstats.ParticipantScore, 4),
		},
		Demographics: dstats.DemographicBreakdown{
			{Factor: "Gender", Groups: []dstats.GroupStats{
				{Value: "Female", Count: 2, MeanRank: survey.PerHandle[float64]{2, 1.5, 2.5}, RankCount: survey.PerHandle[int]{2, 2, 2}},
				{Value: "Male", Count: 2, MeanRank: survey.PerHandle[float64]{0, 1.2, 2}, RankCount: survey.PerHandle[int]{0, 2, 2}},
			}},
		},
	}

	insights := Synthesize(in)
	require.Equal(t, []string{
		InsightBestOverall,
		InsightMostPreferred,
		InsightSignificant,
		InsightDemographicTrend,
		InsightWeakestMetric,
	}, keys(insights))

	assert.Contains(t, insights[0].Title, "Curved Handle")
	assert.Contains(t, insights[1].Description, "2 of 4 participants (50.0%)")

	sig := insights[2]
	assert.Equal(t, "Significant differences in Positioning Accuracy and Grip Security", sig.Title)
	assert.Contains(t, sig.Description, "plus 1 more")
	require.Len(t, sig.Details, 3)
	assert.Equal(t, "Positioning Accuracy: Rectangle Handle vs Curved Handle (t = 3.06, p <0.01, d = 2.50 Large)", sig.Details[0])

	trend := insights[3]
	assert.Contains(t, trend.Description, "Gender = Male")
	assert.Contains(t, trend.Description, "Curved Handle")
	assert.Contains(t, trend.Description, "1.20", "a zero mean with no ranks is not a preference")

	weakest := insights[4]
	assert.Contains(t, weakest.Title, "Grip Security")
	assert.Contains(t, weakest.Description, "Curved Handle")
}

func TestBestOverall_TieGoesToEarlierHandle(t *testing.T) {
	in := Inputs{Aggregate: &dstats.AggregateScores{
		Average: survey.PerHandle[float64]{4, 4, 3},
		Detail:  make([]dstats.ParticipantScore, 1),
	}}
	insights := bestOverall(in)
	require.Len(t, insights, 1)
	assert.Contains(t, insights[0].Title, "Rectangle Handle")
}

func TestSignificantDifferences_NoneFlagged(t *testing.T) {
	in := Inputs{Statistical: []dstats.MetricComparison{
		comparison(survey.Comfort, survey.PerHandle[float64]{3, 3, 3}),
	}}
	assert.Empty(t, significantDifferences(in))
}

func TestWeakestMetric_SkipsUnobservedMetrics(t *testing.T) {
	unobserved := dstats.MetricComparison{Metric: survey.Intuitiveness}
	in := Inputs{Statistical: []dstats.MetricComparison{
		unobserved,
		comparison(survey.Comfort, survey.PerHandle[float64]{3, 3.5, 3.2}),
	}}
	insights := weakestMetric(in)
	require.Len(t, insights, 1)
	assert.Contains(t, insights[0].Title, "Comfort")
}
