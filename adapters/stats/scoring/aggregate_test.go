package scoring

import (
	"encoding/json"
	"math"
	"testing"

	"handlestats/domain/survey"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullRatings(v, attempts float64) survey.Ratings {
	return survey.Ratings{
		PositioningAccuracy: survey.Some(v),
		Attempts:            survey.Some(attempts),
		Comfort:             survey.Some(v),
		GripSecurity:        survey.Some(v),
		EaseOfUse:           survey.Some(v),
		Intuitiveness:       survey.Some(v),
		OverallSatisfaction: survey.Some(v),
	}
}

func TestWeightsSumToTotal(t *testing.T) {
	sum := 0.0
	for _, w := range Weights {
		sum += w.Weight
	}
	assert.InDelta(t, TotalWeight, sum, 1e-9)
	assert.Len(t, Weights, len(survey.Metrics))
}

func TestScore(t *testing.T) {
	t.Run("all fives and no attempts", func(t *testing.T) {
		assert.InDelta(t, 5.0, Score(fullRatings(5, 0)), 1e-9)
	})

	t.Run("attempts are inverted", func(t *testing.T) {
		assert.InDelta(t, (1.5*3+1.0*(5-2)+1.2*3+3+3+0.8*3+1.5*3)/8.0, Score(fullRatings(3, 2)), 1e-9)
	})

	t.Run("missing answers count as zero", func(t *testing.T) {
		r := survey.Ratings{Comfort: survey.Some(5)}
		assert.InDelta(t, 1.2*5/8.0, Score(r), 1e-9)
		assert.Equal(t, 0.0, Score(survey.Ratings{}), "missing attempts contribute nothing, not the ceiling")
	})
}

func TestTopChoice(t *testing.T) {
	tests := []struct {
		name   string
		scores survey.PerHandle[float64]
		want   survey.Handle
	}{
		{"rectangle and curved tie", survey.PerHandle[float64]{4, 4, 3}, survey.Rectangle},
		{"curved and circle tie", survey.PerHandle[float64]{2, 4, 4}, survey.Curved},
		{"three-way tie", survey.PerHandle[float64]{0, 0, 0}, survey.Rectangle},
		{"circle wins", survey.PerHandle[float64]{1, 2, 3}, survey.Circle},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TopChoice(tt.scores), tt.name)
	}
}

func TestAggregate(t *testing.T) {
	responses := []survey.Response{
		{Row: 1, Ratings: survey.PerHandle[survey.Ratings]{fullRatings(5, 0), fullRatings(4, 1), fullRatings(3, 2)}},
		{Row: 2, Ratings: survey.PerHandle[survey.Ratings]{fullRatings(2, 3), fullRatings(4, 1), {}}},
	}

	agg := Aggregate(responses)
	require.Len(t, agg.Detail, 2)

	rect1, curved, circle1 := Score(responses[0].Ratings[0]), Score(responses[0].Ratings[1]), Score(responses[0].Ratings[2])
	rect2 := Score(responses[1].Ratings[0])

	assert.InDelta(t, (rect1+rect2)/2, agg.Average[survey.Rectangle], 1e-9)
	assert.InDelta(t, curved, agg.Average[survey.Curved], 1e-9)
	assert.InDelta(t, circle1, agg.Average[survey.Circle], 1e-9, "zero circle scores are left out")

	assert.Equal(t, survey.Rectangle, agg.Detail[0].TopChoice)
	assert.Equal(t, survey.Curved, agg.Detail[1].TopChoice)
	assert.Equal(t, survey.PerHandle[int]{1, 1, 0}, agg.TopChoiceCounts)
	assert.Equal(t, 2, agg.Detail[1].Row)
}

func TestAggregate_Empty(t *testing.T) {
	agg := Aggregate(nil)
	assert.Empty(t, agg.Detail)
	assert.Equal(t, survey.PerHandle[float64]{}, agg.Average)
}

func TestScore_NonFiniteClampsToZero(t *testing.T) {
	assert.Equal(t, 0.0, Score(fullRatings(1e308, 0)), "overflow to +Inf")
	assert.Equal(t, 0.0, Score(fullRatings(-1e308, 0)), "overflow to -Inf")
	assert.Equal(t, 0.0, Score(survey.Ratings{
		PositioningAccuracy: survey.Some(math.Inf(1)),
		Comfort:             survey.Some(math.Inf(-1)),
	}), "NaN")
}

func TestAggregate_ExtremeRatings(t *testing.T) {
	// each rectangle score is finite but ten of them overflow the sum
	large := survey.Ratings{
		PositioningAccuracy: survey.Some(1e308),
		GripSecurity:        survey.Some(2e307),
	}
	require.False(t, math.IsInf(Score(large), 0))

	responses := make([]survey.Response, 10)
	for i := range responses {
		responses[i] = survey.Response{
			Row:     i + 1,
			Ratings: survey.PerHandle[survey.Ratings]{large, fullRatings(1e308, 0), fullRatings(-1e308, 0)},
		}
	}

	agg := Aggregate(responses)
	for _, h := range survey.Handles {
		assert.False(t, math.IsNaN(agg.Average[h]) || math.IsInf(agg.Average[h], 0), "average for %s", h)
	}
	for _, d := range agg.Detail {
		for _, h := range survey.Handles {
			assert.False(t, math.IsNaN(d.Scores[h]) || math.IsInf(d.Scores[h], 0), "row %d %s", d.Row, h)
		}
	}
	assert.Equal(t, 0.0, agg.Average[survey.Rectangle])

	_, err := json.Marshal(agg)
	assert.NoError(t, err)
}
