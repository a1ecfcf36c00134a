package analysis

import (
	"math"

	dstats "handlestats/domain/stats"
	"handlestats/domain/survey"
)

// Project derives the chart-ready views of a dataset.
func Project(ds *survey.Dataset, schema survey.Schema, statistical []dstats.MetricComparison) dstats.Projections {
	var responses []survey.Response
	if ds != nil {
		responses = ds.Responses
	}
	return dstats.Projections{
		RankingTallies: rankingTallies(responses),
		MetricMeans:    metricMeans(statistical),
		AttributeVotes: voteTallies(responses, schema.Votes),
		Feedback:       feedbackLists(responses, schema.Feedback),
	}
}

// rankingTallies counts whole-number ranks from 1 to HandleCount; anything else is ignored.
func rankingTallies(responses []survey.Response) survey.PerHandle[[survey.HandleCount]int] {
	var tallies survey.PerHandle[[survey.HandleCount]int]
	for _, r := range responses {
		for _, h := range survey.Handles {
			rank := r.Rank[h]
			if !rank.Valid || rank.Value != math.Trunc(rank.Value) {
				continue
			}
			if rank.Value < 1 || rank.Value > survey.HandleCount {
				continue
			}
			tallies[h][int(rank.Value)-1]++
		}
	}
	return tallies
}

func metricMeans(statistical []dstats.MetricComparison) []dstats.MetricMeans {
	out := make([]dstats.MetricMeans, 0, len(statistical))
	for _, mc := range statistical {
		mm := dstats.MetricMeans{Metric: mc.Metric}
		for _, h := range survey.Handles {
			mm.Means[h] = mc.Stats[h].Mean
		}
		out = append(out, mm)
	}
	return out
}

func voteTallies(responses []survey.Response, questions []string) []dstats.VoteTally {
	out := make([]dstats.VoteTally, 0, len(questions))
	for _, q := range questions {
		tally := dstats.VoteTally{Question: q, Counts: []dstats.VoteCount{}}
		index := make(map[string]int)
		for _, r := range responses {
			answer, ok := r.Votes[q]
			if !ok {
				continue
			}
			i, seen := index[answer]
			if !seen {
				i = len(tally.Counts)
				index[answer] = i
				tally.Counts = append(tally.Counts, dstats.VoteCount{Answer: answer})
			}
			tally.Counts[i].Count++
		}
		out = append(out, tally)
	}
	return out
}

func feedbackLists(responses []survey.Response, columns []string) []dstats.FeedbackList {
	out := make([]dstats.FeedbackList, 0, len(columns))
	for _, col := range columns {
		list := dstats.FeedbackList{Column: col, Entries: []string{}}
		for _, r := range responses {
			if text, ok := r.Feedback[col]; ok {
				list.Entries = append(list.Entries, text)
			}
		}
		out = append(out, list)
	}
	return out
}
