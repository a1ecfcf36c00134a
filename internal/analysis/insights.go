package analysis

import (
	"fmt"
	"strings"

	dstats "handlestats/domain/stats"
	"handlestats/domain/survey"

	"gonum.org/v1/gonum/floats"
)

// Insight keys, in report order
const (
	InsightBestOverall      = "best_overall"
	InsightMostPreferred    = "most_preferred"
	InsightSignificant      = "significant_differences"
	InsightDemographicTrend = "demographic_trend"
	InsightWeakestMetric    = "weakest_metric"
)

// metrics named in the significance headline
const significantMetricsNamed = 2

// Inputs are the computed sections the synthesizer reads. A nil or empty
// section suppresses the insights that depend on it.
type Inputs struct {
	Statistical  []dstats.MetricComparison
	Aggregate    *dstats.AggregateScores
	Demographics dstats.DemographicBreakdown
}

type insightRule func(Inputs) []dstats.Insight

var rules = []insightRule{
	bestOverall,
	mostPreferred,
	significantDifferences,
	demographicTrend,
	weakestMetric,
}

// Synthesize derives the natural-language findings, in a fixed order.
func Synthesize(in Inputs) []dstats.Insight {
	insights := []dstats.Insight{}
	for _, rule := range rules {
		insights = append(insights, rule(in)...)
	}
	return insights
}

func bestOverall(in Inputs) []dstats.Insight {
	if in.Aggregate == nil || len(in.Aggregate.Detail) == 0 {
		return nil
	}
	avg := in.Aggregate.Average
	best := survey.Handle(floats.MaxIdx(avg[:]))
	return []dstats.Insight{{
		Key:   InsightBestOverall,
		Title: fmt.Sprintf("%s scores best overall", best),
		Description: fmt.Sprintf("%s has the highest average weighted score (%.2f out of 5) across %d participants.",
			best, avg[best], len(in.Aggregate.Detail)),
	}}
}

func mostPreferred(in Inputs) []dstats.Insight {
	if in.Aggregate == nil || len(in.Aggregate.Detail) == 0 {
		return nil
	}
	var counts [survey.HandleCount]float64
	for _, h := range survey.Handles {
		counts[h] = float64(in.Aggregate.TopChoiceCounts[h])
	}
	best := survey.Handle(floats.MaxIdx(counts[:]))
	total := len(in.Aggregate.Detail)
	votes := in.Aggregate.TopChoiceCounts[best]
	return []dstats.Insight{{
		Key:   InsightMostPreferred,
		Title: fmt.Sprintf("%s is the most common top choice", best),
		Description: fmt.Sprintf("%s scored highest for %d of %d participants (%.1f%%).",
			best, votes, total, 100*float64(votes)/float64(total)),
	}}
}

func significantDifferences(in Inputs) []dstats.Insight {
	var names []string
	var details []string
	for _, mc := range in.Statistical {
		flagged := mc.SignificantComparisons()
		if len(flagged) == 0 {
			continue
		}
		names = append(names, mc.Metric.String())
		for _, c := range flagged {
			details = append(details, describeComparison(mc.Metric, c))
		}
	}
	if len(names) == 0 {
		return nil
	}

	named := names
	if len(named) > significantMetricsNamed {
		named = named[:significantMetricsNamed]
	}
	description := fmt.Sprintf("Handles differ meaningfully on %s.", strings.Join(named, " and "))
	if extra := len(names) - len(named); extra > 0 {
		description = fmt.Sprintf("Handles differ meaningfully on %s, plus %d more metric(s).", strings.Join(named, " and "), extra)
	}
	return []dstats.Insight{{
		Key:         InsightSignificant,
		Title:       fmt.Sprintf("Significant differences in %s", strings.Join(named, " and ")),
		Description: description,
		Details:     details,
	}}
}

func describeComparison(m survey.Metric, c dstats.PairwiseComparison) string {
	return fmt.Sprintf("%s: %s vs %s (t = %.2f, p %s, d = %.2f %s)",
		m, c.First, c.Second, c.TStatistic, c.PValue, c.EffectSize, c.EffectLabel)
}

// demographicTrend reports the group with the single lowest mean rank for any handle.
func demographicTrend(in Inputs) []dstats.Insight {
	found := false
	var bestFactor string
	var bestGroup dstats.GroupStats
	var bestHandle survey.Handle

	for _, f := range in.Demographics {
		for _, g := range f.Groups {
			for _, h := range survey.Handles {
				if g.RankCount[h] == 0 {
					continue
				}
				if !found || g.MeanRank[h] < bestGroup.MeanRank[bestHandle] {
					found = true
					bestFactor, bestGroup, bestHandle = f.Factor, g, h
				}
			}
		}
	}
	if !found {
		return nil
	}
	return []dstats.Insight{{
		Key:   InsightDemographicTrend,
		Title: fmt.Sprintf("%s: %s prefers %s", bestFactor, bestGroup.Value, bestHandle),
		Description: fmt.Sprintf("Participants with %s = %s gave %s an average rank of %.2f (%d participants), the strongest preference of any group.",
			bestFactor, bestGroup.Value, bestHandle, bestGroup.MeanRank[bestHandle], bestGroup.Count),
	}}
}

// weakestMetric finds each metric's leading handle and reports the metric
// whose leader has the lowest mean.
func weakestMetric(in Inputs) []dstats.Insight {
	found := false
	var weakest survey.Metric
	var leader survey.Handle
	var leaderMean float64

	for _, mc := range in.Statistical {
		var means [survey.HandleCount]float64
		observed := false
		for _, h := range survey.Handles {
			means[h] = mc.Stats[h].Mean
			observed = observed || mc.Stats[h].N > 0
		}
		if !observed {
			continue
		}
		champ := survey.Handle(floats.MaxIdx(means[:]))
		if !found || means[champ] < leaderMean {
			found = true
			weakest, leader, leaderMean = mc.Metric, champ, means[champ]
		}
	}
	if !found {
		return nil
	}
	return []dstats.Insight{{
		Key:   InsightWeakestMetric,
		Title: fmt.Sprintf("%s is the weakest area", weakest),
		Description: fmt.Sprintf("Even the best handle on %s, %s, averages only %.2f, the lowest leading score of any metric.",
			weakest, leader, leaderMean),
	}}
}
