// Package crosstab breaks preference ranks down by demographic group.
package crosstab

import (
	dstats "handlestats/domain/stats"
	"handlestats/domain/survey"
)

// Breakdown computes, for every factor and every value it takes, the mean
// preference rank per handle. Groups appear in first-seen order. Absent and
// zero ranks are skipped; valid ranks start at 1.
func Breakdown(responses []survey.Response, factors []string) dstats.DemographicBreakdown {
	out := make(dstats.DemographicBreakdown, 0, len(factors))
	for _, factor := range factors {
		fb := dstats.FactorBreakdown{Factor: factor, Groups: []dstats.GroupStats{}}
		for _, value := range distinctValues(responses, factor) {
			fb.Groups = append(fb.Groups, groupStats(responses, factor, value))
		}
		out = append(out, fb)
	}
	return out
}

func distinctValues(responses []survey.Response, factor string) []string {
	seen := make(map[string]bool)
	var values []string
	for _, r := range responses {
		v, ok := r.Demographics[factor]
		if !ok || v == "" || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	return values
}

func groupStats(responses []survey.Response, factor, value string) dstats.GroupStats {
	g := dstats.GroupStats{Value: value}
	var sums survey.PerHandle[float64]
	for _, r := range responses {
		if r.Demographics[factor] != value {
			continue
		}
		g.Count++
		for _, h := range survey.Handles {
			rank := r.Rank[h]
			if !rank.Valid || rank.Value == 0 {
				continue
			}
			sums[h] += rank.Value
			g.RankCount[h]++
		}
	}
	for _, h := range survey.Handles {
		if g.RankCount[h] > 0 {
			g.MeanRank[h] = sums[h] / float64(g.RankCount[h])
		}
	}
	return g
}
