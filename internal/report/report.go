package report

import (
	"bytes"
	"fmt"
	"strings"

	dstats "handlestats/domain/stats"
	"handlestats/domain/survey"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// Title heads every rendered report
const Title = "Handle Comparison Survey Results"

// Markdown renders the result as a Markdown document. Sections whose data is
// empty are omitted.
func Markdown(r *dstats.Result) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "# %s\n\n", Title)
	if r == nil {
		b.WriteString("_No results._\n")
		return b.Bytes()
	}

	fmt.Fprintf(&b, "Participants: **%d**\n\n", r.Participants)
	if len(r.MissingColumns) > 0 {
		cols := make([]string, len(r.MissingColumns))
		for i, c := range r.MissingColumns {
			cols[i] = escape(c)
		}
		fmt.Fprintf(&b, "> Missing columns: %s\n\n", strings.Join(cols, ", "))
	}

	writeInsights(&b, r.Insights)
	writeAggregate(&b, r.AggregateScores, r.Participants)
	writeStatistics(&b, r.StatisticalResults)
	writeRankings(&b, r.Projections.RankingTallies, r.Participants)
	writeDemographics(&b, r.DemographicBreakdown)
	writeVotes(&b, r.Projections.AttributeVotes)
	writeFeedback(&b, r.Projections.Feedback)
	return b.Bytes()
}

// HTML renders the Markdown report to an HTML fragment.
func HTML(r *dstats.Result) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.ToHTML(Markdown(r), p, renderer)
}

func writeInsights(b *bytes.Buffer, insights []dstats.Insight) {
	if len(insights) == 0 {
		return
	}
	b.WriteString("## Key Insights\n\n")
	for _, in := range insights {
		fmt.Fprintf(b, "### %s\n\n%s\n\n", escape(in.Title), escape(in.Description))
		for _, d := range in.Details {
			fmt.Fprintf(b, "- %s\n", escape(d))
		}
		if len(in.Details) > 0 {
			b.WriteString("\n")
		}
	}
}

func writeAggregate(b *bytes.Buffer, agg dstats.AggregateScores, participants int) {
	if participants == 0 {
		return
	}
	b.WriteString("## Aggregate Scores\n\n")
	b.WriteString("| Handle | Average Score | Top Choice |\n|---|---:|---:|\n")
	for _, h := range survey.Handles {
		fmt.Fprintf(b, "| %s | %.2f | %d (%s) |\n", h, agg.Average[h], agg.TopChoiceCounts[h], percent(agg.TopChoiceCounts[h], participants))
	}
	b.WriteString("\n")
}

func writeStatistics(b *bytes.Buffer, results []dstats.MetricComparison) {
	if len(results) == 0 {
		return
	}
	b.WriteString("## Statistical Comparison\n\n")
	for _, mc := range results {
		fmt.Fprintf(b, "### %s\n\n", mc.Metric)
		b.WriteString("| Handle | Mean | SD | 95% CI | N |\n|---|---:|---:|---|---:|\n")
		for _, h := range survey.Handles {
			s := mc.Stats[h]
			fmt.Fprintf(b, "| %s | %.2f | %.2f | [%.2f, %.2f] | %d |\n", h, s.Mean, s.StdDev, s.CI[0], s.CI[1], s.N)
		}
		b.WriteString("\n| Comparison | t | p | Cohen's d | Effect |\n|---|---:|---|---:|---|\n")
		for _, c := range mc.Comparisons {
			marker := ""
			if c.Significant() {
				marker = ` \*`
			}
			fmt.Fprintf(b, "| %s vs %s%s | %.2f | %s | %.2f | %s |\n",
				c.First, c.Second, marker, c.TStatistic, escape(string(c.PValue)), c.EffectSize, c.EffectLabel)
		}
		b.WriteString("\n")
	}
}

func writeRankings(b *bytes.Buffer, tallies survey.PerHandle[[survey.HandleCount]int], participants int) {
	if participants == 0 {
		return
	}
	b.WriteString("## Preference Rankings\n\n| Handle | 1st | 2nd | 3rd |\n|---|---:|---:|---:|\n")
	for _, h := range survey.Handles {
		t := tallies[h]
		fmt.Fprintf(b, "| %s | %d | %d | %d |\n", h, t[0], t[1], t[2])
	}
	b.WriteString("\n")
}

func writeDemographics(b *bytes.Buffer, breakdown dstats.DemographicBreakdown) {
	if len(breakdown) == 0 {
		return
	}
	b.WriteString("## Demographic Breakdown\n\n")
	for _, f := range breakdown {
		if len(f.Groups) == 0 {
			continue
		}
		fmt.Fprintf(b, "### %s\n\n", escape(f.Factor))
		b.WriteString("| Group | Count |")
		for _, h := range survey.Handles {
			fmt.Fprintf(b, " %s mean rank |", h)
		}
		b.WriteString("\n|---|---:|---:|---:|---:|\n")
		for _, g := range f.Groups {
			fmt.Fprintf(b, "| %s | %d |", escape(g.Value), g.Count)
			for _, h := range survey.Handles {
				if g.RankCount[h] == 0 {
					b.WriteString(" - |")
					continue
				}
				fmt.Fprintf(b, " %.2f |", g.MeanRank[h])
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
}

func writeVotes(b *bytes.Buffer, votes []dstats.VoteTally) {
	if len(votes) == 0 {
		return
	}
	b.WriteString("## Attribute Votes\n\n")
	for _, v := range votes {
		fmt.Fprintf(b, "**%s**\n\n", escape(v.Question))
		for _, c := range v.Counts {
			fmt.Fprintf(b, "- %s: %d\n", escape(c.Answer), c.Count)
		}
		b.WriteString("\n")
	}
}

func writeFeedback(b *bytes.Buffer, feedback []dstats.FeedbackList) {
	if len(feedback) == 0 {
		return
	}
	b.WriteString("## Participant Feedback\n\n")
	for _, f := range feedback {
		if len(f.Entries) == 0 {
			continue
		}
		fmt.Fprintf(b, "**%s**\n\n", escape(f.Column))
		for _, e := range f.Entries {
			fmt.Fprintf(b, "> %s\n\n", escape(oneLine(e)))
		}
	}
}

func percent(n, total int) string {
	if total == 0 {
		return "0%"
	}
	return fmt.Sprintf("%.0f%%", 100*float64(n)/float64(total))
}

var escaper = strings.NewReplacer(
	`\`, `\\`,
	`|`, `\|`,
	`*`, `\*`,
	`_`, `\_`,
	"`", "\\`",
	`<`, `\<`,
	`>`, `\>`,
	`[`, `\[`,
	`]`, `\]`,
)

// escape neutralises Markdown syntax in survey-supplied text.
func escape(s string) string {
	return escaper.Replace(s)
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
