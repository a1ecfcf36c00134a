// Package testkit builds synthetic survey exports for tests and demos.
package testkit

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"handlestats/domain/survey"
)

// SurveyBuilder assembles a survey export one participant at a time.
type SurveyBuilder struct {
	schema  survey.Schema
	columns []string
	rows    []map[string]string
}

// NewSurveyBuilder creates a builder whose header covers every column of schema.
func NewSurveyBuilder(schema survey.Schema) *SurveyBuilder {
	cols := schema.RequiredColumns()
	cols = append(cols, schema.Demographics...)
	cols = append(cols, schema.Votes...)
	cols = append(cols, schema.Feedback...)
	return &SurveyBuilder{schema: schema, columns: cols}
}

// Schema returns the schema the builder writes against.
func (b *SurveyBuilder) Schema() survey.Schema {
	return b.schema
}

// WithoutColumn drops a column from the header, simulating header drift.
func (b *SurveyBuilder) WithoutColumn(name string) *SurveyBuilder {
	kept := b.columns[:0]
	for _, c := range b.columns {
		if c != name {
			kept = append(kept, c)
		}
	}
	b.columns = kept
	return b
}

// Participant starts a new row.
func (b *SurveyBuilder) Participant() *ParticipantBuilder {
	row := make(map[string]string)
	b.rows = append(b.rows, row)
	return &ParticipantBuilder{schema: b.schema, row: row}
}

// Len returns the number of participants added so far.
func (b *SurveyBuilder) Len() int {
	return len(b.rows)
}

// Bytes renders the export with the given delimiter.
func (b *SurveyBuilder) Bytes(comma rune) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = comma
	_ = w.Write(b.columns)
	for _, row := range b.rows {
		record := make([]string, len(b.columns))
		for i, c := range b.columns {
			record[i] = row[c]
		}
		_ = w.Write(record)
	}
	w.Flush()
	return buf.Bytes()
}

// CSV renders the export comma-separated.
func (b *SurveyBuilder) CSV() []byte {
	return b.Bytes(',')
}

// ParticipantBuilder fills one row. Unset cells stay empty.
type ParticipantBuilder struct {
	schema survey.Schema
	row    map[string]string
}

// Rate sets the answer to m for handle h.
func (p *ParticipantBuilder) Rate(h survey.Handle, m survey.Metric, v float64) *ParticipantBuilder {
	return p.Set(p.schema.Metrics.For(m).For(h), formatFloat(v))
}

// RateAll sets the same answer to every non-attempt metric for h, with the given attempts.
func (p *ParticipantBuilder) RateAll(h survey.Handle, v float64, attempts int) *ParticipantBuilder {
	for _, m := range survey.Metrics {
		if m.IsAttempt() {
			p.Rate(h, m, float64(attempts))
			continue
		}
		p.Rate(h, m, v)
	}
	return p
}

// Rank sets the preference rank of h.
func (p *ParticipantBuilder) Rank(h survey.Handle, rank int) *ParticipantBuilder {
	return p.Set(p.schema.Ranks.For(h), strconv.Itoa(rank))
}

// Set writes raw text into any column.
func (p *ParticipantBuilder) Set(column, text string) *ParticipantBuilder {
	p.row[column] = text
	return p
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
