// Package dataset turns a raw survey export into typed responses.
//
// The schema is checked once, against the header row. After that every
// metric is read through named Ratings fields, so a renamed column shows up
// as a missing-column report here rather than as silently absent answers
// further down the pipeline.
package dataset

import (
	"log"
	"strings"

	"handlestats/adapters/coercer"
	"handlestats/adapters/excel"
	"handlestats/domain/survey"
	apperrors "handlestats/internal/errors"

	"github.com/google/uuid"
)

// namespace for content-derived dataset IDs
var datasetNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("handlestats/dataset"))

// Options tune parsing.
type Options struct {
	// StrictHeaders turns missing schema columns into a SCHEMA_DRIFT error.
	// Otherwise they are logged and their answers read as absent.
	StrictHeaders bool
	// Delimiter pins the field separator; zero auto-detects.
	Delimiter rune
}

// Normalizer parses survey exports against a fixed schema.
type Normalizer struct {
	schema  survey.Schema
	coercer *coercer.TypeCoercer
	reader  *excel.DataReader
	opts    Options
}

// NewNormalizer creates a normalizer for schema.
func NewNormalizer(schema survey.Schema, opts Options) *Normalizer {
	reader := excel.NewDataReader()
	if opts.Delimiter != 0 {
		reader = reader.WithDelimiter(opts.Delimiter)
	}
	return &Normalizer{
		schema:  schema,
		coercer: coercer.ForSchema(schema),
		reader:  reader,
		opts:    opts,
	}
}

// DatasetID derives a stable identifier from the raw export bytes.
func DatasetID(raw []byte) uuid.UUID {
	return uuid.NewSHA1(datasetNamespace, raw)
}

// Parse reads raw export bytes into a Dataset.
func (n *Normalizer) Parse(raw []byte) (*survey.Dataset, error) {
	table, err := n.reader.ReadData(raw)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to read survey export")
	}
	return n.Normalize(table, DatasetID(raw))
}

// Normalize types every row of table and builds the responses.
func (n *Normalizer) Normalize(table *excel.Table, id uuid.UUID) (*survey.Dataset, error) {
	missing := n.MissingColumns(table.Headers)
	if len(missing) > 0 {
		if n.opts.StrictHeaders {
			return nil, apperrors.SchemaDrift(missing)
		}
		log.Printf("[Normalizer] %d expected column(s) missing, answers will read as absent: %q", len(missing), missing)
	}

	ds := &survey.Dataset{
		ID:             id,
		Headers:        table.Headers,
		Responses:      make([]survey.Response, 0, len(table.Rows)),
		MissingColumns: missing,
	}
	for i, row := range table.Rows {
		ds.Responses = append(ds.Responses, n.buildResponse(i+1, table.Headers, row))
	}
	return ds, nil
}

// MissingColumns lists the required schema columns absent from headers, in schema order.
func (n *Normalizer) MissingColumns(headers []string) []string {
	present := make(map[string]bool, len(headers))
	for _, h := range headers {
		present[h] = true
	}
	var missing []string
	for _, col := range n.schema.RequiredColumns() {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	return missing
}

func (n *Normalizer) buildResponse(index int, headers []string, row excel.RawRow) survey.Response {
	fields := make(map[string]survey.Value, len(headers))
	for i, h := range headers {
		// headers arrive deduplicated from the reader
		fields[h] = n.coercer.CoerceValue(h, row.Cell(i))
	}

	resp := survey.Response{
		Row:          index,
		Demographics: textFields(fields, n.schema.Demographics),
		Votes:        textFields(fields, n.schema.Votes),
		Feedback:     textFields(fields, n.schema.Feedback),
		Fields:       fields,
	}
	for _, h := range survey.Handles {
		resp.Ratings[h] = n.ratings(fields, h)
		resp.Rank[h] = fields[n.schema.Ranks.For(h)].Optional()
	}
	return resp
}

func (n *Normalizer) ratings(fields map[string]survey.Value, h survey.Handle) survey.Ratings {
	get := func(m survey.Metric) survey.Optional {
		return fields[n.schema.Metrics.For(m).For(h)].Optional()
	}
	return survey.Ratings{
		PositioningAccuracy: get(survey.PositioningAccuracy),
		Attempts:            get(survey.NumberOfAttempts),
		Comfort:             get(survey.Comfort),
		GripSecurity:        get(survey.GripSecurity),
		EaseOfUse:           get(survey.EaseOfUse),
		Intuitiveness:       get(survey.Intuitiveness),
		OverallSatisfaction: get(survey.OverallSatisfaction),
	}
}

// textFields keeps the trimmed, non-empty answers of the named columns.
func textFields(fields map[string]survey.Value, columns []string) map[string]string {
	out := make(map[string]string, len(columns))
	for _, col := range columns {
		if text := strings.TrimSpace(fields[col].Text()); text != "" {
			out[col] = text
		}
	}
	return out
}
