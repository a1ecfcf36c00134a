package app

import (
	"handlestats/adapters/stats/crosstab"
	"handlestats/adapters/stats/engine"
	"handlestats/adapters/stats/scoring"
	dstats "handlestats/domain/stats"
	"handlestats/domain/survey"
	"handlestats/internal/analysis"
	"handlestats/internal/dataset"
)

// AnalysisService runs the full statistics pipeline over one survey export.
// It holds no per-run state; every call recomputes from its input.
type AnalysisService struct {
	schema     survey.Schema
	normalizer *dataset.Normalizer
	engine     *engine.StatsEngine
}

// NewAnalysisService creates an analysis service for schema
func NewAnalysisService(schema survey.Schema, opts dataset.Options) *AnalysisService {
	return &AnalysisService{
		schema:     schema,
		normalizer: dataset.NewNormalizer(schema, opts),
		engine:     engine.NewStatsEngine(),
	}
}

// Schema returns the column schema the service parses against
func (s *AnalysisService) Schema() survey.Schema {
	return s.schema
}

// Analyze parses raw export bytes and computes the result snapshot
func (s *AnalysisService) Analyze(raw []byte) (*dstats.Result, error) {
	ds, err := s.normalizer.Parse(raw)
	if err != nil {
		return nil, err
	}
	return s.AnalyzeDataset(ds), nil
}

// AnalyzeDataset computes the result snapshot of an already parsed dataset.
// Parser output feeds the engine, scorer and cross-tabulator; the insight
// synthesizer reads all three.
func (s *AnalysisService) AnalyzeDataset(ds *survey.Dataset) *dstats.Result {
	var responses []survey.Response
	if ds != nil {
		responses = ds.Responses
	}

	statistical := s.engine.Run(ds)
	aggregate := scoring.Aggregate(responses)
	demographics := crosstab.Breakdown(responses, s.schema.Demographics)

	result := &dstats.Result{
		Participants:         len(responses),
		StatisticalResults:   statistical,
		AggregateScores:      aggregate,
		DemographicBreakdown: demographics,
		Insights: analysis.Synthesize(analysis.Inputs{
			Statistical:  statistical,
			Aggregate:    &aggregate,
			Demographics: demographics,
		}),
		Projections: analysis.Project(ds, s.schema, statistical),
	}
	if ds != nil {
		result.DatasetID = ds.ID
		result.MissingColumns = ds.MissingColumns
	}
	return result
}
