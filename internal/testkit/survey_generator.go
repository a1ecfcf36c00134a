package testkit

import (
	"math"
	"math/rand"

	"handlestats/domain/survey"
)

// SurveyGeneratorConfig configures the synthetic survey generator
type SurveyGeneratorConfig struct {
	Participants int                       `json:"participants"`
	Seed         int64                     `json:"seed"`
	Bias         survey.PerHandle[float64] `json:"bias"`   // Mean rating per handle on the 1-5 scale
	Spread       float64                   `json:"spread"` // Standard deviation of ratings
	MissingRate  float64                   `json:"missing_rate"`
}

// DefaultSurveyConfig returns a small study where the curved handle leads
func DefaultSurveyConfig() SurveyGeneratorConfig {
	return SurveyGeneratorConfig{
		Participants: 24,
		Seed:         42,
		Bias:         survey.PerHandle[float64]{3.4, 4.1, 3.0},
		Spread:       0.8,
		MissingRate:  0.03,
	}
}

var (
	genders      = []string{"Female", "Male", "Non-binary"}
	hands        = []string{"Right", "Left"}
	ageRanges    = []string{"18-24", "25-34", "35-44", "45+"}
	likedPhrases = []string{"Solid feel", "Easy to find by touch", "Good texture", ""}
	fixPhrases   = []string{"Smaller edges", "Softer material", "", "Wider grip"}
)

// SurveyGenerator produces reproducible survey exports
type SurveyGenerator struct {
	config SurveyGeneratorConfig
	rng    *rand.Rand
}

// NewSurveyGenerator creates a new generator
func NewSurveyGenerator(config SurveyGeneratorConfig) *SurveyGenerator {
	return &SurveyGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// Generate fills a builder with the configured number of participants
func (g *SurveyGenerator) Generate(schema survey.Schema) *SurveyBuilder {
	b := NewSurveyBuilder(schema)
	for i := 0; i < g.config.Participants; i++ {
		g.generateParticipant(b.Participant())
	}
	return b
}

func (g *SurveyGenerator) generateParticipant(p *ParticipantBuilder) {
	var taste survey.PerHandle[float64]
	for _, h := range survey.Handles {
		taste[h] = g.config.Bias[h] + g.rng.NormFloat64()*g.config.Spread
		for _, m := range survey.Metrics {
			if g.rng.Float64() < g.config.MissingRate {
				continue
			}
			if m.IsAttempt() {
				// better liked handles take fewer attempts
				p.Rate(h, m, float64(clampInt(int(math.Round(5-taste[h]+g.rng.NormFloat64()*0.5)), 1, 5)))
				continue
			}
			p.Rate(h, m, float64(clampInt(int(math.Round(taste[h]+g.rng.NormFloat64()*0.4)), 1, 5)))
		}
	}

	for h, rank := range rankOrder(taste) {
		p.Rank(survey.Handle(h), rank)
	}

	s := p.schema
	if len(s.Demographics) > 0 {
		p.Set(s.Demographics[0], pick(g.rng, genders))
	}
	if len(s.Demographics) > 1 {
		p.Set(s.Demographics[1], pick(g.rng, hands))
	}
	if len(s.Demographics) > 2 {
		p.Set(s.Demographics[2], pick(g.rng, ageRanges))
	}
	for _, q := range s.Votes {
		p.Set(q, g.vote(taste).String())
	}
	if len(s.Feedback) > 0 {
		p.Set(s.Feedback[0], pick(g.rng, likedPhrases))
	}
	if len(s.Feedback) > 1 {
		p.Set(s.Feedback[1], pick(g.rng, fixPhrases))
	}
}

// vote picks the favourite handle most of the time and a random one otherwise
func (g *SurveyGenerator) vote(taste survey.PerHandle[float64]) survey.Handle {
	if g.rng.Float64() < 0.25 {
		return survey.Handles[g.rng.Intn(survey.HandleCount)]
	}
	best := survey.Rectangle
	for _, h := range survey.Handles {
		if taste[h] > taste[best] {
			best = h
		}
	}
	return best
}

// rankOrder turns taste scores into 1-based ranks, 1 for the highest
func rankOrder(taste survey.PerHandle[float64]) survey.PerHandle[int] {
	var ranks survey.PerHandle[int]
	for _, h := range survey.Handles {
		rank := 1
		for _, other := range survey.Handles {
			if taste[other] > taste[h] || (taste[other] == taste[h] && other < h) {
				rank++
			}
		}
		ranks[h] = rank
	}
	return ranks
}

func pick(rng *rand.Rand, options []string) string {
	return options[rng.Intn(len(options))]
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
