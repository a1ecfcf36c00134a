package survey

// HandleColumns names the column holding one question for each handle.
type HandleColumns struct {
	Rectangle string `yaml:"rectangle" json:"rectangle" validate:"required"`
	Curved    string `yaml:"curved" json:"curved" validate:"required"`
	Circle    string `yaml:"circle" json:"circle" validate:"required"`
}

// For returns the column name used for h.
func (c HandleColumns) For(h Handle) string {
	switch h {
	case Rectangle:
		return c.Rectangle
	case Curved:
		return c.Curved
	case Circle:
		return c.Circle
	default:
		return ""
	}
}

// All returns the three column names in handle order.
func (c HandleColumns) All() []string {
	return []string{c.Rectangle, c.Curved, c.Circle}
}

// SuffixedColumns builds the bare/_1/_2 column set for a question.
func SuffixedColumns(question string) HandleColumns {
	return HandleColumns{
		Rectangle: question + Rectangle.Suffix(),
		Curved:    question + Curved.Suffix(),
		Circle:    question + Circle.Suffix(),
	}
}

// BracketedColumns builds the "question [Handle Name]" column set used by grid questions.
func BracketedColumns(question string) HandleColumns {
	return HandleColumns{
		Rectangle: question + " [" + Rectangle.String() + "]",
		Curved:    question + " [" + Curved.String() + "]",
		Circle:    question + " [" + Circle.String() + "]",
	}
}

// MetricColumns maps every metric to its per-handle columns.
type MetricColumns struct {
	PositioningAccuracy HandleColumns `yaml:"positioning_accuracy" json:"positioning_accuracy"`
	NumberOfAttempts    HandleColumns `yaml:"number_of_attempts" json:"number_of_attempts"`
	Comfort             HandleColumns `yaml:"comfort" json:"comfort"`
	GripSecurity        HandleColumns `yaml:"grip_security" json:"grip_security"`
	EaseOfUse           HandleColumns `yaml:"ease_of_use" json:"ease_of_use"`
	Intuitiveness       HandleColumns `yaml:"intuitiveness" json:"intuitiveness"`
	OverallSatisfaction HandleColumns `yaml:"overall_satisfaction" json:"overall_satisfaction"`
}

// For returns the column set of m.
func (c MetricColumns) For(m Metric) HandleColumns {
	switch m {
	case PositioningAccuracy:
		return c.PositioningAccuracy
	case NumberOfAttempts:
		return c.NumberOfAttempts
	case Comfort:
		return c.Comfort
	case GripSecurity:
		return c.GripSecurity
	case EaseOfUse:
		return c.EaseOfUse
	case Intuitiveness:
		return c.Intuitiveness
	case OverallSatisfaction:
		return c.OverallSatisfaction
	default:
		return HandleColumns{}
	}
}

// Schema is the fixed set of column names a survey export must provide.
// Column names are matched verbatim, including stray whitespace.
type Schema struct {
	Metrics      MetricColumns `yaml:"metrics" json:"metrics"`
	Ranks        HandleColumns `yaml:"ranks" json:"ranks"`
	Demographics []string      `yaml:"demographics" json:"demographics" validate:"dive,required"`
	Votes        []string      `yaml:"votes" json:"votes" validate:"dive,required"`
	Feedback     []string      `yaml:"feedback" json:"feedback" validate:"dive,required"`
}

// DefaultSchema describes the standard handle comparison survey export.
func DefaultSchema() Schema {
	return Schema{
		Metrics: MetricColumns{
			PositioningAccuracy: SuffixedColumns(PositioningAccuracy.String()),
			NumberOfAttempts:    SuffixedColumns(NumberOfAttempts.String()),
			Comfort:             SuffixedColumns(Comfort.String()),
			GripSecurity:        SuffixedColumns(GripSecurity.String()),
			EaseOfUse:           SuffixedColumns(EaseOfUse.String()),
			Intuitiveness:       SuffixedColumns(Intuitiveness.String()),
			OverallSatisfaction: SuffixedColumns(OverallSatisfaction.String()),
		},
		Ranks: BracketedColumns("Please rank the handles in order of preference"),
		Demographics: []string{
			"Gender",
			"Dominant Hand",
			"Age Range",
		},
		Votes: []string{
			"Which handle felt the most secure?",
			"Which handle was the easiest to position?",
			"Which handle would you choose for daily use?",
		},
		Feedback: []string{
			"What did you like about the handles?",
			"What would you improve about the handles?",
		},
	}
}

// AttemptColumns lists the columns that receive leading-digit extraction.
func (s Schema) AttemptColumns() []string {
	return s.Metrics.NumberOfAttempts.All()
}

// RequiredColumns lists every column the statistics depend on.
func (s Schema) RequiredColumns() []string {
	cols := make([]string, 0, (len(Metrics)+1)*HandleCount)
	for _, m := range Metrics {
		cols = append(cols, s.Metrics.For(m).All()...)
	}
	return append(cols, s.Ranks.All()...)
}
