package survey

import "github.com/google/uuid"

// Ratings are one participant's answers about a single handle.
type Ratings struct {
	PositioningAccuracy Optional
	Attempts            Optional
	Comfort             Optional
	GripSecurity        Optional
	EaseOfUse           Optional
	Intuitiveness       Optional
	OverallSatisfaction Optional
}

// Get returns the answer for m.
func (r Ratings) Get(m Metric) Optional {
	switch m {
	case PositioningAccuracy:
		return r.PositioningAccuracy
	case NumberOfAttempts:
		return r.Attempts
	case Comfort:
		return r.Comfort
	case GripSecurity:
		return r.GripSecurity
	case EaseOfUse:
		return r.EaseOfUse
	case Intuitiveness:
		return r.Intuitiveness
	case OverallSatisfaction:
		return r.OverallSatisfaction
	default:
		return None
	}
}

// Response is one participant's full set of answers. It is not mutated after parsing.
type Response struct {
	Row          int                 `json:"row"`
	Ratings      PerHandle[Ratings]  `json:"-"`
	Rank         PerHandle[Optional] `json:"rank"`
	Demographics map[string]string   `json:"demographics,omitempty"`
	Votes        map[string]string   `json:"votes,omitempty"`
	Feedback     map[string]string   `json:"feedback,omitempty"`
	Fields       map[string]Value    `json:"fields"`
}

// Dataset is the parsed survey: every non-blank row, in file order.
type Dataset struct {
	ID             uuid.UUID  `json:"id"`
	Headers        []string   `json:"headers"`
	Responses      []Response `json:"responses"`
	MissingColumns []string   `json:"missing_columns,omitempty"`
}

// Len returns the number of participants.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Responses)
}

// Sample collects the present answers to m for each handle, in row order.
func (d *Dataset) Sample(m Metric) PerHandle[[]float64] {
	var out PerHandle[[]float64]
	for _, h := range Handles {
		out[h] = []float64{}
	}
	if d == nil {
		return out
	}
	for _, r := range d.Responses {
		for _, h := range Handles {
			if v := r.Ratings[h].Get(m); v.Valid {
				out[h] = append(out[h], v.Value)
			}
		}
	}
	return out
}
