package survey

import "fmt"

// Metric is one per-handle survey question that yields a numeric answer.
type Metric int

const (
	PositioningAccuracy Metric = iota
	NumberOfAttempts
	Comfort
	GripSecurity
	EaseOfUse
	Intuitiveness
	OverallSatisfaction
)

// Metrics lists every metric in report order.
var Metrics = []Metric{
	PositioningAccuracy,
	NumberOfAttempts,
	Comfort,
	GripSecurity,
	EaseOfUse,
	Intuitiveness,
	OverallSatisfaction,
}

var metricNames = map[Metric]string{
	PositioningAccuracy: "Positioning Accuracy",
	NumberOfAttempts:    "Number of Attempts",
	Comfort:             "Comfort",
	GripSecurity:        "Grip Security",
	EaseOfUse:           "Ease of Use",
	Intuitiveness:       "Intuitiveness",
	OverallSatisfaction: "Overall Satisfaction",
}

func (m Metric) String() string {
	if name, ok := metricNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Metric(%d)", int(m))
}

// MarshalText encodes the metric by its question name.
func (m Metric) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// IsAttempt reports whether the metric counts attempts rather than rating quality.
func (m Metric) IsAttempt() bool {
	return m == NumberOfAttempts
}
