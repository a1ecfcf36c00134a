package coercer

import (
	"testing"

	"handlestats/domain/survey"

	"github.com/stretchr/testify/assert"
)

func TestCoerceValue(t *testing.T) {
	c := ForSchema(survey.DefaultSchema())

	tests := []struct {
		name     string
		field    string
		raw      string
		wantKind survey.Kind
		wantNum  float64
		wantText string
	}{
		{"integer", "Comfort", "4", survey.KindNumber, 4, "4"},
		{"decimal with spaces", "Comfort_1", " 3.5 ", survey.KindNumber, 3.5, "3.5"},
		{"negative", "Comfort", "-2", survey.KindNumber, -2, "-2"},
		{"zero stays present", "Comfort", "0", survey.KindNumber, 0, "0"},
		{"empty is absent", "Comfort", "", survey.KindAbsent, 0, ""},
		{"blank is absent", "Comfort", "   ", survey.KindAbsent, 0, ""},
		{"text stays text", "Gender", "Female", survey.KindString, 0, "Female"},
		{"thousands separator is text", "Comfort", "1,000", survey.KindString, 0, "1,000"},
		{"attempt with suffix text", "Number of Attempts", "3 tries", survey.KindNumber, 3, "3"},
		{"attempt plus sign", "Number of Attempts_2", "5+", survey.KindNumber, 5, "5"},
		{"attempt without digits", "Number of Attempts_1", "more than five", survey.KindString, 0, "more than five"},
		{"attempt leading space keeps text", "Number of Attempts", " 2 times", survey.KindString, 0, " 2 times"},
		{"non-attempt keeps text", "Comfort", "3 tries", survey.KindString, 0, "3 tries"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := c.CoerceValue(tt.field, tt.raw)
			assert.Equal(t, tt.wantKind, v.Kind())
			if tt.wantKind == survey.KindNumber {
				f, ok := v.Float()
				assert.True(t, ok)
				assert.Equal(t, tt.wantNum, f)
			}
			assert.Equal(t, tt.wantText, v.Text())
		})
	}
}
