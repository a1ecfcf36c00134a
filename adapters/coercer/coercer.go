package coercer

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"handlestats/domain/survey"
)

var (
	// Numeric-looking cells: optional sign, plain or decimal digits, optional exponent.
	// Surrounding whitespace is tolerated, thousands separators are not.
	numericPattern = regexp.MustCompile(`^\s*-?(\d+\.?|\.\d+|\d+\.\d+)([eE][-+]?\d+)?\s*$`)
	leadingDigits  = regexp.MustCompile(`^\d+`)
)

// TypeCoercer turns raw cell text into typed survey values.
type TypeCoercer struct {
	config CoercionConfig
}

// CoercionConfig defines which fields get special handling
type CoercionConfig struct {
	// AttemptFields hold attempt counts; text answers such as "3 tries" keep their leading digits.
	AttemptFields []string `json:"attempt_fields"`
}

// NewTypeCoercer creates a coercer with the given config
func NewTypeCoercer(config CoercionConfig) *TypeCoercer {
	return &TypeCoercer{config: config}
}

// ForSchema builds a coercer that treats the schema's attempt columns as attempt fields.
func ForSchema(schema survey.Schema) *TypeCoercer {
	return NewTypeCoercer(CoercionConfig{AttemptFields: schema.AttemptColumns()})
}

// CoerceValue converts one cell of the named field to a typed Value.
// Empty and whitespace-only cells are absent.
func (c *TypeCoercer) CoerceValue(field, raw string) survey.Value {
	if strings.TrimSpace(raw) == "" {
		return survey.Absent()
	}

	value := survey.String(raw)
	if num, ok := c.tryParseNumeric(raw); ok {
		value = survey.Number(num)
	}

	if c.isAttemptField(field) {
		return c.coerceAttempt(value)
	}
	return value
}

// coerceAttempt keeps the leading digit run of a textual attempt answer.
// Text without leading digits passes through unchanged.
func (c *TypeCoercer) coerceAttempt(value survey.Value) survey.Value {
	if value.Kind() != survey.KindString {
		return value
	}
	digits := leadingDigits.FindString(value.Text())
	if digits == "" {
		return value
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		// digit run overflows int
		return value
	}
	return survey.Number(float64(n))
}

// tryParseNumeric accepts only cells that look entirely numeric
func (c *TypeCoercer) tryParseNumeric(raw string) (float64, bool) {
	if !numericPattern.MatchString(raw) {
		return 0, false
	}
	val, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsInf(val, 0) || math.IsNaN(val) {
		return 0, false
	}
	return val, true
}

func (c *TypeCoercer) isAttemptField(field string) bool {
	for _, f := range c.config.AttemptFields {
		if f == field {
			return true
		}
	}
	return false
}
