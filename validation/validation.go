package validation

import "strings"

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

func PositiveFloat(field string, val float64, v Violations) {
	if val <= 0 {
		v[field] = "must_be_positive"
	}
}

func NonNegativeFloat(field string, val float64, v Violations) {
	if val < 0 {
		v[field] = "must_not_be_negative"
	}
}

func MinInt(field string, val, minVal int, v Violations) {
	if val < minVal {
		v[field] = "below_minimum"
	}
}

func OneOf(field, value string, allowed []string, v Violations) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	v[field] = "invalid_value"
}

// ISODate checks the YYYY-MM-DD shape used by date columns. Lexical range
// comparisons rely on it.
func ISODate(field, value string, v Violations) {
	if len(value) != 10 || value[4] != '-' || value[7] != '-' ||
		!isDigits(value, 0, 4) || !isDigits(value, 5, 7) || !isDigits(value, 8, 10) {
		v[field] = "invalid_date"
	}
}

// ISOMonth checks the YYYY-MM shape of monthly cost keys.
func ISOMonth(field, value string, v Violations) {
	if len(value) != 7 || value[4] != '-' || !isDigits(value, 0, 4) || !isDigits(value, 5, 7) {
		v[field] = "invalid_month"
	}
}

func isDigits(s string, from, to int) bool {
	if len(s) < to {
		return false
	}
	for i := from; i < to; i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
