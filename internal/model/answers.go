package model

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the wire format for date answers
const DateLayout = "2006-01-02"

// Float returns a numeric answer. Missing, non-numeric and non-finite values report false.
func (a Answers) Float(id string) (float64, bool) {
	return AsFloat(a[id])
}

// Bool returns a yes/no answer
func (a Answers) Bool(id string) (bool, bool) {
	return AsBool(a[id])
}

// String returns a choice or text answer
func (a Answers) String(id string) (string, bool) {
	return AsString(a[id])
}

// Date returns a date answer
func (a Answers) Date(id string) (time.Time, bool) {
	return AsDate(a[id])
}

// AsFloat coerces a JSON-decoded value to a finite float
func AsFloat(v any) (float64, bool) {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	case json.Number:
		parsed, err := x.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(x), ",", ""), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// AsBool coerces a JSON-decoded value to a boolean
func AsBool(v any) (bool, bool) {
	switch x := v.(type) {
	case bool:
		return x, true
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "true", "yes":
			return true, true
		case "false", "no":
			return false, true
		}
	}
	return false, false
}

// AsString coerces a JSON-decoded value to a non-empty string
func AsString(v any) (string, bool) {
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}

// AsDate coerces a JSON-decoded value to a date. Accepts YYYY-MM-DD and RFC 3339.
func AsDate(v any) (time.Time, bool) {
	switch x := v.(type) {
	case time.Time:
		return x, !x.IsZero()
	case string:
		s := strings.TrimSpace(x)
		if t, err := time.Parse(DateLayout, s); err == nil {
			return t, true
		}
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
