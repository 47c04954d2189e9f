package model

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAsFloat(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
		ok   bool
	}{
		{"float", 12.5, 12.5, true},
		{"int", 7, 7, true},
		{"json number", json.Number("50000"), 50000, true},
		{"grouped string", "1,250,000", 1250000, true},
		{"blank string", "  ", 0, false},
		{"word", "lots", 0, false},
		{"nan", math.NaN(), 0, false},
		{"inf", math.Inf(1), 0, false},
		{"bool", true, 0, false},
		{"nil", nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := AsFloat(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAsBool(t *testing.T) {
	for in, want := range map[any]bool{true: true, false: false, "yes": true, "No": false} {
		got, ok := AsBool(in)
		assert.True(t, ok, "%v", in)
		assert.Equal(t, want, got, "%v", in)
	}

	_, ok := AsBool("maybe")
	assert.False(t, ok)
	_, ok = AsBool(1.0)
	assert.False(t, ok)
}

func TestAsDate(t *testing.T) {
	got, ok := AsDate("2024-03-15")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), got)

	_, ok = AsDate("2024-03-15T10:00:00Z")
	assert.True(t, ok)

	_, ok = AsDate("15/03/2024")
	assert.False(t, ok)

	_, ok = AsDate(20240315)
	assert.False(t, ok)
}

func TestAnswers_Accessors(t *testing.T) {
	a := Answers{
		"medical_bills":    "50000",
		"permanent_injury": true,
		"injury_severity":  " severe ",
	}

	f, ok := a.Float("medical_bills")
	assert.True(t, ok)
	assert.Equal(t, 50000.0, f)

	b, ok := a.Bool("permanent_injury")
	assert.True(t, ok)
	assert.True(t, b)

	s, ok := a.String("injury_severity")
	assert.True(t, ok)
	assert.Equal(t, "severe", s)

	_, ok = a.Float("missing")
	assert.False(t, ok)
}
