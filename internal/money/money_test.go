package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUSD(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0"},
		{999.6, "$1,000"},
		{50000, "$50,000"},
		{1250000, "$1,250,000"},
		{-2500, "-$2,500"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, USD(tt.in), "USD(%v)", tt.in)
	}
}

func TestNumber(t *testing.T) {
	assert.Equal(t, "12", Number(12))
	assert.Equal(t, "10,000", Number(10000))
	assert.Equal(t, "2.5", Number(2.5))
}
