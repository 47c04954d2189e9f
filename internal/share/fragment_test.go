package share

import (
	"testing"

	"github.com/ppiankov/casevalue/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURL(t *testing.T) {
	assert.Equal(t, "https://casevalue.app/#share=abc", URL("https://casevalue.app/", "abc"))
	assert.Equal(t, "https://casevalue.app/#share=abc", URL("https://casevalue.app/#", "abc"))
	assert.Equal(t, "https://casevalue.app/r#share=abc", URL("https://casevalue.app/r#share=old", "abc"))
}

func TestParseFragment(t *testing.T) {
	tests := []struct {
		in   string
		want Token
	}{
		{"https://casevalue.app/#share=eyJ2IjoxfQ", "eyJ2IjoxfQ"},
		{"#share=eyJ2IjoxfQ", "eyJ2IjoxfQ"},
		{"share=eyJ2IjoxfQ", "eyJ2IjoxfQ"},
		{"  eyJ2IjoxfQ  ", "eyJ2IjoxfQ"},
		{"#utm=x&share=abc-_", "abc-_"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFragment(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFragment_Errors(t *testing.T) {
	for _, in := range []string{"", "#", "https://casevalue.app/", "#other=1", "#share="} {
		_, err := ParseFragment(in)
		assert.ErrorIs(t, err, model.ErrMalformed, "input %q", in)
	}
}

func TestURL_ParseFragment_RoundTrip(t *testing.T) {
	got, err := ParseFragment(URL("https://casevalue.app/", "tok_123"))
	require.NoError(t, err)
	assert.Equal(t, Token("tok_123"), got)
}
