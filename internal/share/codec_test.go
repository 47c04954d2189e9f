package share

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/ppiankov/casevalue/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var issued = time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func sampleResult() model.ValuationResult {
	return model.ValuationResult{
		Value:     240000,
		LowRange:  204000,
		HighRange: 276000,
		Factors: []model.Factor{
			{Category: model.CategoryEconomic, QuestionID: "medical_bills", Label: "Medical bills: $50,000", ContributionAmount: 50000},
			{Category: model.CategorySeverity, QuestionID: "injury_severity", Label: "Severe injury", Weight: 3, ContributionAmount: 120000},
		},
		Warnings: []model.Warning{
			{Code: model.WarnStatuteOfLimitations, Severity: model.SeverityInfo, Message: "The filing deadline is 2027-01-01."},
		},
		NegligenceRegimeApplied: model.ModifiedComparative51,
		CapsApplied: []model.CapApplication{
			{Target: model.CapTargetNonEconomic, Strategy: "fixed", Limit: 250000, Before: 400000, After: 250000},
		},
		Breakdown: model.Breakdown{
			EconomicBase:        50000,
			NonEconomicBase:     400000,
			PainMultiplier:      1,
			LiabilityAdjustment: 1,
			Economic:            50000,
			NonEconomic:         250000,
			Compensatory:        300000,
			PreFaultTotal:       300000,
			FaultPercentage:     20,
			FaultReduction:      60000,
		},
	}
}

var sampleContext = model.ShareContext{CaseType: model.CaseMedical, Jurisdiction: "TX"}

func TestCodec_RoundTrip(t *testing.T) {
	clk := &clock{t: issued}
	c := NewCodec(0, clk.now)

	token, err := c.Encode(sampleResult(), sampleContext)
	require.NoError(t, err)
	assert.NotContains(t, string(token), "=")
	assert.NotContains(t, string(token), "+")
	assert.NotContains(t, string(token), "/")

	clk.t = issued.Add(9 * 24 * time.Hour)
	shared, err := c.Decode(token)
	require.NoError(t, err)

	if diff := cmp.Diff(sampleResult(), shared.Result, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("result mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, sampleContext, shared.Context)
	assert.True(t, shared.IssuedAt.Equal(issued))
	assert.True(t, shared.ExpiresAt.Equal(issued.Add(DefaultTTL)))
}

func TestCodec_ExpiryBoundary(t *testing.T) {
	clk := &clock{t: issued}
	c := NewCodec(time.Hour, clk.now)

	token, err := c.Encode(sampleResult(), sampleContext)
	require.NoError(t, err)

	clk.t = issued.Add(time.Hour)
	_, err = c.Decode(token)
	assert.NoError(t, err, "live at exactly the expiry instant")

	clk.t = issued.Add(time.Hour + time.Millisecond)
	shared, err := c.Decode(token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrExpired))
	assert.False(t, errors.Is(err, model.ErrMalformed))
	assert.Equal(t, sampleContext, shared.Context, "expired tokens keep their context")
	assert.Equal(t, 240000.0, shared.Result.Value)
}

func TestCodec_Malformed(t *testing.T) {
	c := NewCodec(0, func() time.Time { return issued })

	encode := func(s string) Token {
		return Token(base64.RawURLEncoding.EncodeToString([]byte(s)))
	}

	tests := []struct {
		name  string
		token Token
	}{
		{"empty", ""},
		{"not base64", "!!!not*base64!!!"},
		{"padded base64", Token(base64.URLEncoding.EncodeToString([]byte(`{"v":1}`)))},
		{"not json", encode("hello")},
		{"unknown version", encode(`{"v":2,"r":{"value":1,"low_range":1,"high_range":1},"iat":1,"exp":99999999999999}`)},
		{"missing version", encode(`{"r":{"value":1,"low_range":1,"high_range":1},"iat":1,"exp":99999999999999}`)},
		{"missing expiry", encode(`{"v":1,"r":{"value":1,"low_range":1,"high_range":1},"iat":1}`)},
		{"issued after expiry", encode(`{"v":1,"r":{"value":1,"low_range":1,"high_range":1},"iat":10,"exp":5}`)},
		{"negative value", encode(`{"v":1,"r":{"value":-1,"low_range":-2,"high_range":0},"iat":1,"exp":99999999999999}`)},
		{"range out of order", encode(`{"v":1,"r":{"value":10,"low_range":20,"high_range":30},"iat":1,"exp":99999999999999}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Decode(tt.token)
			require.Error(t, err)
			assert.True(t, errors.Is(err, model.ErrMalformed), "got %v", err)
			assert.False(t, errors.Is(err, model.ErrExpired))
		})
	}
}

func TestCodec_TamperedTokenIsMalformed(t *testing.T) {
	c := NewCodec(0, func() time.Time { return issued })
	token, err := c.Encode(sampleResult(), sampleContext)
	require.NoError(t, err)

	_, err = c.Decode(token[:len(token)/2])
	assert.ErrorIs(t, err, model.ErrMalformed)
}

func TestCodec_DaysUntilExpiry(t *testing.T) {
	clk := &clock{t: issued}
	c := NewCodec(0, clk.now)

	assert.Equal(t, 10, c.DaysUntilExpiry(issued.Add(DefaultTTL)))
	assert.Equal(t, 1, c.DaysUntilExpiry(issued.Add(time.Minute)))
	assert.Equal(t, 0, c.DaysUntilExpiry(issued))
	assert.Equal(t, 0, c.DaysUntilExpiry(issued.Add(-time.Hour)))
}

func TestNewCodec_Defaults(t *testing.T) {
	c := NewCodec(-time.Second, nil)
	assert.Equal(t, DefaultTTL, c.TTL())

	token, err := c.Encode(sampleResult(), sampleContext)
	require.NoError(t, err)
	_, err = c.Decode(token)
	assert.NoError(t, err)
	assert.False(t, strings.HasPrefix(string(token), "#"))
}
