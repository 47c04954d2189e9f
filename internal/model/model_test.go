package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCaseType(t *testing.T) {
	tests := []struct {
		in   string
		want CaseType
	}{
		{"motor", CaseMotor},
		{"MOTOR", CaseMotor},
		{"motor-vehicle-accident", CaseMotor},
		{"motor-vehicle", CaseMotor},
		{"personal-injury", CaseMotor},
		{"dog-bites", CaseDogBite},
		{"dog-bite", CaseDogBite},
		{"wrongful-death", CaseWrongfulDeath},
		{"employment-law", CaseWrongfulTerm},
		{"workers-compensation", CaseWorkersComp},
		{"lemon-law", CaseLemonLaw},
		{"civil-rights", CaseCivilRights},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCaseType(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseCaseType("maritime")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = ParseCaseType("")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCaseType_SlugRoundTrip(t *testing.T) {
	for _, ct := range AllCaseTypes() {
		got, err := ParseCaseType(ct.Slug())
		require.NoError(t, err, ct)
		assert.Equal(t, ct, got)
		assert.NotEmpty(t, ct.DisplayName())
	}
}

func TestNegligenceRegime_BarThreshold(t *testing.T) {
	th, ok := ModifiedComparative50.BarThreshold()
	assert.True(t, ok)
	assert.Equal(t, 50.0, th)

	th, ok = ModifiedComparative51.BarThreshold()
	assert.True(t, ok)
	assert.Equal(t, 51.0, th)

	_, ok = PureComparative.BarThreshold()
	assert.False(t, ok)

	assert.False(t, NegligenceRegime("partial").Valid())
}

func TestDamageCap_Limit(t *testing.T) {
	basis := CapBasis{Economic: 100000, Compensatory: 400000}

	tests := []struct {
		name string
		cap  *DamageCap
		want float64
	}{
		{"nil", nil, math.Inf(1)},
		{"fixed", &DamageCap{Kind: CapFixed, Amount: 250000}, 250000},
		{"multiple", &DamageCap{Kind: CapMultiple, Multiple: 2}, 800000},
		{"lesser", &DamageCap{Kind: CapMultiple, Multiple: 3, Bound: BoundLesser, Amount: 500000}, 500000},
		{"lesser formula wins", &DamageCap{Kind: CapMultiple, Multiple: 1, Bound: BoundLesser, Amount: 500000}, 400000},
		{"greater", &DamageCap{Kind: CapMultiple, Multiple: 2, Bound: BoundGreater, Amount: 1000000}, 1000000},
		{"economic base", &DamageCap{Kind: CapMultiple, Multiple: 3, Base: BaseEconomic, Bound: BoundLesser, Amount: 250000}, 250000},
		{"economic base formula", &DamageCap{Kind: CapMultiple, Multiple: 2, Base: BaseEconomic}, 200000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cap.Limit(basis))
		})
	}
}

func TestDamageCap_Validate(t *testing.T) {
	assert.NoError(t, (*DamageCap)(nil).Validate())
	assert.NoError(t, (&DamageCap{Kind: CapFixed, Amount: 1}).Validate())
	assert.Error(t, (&DamageCap{Kind: CapFixed}).Validate())
	assert.Error(t, (&DamageCap{Kind: CapMultiple}).Validate())
	assert.Error(t, (&DamageCap{Kind: CapMultiple, Multiple: 2, Bound: BoundGreater}).Validate())
	assert.Error(t, (&DamageCap{Kind: CapMultiple, Multiple: 2, Base: "net_worth"}).Validate())
	assert.Error(t, (&DamageCap{Kind: "formula"}).Validate())
}

func TestDamageCap_Strategy(t *testing.T) {
	assert.Equal(t, "none", (*DamageCap)(nil).Strategy())
	assert.Equal(t, "fixed", (&DamageCap{Kind: CapFixed, Amount: 1}).Strategy())
	assert.Equal(t, "lesser of 3x compensatory or amount",
		(&DamageCap{Kind: CapMultiple, Multiple: 3, Bound: BoundLesser, Amount: 1}).Strategy())
	assert.Equal(t, "1.5x economic", (&DamageCap{Kind: CapMultiple, Multiple: 1.5, Base: BaseEconomic}).Strategy())
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.LessOrEqual(t, cfg.Valuation.MultiplierMin, cfg.Valuation.MultiplierMax)
	assert.LessOrEqual(t, cfg.Valuation.LiabilityMin, cfg.Valuation.LiabilityMax)
	assert.Greater(t, cfg.Share.TTL.Hours(), 0.0)
	assert.True(t, cfg.LLM.StrictFigures)
	assert.Empty(t, cfg.LLM.Provider, "narratives are opt-in")
}
