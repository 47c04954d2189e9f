package valuation

import (
	"testing"

	"github.com/ppiankov/casevalue/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimitationWarning(t *testing.T) {
	tests := []struct {
		name     string
		rs       func() model.JurisdictionRuleSet
		in       Inputs
		severity model.Severity
		contains string
	}{
		{
			name:     "no date",
			rs:       pureRules,
			in:       Inputs{},
			severity: model.SeverityInfo,
			contains: "2 years from the incident",
		},
		{
			name:     "plenty of time",
			rs:       pureRules,
			in:       Inputs{IncidentDate: date("2025-01-01")},
			severity: model.SeverityInfo,
			contains: "2027-01-01",
		},
		{
			name:     "under a year left",
			rs:       pureRules,
			in:       Inputs{IncidentDate: date("2023-12-01")},
			severity: model.SeverityWarning,
			contains: "Less than a year",
		},
		{
			name:     "expired",
			rs:       pureRules,
			in:       Inputs{IncidentDate: date("2022-01-01")},
			severity: model.SeverityCritical,
			contains: "time-barred",
		},
		{
			name: "discovery date extends the period",
			rs: func() model.JurisdictionRuleSet {
				rs := pureRules()
				rs.DiscoveryRule = true
				return rs
			},
			in:       Inputs{IncidentDate: date("2020-01-01"), DiscoveryDate: date("2025-02-01")},
			severity: model.SeverityInfo,
			contains: "discovery",
		},
		{
			name:     "discovery date ignored without the rule",
			rs:       pureRules,
			in:       Inputs{IncidentDate: date("2020-01-01"), DiscoveryDate: date("2025-02-01")},
			severity: model.SeverityCritical,
			contains: "the incident",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := limitationWarning(tt.rs(), tt.in, fixedNow)
			assert.Equal(t, model.WarnStatuteOfLimitations, w.Code)
			assert.Equal(t, tt.severity, w.Severity)
			assert.Contains(t, w.Message, tt.contains)
		})
	}
}

func TestCalculate_LimitationNeverChangesValue(t *testing.T) {
	c := newCalculator()
	factors := []model.Factor{econ(100000)}

	fresh, err := c.Calculate(pureRules(), factors, Inputs{IncidentDate: date("2025-05-01")})
	require.NoError(t, err)
	stale, err := c.Calculate(pureRules(), factors, Inputs{IncidentDate: date("2001-05-01")})
	require.NoError(t, err)

	assert.Equal(t, fresh.Value, stale.Value)
	w, ok := findWarning(stale, model.WarnStatuteOfLimitations)
	require.True(t, ok)
	assert.Equal(t, model.SeverityCritical, w.Severity)
}

func TestRuleWarnings(t *testing.T) {
	yes, no := true, false

	motor := pureRules()
	motor.CaseType = model.CaseMotor
	motor.NoFault = true
	ws := ruleWarnings(motor)
	require.Len(t, ws, 1)
	assert.Equal(t, model.WarnNoFaultState, ws[0].Code)

	premises := pureRules()
	premises.NoFault = true
	assert.Empty(t, ruleWarnings(premises))

	dog := pureRules()
	dog.CaseType = model.CaseDogBite
	assert.Empty(t, ruleWarnings(dog))

	dog.StrictLiability = &yes
	assert.Empty(t, ruleWarnings(dog))

	dog.StrictLiability = &no
	ws = ruleWarnings(dog)
	require.Len(t, ws, 1)
	assert.Equal(t, model.WarnOneBiteRule, ws[0].Code)
	assert.Contains(t, ws[0].Message, "California")
}
