package benefits

import (
	"testing"

	"github.com/ppiankov/casevalue/internal/model"
	"github.com/ppiankov/casevalue/internal/questions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func schedule() *model.WorkersCompRules {
	return &model.WorkersCompRules{
		TTDRate:               0.6667,
		MaxWeeklyBenefit:      1000,
		MinWeeklyBenefit:      200,
		MaxWeeksTTD:           104,
		MaxWeeksPPD:           300,
		WaitingPeriodDays:     7,
		RetroactivePeriodDays: 14,
	}
}

func ruleSet(wc *model.WorkersCompRules) model.JurisdictionRuleSet {
	return model.JurisdictionRuleSet{
		Jurisdiction:     "TX",
		JurisdictionName: "Texas",
		CaseType:         model.CaseWorkersComp,
		NegligenceRegime: model.ModifiedComparative51,
		WorkersComp:      wc,
	}
}

func total(factors []model.Factor) float64 {
	var sum float64
	for _, f := range factors {
		sum += f.ContributionAmount
	}
	return sum
}

func TestWeeklyRate(t *testing.T) {
	s := *schedule()

	tests := []struct {
		name string
		aww  float64
		want float64
	}{
		{"no wage", 0, 0},
		{"negative wage", -10, 0},
		{"raised to minimum", 150, 200},
		{"within range", 900, 600.03},
		{"clamped to maximum", 3000, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, WeeklyRate(s, tt.aww), 0.001)
		})
	}
}

func TestCompensableWeeks(t *testing.T) {
	s := *schedule()

	assert.Zero(t, CompensableWeeks(s, 0))
	// Under the retroactive threshold the waiting week is unpaid
	assert.InDelta(t, 0.5, CompensableWeeks(s, 1.5), 1e-9)
	// Off two weeks or more pays back the waiting period
	assert.Equal(t, 2.0, CompensableWeeks(s, 2))
	assert.Equal(t, 104.0, CompensableWeeks(s, 500))

	s.MaxWeeksTTD = 0
	assert.Equal(t, 500.0, CompensableWeeks(s, 500))
}

func TestScore_TemporaryDisability(t *testing.T) {
	factors, warnings := Score(ruleSet(schedule()), model.Answers{
		AnswerAverageWeeklyWage: 900.0,
		AnswerWeeksOffWork:      10.0,
		AnswerMedicalCost:       8000.0,
		AnswerDisabilityType:    "temporary_total",
		AnswerEmployerInsured:   true,
	})

	assert.Empty(t, warnings)
	// 10 weeks at 600.03 plus medical
	assert.InDelta(t, 6000.3+8000, total(factors), 0.01)
	for _, f := range factors {
		assert.Equal(t, model.CategoryEconomic, f.Category)
		assert.Zero(t, f.Weight)
	}
}

func TestScore_PermanentPartial(t *testing.T) {
	factors, _ := Score(ruleSet(schedule()), model.Answers{
		AnswerAverageWeeklyWage: 1500.0,
		AnswerDisabilityType:    "permanent_partial",
	})

	// 75 weeks at the 1000 maximum
	assert.InDelta(t, 75000, total(factors), 0.01)
}

func TestScore_PermanentTotal(t *testing.T) {
	factors, _ := Score(ruleSet(schedule()), model.Answers{
		AnswerAverageWeeklyWage: 1500.0,
		AnswerDisabilityType:    "permanent_total",
	})

	assert.InDelta(t, 1000*52*20, total(factors), 0.01)
}

func TestScore_FutureMedicalAndRehab(t *testing.T) {
	factors, _ := Score(ruleSet(schedule()), model.Answers{
		AnswerAverageWeeklyWage: 1000.0,
		AnswerMedicalCost:       20000.0,
		AnswerFutureMedical:     true,
		AnswerVocationalRehab:   true,
		AnswerCanReturnSameJob:  false,
	})

	// medical + 50% future medical + 25% of annual wage
	assert.InDelta(t, 20000+10000+13000, total(factors), 0.01)

	factors, _ = Score(ruleSet(schedule()), model.Answers{
		AnswerAverageWeeklyWage: 1000.0,
		AnswerVocationalRehab:   true,
		AnswerCanReturnSameJob:  true,
	})
	assert.Zero(t, total(factors))
}

func TestScore_NonSubscriberReferredOut(t *testing.T) {
	wc := schedule()
	wc.NonSubscriberState = true

	factors, warnings := Score(ruleSet(wc), model.Answers{
		AnswerAverageWeeklyWage: 1000.0,
		AnswerWeeksOffWork:      10.0,
		AnswerEmployerInsured:   false,
	})

	assert.NotNil(t, factors)
	assert.Empty(t, factors)
	require.Len(t, warnings, 1)
	assert.Equal(t, model.WarnNonSubscriberEmployer, warnings[0].Code)
	assert.Equal(t, model.SeverityCritical, warnings[0].Severity)
	assert.Contains(t, warnings[0].Message, "Texas")
}

func TestScore_UninsuredOutsideNonSubscriberState(t *testing.T) {
	factors, warnings := Score(ruleSet(schedule()), model.Answers{
		AnswerAverageWeeklyWage: 900.0,
		AnswerWeeksOffWork:      4.0,
		AnswerEmployerInsured:   false,
	})

	assert.Empty(t, warnings)
	assert.NotEmpty(t, factors)
}

func TestScore_DefaultScheduleWhenMissing(t *testing.T) {
	factors, _ := Score(ruleSet(nil), model.Answers{
		AnswerAverageWeeklyWage: 3000.0,
		AnswerWeeksOffWork:      3.0,
	})

	assert.InDelta(t, 3000, total(factors), 0.01)
}

func TestScore_IgnoresGarbage(t *testing.T) {
	factors, warnings := Score(ruleSet(schedule()), model.Answers{
		AnswerAverageWeeklyWage: "lots",
		AnswerWeeksOffWork:      -4.0,
		AnswerMedicalCost:       nil,
	})

	assert.Empty(t, warnings)
	assert.Zero(t, total(factors))
}

func TestScore_StateFundNote(t *testing.T) {
	wc := schedule()
	wc.MonopolisticStateFund = true
	rs := ruleSet(wc)
	rs.JurisdictionName = "Ohio"

	factors, _ := Score(rs, model.Answers{})
	require.Len(t, factors, 1)
	assert.Contains(t, factors[0].Label, "Ohio uses a state-run")
	assert.Zero(t, factors[0].ContributionAmount)
}

func TestScore_FactorsInQuestionOrder(t *testing.T) {
	wc := schedule()
	wc.MonopolisticStateFund = true

	factors, _ := Score(ruleSet(wc), model.Answers{
		AnswerAverageWeeklyWage: 1200.0,
		AnswerWeeksOffWork:      10.0,
		AnswerMedicalCost:       15000.0,
		AnswerDisabilityType:    "permanent_partial",
		AnswerFutureMedical:     true,
		AnswerVocationalRehab:   true,
		AnswerCanReturnSameJob:  false,
	})

	qs, err := questions.Default().Questions(model.CaseWorkersComp)
	require.NoError(t, err)
	position := make(map[string]int, len(qs))
	for i, q := range qs {
		position[q.ID] = i
	}

	got := make([]string, 0, len(factors))
	for _, f := range factors {
		got = append(got, f.QuestionID)
	}
	assert.Equal(t, []string{
		AnswerAverageWeeklyWage,
		AnswerWeeksOffWork,
		AnswerMedicalCost,
		AnswerDisabilityType,
		AnswerFutureMedical,
		AnswerVocationalRehab,
		AnswerEmployerInsured,
	}, got)

	for i := 1; i < len(got); i++ {
		prev, okPrev := position[got[i-1]]
		cur, okCur := position[got[i]]
		require.True(t, okPrev && okCur, "%s or %s is not a catalog question", got[i-1], got[i])
		assert.Less(t, prev, cur, "%s emitted after %s", got[i], got[i-1])
	}
}
