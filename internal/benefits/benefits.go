// Package benefits estimates statutory workers' compensation benefits from a
// jurisdiction's benefit schedule.
package benefits

import (
	"fmt"
	"math"

	"github.com/ppiankov/casevalue/internal/model"
	"github.com/ppiankov/casevalue/internal/money"
)

// Answer ids read by the scorer
const (
	AnswerAverageWeeklyWage = "average_weekly_wage"
	AnswerWeeksOffWork      = "weeks_off_work"
	AnswerMedicalCost       = "wc_medical_treatment_cost"
	AnswerDisabilityType    = "disability_type"
	AnswerFutureMedical     = "future_medical_needed"
	AnswerVocationalRehab   = "vocational_rehab_needed"
	AnswerCanReturnSameJob  = "can_return_same_job"
	AnswerEmployerInsured   = "employer_has_wc_insurance"
)

const (
	partialImpairment   = 0.25 // assumed rating for permanent partial disability
	permanentTotalYears = 20
	futureMedicalShare  = 0.5
	vocationalWageShare = 0.25
)

// defaultSchedule applies when a jurisdiction carries no benefit schedule
var defaultSchedule = model.WorkersCompRules{
	TTDRate:               0.6667,
	MaxWeeklyBenefit:      1000,
	MinWeeklyBenefit:      200,
	MaxWeeksPPD:           300,
	WaitingPeriodDays:     7,
	RetroactivePeriodDays: 14,
}

// Score converts workers' compensation answers into economic factors.
// An uninsured employer in a non-subscriber state is referred out: a critical
// warning and no factors.
func Score(rs model.JurisdictionRuleSet, answers model.Answers) ([]model.Factor, []model.Warning) {
	factors := []model.Factor{}
	warnings := []model.Warning{}

	schedule := defaultSchedule
	if rs.WorkersComp != nil {
		schedule = *rs.WorkersComp
	}

	if insured, ok := answers.Bool(AnswerEmployerInsured); ok && !insured && schedule.NonSubscriberState {
		warnings = append(warnings, model.Warning{
			Code:     model.WarnNonSubscriberEmployer,
			Severity: model.SeverityCritical,
			Message: fmt.Sprintf("Your employer is a %s non-subscriber. These claims follow tort law, not workers' compensation, "+
				"and cannot be estimated here. Consult a personal injury attorney.", rs.JurisdictionName),
		})
		return factors, warnings
	}

	aww := nonNegative(answers, AnswerAverageWeeklyWage)
	weeksOff := nonNegative(answers, AnswerWeeksOffWork)
	medical := nonNegative(answers, AnswerMedicalCost)

	// Factors follow the questionnaire's declared order.
	rate := WeeklyRate(schedule, aww)
	if aww > 0 {
		factors = append(factors, infoFactor(AnswerAverageWeeklyWage,
			fmt.Sprintf("Weekly benefit rate: %s/week", money.USD(rate))))
	}

	if weeks := CompensableWeeks(schedule, weeksOff); weeks > 0 && rate > 0 {
		label := fmt.Sprintf("Temporary disability: %s weeks at %s", money.Number(weeks), money.USD(rate))
		if schedule.MaxWeeksTTD > 0 && weeks == schedule.MaxWeeksTTD {
			label += " (capped)"
		}
		factors = append(factors, economic(AnswerWeeksOffWork, label, rate*weeks))
	}

	if medical > 0 {
		factors = append(factors, economic(AnswerMedicalCost, "Medical treatment: "+money.USD(medical), medical))
	}

	disability, _ := answers.String(AnswerDisabilityType)
	switch disability {
	case "permanent_partial":
		ppdWeeks := math.Round(schedule.MaxWeeksPPD * partialImpairment)
		if ppdWeeks > 0 && rate > 0 {
			factors = append(factors, economic(AnswerDisabilityType,
				fmt.Sprintf("Permanent partial disability: %s weeks (estimated %d%% impairment)",
					money.Number(ppdWeeks), int(partialImpairment*100)),
				rate*ppdWeeks))
		}
	case "permanent_total":
		if rate > 0 {
			factors = append(factors, economic(AnswerDisabilityType,
				fmt.Sprintf("Permanent total disability: %d years of benefits", permanentTotalYears),
				rate*52*permanentTotalYears))
		}
	}

	if future, ok := answers.Bool(AnswerFutureMedical); ok && future && medical > 0 {
		factors = append(factors, economic(AnswerFutureMedical, "Future medical treatment", medical*futureMedicalShare))
	}

	rehab, _ := answers.Bool(AnswerVocationalRehab)
	canReturn, _ := answers.Bool(AnswerCanReturnSameJob)
	if rehab && !canReturn && aww > 0 {
		factors = append(factors, economic(AnswerVocationalRehab, "Vocational rehabilitation", aww*52*vocationalWageShare))
	}

	if schedule.MonopolisticStateFund {
		factors = append(factors, infoFactor(AnswerEmployerInsured,
			fmt.Sprintf("%s uses a state-run workers' compensation fund", rs.JurisdictionName)))
	}

	return factors, warnings
}

// WeeklyRate returns the weekly benefit for an average weekly wage, clamped
// to the schedule's minimum and maximum. No wage means no benefit.
func WeeklyRate(schedule model.WorkersCompRules, aww float64) float64 {
	if aww <= 0 {
		return 0
	}
	rate := aww * schedule.TTDRate
	if schedule.MaxWeeklyBenefit > 0 {
		rate = math.Min(rate, schedule.MaxWeeklyBenefit)
	}
	if schedule.MinWeeklyBenefit > 0 {
		rate = math.Max(rate, schedule.MinWeeklyBenefit)
	}
	return rate
}

// CompensableWeeks applies the waiting period, the retroactive payback and the
// schedule's TTD week limit.
func CompensableWeeks(schedule model.WorkersCompRules, weeksOff float64) float64 {
	if weeksOff <= 0 {
		return 0
	}
	weeks := math.Max(0, weeksOff-schedule.WaitingPeriodDays/7)
	if weeksOff*7 >= schedule.RetroactivePeriodDays {
		weeks = weeksOff
	}
	if schedule.MaxWeeksTTD > 0 && weeks > schedule.MaxWeeksTTD {
		weeks = schedule.MaxWeeksTTD
	}
	return weeks
}

func nonNegative(answers model.Answers, id string) float64 {
	v, ok := answers.Float(id)
	if !ok || v < 0 {
		return 0
	}
	return v
}

func economic(id, label string, amount float64) model.Factor {
	return model.Factor{
		Category:           model.CategoryEconomic,
		QuestionID:         id,
		Label:              label,
		ContributionAmount: amount,
	}
}

func infoFactor(id, label string) model.Factor {
	return model.Factor{Category: model.CategoryEconomic, QuestionID: id, Label: label}
}
