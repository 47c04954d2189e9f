// Package questions holds the per-case-type questionnaires and the weight
// tables that turn answers into valuation factors.
package questions

import (
	"fmt"
	"maps"
	"slices"

	"github.com/ppiankov/casevalue/internal/model"
)

// Catalog is an immutable set of questionnaires keyed by case type
type Catalog struct {
	sets map[model.CaseType][]model.Question
}

// Default returns the built-in catalog
func Default() *Catalog {
	sets := make(map[model.CaseType][]model.Question)
	for ct, build := range builders {
		sets[ct] = build()
	}
	return &Catalog{sets: sets}
}

// New builds a catalog from explicit question sets
func New(sets map[model.CaseType][]model.Question) *Catalog {
	c := &Catalog{sets: make(map[model.CaseType][]model.Question, len(sets))}
	for ct, qs := range sets {
		c.sets[ct] = cloneQuestions(qs)
	}
	return c
}

var builders = map[model.CaseType]func() []model.Question{
	model.CaseMotor:         motorQuestions,
	model.CaseMedical:       medicalQuestions,
	model.CasePremises:      premisesQuestions,
	model.CaseProduct:       productQuestions,
	model.CaseWrongfulDeath: wrongfulDeathQuestions,
	model.CaseDogBite:       dogBiteQuestions,
	model.CaseWrongfulTerm:  wrongfulTermQuestions,
	model.CaseWage:          wageQuestions,
	model.CaseClassAction:   classActionQuestions,
	model.CaseInsurance:     insuranceQuestions,
	model.CaseDisability:    disabilityQuestions,
	model.CaseProfessional:  professionalQuestions,
	model.CaseCivilRights:   civilRightsQuestions,
	model.CaseIP:            ipQuestions,
	model.CaseWorkersComp:   workersCompQuestions,
	model.CaseLemonLaw:      lemonLawQuestions,
}

// Questions returns the ordered questionnaire for a case type
func (c *Catalog) Questions(ct model.CaseType) ([]model.Question, error) {
	qs, ok := c.sets[ct]
	if !ok {
		return nil, fmt.Errorf("questions for %q: %w", ct, model.ErrNotFound)
	}
	return cloneQuestions(qs), nil
}

// Lookup finds one question by id
func (c *Catalog) Lookup(ct model.CaseType, id string) (model.Question, bool) {
	for _, q := range c.sets[ct] {
		if q.ID == id {
			return cloneQuestion(q), true
		}
	}
	return model.Question{}, false
}

func cloneQuestions(qs []model.Question) []model.Question {
	out := make([]model.Question, len(qs))
	for i, q := range qs {
		out[i] = cloneQuestion(q)
	}
	return out
}

// cloneQuestion copies the option list, weight table and contribution so
// callers cannot reach the catalog's own.
func cloneQuestion(q model.Question) model.Question {
	q.Options = slices.Clone(q.Options)
	q.Weights = maps.Clone(q.Weights)
	if q.Contribution != nil {
		c := *q.Contribution
		c.Steps = slices.Clone(c.Steps)
		q.Contribution = &c
	}
	return q
}

// CaseTypes lists the case types that have a questionnaire, in catalog order
func (c *Catalog) CaseTypes() []model.CaseType {
	var out []model.CaseType
	for _, ct := range model.AllCaseTypes() {
		if _, ok := c.sets[ct]; ok {
			out = append(out, ct)
		}
	}
	return out
}

// Question constructors. Boolean weight tables key on "true"/"false".

func dateQuestion(id, prompt string) model.Question {
	return model.Question{ID: id, Prompt: prompt, Type: model.AnswerDate}
}

func incidentDate() model.Question {
	return dateQuestion(model.QuestionIncidentDate, "When did the incident occur?")
}

func discoveryDate() model.Question {
	return dateQuestion(model.QuestionDiscoveryDate, "When did you discover the harm? (if later than the incident)")
}

func faultPercentage() model.Question {
	return model.Question{
		ID:     model.QuestionFault,
		Prompt: "What percentage of the fault, if any, was yours?",
		Type:   model.AnswerPercent,
		Min:    0,
		Max:    100,
	}
}

func yesNo(id, prompt string, cat model.FactorCategory, label string, weight, amount float64) model.Question {
	return model.Question{
		ID:     id,
		Prompt: prompt,
		Type:   model.AnswerBoolean,
		Weights: map[string]model.WeightEntry{
			"true": {Category: cat, Label: label, Weight: weight, Amount: amount},
		},
	}
}

func choice(id, prompt string, options []string, weights map[string]model.WeightEntry) model.Question {
	return model.Question{
		ID:      id,
		Prompt:  prompt,
		Type:    model.AnswerChoice,
		Options: options,
		Weights: weights,
	}
}

func numeric(id, prompt string, c *model.Contribution) model.Question {
	return model.Question{
		ID:           id,
		Prompt:       prompt,
		Type:         model.AnswerNumeric,
		Min:          0,
		Contribution: c,
	}
}

// dollars is an economic amount counted at rate times the answer
func dollars(label string, rate float64) *model.Contribution {
	return &model.Contribution{
		Kind:     model.ContributionLinear,
		Category: model.CategoryEconomic,
		Label:    label,
		Unit:     model.UnitMoney,
		Rate:     rate,
		Cap:      maxEconomicAnswer * rate,
	}
}

func stepped(cat model.FactorCategory, label string, unit model.Unit, steps ...model.Step) *model.Contribution {
	return &model.Contribution{
		Kind:     model.ContributionStepped,
		Category: cat,
		Label:    label,
		Unit:     unit,
		Steps:    steps,
	}
}

func info(label string, unit model.Unit) *model.Contribution {
	return &model.Contribution{
		Kind:     model.ContributionInfo,
		Category: model.CategoryEconomic,
		Label:    label,
		Unit:     unit,
	}
}

// maxEconomicAnswer bounds a single dollar answer
const maxEconomicAnswer = 50_000_000

func injurySeverity() model.Question {
	return choice("injury_severity", "How severe was the injury?",
		[]string{"minor", "moderate", "severe", "catastrophic"},
		map[string]model.WeightEntry{
			"minor":        {Category: model.CategorySeverity, Label: "Minor injury", Weight: 0.5, Amount: 15000},
			"moderate":     {Category: model.CategorySeverity, Label: "Moderate injury", Weight: 1.5, Amount: 40000},
			"severe":       {Category: model.CategorySeverity, Label: "Severe injury", Weight: 3.0, Amount: 120000},
			"catastrophic": {Category: model.CategorySeverity, Label: "Catastrophic injury", Weight: 5.0, Amount: 300000},
		})
}

func emotionalDistress() model.Question {
	return choice("emotional_distress", "How much emotional distress have you experienced?",
		[]string{"distress_mild", "distress_moderate", "distress_severe", "distress_extreme"},
		map[string]model.WeightEntry{
			"distress_mild":     {Category: model.CategorySeverity, Label: "Mild emotional distress", Weight: 0.3, Amount: 10000},
			"distress_moderate": {Category: model.CategorySeverity, Label: "Moderate emotional distress", Weight: 0.7, Amount: 25000},
			"distress_severe":   {Category: model.CategorySeverity, Label: "Severe emotional distress", Weight: 1.3, Amount: 50000},
			"distress_extreme":  {Category: model.CategorySeverity, Label: "Extreme emotional distress", Weight: 2.2, Amount: 100000},
		})
}

func medicalBills() model.Question {
	return numeric("medical_bills", "Total medical bills to date", dollars("Medical bills", 1))
}

func lostWages() model.Question {
	return numeric("lost_wages", "Wages lost because of the injury", dollars("Lost wages", 1))
}

func permanentInjury() model.Question {
	return yesNo("permanent_injury", "Is the injury permanent?",
		model.CategorySeverity, "Permanent injury", 1.0, 50000)
}

func insuranceCoverage() model.Question {
	return numeric("insurance_coverage", "Known insurance coverage of the at-fault party",
		info("Available insurance coverage", model.UnitMoney))
}
