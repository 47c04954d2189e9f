// Package score turns questionnaire answers into valuation factors.
package score

import (
	"fmt"
	"math"
	"strconv"

	"github.com/ppiankov/casevalue/internal/model"
	"github.com/ppiankov/casevalue/internal/money"
	"github.com/ppiankov/casevalue/internal/questions"
)

// Scorer maps answers to factors using the catalog's weight tables
type Scorer struct {
	catalog *questions.Catalog
}

// NewScorer creates a new scorer
func NewScorer(catalog *questions.Catalog) *Scorer {
	return &Scorer{catalog: catalog}
}

// Score returns one factor per answered, scoreable question, in questionnaire
// order. Unknown ids, unknown choices and unparsable values are skipped.
func (s *Scorer) Score(caseType model.CaseType, answers model.Answers) []model.Factor {
	factors := make([]model.Factor, 0, len(answers))

	qs, err := s.catalog.Questions(caseType)
	if err != nil {
		return factors
	}

	for _, q := range qs {
		raw, ok := answers[q.ID]
		if !ok || raw == nil {
			continue
		}
		if f, ok := scoreAnswer(q, raw); ok {
			factors = append(factors, f)
		}
	}

	return factors
}

func scoreAnswer(q model.Question, raw any) (model.Factor, bool) {
	switch q.Type {
	case model.AnswerBoolean:
		b, ok := model.AsBool(raw)
		if !ok {
			return model.Factor{}, false
		}
		return fromEntry(q, strconv.FormatBool(b))

	case model.AnswerChoice:
		v, ok := model.AsString(raw)
		if !ok || !isOption(q, v) {
			return model.Factor{}, false
		}
		return fromEntry(q, v)

	case model.AnswerNumeric:
		x, ok := model.AsFloat(raw)
		if !ok || x < 0 || q.Contribution == nil {
			return model.Factor{}, false
		}
		if q.Max > 0 && x > q.Max {
			return model.Factor{}, false
		}
		weight, amount := Evaluate(q.Contribution, x)
		return model.Factor{
			Category:           q.Contribution.Category,
			QuestionID:         q.ID,
			Label:              fmt.Sprintf("%s: %s", q.Contribution.Label, formatQuantity(q.Contribution.Unit, x)),
			Weight:             weight,
			ContributionAmount: amount,
		}, true
	}

	// Dates, percentages and free text feed calculator inputs, not factors
	return model.Factor{}, false
}

func fromEntry(q model.Question, value string) (model.Factor, bool) {
	entry, ok := q.Weights[value]
	if !ok {
		return model.Factor{}, false
	}
	return model.Factor{
		Category:           entry.Category,
		QuestionID:         q.ID,
		Label:              entry.Label,
		Weight:             entry.Weight,
		ContributionAmount: entry.Amount,
	}, true
}

func isOption(q model.Question, v string) bool {
	for _, opt := range q.Options {
		if opt == v {
			return true
		}
	}
	return false
}

// Evaluate applies a contribution function to a non-negative magnitude.
// Every kind is non-decreasing in x.
func Evaluate(c *model.Contribution, x float64) (weight, amount float64) {
	switch c.Kind {
	case model.ContributionLinear:
		amount = c.Rate * x
		if c.Cap > 0 && amount > c.Cap {
			amount = c.Cap
		}
	case model.ContributionStepped:
		for _, step := range c.Steps {
			if x >= step.Min {
				weight = step.Weight
			}
		}
	case model.ContributionLog:
		weight = c.Scale * math.Log10(1+x)
		if c.Cap > 0 && weight > c.Cap {
			weight = c.Cap
		}
	}
	return weight, amount
}

func formatQuantity(unit model.Unit, x float64) string {
	switch unit {
	case model.UnitMoney:
		return money.USD(x)
	case model.UnitMonths:
		return money.Number(x) + " months"
	case model.UnitYears:
		return money.Number(x) + " years"
	case model.UnitWeeks:
		return money.Number(x) + " weeks"
	}
	return money.Number(x)
}
