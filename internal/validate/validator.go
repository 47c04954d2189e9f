// Package validate checks estimate requests and answers before valuation.
package validate

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/ppiankov/casevalue/internal/model"
	"github.com/ppiankov/casevalue/internal/questions"
)

// Issue describes one rejected field
type Issue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error collects every issue found in a request. It wraps model.ErrInvalidInput.
type Error struct {
	Issues []Issue
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		parts = append(parts, is.Field+": "+is.Message)
	}
	return "invalid request: " + strings.Join(parts, "; ")
}

func (e *Error) Unwrap() error {
	return model.ErrInvalidInput
}

// Checked is a request reduced to typed calculator inputs
type Checked struct {
	CaseType      model.CaseType
	Jurisdiction  string
	Answers       model.Answers
	Fault         *float64
	IncidentDate  *time.Time
	DiscoveryDate *time.Time
	// Ignored lists answer ids that belong to no question of the case type
	Ignored []string
}

// Validator checks requests against the question catalog
type Validator struct {
	catalog *questions.Catalog
	now     func() time.Time
}

// NewValidator creates a new validator
func NewValidator(catalog *questions.Catalog, now func() time.Time) *Validator {
	if now == nil {
		now = time.Now
	}
	return &Validator{catalog: catalog, now: now}
}

// Request validates a request and extracts its typed inputs. An unknown case
// type wraps model.ErrNotFound; every other problem is reported together in
// an *Error.
func (v *Validator) Request(req model.EstimateRequest) (Checked, error) {
	ct, err := model.ParseCaseType(req.CaseType)
	if err != nil {
		return Checked{}, err
	}

	out := Checked{CaseType: ct, Jurisdiction: strings.TrimSpace(req.Jurisdiction), Answers: req.Answers}
	if out.Answers == nil {
		out.Answers = model.Answers{}
	}

	var issues []Issue
	if out.Jurisdiction == "" {
		issues = append(issues, Issue{Field: "jurisdiction", Message: "required"})
	}

	answerIssues, ignored := v.Answers(ct, out.Answers)
	issues = append(issues, answerIssues...)
	out.Ignored = ignored

	// Explicit request fields take precedence over answers
	out.Fault, issues = v.fault(req, out.Answers, issues)
	out.IncidentDate, issues = v.date("incident_date", req.IncidentDate, out.Answers, model.QuestionIncidentDate, issues)
	out.DiscoveryDate, issues = v.date("discovery_date", req.DiscoveryDate, out.Answers, model.QuestionDiscoveryDate, issues)

	if out.IncidentDate != nil && out.DiscoveryDate != nil && out.DiscoveryDate.Before(*out.IncidentDate) {
		issues = append(issues, Issue{Field: "discovery_date", Message: "before the incident date"})
	}

	if len(issues) > 0 {
		return Checked{}, &Error{Issues: issues}
	}
	return out, nil
}

// Answers checks each answer against its question. Unknown ids are not
// errors; they are returned so callers can report them.
func (v *Validator) Answers(ct model.CaseType, answers model.Answers) ([]Issue, []string) {
	var issues []Issue
	var ignored []string

	qs, err := v.catalog.Questions(ct)
	if err != nil {
		return []Issue{{Field: "case_type", Message: err.Error()}}, nil
	}
	byID := make(map[string]model.Question, len(qs))
	for _, q := range qs {
		byID[q.ID] = q
	}

	for _, id := range slices.Sorted(maps.Keys(answers)) {
		q, ok := byID[id]
		if !ok {
			ignored = append(ignored, id)
			continue
		}
		if msg := checkAnswer(q, answers[id]); msg != "" {
			issues = append(issues, Issue{Field: "answers." + id, Message: msg})
		}
	}

	return issues, ignored
}

func checkAnswer(q model.Question, raw any) string {
	if raw == nil {
		return ""
	}

	switch q.Type {
	case model.AnswerBoolean:
		if _, ok := model.AsBool(raw); !ok {
			return "expected yes or no"
		}
	case model.AnswerChoice:
		s, ok := model.AsString(raw)
		if !ok {
			return "expected one of " + strings.Join(q.Options, ", ")
		}
		for _, opt := range q.Options {
			if opt == s {
				return ""
			}
		}
		return fmt.Sprintf("%q is not one of %s", s, strings.Join(q.Options, ", "))
	case model.AnswerNumeric, model.AnswerPercent:
		x, ok := model.AsFloat(raw)
		if !ok {
			return "expected a number"
		}
		if x < q.Min {
			return fmt.Sprintf("must be at least %g", q.Min)
		}
		if q.Max > 0 && x > q.Max {
			return fmt.Sprintf("must be at most %g", q.Max)
		}
	case model.AnswerDate:
		if _, ok := model.AsDate(raw); !ok {
			return "expected a date (YYYY-MM-DD)"
		}
	case model.AnswerText:
		if _, ok := raw.(string); !ok {
			return "expected text"
		}
	}
	return ""
}

func (v *Validator) fault(req model.EstimateRequest, answers model.Answers, issues []Issue) (*float64, []Issue) {
	var f float64
	switch {
	case req.FaultPercentage != nil:
		f = *req.FaultPercentage
	case answers[model.QuestionFault] != nil:
		parsed, ok := answers.Float(model.QuestionFault)
		if !ok {
			// already reported by Answers
			return nil, issues
		}
		f = parsed
	default:
		return nil, issues
	}

	if math.IsNaN(f) || f < 0 || f > 100 {
		return nil, append(issues, Issue{Field: "fault_percentage", Message: "must be between 0 and 100"})
	}
	return &f, issues
}

func (v *Validator) date(field, explicit string, answers model.Answers, answerID string, issues []Issue) (*time.Time, []Issue) {
	var raw any
	switch {
	case strings.TrimSpace(explicit) != "":
		raw = explicit
	case answers[answerID] != nil:
		raw = answers[answerID]
	default:
		return nil, issues
	}

	d, ok := model.AsDate(raw)
	if !ok {
		if explicit != "" {
			issues = append(issues, Issue{Field: field, Message: "expected a date (YYYY-MM-DD)"})
		}
		return nil, issues
	}
	if d.After(v.now()) {
		return nil, append(issues, Issue{Field: field, Message: "in the future"})
	}
	return &d, issues
}
