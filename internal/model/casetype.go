package model

import (
	"fmt"
	"strings"
)

// CaseType identifies a category of legal claim
type CaseType string

const (
	CaseMotor         CaseType = "motor"
	CaseMedical       CaseType = "medical"
	CasePremises      CaseType = "premises"
	CaseProduct       CaseType = "product"
	CaseWrongfulDeath CaseType = "wrongful_death"
	CaseDogBite       CaseType = "dog_bite"
	CaseWrongfulTerm  CaseType = "wrongful_term"
	CaseWage          CaseType = "wage"
	CaseClassAction   CaseType = "class_action"
	CaseInsurance     CaseType = "insurance"
	CaseDisability    CaseType = "disability"
	CaseProfessional  CaseType = "professional"
	CaseCivilRights   CaseType = "civil_rights"
	CaseIP            CaseType = "ip"
	CaseWorkersComp   CaseType = "workers_comp"
	CaseLemonLaw      CaseType = "lemon_law"
)

type caseTypeInfo struct {
	slug string
	name string
}

var caseTypes = map[CaseType]caseTypeInfo{
	CaseMotor:         {"motor-vehicle-accident", "Motor Vehicle Accident"},
	CaseMedical:       {"medical-malpractice", "Medical Malpractice"},
	CasePremises:      {"premises-liability", "Premises Liability"},
	CaseProduct:       {"product-liability", "Product Liability"},
	CaseWrongfulDeath: {"wrongful-death", "Wrongful Death"},
	CaseDogBite:       {"dog-bite", "Dog Bite"},
	CaseWrongfulTerm:  {"wrongful-termination", "Wrongful Termination"},
	CaseWage:          {"wage-and-hour", "Wage and Hour"},
	CaseClassAction:   {"class-action", "Class Action"},
	CaseInsurance:     {"insurance-bad-faith", "Insurance Bad Faith"},
	CaseDisability:    {"disability-denial", "Disability Denial"},
	CaseProfessional:  {"professional-malpractice", "Professional Malpractice"},
	CaseCivilRights:   {"civil-rights", "Civil Rights"},
	CaseIP:            {"intellectual-property", "Intellectual Property"},
	CaseWorkersComp:   {"workers-compensation", "Workers' Compensation"},
	CaseLemonLaw:      {"lemon-law", "Lemon Law"},
}

// Blog category slugs that map onto a case type. The generic personal-injury
// category lands on motor vehicle claims.
var categoryAliases = map[string]CaseType{
	"motor-vehicle":   CaseMotor,
	"dog-bites":       CaseDogBite,
	"employment-law":  CaseWrongfulTerm,
	"disability":      CaseDisability,
	"personal-injury": CaseMotor,
}

// AllCaseTypes returns every case type in catalog order
func AllCaseTypes() []CaseType {
	return []CaseType{
		CaseMotor, CaseMedical, CasePremises, CaseProduct, CaseWrongfulDeath,
		CaseDogBite, CaseWrongfulTerm, CaseWage, CaseClassAction, CaseInsurance,
		CaseDisability, CaseProfessional, CaseCivilRights, CaseIP, CaseWorkersComp,
		CaseLemonLaw,
	}
}

// Valid reports whether c is a known case type
func (c CaseType) Valid() bool {
	_, ok := caseTypes[c]
	return ok
}

// Slug returns the URL slug for the case type
func (c CaseType) Slug() string {
	return caseTypes[c].slug
}

// DisplayName returns a human-readable name
func (c CaseType) DisplayName() string {
	if info, ok := caseTypes[c]; ok {
		return info.name
	}
	return string(c)
}

// ParseCaseType resolves an id, URL slug or blog category to a case type.
func ParseCaseType(s string) (CaseType, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" {
		return "", fmt.Errorf("empty case type: %w", ErrNotFound)
	}

	if ct := CaseType(key); ct.Valid() {
		return ct, nil
	}

	for ct, info := range caseTypes {
		if info.slug == key {
			return ct, nil
		}
	}

	if ct, ok := categoryAliases[key]; ok {
		return ct, nil
	}

	// Slugs with underscores, ids with dashes
	if ct := CaseType(strings.ReplaceAll(key, "-", "_")); ct.Valid() {
		return ct, nil
	}

	return "", fmt.Errorf("case type %q: %w", s, ErrNotFound)
}
