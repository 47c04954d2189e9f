package rules

import (
	"fmt"
	"strings"

	"github.com/ppiankov/casevalue/internal/model"
)

// Normalize maps a jurisdiction code, name, slug or alias to its canonical code
func (t *Table) Normalize(identifier string) (string, error) {
	code, ok := t.index[normalizeKey(identifier)]
	if !ok {
		return "", fmt.Errorf("jurisdiction %q: %w", identifier, model.ErrNotFound)
	}
	return code, nil
}

// Info returns the summary for a jurisdiction identifier
func (t *Table) Info(identifier string) (JurisdictionInfo, error) {
	code, err := t.Normalize(identifier)
	if err != nil {
		return JurisdictionInfo{}, err
	}
	info := t.jurisdictions[code].info
	info.CaseTypes = append([]model.CaseType(nil), info.CaseTypes...)
	return info, nil
}

// Resolve returns the rule set for a jurisdiction and case type. The returned
// value shares nothing with the table.
func (t *Table) Resolve(identifier string, caseType model.CaseType) (model.JurisdictionRuleSet, error) {
	code, err := t.Normalize(identifier)
	if err != nil {
		return model.JurisdictionRuleSet{}, err
	}

	rs, ok := t.jurisdictions[code].rules[caseType]
	if !ok {
		return model.JurisdictionRuleSet{}, fmt.Errorf("%s rules for %s: %w", caseType, code, model.ErrNotFound)
	}

	return clone(rs), nil
}

func clone(rs model.JurisdictionRuleSet) model.JurisdictionRuleSet {
	rs.EconomicCap = cloneCap(rs.EconomicCap)
	rs.NonEconomicCap = cloneCap(rs.NonEconomicCap)
	rs.PunitiveCap = cloneCap(rs.PunitiveCap)
	rs.TotalCap = cloneCap(rs.TotalCap)
	if rs.StrictLiability != nil {
		v := *rs.StrictLiability
		rs.StrictLiability = &v
	}
	if rs.WorkersComp != nil {
		wc := *rs.WorkersComp
		rs.WorkersComp = &wc
	}
	return rs
}

func cloneCap(c *model.DamageCap) *model.DamageCap {
	if c == nil {
		return nil
	}
	v := *c
	return &v
}

// normalizeKey folds case and punctuation so "Washington D.C.", "washington-dc"
// and "WASHINGTON DC" share a key.
func normalizeKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, ".", "")
	s = strings.NewReplacer("-", " ", "_", " ").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}
