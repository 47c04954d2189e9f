// Package rules loads the jurisdiction legal-parameter dataset and resolves
// rule sets for a (jurisdiction, case type) pair.
package rules

import (
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ppiankov/casevalue/internal/model"
	"gopkg.in/yaml.v3"
)

//go:embed data/jurisdictions.yaml
var embeddedDataset []byte

// dataset mirrors the YAML file layout
type dataset struct {
	Version       string               `yaml:"version"`
	Jurisdictions []jurisdictionRecord `yaml:"jurisdictions"`
}

type jurisdictionRecord struct {
	Code       string                 `yaml:"code"`
	Name       string                 `yaml:"name"`
	Slug       string                 `yaml:"slug"`
	Aliases    []string               `yaml:"aliases"`
	Negligence model.NegligenceRegime `yaml:"negligence"`
	CaseTypes  map[string]caseRecord  `yaml:"case_types"`
}

type caseRecord struct {
	StatuteOfLimitationsYears float64                 `yaml:"statute_of_limitations_years"`
	DiscoveryRule             bool                    `yaml:"discovery_rule"`
	StrictLiability           *bool                   `yaml:"strict_liability"`
	NoFault                   bool                    `yaml:"no_fault"`
	EconomicCap               *model.DamageCap        `yaml:"economic_cap"`
	NonEconomicCap            *model.DamageCap        `yaml:"non_economic_cap"`
	PunitiveCap               *model.DamageCap        `yaml:"punitive_cap"`
	TotalCap                  *model.DamageCap        `yaml:"total_cap"`
	WorkersComp               *model.WorkersCompRules `yaml:"workers_comp"`
}

// JurisdictionInfo summarizes one jurisdiction
type JurisdictionInfo struct {
	Code       string                 `json:"code"`
	Name       string                 `json:"name"`
	Slug       string                 `json:"slug"`
	Negligence model.NegligenceRegime `json:"negligence"`
	CaseTypes  []model.CaseType       `json:"case_types"`
}

type jurisdiction struct {
	info  JurisdictionInfo
	rules map[model.CaseType]model.JurisdictionRuleSet
}

// Table is the immutable, validated legal dataset. It is safe for concurrent use.
type Table struct {
	version       string
	digest        string
	jurisdictions map[string]*jurisdiction // by code
	index         map[string]string        // normalized identifier -> code
	codes         []string
}

// LoadEmbedded loads the dataset compiled into the binary
func LoadEmbedded() (*Table, error) {
	return Parse(embeddedDataset)
}

// LoadFile loads a dataset from disk
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}

	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Load loads the override file when path is set, the embedded dataset otherwise
func Load(path string) (*Table, error) {
	if path == "" {
		return LoadEmbedded()
	}
	return LoadFile(path)
}

// Parse decodes and validates a YAML dataset
func Parse(data []byte) (*Table, error) {
	var ds dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("decode rules: %w", err)
	}

	if len(ds.Jurisdictions) == 0 {
		return nil, fmt.Errorf("rules dataset has no jurisdictions")
	}

	sum := sha256.Sum256(data)
	t := &Table{
		version:       ds.Version,
		digest:        hex.EncodeToString(sum[:8]),
		jurisdictions: make(map[string]*jurisdiction, len(ds.Jurisdictions)),
		index:         make(map[string]string),
	}

	for _, rec := range ds.Jurisdictions {
		j, err := buildJurisdiction(rec)
		if err != nil {
			return nil, err
		}

		code := j.info.Code
		if _, dup := t.jurisdictions[code]; dup {
			return nil, fmt.Errorf("duplicate jurisdiction %s", code)
		}
		t.jurisdictions[code] = j
		t.codes = append(t.codes, code)

		keys := append([]string{code, j.info.Name, j.info.Slug}, rec.Aliases...)
		for _, k := range keys {
			nk := normalizeKey(k)
			if nk == "" {
				continue
			}
			if owner, taken := t.index[nk]; taken && owner != code {
				return nil, fmt.Errorf("identifier %q claimed by both %s and %s", k, owner, code)
			}
			t.index[nk] = code
		}
	}

	sort.Strings(t.codes)
	return t, nil
}

func buildJurisdiction(rec jurisdictionRecord) (*jurisdiction, error) {
	code := strings.ToUpper(strings.TrimSpace(rec.Code))
	if len(code) != 2 {
		return nil, fmt.Errorf("jurisdiction code %q must be two letters", rec.Code)
	}
	if rec.Name == "" {
		return nil, fmt.Errorf("%s: missing name", code)
	}
	if !rec.Negligence.Valid() {
		return nil, fmt.Errorf("%s: unknown negligence regime %q", code, rec.Negligence)
	}

	j := &jurisdiction{
		info: JurisdictionInfo{
			Code:       code,
			Name:       rec.Name,
			Slug:       rec.Slug,
			Negligence: rec.Negligence,
		},
		rules: make(map[model.CaseType]model.JurisdictionRuleSet, len(rec.CaseTypes)),
	}

	for key, cr := range rec.CaseTypes {
		ct := model.CaseType(key)
		if !ct.Valid() {
			return nil, fmt.Errorf("%s: unknown case type %q", code, key)
		}
		if cr.StatuteOfLimitationsYears <= 0 {
			return nil, fmt.Errorf("%s/%s: statute of limitations must be positive", code, key)
		}

		caps := map[string]*model.DamageCap{
			"economic_cap":     cr.EconomicCap,
			"non_economic_cap": cr.NonEconomicCap,
			"punitive_cap":     cr.PunitiveCap,
			"total_cap":        cr.TotalCap,
		}
		for name, c := range caps {
			if err := c.Validate(); err != nil {
				return nil, fmt.Errorf("%s/%s %s: %w", code, key, name, err)
			}
		}

		if cr.WorkersComp != nil {
			if ct != model.CaseWorkersComp {
				return nil, fmt.Errorf("%s/%s: workers_comp parameters on a non workers' compensation case type", code, key)
			}
			if err := validateWorkersComp(cr.WorkersComp); err != nil {
				return nil, fmt.Errorf("%s/%s: %w", code, key, err)
			}
		}

		j.rules[ct] = model.JurisdictionRuleSet{
			Jurisdiction:              code,
			JurisdictionName:          rec.Name,
			CaseType:                  ct,
			NegligenceRegime:          rec.Negligence,
			EconomicCap:               cr.EconomicCap,
			NonEconomicCap:            cr.NonEconomicCap,
			PunitiveCap:               cr.PunitiveCap,
			TotalCap:                  cr.TotalCap,
			StatuteOfLimitationsYears: cr.StatuteOfLimitationsYears,
			DiscoveryRule:             cr.DiscoveryRule,
			StrictLiability:           cr.StrictLiability,
			NoFault:                   cr.NoFault,
			WorkersComp:               cr.WorkersComp,
		}
		j.info.CaseTypes = append(j.info.CaseTypes, ct)
	}

	sort.Slice(j.info.CaseTypes, func(a, b int) bool {
		return j.info.CaseTypes[a] < j.info.CaseTypes[b]
	})

	return j, nil
}

func validateWorkersComp(wc *model.WorkersCompRules) error {
	if wc.TTDRate <= 0 || wc.TTDRate > 1 {
		return fmt.Errorf("ttd_rate %v outside (0, 1]", wc.TTDRate)
	}
	if wc.MaxWeeklyBenefit <= 0 {
		return fmt.Errorf("max_weekly_benefit must be positive")
	}
	if wc.MinWeeklyBenefit < 0 || wc.MinWeeklyBenefit > wc.MaxWeeklyBenefit {
		return fmt.Errorf("min_weekly_benefit %v outside [0, %v]", wc.MinWeeklyBenefit, wc.MaxWeeklyBenefit)
	}
	return nil
}

// Version returns the dataset version string
func (t *Table) Version() string {
	return t.version
}

// Digest identifies the exact dataset bytes. Two files sharing a version
// string but differing in content have different digests.
func (t *Table) Digest() string {
	return t.digest
}

// Jurisdictions lists every jurisdiction sorted by code
func (t *Table) Jurisdictions() []JurisdictionInfo {
	out := make([]JurisdictionInfo, 0, len(t.codes))
	for _, code := range t.codes {
		info := t.jurisdictions[code].info
		info.CaseTypes = append([]model.CaseType(nil), info.CaseTypes...)
		out = append(out, info)
	}
	return out
}
