package model

import (
	"fmt"
	"math"
)

// NegligenceRegime is a jurisdiction's rule for apportioning fault
type NegligenceRegime string

const (
	PureComparative       NegligenceRegime = "pure_comparative"
	ModifiedComparative50 NegligenceRegime = "modified_comparative_50"
	ModifiedComparative51 NegligenceRegime = "modified_comparative_51"
	Contributory          NegligenceRegime = "contributory"
)

// Valid reports whether r is a known regime
func (r NegligenceRegime) Valid() bool {
	switch r {
	case PureComparative, ModifiedComparative50, ModifiedComparative51, Contributory:
		return true
	}
	return false
}

// BarThreshold returns the claimant fault percentage at or above which
// recovery is barred. Pure comparative never bars; contributory bars any fault.
func (r NegligenceRegime) BarThreshold() (float64, bool) {
	switch r {
	case ModifiedComparative50:
		return 50, true
	case ModifiedComparative51:
		return 51, true
	case Contributory:
		return 0, true
	}
	return 0, false
}

// Describe returns a short human-readable explanation of the regime
func (r NegligenceRegime) Describe() string {
	switch r {
	case PureComparative:
		return "Pure comparative negligence: recovery is reduced by your percentage of fault"
	case ModifiedComparative50:
		return "Modified comparative negligence (50% bar): recovery is barred at 50% fault or more"
	case ModifiedComparative51:
		return "Modified comparative negligence (51% bar): recovery is barred at 51% fault or more"
	case Contributory:
		return "Contributory negligence: any fault on your part bars recovery"
	}
	return string(r)
}

// CapKind selects a damage cap evaluation strategy
type CapKind string

const (
	CapFixed    CapKind = "fixed"
	CapMultiple CapKind = "multiple"
)

// CapBase is the subtotal a multiple-of cap is computed against
type CapBase string

const (
	BaseCompensatory CapBase = "compensatory"
	BaseEconomic     CapBase = "economic"
)

// CapBound combines a multiple-of limit with the cap's fixed amount
type CapBound string

const (
	BoundNone    CapBound = ""
	BoundLesser  CapBound = "lesser"
	BoundGreater CapBound = "greater"
)

// DamageCap is a statutory ceiling on a category of damages.
// A nil *DamageCap means the category is uncapped.
type DamageCap struct {
	Kind     CapKind  `yaml:"kind" json:"kind"`
	Amount   float64  `yaml:"amount,omitempty" json:"amount,omitempty"`
	Multiple float64  `yaml:"multiple,omitempty" json:"multiple,omitempty"`
	Base     CapBase  `yaml:"base,omitempty" json:"base,omitempty"`
	Bound    CapBound `yaml:"bound,omitempty" json:"bound,omitempty"`
}

// CapBasis carries the subtotals a formula cap may reference
type CapBasis struct {
	Economic     float64
	Compensatory float64
}

// Limit evaluates the cap against the given subtotals
func (c *DamageCap) Limit(basis CapBasis) float64 {
	if c == nil {
		return math.Inf(1)
	}

	switch c.Kind {
	case CapFixed:
		return c.Amount
	case CapMultiple:
		base := basis.Compensatory
		if c.Base == BaseEconomic {
			base = basis.Economic
		}
		limit := c.Multiple * base
		switch c.Bound {
		case BoundLesser:
			return math.Min(limit, c.Amount)
		case BoundGreater:
			return math.Max(limit, c.Amount)
		}
		return limit
	}

	return math.Inf(1)
}

// Strategy returns a compact description such as "fixed" or "lesser of 3x compensatory or amount"
func (c *DamageCap) Strategy() string {
	if c == nil {
		return "none"
	}
	if c.Kind == CapFixed {
		return "fixed"
	}

	base := c.Base
	if base == "" {
		base = BaseCompensatory
	}
	formula := fmt.Sprintf("%gx %s", c.Multiple, base)
	switch c.Bound {
	case BoundLesser:
		return "lesser of " + formula + " or amount"
	case BoundGreater:
		return "greater of " + formula + " or amount"
	}
	return formula
}

// Validate checks the cap is well-formed
func (c *DamageCap) Validate() error {
	if c == nil {
		return nil
	}

	switch c.Kind {
	case CapFixed:
		if c.Amount <= 0 {
			return fmt.Errorf("fixed cap requires a positive amount")
		}
	case CapMultiple:
		if c.Multiple <= 0 {
			return fmt.Errorf("multiple cap requires a positive multiple")
		}
		switch c.Base {
		case "", BaseCompensatory, BaseEconomic:
		default:
			return fmt.Errorf("unknown cap base %q", c.Base)
		}
		switch c.Bound {
		case BoundNone:
		case BoundLesser, BoundGreater:
			if c.Amount <= 0 {
				return fmt.Errorf("%s-of cap requires a positive amount", c.Bound)
			}
		default:
			return fmt.Errorf("unknown cap bound %q", c.Bound)
		}
	default:
		return fmt.Errorf("unknown cap kind %q", c.Kind)
	}

	return nil
}

// WorkersCompRules holds a jurisdiction's workers' compensation benefit parameters
type WorkersCompRules struct {
	TTDRate               float64 `yaml:"ttd_rate" json:"ttd_rate"`
	MaxWeeklyBenefit      float64 `yaml:"max_weekly_benefit" json:"max_weekly_benefit"`
	MinWeeklyBenefit      float64 `yaml:"min_weekly_benefit" json:"min_weekly_benefit"`
	MaxWeeksTTD           float64 `yaml:"max_weeks_ttd,omitempty" json:"max_weeks_ttd,omitempty"`
	MaxWeeksPPD           float64 `yaml:"max_weeks_ppd,omitempty" json:"max_weeks_ppd,omitempty"`
	WaitingPeriodDays     float64 `yaml:"waiting_period_days" json:"waiting_period_days"`
	RetroactivePeriodDays float64 `yaml:"retroactive_period_days" json:"retroactive_period_days"`
	ImpairmentGuide       string  `yaml:"impairment_guide,omitempty" json:"impairment_guide,omitempty"`
	ChoiceOfDoctor        bool    `yaml:"choice_of_doctor" json:"choice_of_doctor"`
	MonopolisticStateFund bool    `yaml:"monopolistic_state_fund,omitempty" json:"monopolistic_state_fund,omitempty"`
	NonSubscriberState    bool    `yaml:"non_subscriber_state,omitempty" json:"non_subscriber_state,omitempty"`
}

// JurisdictionRuleSet is the legal parameter record for one jurisdiction and case type
type JurisdictionRuleSet struct {
	Jurisdiction     string           `json:"jurisdiction"`
	JurisdictionName string           `json:"jurisdiction_name"`
	CaseType         CaseType         `json:"case_type"`
	NegligenceRegime NegligenceRegime `json:"negligence_regime"`

	EconomicCap    *DamageCap `json:"economic_cap,omitempty"`
	NonEconomicCap *DamageCap `json:"non_economic_cap,omitempty"`
	PunitiveCap    *DamageCap `json:"punitive_cap,omitempty"`
	TotalCap       *DamageCap `json:"total_cap,omitempty"`

	StatuteOfLimitationsYears float64 `json:"statute_of_limitations_years"`
	DiscoveryRule             bool    `json:"discovery_rule"`
	StrictLiability           *bool   `json:"strict_liability,omitempty"`
	NoFault                   bool    `json:"no_fault,omitempty"`

	WorkersComp *WorkersCompRules `json:"workers_comp,omitempty"`
}
