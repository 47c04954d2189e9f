// Package valuation combines factors with a jurisdiction's rules into a
// bounded dollar estimate.
package valuation

import (
	"fmt"
	"math"
	"time"

	"github.com/ppiankov/casevalue/internal/model"
)

// Inputs carries the non-factor facts of a claim
type Inputs struct {
	FaultPercentage *float64
	IncidentDate    *time.Time
	DiscoveryDate   *time.Time
}

// Calculator computes valuations. It holds no mutable state.
type Calculator struct {
	cfg model.ValuationConfig
	now func() time.Time
}

// Option configures a Calculator
type Option func(*Calculator)

// WithClock injects the time source used for limitation-period checks
func WithClock(now func() time.Time) Option {
	return func(c *Calculator) { c.now = now }
}

// NewCalculator creates a new calculator. Zero config fields fall back to defaults.
func NewCalculator(cfg model.ValuationConfig, opts ...Option) *Calculator {
	def := model.DefaultConfig().Valuation
	if cfg.MultiplierMin <= 0 {
		cfg.MultiplierMin = def.MultiplierMin
	}
	if cfg.MultiplierMax < cfg.MultiplierMin {
		cfg.MultiplierMax = math.Max(def.MultiplierMax, cfg.MultiplierMin)
	}
	if cfg.LiabilityMin <= 0 {
		cfg.LiabilityMin = def.LiabilityMin
	}
	if cfg.LiabilityMax < cfg.LiabilityMin {
		cfg.LiabilityMax = math.Max(def.LiabilityMax, cfg.LiabilityMin)
	}
	if cfg.BandPercent <= 0 || cfg.BandPercent >= 100 {
		cfg.BandPercent = def.BandPercent
	}
	if cfg.RoundTo <= 0 {
		cfg.RoundTo = def.RoundTo
	}

	c := &Calculator{cfg: cfg, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Calculate produces a valuation for one claim
func (c *Calculator) Calculate(rs model.JurisdictionRuleSet, factors []model.Factor, in Inputs) (model.ValuationResult, error) {
	fault := 0.0
	if in.FaultPercentage != nil {
		fault = *in.FaultPercentage
		if math.IsNaN(fault) || fault < 0 || fault > 100 {
			return model.ValuationResult{}, fmt.Errorf("fault percentage %v outside 0-100: %w", fault, model.ErrInvalidInput)
		}
	}
	for _, f := range factors {
		if math.IsNaN(f.Weight) || math.IsInf(f.Weight, 0) || math.IsNaN(f.ContributionAmount) || math.IsInf(f.ContributionAmount, 0) {
			return model.ValuationResult{}, fmt.Errorf("factor %q is not finite: %w", f.QuestionID, model.ErrInvalidInput)
		}
	}

	result := model.ValuationResult{
		Factors:                 append([]model.Factor{}, factors...),
		Warnings:                []model.Warning{},
		CapsApplied:             []model.CapApplication{},
		NegligenceRegimeApplied: rs.NegligenceRegime,
	}
	b := &result.Breakdown

	// 1. Bases and multipliers
	var severityWeight, liabilityWeight, punitiveWeight float64
	for _, f := range factors {
		switch f.Category {
		case model.CategoryEconomic:
			b.EconomicBase += f.ContributionAmount
		case model.CategorySeverity, model.CategoryAggravating:
			b.NonEconomicBase += f.ContributionAmount
			severityWeight += f.Weight
		case model.CategoryLiability:
			b.NonEconomicBase += f.ContributionAmount
			liabilityWeight += f.Weight
		case model.CategoryPunitive:
			punitiveWeight += f.Weight
		}
	}
	b.EconomicBase = math.Max(0, b.EconomicBase)
	b.NonEconomicBase = math.Max(0, b.NonEconomicBase)
	b.PainMultiplier = clamp(1+severityWeight, c.cfg.MultiplierMin, c.cfg.MultiplierMax)
	b.LiabilityAdjustment = clamp(1+liabilityWeight, c.cfg.LiabilityMin, c.cfg.LiabilityMax)

	economic := b.EconomicBase * b.LiabilityAdjustment
	nonEconomic := b.NonEconomicBase * b.PainMultiplier * b.LiabilityAdjustment

	// 2. Caps
	b.Economic, b.NonEconomic, b.Compensatory = applyCompensatoryCaps(rs, economic, nonEconomic, &result.CapsApplied)
	b.Punitive = applyPunitiveCap(rs, b.Compensatory*math.Max(0, punitiveWeight), b.Economic, b.Compensatory, &result.CapsApplied)
	b.PreFaultTotal = b.Compensatory + b.Punitive

	// 3. Fault
	b.FaultPercentage = fault
	total := b.PreFaultTotal
	if rs.CaseType == model.CaseWorkersComp {
		// Benefits are paid regardless of fault
		b.FaultPercentage = 0
	} else if w, barred := faultBar(rs.NegligenceRegime, fault); barred {
		result.Warnings = append(result.Warnings, w)
		b.FaultReduction = total
		total = 0
	} else {
		b.FaultReduction = total * fault / 100
		total -= b.FaultReduction
	}

	// 4. Rounding and band
	result.Value = roundTo(total, c.cfg.RoundTo, math.Round)
	band := c.cfg.BandPercent / 100
	result.LowRange = math.Max(0, roundTo(result.Value*(1-band), c.cfg.RoundTo, math.Floor))
	result.HighRange = roundTo(result.Value*(1+band), c.cfg.RoundTo, math.Ceil)

	// 5. Advisories
	result.Warnings = append(result.Warnings, limitationWarning(rs, in, c.now()))
	result.Warnings = append(result.Warnings, ruleWarnings(rs)...)

	return result, nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

// roundTo rounds v to a multiple of step. The quotient is first snapped to
// micro-units so float noise cannot push Floor or Ceil across a boundary.
func roundTo(v, step float64, round func(float64) float64) float64 {
	q := math.Round(v/step*1e6) / 1e6
	return math.Max(0, round(q)*step)
}
