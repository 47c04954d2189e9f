package valuation

import (
	"math"

	"github.com/ppiankov/casevalue/internal/model"
)

// applyCompensatoryCaps constrains the economic and non-economic subtotals and
// their sum. Formula caps see the already-capped economic figure.
func applyCompensatoryCaps(rs model.JurisdictionRuleSet, economic, nonEconomic float64, applied *[]model.CapApplication) (float64, float64, float64) {
	economic = bind(rs.EconomicCap, model.CapTargetEconomic, economic,
		model.CapBasis{Economic: economic, Compensatory: economic + nonEconomic}, applied)

	nonEconomic = bind(rs.NonEconomicCap, model.CapTargetNonEconomic, nonEconomic,
		model.CapBasis{Economic: economic, Compensatory: economic + nonEconomic}, applied)

	compensatory := economic + nonEconomic
	capped := bind(rs.TotalCap, model.CapTargetTotal, compensatory,
		model.CapBasis{Economic: economic, Compensatory: compensatory}, applied)
	if capped < compensatory {
		// Keep the breakdown consistent by scaling both parts
		scale := capped / compensatory
		economic *= scale
		nonEconomic *= scale
		compensatory = capped
	}

	return economic, nonEconomic, compensatory
}

func applyPunitiveCap(rs model.JurisdictionRuleSet, punitive, economic, compensatory float64, applied *[]model.CapApplication) float64 {
	if punitive <= 0 {
		return 0
	}
	return bind(rs.PunitiveCap, model.CapTargetPunitive, punitive,
		model.CapBasis{Economic: economic, Compensatory: compensatory}, applied)
}

// bind records and applies a cap only when it lowers the amount
func bind(c *model.DamageCap, target model.CapTarget, amount float64, basis model.CapBasis, applied *[]model.CapApplication) float64 {
	if c == nil {
		return amount
	}
	limit := math.Max(0, c.Limit(basis))
	if amount <= limit {
		return amount
	}
	*applied = append(*applied, model.CapApplication{
		Target:   target,
		Strategy: c.Strategy(),
		Limit:    limit,
		Before:   amount,
		After:    limit,
	})
	return limit
}
