package valuation

import (
	"fmt"
	"math"
	"time"

	"github.com/ppiankov/casevalue/internal/model"
)

const hoursPerYear = 365.25 * 24

// limitationWarning grades the time left to file. It never changes the value.
func limitationWarning(rs model.JurisdictionRuleSet, in Inputs, now time.Time) model.Warning {
	years := rs.StatuteOfLimitationsYears
	w := model.Warning{Code: model.WarnStatuteOfLimitations, Severity: model.SeverityInfo}

	start := in.IncidentDate
	from := "the incident"
	if rs.DiscoveryRule && in.DiscoveryDate != nil {
		start = in.DiscoveryDate
		from = "discovery of the harm"
	}

	if start == nil {
		w.Message = fmt.Sprintf("The filing deadline in %s is %s from %s.",
			nameOf(rs), formatYears(years), from)
		return w
	}

	deadline := start.Add(time.Duration(years * hoursPerYear * float64(time.Hour)))
	remaining := deadline.Sub(now)

	switch {
	case remaining < 0:
		w.Severity = model.SeverityCritical
		w.Message = fmt.Sprintf("The limitation period of %s from %s appears to have expired on %s. "+
			"Your claim may be time-barred; consult an attorney immediately.",
			formatYears(years), from, deadline.Format(model.DateLayout))
	case remaining < time.Duration(hoursPerYear*float64(time.Hour)):
		w.Severity = model.SeverityWarning
		w.Message = fmt.Sprintf("Less than a year remains to file: the deadline is %s (%d days).",
			deadline.Format(model.DateLayout), int(math.Ceil(remaining.Hours()/24)))
	default:
		w.Message = fmt.Sprintf("The filing deadline is %s, %s from %s.",
			deadline.Format(model.DateLayout), formatYears(years), from)
	}

	return w
}

// ruleWarnings flags jurisdiction rules that may change the route to recovery
func ruleWarnings(rs model.JurisdictionRuleSet) []model.Warning {
	var out []model.Warning

	if rs.CaseType == model.CaseMotor && rs.NoFault {
		out = append(out, model.Warning{
			Code:     model.WarnNoFaultState,
			Severity: model.SeverityWarning,
			Message: fmt.Sprintf("%s is a no-fault state. Your own insurance pays first, "+
				"and a lawsuit may require meeting a serious-injury threshold.", nameOf(rs)),
		})
	}

	if rs.CaseType == model.CaseDogBite && rs.StrictLiability != nil && !*rs.StrictLiability {
		out = append(out, model.Warning{
			Code:     model.WarnOneBiteRule,
			Severity: model.SeverityWarning,
			Message: fmt.Sprintf("%s follows the one-bite rule. You may need to show the owner "+
				"knew of the dog's dangerous tendencies.", nameOf(rs)),
		})
	}

	return out
}

func nameOf(rs model.JurisdictionRuleSet) string {
	if rs.JurisdictionName != "" {
		return rs.JurisdictionName
	}
	return rs.Jurisdiction
}

func formatYears(years float64) string {
	if years == 1 {
		return "1 year"
	}
	return fmt.Sprintf("%g years", years)
}
