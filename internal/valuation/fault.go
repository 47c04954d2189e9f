package valuation

import (
	"fmt"

	"github.com/ppiankov/casevalue/internal/model"
)

// faultBar reports whether the claimant's fault bars recovery under the regime
func faultBar(regime model.NegligenceRegime, fault float64) (model.Warning, bool) {
	switch regime {
	case model.Contributory:
		if fault > 0 {
			return model.Warning{
				Code:     model.WarnContributoryBar,
				Severity: model.SeverityCritical,
				Message: fmt.Sprintf("This jurisdiction follows contributory negligence. "+
					"Any fault on your part (you reported %g%%) bars recovery.", fault),
			}, true
		}
	case model.ModifiedComparative50, model.ModifiedComparative51:
		threshold, _ := regime.BarThreshold()
		if fault >= threshold {
			return model.Warning{
				Code:     model.WarnFaultThresholdBar,
				Severity: model.SeverityCritical,
				Message: fmt.Sprintf("Recovery is barred at %g%% fault or more in this jurisdiction; "+
					"you reported %g%%.", threshold, fault),
			}, true
		}
	}
	return model.Warning{}, false
}
