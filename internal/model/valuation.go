package model

// WarningCode classifies an advisory warning
type WarningCode string

const (
	WarnStatuteOfLimitations  WarningCode = "STATUTE_OF_LIMITATIONS"
	WarnContributoryBar       WarningCode = "BARRED_BY_CONTRIBUTORY_FAULT"
	WarnFaultThresholdBar     WarningCode = "BARRED_BY_FAULT_THRESHOLD"
	WarnNoFaultState          WarningCode = "NO_FAULT_STATE"
	WarnOneBiteRule           WarningCode = "ONE_BITE_RULE"
	WarnNonSubscriberEmployer WarningCode = "NON_SUBSCRIBER_EMPLOYER"
)

// Severity indicates the importance of a warning
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Warning is an advisory attached to a valuation
type Warning struct {
	Code     WarningCode `json:"code"`
	Severity Severity    `json:"severity"`
	Message  string      `json:"message"`
}

// CapTarget names the subtotal a cap constrains
type CapTarget string

const (
	CapTargetEconomic    CapTarget = "economic"
	CapTargetNonEconomic CapTarget = "non_economic"
	CapTargetPunitive    CapTarget = "punitive"
	CapTargetTotal       CapTarget = "total"
)

// CapApplication records a cap that changed a subtotal
type CapApplication struct {
	Target   CapTarget `json:"target"`
	Strategy string    `json:"strategy"`
	Limit    float64   `json:"limit"`
	Before   float64   `json:"before"`
	After    float64   `json:"after"`
}

// Breakdown exposes the intermediate subtotals of a valuation
type Breakdown struct {
	EconomicBase        float64 `json:"economic_base"`
	NonEconomicBase     float64 `json:"non_economic_base"`
	PainMultiplier      float64 `json:"pain_multiplier"`
	LiabilityAdjustment float64 `json:"liability_adjustment"`
	Economic            float64 `json:"economic"`
	NonEconomic         float64 `json:"non_economic"`
	Compensatory        float64 `json:"compensatory"`
	Punitive            float64 `json:"punitive"`
	PreFaultTotal       float64 `json:"pre_fault_total"`
	FaultPercentage     float64 `json:"fault_percentage"`
	FaultReduction      float64 `json:"fault_reduction"`
}

// ValuationResult is the output of one valuation
type ValuationResult struct {
	Value                   float64          `json:"value"`
	LowRange                float64          `json:"low_range"`
	HighRange               float64          `json:"high_range"`
	Factors                 []Factor         `json:"factors"`
	Warnings                []Warning        `json:"warnings"`
	NegligenceRegimeApplied NegligenceRegime `json:"negligence_regime_applied"`
	CapsApplied             []CapApplication `json:"caps_applied"`
	Breakdown               Breakdown        `json:"breakdown"`
}

// Barred reports whether a fault bar zeroed the valuation
func (r ValuationResult) Barred() bool {
	for _, w := range r.Warnings {
		if w.Code == WarnContributoryBar || w.Code == WarnFaultThresholdBar {
			return true
		}
	}
	return false
}

// ShareContext identifies what a shared valuation was computed for
type ShareContext struct {
	CaseType     CaseType `json:"case_type"`
	Jurisdiction string   `json:"jurisdiction"`
}
