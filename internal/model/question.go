package model

// AnswerType is the input widget a question expects
type AnswerType string

const (
	AnswerBoolean AnswerType = "boolean"
	AnswerChoice  AnswerType = "choice"
	AnswerNumeric AnswerType = "numeric"
	AnswerDate    AnswerType = "date"
	AnswerPercent AnswerType = "percent"
	AnswerText    AnswerType = "text"
)

// Well-known question ids consumed as calculator inputs rather than factors
const (
	QuestionIncidentDate  = "incident_date"
	QuestionDiscoveryDate = "discovery_date"
	QuestionFault         = "fault_percentage"
)

// Question is one entry in a case type's questionnaire
type Question struct {
	ID      string     `json:"id" yaml:"id"`
	Prompt  string     `json:"prompt" yaml:"prompt"`
	Type    AnswerType `json:"type" yaml:"type"`
	Options []string   `json:"options,omitempty" yaml:"options,omitempty"`
	Min     float64    `json:"min,omitempty" yaml:"min,omitempty"`
	Max     float64    `json:"max,omitempty" yaml:"max,omitempty"`

	// Weights maps categorical answers ("true"/"false" or an option value) to
	// their factor contribution. Values absent from the map contribute nothing.
	Weights map[string]WeightEntry `json:"-" yaml:"-"`

	// Contribution scores numeric answers
	Contribution *Contribution `json:"-" yaml:"-"`
}

// WeightEntry is the factor produced by one categorical answer value
type WeightEntry struct {
	Category FactorCategory
	Label    string
	Weight   float64
	Amount   float64
}

// ContributionKind selects how a numeric answer is scored
type ContributionKind string

const (
	// ContributionLinear yields amount = Rate * x, bounded by Cap when Cap > 0
	ContributionLinear ContributionKind = "linear"
	// ContributionStepped yields the weight of the highest step whose Min <= x
	ContributionStepped ContributionKind = "stepped"
	// ContributionLog yields weight = Scale * log10(1 + x), bounded by Cap when Cap > 0
	ContributionLog ContributionKind = "log"
	// ContributionInfo records the answer as a zero-valued factor
	ContributionInfo ContributionKind = "info"
)

// Step is one threshold of a stepped contribution
type Step struct {
	Min    float64
	Weight float64
}

// Contribution is a continuous scoring function for numeric answers.
// Every kind is monotonic non-decreasing in the answer's magnitude.
type Contribution struct {
	Kind     ContributionKind
	Category FactorCategory
	Label    string
	Unit     Unit
	Rate     float64
	Cap      float64
	Scale    float64
	Steps    []Step
}

// Unit controls how a numeric answer is rendered in factor labels
type Unit string

const (
	UnitMoney  Unit = "money"
	UnitCount  Unit = "count"
	UnitMonths Unit = "months"
	UnitYears  Unit = "years"
	UnitWeeks  Unit = "weeks"
)

// Answers maps question ids to JSON-decoded answer values
type Answers map[string]any
