package model

// FactorCategory groups factors by how the calculator treats them
type FactorCategory string

const (
	CategoryEconomic    FactorCategory = "economic"
	CategorySeverity    FactorCategory = "severity"
	CategoryLiability   FactorCategory = "liability"
	CategoryAggravating FactorCategory = "aggravating"
	CategoryPunitive    FactorCategory = "punitive"
)

// Factor is one scored answer: a signed weight on the multiplier and a
// signed dollar contribution to its category's base.
type Factor struct {
	Category           FactorCategory `json:"category"`
	QuestionID         string         `json:"question_id,omitempty"`
	Label              string         `json:"label"`
	Weight             float64        `json:"weight"`
	ContributionAmount float64        `json:"contribution_amount"`
}
