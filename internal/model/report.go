package model

import "time"

// Report is the complete output of one estimate: the valuation plus the
// context it was computed in.
type Report struct {
	ID               string          `json:"id"`
	CaseType         CaseType        `json:"case_type"`
	Jurisdiction     string          `json:"jurisdiction"`
	JurisdictionName string          `json:"jurisdiction_name"`
	EstimatedAt      time.Time       `json:"estimated_at"`
	RulesVersion     string          `json:"rules_version"`
	Result           ValuationResult `json:"result"`
	Share            *ShareLink      `json:"share,omitempty"`
	Principles       Principles      `json:"principles"`

	LLM *LLMSummary `json:"llm,omitempty"` // Optional narrative (separate, never affects value)
}

// ShareLink is an encoded, expiring copy of the result
type ShareLink struct {
	Token     string    `json:"token"`
	URL       string    `json:"url,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Principles documents what the estimate is and is not
type Principles struct {
	EstimateOnly  bool `json:"estimate_only"` // Not legal advice
	Transparent   bool `json:"transparent"`   // Every factor listed
	Deterministic bool `json:"deterministic"` // Same inputs, same value
}

// DefaultPrinciples returns the standard principles
func DefaultPrinciples() Principles {
	return Principles{
		EstimateOnly:  true,
		Transparent:   true,
		Deterministic: true,
	}
}

// LLMSummary contains an optional generated narrative.
// It is produced after valuation and never changes any figure.
type LLMSummary struct {
	Enabled       bool     `json:"enabled"`
	Provider      string   `json:"provider,omitempty"`
	Model         string   `json:"model,omitempty"`
	StrictFigures bool     `json:"strict_figures"` // Whether figure enforcement was enabled
	SummaryMD     string   `json:"summary_md,omitempty"`
	Warnings      []string `json:"warnings,omitempty"` // Any issues (e.g., figure leaks detected)
}
