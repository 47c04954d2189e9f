package model

// EstimateRequest is one valuation request as received from the CLI, a batch
// file or the HTTP API. Explicit fault and dates override the matching answers.
type EstimateRequest struct {
	ID              string   `json:"id,omitempty"`
	CaseType        string   `json:"case_type"`
	Jurisdiction    string   `json:"jurisdiction"`
	Answers         Answers  `json:"answers"`
	FaultPercentage *float64 `json:"fault_percentage,omitempty"`
	IncidentDate    string   `json:"incident_date,omitempty"`
	DiscoveryDate   string   `json:"discovery_date,omitempty"`
	Share           bool     `json:"share,omitempty"`
	Narrate         bool     `json:"narrate,omitempty"`
}
