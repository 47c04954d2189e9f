package llm

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/ppiankov/casevalue/internal/model"
	"github.com/ppiankov/casevalue/internal/money"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Summarize writes a plain-language narrative of a valuation report
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// SummarizeRequest contains the input for narrative generation
type SummarizeRequest struct {
	// Report is the finished valuation to describe
	Report model.Report

	// AllowedFigures is the STRICT allowlist of dollar amounts the narrative may quote.
	// Every figure comes from the report; the model cannot introduce its own numbers.
	AllowedFigures []string

	// Prompt is an optional custom prompt (if empty, use default)
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// SummarizeResponse contains the generated narrative
type SummarizeResponse struct {
	// Summary is the generated narrative text
	Summary string

	// CitedFigures are the dollar amounts the narrative quoted (for verification)
	CitedFigures []string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// StrictFigures rejects narratives quoting amounts absent from the report
	StrictFigures bool

	// MaxTokens for response generation
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:      "", // Disabled by default
		Model:         "",
		Timeout:       30,
		StrictFigures: true,
		MaxTokens:     800,
	}
}

const systemPrompt = "You explain personal injury claim estimates in plain language. You never give legal advice and never invent dollar amounts."

// BuildPrompt constructs the default narrative prompt for a valuation report
func BuildPrompt(report model.Report, allowedFigures []string) string {
	r := report.Result

	var b strings.Builder
	fmt.Fprintf(&b, `You are explaining an automated estimate of a %s claim in %s. The estimate is NOT legal advice and NOT a prediction of any verdict or settlement.

CRITICAL RULES:
1. You MUST ONLY quote dollar amounts from this allowed list:
%s

2. DO NOT compute, round, or invent any other dollar amount.
3. Describe the estimate as a range, not a promised outcome.
4. Mention every warning below, most severe first.
5. End with one sentence recommending a consultation with a licensed attorney.

Estimate:
- Estimated value: %s
- Range: %s to %s
- Fault rule: %s
`,
		report.CaseType.DisplayName(), jurisdictionLabel(report),
		joinFigures(allowedFigures),
		money.USD(r.Value), money.USD(r.LowRange), money.USD(r.HighRange),
		r.NegligenceRegimeApplied.Describe())

	if len(r.CapsApplied) > 0 {
		b.WriteString("\nCaps applied:\n")
		for _, c := range r.CapsApplied {
			fmt.Fprintf(&b, "- %s damages limited to %s (%s)\n", strings.ReplaceAll(string(c.Target), "_", "-"), money.USD(c.After), c.Strategy)
		}
	}

	if len(r.Warnings) > 0 {
		b.WriteString("\nWarnings:\n")
		for _, w := range sortedWarnings(r.Warnings) {
			fmt.Fprintf(&b, "- [%s] %s\n", w.Severity, w.Message)
		}
	}

	if top := topFactors(r.Factors, 5); len(top) > 0 {
		b.WriteString("\nLargest factors:\n")
		for _, f := range top {
			fmt.Fprintf(&b, "- %s (%s)\n", f.Label, f.Category)
		}
	}

	b.WriteString("\nWrite a 3-5 sentence plain-language explanation of this estimate.")

	return b.String()
}

// AllowedFigures lists every dollar amount a narrative of the report may quote
func AllowedFigures(report model.Report) []string {
	r := report.Result
	bd := r.Breakdown

	amounts := []float64{
		r.Value, r.LowRange, r.HighRange,
		bd.EconomicBase, bd.NonEconomicBase, bd.Economic, bd.NonEconomic,
		bd.Compensatory, bd.Punitive, bd.PreFaultTotal, bd.FaultReduction,
	}
	for _, c := range r.CapsApplied {
		amounts = append(amounts, c.Limit, c.Before, c.After)
	}
	for _, f := range r.Factors {
		if f.ContributionAmount != 0 {
			amounts = append(amounts, math.Abs(f.ContributionAmount))
		}
	}

	seen := make(map[string]bool)
	var figures []string
	for _, a := range amounts {
		fig := money.USD(a)
		if !seen[fig] {
			seen[fig] = true
			figures = append(figures, fig)
		}
	}
	// Factor labels carry their own amounts ("Medical bills: $50,000")
	for _, f := range r.Factors {
		for _, fig := range extractFigures(f.Label) {
			if !seen[fig] {
				seen[fig] = true
				figures = append(figures, fig)
			}
		}
	}

	return figures
}

var figurePattern = regexp.MustCompile(`\$\s?\d[\d,]*(?:\.\d+)?`)

// extractFigures extracts every dollar amount quoted in text
func extractFigures(text string) []string {
	matches := figurePattern.FindAllString(text, -1)

	seen := make(map[string]bool)
	var unique []string
	for _, m := range matches {
		m = strings.TrimRight(m, ".,")
		if !seen[m] {
			seen[m] = true
			unique = append(unique, m)
		}
	}

	return unique
}

// verifyFigures fails when strict mode is on and a cited amount is not allowed
func verifyFigures(strict bool, allowed, cited []string) error {
	if !strict {
		return nil
	}

	permitted := make(map[string]bool, len(allowed))
	for _, a := range allowed {
		if key, ok := figureKey(a); ok {
			permitted[key] = true
		}
	}

	for _, c := range cited {
		key, ok := figureKey(c)
		if !ok || !permitted[key] {
			return fmt.Errorf("FIGURE LEAK: narrative quoted an amount not in the report: %s", c)
		}
	}
	return nil
}

// figureKey normalizes "$1,200", "$1200" and "$1,200.00" to the same key
func figureKey(fig string) (string, bool) {
	s := strings.NewReplacer("$", "", ",", "", " ", "").Replace(fig)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return "", false
	}
	return strconv.FormatInt(int64(math.Round(v)), 10), true
}

func joinFigures(figures []string) string {
	if len(figures) == 0 {
		return "(No dollar amounts available)"
	}
	result := ""
	for i, fig := range figures {
		if i >= 30 {
			result += fmt.Sprintf("\n... and %d more amounts", len(figures)-30)
			break
		}
		result += fmt.Sprintf("\n- %s", fig)
	}
	return result
}

func jurisdictionLabel(report model.Report) string {
	if report.JurisdictionName != "" {
		return report.JurisdictionName
	}
	return report.Jurisdiction
}

var severityRank = map[model.Severity]int{
	model.SeverityCritical: 0,
	model.SeverityWarning:  1,
	model.SeverityInfo:     2,
}

func sortedWarnings(warnings []model.Warning) []model.Warning {
	out := append([]model.Warning(nil), warnings...)
	sort.SliceStable(out, func(i, j int) bool {
		return severityRank[out[i].Severity] < severityRank[out[j].Severity]
	})
	return out
}

// topFactors returns the n factors with the largest absolute dollar contribution
func topFactors(factors []model.Factor, n int) []model.Factor {
	out := make([]model.Factor, 0, len(factors))
	for _, f := range factors {
		if f.ContributionAmount != 0 || f.Weight != 0 {
			out = append(out, f)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return math.Abs(out[i].ContributionAmount) > math.Abs(out[j].ContributionAmount)
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
