package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/casevalue/internal/model"
	"github.com/ppiankov/casevalue/internal/money"
)

// Renderer writes reports as JSON, Markdown and a short terminal summary
type Renderer struct {
	includeFooter bool
	out           io.Writer
}

// NewRenderer creates a new renderer. Terminal output goes to stderr.
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter, out: os.Stderr}
}

// RenderJSON writes the report as indented JSON
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	return writeFile(path, append(data, '\n'))
}

// RenderMarkdown writes the report as Markdown
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	return writeFile(path, []byte(r.Markdown(report)))
}

// RenderLLMMarkdown writes an already rendered narrative document
func (r *Renderer) RenderLLMMarkdown(markdown string, path string) error {
	return writeFile(path, []byte(markdown))
}

// Markdown renders the report as a Markdown document
func (r *Renderer) Markdown(report *model.Report) string {
	res := report.Result
	var b strings.Builder

	fmt.Fprintf(&b, "# %s claim estimate: %s\n\n", report.CaseType.DisplayName(), jurisdictionName(report))
	fmt.Fprintf(&b, "**Estimated value: %s** (range %s to %s)\n\n",
		money.USD(res.Value), money.USD(res.LowRange), money.USD(res.HighRange))
	fmt.Fprintf(&b, "- Fault rule: %s\n", res.NegligenceRegimeApplied.Describe())
	if res.Breakdown.FaultPercentage > 0 {
		fmt.Fprintf(&b, "- Your share of fault: %g%%\n", res.Breakdown.FaultPercentage)
	}
	fmt.Fprintf(&b, "- Rules version: %s\n", report.RulesVersion)
	fmt.Fprintf(&b, "- Estimated at: %s\n", report.EstimatedAt.Format("2006-01-02 15:04 MST"))
	fmt.Fprintf(&b, "- Report ID: `%s`\n\n", report.ID)

	if len(res.Warnings) > 0 {
		b.WriteString("## Warnings\n\n")
		for _, w := range res.Warnings {
			fmt.Fprintf(&b, "- **%s** (%s): %s\n", strings.ToUpper(string(w.Severity)), w.Code, w.Message)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Factors\n\n")
	if len(res.Factors) == 0 {
		b.WriteString("_No answers contributed to this estimate._\n\n")
	} else {
		b.WriteString("| Factor | Category | Weight | Amount |\n|---|---|---:|---:|\n")
		for _, f := range res.Factors {
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
				escapeCell(f.Label), f.Category, formatWeight(f.Weight), money.USD(f.ContributionAmount))
		}
		b.WriteString("\n")
	}

	if len(res.CapsApplied) > 0 {
		b.WriteString("## Damage caps applied\n\n")
		b.WriteString("| Target | Rule | Before | After |\n|---|---|---:|---:|\n")
		for _, c := range res.CapsApplied {
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
				c.Target, escapeCell(c.Strategy), money.USD(c.Before), money.USD(c.After))
		}
		b.WriteString("\n")
	}

	bd := res.Breakdown
	b.WriteString("## Breakdown\n\n")
	b.WriteString("| Step | Amount |\n|---|---:|\n")
	rows := []struct {
		label  string
		amount string
	}{
		{"Economic base", money.USD(bd.EconomicBase)},
		{"Non-economic base", money.USD(bd.NonEconomicBase)},
		{"Pain and suffering multiplier", fmt.Sprintf("%.2fx", bd.PainMultiplier)},
		{"Liability adjustment", fmt.Sprintf("%.2fx", bd.LiabilityAdjustment)},
		{"Economic damages", money.USD(bd.Economic)},
		{"Non-economic damages", money.USD(bd.NonEconomic)},
		{"Compensatory damages", money.USD(bd.Compensatory)},
		{"Punitive damages", money.USD(bd.Punitive)},
		{"Total before fault", money.USD(bd.PreFaultTotal)},
		{"Fault reduction", money.USD(bd.FaultReduction)},
	}
	for _, row := range rows {
		fmt.Fprintf(&b, "| %s | %s |\n", row.label, row.amount)
	}
	b.WriteString("\n")

	if report.Share != nil {
		b.WriteString("## Share\n\n")
		link := report.Share.URL
		if link == "" {
			link = report.Share.Token
		}
		fmt.Fprintf(&b, "%s\n\nExpires %s.\n\n", link, report.Share.ExpiresAt.Format(model.DateLayout))
	}

	if r.includeFooter {
		b.WriteString("---\n\n")
		b.WriteString("_This is an automated estimate, not legal advice. Every factor that affected the value is listed above, ")
		b.WriteString("and the same answers always produce the same estimate. Consult a licensed attorney about your claim._\n")
	}

	return b.String()
}

// RenderSummary prints a short summary to the terminal
func (r *Renderer) RenderSummary(report *model.Report) {
	res := report.Result
	fmt.Fprintf(r.out, "\n%s, %s\n", report.CaseType.DisplayName(), jurisdictionName(report))
	fmt.Fprintf(r.out, "  Estimated value: %s (range %s to %s)\n",
		money.USD(res.Value), money.USD(res.LowRange), money.USD(res.HighRange))
	fmt.Fprintf(r.out, "  Factors: %d, caps applied: %d\n", len(res.Factors), len(res.CapsApplied))
	for _, w := range res.Warnings {
		if w.Severity == model.SeverityInfo {
			continue
		}
		fmt.Fprintf(r.out, "  ! %s\n", w.Message)
	}
	if report.Share != nil && report.Share.URL != "" {
		fmt.Fprintf(r.out, "  Share: %s\n", report.Share.URL)
	}
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func jurisdictionName(report *model.Report) string {
	if report.JurisdictionName != "" {
		return report.JurisdictionName
	}
	return report.Jurisdiction
}

func formatWeight(w float64) string {
	if w == 0 {
		return "-"
	}
	return fmt.Sprintf("%+.2f", w)
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
