package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppiankov/casevalue/internal/model"
	"github.com/ppiankov/casevalue/internal/money"
	"github.com/ppiankov/casevalue/internal/questions"
	"github.com/ppiankov/casevalue/internal/rules"
)

var rulesAsJSON bool

// rulesCmd represents the rules command
var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect the legal rules dataset",
}

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List jurisdictions and case types",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := tableFromConfig()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if rulesAsJSON {
			return writeJSON(out, table.Jurisdictions())
		}

		fmt.Fprintf(out, "Rules version: %s\n\n", table.Version())
		fmt.Fprintf(out, "%-4s %-22s %-26s %s\n", "CODE", "NAME", "FAULT RULE", "CASE TYPES")
		for _, j := range table.Jurisdictions() {
			fmt.Fprintf(out, "%-4s %-22s %-26s %d\n", j.Code, j.Name, j.Negligence, len(j.CaseTypes))
		}

		fmt.Fprintf(out, "\nCase types:\n")
		for _, ct := range model.AllCaseTypes() {
			fmt.Fprintf(out, "  %-18s %s\n", ct, ct.DisplayName())
		}
		return nil
	},
}

var rulesShowCmd = &cobra.Command{
	Use:   "show <jurisdiction> <case-type>",
	Short: "Show the rules for one jurisdiction and case type",
	Example: `  casevalue rules show TX medical
  casevalue rules show california motor-vehicle-accident --json`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := tableFromConfig()
		if err != nil {
			return err
		}
		ct, err := model.ParseCaseType(args[1])
		if err != nil {
			return err
		}
		rs, err := table.Resolve(args[0], ct)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if rulesAsJSON {
			return writeJSON(out, rs)
		}
		printRuleSet(out, rs)
		return nil
	},
}

// questionsCmd represents the questions command
var questionsCmd = &cobra.Command{
	Use:   "questions <case-type>",
	Short: "List the questionnaire for a case type",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ct, err := model.ParseCaseType(args[0])
		if err != nil {
			return err
		}
		qs, err := questions.Default().Questions(ct)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if rulesAsJSON {
			return writeJSON(out, qs)
		}
		fmt.Fprintf(out, "%s questionnaire (%d questions)\n\n", ct.DisplayName(), len(qs))
		for _, q := range qs {
			fmt.Fprintf(out, "  %-28s %-8s %s\n", q.ID, q.Type, q.Prompt)
			if len(q.Options) > 0 {
				fmt.Fprintf(out, "  %-28s %-8s options: %s\n", "", "", strings.Join(q.Options, ", "))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rulesCmd)
	rulesCmd.AddCommand(rulesListCmd)
	rulesCmd.AddCommand(rulesShowCmd)
	rootCmd.AddCommand(questionsCmd)

	rulesCmd.PersistentFlags().BoolVar(&rulesAsJSON, "json", false, "print JSON")
	questionsCmd.Flags().BoolVar(&rulesAsJSON, "json", false, "print JSON")
}

func tableFromConfig() (*rules.Table, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return loadTable(cfg)
}

func loadTable(cfg *model.Config) (*rules.Table, error) {
	table, err := rules.Load(cfg.Rules.File)
	if err != nil {
		return nil, fmt.Errorf("load rules: %w", err)
	}
	return table, nil
}

func printRuleSet(out io.Writer, rs model.JurisdictionRuleSet) {
	fmt.Fprintf(out, "%s: %s (%s)\n\n", rs.CaseType.DisplayName(), rs.JurisdictionName, rs.Jurisdiction)
	fmt.Fprintf(out, "  Fault rule:            %s\n", rs.NegligenceRegime.Describe())
	fmt.Fprintf(out, "  Limitation period:     %g years", rs.StatuteOfLimitationsYears)
	if rs.DiscoveryRule {
		fmt.Fprintf(out, " (discovery rule applies)")
	}
	fmt.Fprintln(out)
	if rs.StrictLiability != nil {
		fmt.Fprintf(out, "  Strict liability:      %t\n", *rs.StrictLiability)
	}
	if rs.NoFault {
		fmt.Fprintf(out, "  No-fault (PIP) state:  true\n")
	}
	fmt.Fprintf(out, "  Economic cap:          %s\n", rs.EconomicCap.Strategy())
	fmt.Fprintf(out, "  Non-economic cap:      %s\n", rs.NonEconomicCap.Strategy())
	fmt.Fprintf(out, "  Punitive cap:          %s\n", rs.PunitiveCap.Strategy())
	if rs.TotalCap != nil {
		fmt.Fprintf(out, "  Total cap:             %s\n", rs.TotalCap.Strategy())
	}
	if wc := rs.WorkersComp; wc != nil {
		fmt.Fprintf(out, "  Weekly benefit:        %s to %s\n", money.USD(wc.MinWeeklyBenefit), money.USD(wc.MaxWeeklyBenefit))
	}
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}

func formatRange(low, value, high float64) string {
	return fmt.Sprintf("%s (%s to %s)", money.USD(value), money.USD(low), money.USD(high))
}
