package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/casevalue/internal/model"
	"github.com/ppiankov/casevalue/internal/pipeline"
)

var (
	caseType      string
	state         string
	answersFile   string
	fault         float64
	incidentDate  string
	discoveryDate string
	outJSON       string
	outMD         string
	withShare     bool
	narrate       bool
	noCache       bool
	noFooter      bool
	timeout       time.Duration
	llmProvider   string
	llmModel      string
)

// estimateCmd represents the estimate command
var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate one claim from a file of answers",
	Long: `Estimate values one claim:
- Resolve the jurisdiction's rules for the case type
- Score every answer into a visible factor
- Apply the fault rule, damage caps and limitation period
- Write a JSON report and optionally Markdown and a share link

The answers file is a JSON object keyed by question id. Use - for stdin.

Example:
  casevalue estimate --case motor --state TX --answers answers.json
  casevalue estimate --case medical --state texas --answers a.json --fault 20 --md report.md
  casevalue estimate --case dog_bite --state CA --answers a.json --share --narrate --llm-provider openai`,
	Args: cobra.NoArgs,
	RunE: runEstimate,
}

func init() {
	rootCmd.AddCommand(estimateCmd)

	// Input flags
	estimateCmd.Flags().StringVar(&caseType, "case", "", "case type id or slug (see 'casevalue rules list')")
	estimateCmd.Flags().StringVar(&state, "state", "", "jurisdiction code, name or slug")
	estimateCmd.Flags().StringVar(&answersFile, "answers", "", "JSON answers file (- for stdin)")
	estimateCmd.Flags().Float64Var(&fault, "fault", 0, "claimant's share of fault, 0-100 (overrides the answer)")
	estimateCmd.Flags().StringVar(&incidentDate, "incident-date", "", "incident date, YYYY-MM-DD (overrides the answer)")
	estimateCmd.Flags().StringVar(&discoveryDate, "discovery-date", "", "discovery date, YYYY-MM-DD (overrides the answer)")
	_ = estimateCmd.MarkFlagRequired("case")
	_ = estimateCmd.MarkFlagRequired("state")

	// Output flags
	estimateCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	estimateCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	estimateCmd.Flags().BoolVar(&withShare, "share", false, "include a share link in the report")
	estimateCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the estimate cache")
	estimateCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	estimateCmd.Flags().DurationVar(&timeout, "timeout", time.Minute, "overall timeout")

	// LLM flags
	estimateCmd.Flags().BoolVar(&narrate, "narrate", false, "add an LLM narrative of the estimate")
	estimateCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "LLM provider (openai, anthropic, ollama)")
	estimateCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

func runEstimate(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := applyOutputFlags(cmd, cfg); err != nil {
		return err
	}

	answers, err := readAnswers(answersFile, cmd.InOrStdin())
	if err != nil {
		return err
	}

	req := model.EstimateRequest{
		CaseType:      caseType,
		Jurisdiction:  state,
		Answers:       answers,
		IncidentDate:  incidentDate,
		DiscoveryDate: discoveryDate,
		Share:         withShare,
		Narrate:       narrate,
	}
	if cmd.Flags().Changed("fault") {
		f := fault
		req.FaultPercentage = &f
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	p, err := pipeline.NewPipeline(cfg, pipeline.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("create pipeline: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Estimating: %s in %s (rules %s)\n", caseType, state, p.Table().Version())
	}

	report, err := p.Estimate(ctx, req)
	if err != nil {
		return fmt.Errorf("estimate failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Scored %d factors\n", len(report.Result.Factors))
		fmt.Fprintf(os.Stderr, "✓ Applied %d damage caps\n", len(report.Result.CapsApplied))
		if report.LLM != nil && report.LLM.Enabled {
			fmt.Fprintf(os.Stderr, "✓ Generated LLM narrative using %s/%s\n", report.LLM.Provider, report.LLM.Model)
		}
	}

	if err := p.RenderReport(report, outJSON, outMD, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	return nil
}

// applyOutputFlags folds the shared report flags into cfg
func applyOutputFlags(cmd *cobra.Command, cfg *model.Config) error {
	if noCache {
		cfg.Cache.Enabled = false
	}
	if noFooter {
		cfg.Output.IncludeFooter = false
	}
	cfg.Output.Verbose = cfg.Output.Verbose || verbose

	if !narrate {
		cfg.LLM.Provider = ""
		return nil
	}
	if cmd.Flags().Changed("llm-provider") {
		cfg.LLM.Provider = llmProvider
	}
	if cmd.Flags().Changed("llm-model") {
		cfg.LLM.Model = llmModel
	}
	if cfg.LLM.Provider == "" {
		return fmt.Errorf("--narrate needs an LLM provider (--llm-provider or llm.provider)")
	}
	resolveLLMEnv(&cfg.LLM)
	return checkLLM(cfg.LLM)
}

// readAnswers loads a JSON answers object. No file means no answers.
func readAnswers(path string, stdin io.Reader) (model.Answers, error) {
	if path == "" {
		return model.Answers{}, nil
	}

	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open answers: %w", err)
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	var answers model.Answers
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&answers); err != nil {
		return nil, fmt.Errorf("parse answers: %w", err)
	}
	if answers == nil {
		answers = model.Answers{}
	}
	return answers, nil
}
