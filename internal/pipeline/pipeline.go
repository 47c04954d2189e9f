// Package pipeline runs one estimate end to end: validate the request,
// resolve the jurisdiction's rules, score the answers, value the claim and
// package the result as a report.
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ppiankov/casevalue/internal/benefits"
	"github.com/ppiankov/casevalue/internal/cache"
	"github.com/ppiankov/casevalue/internal/llm"
	"github.com/ppiankov/casevalue/internal/logging"
	"github.com/ppiankov/casevalue/internal/metrics"
	"github.com/ppiankov/casevalue/internal/model"
	"github.com/ppiankov/casevalue/internal/questions"
	"github.com/ppiankov/casevalue/internal/rules"
	"github.com/ppiankov/casevalue/internal/score"
	"github.com/ppiankov/casevalue/internal/share"
	"github.com/ppiankov/casevalue/internal/validate"
	"github.com/ppiankov/casevalue/internal/valuation"
)

var errNoNarrative = errors.New("no narrative generated")

// Pipeline orchestrates the complete estimate process. It is safe for
// concurrent use.
type Pipeline struct {
	table      *rules.Table
	catalog    *questions.Catalog
	validator  *validate.Validator
	scorer     *score.Scorer
	calculator *valuation.Calculator
	codec      *share.Codec
	renderer   *Renderer
	summarizer *llm.Summarizer // Optional LLM summarizer (nil if disabled)
	cache      cache.Cache
	cacheTTL   time.Duration
	valuation  model.ValuationConfig
	metrics    *metrics.Metrics
	logger     logging.Logger
	shareBase  string
	now        func() time.Time
	newID      func() string
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithClock sets the clock used for validation, limitation warnings and share tokens
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

// WithCache replaces the result cache
func WithCache(c cache.Cache) Option {
	return func(p *Pipeline) { p.cache = c }
}

// WithMetrics records estimate metrics
func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Pipeline) { p.metrics = m }
}

// WithLogger sets the logger
func WithLogger(l logging.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// WithSummarizer replaces the narrative summarizer
func WithSummarizer(s *llm.Summarizer) Option {
	return func(p *Pipeline) { p.summarizer = s }
}

// WithIDGenerator replaces the report id generator
func WithIDGenerator(fn func() string) Option {
	return func(p *Pipeline) { p.newID = fn }
}

// WithOutput sets where progress lines and the stdout summary are written
func WithOutput(w io.Writer) Option {
	return func(p *Pipeline) { p.renderer.out = w }
}

// NewPipeline creates a new pipeline with the given configuration. The rules
// dataset comes from cfg.Rules.File when set, the embedded dataset otherwise.
func NewPipeline(cfg *model.Config, opts ...Option) (*Pipeline, error) {
	table, err := rules.Load(cfg.Rules.File)
	if err != nil {
		return nil, fmt.Errorf("load rules: %w", err)
	}
	return NewPipelineWithTable(cfg, table, opts...)
}

// NewPipelineWithTable creates a pipeline around an already loaded rules table
func NewPipelineWithTable(cfg *model.Config, table *rules.Table, opts ...Option) (*Pipeline, error) {
	p := &Pipeline{
		table:     table,
		catalog:   questions.Default(),
		renderer:  NewRenderer(cfg.Output.IncludeFooter),
		cache:     cache.Nop{},
		cacheTTL:  cfg.Cache.MemoryTTL,
		valuation: cfg.Valuation,
		logger:    logging.NewNop(),
		shareBase: cfg.Share.BaseURL,
		now:       time.Now,
		newID:     uuid.NewString,
	}
	if cfg.Cache.Enabled {
		p.cache = cache.New(cfg.Cache)
	}

	// Create LLM summarizer if configured
	if cfg.LLM.Provider != "" {
		s, err := llm.NewSummarizer(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			return nil, fmt.Errorf("init LLM provider: %w", err)
		}
		p.summarizer = s
	}

	for _, opt := range opts {
		opt(p)
	}

	p.validator = validate.NewValidator(p.catalog, p.now)
	p.scorer = score.NewScorer(p.catalog)
	p.calculator = valuation.NewCalculator(cfg.Valuation, valuation.WithClock(p.now))
	p.codec = share.NewCodec(cfg.Share.TTL, p.now)

	return p, nil
}

// Table returns the loaded rules table
func (p *Pipeline) Table() *rules.Table {
	return p.table
}

// Catalog returns the question catalog
func (p *Pipeline) Catalog() *questions.Catalog {
	return p.catalog
}

// Codec returns the share token codec
func (p *Pipeline) Codec() *share.Codec {
	return p.codec
}

// Estimate values one request and builds its report
func (p *Pipeline) Estimate(ctx context.Context, req model.EstimateRequest) (*model.Report, error) {
	// 1. Validate
	checked, err := p.validator.Request(req)
	if err != nil {
		ct, perr := model.ParseCaseType(req.CaseType)
		if perr != nil {
			// Keep label cardinality bounded
			ct = "unknown"
		}
		p.metrics.EstimateFailed(ct, outcomeOf(err))
		return nil, fmt.Errorf("validate request: %w", err)
	}
	log := p.logger.With(
		logging.String("case_type", string(checked.CaseType)),
		logging.String("jurisdiction", checked.Jurisdiction),
	)
	if len(checked.Ignored) > 0 {
		log.Debug("ignoring unknown answers", logging.Any("ids", checked.Ignored))
	}

	// 2. Resolve rules
	rs, err := p.table.Resolve(checked.Jurisdiction, checked.CaseType)
	if err != nil {
		p.metrics.EstimateFailed(checked.CaseType, outcomeOf(err))
		return nil, fmt.Errorf("resolve rules: %w", err)
	}

	// 3-4. Score and value, memoized on the canonical inputs
	key, err := p.cacheKey(rs, checked)
	if err != nil {
		return nil, err
	}
	result, hit := cache.GetJSON[model.ValuationResult](p.cache, key)
	p.metrics.CacheLookup(hit)
	if !hit {
		result, err = p.value(rs, checked)
		if err != nil {
			p.metrics.EstimateFailed(checked.CaseType, outcomeOf(err))
			return nil, fmt.Errorf("calculate: %w", err)
		}
		if err := cache.SetJSON(p.cache, key, result, p.cacheTTL); err != nil {
			log.Warn("cache write failed", logging.Err(err))
		}
	}
	p.metrics.ObserveEstimate(checked.CaseType, result)

	// 5. Build report
	report := &model.Report{
		ID:               req.ID,
		CaseType:         checked.CaseType,
		Jurisdiction:     rs.Jurisdiction,
		JurisdictionName: rs.JurisdictionName,
		EstimatedAt:      p.now().UTC(),
		RulesVersion:     p.table.Version(),
		Result:           result,
		Principles:       model.DefaultPrinciples(),
	}
	if report.ID == "" {
		report.ID = p.newID()
	}

	// 6. Share link
	if req.Share {
		link, err := p.shareLink(result, model.ShareContext{CaseType: checked.CaseType, Jurisdiction: rs.Jurisdiction})
		if err != nil {
			return nil, err
		}
		report.Share = link
	}

	// 7. Narrative (AFTER valuation, never affects any figure)
	if req.Narrate && p.summarizer.IsEnabled() {
		summary, err := p.summarizer.GenerateSummary(ctx, *report)
		if err == nil && (summary == nil || summary.SummaryMD == "") {
			err = errNoNarrative
		}
		p.metrics.Narrative(p.summarizer.ProviderName(), err)
		if err != nil {
			log.Warn("narrative unavailable", logging.Err(err))
		}
		report.LLM = summary
	}

	log.Info("estimate complete",
		logging.String("id", report.ID),
		logging.Float64("value", result.Value),
		logging.Bool("cached", hit),
		logging.Int("caps_applied", len(result.CapsApplied)),
	)

	return report, nil
}

// value scores the answers and runs the calculator
func (p *Pipeline) value(rs model.JurisdictionRuleSet, checked validate.Checked) (model.ValuationResult, error) {
	var (
		factors  []model.Factor
		warnings []model.Warning
	)
	if checked.CaseType == model.CaseWorkersComp {
		factors, warnings = benefits.Score(rs, checked.Answers)
	} else {
		factors = p.scorer.Score(checked.CaseType, checked.Answers)
	}

	result, err := p.calculator.Calculate(rs, factors, valuation.Inputs{
		FaultPercentage: checked.Fault,
		IncidentDate:    checked.IncidentDate,
		DiscoveryDate:   checked.DiscoveryDate,
	})
	if err != nil {
		return model.ValuationResult{}, err
	}

	// Benefit warnings lead: they explain a zero value before any advisory does
	if len(warnings) > 0 {
		result.Warnings = append(warnings, result.Warnings...)
	}
	return result, nil
}

func (p *Pipeline) shareLink(result model.ValuationResult, sc model.ShareContext) (*model.ShareLink, error) {
	token, err := p.codec.Encode(result, sc)
	if err != nil {
		return nil, fmt.Errorf("encode share token: %w", err)
	}
	shared, err := p.codec.Decode(token)
	if err != nil {
		return nil, fmt.Errorf("decode share token: %w", err)
	}

	link := &model.ShareLink{Token: string(token), ExpiresAt: shared.ExpiresAt.UTC()}
	if p.shareBase != "" {
		link.URL = share.URL(p.shareBase, token)
	}
	return link, nil
}

// cacheKey identifies an estimate by everything the calculator reads
func (p *Pipeline) cacheKey(rs model.JurisdictionRuleSet, checked validate.Checked) (string, error) {
	// encoding/json sorts map keys, so equal answers encode equally
	answers, err := json.Marshal(checked.Answers)
	if err != nil {
		return "", fmt.Errorf("encode answers: %w", err)
	}

	// A shared or persistent cache may outlive a config or dataset change
	tuning, err := json.Marshal(p.valuation)
	if err != nil {
		return "", fmt.Errorf("encode valuation config: %w", err)
	}

	fault := ""
	if checked.Fault != nil {
		fault = strconv.FormatFloat(*checked.Fault, 'g', -1, 64)
	}

	return cache.Key(
		p.table.Version(),
		p.table.Digest(),
		string(tuning),
		string(checked.CaseType),
		rs.Jurisdiction,
		string(answers),
		fault,
		formatDate(checked.IncidentDate),
		formatDate(checked.DiscoveryDate),
		// Limitation warnings depend on the clock
		p.now().UTC().Format("2006-01-02T15"),
	), nil
}

// RenderReport renders the report to the specified outputs
func (p *Pipeline) RenderReport(report *model.Report, jsonPath string, mdPath string, verbose bool) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(p.renderer.out, "✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Fprintf(p.renderer.out, "✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	// The narrative goes to its own file so it is never mistaken for the estimate
	if report.LLM != nil && report.LLM.Enabled && mdPath != "" {
		llmMdPath := strings.TrimSuffix(mdPath, ".md") + ".llm.md"
		if err := p.renderer.RenderLLMMarkdown(llm.RenderSeparateMarkdown(report.LLM), llmMdPath); err != nil {
			p.logger.Warn("write narrative failed", logging.String("path", llmMdPath), logging.Err(err))
		} else if verbose {
			fmt.Fprintf(p.renderer.out, "✓ Wrote LLM Narrative: %s\n", llmMdPath)
		}
	}

	p.renderer.RenderSummary(report)

	return nil
}

// outcomeOf classifies an estimate error for metrics
func outcomeOf(err error) string {
	switch {
	case errors.Is(err, model.ErrNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, model.ErrInvalidInput):
		return metrics.OutcomeInvalid
	}
	return metrics.OutcomeError
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(model.DateLayout)
}
