package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ppiankov/casevalue/internal/metrics"
	"github.com/ppiankov/casevalue/internal/pipeline"
	"github.com/ppiankov/casevalue/internal/server"
)

var (
	serveAddr     string
	serveMaxConns int
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the estimate API over HTTP",
	Long: `Serve exposes the engine as a JSON API:

  GET  /healthz
  GET  /metrics
  GET  /v1/jurisdictions
  GET  /v1/rules/{jurisdiction}/{caseType}
  GET  /v1/questions/{caseType}
  POST /v1/valuations
  GET  /v1/share/{token}

The server stops gracefully on SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from server.addr)")
	serveCmd.Flags().IntVar(&serveMaxConns, "max-conns", 0, "maximum concurrent connections (default from server.max_conns)")
	serveCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the estimate cache")
	serveCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "LLM provider for requests that ask for a narrative")
	serveCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("addr") {
		cfg.Server.Addr = serveAddr
	}
	if cmd.Flags().Changed("max-conns") {
		cfg.Server.MaxConns = serveMaxConns
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	if cmd.Flags().Changed("llm-provider") {
		cfg.LLM.Provider = llmProvider
	}
	if cmd.Flags().Changed("llm-model") {
		cfg.LLM.Model = llmModel
	}
	resolveLLMEnv(&cfg.LLM)
	if err := checkLLM(cfg.LLM); err != nil {
		return err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	m := metrics.New()
	p, err := pipeline.NewPipeline(cfg, pipeline.WithLogger(logger), pipeline.WithMetrics(m))
	if err != nil {
		return fmt.Errorf("create pipeline: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, p, m, logger.Named("server"))
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
