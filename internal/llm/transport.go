package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	defaultMaxTokens = 800
	temperature      = 0.3
)

// settings resolves per-request overrides against the provider config
type settings struct {
	prompt    string
	model     string
	maxTokens int
}

func resolve(req SummarizeRequest, cfg Config, fallbackModel string) settings {
	s := settings{prompt: req.Prompt, model: req.Model, maxTokens: req.MaxTokens}
	if s.prompt == "" {
		s.prompt = BuildPrompt(req.Report, req.AllowedFigures)
	}
	if s.model == "" {
		s.model = cfg.Model
	}
	if s.model == "" {
		s.model = fallbackModel
	}
	if s.maxTokens == 0 {
		s.maxTokens = cfg.MaxTokens
	}
	if s.maxTokens == 0 {
		s.maxTokens = defaultMaxTokens
	}
	return s
}

// checked trims a narrative and holds it to the report's figures
func checked(cfg Config, req SummarizeRequest, text, model string, tokens int) (*SummarizeResponse, error) {
	summary := strings.TrimSpace(text)
	cited := extractFigures(summary)
	if err := verifyFigures(cfg.StrictFigures, req.AllowedFigures, cited); err != nil {
		return nil, err
	}
	return &SummarizeResponse{
		Summary:      summary,
		CitedFigures: cited,
		Model:        model,
		TokensUsed:   tokens,
	}, nil
}

// apiError extracts a readable message from a non-200 body
type apiError func(body []byte) (string, bool)

// postJSON sends in as JSON and decodes a 200 response into out
func postJSON(ctx context.Context, client *http.Client, url string, headers map[string]string, in, out any, parseErr apiError) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		httpReq.Header.Set(k, v)
	}

	httpResp, err := client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		if msg, ok := parseErr(respBody); ok {
			return fmt.Errorf("API error (%d): %s", httpResp.StatusCode, msg)
		}
		return fmt.Errorf("API error (%d): %s", httpResp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}
