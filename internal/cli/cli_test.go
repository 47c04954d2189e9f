package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/casevalue/internal/model"
	"github.com/ppiankov/casevalue/internal/share"
)

func newEnvViper(t *testing.T) *viper.Viper {
	t.Helper()
	v := viper.New()
	require.NoError(t, registerDefaults(v, model.DefaultConfig()))
	v.SetEnvPrefix("CASEVALUE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	require.NoError(t, v.BindEnv("llm.api_key"))
	return v
}

func TestDecodeConfig_Defaults(t *testing.T) {
	cfg, err := decodeConfig(newEnvViper(t))
	require.NoError(t, err)
	assert.Equal(t, model.DefaultConfig(), cfg)
}

func TestDecodeConfig_EnvOverrides(t *testing.T) {
	t.Setenv("CASEVALUE_SERVER_ADDR", ":9090")
	t.Setenv("CASEVALUE_SHARE_TTL", "48h")
	t.Setenv("CASEVALUE_VALUATION_BAND_PERCENT", "20")
	t.Setenv("CASEVALUE_CACHE_ENABLED", "false")
	t.Setenv("CASEVALUE_LLM_API_KEY", "sk-test")

	cfg, err := decodeConfig(newEnvViper(t))
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 48*time.Hour, cfg.Share.TTL)
	assert.Equal(t, 20.0, cfg.Valuation.BandPercent)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, "sk-test", cfg.LLM.APIKey)
}

func TestDecodeConfig_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  max_conns: 12\nlog:\n  level: debug\n"), 0o644))

	v := newEnvViper(t)
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := decodeConfig(v)
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Server.MaxConns)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestResolveLLMEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-openai")
	t.Setenv("OLLAMA_BASE_URL", "http://ollama:11434")

	openai := model.LLMConfig{Provider: "openai"}
	resolveLLMEnv(&openai)
	assert.Equal(t, "sk-openai", openai.APIKey)
	assert.NoError(t, checkLLM(openai))

	explicit := model.LLMConfig{Provider: "openai", APIKey: "sk-explicit"}
	resolveLLMEnv(&explicit)
	assert.Equal(t, "sk-explicit", explicit.APIKey)

	ollama := model.LLMConfig{Provider: "ollama"}
	resolveLLMEnv(&ollama)
	assert.Equal(t, "http://ollama:11434", ollama.BaseURL)

	assert.Error(t, checkLLM(model.LLMConfig{Provider: "anthropic"}))
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".casevalue", "config.yaml")

	require.NoError(t, writeDefaultConfig(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# casevalue configuration file")
	assert.Contains(t, string(data), "max_body_bytes: 1048576")
	assert.Contains(t, string(data), "trust_proxy_headers: false")
	assert.NotContains(t, string(data), "api_key")

	err = writeDefaultConfig(path)
	assert.ErrorContains(t, err, "already exists")
}

func TestReadAnswers(t *testing.T) {
	t.Run("no file", func(t *testing.T) {
		answers, err := readAnswers("", nil)
		require.NoError(t, err)
		assert.Empty(t, answers)
	})

	t.Run("stdin", func(t *testing.T) {
		answers, err := readAnswers("-", strings.NewReader(`{"medical_bills": 1200.5, "injury_severity": "minor"}`))
		require.NoError(t, err)
		bills, ok := answers.Float("medical_bills")
		assert.True(t, ok)
		assert.Equal(t, 1200.5, bills)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := readAnswers("-", strings.NewReader(`{"medical_bills":`))
		assert.ErrorContains(t, err, "parse answers")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := readAnswers(filepath.Join(t.TempDir(), "nope.json"), nil)
		assert.ErrorContains(t, err, "open answers")
	})
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"line-3", "line-3"},
		{"a/b:c", "a_b_c"},
		{"my claim", "my-claim"},
		{"..", "request"},
		{"", "request"},
		{strings.Repeat("x", 150), strings.Repeat("x", 100)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeFilename(tt.in), tt.in)
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CASEVALUE_LOG_LEVEL", "error")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRulesShowCommand(t *testing.T) {
	out, err := run(t, "rules", "show", "texas", "medical")
	require.NoError(t, err)

	assert.Contains(t, out, "Medical Malpractice: Texas (TX)")
	assert.Contains(t, out, "Non-economic cap:")
	assert.Contains(t, out, "Limitation period:     2 years")
}

func TestRulesShowCommand_UnknownJurisdiction(t *testing.T) {
	_, err := run(t, "rules", "show", "atlantis", "medical")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestQuestionsCommand(t *testing.T) {
	out, err := run(t, "questions", "dog-bite")
	require.NoError(t, err)
	assert.Contains(t, out, "Dog Bite questionnaire")
}

func TestEstimateCommand(t *testing.T) {
	dir := t.TempDir()
	answersPath := filepath.Join(dir, "answers.json")
	require.NoError(t, os.WriteFile(answersPath,
		[]byte(`{"injury_severity": "severe", "medical_bills": 50000}`), 0o644))
	jsonPath := filepath.Join(dir, "report.json")

	_, err := run(t, "estimate",
		"--case", "medical", "--state", "TX",
		"--answers", answersPath, "--fault", "20",
		"--json", jsonPath, "--share", "--no-cache")
	require.NoError(t, err)

	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	var report model.Report
	require.NoError(t, json.Unmarshal(data, &report))
	assert.Equal(t, 240000.0, report.Result.Value)
	require.NotNil(t, report.Share)

	out, err := run(t, "share", "decode", report.Share.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "Medical Malpractice in TX")
	assert.Contains(t, out, "$240,000 ($204,000 to $276,000)")
}

func TestShareDecodeCommand_Expired(t *testing.T) {
	issued := time.Now().Add(-30 * 24 * time.Hour)
	codec := share.NewCodec(share.DefaultTTL, func() time.Time { return issued })
	token, err := codec.Encode(model.ValuationResult{Value: 1000, LowRange: 1000, HighRange: 1000},
		model.ShareContext{CaseType: model.CaseMotor, Jurisdiction: "CA"})
	require.NoError(t, err)

	out, err := run(t, "share", "decode", string(token))
	assert.ErrorIs(t, err, model.ErrExpired)
	assert.Contains(t, out, "Expired share link for Motor Vehicle Accident in CA")
	assert.Contains(t, out, "--case motor --state CA")
}
