package model

import "time"

// Config holds all runtime configuration
type Config struct {
	Valuation    ValuationConfig    `yaml:"valuation" mapstructure:"valuation"`
	Share        ShareConfig        `yaml:"share" mapstructure:"share"`
	Rules        RulesConfig        `yaml:"rules" mapstructure:"rules"`
	Cache        CacheConfig        `yaml:"cache" mapstructure:"cache"`
	Concurrency  ConcurrencyConfig  `yaml:"concurrency" mapstructure:"concurrency"`
	RateLimiting RateLimitingConfig `yaml:"rate_limiting" mapstructure:"rate_limiting"`
	Server       ServerConfig       `yaml:"server" mapstructure:"server"`
	LLM          LLMConfig          `yaml:"llm" mapstructure:"llm"`
	Log          LogConfig          `yaml:"log" mapstructure:"log"`
	Output       OutputConfig       `yaml:"output" mapstructure:"output"`
}

// ValuationConfig tunes the calculator. None of these are legal constants.
type ValuationConfig struct {
	MultiplierMin float64 `yaml:"multiplier_min" mapstructure:"multiplier_min"`
	MultiplierMax float64 `yaml:"multiplier_max" mapstructure:"multiplier_max"`
	LiabilityMin  float64 `yaml:"liability_min" mapstructure:"liability_min"`
	LiabilityMax  float64 `yaml:"liability_max" mapstructure:"liability_max"`
	BandPercent   float64 `yaml:"band_percent" mapstructure:"band_percent"`
	RoundTo       float64 `yaml:"round_to" mapstructure:"round_to"`
}

// ShareConfig controls share token issuing
type ShareConfig struct {
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
	BaseURL string        `yaml:"base_url" mapstructure:"base_url"`
}

// RulesConfig selects the legal dataset
type RulesConfig struct {
	File string `yaml:"file" mapstructure:"file"` // Empty uses the embedded dataset
}

// CacheConfig controls estimate memoization
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// ConcurrencyConfig controls batch fan-out
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// RateLimitingConfig controls per-client request rates for the HTTP API
type RateLimitingConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size" mapstructure:"burst_size"`
}

// ServerConfig controls the HTTP API
type ServerConfig struct {
	Addr            string        `yaml:"addr" mapstructure:"addr"`
	MaxConns        int           `yaml:"max_conns" mapstructure:"max_conns"`
	ReadTimeout     time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	// TrustProxyHeaders takes the client address from X-Forwarded-For and
	// X-Real-IP. Enable only behind a proxy that overwrites them.
	TrustProxyHeaders bool `yaml:"trust_proxy_headers" mapstructure:"trust_proxy_headers"`
}

// LLMConfig configures the optional narrative provider
type LLMConfig struct {
	Provider      string `yaml:"provider" mapstructure:"provider"` // openai, anthropic, ollama, or empty
	Model         string `yaml:"model" mapstructure:"model"`
	APIKey        string `yaml:"-" mapstructure:"api_key"` // Never written to disk
	BaseURL       string `yaml:"base_url" mapstructure:"base_url"`
	Timeout       int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	StrictFigures bool   `yaml:"strict_figures" mapstructure:"strict_figures"`
	MaxTokens     int    `yaml:"max_tokens" mapstructure:"max_tokens"`
	HTTPProxy     string `yaml:"http_proxy" mapstructure:"http_proxy"`
	HTTPSProxy    string `yaml:"https_proxy" mapstructure:"https_proxy"`
	NoProxy       string `yaml:"no_proxy" mapstructure:"no_proxy"`
}

// LogConfig controls structured logging
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" mapstructure:"verbose"`
	IncludeFooter bool `yaml:"include_footer" mapstructure:"include_footer"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Valuation: ValuationConfig{
			MultiplierMin: 1.0,
			MultiplierMax: 5.0,
			LiabilityMin:  0.5,
			LiabilityMax:  1.5,
			BandPercent:   15,
			RoundTo:       1000,
		},
		Share: ShareConfig{
			TTL:     10 * 24 * time.Hour,
			BaseURL: "https://casevalue.app/",
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       ".casevalue-cache",
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 8,
		},
		RateLimiting: RateLimitingConfig{
			RequestsPerSecond: 5,
			BurstSize:         10,
		},
		Server: ServerConfig{
			Addr:            ":8080",
			MaxConns:        256,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxBodyBytes:    1 << 20,
		},
		LLM: LLMConfig{
			Timeout:       30,
			StrictFigures: true,
			MaxTokens:     800,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
	}
}
