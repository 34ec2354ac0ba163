package config

import (
	"fmt"
	"time"
)

// Config is the main application configuration struct.
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Bus     BusConfig     `mapstructure:"bus"`
	Agents  AgentsConfig  `mapstructure:"agents"`
	NewsAPI NewsAPIConfig `mapstructure:"newsapi"`
	Finance FinanceConfig `mapstructure:"finance"`
	GenAI   GenAIConfig   `mapstructure:"genai"`
	Logging LoggingConfig `mapstructure:"logging"`
}

type AppConfig struct {
	Name           string `mapstructure:"name"`
	Environment    string `mapstructure:"environment"`
	MetricsAddress string `mapstructure:"metrics_address"`
}

// BusConfig selects and configures the inter-agent transport.
// Mode is "redis" for deployments, "inproc" for single-process runs.
type BusConfig struct {
	Mode  string      `mapstructure:"mode"`
	Redis RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AgentsConfig carries the static agent addresses and per-agent settings.
type AgentsConfig struct {
	Addresses    AddressConfig      `mapstructure:"addresses"`
	Orchestrator OrchestratorConfig `mapstructure:"orchestrator"`
	FetchTimeout int                `mapstructure:"fetch_timeout"` // milliseconds
}

// AddressConfig names every agent endpoint on the bus.
type AddressConfig struct {
	Orchestrator    string `mapstructure:"orchestrator"`
	WebsiteAnalyzer string `mapstructure:"website_analyzer"`
	NewsAgent       string `mapstructure:"news_agent"`
	TickerAgent     string `mapstructure:"ticker_agent"`
	RevenueSummary  string `mapstructure:"revenue_summary"`
}

type OrchestratorConfig struct {
	Website     string `mapstructure:"website"`
	MaxArticles int    `mapstructure:"max_articles"`
}

type NewsAPIConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
}

type FinanceConfig struct {
	YahooSearchURL  string `mapstructure:"yahoo_search_url"`
	AlphaVantageURL string `mapstructure:"alphavantage_url"`
	AlphaVantageKey string `mapstructure:"alphavantage_api_key"`
}

// GenAIConfig configures the generative-text collaborator.
// Provider selects the implementation: "huggingface" or "gemini".
type GenAIConfig struct {
	Provider    string            `mapstructure:"provider"`
	HuggingFace HuggingFaceConfig `mapstructure:"huggingface"`
	Gemini      GeminiConfig      `mapstructure:"gemini"`
	MaxTokens   int               `mapstructure:"max_tokens"`
	Temperature float64           `mapstructure:"temperature"`
	Timeout     int               `mapstructure:"timeout"` // milliseconds
}

type HuggingFaceConfig struct {
	URL    string `mapstructure:"url"`
	APIKey string `mapstructure:"api_key"`
}

type GeminiConfig struct {
	URL    string `mapstructure:"url"`
	APIKey string `mapstructure:"api_key"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// FetchTimeoutDuration returns the shared outbound HTTP timeout.
func (a AgentsConfig) FetchTimeoutDuration() time.Duration {
	return time.Duration(a.FetchTimeout) * time.Millisecond
}

// TimeoutDuration returns the generative model call timeout.
func (g GenAIConfig) TimeoutDuration() time.Duration {
	return time.Duration(g.Timeout) * time.Millisecond
}

func validateConfig(cfg *Config) error {
	switch cfg.Bus.Mode {
	case "redis":
		if cfg.Bus.Redis.Address == "" {
			return fmt.Errorf("bus.redis.address is required when bus.mode=redis")
		}
	case "inproc":
	default:
		return fmt.Errorf("bus.mode must be redis or inproc, got %q", cfg.Bus.Mode)
	}

	switch cfg.GenAI.Provider {
	case "huggingface", "gemini":
	default:
		return fmt.Errorf("genai.provider must be huggingface or gemini, got %q", cfg.GenAI.Provider)
	}

	if cfg.Agents.Orchestrator.MaxArticles < 0 {
		return fmt.Errorf("agents.orchestrator.max_articles must be >= 0")
	}
	return nil
}
