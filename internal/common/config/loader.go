package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	// Enable ENV override like NEWSAPI_API_KEY
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}
	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig() // ignore error if not found

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadEnvFile loads .env from the working directory or the project root so
// the binary behaves the same when launched from cmd/ subdirectories.
func loadEnvFile() {
	possiblePaths := []string{".env", "../.env", "../../.env"}
	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "company-intel-agents"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}
	if cfg.App.MetricsAddress == "" {
		cfg.App.MetricsAddress = ":9102"
	}

	if cfg.Bus.Mode == "" {
		cfg.Bus.Mode = "redis"
	}
	if cfg.Bus.Redis.Address == "" {
		cfg.Bus.Redis.Address = "localhost:6379"
	}

	addr := &cfg.Agents.Addresses
	if addr.Orchestrator == "" {
		addr.Orchestrator = "orchestrator"
	}
	if addr.WebsiteAnalyzer == "" {
		addr.WebsiteAnalyzer = "website-analyzer"
	}
	if addr.NewsAgent == "" {
		addr.NewsAgent = "news-agent"
	}
	if addr.TickerAgent == "" {
		addr.TickerAgent = "ticker-agent"
	}
	if addr.RevenueSummary == "" {
		addr.RevenueSummary = "revenue-summary"
	}

	if cfg.Agents.Orchestrator.MaxArticles == 0 {
		cfg.Agents.Orchestrator.MaxArticles = 20
	}
	if cfg.Agents.FetchTimeout == 0 {
		cfg.Agents.FetchTimeout = 10000
	}

	if cfg.NewsAPI.BaseURL == "" {
		cfg.NewsAPI.BaseURL = "https://newsapi.org/v2"
	}
	if cfg.Finance.YahooSearchURL == "" {
		cfg.Finance.YahooSearchURL = "https://query1.finance.yahoo.com/v1/finance/search"
	}
	if cfg.Finance.AlphaVantageURL == "" {
		cfg.Finance.AlphaVantageURL = "https://www.alphavantage.co/query"
	}

	if cfg.GenAI.Provider == "" {
		cfg.GenAI.Provider = "huggingface"
	}
	if cfg.GenAI.HuggingFace.URL == "" {
		cfg.GenAI.HuggingFace.URL = "https://api-inference.huggingface.co/models/tiiuae/falcon-7b-instruct"
	}
	if cfg.GenAI.Gemini.URL == "" {
		cfg.GenAI.Gemini.URL = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.0-flash:generateContent"
	}
	if cfg.GenAI.MaxTokens == 0 {
		cfg.GenAI.MaxTokens = 500
	}
	if cfg.GenAI.Temperature == 0 {
		cfg.GenAI.Temperature = 0.1
	}
	if cfg.GenAI.Timeout == 0 {
		cfg.GenAI.Timeout = 30000
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
}
