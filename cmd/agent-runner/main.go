// cmd/agent-runner/main.go
package main

import (
	"context"
	"encoding/json"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"company-intel-agents/internal/agent"
	"company-intel-agents/internal/bus"
	"company-intel-agents/internal/common/config"
	"company-intel-agents/internal/common/httpx"
	"company-intel-agents/internal/common/logger"
	"company-intel-agents/internal/genai"

	"company-intel-agents/internal/agents/news"
	"company-intel-agents/internal/agents/orchestrator"
	"company-intel-agents/internal/agents/revenue"
	"company-intel-agents/internal/agents/ticker"
	"company-intel-agents/internal/agents/website"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(operationName+" failed, retrying...",
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return err
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting agent runner...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// --- Init Bus ---
	var b bus.Bus
	switch cfg.Bus.Mode {
	case "redis":
		var redisBus *bus.RedisBus
		err = retryWithBackoff(func() error {
			var err error
			redisBus, err = bus.NewRedisBus(cfg.Bus.Redis, log)
			if err != nil {
				return err
			}
			return redisBus.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis bus initialization")
		if err != nil {
			zapLog.Fatal("redis bus failed after retries", zap.Error(err))
		}
		b = redisBus
		zapLog.Info("Redis bus connected successfully")
	default:
		b = bus.NewInProcBus()
		zapLog.Info("Using in-process bus")
	}

	// --- Init Shared Clients ---
	httpc := httpx.NewClient(cfg.Agents.FetchTimeoutDuration())
	genaiClient, err := genai.New(cfg.GenAI, httpx.NewClient(cfg.GenAI.TimeoutDuration()))
	if err != nil {
		zapLog.Fatal("genai client failed", zap.Error(err))
	}

	addrs := cfg.Agents.Addresses

	// --- Website Analyzer ---
	websiteAgent := agent.New(addrs.WebsiteAnalyzer, b, log)
	websiteCfg := website.DefaultConfig()
	websiteCfg.FetchTimeout = cfg.Agents.FetchTimeoutDuration()
	websiteCfg.GenerateTimeout = cfg.GenAI.TimeoutDuration()
	website.NewHandler(
		websiteCfg,
		website.NewScraper(httpc, websiteCfg.TextLimit),
		genaiClient,
		log,
	).Register(websiteAgent)

	// --- News Agent ---
	newsAgent := agent.New(addrs.NewsAgent, b, log)
	news.NewHandler(
		news.NewClient(cfg.NewsAPI, httpc),
		news.NewAnalyzer(),
		genaiClient,
		log,
	).Register(newsAgent)

	// --- Ticker Agent ---
	tickerAgent := agent.New(addrs.TickerAgent, b, log)
	ticker.NewHandler(
		ticker.NewResolver(cfg.Finance, httpc),
		log,
	).Register(tickerAgent)

	// --- Revenue Summary Agent ---
	revenueAgent := agent.New(addrs.RevenueSummary, b, log)
	revenue.NewHandler(
		revenue.NewFundamentalsClient(cfg.Finance, httpc),
		genaiClient,
		log,
	).Register(revenueAgent)

	// --- Orchestrator ---
	orchestratorAgent := agent.New(addrs.Orchestrator, b, log)
	orchestrator.NewHandler(
		orchestrator.Config{
			Website:     cfg.Agents.Orchestrator.Website,
			MaxArticles: cfg.Agents.Orchestrator.MaxArticles,
			Addresses:   addrs,
		},
		orchestrator.NewFlowStore(),
		log,
	).Register(orchestratorAgent)

	agents := []*agent.Agent{
		websiteAgent, newsAgent, tickerAgent, revenueAgent, orchestratorAgent,
	}

	// Every subscription must be live before any agent runs: the
	// orchestrator's startup hook sends as soon as its loop starts.
	for _, a := range agents {
		if err := a.Subscribe(ctx); err != nil {
			zapLog.Fatal("agent subscribe failed", zap.String("agent", a.Address()), zap.Error(err))
		}
	}
	for _, a := range agents {
		go func(a *agent.Agent) {
			if err := a.Run(ctx); err != nil && ctx.Err() == nil {
				zapLog.Error("agent stopped", zap.String("agent", a.Address()), zap.Error(err))
			}
		}(a)
	}
	zapLog.Info("All 5 agents started")

	// --- Health & Metrics Server ---
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "healthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("Health/Metrics server listening on " + cfg.App.MetricsAddress)
		if err := http.ListenAndServe(cfg.App.MetricsAddress, nil); err != nil {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping agents...")
	cancel()

	if err := b.Close(); err != nil {
		zapLog.Error("Error closing bus", zap.Error(err))
	}

	zapLog.Info("Agent runner stopped gracefully")
}
