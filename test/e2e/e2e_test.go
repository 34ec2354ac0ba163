package e2e

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"company-intel-agents/internal/agent"
	"company-intel-agents/internal/bus"
	"company-intel-agents/internal/common/config"
	"company-intel-agents/internal/common/httpx"
	"company-intel-agents/internal/common/logger"
	"company-intel-agents/internal/messages"

	"company-intel-agents/internal/agents/news"
	"company-intel-agents/internal/agents/orchestrator"
	"company-intel-agents/internal/agents/revenue"
	"company-intel-agents/internal/agents/ticker"
	"company-intel-agents/internal/agents/website"
)

const homepage = `<html>
<head>
	<title>Apple</title>
	<meta name="description" content="Think different.">
</head>
<body>
	<h1>Apple</h1>
	<p>Apple designs iPhones, Macs and services.</p>
	<a href="https://twitter.com/apple">Twitter</a>
</body>
</html>`

const newsBody = `{
	"status": "ok",
	"totalResults": 2,
	"articles": [
		{"source": {"name": "Wire"}, "title": "Apple posts record revenue", "description": "A wonderful quarter", "url": "https://example.com/a", "publishedAt": "2025-08-01T00:00:00Z"},
		{"source": {"name": "Wire"}, "title": "Apple expands services", "description": "Strong growth", "url": "https://example.com/b", "publishedAt": "2025-08-02T00:00:00Z"}
	]
}`

const overviewBody = `{"Symbol": "AAPL", "Name": "Apple Inc", "Sector": "Technology", "PERatio": "29.5"}`

const analysisJSON = `{
	"company_overview_summary": "Apple designs consumer electronics.",
	"valuation_summary": "Premium valuation.",
	"profitability_summary": "High margins.",
	"growth_summary": "Steady growth.",
	"financial_health_summary": "Strong balance sheet.",
	"stock_performance_summary": "Near highs.",
	"analyst_sentiment_summary": "Mostly buys."
}`

// scriptedModel answers the website extraction, news summary and
// financial analysis prompts by sniffing the prompt text.
type scriptedModel struct{}

func (scriptedModel) Generate(ctx context.Context, prompt string) (string, error) {
	switch {
	case strings.Contains(prompt, "financial analyst"):
		return analysisJSON, nil
	case strings.Contains(prompt, "Summarize the following recent news"):
		return "Apple had a strong week across products and services.", nil
	default:
		return `{"company_name": "Apple Inc", "main_offerings": "iPhones, Macs and services", "summary": "Apple designs consumer electronics."}`, nil
	}
}

type fleet struct {
	store         *orchestrator.FlowStore
	orchestrator  *orchestrator.Handler
	orchestratorA *agent.Agent
}

// startFleet wires all five agents onto one in-process bus, pointing
// every outbound HTTP call at the given stub servers.
func startFleet(t *testing.T, homepageURL, newsURL, yahooURL, alphaURL string) *fleet {
	t.Helper()

	b := bus.NewInProcBus()
	t.Cleanup(func() { b.Close() })

	log := logger.NewTestLogger(t)
	httpc := httpx.NewClient(2 * time.Second)
	model := scriptedModel{}

	addrs := config.AddressConfig{
		Orchestrator:    "orchestrator",
		WebsiteAnalyzer: "website-analyzer",
		NewsAgent:       "news-agent",
		TickerAgent:     "ticker-agent",
		RevenueSummary:  "revenue-summary",
	}

	websiteAgent := agent.New(addrs.WebsiteAnalyzer, b, log)
	websiteCfg := website.DefaultConfig()
	website.NewHandler(websiteCfg, website.NewScraper(httpc, websiteCfg.TextLimit), model, log).
		Register(websiteAgent)

	newsAgent := agent.New(addrs.NewsAgent, b, log)
	news.NewHandler(
		news.NewClient(config.NewsAPIConfig{BaseURL: newsURL, APIKey: "k"}, httpc),
		news.NewAnalyzer(), model, log,
	).Register(newsAgent)

	tickerAgent := agent.New(addrs.TickerAgent, b, log)
	ticker.NewHandler(
		ticker.NewResolver(config.FinanceConfig{YahooSearchURL: yahooURL}, httpc), log,
	).Register(tickerAgent)

	revenueAgent := agent.New(addrs.RevenueSummary, b, log)
	revenue.NewHandler(
		revenue.NewFundamentalsClient(config.FinanceConfig{AlphaVantageURL: alphaURL, AlphaVantageKey: "k"}, httpc),
		model, log,
	).Register(revenueAgent)

	store := orchestrator.NewFlowStore()
	orchHandler := orchestrator.NewHandler(
		orchestrator.Config{MaxArticles: 5, Addresses: addrs},
		store, log,
	)
	orchestratorAgent := agent.New(addrs.Orchestrator, b, log)
	orchHandler.Register(orchestratorAgent)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	agents := []*agent.Agent{
		websiteAgent, newsAgent, tickerAgent, revenueAgent, orchestratorAgent,
	}
	// Subscribe everyone before anyone runs so the first message cannot
	// outrun a peer's subscription.
	for _, a := range agents {
		require.NoError(t, a.Subscribe(ctx))
	}
	for _, a := range agents {
		go func(a *agent.Agent) { _ = a.Run(ctx) }(a)
	}

	return &fleet{store: store, orchestrator: orchHandler, orchestratorA: orchestratorAgent}
}

func TestFullIntelligenceRun(t *testing.T) {
	homepageSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(homepage))
	}))
	defer homepageSrv.Close()
	newsSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(newsBody))
	}))
	defer newsSrv.Close()
	yahooSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"quotes": [{"symbol": "AAPL"}]}`))
	}))
	defer yahooSrv.Close()
	alphaSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(overviewBody))
	}))
	defer alphaSrv.Close()

	f := startFleet(t, homepageSrv.URL, newsSrv.URL, yahooSrv.URL, alphaSrv.URL)

	correlationID := f.orchestrator.StartRun(context.Background(), f.orchestratorA, homepageSrv.URL)

	require.Eventually(t, func() bool {
		flow, ok := f.store.Get(correlationID)
		return ok && flow.State == orchestrator.StateComplete
	}, 10*time.Second, 50*time.Millisecond, "run never completed")

	flow, ok := f.store.Get(correlationID)
	require.True(t, ok)

	require.NotNil(t, flow.Company)
	assert.Equal(t, "Apple Inc", flow.Company.CompanyName)
	assert.Equal(t, "Apple", flow.CompanyName)

	require.NotNil(t, flow.News)
	assert.Len(t, flow.News.Articles, 2)
	require.NotNil(t, flow.News.Summary)
	assert.Equal(t, messages.SentimentPositive, flow.News.Summary.OverallSentiment)

	require.NotNil(t, flow.Analysis)
	assert.Equal(t, "Apple designs consumer electronics.", flow.Analysis.CompanyOverviewSummary)
	assert.Equal(t, "Mostly buys.", flow.Analysis.AnalystSentimentSummary)
}

func TestNewsFailureDoesNotBlockFinanceBranch(t *testing.T) {
	homepageSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(homepage))
	}))
	defer homepageSrv.Close()
	newsSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer newsSrv.Close()
	yahooSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"quotes": [{"symbol": "AAPL"}]}`))
	}))
	defer yahooSrv.Close()
	alphaSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(overviewBody))
	}))
	defer alphaSrv.Close()

	f := startFleet(t, homepageSrv.URL, newsSrv.URL, yahooSrv.URL, alphaSrv.URL)

	correlationID := f.orchestrator.StartRun(context.Background(), f.orchestratorA, homepageSrv.URL)

	require.Eventually(t, func() bool {
		flow, ok := f.store.Get(correlationID)
		return ok && flow.State == orchestrator.StateComplete
	}, 10*time.Second, 50*time.Millisecond, "run never completed")

	flow, ok := f.store.Get(correlationID)
	require.True(t, ok)
	assert.Nil(t, flow.News)
	require.NotNil(t, flow.Analysis)
	assert.Equal(t, "Apple designs consumer electronics.", flow.Analysis.CompanyOverviewSummary)
}

func TestWebsiteFetchFailureFailsFlow(t *testing.T) {
	deadSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer deadSrv.Close()
	stubSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer stubSrv.Close()

	f := startFleet(t, deadSrv.URL, stubSrv.URL, stubSrv.URL, stubSrv.URL)

	correlationID := f.orchestrator.StartRun(context.Background(), f.orchestratorA, deadSrv.URL)

	require.Eventually(t, func() bool {
		flow, ok := f.store.Get(correlationID)
		return ok && flow.State == orchestrator.StateFailed
	}, 10*time.Second, 50*time.Millisecond, "flow never failed")

	flow, ok := f.store.Get(correlationID)
	require.True(t, ok)
	assert.Nil(t, flow.Company)
	assert.Nil(t, flow.News)
	assert.Nil(t, flow.Analysis)
}
