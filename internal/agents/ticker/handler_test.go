package ticker

import (
	"context"
	"net/http"
	"net/http/httptest"
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
)

func newTestResolver(searchURL string) *Resolver {
	return NewResolver(
		config.FinanceConfig{YahooSearchURL: searchURL},
		httpx.NewClient(2*time.Second),
	)
}

type handlerHarness struct {
	handler *Handler
	agent   *agent.Agent
	replies <-chan bus.Envelope
}

func newHarness(t *testing.T, searchURL string) *handlerHarness {
	t.Helper()
	b := bus.NewInProcBus()
	t.Cleanup(func() { b.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	replies, err := b.Subscribe(ctx, "orchestrator")
	require.NoError(t, err)

	h := NewHandler(newTestResolver(searchURL), logger.NewTestLogger(t))
	a := agent.New("ticker-agent", b, logger.NewTestLogger(t))
	h.Register(a)
	return &handlerHarness{handler: h, agent: a, replies: replies}
}

func (hh *handlerHarness) handle(t *testing.T, companyName string) messages.TickerResponse {
	t.Helper()
	env, err := bus.NewEnvelope(messages.TypeTickerRequest, "orchestrator", "corr-1",
		messages.CompanyRequest{CompanyName: companyName})
	require.NoError(t, err)
	m := agent.NewMessageContext(hh.agent, env)
	require.NoError(t, hh.handler.HandleTickerRequest(context.Background(), m))

	select {
	case reply := <-hh.replies:
		require.Equal(t, messages.TypeTickerResponse, reply.Type)
		var resp messages.TickerResponse
		require.NoError(t, reply.Decode(&resp))
		return resp
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for ticker response")
		return messages.TickerResponse{}
	}
}

func TestResolver_Resolve(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"quotes": [{"symbol": "AAPL", "shortname": "Apple Inc.", "quoteType": "EQUITY"}]}`))
	}))
	defer srv.Close()

	symbol, found, err := newTestResolver(srv.URL).Resolve(context.Background(), "Apple")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "AAPL", symbol)

	assert.Contains(t, gotQuery, "q=Apple")
	assert.Contains(t, gotQuery, "quotesCount=1")
	assert.Contains(t, gotQuery, "newsCount=0")
}

func TestResolver_Resolve_NoQuotes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"quotes": []}`))
	}))
	defer srv.Close()

	_, found, err := newTestResolver(srv.URL).Resolve(context.Background(), "No Such Company")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestHandleTickerRequest_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"quotes": [{"symbol": "AAPL"}]}`))
	}))
	defer srv.Close()

	resp := newHarness(t, srv.URL).handle(t, "Apple Inc")

	assert.True(t, resp.Success)
	assert.Equal(t, "AAPL", resp.Ticker)
	assert.Equal(t, "Apple Inc", resp.CompanyName)
	assert.Contains(t, resp.Message, "AAPL")
}

func TestHandleTickerRequest_NoMatchStillReplies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"quotes": []}`))
	}))
	defer srv.Close()

	resp := newHarness(t, srv.URL).handle(t, "Imaginary Widgets")

	assert.False(t, resp.Success)
	assert.Empty(t, resp.Ticker)
	assert.Contains(t, resp.Message, "No ticker symbol found")
}

func TestHandleTickerRequest_UpstreamFailureStillReplies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	resp := newHarness(t, srv.URL).handle(t, "Apple")

	assert.False(t, resp.Success)
	assert.Empty(t, resp.Ticker)
	assert.Contains(t, resp.Message, "Exception during ticker lookup")
}

func TestHandleTickerRequest_UnreachableStillReplies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	resp := newHarness(t, srv.URL).handle(t, "Apple")

	assert.False(t, resp.Success)
	assert.Empty(t, resp.Ticker)
	assert.NotEmpty(t, resp.Message)
}
