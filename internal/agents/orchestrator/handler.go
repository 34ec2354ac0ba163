// Package orchestrator implements the agent that drives an intelligence
// run: it kicks off the website analysis, fans the extracted company
// name out to the news and finance branches, and collects whatever
// comes back. Branches are independent; one failing never blocks the
// other.
package orchestrator

import (
	"context"

	"github.com/google/uuid"

	"company-intel-agents/internal/agent"
	"company-intel-agents/internal/common/config"
	"company-intel-agents/internal/common/errors"
	"company-intel-agents/internal/common/logger"
	"company-intel-agents/internal/messages"
)

// Config carries the run target and the peer addresses.
type Config struct {
	Website     string
	MaxArticles int
	Addresses   config.AddressConfig
}

type Handler struct {
	cfg    Config
	store  *FlowStore
	logger logger.Logger
}

func NewHandler(cfg Config, store *FlowStore, log logger.Logger) *Handler {
	if cfg.MaxArticles <= 0 {
		cfg.MaxArticles = messages.DefaultMaxArticles
	}
	return &Handler{cfg: cfg, store: store, logger: log}
}

// Register binds the handler and its startup kick-off to the agent.
func (h *Handler) Register(a *agent.Agent) {
	a.HandleFunc(messages.TypeCompanyData, h.HandleCompanyData)
	a.HandleFunc(messages.TypeNewsResponse, h.HandleNewsResponse)
	a.HandleFunc(messages.TypeTickerResponse, h.HandleTickerResponse)
	a.HandleFunc(messages.TypeCompanyAnalysis, h.HandleCompanyAnalysis)
	a.HandleFunc(messages.TypeError, h.HandleError)

	if h.cfg.Website != "" {
		a.OnStartup(func(ctx context.Context) error {
			h.StartRun(ctx, a, h.cfg.Website)
			return nil
		})
	}
}

// StartRun opens a new flow and requests the website analysis.
func (h *Handler) StartRun(ctx context.Context, a *agent.Agent, website string) string {
	correlationID := uuid.NewString()
	h.store.Begin(correlationID, website)

	h.logger.Info("starting intelligence run", map[string]interface{}{
		"website":       website,
		"correlationId": correlationID,
	})
	a.Send(ctx, h.cfg.Addresses.WebsiteAnalyzer, messages.TypeCompanyRequest,
		correlationID, messages.Request{Website: website})
	return correlationID
}

// HandleCompanyData fans the extracted profile out to both branches.
func (h *Handler) HandleCompanyData(ctx context.Context, m *agent.MessageContext) error {
	var data messages.CompanyData
	if err := m.Decode(&data); err != nil {
		return errors.NewMessageDecodeFailedError(messages.TypeCompanyData, err)
	}

	name := SanitizeCompanyName(data.CompanyName)
	if name == "" || name == messages.NotFound {
		name = SanitizeCompanyName(data.Domain)
	}

	_, known := h.store.Update(m.CorrelationID(), func(f *Flow) {
		f.Company = &data
		f.CompanyName = name
		f.State = StateBranchesInFlight
	})
	if !known {
		h.logger.Warn("profile for unknown flow, ignoring", map[string]interface{}{
			"correlationId": m.CorrelationID(),
		})
		return nil
	}

	h.logger.Info("company profile received", map[string]interface{}{
		"companyName":   name,
		"domain":        data.Domain,
		"correlationId": m.CorrelationID(),
	})

	m.SendTo(ctx, h.cfg.Addresses.NewsAgent, messages.TypeNewsRequest, messages.NewsRequest{
		CompanyName: name,
		MaxArticles: h.cfg.MaxArticles,
	})
	m.SendTo(ctx, h.cfg.Addresses.TickerAgent, messages.TypeTickerRequest, messages.CompanyRequest{
		CompanyName: name,
	})
	return nil
}

// HandleNewsResponse closes the news branch.
func (h *Handler) HandleNewsResponse(ctx context.Context, m *agent.MessageContext) error {
	var resp messages.NewsResponse
	if err := m.Decode(&resp); err != nil {
		return errors.NewMessageDecodeFailedError(messages.TypeNewsResponse, err)
	}

	state, _ := h.store.Update(m.CorrelationID(), func(f *Flow) {
		f.News = &resp
		f.NewsDone = true
	})

	fields := map[string]interface{}{
		"companyName":   resp.CompanyName,
		"articles":      len(resp.Articles),
		"totalResults":  resp.TotalResults,
		"correlationId": m.CorrelationID(),
	}
	if resp.Summary != nil {
		fields["sentiment"] = resp.Summary.OverallSentiment
		fields["summary"] = resp.Summary.Summary
	}
	h.logger.Info("news branch complete", fields)
	h.logCompletion(m.CorrelationID(), state)
	return nil
}

// HandleTickerResponse continues the finance branch on success and
// closes it otherwise.
func (h *Handler) HandleTickerResponse(ctx context.Context, m *agent.MessageContext) error {
	var resp messages.TickerResponse
	if err := m.Decode(&resp); err != nil {
		return errors.NewMessageDecodeFailedError(messages.TypeTickerResponse, err)
	}

	if !resp.Success {
		state, _ := h.store.Update(m.CorrelationID(), func(f *Flow) {
			f.FinanceDone = true
		})
		h.logger.Warn("finance branch ended without a ticker", map[string]interface{}{
			"companyName":   resp.CompanyName,
			"message":       resp.Message,
			"correlationId": m.CorrelationID(),
		})
		h.logCompletion(m.CorrelationID(), state)
		return nil
	}

	h.logger.Info("ticker resolved, requesting analysis", map[string]interface{}{
		"companyName":   resp.CompanyName,
		"ticker":        resp.Ticker,
		"correlationId": m.CorrelationID(),
	})
	m.SendTo(ctx, h.cfg.Addresses.RevenueSummary, messages.TypeOverviewRequest,
		messages.OverviewRequest{Ticker: resp.Ticker})
	return nil
}

// HandleCompanyAnalysis closes the finance branch.
func (h *Handler) HandleCompanyAnalysis(ctx context.Context, m *agent.MessageContext) error {
	var analysis messages.CompanyAnalysis
	if err := m.Decode(&analysis); err != nil {
		return errors.NewMessageDecodeFailedError(messages.TypeCompanyAnalysis, err)
	}

	state, _ := h.store.Update(m.CorrelationID(), func(f *Flow) {
		f.Analysis = &analysis
		f.FinanceDone = true
	})

	h.logger.Info("finance branch complete", map[string]interface{}{
		"overview":      analysis.CompanyOverviewSummary,
		"valuation":     analysis.ValuationSummary,
		"correlationId": m.CorrelationID(),
	})
	h.logCompletion(m.CorrelationID(), state)
	return nil
}

// HandleError records a peer failure. A website analysis failure kills
// the flow; a news failure closes only the news branch.
func (h *Handler) HandleError(ctx context.Context, m *agent.MessageContext) error {
	var errMsg messages.ErrorMessage
	if err := m.Decode(&errMsg); err != nil {
		return errors.NewMessageDecodeFailedError(messages.TypeError, err)
	}

	h.logger.Error("peer reported an error", map[string]interface{}{
		"sender":        m.Sender(),
		"text":          errMsg.Text,
		"correlationId": m.CorrelationID(),
	})

	switch m.Sender() {
	case h.cfg.Addresses.WebsiteAnalyzer:
		h.store.Update(m.CorrelationID(), func(f *Flow) {
			f.State = StateFailed
		})
	case h.cfg.Addresses.NewsAgent:
		state, _ := h.store.Update(m.CorrelationID(), func(f *Flow) {
			f.NewsDone = true
		})
		h.logCompletion(m.CorrelationID(), state)
	}
	return nil
}

// logCompletion logs once, from the handler whose update completed the
// flow. state is the post-update state that handler's Update returned.
func (h *Handler) logCompletion(correlationID string, state FlowState) {
	if state != StateComplete {
		return
	}
	f, ok := h.store.Get(correlationID)
	if !ok {
		return
	}
	h.logger.Info("intelligence run complete", map[string]interface{}{
		"website":       f.Website,
		"companyName":   f.CompanyName,
		"correlationId": correlationID,
	})
}
