// Package revenue implements the agent that turns a stock symbol into a
// seven-section financial analysis. Failures never go out as a separate
// error message: every section of the reply carries the failure text.
package revenue

import (
	"context"
	"fmt"

	"company-intel-agents/internal/agent"
	"company-intel-agents/internal/common/errors"
	"company-intel-agents/internal/common/logger"
	"company-intel-agents/internal/genai"
	"company-intel-agents/internal/messages"
)

type Handler struct {
	fundamentals *FundamentalsClient
	model        genai.Client
	logger       logger.Logger
}

func NewHandler(fundamentals *FundamentalsClient, model genai.Client, log logger.Logger) *Handler {
	return &Handler{
		fundamentals: fundamentals,
		model:        model,
		logger:       log,
	}
}

func (h *Handler) Register(a *agent.Agent) {
	a.HandleFunc(messages.TypeOverviewRequest, h.HandleOverviewRequest)
}

// HandleOverviewRequest fetches fundamentals, asks the model for the
// analysis, and always replies with a CompanyAnalysis.
func (h *Handler) HandleOverviewRequest(ctx context.Context, m *agent.MessageContext) error {
	var req messages.OverviewRequest
	if err := m.Decode(&req); err != nil {
		return errors.NewMessageDecodeFailedError(messages.TypeOverviewRequest, err)
	}

	h.logger.Info("analyzing fundamentals", map[string]interface{}{
		"ticker":        req.Ticker,
		"correlationId": m.CorrelationID(),
	})

	analysis := h.analyze(ctx, req.Ticker)
	m.Reply(ctx, messages.TypeCompanyAnalysis, analysis)
	return nil
}

func (h *Handler) analyze(ctx context.Context, ticker string) messages.CompanyAnalysis {
	fundamentals, err := h.fundamentals.Fetch(ctx, ticker)
	if err != nil {
		stdErr := errors.NewFundamentalsFetchFailedError(ticker, err)
		h.logger.WithError(stdErr).Error("fundamentals fetch failed", map[string]interface{}{
			"ticker": ticker,
		})
		return errorAnalysis(fmt.Sprintf("Error connecting to data provider: %s", err))
	}

	generated, err := h.model.Generate(ctx, buildAnalysisPrompt(ticker, fundamentals))
	if err != nil {
		stdErr := errors.NewLLMCallFailedError(err)
		h.logger.WithError(stdErr).Error("analysis model call failed", map[string]interface{}{
			"ticker": ticker,
		})
		return errorAnalysis(fmt.Sprintf("Unexpected error during analysis: %s", err))
	}

	analysis, err := ParseAnalysis(generated)
	if err != nil {
		stdErr := errors.NewLLMParseFailedError(err)
		h.logger.WithError(stdErr).Error("analysis output unparseable", map[string]interface{}{
			"ticker": ticker,
		})
		return errorAnalysis(fmt.Sprintf("Error parsing analysis JSON: %s", err))
	}

	h.logger.Info("financial analysis complete", map[string]interface{}{
		"ticker": ticker,
	})
	return analysis
}
