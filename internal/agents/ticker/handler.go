// Package ticker implements the agent that resolves a company name to
// its stock symbol. It always replies: lookup failures come back as an
// unsuccessful response, never silence.
package ticker

import (
	"context"
	"fmt"

	"company-intel-agents/internal/agent"
	"company-intel-agents/internal/common/errors"
	"company-intel-agents/internal/common/logger"
	"company-intel-agents/internal/messages"
)

type Handler struct {
	resolver *Resolver
	logger   logger.Logger
}

func NewHandler(resolver *Resolver, log logger.Logger) *Handler {
	return &Handler{resolver: resolver, logger: log}
}

func (h *Handler) Register(a *agent.Agent) {
	a.HandleFunc(messages.TypeTickerRequest, h.HandleTickerRequest)
}

// HandleTickerRequest resolves the symbol and replies with the outcome.
// Every path ends in a TickerResponse so the caller can always decide
// whether to continue the financial branch.
func (h *Handler) HandleTickerRequest(ctx context.Context, m *agent.MessageContext) error {
	var req messages.CompanyRequest
	if err := m.Decode(&req); err != nil {
		return errors.NewMessageDecodeFailedError(messages.TypeTickerRequest, err)
	}

	cleaned := CleanName(req.CompanyName)
	h.logger.Info("looking up ticker", map[string]interface{}{
		"companyName":   req.CompanyName,
		"cleaned":       cleaned,
		"correlationId": m.CorrelationID(),
	})

	resp := messages.TickerResponse{CompanyName: req.CompanyName}

	symbol, found, err := h.resolver.Resolve(ctx, cleaned)
	switch {
	case err != nil:
		stdErr := errors.NewTickerLookupFailedError(err)
		h.logger.WithError(stdErr).Error("ticker lookup failed", map[string]interface{}{
			"companyName": req.CompanyName,
		})
		resp.Message = stdErr.WireText()
	case !found:
		resp.Message = fmt.Sprintf("No ticker symbol found for %s", cleaned)
		h.logger.Warn("no ticker symbol found", map[string]interface{}{
			"companyName": req.CompanyName,
			"cleaned":     cleaned,
		})
	default:
		resp.Success = true
		resp.Ticker = symbol
		resp.Message = fmt.Sprintf("Found ticker %s for %s", symbol, cleaned)
		h.logger.Info("ticker resolved", map[string]interface{}{
			"companyName": req.CompanyName,
			"ticker":      symbol,
		})
	}

	m.Reply(ctx, messages.TypeTickerResponse, resp)
	return nil
}
