// Package website implements the agent that turns a homepage URL into a
// structured company profile. It scrapes the page, asks a generative
// model to extract the profile fields, and falls back to hostname
// heuristics when the model is unavailable.
package website

import (
	"context"
	"fmt"

	"company-intel-agents/internal/agent"
	"company-intel-agents/internal/common/errors"
	"company-intel-agents/internal/common/logger"
	"company-intel-agents/internal/genai"
	"company-intel-agents/internal/messages"
)

// Handler processes company profile requests.
type Handler struct {
	cfg     *Config
	scraper *Scraper
	model   genai.Client
	logger  logger.Logger
}

func NewHandler(cfg *Config, scraper *Scraper, model genai.Client, log logger.Logger) *Handler {
	return &Handler{
		cfg:     cfg,
		scraper: scraper,
		model:   model,
		logger:  log,
	}
}

// Register binds the handler to its agent.
func (h *Handler) Register(a *agent.Agent) {
	a.HandleFunc(messages.TypeCompanyRequest, h.HandleCompanyRequest)
}

// HandleCompanyRequest scrapes the requested site and replies with a
// company profile. A fetch failure is the only error path; every other
// failure degrades to a hostname-derived profile so the caller always
// gets a complete record.
func (h *Handler) HandleCompanyRequest(ctx context.Context, m *agent.MessageContext) error {
	var req messages.Request
	if err := m.Decode(&req); err != nil {
		return errors.NewMessageDecodeFailedError(messages.TypeCompanyRequest, err)
	}

	url := NormalizeURL(req.Website)
	h.logger.Info("analyzing website", map[string]interface{}{
		"url":           url,
		"correlationId": m.CorrelationID(),
	})

	page, err := h.scraper.Fetch(ctx, url)
	if err != nil {
		stdErr := errors.NewWebsiteFetchFailedError(url, err)
		h.logger.WithError(stdErr).Error("website fetch failed", map[string]interface{}{
			"url": url,
		})
		m.Reply(ctx, messages.TypeError, messages.ErrorMessage{Text: stdErr.WireText()})
		return nil
	}

	data := h.extract(ctx, page)
	h.logger.Info("website analysis complete", map[string]interface{}{
		"url":         url,
		"companyName": data.CompanyName,
	})
	m.Reply(ctx, messages.TypeCompanyData, data)
	return nil
}

func (h *Handler) extract(ctx context.Context, page *PageContent) messages.CompanyData {
	genCtx, cancel := context.WithTimeout(ctx, h.cfg.GenerateTimeout)
	defer cancel()

	generated, err := h.model.Generate(genCtx, buildExtractionPrompt(page))
	if err != nil {
		h.logger.WithError(errors.NewLLMCallFailedError(err)).Warn(
			"model unavailable, using domain fallback", map[string]interface{}{
				"domain": page.Domain,
			})
		return DomainFallback(page)
	}

	data := ParseCompanyData(generated, page)
	if data.Summary == messages.NotFound {
		data.Summary = fmt.Sprintf("Information extracted from %s", page.SourceURL)
	}
	return data
}
