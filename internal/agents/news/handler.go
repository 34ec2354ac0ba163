// Package news implements the agent that gathers recent coverage for a
// company, scores each article's sentiment, and produces an aggregate
// verdict plus a narrative summary.
package news

import (
	"context"
	"strings"

	"company-intel-agents/internal/agent"
	"company-intel-agents/internal/common/errors"
	"company-intel-agents/internal/common/logger"
	"company-intel-agents/internal/genai"
	"company-intel-agents/internal/messages"
)

// Handler processes news requests.
type Handler struct {
	client   *Client
	analyzer *Analyzer
	model    genai.Client
	logger   logger.Logger
}

// NewHandler wires the news pipeline. model may be nil; summaries then
// come from the headline fallback only.
func NewHandler(client *Client, analyzer *Analyzer, model genai.Client, log logger.Logger) *Handler {
	return &Handler{
		client:   client,
		analyzer: analyzer,
		model:    model,
		logger:   log,
	}
}

func (h *Handler) Register(a *agent.Agent) {
	a.HandleFunc(messages.TypeNewsRequest, h.HandleNewsRequest)
}

// HandleNewsRequest searches coverage, scores it, and replies with the
// scored articles and summary. A search failure replies with an error
// message instead.
func (h *Handler) HandleNewsRequest(ctx context.Context, m *agent.MessageContext) error {
	var req messages.NewsRequest
	if err := m.Decode(&req); err != nil {
		return errors.NewMessageDecodeFailedError(messages.TypeNewsRequest, err)
	}
	if req.MaxArticles <= 0 {
		req.MaxArticles = messages.DefaultMaxArticles
	}

	h.logger.Info("fetching news", map[string]interface{}{
		"companyName":   req.CompanyName,
		"maxArticles":   req.MaxArticles,
		"correlationId": m.CorrelationID(),
	})

	articles, total, err := h.client.Search(ctx, req.CompanyName, req.MaxArticles)
	if err != nil {
		stdErr := errors.NewNewsAPIFailedError(err)
		h.logger.WithError(stdErr).Error("news search failed", map[string]interface{}{
			"companyName": req.CompanyName,
		})
		m.Reply(ctx, messages.TypeError, messages.ErrorMessage{Text: stdErr.WireText()})
		return nil
	}

	h.analyzer.ScoreArticles(articles)

	resp := messages.NewsResponse{
		CompanyName:  req.CompanyName,
		Articles:     articles,
		TotalResults: total,
	}
	fields := map[string]interface{}{
		"companyName": req.CompanyName,
		"articles":    len(articles),
	}
	// No articles means no summary block at all.
	if len(articles) > 0 {
		overall := OverallSentiment(articles)
		resp.Summary = &messages.NewsSummary{
			OverallSentiment: overall,
			Summary:          h.summarize(ctx, req.CompanyName, articles, overall),
		}
		fields["sentiment"] = overall
	}

	h.logger.Info("news analysis complete", fields)
	m.Reply(ctx, messages.TypeNewsResponse, resp)
	return nil
}

// summarize prefers the model's text. Empty model output falls back to
// the headline concatenation; a failed model call degrades further, to
// the bare sentiment line.
func (h *Handler) summarize(ctx context.Context, companyName string, articles []messages.Article, overall string) string {
	if h.model == nil {
		return fallbackSummary(companyName, articles, overall)
	}

	generated, err := h.model.Generate(ctx, buildSummaryPrompt(companyName, articles))
	if err != nil {
		h.logger.WithError(errors.NewLLMCallFailedError(err)).Warn(
			"summary model call failed", map[string]interface{}{
				"companyName": companyName,
			})
		return exceptionSummary(overall)
	}

	generated = strings.TrimSpace(generated)
	if generated == "" {
		return fallbackSummary(companyName, articles, overall)
	}
	return generated
}
