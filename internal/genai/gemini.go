package genai

import (
	"context"
	"fmt"
	"net/url"

	"company-intel-agents/internal/common/config"
	"company-intel-agents/internal/common/httpx"
)

// Gemini calls the generativelanguage generateContent endpoint.
type Gemini struct {
	cfg   config.GenAIConfig
	httpc *httpx.Client
}

func NewGemini(cfg config.GenAIConfig, httpc *httpx.Client) *Gemini {
	return &Gemini{cfg: cfg, httpc: httpc}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	endpoint := g.cfg.Gemini.URL
	if g.cfg.Gemini.APIKey != "" {
		endpoint += "?key=" + url.QueryEscape(g.cfg.Gemini.APIKey)
	}

	body := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	}

	var resp geminiResponse
	if err := g.httpc.PostJSON(ctx, endpoint, nil, body, &resp); err != nil {
		return "", fmt.Errorf("gemini generateContent: %w", err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini generateContent: no candidates returned")
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}
