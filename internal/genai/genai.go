// Package genai wraps the generative-text collaborators behind one
// call-and-get-result interface. The model is treated as opaque, possibly
// slow, possibly failing; callers own their fallbacks.
package genai

import (
	"context"
	"fmt"

	"company-intel-agents/internal/common/config"
	"company-intel-agents/internal/common/httpx"
)

// Client generates text for a prompt.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// New builds the client selected by genai.provider.
func New(cfg config.GenAIConfig, httpc *httpx.Client) (Client, error) {
	switch cfg.Provider {
	case "huggingface":
		return NewHuggingFace(cfg, httpc), nil
	case "gemini":
		return NewGemini(cfg, httpc), nil
	default:
		return nil, fmt.Errorf("unknown genai provider %q", cfg.Provider)
	}
}
