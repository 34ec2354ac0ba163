package genai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"company-intel-agents/internal/common/config"
	"company-intel-agents/internal/common/httpx"
)

// HuggingFace calls the Hugging Face inference API for an instruction
// tuned model.
type HuggingFace struct {
	cfg   config.GenAIConfig
	httpc *httpx.Client
}

func NewHuggingFace(cfg config.GenAIConfig, httpc *httpx.Client) *HuggingFace {
	return &HuggingFace{cfg: cfg, httpc: httpc}
}

type hfParameters struct {
	MaxNewTokens   int     `json:"max_new_tokens"`
	Temperature    float64 `json:"temperature"`
	ReturnFullText bool    `json:"return_full_text"`
}

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

func (h *HuggingFace) Generate(ctx context.Context, prompt string) (string, error) {
	body := hfRequest{
		Inputs: prompt,
		Parameters: hfParameters{
			MaxNewTokens:   h.cfg.MaxTokens,
			Temperature:    h.cfg.Temperature,
			ReturnFullText: false,
		},
	}
	headers := map[string]string{
		"Authorization": "Bearer " + h.cfg.HuggingFace.APIKey,
	}

	var raw json.RawMessage
	if err := h.httpc.PostJSON(ctx, h.cfg.HuggingFace.URL, headers, body, &raw); err != nil {
		return "", fmt.Errorf("huggingface inference: %w", err)
	}

	text := extractHFText(raw)
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("huggingface inference: empty generation")
	}
	return text, nil
}

// extractHFText copes with the response shapes the inference API has been
// seen to return: a list of generations, or a single object, keyed by
// either generated_text or text.
func extractHFText(raw json.RawMessage) string {
	type generation struct {
		GeneratedText string `json:"generated_text"`
		Text          string `json:"text"`
	}

	var list []generation
	if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 {
		if list[0].GeneratedText != "" {
			return list[0].GeneratedText
		}
		return list[0].Text
	}

	var single generation
	if err := json.Unmarshal(raw, &single); err == nil {
		if single.GeneratedText != "" {
			return single.GeneratedText
		}
		return single.Text
	}
	return ""
}
