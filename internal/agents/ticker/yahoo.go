package ticker

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"company-intel-agents/internal/common/config"
	"company-intel-agents/internal/common/httpx"
)

// searchResponse is the symbol search result shape.
type searchResponse struct {
	Quotes []struct {
		Symbol    string `json:"symbol"`
		Shortname string `json:"shortname"`
		QuoteType string `json:"quoteType"`
	} `json:"quotes"`
}

// Resolver finds the stock symbol for a company name.
type Resolver struct {
	cfg   config.FinanceConfig
	httpc *httpx.Client
}

func NewResolver(cfg config.FinanceConfig, httpc *httpx.Client) *Resolver {
	return &Resolver{cfg: cfg, httpc: httpc}
}

// Resolve looks up the first quoted symbol for the name. The name should
// already be cleaned; an empty result is a lookup failure, not an error.
func (r *Resolver) Resolve(ctx context.Context, name string) (string, bool, error) {
	endpoint := fmt.Sprintf("%s?q=%s&quotesCount=1&newsCount=0",
		r.cfg.YahooSearchURL, url.QueryEscape(name))

	resp, err := r.httpc.Get(ctx, endpoint)
	if err != nil {
		return "", false, fmt.Errorf("symbol search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", false, fmt.Errorf("symbol search returned status %d", resp.StatusCode)
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", false, fmt.Errorf("decode symbol search response: %w", err)
	}
	if len(parsed.Quotes) == 0 || parsed.Quotes[0].Symbol == "" {
		return "", false, nil
	}
	return parsed.Quotes[0].Symbol, true, nil
}
