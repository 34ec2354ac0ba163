package revenue

import (
	"context"
	"fmt"
	"net/url"

	"company-intel-agents/internal/common/config"
	"company-intel-agents/internal/common/httpx"
)

// FundamentalsClient fetches the fundamentals snapshot for a symbol.
type FundamentalsClient struct {
	cfg   config.FinanceConfig
	httpc *httpx.Client
}

func NewFundamentalsClient(cfg config.FinanceConfig, httpc *httpx.Client) *FundamentalsClient {
	return &FundamentalsClient{cfg: cfg, httpc: httpc}
}

// Fetch returns the raw fundamentals map for the ticker. The upstream
// schema is loose, so the payload stays untyped and flows into the
// analysis prompt as-is. An empty map means the symbol is unknown
// upstream; that is an error here because nothing can be analyzed.
func (c *FundamentalsClient) Fetch(ctx context.Context, ticker string) (map[string]interface{}, error) {
	endpoint := fmt.Sprintf("%s?function=OVERVIEW&symbol=%s&apikey=%s",
		c.cfg.AlphaVantageURL, url.QueryEscape(ticker), url.QueryEscape(c.cfg.AlphaVantageKey))

	var overview map[string]interface{}
	if err := c.httpc.GetJSON(ctx, endpoint, &overview); err != nil {
		return nil, fmt.Errorf("fundamentals request for %s: %w", ticker, err)
	}
	if len(overview) == 0 {
		return nil, fmt.Errorf("no fundamentals data for %s", ticker)
	}
	if msg, ok := overview["Error Message"].(string); ok {
		return nil, fmt.Errorf("fundamentals lookup for %s: %s", ticker, msg)
	}
	return overview, nil
}
