package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"company-intel-agents/internal/common/config"
	"company-intel-agents/internal/common/httpx"
	"company-intel-agents/internal/messages"
)

// searchResponse is the upstream news search result shape.
type searchResponse struct {
	Status       string `json:"status"`
	TotalResults int    `json:"totalResults"`
	Articles     []struct {
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
		Content     string `json:"content"`
	} `json:"articles"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Client searches recent news coverage for a company.
type Client struct {
	cfg   config.NewsAPIConfig
	httpc *httpx.Client
}

func NewClient(cfg config.NewsAPIConfig, httpc *httpx.Client) *Client {
	return &Client{cfg: cfg, httpc: httpc}
}

// Search returns up to maxArticles scored-ready articles for the company
// plus the upstream total. Missing fields are defaulted so downstream
// code never sees an empty title or source.
func (c *Client) Search(ctx context.Context, companyName string, maxArticles int) ([]messages.Article, int, error) {
	endpoint := fmt.Sprintf("%s/everything?q=%s&language=en&pageSize=%d&apiKey=%s",
		c.cfg.BaseURL, url.QueryEscape(companyName), maxArticles, url.QueryEscape(c.cfg.APIKey))

	resp, err := c.httpc.Get(ctx, endpoint)
	if err != nil {
		return nil, 0, fmt.Errorf("news search request: %w", err)
	}
	defer resp.Body.Close()

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, 0, fmt.Errorf("decode news search response (status %d): %w", resp.StatusCode, err)
	}
	if parsed.Status != "ok" {
		return nil, 0, fmt.Errorf("news API returned status %q: %s", parsed.Status, parsed.Message)
	}

	articles := make([]messages.Article, 0, len(parsed.Articles))
	for _, raw := range parsed.Articles {
		a := messages.Article{
			Title:       raw.Title,
			Description: raw.Description,
			Source:      raw.Source.Name,
			URL:         raw.URL,
			PublishedAt: raw.PublishedAt,
			Content:     raw.Content,
		}
		if a.Title == "" {
			a.Title = messages.DefaultArticleTitle
		}
		if a.Description == "" {
			a.Description = messages.DefaultArticleDescription
		}
		if a.Source == "" {
			a.Source = messages.DefaultArticleSource
		}
		articles = append(articles, a)
	}
	return articles, parsed.TotalResults, nil
}
