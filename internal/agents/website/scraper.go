package website

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"company-intel-agents/internal/common/httpx"
)

// PageContent is what the scraper hands to the extraction step.
type PageContent struct {
	Title           string
	MetaDescription string
	Text            string
	SocialLinks     []string
	SourceURL       string
	Domain          string
}

// socialHosts are the link hosts collected as social media presence.
var socialHosts = []string{
	"twitter.com", "x.com", "facebook.com", "linkedin.com",
	"instagram.com", "youtube.com", "tiktok.com",
}

const maxSocialLinks = 8

type Scraper struct {
	httpc     *httpx.Client
	textLimit int
}

func NewScraper(httpc *httpx.Client, textLimit int) *Scraper {
	return &Scraper{httpc: httpc, textLimit: textLimit}
}

// NormalizeURL prefixes https:// when the input carries no scheme.
func NormalizeURL(raw string) string {
	if !strings.Contains(raw, "://") {
		return "https://" + raw
	}
	return raw
}

// DomainOf returns the bare hostname of a URL, without a www prefix.
func DomainOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		// Fall back to manual splitting for unparseable input.
		host := rawURL
		if i := strings.Index(host, "://"); i != -1 {
			host = host[i+3:]
		}
		if i := strings.IndexAny(host, "/?#"); i != -1 {
			host = host[:i]
		}
		return strings.TrimPrefix(host, "www.")
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

// Fetch downloads a homepage and extracts its visible content.
func (s *Scraper) Fetch(ctx context.Context, rawURL string) (*PageContent, error) {
	pageURL := NormalizeURL(rawURL)

	resp, err := s.httpc.Get(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	doc.Find("script, style, noscript").Remove()

	content := &PageContent{
		Title:           collapseWhitespace(doc.Find("title").First().Text()),
		MetaDescription: collapseWhitespace(doc.Find(`meta[name="description"]`).AttrOr("content", "")),
		SourceURL:       pageURL,
		Domain:          DomainOf(pageURL),
	}

	content.SocialLinks = collectSocialLinks(doc)
	content.Text = s.collectText(doc)

	return content, nil
}

// collectText gathers page text with content-bearing sections first, then
// the remaining body, bounded to the configured character budget.
func (s *Scraper) collectText(doc *goquery.Document) string {
	var parts []string
	seen := map[string]bool{}

	add := func(text string) {
		text = collapseWhitespace(text)
		if text == "" || seen[text] {
			return
		}
		seen[text] = true
		parts = append(parts, text)
	}

	for _, selector := range []string{"h1", "h2", "h3", "main p", "article p"} {
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			add(sel.Text())
		})
	}
	add(doc.Find("body").Text())

	text := strings.Join(parts, " ")
	if len(text) > s.textLimit {
		text = text[:s.textLimit]
	}
	return text
}

func collectSocialLinks(doc *goquery.Document) []string {
	var links []string
	seen := map[string]bool{}

	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href := sel.AttrOr("href", "")
		for _, host := range socialHosts {
			if strings.Contains(href, host) && !seen[href] {
				seen[href] = true
				links = append(links, href)
				break
			}
		}
		return len(links) < maxSocialLinks
	})
	return links
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
