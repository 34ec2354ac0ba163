// Package messages defines the typed records exchanged between agents.
package messages

// Message type names carried in the envelope. Dispatch is by exact match.
const (
	TypeCompanyRequest  = "company.request"
	TypeCompanyData     = "company.data.v2"
	TypeNewsRequest     = "news.request"
	TypeNewsResponse    = "news.response"
	TypeTickerRequest   = "ticker.request"
	TypeTickerResponse  = "ticker.response"
	TypeOverviewRequest = "overview.request"
	TypeCompanyAnalysis = "company.analysis"
	TypeError           = "error"
)

// NotFound is the sentinel for CompanyData fields the extraction could not fill.
const NotFound = "Not found"

// DefaultMaxArticles caps a NewsRequest when the caller does not set one.
const DefaultMaxArticles = 20

// Request triggers a website analysis. The URL is not necessarily schemed.
type Request struct {
	Website string `json:"website"`
}

// CompanyData holds the facts extracted from a company homepage.
// Every field is always present; unknown values carry the NotFound sentinel.
type CompanyData struct {
	CompanyName   string `json:"company_name"`
	Domain        string `json:"domain"`
	MainOfferings string `json:"main_offerings"`
	Tagline       string `json:"tagline"`
	Summary       string `json:"summary"`
	SourceURL     string `json:"source_url"`
	ContactInfo   string `json:"contact_info"`
	SocialMedia   string `json:"social_media"`
}

// NewCompanyData returns a record with every field defaulted, ready to be
// overwritten by whatever the extraction managed to find.
func NewCompanyData(sourceURL, domain string) CompanyData {
	return CompanyData{
		CompanyName:   NotFound,
		Domain:        domain,
		MainOfferings: NotFound,
		Tagline:       NotFound,
		Summary:       NotFound,
		SourceURL:     sourceURL,
		ContactInfo:   NotFound,
		SocialMedia:   NotFound,
	}
}

// NewsRequest asks the news agent for recent coverage of a company.
type NewsRequest struct {
	CompanyName string `json:"company_name"`
	MaxArticles int    `json:"max_articles"`
}

// SentimentScores is the four-value VADER breakdown for one text.
type SentimentScores struct {
	Negative float64 `json:"neg"`
	Neutral  float64 `json:"neu"`
	Positive float64 `json:"pos"`
	Compound float64 `json:"compound"`
}

// Article is a single news result with its derived sentiment.
type Article struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Source      string           `json:"source"`
	URL         string           `json:"url"`
	PublishedAt string           `json:"published_at"`
	Content     string           `json:"content,omitempty"`
	Sentiment   *SentimentScores `json:"sentiment,omitempty"`
}

// Article field defaults, applied when the upstream API omits a value.
const (
	DefaultArticleTitle       = "No title"
	DefaultArticleDescription = "No description"
	DefaultArticleSource      = "Unknown source"
)

// NewsSummary is the aggregate verdict over a set of articles.
type NewsSummary struct {
	OverallSentiment string `json:"overall_sentiment"`
	Summary          string `json:"summary"`
}

// Overall sentiment labels.
const (
	SentimentPositive = "Positive"
	SentimentNegative = "Negative"
	SentimentNeutral  = "Neutral"
)

// NewsResponse carries scored articles plus the narrative summary.
// TotalResults is the upstream-reported total and may exceed len(Articles).
type NewsResponse struct {
	CompanyName  string       `json:"company_name"`
	Articles     []Article    `json:"articles"`
	TotalResults int          `json:"total_results"`
	Summary      *NewsSummary `json:"summary,omitempty"`
}

// CompanyRequest asks the ticker agent to resolve a stock symbol.
type CompanyRequest struct {
	CompanyName string `json:"company_name"`
}

// TickerResponse reports a symbol lookup. Ticker is empty whenever
// Success is false; Message explains why.
type TickerResponse struct {
	CompanyName string `json:"company_name"`
	Ticker      string `json:"ticker"`
	Success     bool   `json:"success"`
	Message     string `json:"message"`
}

// OverviewRequest asks the revenue agent for a financial analysis.
type OverviewRequest struct {
	Ticker string `json:"ticker"`
}

// CompanyAnalysis holds the seven narrative sections of a financial
// analysis. Failures are encoded in-band: each field carries a literal
// error string instead of a distinct error message type.
type CompanyAnalysis struct {
	CompanyOverviewSummary  string `json:"company_overview_summary"`
	ValuationSummary        string `json:"valuation_summary"`
	ProfitabilitySummary    string `json:"profitability_summary"`
	GrowthSummary           string `json:"growth_summary"`
	FinancialHealthSummary  string `json:"financial_health_summary"`
	StockPerformanceSummary string `json:"stock_performance_summary"`
	AnalystSentimentSummary string `json:"analyst_sentiment_summary"`
}

// ErrorMessage is the generic failure carrier used by every agent except
// the revenue summary agent.
type ErrorMessage struct {
	Text string `json:"text"`
}
