package revenue

import (
	"encoding/json"
	"fmt"
	"strings"

	"company-intel-agents/internal/messages"
)

// Per-section defaults when the model omits a field.
const (
	defaultOverview    = "No company overview information available."
	defaultValuation   = "No valuation information available."
	defaultProfit      = "No profitability information available."
	defaultGrowth      = "No growth information available."
	defaultHealth      = "No financial health information available."
	defaultPerformance = "No stock performance information available."
	defaultAnalyst     = "No analyst sentiment information available."
)

func buildAnalysisPrompt(ticker string, fundamentals map[string]interface{}) string {
	data, err := json.MarshalIndent(fundamentals, "", "  ")
	if err != nil {
		data = []byte("{}")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are a financial analyst. Analyze the fundamentals of %s below and write a concise analysis.\n\n", ticker)
	fmt.Fprintf(&b, "Fundamentals data:\n%s\n\n", data)
	b.WriteString(`Respond ONLY with a valid JSON object with exactly these fields, each a 1-2 sentence summary:
- company_overview_summary: what the company does and its sector
- valuation_summary: valuation based on PE ratio, market cap and related metrics
- profitability_summary: margins and return metrics
- growth_summary: revenue and earnings growth
- financial_health_summary: balance sheet strength
- stock_performance_summary: 52-week range and moving averages
- analyst_sentiment_summary: analyst targets and ratings
`)
	return b.String()
}

// stripCodeFences removes a ```json ... ``` wrapper if the model added one.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	if i := strings.LastIndex(s, "```"); i != -1 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// ParseAnalysis turns model output into a complete CompanyAnalysis.
// Absent or blank fields get their section default so the reply schema
// is always fully populated.
func ParseAnalysis(generated string) (messages.CompanyAnalysis, error) {
	analysis := defaultAnalysis()

	var parsed map[string]string
	if err := json.Unmarshal([]byte(stripCodeFences(generated)), &parsed); err != nil {
		return analysis, fmt.Errorf("parse analysis output: %w", err)
	}

	assign := func(dst *string, key string) {
		if v := strings.TrimSpace(parsed[key]); v != "" {
			*dst = v
		}
	}
	assign(&analysis.CompanyOverviewSummary, "company_overview_summary")
	assign(&analysis.ValuationSummary, "valuation_summary")
	assign(&analysis.ProfitabilitySummary, "profitability_summary")
	assign(&analysis.GrowthSummary, "growth_summary")
	assign(&analysis.FinancialHealthSummary, "financial_health_summary")
	assign(&analysis.StockPerformanceSummary, "stock_performance_summary")
	assign(&analysis.AnalystSentimentSummary, "analyst_sentiment_summary")
	return analysis, nil
}

func defaultAnalysis() messages.CompanyAnalysis {
	return messages.CompanyAnalysis{
		CompanyOverviewSummary:  defaultOverview,
		ValuationSummary:        defaultValuation,
		ProfitabilitySummary:    defaultProfit,
		GrowthSummary:           defaultGrowth,
		FinancialHealthSummary:  defaultHealth,
		StockPerformanceSummary: defaultPerformance,
		AnalystSentimentSummary: defaultAnalyst,
	}
}

// errorAnalysis fills every section with the same failure text, the
// in-band encoding financial analysis failures use instead of a
// separate error message.
func errorAnalysis(text string) messages.CompanyAnalysis {
	return messages.CompanyAnalysis{
		CompanyOverviewSummary:  text,
		ValuationSummary:        text,
		ProfitabilitySummary:    text,
		GrowthSummary:           text,
		FinancialHealthSummary:  text,
		StockPerformanceSummary: text,
		AnalystSentimentSummary: text,
	}
}
