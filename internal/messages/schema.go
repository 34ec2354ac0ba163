package messages

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// schemas maps a message type to the JSON schema its payload must satisfy.
// Types without a schema entry pass validation untouched.
var schemas = map[string]string{
	TypeCompanyRequest: `{
		"type": "object",
		"required": ["website"],
		"properties": {"website": {"type": "string", "minLength": 1}}
	}`,
	TypeCompanyData: `{
		"type": "object",
		"required": ["company_name", "domain", "main_offerings", "tagline", "summary", "source_url"],
		"properties": {
			"company_name":   {"type": "string"},
			"domain":         {"type": "string"},
			"main_offerings": {"type": "string"},
			"tagline":        {"type": "string"},
			"summary":        {"type": "string"},
			"source_url":     {"type": "string"},
			"contact_info":   {"type": "string"},
			"social_media":   {"type": "string"}
		}
	}`,
	TypeNewsRequest: `{
		"type": "object",
		"required": ["company_name"],
		"properties": {
			"company_name": {"type": "string", "minLength": 1},
			"max_articles": {"type": "integer", "minimum": 0}
		}
	}`,
	TypeNewsResponse: `{
		"type": "object",
		"required": ["company_name", "articles", "total_results"],
		"properties": {
			"company_name":  {"type": "string"},
			"articles":      {"type": "array"},
			"total_results": {"type": "integer"}
		}
	}`,
	TypeTickerRequest: `{
		"type": "object",
		"required": ["company_name"],
		"properties": {"company_name": {"type": "string", "minLength": 1}}
	}`,
	TypeTickerResponse: `{
		"type": "object",
		"required": ["company_name", "ticker", "success", "message"],
		"properties": {
			"company_name": {"type": "string"},
			"ticker":       {"type": "string"},
			"success":      {"type": "boolean"},
			"message":      {"type": "string"}
		}
	}`,
	TypeOverviewRequest: `{
		"type": "object",
		"required": ["ticker"],
		"properties": {"ticker": {"type": "string", "minLength": 1}}
	}`,
	TypeCompanyAnalysis: `{
		"type": "object",
		"required": [
			"company_overview_summary", "valuation_summary", "profitability_summary",
			"growth_summary", "financial_health_summary", "stock_performance_summary",
			"analyst_sentiment_summary"
		]
	}`,
	TypeError: `{
		"type": "object",
		"required": ["text"],
		"properties": {"text": {"type": "string"}}
	}`,
}

var compiled = map[string]*gojsonschema.Schema{}

func init() {
	for msgType, raw := range schemas {
		schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(raw))
		if err != nil {
			panic(fmt.Sprintf("invalid schema for %s: %v", msgType, err))
		}
		compiled[msgType] = schema
	}
}

// Validate checks a payload against the schema registered for its type.
// A nil return means the payload is safe to decode into the record.
func Validate(msgType string, payload []byte) error {
	schema, ok := compiled[msgType]
	if !ok {
		return nil
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(payload))
	if err != nil {
		return fmt.Errorf("validate %s: %w", msgType, err)
	}
	if result.Valid() {
		return nil
	}

	details := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		details = append(details, e.String())
	}
	return fmt.Errorf("payload for %s rejected: %s", msgType, strings.Join(details, "; "))
}
