package website

import (
	"encoding/json"
	"fmt"
	"strings"

	"company-intel-agents/internal/messages"
)

func buildExtractionPrompt(page *PageContent) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are a helpful AI assistant that extracts company information from website text.\n")
	fmt.Fprintf(&b, "Analyze the following content from %s and extract key company details.\n\n", page.SourceURL)

	if page.Title != "" {
		fmt.Fprintf(&b, "Page title: %s\n", page.Title)
	}
	if page.MetaDescription != "" {
		fmt.Fprintf(&b, "Meta description: %s\n", page.MetaDescription)
	}
	if len(page.SocialLinks) > 0 {
		fmt.Fprintf(&b, "Social links: %s\n", strings.Join(page.SocialLinks, ", "))
	}
	fmt.Fprintf(&b, "\nWebsite content:\n%s\n\n", page.Text)

	b.WriteString(`Please extract the following information in JSON format:
- company_name: The name of the company
- domain: The company website domain
- main_offerings: The main products or services offered
- tagline: The company tagline or slogan (if available, otherwise 'Not found')
- summary: A short description of what the company does
- contact_info: Contact details such as email or phone (if available, otherwise 'Not found')
- social_media: Social media presence (if available, otherwise 'Not found')

Respond ONLY with a valid JSON object containing these fields.
`)
	return b.String()
}

// balancedJSON returns the first balanced {...} region of s.
func balancedJSON(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start == -1 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return s[start : i+1], true
				}
			}
		}
	}
	return "", false
}

// extractionFields maps model JSON keys to CompanyData setters.
var extractionFields = []string{
	"company_name", "domain", "main_offerings", "tagline",
	"summary", "contact_info", "social_media",
}

// ParseCompanyData turns model output into a complete CompanyData record.
// Parsing is best effort: a balanced JSON region is preferred, labeled
// lines in the raw text are the fallback, and every absent field keeps
// its default so the output schema is complete regardless.
func ParseCompanyData(generated string, page *PageContent) messages.CompanyData {
	data := messages.NewCompanyData(page.SourceURL, page.Domain)

	if region, ok := balancedJSON(generated); ok {
		var parsed map[string]interface{}
		if err := json.Unmarshal([]byte(region), &parsed); err == nil {
			applyParsedFields(&data, parsed)
			if data.CompanyName == messages.NotFound {
				data.CompanyName = companyNameFromDomain(page.Domain)
			}
			return data
		}
	}

	// The model did not return usable JSON; scrape its raw text instead.
	for _, field := range extractionFields {
		if value := extractField(generated, field); value != "" {
			setField(&data, field, value)
		}
	}
	if data.CompanyName == messages.NotFound {
		data.CompanyName = companyNameFromDomain(page.Domain)
	}
	return data
}

// DomainFallback is the last resort when the model is unreachable: a
// record guessed entirely from the hostname.
func DomainFallback(page *PageContent) messages.CompanyData {
	data := messages.NewCompanyData(page.SourceURL, page.Domain)
	data.CompanyName = companyNameFromDomain(page.Domain)
	data.Summary = fmt.Sprintf("Information extracted from %s", page.SourceURL)
	if page.Tagline() != "" {
		data.Tagline = page.Tagline()
	}
	if len(page.SocialLinks) > 0 {
		data.SocialMedia = strings.Join(page.SocialLinks, ", ")
	}
	return data
}

// Tagline reuses the meta description when one was scraped.
func (p *PageContent) Tagline() string {
	return p.MetaDescription
}

func applyParsedFields(data *messages.CompanyData, parsed map[string]interface{}) {
	for _, field := range extractionFields {
		if raw, ok := parsed[field]; ok {
			if value, ok := raw.(string); ok && strings.TrimSpace(value) != "" {
				setField(data, field, strings.TrimSpace(value))
			}
		}
	}
}

func setField(data *messages.CompanyData, field, value string) {
	switch field {
	case "company_name":
		data.CompanyName = value
	case "domain":
		data.Domain = value
	case "main_offerings":
		data.MainOfferings = value
	case "tagline":
		data.Tagline = value
	case "summary":
		data.Summary = value
	case "contact_info":
		data.ContactInfo = value
	case "social_media":
		data.SocialMedia = value
	}
}

// extractField pulls a labeled value out of non-JSON model output: the
// text following the field name, up to a line break or a short budget.
func extractField(text, field string) string {
	lower := strings.ToLower(text)
	pos := strings.Index(lower, strings.ToLower(field))
	if pos == -1 {
		return ""
	}

	start := pos + len(field)
	end := start + 100
	if end > len(text) {
		end = len(text)
	}
	snippet := text[start:end]
	if i := strings.IndexByte(snippet, '\n'); i != -1 {
		snippet = snippet[:i]
	}
	return strings.Trim(snippet, ": \"'.,\t")
}

// companyNameFromDomain title-cases the first label of the hostname.
func companyNameFromDomain(domain string) string {
	name := domain
	if i := strings.IndexByte(name, '.'); i != -1 {
		name = name[:i]
	}
	if name == "" {
		return messages.NotFound
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
