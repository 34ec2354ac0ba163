package website

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"company-intel-agents/internal/messages"
)

func testPage() *PageContent {
	return &PageContent{
		Title:           "Acme Rockets",
		MetaDescription: "We build rockets for coyotes.",
		Text:            "Acme has been building rockets since 1949.",
		SocialLinks:     []string{"https://twitter.com/acmerockets"},
		SourceURL:       "https://acme.com",
		Domain:          "acme.com",
	}
}

func TestBalancedJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{
			name:  "plain object",
			input: `{"a": 1}`,
			want:  `{"a": 1}`,
			ok:    true,
		},
		{
			name:  "object with prose around it",
			input: "Sure! Here is the JSON:\n{\"a\": 1}\nHope that helps.",
			want:  `{"a": 1}`,
			ok:    true,
		},
		{
			name:  "nested objects",
			input: `{"a": {"b": 2}} trailing`,
			want:  `{"a": {"b": 2}}`,
			ok:    true,
		},
		{
			name:  "braces inside strings",
			input: `{"a": "closing } brace inside"}`,
			want:  `{"a": "closing } brace inside"}`,
			ok:    true,
		},
		{
			name:  "no object",
			input: "just prose",
			ok:    false,
		},
		{
			name:  "unterminated object",
			input: `{"a": 1`,
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := balancedJSON(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseCompanyData_FromJSON(t *testing.T) {
	generated := `Here you go:
{
	"company_name": "Acme Rockets Inc",
	"main_offerings": "Rockets and anvils",
	"tagline": "Fast delivery, guaranteed",
	"summary": "Acme builds rockets.",
	"contact_info": "sales@acme.com",
	"social_media": "https://twitter.com/acmerockets"
}`

	data := ParseCompanyData(generated, testPage())

	assert.Equal(t, "Acme Rockets Inc", data.CompanyName)
	assert.Equal(t, "acme.com", data.Domain)
	assert.Equal(t, "Rockets and anvils", data.MainOfferings)
	assert.Equal(t, "Fast delivery, guaranteed", data.Tagline)
	assert.Equal(t, "Acme builds rockets.", data.Summary)
	assert.Equal(t, "https://acme.com", data.SourceURL)
	assert.Equal(t, "sales@acme.com", data.ContactInfo)
	assert.Equal(t, "https://twitter.com/acmerockets", data.SocialMedia)
}

func TestParseCompanyData_MissingFieldsKeepDefaults(t *testing.T) {
	data := ParseCompanyData(`{"company_name": "Acme"}`, testPage())

	assert.Equal(t, "Acme", data.CompanyName)
	assert.Equal(t, messages.NotFound, data.MainOfferings)
	assert.Equal(t, messages.NotFound, data.Tagline)
	assert.Equal(t, messages.NotFound, data.ContactInfo)
	assert.Equal(t, messages.NotFound, data.SocialMedia)
}

func TestParseCompanyData_RawTextFallback(t *testing.T) {
	generated := "company_name: Acme Rockets\nsummary: They make rockets\nno json here"

	data := ParseCompanyData(generated, testPage())

	assert.Equal(t, "Acme Rockets", data.CompanyName)
	assert.Equal(t, "They make rockets", data.Summary)
	assert.Equal(t, messages.NotFound, data.Tagline)
}

func TestParseCompanyData_GarbageFallsBackToDomainName(t *testing.T) {
	data := ParseCompanyData("total nonsense with no fields at all", testPage())

	assert.Equal(t, "Acme", data.CompanyName)
	assert.Equal(t, "acme.com", data.Domain)
}

func TestDomainFallback(t *testing.T) {
	data := DomainFallback(testPage())

	assert.Equal(t, "Acme", data.CompanyName)
	assert.Equal(t, "acme.com", data.Domain)
	assert.Equal(t, "Information extracted from https://acme.com", data.Summary)
	assert.Equal(t, "We build rockets for coyotes.", data.Tagline)
	assert.Equal(t, "https://twitter.com/acmerockets", data.SocialMedia)
	assert.Equal(t, messages.NotFound, data.MainOfferings)
}

func TestBuildExtractionPrompt_EmbedsPageContent(t *testing.T) {
	prompt := buildExtractionPrompt(testPage())

	assert.True(t, strings.Contains(prompt, "https://acme.com"))
	assert.True(t, strings.Contains(prompt, "Acme has been building rockets since 1949."))
	assert.True(t, strings.Contains(prompt, "company_name"))
	assert.True(t, strings.Contains(prompt, "social_media"))
}
