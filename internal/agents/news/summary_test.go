package news

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"company-intel-agents/internal/messages"
)

func TestBuildSummaryPrompt_CapsArticles(t *testing.T) {
	articles := make([]messages.Article, 15)
	for i := range articles {
		articles[i] = messages.Article{
			Title:       fmt.Sprintf("Headline %d", i+1),
			Description: "desc",
			Source:      "Wire",
			Sentiment:   &messages.SentimentScores{Compound: 0.2},
		}
	}

	prompt := buildSummaryPrompt("Apple", articles)

	assert.Contains(t, prompt, "Apple")
	assert.Contains(t, prompt, "Headline 10")
	assert.NotContains(t, prompt, "Headline 11")
	assert.Contains(t, prompt, "[Positive]")
}

func TestFallbackSummary(t *testing.T) {
	articles := []messages.Article{
		{Title: "First story"},
		{Title: "Second story"},
		{Title: "Third story"},
		{Title: "Fourth story"},
	}

	summary := fallbackSummary("Apple", articles, messages.SentimentPositive)

	assert.Contains(t, summary, "Apple")
	assert.Contains(t, summary, "First story")
	assert.Contains(t, summary, "Third story")
	assert.NotContains(t, summary, "Fourth story")
	assert.True(t, strings.Contains(summary, "positive"))
}

func TestFallbackSummary_NoArticles(t *testing.T) {
	summary := fallbackSummary("Apple", nil, messages.SentimentNeutral)
	assert.Equal(t, "No recent news found for Apple.", summary)
}

func TestExceptionSummary(t *testing.T) {
	assert.Equal(t,
		"Found multiple articles with an overall negative sentiment.",
		exceptionSummary(messages.SentimentNegative))
}
