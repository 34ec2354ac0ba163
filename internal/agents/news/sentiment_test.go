package news

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"company-intel-agents/internal/messages"
)

func scored(compounds ...float64) []messages.Article {
	articles := make([]messages.Article, len(compounds))
	for i, c := range compounds {
		articles[i] = messages.Article{
			Title:     "headline",
			Sentiment: &messages.SentimentScores{Compound: c},
		}
	}
	return articles
}

func TestOverallSentiment(t *testing.T) {
	tests := []struct {
		name      string
		compounds []float64
		want      string
	}{
		{
			name:      "clearly positive",
			compounds: []float64{0.2, 0.3, -0.1},
			want:      messages.SentimentPositive,
		},
		{
			name:      "clearly negative",
			compounds: []float64{-0.4, -0.2, 0.1},
			want:      messages.SentimentNegative,
		},
		{
			name:      "mixed lands neutral",
			compounds: []float64{0.1, -0.1},
			want:      messages.SentimentNeutral,
		},
		{
			name:      "slightly negative mean stays neutral",
			compounds: []float64{0.0, -0.06},
			want:      messages.SentimentNeutral,
		},
		{
			name:      "positive boundary is inclusive",
			compounds: []float64{0.05},
			want:      messages.SentimentPositive,
		},
		{
			name:      "negative boundary is inclusive",
			compounds: []float64{-0.05},
			want:      messages.SentimentNegative,
		},
		{
			name:      "just inside the neutral band",
			compounds: []float64{0.049},
			want:      messages.SentimentNeutral,
		},
		{
			name:      "no articles",
			compounds: nil,
			want:      messages.SentimentNeutral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OverallSentiment(scored(tt.compounds...)))
		})
	}
}

func TestOverallSentiment_UnscoredArticlesCountAsZero(t *testing.T) {
	articles := []messages.Article{
		{Title: "unscored"},
		{Title: "scored", Sentiment: &messages.SentimentScores{Compound: 0.3}},
	}
	// Mean over both is 0.15, still positive.
	assert.Equal(t, messages.SentimentPositive, OverallSentiment(articles))
}

func TestAnalyzer_ScoreIsDeterministic(t *testing.T) {
	a := NewAnalyzer()
	first := a.Score("This company is excellent, a great success story.")
	second := a.Score("This company is excellent, a great success story.")
	assert.Equal(t, first, second)
	assert.Greater(t, first.Compound, 0.0)
}

func TestAnalyzer_ScoreArticles(t *testing.T) {
	a := NewAnalyzer()
	articles := []messages.Article{
		{Title: "Company wins a wonderful award", Description: "A fantastic achievement"},
		{Title: "Company faces a terrible lawsuit", Description: "An awful scandal"},
	}
	a.ScoreArticles(articles)

	for _, article := range articles {
		assert.NotNil(t, article.Sentiment)
	}
	assert.Greater(t, articles[0].Sentiment.Compound, 0.0)
	assert.Less(t, articles[1].Sentiment.Compound, 0.0)
}

func TestArticleLabel(t *testing.T) {
	assert.Equal(t, messages.SentimentPositive, articleLabel(scored(0.5)[0]))
	assert.Equal(t, messages.SentimentNegative, articleLabel(scored(-0.5)[0]))
	assert.Equal(t, messages.SentimentNeutral, articleLabel(scored(0)[0]))
	assert.Equal(t, messages.SentimentNeutral, articleLabel(messages.Article{}))
}
