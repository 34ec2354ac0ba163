package news

import (
	"github.com/jonreiter/govader"

	"company-intel-agents/internal/messages"
)

// Sentiment thresholds on the mean compound score.
const (
	positiveThreshold = 0.05
	negativeThreshold = -0.05
)

// Analyzer scores article text with a lexicon-based model. Scoring is
// deterministic: the same text always yields the same scores.
type Analyzer struct {
	vader *govader.SentimentIntensityAnalyzer
}

func NewAnalyzer() *Analyzer {
	return &Analyzer{vader: govader.NewSentimentIntensityAnalyzer()}
}

// Score computes the four-value sentiment breakdown for one text.
func (a *Analyzer) Score(text string) messages.SentimentScores {
	s := a.vader.PolarityScores(text)
	return messages.SentimentScores{
		Negative: s.Negative,
		Neutral:  s.Neutral,
		Positive: s.Positive,
		Compound: s.Compound,
	}
}

// ScoreArticles attaches a sentiment breakdown to every article,
// scoring title and description together.
func (a *Analyzer) ScoreArticles(articles []messages.Article) {
	for i := range articles {
		scores := a.Score(articles[i].Title + ". " + articles[i].Description)
		articles[i].Sentiment = &scores
	}
}

// OverallSentiment labels a set of scored articles by the mean compound
// score. An empty set is Neutral.
func OverallSentiment(articles []messages.Article) string {
	if len(articles) == 0 {
		return messages.SentimentNeutral
	}

	var sum float64
	for _, a := range articles {
		if a.Sentiment != nil {
			sum += a.Sentiment.Compound
		}
	}
	mean := sum / float64(len(articles))

	switch {
	case mean >= positiveThreshold:
		return messages.SentimentPositive
	case mean <= negativeThreshold:
		return messages.SentimentNegative
	default:
		return messages.SentimentNeutral
	}
}

// articleLabel names one article's sentiment for prompt text.
func articleLabel(a messages.Article) string {
	if a.Sentiment == nil {
		return messages.SentimentNeutral
	}
	switch {
	case a.Sentiment.Compound >= positiveThreshold:
		return messages.SentimentPositive
	case a.Sentiment.Compound <= negativeThreshold:
		return messages.SentimentNegative
	default:
		return messages.SentimentNeutral
	}
}
