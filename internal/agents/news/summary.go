package news

import (
	"fmt"
	"strings"

	"company-intel-agents/internal/messages"
)

// promptArticleLimit bounds how many articles feed the summary prompt.
const promptArticleLimit = 10

func buildSummaryPrompt(companyName string, articles []messages.Article) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Summarize the following recent news about %s in 2-3 sentences.\n", companyName)
	b.WriteString("Focus on the most significant developments and the overall tone.\n\nArticles:\n")

	limit := len(articles)
	if limit > promptArticleLimit {
		limit = promptArticleLimit
	}
	for i := 0; i < limit; i++ {
		a := articles[i]
		fmt.Fprintf(&b, "%d. [%s] %s (%s): %s\n", i+1, articleLabel(a), a.Title, a.Source, a.Description)
	}
	return b.String()
}

// fallbackSummary stitches a summary from headlines when no model is
// available or the model produced no text.
func fallbackSummary(companyName string, articles []messages.Article, overall string) string {
	if len(articles) == 0 {
		return fmt.Sprintf("No recent news found for %s.", companyName)
	}

	limit := len(articles)
	if limit > 3 {
		limit = 3
	}
	titles := make([]string, 0, limit)
	for i := 0; i < limit; i++ {
		titles = append(titles, articles[i].Title)
	}
	return fmt.Sprintf("Recent news about %s includes: %s. Overall sentiment is %s.",
		companyName, strings.Join(titles, "; "), strings.ToLower(overall))
}

// exceptionSummary is the terse last resort when the model call itself
// fails.
func exceptionSummary(overall string) string {
	return fmt.Sprintf("Found multiple articles with an overall %s sentiment.", strings.ToLower(overall))
}
