package orchestrator

import "strings"

// legalSuffixes are trimmed from extracted company names before they
// fan out to the news and ticker branches. Stripping repeats until
// stable so sanitizing a sanitized name changes nothing.
var legalSuffixes = []string{
	"Inc", "LLC", "Ltd", "Corporation", "Corp", "Co", "Group",
}

// SanitizeCompanyName normalizes a model-extracted company name: quotes
// and brackets go, anything after the first comma goes, trailing legal
// suffixes go.
func SanitizeCompanyName(name string) string {
	cleaned := strings.TrimSpace(name)
	cleaned = strings.Map(func(r rune) rune {
		switch r {
		case '"', '\'', '{', '}', '[', ']':
			return -1
		}
		return r
	}, cleaned)

	if i := strings.IndexByte(cleaned, ','); i != -1 {
		cleaned = cleaned[:i]
	}
	cleaned = strings.TrimSpace(cleaned)

	for {
		cleaned = strings.TrimRight(cleaned, " .")
		next := stripLegalSuffix(cleaned)
		if next == cleaned {
			return cleaned
		}
		cleaned = next
	}
}

func stripLegalSuffix(name string) string {
	lower := strings.ToLower(name)
	for _, suffix := range legalSuffixes {
		ls := strings.ToLower(suffix)
		if !strings.HasSuffix(lower, ls) {
			continue
		}
		cut := len(name) - len(ls)
		if cut > 0 && name[cut-1] != ' ' && name[cut-1] != '.' {
			continue
		}
		trimmed := strings.TrimRight(name[:cut], " .")
		if trimmed != "" {
			return trimmed
		}
	}
	return name
}
