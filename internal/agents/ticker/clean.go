package ticker

import "strings"

// suffixes stripped from company names before a symbol search. Matching
// is case-insensitive and repeats until no suffix remains, so chained
// forms like "Foo Co Ltd" reduce fully.
var suffixes = []string{
	"Inc", "Corp", "Corporation", "Company", "Co", "Ltd",
	".com", ".in", ".org",
}

// CleanName reduces a company name to its searchable core.
func CleanName(name string) string {
	cleaned := strings.TrimSpace(name)
	for {
		cleaned = strings.TrimRight(cleaned, " ,.")
		next := stripOneSuffix(cleaned)
		if next == cleaned {
			return cleaned
		}
		cleaned = next
	}
}

func stripOneSuffix(name string) string {
	lower := strings.ToLower(name)
	for _, suffix := range suffixes {
		ls := strings.ToLower(suffix)
		if !strings.HasSuffix(lower, ls) {
			continue
		}
		cut := len(name) - len(ls)
		// Word suffixes need a boundary so "Cisco" keeps its "co".
		if !strings.HasPrefix(ls, ".") && cut > 0 && !isBoundary(name[cut-1]) {
			continue
		}
		trimmed := strings.TrimRight(name[:cut], " .,")
		if trimmed != "" {
			return trimmed
		}
	}
	return name
}

func isBoundary(c byte) bool {
	return c == ' ' || c == '.' || c == ','
}
