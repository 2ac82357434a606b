package question

import "strings"

// NormalizeAnswerText trims whitespace and lowercases an answer for matching.
func NormalizeAnswerText(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func normalizeStringSlice(values []string) []string {
	if values == nil {
		return nil
	}
	normalized := make([]string, 0, len(values))
	for _, value := range values {
		normalized = append(normalized, strings.TrimSpace(value))
	}
	return normalized
}
