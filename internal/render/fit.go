package render

import "strings"

// EstimateTokens gives a rough size for a piece of slide text.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}
	// Count words as a better proxy than pure character division.
	words := len(strings.Fields(text))
	tokens := int(float64(words) * 1.33)
	if tokens < 1 {
		tokens = 1
	}
	return tokens
}

// paginate spreads body items over as many slides as needed so each slide
// stays within budget tokens. Items that alone exceed the budget are split
// on sentence boundaries. Item order is preserved.
func paginate(items []string, budget int) [][]string {
	if budget <= 0 {
		return [][]string{items}
	}

	var pages [][]string
	var current []string
	currentTokens := 0

	flush := func() {
		if len(current) > 0 {
			pages = append(pages, current)
			current = nil
			currentTokens = 0
		}
	}

	for _, item := range items {
		itemTokens := EstimateTokens(item)

		if itemTokens > budget {
			flush()
			for _, part := range splitBySentences(item, budget) {
				pages = append(pages, []string{part})
			}
			continue
		}

		// Would adding this item exceed the budget?
		if currentTokens+itemTokens > budget && currentTokens > 0 {
			flush()
		}
		current = append(current, item)
		currentTokens += itemTokens
	}
	flush()

	return pages
}

// splitBySentences breaks a long paragraph into sentence-based parts.
func splitBySentences(text string, targetTokens int) []string {
	sentences := splitSentences(text)

	var result []string
	var current strings.Builder
	currentTokens := 0

	for _, sent := range sentences {
		sentTokens := EstimateTokens(sent)

		if currentTokens+sentTokens > targetTokens && currentTokens > 0 {
			result = append(result, current.String())
			current.Reset()
			currentTokens = 0
		}

		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(sent)
		currentTokens += sentTokens
	}

	if currentTokens > 0 {
		result = append(result, current.String())
	}

	return result
}

// splitSentences does basic sentence splitting. The Arabic question mark
// counts as a terminator.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	runes := []rune(text)
	for i, r := range runes {
		current.WriteRune(r)
		if (r == '.' || r == '!' || r == '?' || r == '؟') && i+1 < len(runes) && runes[i+1] == ' ' {
			sentences = append(sentences, strings.TrimSpace(current.String()))
			current.Reset()
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}

	return sentences
}

// truncate cuts s to at most n characters.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
