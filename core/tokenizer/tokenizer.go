// ABOUTME: Tokenizer splits article text into words and paragraphs for pacing
// ABOUTME: Pure and deterministic; also computes per-word RSVP pacing data

package tokenizer

import (
	"strings"

	"pacereader-api/core/domain"
)

// Tokenize splits text into words with paragraph mappings. Every
// non-blank source line is its own paragraph; blank lines produce no
// paragraph entry and blank-line-separated paragraphs are not merged.
func Tokenize(text string) domain.TokenizedText {
	result := domain.TokenizedText{
		Words:            []string{},
		ParagraphIndices: []int{},
		Paragraphs:       []string{},
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		paragraphIndex := len(result.Paragraphs)
		result.Paragraphs = append(result.Paragraphs, trimmed)

		for _, word := range strings.Fields(trimmed) {
			result.Words = append(result.Words, word)
			result.ParagraphIndices = append(result.ParagraphIndices, paragraphIndex)
		}
	}

	return result
}

// SplitWord decomposes a word around its optimal recognition point,
// the midpoint character. Counting is rune-based, not byte-based, so
// multi-byte characters split cleanly.
func SplitWord(word string) domain.RSVPWord {
	runes := []rune(word)
	if len(runes) == 0 {
		return domain.RSVPWord{}
	}

	focus := len(runes) / 2
	return domain.RSVPWord{
		LeftPart:    string(runes[:focus]),
		FocusLetter: string(runes[focus]),
		RightPart:   string(runes[focus+1:]),
	}
}

// DelayMs returns the base per-word display time in milliseconds for a
// words-per-minute pace.
func DelayMs(wpm int) float64 {
	return 60000 / float64(wpm)
}

// DelayMultiplier lengthens display time for words that end a clause
// or sentence. Readability pacing, not raw WPM.
func DelayMultiplier(word string) float64 {
	runes := []rune(word)
	if len(runes) == 0 {
		return 1.0
	}

	switch runes[len(runes)-1] {
	case '.', '!', '?':
		return 1.5
	case ',', ':', ';':
		return 1.2
	}
	return 1.0
}
