// ABOUTME: Sentence segmentation and word-offset translation for TTS
// ABOUTME: Greedy terminal-punctuation split; abbreviations over-segment

package tts

import "strings"

// SplitSentences splits content greedily at each sentence terminator,
// keeping the terminator, trimming candidates, and dropping empties.
// Text with no terminal punctuation at all is one sentence.
// Abbreviations and decimals are split too; that limitation is part of
// the segmentation contract, not a bug to patch here.
func SplitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	for _, r := range text {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			if s := strings.TrimSpace(current.String()); s != "" {
				sentences = append(sentences, s)
			}
			current.Reset()
		}
	}

	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}

	return sentences
}

// sentenceWordCounts counts whitespace-delimited words per sentence,
// the same rule the tokenizer uses, so TTS progress maps onto the
// shared word-index storage shape.
func sentenceWordCounts(sentences []string) []int {
	counts := make([]int, len(sentences))
	for i, s := range sentences {
		counts[i] = len(strings.Fields(s))
	}
	return counts
}

// wordIndexForSentence is the word offset of a sentence start: the sum
// of the word counts of all prior sentences.
func wordIndexForSentence(counts []int, sentenceIndex int) int {
	total := 0
	for i := 0; i < sentenceIndex && i < len(counts); i++ {
		total += counts[i]
	}
	return total
}

// sentenceForWordIndex returns the first sentence whose cumulative
// word count exceeds the target word index.
func sentenceForWordIndex(counts []int, wordIndex int) int {
	cumulative := 0
	for i, c := range counts {
		cumulative += c
		if cumulative > wordIndex {
			return i
		}
	}
	if len(counts) == 0 {
		return 0
	}
	return len(counts) - 1
}
