package tokenizer

import (
	"testing"
)

func TestTokenize_EmptyText(t *testing.T) {
	result := Tokenize("")

	if len(result.Words) != 0 {
		t.Errorf("Tokenize(\"\") returned %d words, want 0", len(result.Words))
	}
	if len(result.Paragraphs) != 0 {
		t.Errorf("Tokenize(\"\") returned %d paragraphs, want 0", len(result.Paragraphs))
	}
	if result.Words == nil || result.Paragraphs == nil {
		t.Error("Tokenize should return empty slices, not nil")
	}
}

func TestTokenize_ParagraphMapping(t *testing.T) {
	result := Tokenize("Hello world\n\nSecond line")

	wantParagraphs := []string{"Hello world", "Second line"}
	if len(result.Paragraphs) != len(wantParagraphs) {
		t.Fatalf("Tokenize returned %d paragraphs, want %d", len(result.Paragraphs), len(wantParagraphs))
	}
	for i, p := range wantParagraphs {
		if result.Paragraphs[i] != p {
			t.Errorf("Paragraphs[%d] = %q, want %q", i, result.Paragraphs[i], p)
		}
	}

	wantWords := []string{"Hello", "world", "Second", "line"}
	if len(result.Words) != len(wantWords) {
		t.Fatalf("Tokenize returned %d words, want %d", len(result.Words), len(wantWords))
	}
	for i, w := range wantWords {
		if result.Words[i] != w {
			t.Errorf("Words[%d] = %q, want %q", i, result.Words[i], w)
		}
	}

	wantIndices := []int{0, 0, 1, 1}
	for i, idx := range wantIndices {
		if result.ParagraphIndices[i] != idx {
			t.Errorf("ParagraphIndices[%d] = %d, want %d", i, result.ParagraphIndices[i], idx)
		}
	}
}

func TestTokenize_IndicesParallelToWords(t *testing.T) {
	texts := []string{
		"one",
		"a b c\nd e",
		"  spaced   out  \n\n\n  lines  ",
		"tab\tseparated words\nhere",
	}

	for _, text := range texts {
		result := Tokenize(text)
		if len(result.ParagraphIndices) != len(result.Words) {
			t.Errorf("Tokenize(%q): %d indices for %d words", text, len(result.ParagraphIndices), len(result.Words))
		}
		for i, idx := range result.ParagraphIndices {
			if idx < 0 || idx >= len(result.Paragraphs) {
				t.Errorf("Tokenize(%q): ParagraphIndices[%d] = %d out of range", text, i, idx)
			}
		}
	}
}

func TestSplitWord_Reassembles(t *testing.T) {
	words := []string{"a", "ab", "abc", "reading", "extraordinary", "naïve", "日本語のテスト"}

	for _, word := range words {
		split := SplitWord(word)
		if split.LeftPart+split.FocusLetter+split.RightPart != word {
			t.Errorf("SplitWord(%q) = %q+%q+%q, does not reassemble", word, split.LeftPart, split.FocusLetter, split.RightPart)
		}
		if len([]rune(split.FocusLetter)) != 1 {
			t.Errorf("SplitWord(%q) focus letter %q is not a single character", word, split.FocusLetter)
		}
	}
}

func TestSplitWord_FocusAtMidpoint(t *testing.T) {
	testCases := []struct {
		word  string
		left  string
		focus string
		right string
	}{
		{"a", "", "a", ""},
		{"ab", "a", "b", ""},
		{"abc", "a", "b", "c"},
		{"word", "wo", "r", "d"},
		{"hello", "he", "l", "lo"},
	}

	for _, tc := range testCases {
		split := SplitWord(tc.word)
		if split.LeftPart != tc.left || split.FocusLetter != tc.focus || split.RightPart != tc.right {
			t.Errorf("SplitWord(%q) = {%q %q %q}, want {%q %q %q}",
				tc.word, split.LeftPart, split.FocusLetter, split.RightPart, tc.left, tc.focus, tc.right)
		}
	}
}

func TestSplitWord_EmptyWord(t *testing.T) {
	split := SplitWord("")

	if split.LeftPart != "" || split.FocusLetter != "" || split.RightPart != "" {
		t.Errorf("SplitWord(\"\") = %+v, want all empty fields", split)
	}
}

func TestDelayMs(t *testing.T) {
	if got := DelayMs(300); got != 200 {
		t.Errorf("DelayMs(300) = %v, want 200", got)
	}
	if got := DelayMs(600); got != 100 {
		t.Errorf("DelayMs(600) = %v, want 100", got)
	}
}

func TestDelayMultiplier(t *testing.T) {
	testCases := []struct {
		word string
		want float64
	}{
		{"end.", 1.5},
		{"done!", 1.5},
		{"really?", 1.5},
		{"pause,", 1.2},
		{"list:", 1.2},
		{"also;", 1.2},
		{"word", 1.0},
		{"", 1.0},
	}

	for _, tc := range testCases {
		if got := DelayMultiplier(tc.word); got != tc.want {
			t.Errorf("DelayMultiplier(%q) = %v, want %v", tc.word, got, tc.want)
		}
	}
}
