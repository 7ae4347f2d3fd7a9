// ABOUTME: Text collection and cleaning shared by all extraction strategies
// ABOUTME: Also holds the substantiality gate and title extraction rules

package extractor

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

const (
	// untitledFallback is used when neither <title> nor <h1> yields text
	untitledFallback = "Untitled Article"

	// minContentChars and minContentWords form the substantiality gate
	// applied to every strategy's output
	minContentChars = 100
	minContentWords = 20
)

// titleSeparators are the characters that commonly split
// "Article Title | Site Name" patterns.
const titleSeparators = "|—–-"

var (
	spaceRuns   = regexp.MustCompile(`[ \t]+`)
	newlineRuns = regexp.MustCompile(`\n{3,}`)
)

// extractTitle prefers the <title> element truncated at the first
// separator, then the first <h1>, then a fixed fallback.
func extractTitle(doc *goquery.Document) string {
	if title := truncateTitle(doc.Find("title").First().Text()); title != "" {
		return title
	}
	if h1 := strings.TrimSpace(doc.Find("h1").First().Text()); h1 != "" {
		return h1
	}
	return untitledFallback
}

// truncateTitle cuts at the first separator character and trims.
func truncateTitle(title string) string {
	if idx := strings.IndexAny(title, titleSeparators); idx >= 0 {
		title = title[:idx]
	}
	return strings.TrimSpace(title)
}

// extractTextFromSelection collects paragraph and heading descendants
// in document order. Elements with no such descendants fall back to
// their full visible text.
func extractTextFromSelection(sel *goquery.Selection) string {
	blocks := sel.Find("p, h1, h2, h3, h4, h5, h6")
	if blocks.Length() == 0 {
		return cleanText(sel.Text())
	}

	var parts []string
	blocks.Each(func(_ int, block *goquery.Selection) {
		if text := cleanText(block.Text()); text != "" {
			parts = append(parts, text)
		}
	})
	return strings.Join(parts, "\n\n")
}

// cleanText collapses space runs, caps consecutive newlines at two,
// and trims every line plus the whole result.
func cleanText(text string) string {
	text = spaceRuns.ReplaceAllString(text, " ")
	text = newlineRuns.ReplaceAllString(text, "\n\n")

	lines := strings.Split(text, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// isSubstantial gates extracted text at every pipeline stage. Length
// is counted in runes so non-ASCII pages face the same bar.
func isSubstantial(text string) bool {
	return utf8.RuneCountInString(text) >= minContentChars && len(strings.Fields(text)) >= minContentWords
}
