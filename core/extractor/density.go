// ABOUTME: Text-density scoring selects the most article-like container
// ABOUTME: Rewards long, paragraph-rich, link-sparse regions of the DOM

package extractor

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// candidateSelector is the broad structural net the scorer casts.
const candidateSelector = "article, main, section, div"

// containerSelectors is the fixed fallback chain tried, in order, when
// density scoring finds nothing substantial.
var containerSelectors = []string{
	"article",
	"main",
	"[role='main']",
	"#content",
	"#main-content",
	".post-content",
	".entry-content",
	".article-content",
	".article-body",
	".story-body",
	".post-body",
	".main-content",
}

// selectByDensity scores every structural candidate and returns the
// extracted text of the best-scoring element that passes the
// substantiality gate, along with the element itself.
func selectByDensity(doc *goquery.Document) (string, *goquery.Selection) {
	bestScore := math.Inf(-1)
	var bestText string
	var bestSel *goquery.Selection

	doc.Find(candidateSelector).Each(func(_ int, sel *goquery.Selection) {
		score, text, ok := scoreCandidate(sel)
		if !ok {
			return
		}
		if score > bestScore {
			bestScore = score
			bestText = text
			bestSel = sel
		}
	})

	return bestText, bestSel
}

// scoreCandidate computes ln(textLength) + 10*paragraphCount -
// 50*linkDensity for one element. A malformed element produces no
// candidate rather than aborting the whole scan.
func scoreCandidate(sel *goquery.Selection) (score float64, text string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
		}
	}()

	// Rune counts, so multi-byte text scores the same as ASCII.
	textLength := utf8.RuneCountInString(sel.Text())

	linkDensity := 1.0
	if textLength > 0 {
		linkLength := 0
		sel.Find("a").Each(func(_ int, a *goquery.Selection) {
			linkLength += utf8.RuneCountInString(a.Text())
		})
		linkDensity = float64(linkLength) / float64(textLength)
	}

	paragraphCount := sel.Find("p, h1, h2, h3, h4, h5, h6").Length()

	if textLength == 0 {
		return 0, "", false
	}

	score = math.Log(float64(textLength)) + 10*float64(paragraphCount) - 50*linkDensity

	text = extractTextFromSelection(sel)
	if !isSubstantial(text) {
		return 0, "", false
	}

	return score, text, true
}

// selectByContainers walks the fixed selector chain and returns the
// first substantial match.
func selectByContainers(doc *goquery.Document) (string, *goquery.Selection) {
	for _, selector := range containerSelectors {
		var found string
		var foundSel *goquery.Selection
		doc.Find(selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			text := extractTextFromSelection(sel)
			if isSubstantial(text) {
				found = text
				foundSel = sel
				return false
			}
			return true
		})
		if found != "" {
			return found, foundSel
		}
	}
	return "", nil
}

// extractMetaContent is the last resort for JS-rendered shells with no
// server-rendered body: concatenate title and description meta values.
func extractMetaContent(doc *goquery.Document) string {
	title := firstMetaContent(doc,
		"meta[property='og:title']",
		"meta[name='twitter:title']",
	)
	description := firstMetaContent(doc,
		"meta[property='og:description']",
		"meta[name='twitter:description']",
		"meta[name='description']",
	)

	var parts []string
	if title != "" {
		parts = append(parts, title)
	}
	if description != "" {
		parts = append(parts, description)
	}

	content := cleanText(strings.Join(parts, "\n\n"))
	if !isSubstantial(content) {
		return ""
	}
	return content
}

func firstMetaContent(doc *goquery.Document, selectors ...string) string {
	for _, selector := range selectors {
		if content, ok := doc.Find(selector).First().Attr("content"); ok {
			if trimmed := strings.TrimSpace(content); trimmed != "" {
				return trimmed
			}
		}
	}
	return ""
}
