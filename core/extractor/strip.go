// ABOUTME: Boilerplate stripping mutates a working DOM before selection
// ABOUTME: Removes scripts, chrome, denylisted class/id regions, hidden nodes

package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// removeTags are elements that never contain article body text.
var removeTags = []string{
	"script", "style", "nav", "footer", "aside", "noscript", "iframe", "form",
}

// classDenylist marks regions as boilerplate when their class or id
// attribute contains one of these substrings.
var classDenylist = []string{
	"sidebar", "comment", "newsletter", "popup", "modal", "promo",
	"sponsor", "advert", "share", "related", "breadcrumb", "cookie",
}

// stripBoilerplate removes non-content elements in place.
func stripBoilerplate(doc *goquery.Document) {
	doc.Find(strings.Join(removeTags, ", ")).Remove()

	doc.Find("[class], [id]").Each(func(_ int, sel *goquery.Selection) {
		class, _ := sel.Attr("class")
		id, _ := sel.Attr("id")
		attr := strings.ToLower(class + " " + id)
		for _, deny := range classDenylist {
			if strings.Contains(attr, deny) {
				sel.Remove()
				return
			}
		}
	})

	doc.Find("[hidden], [aria-hidden='true']").Remove()
	doc.Find("[style]").Each(func(_ int, sel *goquery.Selection) {
		style, _ := sel.Attr("style")
		if strings.Contains(strings.ReplaceAll(strings.ToLower(style), " ", ""), "display:none") {
			sel.Remove()
		}
	})
}
