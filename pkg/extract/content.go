package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// Content extracts the normalized visible text of a page: every text node
// under <body> in document order, excluding script subtrees, joined with
// single spaces and with all whitespace runs collapsed. Total function over
// markup; a page without body text yields "".
func Content(rawHTML string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return ""
	}

	var fragments []string
	for _, body := range doc.Find("body").Nodes {
		collectTextSkippingScripts(body, &fragments)
	}

	joined := strings.Join(fragments, " ")
	cleaned := strings.NewReplacer("\n", " ", "\t", " ").Replace(joined)
	return whitespaceRe.ReplaceAllString(cleaned, " ")
}

// collectTextSkippingScripts appends the data of every text node under n in
// document order. Script elements are not descended into, so their text
// never reaches the output.
func collectTextSkippingScripts(n *html.Node, fragments *[]string) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.ElementNode:
			if c.Data == "script" {
				continue
			}
			collectTextSkippingScripts(c, fragments)
		case html.TextNode:
			*fragments = append(*fragments, c.Data)
		}
	}
}
