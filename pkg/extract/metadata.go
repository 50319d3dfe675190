package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"webloader/pkg/models"
)

// Metadata builds the metadata record for a page. The source URL is always
// present; title, description and language are set only when the markup
// carries the corresponding element or attribute. Pure function of its
// inputs.
func Metadata(rawHTML, sourceURL string) map[string]string {
	metadata := map[string]string{models.MetaSource: sourceURL}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return metadata
	}

	if title := doc.Find("title").First(); title.Length() > 0 {
		if inner, htmlErr := title.Html(); htmlErr == nil {
			metadata[models.MetaTitle] = inner
		}
	}

	if desc := doc.Find(`meta[name="description"]`).First(); desc.Length() > 0 {
		if content, exists := desc.Attr("content"); exists {
			metadata[models.MetaDescription] = content
		}
	}

	if lang, exists := doc.Find("html").First().Attr("lang"); exists {
		metadata[models.MetaLanguage] = lang
	}

	return metadata
}
