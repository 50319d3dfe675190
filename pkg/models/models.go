package models

// Metadata keys produced by the metadata extractor. Source is always present
// on a loaded document; the rest are set only when the markup carries them.
const (
	MetaSource      = "source"
	MetaTitle       = "title"
	MetaDescription = "description"
	MetaLanguage    = "language"
)

// Document is the value produced per successfully fetched page: normalized
// visible text plus a small metadata record. Immutable once returned.
type Document struct {
	PageContent string            `json:"page_content"`
	Metadata    map[string]string `json:"metadata"`
}

// Source returns the URL the document was loaded from.
func (d Document) Source() string {
	return d.Metadata[MetaSource]
}

// Title returns the page title and whether one was present in the markup.
func (d Document) Title() (string, bool) {
	t, ok := d.Metadata[MetaTitle]
	return t, ok
}
