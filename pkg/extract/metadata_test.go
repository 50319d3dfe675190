package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"webloader/pkg/models"
)

func TestMetadata_AllFields(t *testing.T) {
	rawHTML := `<html lang="en">
<head>
	<title>Example Docs</title>
	<meta name="description" content="A documentation site">
</head>
<body>content</body>
</html>`

	metadata := Metadata(rawHTML, "http://example.com/docs/")

	assert.Equal(t, map[string]string{
		models.MetaSource:      "http://example.com/docs/",
		models.MetaTitle:       "Example Docs",
		models.MetaDescription: "A documentation site",
		models.MetaLanguage:    "en",
	}, metadata)
}

func TestMetadata_SourceAlwaysPresent(t *testing.T) {
	tests := []struct {
		name    string
		rawHTML string
	}{
		{"empty markup", ""},
		{"no head", `<html><body>text</body></html>`},
		{"not markup at all", "just some text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metadata := Metadata(tt.rawHTML, "http://example.com/")
			assert.Equal(t, "http://example.com/", metadata[models.MetaSource])
		})
	}
}

func TestMetadata_MissingFieldsAbsent(t *testing.T) {
	metadata := Metadata(`<html><body>no head here</body></html>`, "http://example.com/")

	assert.NotContains(t, metadata, models.MetaTitle)
	assert.NotContains(t, metadata, models.MetaDescription)
	assert.NotContains(t, metadata, models.MetaLanguage)
}

func TestMetadata_DescriptionWithoutContentAttr(t *testing.T) {
	rawHTML := `<html><head><meta name="description"></head><body></body></html>`
	metadata := Metadata(rawHTML, "http://example.com/")

	assert.NotContains(t, metadata, models.MetaDescription,
		"description meta without content attribute must not produce a key")
}

func TestMetadata_FirstTitleWins(t *testing.T) {
	rawHTML := `<html><head><title>First</title><title>Second</title></head><body></body></html>`
	metadata := Metadata(rawHTML, "http://example.com/")

	assert.Equal(t, "First", metadata[models.MetaTitle])
}

func TestMetadata_Idempotent(t *testing.T) {
	rawHTML := `<html lang="de"><head><title>T</title></head><body></body></html>`
	first := Metadata(rawHTML, "http://example.com/")
	second := Metadata(rawHTML, "http://example.com/")

	assert.Equal(t, first, second)
}
