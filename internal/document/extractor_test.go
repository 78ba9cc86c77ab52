package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPlainText(t *testing.T) {
	x := NewExtractor()

	text, err := x.Extract([]byte("John Doe\n\nSkills: Go, SQL\n"), "text/plain")
	require.NoError(t, err)

	assert.Equal(t, []string{"John Doe", "Skills: Go, SQL"}, text.Lines)
	assert.Equal(t, 1, text.Pages)
	assert.Equal(t, "John Doe\nSkills: Go, SQL", text.Text())
}

func TestExtractMediaTypeParameters(t *testing.T) {
	x := NewExtractor()

	text, err := x.Extract([]byte("hello"), "text/plain; charset=utf-8")
	require.NoError(t, err)
	assert.Equal(t, []string{"hello"}, text.Lines)
}

func TestExtractUnsupportedFormat(t *testing.T) {
	x := NewExtractor()

	_, err := x.Extract([]byte("<html></html>"), "text/html")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = x.Extract([]byte{0x50, 0x4b}, "application/zip")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestExtractEmptyDocument(t *testing.T) {
	x := NewExtractor()

	_, err := x.Extract(nil, "application/pdf")
	assert.ErrorIs(t, err, ErrExtraction)

	// Whitespace-only text has no extractable content.
	_, err = x.Extract([]byte("  \n\t\n"), "text/plain")
	assert.ErrorIs(t, err, ErrExtraction)
}

func TestExtractCorruptPDF(t *testing.T) {
	x := NewExtractor()

	_, err := x.Extract([]byte("not really a pdf"), "application/pdf")
	assert.ErrorIs(t, err, ErrExtraction)
}

func TestSplitBodyCountsPages(t *testing.T) {
	got := splitBody("page one line\nsecond line\fpage two line\f\f")

	assert.Equal(t, 2, got.Pages)
	assert.Equal(t, []string{"page one line", "second line", "page two line"}, got.Lines)
}
