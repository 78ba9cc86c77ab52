// Package document turns uploaded resume bytes into ordered plain text.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"code.sajari.com/docconv"
)

var (
	// ErrUnsupportedFormat is returned when the declared media type is not a
	// recognized document type.
	ErrUnsupportedFormat = errors.New("document: unsupported format")

	// ErrExtraction is returned when the document is corrupt or contains no
	// extractable text (e.g. a scanned-image-only PDF).
	ErrExtraction = errors.New("document: extraction failed")
)

// ExtractedText is the ordered plain-text view of one document. It is
// immutable once produced; Lines preserve reading order across pages.
type ExtractedText struct {
	Lines []string
	Pages int
}

// Text joins the extracted lines back into a single newline-separated string.
func (e *ExtractedText) Text() string {
	return strings.Join(e.Lines, "\n")
}

// Extractor converts raw document bytes into ExtractedText. It holds no
// state and is safe for concurrent use.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract converts the document into ordered text lines. The declared media
// type decides the conversion path; pdftotext page breaks (form feeds) are
// used to count pages so none are silently dropped.
func (x *Extractor) Extract(data []byte, mediaType string) (*ExtractedText, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrExtraction)
	}

	var body string

	switch normalizeMediaType(mediaType) {
	case "application/pdf":
		res, err := docconv.Convert(bytes.NewReader(data), "application/pdf", true)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
		}
		body = res.Body
	case "text/plain":
		if !utf8.Valid(data) {
			return nil, fmt.Errorf("%w: not valid UTF-8 text", ErrExtraction)
		}
		body = string(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, mediaType)
	}

	extracted := splitBody(body)
	if len(extracted.Lines) == 0 {
		return nil, fmt.Errorf("%w: no extractable text", ErrExtraction)
	}
	return extracted, nil
}

// splitBody splits converted text into trimmed lines, counting form-feed
// page separators.
func splitBody(body string) *ExtractedText {
	pages := strings.Split(body, "\f")

	out := &ExtractedText{}
	for _, page := range pages {
		pageHasText := false
		for _, line := range strings.Split(page, "\n") {
			line = strings.TrimRight(line, " \t\r")
			if strings.TrimSpace(line) == "" {
				continue
			}
			out.Lines = append(out.Lines, line)
			pageHasText = true
		}
		if pageHasText {
			out.Pages++
		}
	}
	return out
}

// normalizeMediaType strips parameters such as "; charset=utf-8" and
// lower-cases the type.
func normalizeMediaType(mediaType string) string {
	if i := strings.Index(mediaType, ";"); i >= 0 {
		mediaType = mediaType[:i]
	}
	return strings.ToLower(strings.TrimSpace(mediaType))
}
