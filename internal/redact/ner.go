package redact

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/noahnghg/hackthebiasproject/internal/ner"
)

// EntityRecognizer is the capability the statistical detector needs from the
// external NER model. internal/ner.Service satisfies it; tests inject stubs.
type EntityRecognizer interface {
	Recognize(ctx context.Context, text string) ([]ner.Entity, error)
}

// nerDetector locates every occurrence of the entities the model reports.
// It runs last: occurrences inside spans locked by the deterministic
// detectors are skipped, never rescanned.
type nerDetector struct {
	recognizer EntityRecognizer
}

func (d *nerDetector) Name() string { return "ner" }

func (d *nerDetector) Detect(ctx context.Context, text string, locked []Span) ([]Span, error) {
	entities, err := d.recognizer.Recognize(ctx, text)
	if err != nil {
		return nil, err
	}

	lower := strings.ToLower(text)

	var spans []Span
	for _, entity := range entities {
		category := labelCategory(entity.Label)
		if category == "" {
			continue
		}

		needle := strings.ToLower(entity.Text)
		for from := 0; ; {
			i := strings.Index(lower[from:], needle)
			if i < 0 {
				break
			}
			start := from + i
			end := start + len(needle)
			from = end

			if !wordBounded(text, start, end) {
				continue
			}
			span := Span{Start: start, End: end, Category: category}
			if overlapsAny(span, locked) || overlapsAny(span, spans) {
				continue
			}
			spans = append(spans, span)
		}
	}
	return spans, nil
}

func labelCategory(label string) string {
	switch label {
	case ner.LabelPerson:
		return CategoryPerson
	case ner.LabelOrganization:
		return CategoryOrg
	case ner.LabelLocation:
		return CategoryLocation
	}
	return ""
}

// wordBounded rejects matches embedded in a larger word, e.g. an entity
// "Ada" inside "Adapter". Neighbors are decoded as runes so a multibyte
// letter such as "é" still counts as part of the word.
func wordBounded(text string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:start])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	if end < len(text) {
		r, _ := utf8.DecodeRuneInString(text[end:])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
