// Package redact removes identity-revealing and bias-correlated spans from
// extracted resume text, replacing them with category placeholders.
package redact

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnavailable is returned when a detector cannot run (for example the NER
// model is unreachable). Scoring must never proceed on un-redacted text, so
// this is a hard failure.
var ErrUnavailable = errors.New("redact: detector unavailable")

// Placeholder categories. Every replacement token has a fixed width per
// category so line lengths stay bounded for downstream line-based parsing.
const (
	CategoryEmail    = "EMAIL"
	CategoryPhone    = "PHONE"
	CategoryID       = "ID"
	CategoryAddress  = "ADDRESS"
	CategoryPostal   = "POSTAL"
	CategoryURL      = "URL"
	CategoryGender   = "GENDER"
	CategoryPerson   = "PERSON"
	CategoryOrg      = "ORG"
	CategoryLocation = "LOCATION"
)

// Placeholder returns the replacement token for a category.
func Placeholder(category string) string {
	return "[" + category + "]"
}

// Span marks a detected range [Start, End) in the scanned text.
type Span struct {
	Start    int
	End      int
	Category string
}

func (s Span) overlaps(o Span) bool {
	return s.Start < o.End && o.Start < s.End
}

// Detector finds spans to redact. Implementations receive the spans already
// locked by higher-priority detectors and must not report overlapping ones;
// the redactor drops any overlap regardless.
type Detector interface {
	Name() string
	Detect(ctx context.Context, text string, locked []Span) ([]Span, error)
}

// Redactor applies its detectors in a fixed priority order: existing
// placeholders are locked first (making redaction idempotent), then the
// deterministic pattern detectors, then the statistical NER detector. It is
// a pure function over the input text with no retry semantics.
type Redactor struct {
	detectors []Detector
}

// NewRedactor builds the default detector chain on top of the given entity
// recognizer.
func NewRedactor(recognizer EntityRecognizer) *Redactor {
	detectors := append([]Detector{placeholderLock{}}, patternDetectors()...)
	detectors = append(detectors, &nerDetector{recognizer: recognizer})
	return &Redactor{detectors: detectors}
}

// NewRedactorWithDetectors builds a redactor from an explicit chain. The
// placeholder lock is always prepended.
func NewRedactorWithDetectors(detectors ...Detector) *Redactor {
	return &Redactor{detectors: append([]Detector{placeholderLock{}}, detectors...)}
}

// Redact scans the text and replaces every detected span with its category
// placeholder. A failing detector aborts the whole call.
func (r *Redactor) Redact(ctx context.Context, text string) (string, error) {
	var locked []Span

	for _, d := range r.detectors {
		spans, err := d.Detect(ctx, text, locked)
		if err != nil {
			return "", fmt.Errorf("%w: %s: %v", ErrUnavailable, d.Name(), err)
		}
		for _, span := range spans {
			if span.Start < 0 || span.End > len(text) || span.Start >= span.End {
				continue
			}
			if overlapsAny(span, locked) {
				continue
			}
			locked = append(locked, span)
		}
	}

	return replace(text, locked), nil
}

func overlapsAny(span Span, locked []Span) bool {
	for _, l := range locked {
		if span.overlaps(l) {
			return true
		}
	}
	return false
}

// replace rewrites the text with placeholders, left to right.
func replace(text string, spans []Span) string {
	if len(spans) == 0 {
		return text
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].Start < spans[j].Start })

	var b strings.Builder
	b.Grow(len(text))
	prev := 0
	for _, s := range spans {
		b.WriteString(text[prev:s.Start])
		b.WriteString(Placeholder(s.Category))
		prev = s.End
	}
	b.WriteString(text[prev:])
	return b.String()
}
