package redact

import (
	"context"
	"regexp"
)

// placeholderPattern matches tokens emitted by a previous redaction pass.
// Locking them first keeps Redact idempotent: placeholders are never
// themselves flagged as PII.
var placeholderPattern = regexp.MustCompile(`\[(EMAIL|PHONE|ID|ADDRESS|POSTAL|URL|GENDER|PERSON|ORG|LOCATION)\]`)

type placeholderLock struct{}

func (placeholderLock) Name() string { return "placeholder-lock" }

func (placeholderLock) Detect(_ context.Context, text string, _ []Span) ([]Span, error) {
	var spans []Span
	for _, m := range placeholderPattern.FindAllStringSubmatchIndex(text, -1) {
		spans = append(spans, Span{Start: m[0], End: m[1], Category: text[m[2]:m[3]]})
	}
	return spans, nil
}

// patternDetector is a deterministic regular-expression detector. These run
// before the statistical NER detector so exact-pattern PII is always caught
// even when the model misses it.
type patternDetector struct {
	name     string
	category string
	re       *regexp.Regexp
}

func (d *patternDetector) Name() string { return d.name }

func (d *patternDetector) Detect(_ context.Context, text string, _ []Span) ([]Span, error) {
	var spans []Span
	for _, m := range d.re.FindAllStringIndex(text, -1) {
		spans = append(spans, Span{Start: m[0], End: m[1], Category: d.category})
	}
	return spans, nil
}

var (
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)

	phonePattern = regexp.MustCompile(`(?:\+?\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}\b`)

	ssnPattern = regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`)

	addressPattern = regexp.MustCompile(`(?i)\b\d+\s+\w+(?:\s\w+)?\s+(?:street|st|avenue|ave|road|rd|boulevard|blvd|lane|ln|drive|dr)\b\.?`)

	postalPattern = regexp.MustCompile(`\b\d{5}(?:-\d{4})?\b`)

	urlPattern = regexp.MustCompile(`(?i)(?:https?://|www\.)\S+|\b(?:linkedin\.com|github\.com)/\S+`)

	// Pronouns, honorifics and other gender markers, from the original
	// anonymization word list.
	genderPattern = regexp.MustCompile(`(?i)\b(?:he|him|his|himself|she|her|hers|herself|mr|mrs|ms|miss|male|female|man|woman|gentleman|lady)\b\.?`)
)

// patternDetectors returns the deterministic detector chain in priority
// order. Phone runs before postal so a 10-digit number is not half-claimed
// as a ZIP code.
func patternDetectors() []Detector {
	return []Detector{
		&patternDetector{name: "email", category: CategoryEmail, re: emailPattern},
		&patternDetector{name: "ssn", category: CategoryID, re: ssnPattern},
		&patternDetector{name: "phone", category: CategoryPhone, re: phonePattern},
		&patternDetector{name: "address", category: CategoryAddress, re: addressPattern},
		&patternDetector{name: "postal", category: CategoryPostal, re: postalPattern},
		&patternDetector{name: "url", category: CategoryURL, re: urlPattern},
		&patternDetector{name: "gender", category: CategoryGender, re: genderPattern},
	}
}
