package redact

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noahnghg/hackthebiasproject/internal/ner"
)

type stubRecognizer struct {
	entities []ner.Entity
	err      error
}

func (s *stubRecognizer) Recognize(_ context.Context, _ string) ([]ner.Entity, error) {
	return s.entities, s.err
}

func TestRedactContactLine(t *testing.T) {
	r := NewRedactor(&stubRecognizer{entities: []ner.Entity{
		{Text: "John Doe", Label: ner.LabelPerson},
	}})

	out, err := r.Redact(context.Background(), "Contact John Doe at john.doe@example.com")
	require.NoError(t, err)

	assert.Equal(t, "Contact [PERSON] at [EMAIL]", out)
	assert.NotContains(t, out, "John")
	assert.NotContains(t, out, "Doe")
	assert.False(t, emailPattern.MatchString(out))
}

func TestRedactIsIdempotent(t *testing.T) {
	r := NewRedactor(&stubRecognizer{entities: []ner.Entity{
		{Text: "Jane Smith", Label: ner.LabelPerson},
		{Text: "Acme Corp", Label: ner.LabelOrganization},
		{Text: "Berlin", Label: ner.LabelLocation},
	}})

	input := strings.Join([]string{
		"Jane Smith",
		"jane.smith@acme.test | +1 (555) 123-4567",
		"12 Main Street, Berlin 10115",
		"She led the platform team at Acme Corp.",
	}, "\n")

	once, err := r.Redact(context.Background(), input)
	require.NoError(t, err)
	twice, err := r.Redact(context.Background(), once)
	require.NoError(t, err)

	assert.Equal(t, once, twice)
	assert.Equal(t, 4, strings.Count(once, "\n")+1, "line structure must be preserved")
}

func TestRedactDeterministicPatterns(t *testing.T) {
	r := NewRedactorWithDetectors(patternDetectors()...)

	cases := map[string]string{
		"reach me at foo.bar@mail.example":  "[EMAIL]",
		"call 555-867-5309 anytime":         "[PHONE]",
		"ssn 123-45-6789 on file":           "[ID]",
		"lives at 42 Elm Street":            "[ADDRESS]",
		"profile: linkedin.com/in/somebody": "[URL]",
		"Mrs. Example said so":              "[GENDER]",
	}

	for input, placeholder := range cases {
		out, err := r.Redact(context.Background(), input)
		require.NoError(t, err)
		assert.Contains(t, out, placeholder, "input %q", input)
	}
}

func TestRedactLocksPatternsBeforeNER(t *testing.T) {
	// The model reporting the email as a "person" must not double-process
	// the span already locked by the email detector.
	r := NewRedactor(&stubRecognizer{entities: []ner.Entity{
		{Text: "john.doe@example.com", Label: ner.LabelPerson},
	}})

	out, err := r.Redact(context.Background(), "mail john.doe@example.com today")
	require.NoError(t, err)
	assert.Equal(t, "mail [EMAIL] today", out)
}

func TestRedactNERUnavailable(t *testing.T) {
	r := NewRedactor(&stubRecognizer{err: errors.New("model down")})

	_, err := r.Redact(context.Background(), "any text with a name in it")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestRedactEntityWordBoundaries(t *testing.T) {
	r := NewRedactor(&stubRecognizer{entities: []ner.Entity{
		{Text: "Ada", Label: ner.LabelPerson},
	}})

	out, err := r.Redact(context.Background(), "Ada wrote an Adapter for the platform")
	require.NoError(t, err)
	assert.Equal(t, "[PERSON] wrote an Adapter for the platform", out)
}

func TestRedactEntityBoundariesAreMultibyteAware(t *testing.T) {
	// "phine" directly follows the multibyte "é"; a byte-level neighbor
	// check would see a non-letter there and redact mid-word.
	r := NewRedactor(&stubRecognizer{entities: []ner.Entity{
		{Text: "phine", Label: ner.LabelPerson},
		{Text: "José", Label: ner.LabelPerson},
	}})

	out, err := r.Redact(context.Background(), "Joséphine interviewed José yesterday")
	require.NoError(t, err)
	assert.Equal(t, "Joséphine interviewed [PERSON] yesterday", out)
}

func TestRedactEmptyText(t *testing.T) {
	r := NewRedactor(&stubRecognizer{})

	out, err := r.Redact(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "", out)
}
