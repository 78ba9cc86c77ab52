// Package ner provides named-entity recognition backed by an external model.
package ner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	pkghttp "github.com/noahnghg/hackthebiasproject/pkg/http"
)

type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderGroq   Provider = "groq"
	ProviderNone   Provider = "none"
)

// Entity labels, mirroring the usual NER tag set.
const (
	LabelPerson       = "person"
	LabelOrganization = "organization"
	LabelLocation     = "location"
)

// ErrNotConfigured is returned when no NER provider is configured.
var ErrNotConfigured = errors.New("ner: provider not configured")

// Entity is a single recognized span. The model returns entity surface text;
// callers locate occurrences themselves.
type Entity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// Service calls an external model for entity recognition. It is initialized
// once at startup and is safe for concurrent use.
type Service struct {
	provider Provider
	apiKey   string
	model    string
	client   *pkghttp.Client
}

func NewService(provider, apiKey, model string) *Service {
	return &Service{
		provider: Provider(provider),
		apiKey:   apiKey,
		model:    model,
		client:   pkghttp.NewClient(60 * time.Second),
	}
}

// Recognize returns the person, organization and location entities found in
// the text. Any transport or model failure is surfaced to the caller; there
// are no retries here.
func (s *Service) Recognize(ctx context.Context, text string) ([]Entity, error) {
	var endpoint string
	switch s.provider {
	case ProviderOpenAI:
		endpoint = "https://api.openai.com/v1/chat/completions"
	case ProviderGroq:
		endpoint = "https://api.groq.com/openai/v1/chat/completions"
	case ProviderNone, "":
		return nil, ErrNotConfigured
	default:
		return nil, fmt.Errorf("ner: unknown provider: %s", s.provider)
	}

	payload := map[string]interface{}{
		"model": s.model,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": text},
		},
		"temperature":     0,
		"response_format": map[string]string{"type": "json_object"},
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	if err := s.client.PostJSON(ctx, endpoint, s.apiKey, payload, &result); err != nil {
		return nil, fmt.Errorf("ner: request failed: %w", err)
	}
	if len(result.Choices) == 0 {
		return nil, fmt.Errorf("ner: empty model response")
	}

	var parsed struct {
		Entities []Entity `json:"entities"`
	}
	if err := json.Unmarshal([]byte(result.Choices[0].Message.Content), &parsed); err != nil {
		return nil, fmt.Errorf("ner: failed to parse model response: %w", err)
	}

	return normalizeEntities(parsed.Entities), nil
}

// normalizeEntities drops empty or unlabeled results and lower-cases labels
// so the redactor can map them without guessing at the model's casing.
func normalizeEntities(entities []Entity) []Entity {
	out := make([]Entity, 0, len(entities))
	for _, e := range entities {
		e.Text = strings.TrimSpace(e.Text)
		e.Label = strings.ToLower(strings.TrimSpace(e.Label))
		if e.Text == "" {
			continue
		}
		switch e.Label {
		case LabelPerson, LabelOrganization, LabelLocation:
			out = append(out, e)
		}
	}
	return out
}

const systemPrompt = `You are a named-entity recognizer. Extract every person name, organization name and location mentioned in the user's text.

Return ONLY valid JSON with this exact structure:
{"entities": [{"text": "exact surface text", "label": "person|organization|location"}]}

Rules:
- "text" must be the exact substring as it appears in the input.
- Do not include job titles, skills or dates.
- Return {"entities": []} if nothing is found.`
