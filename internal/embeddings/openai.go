package embeddings

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	pkghttp "github.com/noahnghg/hackthebiasproject/pkg/http"
)

// OpenAIProvider calls an OpenAI-compatible /embeddings endpoint. The whole
// batch goes out in one request; latency is bounded by the call, not by the
// number of texts.
type OpenAIProvider struct {
	model     string
	apiKey    string
	baseURL   string
	dimension int
	client    *pkghttp.Client
}

func NewOpenAIProvider(cfg Config) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: missing API key for openai provider", ErrInvalidConfig)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	model := cfg.Model
	if model == "" {
		model = "text-embedding-3-small"
	}

	return &OpenAIProvider{
		model:     model,
		apiKey:    cfg.APIKey,
		baseURL:   strings.TrimRight(baseURL, "/"),
		dimension: openAIModelDimension(model),
		client:    pkghttp.NewClient(30 * time.Second),
	}, nil
}

func openAIModelDimension(model string) int {
	switch model {
	case "text-embedding-3-large":
		return 3072
	case "text-embedding-3-small", "text-embedding-ada-002":
		return 1536
	default:
		return 1536
	}
}

// Embed sends the batch and returns the vectors in input order.
func (p *OpenAIProvider) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, ErrEmptyInput
	}

	payload := map[string]interface{}{
		"input": texts,
		"model": p.model,
	}

	var result struct {
		Data []struct {
			Index     int       `json:"index"`
			Embedding []float32 `json:"embedding"`
		} `json:"data"`
	}

	if err := p.client.PostJSON(ctx, p.baseURL+"/embeddings", p.apiKey, payload, &result); err != nil {
		return nil, fmt.Errorf("embeddings: %w", err)
	}
	if len(result.Data) != len(texts) {
		return nil, fmt.Errorf("embeddings: expected %d vectors, got %d", len(texts), len(result.Data))
	}

	// Each item carries the index of its input text; sort to restore input order.
	sort.Slice(result.Data, func(i, j int) bool { return result.Data[i].Index < result.Data[j].Index })

	out := make([][]float32, len(result.Data))
	for i, d := range result.Data {
		out[i] = d.Embedding
	}
	return out, nil
}

func (p *OpenAIProvider) Dimension() int {
	return p.dimension
}

// Close is a no-op for the HTTP provider.
func (p *OpenAIProvider) Close() error {
	return nil
}
