// Package embeddings maps short texts to fixed-dimension vectors via an
// external embedding model.
package embeddings

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig is returned for unknown providers or models.
	ErrInvalidConfig = errors.New("embeddings: invalid configuration")

	// ErrEmptyInput is returned when there is nothing to embed.
	ErrEmptyInput = errors.New("embeddings: empty input")
)

// Provider embeds a batch of texts. Providers are constructed once at
// startup and are safe for concurrent use; model weights are never mutated
// at inference time.
type Provider interface {
	// Embed returns one vector per input text, in input order.
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	// Dimension returns the embedding dimension for the configured model.
	Dimension() int
	// Close releases resources held by the provider.
	Close() error
}

// Config holds provider construction parameters.
type Config struct {
	// Provider is "openai" (any OpenAI-compatible HTTP endpoint) or
	// "fastembed" (local ONNX inference).
	Provider string
	// Model is the embedding model identifier.
	Model string
	// APIKey authorizes the HTTP provider.
	APIKey string
	// BaseURL is the OpenAI-compatible endpoint root.
	BaseURL string
	// CacheDir is the model cache directory for fastembed.
	CacheDir string
}

// NewProvider creates an embedding provider from the configuration.
func NewProvider(cfg Config) (Provider, error) {
	switch cfg.Provider {
	case "openai", "":
		return NewOpenAIProvider(cfg)
	case "fastembed":
		return NewFastEmbedProvider(FastEmbedConfig{
			Model:    cfg.Model,
			CacheDir: cfg.CacheDir,
		})
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", ErrInvalidConfig, cfg.Provider)
	}
}
