package embeddings

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProviderUnknown(t *testing.T) {
	_, err := NewProvider(Config{Provider: "does-not-exist"})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestNewOpenAIProviderRequiresKey(t *testing.T) {
	_, err := NewProvider(Config{Provider: "openai"})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestOpenAIProviderDimension(t *testing.T) {
	p, err := NewOpenAIProvider(Config{APIKey: "k", Model: "text-embedding-3-large"})
	require.NoError(t, err)
	assert.Equal(t, 3072, p.Dimension())

	p, err = NewOpenAIProvider(Config{APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, 1536, p.Dimension())
}

func TestOpenAIProviderEmbed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/embeddings", r.URL.Path)
		assert.Equal(t, "Bearer k", r.Header.Get("Authorization"))

		var req struct {
			Input []string `json:"input"`
			Model string   `json:"model"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Input, 2)

		// Answer out of order to exercise index-based reordering.
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]interface{}{
				{"index": 1, "embedding": []float32{0, 1}},
				{"index": 0, "embedding": []float32{1, 0}},
			},
		})
	}))
	defer srv.Close()

	p, err := NewOpenAIProvider(Config{APIKey: "k", BaseURL: srv.URL})
	require.NoError(t, err)

	vectors, err := p.Embed(context.Background(), []string{"go", "sql"})
	require.NoError(t, err)
	assert.Equal(t, [][]float32{{1, 0}, {0, 1}}, vectors)
}

func TestOpenAIProviderEmbedEmptyInput(t *testing.T) {
	p, err := NewOpenAIProvider(Config{APIKey: "k"})
	require.NoError(t, err)

	_, err = p.Embed(context.Background(), nil)
	assert.ErrorIs(t, err, ErrEmptyInput)
}
