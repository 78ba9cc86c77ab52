package match

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubEmbedder returns a fixed vector per text so similarity outcomes are
// deterministic: identical strings embed identically (cosine 1.0), unmapped
// strings get a vector orthogonal to everything else.
type stubEmbedder struct {
	vectors map[string][]float32
	err     error
	calls   int
}

func (s *stubEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		if v, ok := s.vectors[t]; ok {
			out[i] = v
		} else {
			out[i] = []float32{0, 0, 0, 0, 1}
		}
	}
	return out, nil
}

func newStub() *stubEmbedder {
	return &stubEmbedder{vectors: map[string][]float32{
		"python":             {1, 0, 0, 0, 0},
		"sql":                {0, 1, 0, 0, 0},
		"power bi":           {0, 0, 1, 0, 0},
		"data visualization": {0, 0, 0.8, 0.6, 0},
		"data analysis":      {0, 0, 0.6, 0.8, 0},
		"machine learning":   {0.1, 0, 0, 0, 0.9},
	}}
}

func TestScoreScenario(t *testing.T) {
	scorer := NewScorer(newStub(), 0.5)

	candidate := []string{"python", "sql", "power bi", "data visualization"}
	job := []string{"python", "data analysis", "sql", "machine learning"}

	res, err := scorer.Score(context.Background(), candidate, job)
	require.NoError(t, err)

	// python and sql are exact matches; "data analysis" is close to
	// "data visualization" (cosine 0.96 with these stub vectors);
	// "machine learning" stays unmatched.
	assert.Equal(t, 4, res.TotalRequired)
	assert.Equal(t, 3, res.MatchedCount)
	assert.InDelta(t, 0.75, res.Score, 1e-9)
}

func TestScoreSelfMatchIsPerfect(t *testing.T) {
	scorer := NewScorer(newStub(), 1.0)

	skills := []string{"python", "sql", "machine learning"}
	res, err := scorer.Score(context.Background(), skills, skills)
	require.NoError(t, err)

	assert.Equal(t, 1.0, res.Score)
	assert.Equal(t, len(skills), res.MatchedCount)
}

func TestScoreCandidateOrderInvariant(t *testing.T) {
	job := []string{"python", "sql"}

	a, err := NewScorer(newStub(), 0.5).Score(context.Background(), []string{"sql", "python", "power bi"}, job)
	require.NoError(t, err)
	b, err := NewScorer(newStub(), 0.5).Score(context.Background(), []string{"power bi", "python", "sql"}, job)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestScoreJobDuplicatesCountPerOccurrence(t *testing.T) {
	scorer := NewScorer(newStub(), 0.5)

	res, err := scorer.Score(context.Background(), []string{"python"}, []string{"python", "python", "sql"})
	require.NoError(t, err)

	assert.Equal(t, 3, res.TotalRequired)
	assert.Equal(t, 2, res.MatchedCount)
	assert.InDelta(t, 2.0/3.0, res.Score, 1e-9)
}

func TestScoreEmptyRequirements(t *testing.T) {
	scorer := NewScorer(newStub(), 0.5)

	_, err := scorer.Score(context.Background(), []string{"python"}, nil)
	assert.ErrorIs(t, err, ErrEmptyRequirements)

	// Both sides empty is still an empty requirement set, never a silent 0 or 1.
	_, err = scorer.Score(context.Background(), nil, []string{})
	assert.ErrorIs(t, err, ErrEmptyRequirements)
}

func TestScoreEmptyCandidateSet(t *testing.T) {
	stub := newStub()
	scorer := NewScorer(stub, 0.5)

	res, err := scorer.Score(context.Background(), nil, []string{"python", "sql"})
	require.NoError(t, err)

	assert.Equal(t, Result{Score: 0, MatchedCount: 0, TotalRequired: 2}, res)
	assert.Zero(t, stub.calls, "no embedding batch needed for an empty candidate set")
}

func TestScoreEmbeddingUnavailable(t *testing.T) {
	scorer := NewScorer(&stubEmbedder{err: errors.New("model down")}, 0.5)

	_, err := scorer.Score(context.Background(), []string{"python"}, []string{"sql"})
	assert.ErrorIs(t, err, ErrEmbeddingUnavailable)
}

func TestScoreThresholdIsInclusive(t *testing.T) {
	// cos("a","b") is exactly 0.0 here, with no rounding involved, so a 0.0
	// threshold separates >= from >.
	embedder := &stubEmbedder{vectors: map[string][]float32{
		"a": {1, 0},
		"b": {0, 1},
	}}

	res, err := NewScorer(embedder, 0.0).Score(context.Background(), []string{"b"}, []string{"a"})
	require.NoError(t, err)
	assert.Equal(t, 1, res.MatchedCount, "threshold comparison is inclusive")

	res, err = NewScorer(embedder, 0.5).Score(context.Background(), []string{"b"}, []string{"a"})
	require.NoError(t, err)
	assert.Equal(t, 0, res.MatchedCount)
}

func TestScoreBatchesOncePerSide(t *testing.T) {
	stub := newStub()
	scorer := NewScorer(stub, 0.5)

	_, err := scorer.Score(context.Background(), []string{"python", "sql"}, []string{"python", "sql", "power bi"})
	require.NoError(t, err)
	assert.Equal(t, 2, stub.calls, "one batch per side, never one call per pair")
}

func TestScoreBoundedForAnyInput(t *testing.T) {
	scorer := NewScorer(newStub(), 0.5)

	res, err := scorer.Score(context.Background(), []string{"unrelated", "weird"}, []string{"python", "sql"})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, res.Score, 0.0)
	assert.LessOrEqual(t, res.Score, 1.0)
}
