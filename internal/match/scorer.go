// Package match computes bias-resistant semantic match scores between a
// candidate's skill set and a job's requirement list.
package match

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"
)

var (
	// ErrEmptyRequirements is returned when the job has no required skills;
	// the score is undefined and must be rejected rather than defaulted.
	ErrEmptyRequirements = errors.New("match: empty requirement set")

	// ErrEmbeddingUnavailable wraps embedding model failures.
	ErrEmbeddingUnavailable = errors.New("match: embedding unavailable")
)

// Result is the derived outcome of one score computation. The raw counts are
// exposed alongside the normalized score for transparency.
type Result struct {
	Score         float64 `json:"score"`
	MatchedCount  int     `json:"matched_count"`
	TotalRequired int     `json:"total_required"`
}

// Embedder is the black-box embedding function the scorer consumes.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// Scorer scores candidate skills against job requirements. Stateless across
// calls; safe for concurrent use as long as the embedder is.
type Scorer struct {
	embedder  Embedder
	threshold float64
}

// NewScorer builds a scorer with the given similarity threshold (inclusive).
func NewScorer(embedder Embedder, threshold float64) *Scorer {
	return &Scorer{embedder: embedder, threshold: threshold}
}

// Score embeds both skill lists (one batch each, run concurrently), computes
// the pairwise cosine-similarity matrix, and counts how many job skills have
// at least one candidate skill within the threshold. The score is
// job-skill-centric: extra candidate skills are never penalized, and
// duplicate job skills count once per occurrence.
func (s *Scorer) Score(ctx context.Context, candidateSkills, jobSkills []string) (Result, error) {
	if len(jobSkills) == 0 {
		return Result{}, ErrEmptyRequirements
	}

	candidates := normalizeSet(candidateSkills)
	if len(candidates) == 0 {
		// A candidate with no skills is a valid zero match, not an error.
		return Result{Score: 0, MatchedCount: 0, TotalRequired: len(jobSkills)}, nil
	}

	var jobVectors, candidateVectors [][]float32

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := s.embedder.Embed(gctx, jobSkills)
		jobVectors = v
		return err
	})
	g.Go(func() error {
		v, err := s.embedder.Embed(gctx, candidates)
		candidateVectors = v
		return err
	})
	if err := g.Wait(); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrEmbeddingUnavailable, err)
	}
	if len(jobVectors) != len(jobSkills) || len(candidateVectors) != len(candidates) {
		return Result{}, fmt.Errorf("%w: vector count mismatch", ErrEmbeddingUnavailable)
	}

	candidateUnits := make([][]float64, len(candidateVectors))
	for i, v := range candidateVectors {
		candidateUnits[i] = unitVector(v)
	}
	candidateSet := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		candidateSet[c] = true
	}

	matched := 0
	for i, jv := range jobVectors {
		// An exact skill-name match is similarity 1.0 by definition and is
		// never lost to normalization rounding.
		if candidateSet[strings.ToLower(strings.TrimSpace(jobSkills[i]))] {
			matched++
			continue
		}
		ju := unitVector(jv)
		for _, cu := range candidateUnits {
			if dot(ju, cu) >= s.threshold {
				matched++
				break
			}
		}
	}

	return Result{
		Score:         float64(matched) / float64(len(jobSkills)),
		MatchedCount:  matched,
		TotalRequired: len(jobSkills),
	}, nil
}

// normalizeSet applies set semantics to the candidate side: trimmed,
// lower-cased, first-seen dedupe.
func normalizeSet(skills []string) []string {
	seen := make(map[string]bool, len(skills))
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
