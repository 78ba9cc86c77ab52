// Package pipeline sequences extraction, redaction, segmentation and scoring
// into a single anonymization-first pass over an uploaded resume.
package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/noahnghg/hackthebiasproject/internal/document"
	"github.com/noahnghg/hackthebiasproject/internal/match"
	"github.com/noahnghg/hackthebiasproject/internal/profile"
	"github.com/noahnghg/hackthebiasproject/internal/redact"
)

// Stage identifies where in the linear run a pipeline invocation is, or
// where it failed. Transitions are strictly
// received → extracted → redacted → segmented → scored → complete.
type Stage string

const (
	StageReceived  Stage = "received"
	StageExtracted Stage = "extracted"
	StageRedacted  Stage = "redacted"
	StageSegmented Stage = "segmented"
	StageScored    Stage = "scored"
	StageComplete  Stage = "complete"
)

// StageError tags a failure with the stage that produced it. The wrapped
// error carries the component's error kind (document.ErrUnsupportedFormat,
// redact.ErrUnavailable, ...).
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("pipeline failed at %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Pipeline holds the injected stage implementations. One instance serves all
// invocations; runs share no mutable state, so concurrent calls are safe as
// long as the underlying models are. There are no retries anywhere: a caller
// wanting retry wraps the whole invocation, including its own timeout.
type Pipeline struct {
	extractor *document.Extractor
	redactor  *redact.Redactor
	sections  profile.SectionConfig
	scorer    *match.Scorer
	log       *zap.Logger
}

func New(extractor *document.Extractor, redactor *redact.Redactor, sections profile.SectionConfig, scorer *match.Scorer, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{
		extractor: extractor,
		redactor:  redactor,
		sections:  sections,
		scorer:    scorer,
		log:       log,
	}
}

// ProcessResume turns raw uploaded bytes into an anonymized candidate
// profile (received → extracted → redacted → segmented). Redaction happens
// strictly before segmentation so nothing downstream ever sees raw PII.
func (p *Pipeline) ProcessResume(ctx context.Context, data []byte, mediaType string) (*profile.CandidateProfile, error) {
	log := p.log.With(zap.String("media_type", mediaType), zap.Int("bytes", len(data)))
	log.Debug("pipeline run started", zap.String("stage", string(StageReceived)))

	extracted, err := p.extractor.Extract(data, mediaType)
	if err != nil {
		return nil, p.fail(log, StageExtracted, err)
	}
	log.Debug("document extracted",
		zap.String("stage", string(StageExtracted)),
		zap.Int("lines", len(extracted.Lines)),
		zap.Int("pages", extracted.Pages))

	redacted, err := p.redactor.Redact(ctx, extracted.Text())
	if err != nil {
		return nil, p.fail(log, StageRedacted, err)
	}
	log.Debug("text redacted", zap.String("stage", string(StageRedacted)))

	prof := profile.Segment(redacted, p.sections)
	log.Debug("profile segmented",
		zap.String("stage", string(StageSegmented)),
		zap.Int("skills", len(prof.Skills)))

	return prof, nil
}

// ScoreProfile computes the match result for an existing skill set, used
// both as the tail of a full run and on its own when a stored profile
// re-applies without re-uploading.
func (p *Pipeline) ScoreProfile(ctx context.Context, candidateSkills, jobSkills []string) (match.Result, error) {
	result, err := p.scorer.Score(ctx, candidateSkills, jobSkills)
	if err != nil {
		return match.Result{}, p.fail(p.log, StageScored, err)
	}
	p.log.Debug("profile scored",
		zap.String("stage", string(StageScored)),
		zap.Float64("score", result.Score),
		zap.Int("matched", result.MatchedCount),
		zap.Int("required", result.TotalRequired))
	return result, nil
}

// Run executes the full pass: resume bytes against one job's requirements.
func (p *Pipeline) Run(ctx context.Context, data []byte, mediaType string, jobSkills []string) (*profile.CandidateProfile, match.Result, error) {
	prof, err := p.ProcessResume(ctx, data, mediaType)
	if err != nil {
		return nil, match.Result{}, err
	}

	result, err := p.ScoreProfile(ctx, prof.Skills, jobSkills)
	if err != nil {
		return nil, match.Result{}, err
	}

	p.log.Debug("pipeline run complete", zap.String("stage", string(StageComplete)))
	return prof, result, nil
}

// fail logs the transition into the terminal failed state and tags the
// error with the stage that was being attempted.
func (p *Pipeline) fail(log *zap.Logger, from Stage, err error) error {
	log.Error("pipeline stage failed", zap.String("stage", string(from)), zap.Error(err))
	return &StageError{Stage: from, Err: err}
}
