package api

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// RescoreJob asks the background worker to refresh the stored match
// results of every application on a job, after its requirements changed.
type RescoreJob struct {
	JobID     string
	Timestamp time.Time
}

// StartBackgroundWorkers initializes background job workers
func (a *API) StartBackgroundWorkers() {
	go a.rescoreWorker()

	a.log.Info("background workers started")
}

// rescoreWorker processes rescore jobs from the queue. Rescoring is best
// effort: a failed application keeps its previous score and shows up in
// the logs, the rest of the batch still proceeds.
func (a *API) rescoreWorker() {
	for job := range a.rescoreQueue {
		log := a.log.With(zap.String("job_id", job.JobID))
		ctx := context.Background()

		posting, err := a.db.GetJob(ctx, job.JobID)
		if err != nil {
			log.Warn("rescore: job lookup failed", zap.Error(err))
			continue
		}

		apps, err := a.db.ListApplicationsByJob(ctx, job.JobID)
		if err != nil {
			log.Warn("rescore: application listing failed", zap.Error(err))
			continue
		}

		rescored := 0
		failed := 0
		for _, app := range apps {
			result, err := a.pipeline.ScoreProfile(ctx, app.ProfileSkills, posting.Requirements)
			if err != nil {
				log.Warn("rescore: scoring failed",
					zap.String("application_id", app.ID), zap.Error(err))
				failed++
				continue
			}
			if err := a.db.UpdateApplicationScore(ctx, app.ID, result.Score, result.MatchedCount, result.TotalRequired); err != nil {
				log.Warn("rescore: score update failed",
					zap.String("application_id", app.ID), zap.Error(err))
				failed++
				continue
			}
			rescored++
		}

		log.Info("rescore complete",
			zap.Int("rescored", rescored),
			zap.Int("failed", failed),
			zap.Duration("took", time.Since(job.Timestamp)))
	}
}

// QueueRescoreJob adds a rescore job to the background queue
func (a *API) QueueRescoreJob(jobID string) {
	job := RescoreJob{
		JobID:     jobID,
		Timestamp: time.Now(),
	}

	// Non-blocking send
	select {
	case a.rescoreQueue <- job:
		a.log.Info("queued rescore job", zap.String("job_id", jobID))
	default:
		a.log.Warn("rescore queue full, dropping job", zap.String("job_id", jobID))
	}
}
