package runner

import (
	"context"
	"sync"
	"time"

	"field-comparator/core/compare"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxJobs bounds the number of async jobs remembered for lookup.
const maxJobs = 100

// Job is a run started by RunAllAsync.
type Job struct {
	ID        string
	StartedAt time.Time

	done       chan struct{}
	mu         sync.RWMutex
	results    []*compare.Result
	finishedAt time.Time
}

// Done is closed when the job has finished.
func (j *Job) Done() <-chan struct{} {
	return j.done
}

// Wait blocks until the job finishes or ctx is done.
func (j *Job) Wait(ctx context.Context) ([]*compare.Result, error) {
	select {
	case <-j.done:
		results, _ := j.Results()
		return results, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Results returns the job results; ok is false while the job is running.
func (j *Job) Results() (results []*compare.Result, ok bool) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	select {
	case <-j.done:
		return j.results, true
	default:
		return nil, false
	}
}

// FinishedAt returns when the job finished, zero while running.
func (j *Job) FinishedAt() time.Time {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.finishedAt
}

func (j *Job) finish(results []*compare.Result) {
	j.mu.Lock()
	j.results = results
	j.finishedAt = time.Now()
	j.mu.Unlock()
	close(j.done)
}

// OnJobDone registers fn to be called after every async job finishes.
// Register hooks before starting jobs.
func (r *Runner) OnJobDone(fn func(*Job)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onJobDone = append(r.onJobDone, fn)
}

// RunAllAsync starts RunAll in the background and returns immediately.
// The job outlives the caller's cancellation but keeps its values.
func (r *Runner) RunAllAsync(ctx context.Context) *Job {
	job := &Job{
		ID:        uuid.New().String(),
		StartedAt: time.Now(),
		done:      make(chan struct{}),
	}
	r.track(job)

	r.mu.RLock()
	hooks := append([]func(*Job){}, r.onJobDone...)
	r.mu.RUnlock()

	bg := context.WithoutCancel(ctx)
	go func() {
		r.logger.Info("Async comparison job started", zap.String("job_id", job.ID))
		job.finish(r.RunAll(bg))
		r.logger.Info("Async comparison job finished",
			zap.String("job_id", job.ID),
			zap.Duration("elapsed", job.FinishedAt().Sub(job.StartedAt)))
		for _, fn := range hooks {
			fn(job)
		}
	}()
	return job
}

// Job returns a tracked async job by id.
func (r *Runner) Job(id string) (*Job, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	job, ok := r.jobs[id]
	return job, ok
}

// track remembers job, forgetting the oldest finished jobs beyond maxJobs.
func (r *Runner) track(job *Job) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs[job.ID] = job
	r.jobOrder = append(r.jobOrder, job.ID)

	for i := 0; len(r.jobs) > maxJobs && i < len(r.jobOrder); {
		id := r.jobOrder[i]
		if _, finished := r.jobs[id].Results(); finished {
			delete(r.jobs, id)
			r.jobOrder = append(r.jobOrder[:i], r.jobOrder[i+1:]...)
			continue
		}
		i++
	}
}
