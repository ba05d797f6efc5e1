// pkg/schedule/scheduler.go
package schedule

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Job is one periodic unit of work with its own cadence.
type Job struct {
	ID       string
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

// NewJob creates a job with a generated identifier.
func NewJob(name string, interval time.Duration, run func(ctx context.Context) error) Job {
	return Job{
		ID:       uuid.New().String(),
		Name:     name,
		Interval: interval,
		Run:      run,
	}
}

// Scheduler runs independent periodic jobs, each on its own cadence.
// Jobs are failure-isolated: one job's error or panic never stops the
// others.
type Scheduler struct {
	logger *zap.Logger
	jobs   []Job
	wg     sync.WaitGroup
}

// New creates a scheduler.
func New(logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &Scheduler{logger: logger}, nil
}

// Add registers a job. Must be called before Start.
func (s *Scheduler) Add(job Job) error {
	if job.Run == nil {
		return errors.New("job must have a run function")
	}
	if job.Interval <= 0 {
		return fmt.Errorf("job %s must have a positive interval", job.Name)
	}
	s.jobs = append(s.jobs, job)
	return nil
}

// Start launches every registered job. Each job runs once immediately
// and then on every tick until the context is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	for _, job := range s.jobs {
		s.wg.Add(1)
		go s.runJob(ctx, job)
	}

	s.logger.Info("Scheduler started", zap.Int("jobs", len(s.jobs)))
}

// Wait blocks until all job loops have stopped.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

// runJob is the per-job loop.
func (s *Scheduler) runJob(ctx context.Context, job Job) {
	defer s.wg.Done()

	logger := s.logger.With(
		zap.String("jobID", job.ID),
		zap.String("job", job.Name))

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	s.runOnce(ctx, job, logger)

	for {
		select {
		case <-ctx.Done():
			logger.Info("Job stopping due to context cancellation")
			return
		case <-ticker.C:
			s.runOnce(ctx, job, logger)
		}
	}
}

// runOnce executes a single job run, recovering panics so a broken
// job cannot take down its siblings.
func (s *Scheduler) runOnce(ctx context.Context, job Job, logger *zap.Logger) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", zap.Any("panic", r))
		}
	}()

	start := time.Now()
	logger.Info("Job starting")

	if err := job.Run(ctx); err != nil {
		logger.Error("Job failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return
	}

	logger.Info("Job completed", zap.Duration("duration", time.Since(start)))
}
