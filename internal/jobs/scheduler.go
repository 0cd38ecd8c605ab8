package jobs

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	repository "github.com/sahayuk/sahayuk/internal/repositories"
)

// Scheduler runs the background maintenance jobs: the hourly sweep that
// cancels expired open tasks and the calendar rollover that zeroes the
// per-profile posted counters.
type Scheduler struct {
	cron        *cron.Cron
	taskRepo    *repository.TaskRepository
	profileRepo *repository.ProfileRepository
}

func NewScheduler(taskRepo *repository.TaskRepository, profileRepo *repository.ProfileRepository) *Scheduler {
	return &Scheduler{
		cron:        cron.New(),
		taskRepo:    taskRepo,
		profileRepo: profileRepo,
	}
}

// Register wires the jobs onto their cron specs and returns the first
// error cron reports for a malformed spec.
func (s *Scheduler) Register(expirySpec, quotaResetSpec string) error {
	if _, err := s.cron.AddFunc(expirySpec, s.expireTasks); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(quotaResetSpec, s.resetMonthlyCounts); err != nil {
		return err
	}
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop waits for any running job to finish.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop().Done()
	select {
	case <-done:
	case <-ctx.Done():
	}
}

func (s *Scheduler) expireTasks() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := s.taskRepo.ExpireOpenTasks(ctx, time.Now().UTC())
	if err != nil {
		log.Printf("jobs: expiry sweep failed: %v", err)
		return
	}
	if n > 0 {
		log.Printf("jobs: cancelled %d expired tasks", n)
	}
}

func (s *Scheduler) resetMonthlyCounts() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := s.profileRepo.ResetMonthlyCounts(ctx)
	if err != nil {
		log.Printf("jobs: monthly counter reset failed: %v", err)
		return
	}
	log.Printf("jobs: reset posted counters on %d profiles", n)
}
