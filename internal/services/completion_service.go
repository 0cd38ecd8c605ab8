package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/sahayuk/sahayuk/internal/constants"
	apperrors "github.com/sahayuk/sahayuk/internal/errors"
	model "github.com/sahayuk/sahayuk/internal/models"
	repository "github.com/sahayuk/sahayuk/internal/repositories"
)

// CompletionService handles the hand-off at the end of a task: the worker
// submits proof of work, the client approves it or asks for another pass.
type CompletionService struct {
	db             *gorm.DB
	completionRepo *repository.CompletionRepository
	taskRepo       *repository.TaskRepository
	notifier       *Notifier
}

func NewCompletionService(db *gorm.DB, notifier *Notifier) *CompletionService {
	return &CompletionService{
		db:             db,
		completionRepo: repository.NewCompletionRepository(db),
		taskRepo:       repository.NewTaskRepository(db),
		notifier:       notifier,
	}
}

// Submit files the worker's completion report. The first submission moves
// the task from assigned to in_progress.
func (s *CompletionService) Submit(
	ctx context.Context,
	taskID, workerID, note, filesJSON string,
) (*model.TaskCompletion, error) {
	note = strings.TrimSpace(note)
	if note == "" {
		return nil, &apperrors.Exception{Message: "completion note is required", StatusCode: 400}
	}

	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, err
	}

	if task.WorkerID == nil || *task.WorkerID != workerID {
		return nil, apperrors.ErrForbidden
	}
	if task.Status != constants.TaskAssigned && task.Status != constants.TaskInProgress {
		return nil, apperrors.ErrTaskNotOpen
	}

	completion := &model.TaskCompletion{
		TaskID:          taskID,
		WorkerID:        workerID,
		ClientID:        task.ClientID,
		CompletionNote:  note,
		CompletionFiles: filesJSON,
		Status:          constants.CompletionSubmitted,
	}

	if err := s.completionRepo.Create(ctx, completion); err != nil {
		return nil, err
	}

	if task.Status == constants.TaskAssigned {
		task.Status = constants.TaskInProgress
		if err := s.taskRepo.Update(ctx, task); err != nil {
			return nil, err
		}
	}

	return completion, nil
}

// Approve accepts the submitted work: the completion is stamped and the
// task finishes, in one transaction. A rating is required.
func (s *CompletionService) Approve(
	ctx context.Context,
	completionID, clientID string,
	rating int,
	feedback string,
) error {
	if rating < 1 || rating > 5 {
		return apperrors.ErrInvalidRating
	}

	var workerID, taskID string

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		completions := repository.NewCompletionRepository(tx)
		tasks := repository.NewTaskRepository(tx)

		completion, err := completions.FindByID(ctx, completionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrCompletionNotFound
			}
			return err
		}
		if completion.ClientID != clientID {
			return apperrors.ErrForbidden
		}

		now := time.Now().UTC()
		completion.ClientApproved = true
		completion.ClientRating = &rating
		if fb := strings.TrimSpace(feedback); fb != "" {
			completion.ClientFeedback = &fb
		}
		completion.ApprovedAt = &now
		completion.Status = constants.CompletionApproved
		if err := completions.Update(ctx, completion); err != nil {
			return err
		}

		task, err := tasks.FindByID(ctx, completion.TaskID)
		if err != nil {
			return err
		}
		task.Status = constants.TaskCompleted
		task.CompletedAt = &now
		if err := tasks.Update(ctx, task); err != nil {
			return err
		}

		workerID = completion.WorkerID
		taskID = completion.TaskID
		return nil
	})
	if err != nil {
		return err
	}

	s.notifier.Enqueue(NotificationEvent{
		Kind:   constants.NotifyTaskCompleted,
		UserID: workerID,
		TaskID: taskID,
	})

	return nil
}

// RequestRevision sends the work back to the worker with feedback.
func (s *CompletionService) RequestRevision(
	ctx context.Context,
	completionID, clientID, feedback string,
) error {
	feedback = strings.TrimSpace(feedback)
	if feedback == "" {
		return apperrors.ErrFeedbackRequired
	}

	completion, err := s.completionRepo.FindByID(ctx, completionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrCompletionNotFound
		}
		return err
	}
	if completion.ClientID != clientID {
		return apperrors.ErrForbidden
	}

	completion.ClientApproved = false
	completion.ClientFeedback = &feedback
	completion.Status = constants.CompletionRevisionRequested

	return s.completionRepo.Update(ctx, completion)
}

// ListForTask returns a task's completions to either party.
func (s *CompletionService) ListForTask(ctx context.Context, taskID, callerID string) ([]model.TaskCompletion, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, err
	}
	if !taskParty(task, callerID) {
		return nil, apperrors.ErrForbidden
	}

	return s.completionRepo.ListByTask(ctx, taskID)
}
