package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/sahayuk/sahayuk/internal/constants"
	apperrors "github.com/sahayuk/sahayuk/internal/errors"
	model "github.com/sahayuk/sahayuk/internal/models"
	"github.com/sahayuk/sahayuk/internal/quota"
	repository "github.com/sahayuk/sahayuk/internal/repositories"
)

type TaskService struct {
	taskRepo    *repository.TaskRepository
	bidRepo     *repository.BidRepository
	profileRepo *repository.ProfileRepository
	quota       quota.Counter
	notifier    *Notifier
}

func NewTaskService(
	taskRepo *repository.TaskRepository,
	bidRepo *repository.BidRepository,
	profileRepo *repository.ProfileRepository,
	quotaCounter quota.Counter,
	notifier *Notifier,
) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		bidRepo:     bidRepo,
		profileRepo: profileRepo,
		quota:       quotaCounter,
		notifier:    notifier,
	}
}

type PostTaskInput struct {
	Title           string
	Description     string
	Category        string
	BudgetMin       *int
	BudgetMax       *int
	Urgency         constants.Urgency
	LocationAddress string
	LocationLat     *float64
	LocationLng     *float64
}

// Post publishes a new open task. Free posters consume one slot of their
// monthly quota; the reservation is atomic and released if the insert
// fails.
func (s *TaskService) Post(ctx context.Context, clientID string, in PostTaskInput) (*model.Task, error) {
	profile, err := s.profileRepo.FindByUserID(ctx, clientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, err
	}
	if !profile.Completed() {
		return nil, apperrors.ErrProfileIncomplete
	}

	if !constants.ValidCategory(in.Category) {
		in.Category = "other"
	}
	if !constants.ValidUrgency(in.Urgency) {
		in.Urgency = constants.UrgencyNormal
	}

	address := strings.TrimSpace(in.LocationAddress)
	if address == "" {
		address = constants.DefaultAddress
	}

	lat, lng := constants.DefaultLat, constants.DefaultLng
	if in.LocationLat != nil && in.LocationLng != nil {
		lat, lng = *in.LocationLat, *in.LocationLng
	}

	isPro := profile.SubscriptionType == constants.SubscriptionPro
	radius := constants.VisibilityRadiusFree
	if isPro {
		radius = constants.VisibilityRadiusPro
	}

	if !isPro {
		if err := s.quota.Reserve(ctx, clientID, constants.FreeMonthlyTaskLimit); err != nil {
			if errors.Is(err, quota.ErrLimitReached) {
				return nil, apperrors.ErrQuotaExceeded
			}
			return nil, err
		}
	}

	now := time.Now().UTC()
	task := &model.Task{
		Title:            strings.TrimSpace(in.Title),
		Description:      strings.TrimSpace(in.Description),
		Category:         in.Category,
		BudgetMin:        in.BudgetMin,
		BudgetMax:        in.BudgetMax,
		Urgency:          in.Urgency,
		LocationAddress:  address,
		LocationLat:      lat,
		LocationLng:      lng,
		VisibilityRadius: radius,
		ClientID:         clientID,
		Status:           constants.TaskOpen,
		ExpiresAt:        now.Add(constants.TaskTTLDays * 24 * time.Hour),
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		if !isPro {
			if relErr := s.quota.Release(ctx, clientID); relErr != nil {
				log.Printf("task: failed to release quota slot for %s: %v", clientID, relErr)
			}
		}
		return nil, err
	}

	if err := s.profileRepo.IncrementTasksPosted(ctx, clientID); err != nil {
		log.Printf("task: failed to bump posted counter for %s: %v", clientID, err)
	}

	return task, nil
}

func (s *TaskService) Get(ctx context.Context, id string) (*model.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

func (s *TaskService) ListByClient(ctx context.Context, clientID string) ([]model.Task, error) {
	return s.taskRepo.ListByClient(ctx, clientID)
}

func (s *TaskService) ListByWorker(ctx context.Context, workerID string) ([]model.Task, error) {
	return s.taskRepo.ListByWorker(ctx, workerID)
}

// Delete removes the caller's own task while it is still unassigned.
func (s *TaskService) Delete(ctx context.Context, taskID, clientID string) error {
	task, err := s.Get(ctx, taskID)
	if err != nil {
		return err
	}

	if task.ClientID != clientID {
		return apperrors.ErrForbidden
	}
	if task.WorkerID != nil || task.Status != constants.TaskOpen && task.Status != constants.TaskCancelled {
		return apperrors.ErrTaskAssignedDelete
	}

	return s.taskRepo.Delete(ctx, taskID)
}

type DashboardStats struct {
	TasksPosted    int `json:"tasks_posted"`
	ActiveTasks    int `json:"active_tasks"`
	CompletedTasks int `json:"completed_tasks"`
	TotalBids      int `json:"total_bids"`
	AcceptedBids   int `json:"accepted_bids"`
	TasksWorking   int `json:"tasks_working"`
}

// Stats derives the dashboard numbers from the stored rows; there is no
// separately maintained counter to drift out of sync.
func (s *TaskService) Stats(ctx context.Context, userID string) (*DashboardStats, error) {
	posted, err := s.taskRepo.ListByClient(ctx, userID)
	if err != nil {
		return nil, err
	}

	bids, err := s.bidRepo.ListByWorker(ctx, userID)
	if err != nil {
		return nil, err
	}

	working, err := s.taskRepo.ListByWorker(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{TasksPosted: len(posted), TotalBids: len(bids)}
	for _, t := range posted {
		switch t.Status {
		case constants.TaskOpen, constants.TaskAssigned, constants.TaskInProgress:
			stats.ActiveTasks++
		case constants.TaskCompleted:
			stats.CompletedTasks++
		}
	}
	for _, b := range bids {
		if b.Status == constants.BidAccepted {
			stats.AcceptedBids++
		}
	}
	for _, t := range working {
		if t.Status == constants.TaskAssigned || t.Status == constants.TaskInProgress {
			stats.TasksWorking++
		}
	}

	return stats, nil
}
