package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/sahayuk/sahayuk/internal/constants"
	apperrors "github.com/sahayuk/sahayuk/internal/errors"
	model "github.com/sahayuk/sahayuk/internal/models"
	repository "github.com/sahayuk/sahayuk/internal/repositories"
)

type ReviewService struct {
	reviewRepo *repository.ReviewRepository
	taskRepo   *repository.TaskRepository
}

func NewReviewService(
	reviewRepo *repository.ReviewRepository,
	taskRepo *repository.TaskRepository,
) *ReviewService {
	return &ReviewService{reviewRepo: reviewRepo, taskRepo: taskRepo}
}

// Submit records a rating for the counterpart of a completed task. One
// review per (task, reviewer, reviewee).
func (s *ReviewService) Submit(
	ctx context.Context,
	taskID, reviewerID, revieweeID string,
	rating int,
	text string,
) (*model.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, apperrors.ErrInvalidRating
	}

	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, err
	}

	if task.Status != constants.TaskCompleted {
		return nil, apperrors.ErrTaskNotCompleted
	}
	if !taskParty(task, reviewerID) || !taskParty(task, revieweeID) || reviewerID == revieweeID {
		return nil, apperrors.ErrForbidden
	}

	exists, err := s.reviewRepo.Exists(ctx, taskID, reviewerID, revieweeID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrDuplicateReview
	}

	review := &model.Review{
		TaskID:     taskID,
		ReviewerID: reviewerID,
		RevieweeID: revieweeID,
		Rating:     rating,
		ReviewText: strings.TrimSpace(text),
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDuplicateReview
		}
		return nil, err
	}

	return review, nil
}

type UserReviews struct {
	Reviews       []model.Review `json:"reviews"`
	AverageRating float64        `json:"average_rating"`
	ReviewCount   int64          `json:"review_count"`
}

func (s *ReviewService) ForUser(ctx context.Context, userID string) (*UserReviews, error) {
	reviews, err := s.reviewRepo.ListByReviewee(ctx, userID)
	if err != nil {
		return nil, err
	}

	avg, count, err := s.reviewRepo.AverageRating(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &UserReviews{Reviews: reviews, AverageRating: avg, ReviewCount: count}, nil
}

func taskParty(task *model.Task, userID string) bool {
	if task.ClientID == userID {
		return true
	}
	return task.WorkerID != nil && *task.WorkerID == userID
}
