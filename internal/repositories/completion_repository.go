package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "github.com/sahayuk/sahayuk/internal/models"
)

type CompletionRepository struct {
	db *gorm.DB
}

func NewCompletionRepository(db *gorm.DB) *CompletionRepository {
	return &CompletionRepository{db: db}
}

func (r *CompletionRepository) Create(ctx context.Context, completion *model.TaskCompletion) error {
	if completion.ID == "" {
		completion.ID = uuid.NewString()
	}
	completion.SubmittedAt = time.Now().UTC()

	return r.db.WithContext(ctx).Create(completion).Error
}

func (r *CompletionRepository) FindByID(ctx context.Context, id string) (*model.TaskCompletion, error) {
	var completion model.TaskCompletion
	err := r.db.WithContext(ctx).First(&completion, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &completion, nil
}

func (r *CompletionRepository) ListByTask(ctx context.Context, taskID string) ([]model.TaskCompletion, error) {
	var completions []model.TaskCompletion
	err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("submitted_at desc").
		Find(&completions).Error
	return completions, err
}

func (r *CompletionRepository) Update(ctx context.Context, completion *model.TaskCompletion) error {
	return r.db.WithContext(ctx).Save(completion).Error
}
