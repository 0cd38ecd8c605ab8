package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "github.com/sahayuk/sahayuk/internal/models"
)

type ChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

func (r *ChatRepository) Create(ctx context.Context, msg *model.ChatMessage) error {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	msg.CreatedAt = time.Now().UTC()

	return r.db.WithContext(ctx).Create(msg).Error
}

// ListByTaskForUser returns the task's messages the user participates in,
// oldest first.
func (r *ChatRepository) ListByTaskForUser(ctx context.Context, taskID, userID string) ([]model.ChatMessage, error) {
	var msgs []model.ChatMessage
	err := r.db.WithContext(ctx).
		Where("task_id = ? AND (sender_id = ? OR receiver_id = ?)", taskID, userID, userID).
		Order("created_at asc").
		Find(&msgs).Error
	return msgs, err
}

// MarkRead flips every unread message addressed to the receiver in the
// task's conversation.
func (r *ChatRepository) MarkRead(ctx context.Context, taskID, receiverID string) error {
	return r.db.WithContext(ctx).Model(&model.ChatMessage{}).
		Where("task_id = ? AND receiver_id = ? AND is_read = ?", taskID, receiverID, false).
		Update("is_read", true).Error
}

type UnreadCount struct {
	TaskID   string `json:"task_id"`
	SenderID string `json:"sender_id"`
	Count    int64  `json:"count"`
}

// UnreadCounts aggregates the user's unread messages across every
// conversation in a single grouped query.
func (r *ChatRepository) UnreadCounts(ctx context.Context, receiverID string) ([]UnreadCount, error) {
	var counts []UnreadCount
	err := r.db.WithContext(ctx).Model(&model.ChatMessage{}).
		Select("task_id, sender_id, count(*) as count").
		Where("receiver_id = ? AND is_read = ?", receiverID, false).
		Group("task_id, sender_id").
		Scan(&counts).Error
	return counts, err
}

func (r *ChatRepository) UnreadCountFor(ctx context.Context, taskID, receiverID, senderID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.ChatMessage{}).
		Where("task_id = ? AND receiver_id = ? AND sender_id = ? AND is_read = ?",
			taskID, receiverID, senderID, false).
		Count(&count).Error
	return count, err
}
