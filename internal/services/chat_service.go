package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "github.com/sahayuk/sahayuk/internal/errors"
	model "github.com/sahayuk/sahayuk/internal/models"
	repository "github.com/sahayuk/sahayuk/internal/repositories"
)

type ChatService struct {
	chatRepo    *repository.ChatRepository
	taskRepo    *repository.TaskRepository
	bidRepo     *repository.BidRepository
	broadcaster *UnreadBroadcaster
}

func NewChatService(
	chatRepo *repository.ChatRepository,
	taskRepo *repository.TaskRepository,
	bidRepo *repository.BidRepository,
	broadcaster *UnreadBroadcaster,
) *ChatService {
	return &ChatService{
		chatRepo:    chatRepo,
		taskRepo:    taskRepo,
		bidRepo:     bidRepo,
		broadcaster: broadcaster,
	}
}

// Send appends a message to the task's conversation. Both ends must be
// participants and a failed insert is an error the sender sees; messages
// are never silently rerouted to another channel.
func (s *ChatService) Send(
	ctx context.Context,
	taskID, senderID, receiverID, text string,
) (*model.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.ErrEmptyMessage
	}
	if senderID == receiverID {
		return nil, apperrors.ErrSelfMessage
	}

	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, err
	}

	for _, userID := range []string{senderID, receiverID} {
		ok, err := s.isParticipant(ctx, task, userID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, apperrors.ErrNotParticipant
		}
	}

	msg := &model.ChatMessage{
		TaskID:     taskID,
		SenderID:   senderID,
		ReceiverID: receiverID,
		Message:    text,
	}

	if err := s.chatRepo.Create(ctx, msg); err != nil {
		return nil, err
	}

	s.pushUnread(ctx, taskID, receiverID, senderID)

	return msg, nil
}

// pushUnread notifies the receiver's live connections about the changed
// conversation counter. Best effort, never fails the send.
func (s *ChatService) pushUnread(ctx context.Context, taskID, receiverID, senderID string) {
	count, err := s.chatRepo.UnreadCountFor(ctx, taskID, receiverID, senderID)
	if err != nil {
		return
	}
	s.broadcaster.Publish(receiverID, UnreadUpdate{
		TaskID:   taskID,
		SenderID: senderID,
		Count:    count,
	})
}

// SubscribeUnread attaches a live connection to the user's unread-count
// stream.
func (s *ChatService) SubscribeUnread(userID string) (<-chan UnreadUpdate, func()) {
	return s.broadcaster.Subscribe(userID)
}

// Messages returns the caller's view of the conversation and marks the
// messages addressed to them as read.
func (s *ChatService) Messages(ctx context.Context, taskID, userID string) ([]model.ChatMessage, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, err
	}

	ok, err := s.isParticipant(ctx, task, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.ErrNotParticipant
	}

	msgs, err := s.chatRepo.ListByTaskForUser(ctx, taskID, userID)
	if err != nil {
		return nil, err
	}

	if len(msgs) > 0 {
		if err := s.chatRepo.MarkRead(ctx, taskID, userID); err != nil {
			return nil, err
		}
	}

	return msgs, nil
}

func (s *ChatService) MarkRead(ctx context.Context, taskID, userID string) error {
	return s.chatRepo.MarkRead(ctx, taskID, userID)
}

// UnreadCounts returns the user's unread tallies for every conversation
// in one query rather than one round trip per task and counterpart.
func (s *ChatService) UnreadCounts(ctx context.Context, userID string) ([]repository.UnreadCount, error) {
	return s.chatRepo.UnreadCounts(ctx, userID)
}

// isParticipant accepts the task's client, its assigned worker, and any
// worker with a bid on it.
func (s *ChatService) isParticipant(ctx context.Context, task *model.Task, userID string) (bool, error) {
	if task.ClientID == userID {
		return true, nil
	}
	if task.WorkerID != nil && *task.WorkerID == userID {
		return true, nil
	}
	return s.bidRepo.ExistsForWorker(ctx, task.ID, userID)
}
