package model

import (
	"time"

	"github.com/sahayuk/sahayuk/internal/constants"
)

type User struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type UserProfile struct {
	UserID               string                     `gorm:"primaryKey;size:36" json:"user_id"`
	FirstName            string                     `json:"first_name"`
	LastName             string                     `json:"last_name"`
	Phone                string                     `json:"phone"`
	Address              string                     `json:"address,omitempty"`
	City                 string                     `json:"city,omitempty"`
	Bio                  string                     `json:"bio,omitempty"`
	Skills               string                     `json:"skills,omitempty"`
	ProfileImage         string                     `json:"profile_image,omitempty"`
	ProfileCompleted     bool                       `gorm:"not null;default:false" json:"profile_completed"`
	SubscriptionType     constants.SubscriptionType `gorm:"type:varchar(10);not null;default:free" json:"subscription_type"`
	TasksPostedThisMonth int                        `gorm:"not null;default:0" json:"tasks_posted_this_month"`
	CreatedAt            time.Time                  `json:"created_at"`
	UpdatedAt            time.Time                  `json:"updated_at"`
}

// Completed reports whether the profile carries the fields required before
// the user may post or bid.
func (p *UserProfile) Completed() bool {
	return p.ProfileCompleted && p.FirstName != "" && p.LastName != "" && p.Phone != ""
}

func (p *UserProfile) FullName() string {
	switch {
	case p.FirstName != "" && p.LastName != "":
		return p.FirstName + " " + p.LastName
	case p.FirstName != "":
		return p.FirstName
	default:
		return p.LastName
	}
}

type Task struct {
	ID               string               `gorm:"primaryKey;size:36" json:"id"`
	Title            string               `gorm:"not null" json:"title"`
	Description      string               `gorm:"not null" json:"description"`
	Category         string               `gorm:"type:varchar(20);not null" json:"category"`
	BudgetMin        *int                 `json:"budget_min,omitempty"`
	BudgetMax        *int                 `json:"budget_max,omitempty"`
	Urgency          constants.Urgency    `gorm:"type:varchar(10);not null" json:"urgency"`
	LocationAddress  string               `json:"location_address"`
	LocationLat      float64              `json:"location_lat"`
	LocationLng      float64              `json:"location_lng"`
	VisibilityRadius int                  `gorm:"not null" json:"visibility_radius"`
	ClientID         string               `gorm:"size:36;index;not null" json:"client_id"`
	WorkerID         *string              `gorm:"size:36;index" json:"worker_id,omitempty"`
	Status           constants.TaskStatus `gorm:"type:varchar(20);index;not null" json:"status"`
	Version          uint                 `gorm:"not null;default:1" json:"version"`
	AssignedAt       *time.Time           `json:"assigned_at,omitempty"`
	CompletedAt      *time.Time           `json:"completed_at,omitempty"`
	ExpiresAt        time.Time            `json:"expires_at"`
	CreatedAt        time.Time            `json:"created_at"`
	UpdatedAt        time.Time            `json:"updated_at"`
}

type Bid struct {
	ID        string              `gorm:"primaryKey;size:36" json:"id"`
	TaskID    string              `gorm:"size:36;not null;uniqueIndex:idx_bid_task_worker" json:"task_id"`
	WorkerID  string              `gorm:"size:36;not null;uniqueIndex:idx_bid_task_worker" json:"worker_id"`
	BidAmount float64             `gorm:"not null" json:"bid_amount"`
	Message   string              `json:"message,omitempty"`
	Status    constants.BidStatus `gorm:"type:varchar(10);not null" json:"status"`
	CreatedAt time.Time           `json:"created_at"`
}

type ChatMessage struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	TaskID     string    `gorm:"size:36;index:idx_chat_task_receiver;not null" json:"task_id"`
	SenderID   string    `gorm:"size:36;not null" json:"sender_id"`
	ReceiverID string    `gorm:"size:36;index:idx_chat_task_receiver;not null" json:"receiver_id"`
	Message    string    `gorm:"not null" json:"message"`
	IsRead     bool      `gorm:"not null;default:false" json:"is_read"`
	CreatedAt  time.Time `json:"created_at"`
}

type Notification struct {
	ID               string                     `gorm:"primaryKey;size:36" json:"id"`
	UserID           string                     `gorm:"size:36;index;not null" json:"user_id"`
	Title            string                     `gorm:"not null" json:"title"`
	Message          string                     `gorm:"not null" json:"message"`
	NotificationType constants.NotificationType `gorm:"type:varchar(20);not null" json:"notification_type"`
	RelatedTaskID    *string                    `gorm:"size:36" json:"related_task_id,omitempty"`
	RelatedUserID    *string                    `gorm:"size:36" json:"related_user_id,omitempty"`
	ReadAt           *time.Time                 `json:"read_at,omitempty"`
	CreatedAt        time.Time                  `json:"created_at"`
}

type Review struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	TaskID     string    `gorm:"size:36;not null;uniqueIndex:idx_review_once" json:"task_id"`
	ReviewerID string    `gorm:"size:36;not null;uniqueIndex:idx_review_once" json:"reviewer_id"`
	RevieweeID string    `gorm:"size:36;index;not null;uniqueIndex:idx_review_once" json:"reviewee_id"`
	Rating     int       `gorm:"not null" json:"rating"`
	ReviewText string    `json:"review_text,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type TaskCompletion struct {
	ID              string                     `gorm:"primaryKey;size:36" json:"id"`
	TaskID          string                     `gorm:"size:36;index;not null" json:"task_id"`
	WorkerID        string                     `gorm:"size:36;not null" json:"worker_id"`
	ClientID        string                     `gorm:"size:36;not null" json:"client_id"`
	CompletionNote  string                     `gorm:"not null" json:"completion_note"`
	CompletionFiles string                     `json:"completion_files,omitempty"`
	SubmittedAt     time.Time                  `json:"submitted_at"`
	ClientApproved  bool                       `gorm:"not null;default:false" json:"client_approved"`
	ClientFeedback  *string                    `json:"client_feedback,omitempty"`
	ClientRating    *int                       `json:"client_rating,omitempty"`
	ApprovedAt      *time.Time                 `json:"approved_at,omitempty"`
	Status          constants.CompletionStatus `gorm:"type:varchar(20);not null" json:"status"`
}

type Subscriber struct {
	UserID           string     `gorm:"primaryKey;size:36" json:"user_id"`
	Email            string     `gorm:"not null" json:"email"`
	Subscribed       bool       `gorm:"not null;default:false" json:"subscribed"`
	SubscriptionTier *string    `json:"subscription_tier,omitempty"`
	SubscriptionEnd  *time.Time `json:"subscription_end,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// All lists every table the service migrates at startup.
func All() []any {
	return []any{
		&User{},
		&UserProfile{},
		&Task{},
		&Bid{},
		&ChatMessage{},
		&Notification{},
		&Review{},
		&TaskCompletion{},
		&Subscriber{},
	}
}
