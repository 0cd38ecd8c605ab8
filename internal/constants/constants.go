package constants

type TaskStatus string

const (
	TaskOpen       TaskStatus = "open"
	TaskAssigned   TaskStatus = "assigned"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
	TaskCancelled  TaskStatus = "cancelled"
)

type BidStatus string

const (
	BidPending  BidStatus = "pending"
	BidAccepted BidStatus = "accepted"
	BidRejected BidStatus = "rejected"
)

type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyNormal Urgency = "normal"
	UrgencyHigh   Urgency = "high"
	UrgencyUrgent Urgency = "urgent"
)

// UrgencyRank orders tasks for the catalog sort. Unknown values rank as normal.
func UrgencyRank(u Urgency) int {
	switch u {
	case UrgencyUrgent:
		return 0
	case UrgencyHigh:
		return 1
	case UrgencyNormal:
		return 2
	case UrgencyLow:
		return 3
	default:
		return 2
	}
}

var Categories = []string{"home", "delivery", "cleaning", "tech", "care", "events", "other"}

func ValidCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

func ValidUrgency(u Urgency) bool {
	switch u {
	case UrgencyLow, UrgencyNormal, UrgencyHigh, UrgencyUrgent:
		return true
	}
	return false
}

type SubscriptionType string

const (
	SubscriptionFree SubscriptionType = "free"
	SubscriptionPro  SubscriptionType = "pro"
)

type NotificationType string

const (
	NotifyNewTask       NotificationType = "new_task"
	NotifyNewBid        NotificationType = "new_bid"
	NotifyTaskAssigned  NotificationType = "task_assigned"
	NotifyMessage       NotificationType = "message"
	NotifyTaskCompleted NotificationType = "task_completed"
	NotifyBidRejected   NotificationType = "bid_rejected"
)

type CompletionStatus string

const (
	CompletionSubmitted         CompletionStatus = "submitted"
	CompletionApproved          CompletionStatus = "approved"
	CompletionRevisionRequested CompletionStatus = "revision_requested"
)

const (
	// Free posters may publish at most this many tasks per calendar month.
	FreeMonthlyTaskLimit = 3

	// Visibility radius in meters by subscription tier.
	VisibilityRadiusFree = 2000
	VisibilityRadiusPro  = 10000

	// Tasks expire 30 days after posting.
	TaskTTLDays = 30

	// Fallback coordinates when the caller supplies no location fix.
	DefaultLat     = 28.6139
	DefaultLng     = 77.2090
	DefaultAddress = "Delhi, India"
)
