package services

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/sahayuk/sahayuk/internal/constants"
	model "github.com/sahayuk/sahayuk/internal/models"
	repository "github.com/sahayuk/sahayuk/internal/repositories"
)

// NotificationEvent describes something that happened to a task or bid.
// Workers turn events into notification rows, resolving names and titles
// off the request path.
type NotificationEvent struct {
	Kind    constants.NotificationType
	UserID  string
	TaskID  string
	ActorID string
	Amount  float64
}

// Notifier fans notification events out through a bounded worker pool.
// Delivery is best effort: a full queue drops the event with a log line
// and never fails the operation that produced it.
type Notifier struct {
	queue chan NotificationEvent
	wg    sync.WaitGroup

	notificationRepo *repository.NotificationRepository
	taskRepo         *repository.TaskRepository
	profileRepo      *repository.ProfileRepository
}

func NewNotifier(
	notificationRepo *repository.NotificationRepository,
	taskRepo *repository.TaskRepository,
	profileRepo *repository.ProfileRepository,
	workers int,
	queueSize int,
) *Notifier {
	n := &Notifier{
		queue:            make(chan NotificationEvent, queueSize),
		notificationRepo: notificationRepo,
		taskRepo:         taskRepo,
		profileRepo:      profileRepo,
	}

	for i := 1; i <= workers; i++ {
		n.wg.Add(1)
		go n.worker(i)
	}

	return n
}

func (n *Notifier) Enqueue(ev NotificationEvent) bool {
	select {
	case n.queue <- ev:
		return true
	default:
		log.Printf("notifier: queue full, dropping %s event for user %s", ev.Kind, ev.UserID)
		return false
	}
}

func (n *Notifier) worker(workerID int) {
	defer n.wg.Done()

	for ev := range n.queue {
		if err := n.deliver(ev); err != nil {
			log.Printf("notifier worker %d: failed to deliver %s to %s: %v",
				workerID, ev.Kind, ev.UserID, err)
		}
	}
}

func (n *Notifier) deliver(ev NotificationEvent) error {
	ctx := context.Background()

	title, message := n.render(ctx, ev)
	if title == "" {
		return fmt.Errorf("unknown notification kind %q", ev.Kind)
	}

	notification := &model.Notification{
		UserID:           ev.UserID,
		Title:            title,
		Message:          message,
		NotificationType: ev.Kind,
	}
	if ev.TaskID != "" {
		taskID := ev.TaskID
		notification.RelatedTaskID = &taskID
	}
	if ev.ActorID != "" {
		actorID := ev.ActorID
		notification.RelatedUserID = &actorID
	}

	return n.notificationRepo.Create(ctx, notification)
}

func (n *Notifier) render(ctx context.Context, ev NotificationEvent) (string, string) {
	taskTitle := n.taskTitle(ctx, ev.TaskID)

	switch ev.Kind {
	case constants.NotifyNewBid:
		return "New Bid Received", fmt.Sprintf(
			"%s placed a bid of ₹%.0f on %q", n.actorName(ctx, ev.ActorID), ev.Amount, taskTitle)
	case constants.NotifyTaskAssigned:
		return "Task Assigned", fmt.Sprintf(
			"Congratulations! You have been assigned to work on %q for ₹%.0f", taskTitle, ev.Amount)
	case constants.NotifyBidRejected:
		return "Bid Not Selected", fmt.Sprintf(
			"Your bid for %q was not selected. Don't worry, there are more opportunities!", taskTitle)
	case constants.NotifyTaskCompleted:
		return "Task Completed", fmt.Sprintf("The task %q has been completed", taskTitle)
	case constants.NotifyNewTask:
		return "New Task Available", fmt.Sprintf("A new task %q is available in your area", taskTitle)
	default:
		return "", ""
	}
}

func (n *Notifier) taskTitle(ctx context.Context, taskID string) string {
	if taskID == "" {
		return "a task"
	}
	task, err := n.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return "a task"
	}
	return task.Title
}

func (n *Notifier) actorName(ctx context.Context, actorID string) string {
	if actorID == "" {
		return "Someone"
	}
	profile, err := n.profileRepo.FindByUserID(ctx, actorID)
	if err != nil || profile.FullName() == "" {
		return "Someone"
	}
	return profile.FullName()
}

// Shutdown stops accepting events and waits for in-flight deliveries.
func (n *Notifier) Shutdown(ctx context.Context) {
	close(n.queue)

	done := make(chan struct{})
	go func() {
		n.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Println("notifier shut down cleanly")
	case <-ctx.Done():
		log.Println("notifier shutdown timed out")
	}
}
