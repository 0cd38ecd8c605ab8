package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sahayuk/sahayuk/internal/constants"
	apperrors "github.com/sahayuk/sahayuk/internal/errors"
	model "github.com/sahayuk/sahayuk/internal/models"
	"github.com/sahayuk/sahayuk/internal/quota"
	repository "github.com/sahayuk/sahayuk/internal/repositories"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	if err := db.AutoMigrate(model.All()...); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)

	return db
}

type testEnv struct {
	db       *gorm.DB
	users    *repository.UserRepository
	profiles *repository.ProfileRepository
	tasks    *repository.TaskRepository
	bids     *repository.BidRepository

	quota       quota.Counter
	notifier    *Notifier
	taskService *TaskService
	bidService  *BidService
}

func newTestEnv(t *testing.T) *testEnv {
	db := setupTestDB(t)

	users := repository.NewUserRepository(db)
	profiles := repository.NewProfileRepository(db)
	tasks := repository.NewTaskRepository(db)
	bids := repository.NewBidRepository(db)
	notifications := repository.NewNotificationRepository(db)

	notifier := NewNotifier(notifications, tasks, profiles, 1, 64)
	counter := quota.NewMemoryCounter()

	return &testEnv{
		db:          db,
		users:       users,
		profiles:    profiles,
		tasks:       tasks,
		bids:        bids,
		quota:       counter,
		notifier:    notifier,
		taskService: NewTaskService(tasks, bids, profiles, counter, notifier),
		bidService:  NewBidService(db, notifier),
	}
}

// drain waits for the notifier workers to finish delivering everything
// enqueued so far. The notifier cannot be used afterwards.
func (e *testEnv) drain() {
	e.notifier.Shutdown(context.Background())
}

func (e *testEnv) createUser(t *testing.T, email, firstName string) string {
	t.Helper()

	user, err := e.users.Create(context.Background(), email, "hash")
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	profile, err := e.profiles.Create(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}

	profile.FirstName = firstName
	profile.LastName = "Tester"
	profile.Phone = "9999999999"
	profile.ProfileCompleted = true
	if err := e.profiles.Update(context.Background(), profile); err != nil {
		t.Fatalf("failed to update profile: %v", err)
	}

	return user.ID
}

// createBareUser signs a user up without completing the profile.
func (e *testEnv) createBareUser(t *testing.T, email string) string {
	t.Helper()

	user, err := e.users.Create(context.Background(), email, "hash")
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	if _, err := e.profiles.Create(context.Background(), user.ID); err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}
	return user.ID
}

func (e *testEnv) postTask(t *testing.T, clientID, title string) *model.Task {
	t.Helper()

	task, err := e.taskService.Post(context.Background(), clientID, PostTaskInput{
		Title:       title,
		Description: "desc",
		Category:    "home",
	})
	if err != nil {
		t.Fatalf("failed to post task %q: %v", title, err)
	}
	return task
}

func TestTaskService_PostAppliesDefaults(t *testing.T) {
	env := newTestEnv(t)
	defer env.drain()

	clientID := env.createUser(t, "client@example.com", "Asha")

	task, err := env.taskService.Post(context.Background(), clientID, PostTaskInput{
		Title:       "Fix leaking tap",
		Description: "Kitchen tap drips",
		Category:    "plumbing-nonsense",
		Urgency:     "asap",
	})
	if err != nil {
		t.Fatalf("failed to post task: %v", err)
	}

	if task.Category != "other" {
		t.Errorf("expected unknown category to fall back to other, got %s", task.Category)
	}
	if task.Urgency != constants.UrgencyNormal {
		t.Errorf("expected unknown urgency to fall back to normal, got %s", task.Urgency)
	}
	if task.LocationAddress != constants.DefaultAddress {
		t.Errorf("expected default address, got %s", task.LocationAddress)
	}
	if task.LocationLat != constants.DefaultLat || task.LocationLng != constants.DefaultLng {
		t.Errorf("expected default coordinates, got %f,%f", task.LocationLat, task.LocationLng)
	}
	if task.VisibilityRadius != constants.VisibilityRadiusFree {
		t.Errorf("expected free tier radius %d, got %d", constants.VisibilityRadiusFree, task.VisibilityRadius)
	}
	if task.Status != constants.TaskOpen {
		t.Errorf("expected open status, got %s", task.Status)
	}
	if task.ExpiresAt.IsZero() {
		t.Error("expected expiry to be set")
	}
}

func TestTaskService_PostRequiresCompleteProfile(t *testing.T) {
	env := newTestEnv(t)
	defer env.drain()

	bareID := env.createBareUser(t, "newbie@example.com")

	_, err := env.taskService.Post(context.Background(), bareID, PostTaskInput{
		Title:       "Too soon",
		Description: "desc",
	})
	if err != apperrors.ErrProfileIncomplete {
		t.Errorf("expected incomplete-profile error, got %v", err)
	}

	// Filling in name and phone unlocks posting.
	profile, err := env.profiles.FindByUserID(context.Background(), bareID)
	if err != nil {
		t.Fatalf("failed to load profile: %v", err)
	}
	profile.FirstName = "Nisha"
	profile.LastName = "Tester"
	profile.Phone = "8888888888"
	profile.ProfileCompleted = true
	if err := env.profiles.Update(context.Background(), profile); err != nil {
		t.Fatalf("failed to update profile: %v", err)
	}

	if _, err := env.taskService.Post(context.Background(), bareID, PostTaskInput{
		Title:       "Ready now",
		Description: "desc",
	}); err != nil {
		t.Errorf("completed profile should post: %v", err)
	}
}

func TestTaskService_FreeQuotaEnforced(t *testing.T) {
	env := newTestEnv(t)
	defer env.drain()

	clientID := env.createUser(t, "client@example.com", "Asha")

	for i := 0; i < constants.FreeMonthlyTaskLimit; i++ {
		env.postTask(t, clientID, fmt.Sprintf("Task %d", i))
	}

	_, err := env.taskService.Post(context.Background(), clientID, PostTaskInput{
		Title:       "One too many",
		Description: "desc",
	})
	if err != apperrors.ErrQuotaExceeded {
		t.Errorf("expected quota error on post %d, got %v", constants.FreeMonthlyTaskLimit+1, err)
	}
}

func TestTaskService_ProPostsUnlimited(t *testing.T) {
	env := newTestEnv(t)
	defer env.drain()

	clientID := env.createUser(t, "pro@example.com", "Ravi")
	if err := env.profiles.SetSubscription(context.Background(), clientID, constants.SubscriptionPro); err != nil {
		t.Fatalf("failed to upgrade profile: %v", err)
	}

	for i := 0; i < constants.FreeMonthlyTaskLimit+2; i++ {
		task := env.postTask(t, clientID, fmt.Sprintf("Pro task %d", i))
		if task.VisibilityRadius != constants.VisibilityRadiusPro {
			t.Errorf("expected pro radius %d, got %d", constants.VisibilityRadiusPro, task.VisibilityRadius)
		}
	}
}

func TestTaskService_ConcurrentPostsHonorQuota(t *testing.T) {
	env := newTestEnv(t)
	defer env.drain()

	clientID := env.createUser(t, "client@example.com", "Asha")

	const attempts = 10
	var wg sync.WaitGroup
	wg.Add(attempts)

	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		go func(idx int) {
			defer wg.Done()
			_, err := env.taskService.Post(context.Background(), clientID, PostTaskInput{
				Title:       fmt.Sprintf("Race %d", idx),
				Description: "desc",
			})
			results <- err
		}(i)
	}

	wg.Wait()
	close(results)

	granted := 0
	for err := range results {
		if err == nil {
			granted++
		} else if err != apperrors.ErrQuotaExceeded {
			t.Errorf("unexpected error: %v", err)
		}
	}

	if granted != constants.FreeMonthlyTaskLimit {
		t.Errorf("expected exactly %d posts to succeed, got %d", constants.FreeMonthlyTaskLimit, granted)
	}
}

func TestTaskService_DeleteRules(t *testing.T) {
	env := newTestEnv(t)
	defer env.drain()

	clientID := env.createUser(t, "client@example.com", "Asha")
	otherID := env.createUser(t, "other@example.com", "Meera")
	task := env.postTask(t, clientID, "Deletable")

	if err := env.taskService.Delete(context.Background(), task.ID, otherID); err != apperrors.ErrForbidden {
		t.Errorf("expected forbidden for non-owner, got %v", err)
	}

	if err := env.taskService.Delete(context.Background(), task.ID, clientID); err != nil {
		t.Errorf("owner should delete an open task: %v", err)
	}

	assigned := env.postTask(t, clientID, "Assigned")
	workerID := env.createUser(t, "worker@example.com", "Vikram")
	bid, err := env.bidService.Submit(context.Background(), assigned.ID, workerID, 500, "")
	if err != nil {
		t.Fatalf("failed to bid: %v", err)
	}
	if _, err := env.bidService.Accept(context.Background(), bid.ID, clientID); err != nil {
		t.Fatalf("failed to accept: %v", err)
	}

	if err := env.taskService.Delete(context.Background(), assigned.ID, clientID); err != apperrors.ErrTaskAssignedDelete {
		t.Errorf("expected assigned-delete error, got %v", err)
	}
}

func TestTaskService_Stats(t *testing.T) {
	env := newTestEnv(t)
	defer env.drain()

	clientID := env.createUser(t, "client@example.com", "Asha")
	workerID := env.createUser(t, "worker@example.com", "Vikram")

	open := env.postTask(t, clientID, "Open one")
	assigned := env.postTask(t, clientID, "Assigned one")
	_ = open

	bid, err := env.bidService.Submit(context.Background(), assigned.ID, workerID, 300, "")
	if err != nil {
		t.Fatalf("failed to bid: %v", err)
	}
	if _, err := env.bidService.Accept(context.Background(), bid.ID, clientID); err != nil {
		t.Fatalf("failed to accept: %v", err)
	}

	clientStats, err := env.taskService.Stats(context.Background(), clientID)
	if err != nil {
		t.Fatalf("failed to load stats: %v", err)
	}
	if clientStats.TasksPosted != 2 || clientStats.ActiveTasks != 2 {
		t.Errorf("unexpected client stats: %+v", clientStats)
	}

	workerStats, err := env.taskService.Stats(context.Background(), workerID)
	if err != nil {
		t.Fatalf("failed to load stats: %v", err)
	}
	if workerStats.TotalBids != 1 || workerStats.AcceptedBids != 1 || workerStats.TasksWorking != 1 {
		t.Errorf("unexpected worker stats: %+v", workerStats)
	}
}
