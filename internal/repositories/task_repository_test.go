package repository

import (
	"context"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sahayuk/sahayuk/internal/constants"
	model "github.com/sahayuk/sahayuk/internal/models"
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

func newOpenTask(clientID string) *model.Task {
	return &model.Task{
		Title:            "Test task",
		Description:      "desc",
		Category:         "other",
		Urgency:          constants.UrgencyNormal,
		ClientID:         clientID,
		Status:           constants.TaskOpen,
		VisibilityRadius: constants.VisibilityRadiusFree,
		ExpiresAt:        time.Now().UTC().Add(24 * time.Hour),
	}
}

func TestTaskRepository_OptimisticLock(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	task := newOpenTask("client-1")
	if err := repo.Create(ctx, task); err != nil {
		t.Fatalf("failed to create: %v", err)
	}
	if task.Version != 1 {
		t.Errorf("expected initial version 1, got %d", task.Version)
	}

	// Two copies of the same row race on the update.
	copyA, err := repo.FindByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}
	copyB, err := repo.FindByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}

	workerA := "worker-a"
	copyA.Status = constants.TaskAssigned
	copyA.WorkerID = &workerA
	if err := repo.Update(ctx, copyA); err != nil {
		t.Fatalf("first update should win: %v", err)
	}
	if copyA.Version != 2 {
		t.Errorf("expected version bump to 2, got %d", copyA.Version)
	}

	workerB := "worker-b"
	copyB.Status = constants.TaskAssigned
	copyB.WorkerID = &workerB
	if err := repo.Update(ctx, copyB); err != ErrOptimisticLock {
		t.Errorf("expected optimistic lock conflict, got %v", err)
	}

	final, err := repo.FindByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("failed to reload: %v", err)
	}
	if final.WorkerID == nil || *final.WorkerID != workerA {
		t.Errorf("expected first writer's assignment to stick, got %v", final.WorkerID)
	}
}

func TestTaskRepository_ExpireOpenTasksBumpsVersion(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	task := newOpenTask("client-1")
	task.ExpiresAt = time.Now().UTC().Add(-time.Minute)
	if err := repo.Create(ctx, task); err != nil {
		t.Fatalf("failed to create: %v", err)
	}

	n, err := repo.ExpireOpenTasks(ctx, time.Now().UTC())
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 expired task, got %d", n)
	}

	// A stale copy held from before the sweep must not win afterwards.
	if err := repo.Update(ctx, task); err != ErrOptimisticLock {
		t.Errorf("expected stale update to conflict after sweep, got %v", err)
	}
}
