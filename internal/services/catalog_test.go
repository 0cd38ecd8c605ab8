package services

import (
	"context"
	"testing"

	"github.com/sahayuk/sahayuk/internal/constants"
)

func ptr(v float64) *float64 { return &v }

func TestCatalog_SortsByDistanceThenUrgency(t *testing.T) {
	env := newTestEnv(t)
	defer env.drain()

	clientID := env.createUser(t, "client@example.com", "Asha")

	// Viewer stands at Connaught Place; far task is ~15km south.
	viewerLat, viewerLng := 28.6315, 77.2167

	far, err := env.taskService.Post(context.Background(), clientID, PostTaskInput{
		Title:       "Far urgent task",
		Description: "desc",
		Urgency:     constants.UrgencyUrgent,
		LocationLat: ptr(28.4950),
		LocationLng: ptr(77.0890),
	})
	if err != nil {
		t.Fatalf("failed to post: %v", err)
	}

	nearLow, err := env.taskService.Post(context.Background(), clientID, PostTaskInput{
		Title:       "Near low task",
		Description: "desc",
		Urgency:     constants.UrgencyLow,
		LocationLat: ptr(28.6320),
		LocationLng: ptr(77.2170),
	})
	if err != nil {
		t.Fatalf("failed to post: %v", err)
	}

	views, err := env.taskService.Browse(context.Background(), CatalogFilter{
		Lat: ptr(viewerLat),
		Lng: ptr(viewerLng),
	})
	if err != nil {
		t.Fatalf("failed to browse: %v", err)
	}

	if len(views) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(views))
	}
	if views[0].ID != nearLow.ID {
		t.Errorf("expected nearest task first despite lower urgency, got %s", views[0].Title)
	}
	if views[1].ID != far.ID {
		t.Errorf("expected far task second, got %s", views[1].Title)
	}
	if views[0].Distance == nil || *views[0].Distance > 1000 {
		t.Errorf("expected near task within 1km, got %v", views[0].Distance)
	}
}

func TestCatalog_UrgencyBreaksDistanceTies(t *testing.T) {
	env := newTestEnv(t)
	defer env.drain()

	clientID := env.createUser(t, "client@example.com", "Asha")

	lat, lng := ptr(28.6139), ptr(77.2090)

	normal, err := env.taskService.Post(context.Background(), clientID, PostTaskInput{
		Title: "Same spot normal", Description: "desc",
		Urgency: constants.UrgencyNormal, LocationLat: lat, LocationLng: lng,
	})
	if err != nil {
		t.Fatalf("failed to post: %v", err)
	}

	urgent, err := env.taskService.Post(context.Background(), clientID, PostTaskInput{
		Title: "Same spot urgent", Description: "desc",
		Urgency: constants.UrgencyUrgent, LocationLat: lat, LocationLng: lng,
	})
	if err != nil {
		t.Fatalf("failed to post: %v", err)
	}

	views, err := env.taskService.Browse(context.Background(), CatalogFilter{Lat: lat, Lng: lng})
	if err != nil {
		t.Fatalf("failed to browse: %v", err)
	}

	if len(views) != 2 || views[0].ID != urgent.ID || views[1].ID != normal.ID {
		t.Errorf("expected urgent before normal at equal distance")
	}
}

func TestCatalog_Filters(t *testing.T) {
	env := newTestEnv(t)
	defer env.drain()

	clientID := env.createUser(t, "client@example.com", "Asha")

	env.postTaskWithCategory(t, clientID, "Clean the balcony", "cleaning")
	env.postTaskWithCategory(t, clientID, "Deliver groceries", "delivery")

	byCategory, err := env.taskService.Browse(context.Background(), CatalogFilter{Category: "cleaning"})
	if err != nil {
		t.Fatalf("failed to browse: %v", err)
	}
	if len(byCategory) != 1 || byCategory[0].Category != "cleaning" {
		t.Errorf("expected only the cleaning task, got %d results", len(byCategory))
	}

	byQuery, err := env.taskService.Browse(context.Background(), CatalogFilter{Query: "GROCERIES"})
	if err != nil {
		t.Fatalf("failed to browse: %v", err)
	}
	if len(byQuery) != 1 || byQuery[0].Title != "Deliver groceries" {
		t.Errorf("expected case-insensitive match on title, got %d results", len(byQuery))
	}

	all, err := env.taskService.Browse(context.Background(), CatalogFilter{Category: "all"})
	if err != nil {
		t.Fatalf("failed to browse: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected category=all to match everything, got %d", len(all))
	}
}

func (e *testEnv) postTaskWithCategory(t *testing.T, clientID, title, category string) {
	t.Helper()

	_, err := e.taskService.Post(context.Background(), clientID, PostTaskInput{
		Title:       title,
		Description: "desc",
		Category:    category,
	})
	if err != nil {
		t.Fatalf("failed to post task %q: %v", title, err)
	}
}
