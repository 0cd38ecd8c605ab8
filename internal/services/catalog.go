package services

import (
	"context"
	"sort"
	"strings"

	"github.com/sahayuk/sahayuk/internal/constants"
	"github.com/sahayuk/sahayuk/internal/geo"
	model "github.com/sahayuk/sahayuk/internal/models"
)

// CatalogFilter narrows the open-task listing. An empty field means "all".
// Lat/Lng is the browsing worker's fix; when absent the default city
// coordinates stand in, matching the app's geolocation fallback.
type CatalogFilter struct {
	Query    string
	Category string
	Urgency  constants.Urgency
	Lat      *float64
	Lng      *float64
}

type TaskView struct {
	model.Task
	Distance *float64 `json:"distance,omitempty"`
}

// Browse lists open tasks filtered by free text, category and urgency,
// sorted nearest first, then by urgency, then newest first.
func (s *TaskService) Browse(ctx context.Context, f CatalogFilter) ([]TaskView, error) {
	tasks, err := s.taskRepo.ListOpen(ctx)
	if err != nil {
		return nil, err
	}

	lat, lng := constants.DefaultLat, constants.DefaultLng
	if f.Lat != nil && f.Lng != nil {
		lat, lng = *f.Lat, *f.Lng
	}

	views := make([]TaskView, 0, len(tasks))
	for _, t := range tasks {
		if !matchesFilter(&t, f) {
			continue
		}

		view := TaskView{Task: t}
		if t.LocationLat != 0 || t.LocationLng != 0 {
			d := geo.Distance(lat, lng, t.LocationLat, t.LocationLng)
			view.Distance = &d
		}
		views = append(views, view)
	}

	sortCatalog(views)
	return views, nil
}

func matchesFilter(t *model.Task, f CatalogFilter) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		if !strings.Contains(strings.ToLower(t.Title), q) &&
			!strings.Contains(strings.ToLower(t.Description), q) &&
			!strings.Contains(strings.ToLower(t.LocationAddress), q) {
			return false
		}
	}

	if f.Category != "" && f.Category != "all" && t.Category != f.Category {
		return false
	}

	if f.Urgency != "" && f.Urgency != "all" && t.Urgency != f.Urgency {
		return false
	}

	return true
}

// sortCatalog orders by ascending distance when both sides have one,
// then urgency rank, then most recent. The stable sort keeps the order
// deterministic across runs.
func sortCatalog(views []TaskView) {
	sort.SliceStable(views, func(i, j int) bool {
		a, b := views[i], views[j]

		if a.Distance != nil && b.Distance != nil && *a.Distance != *b.Distance {
			return *a.Distance < *b.Distance
		}

		ar, br := constants.UrgencyRank(a.Urgency), constants.UrgencyRank(b.Urgency)
		if ar != br {
			return ar < br
		}

		return a.CreatedAt.After(b.CreatedAt)
	})
}
