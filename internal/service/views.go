package service

import (
	"context"
	"fmt"

	"threatlens/internal/domain"
	"threatlens/internal/repository"
	"threatlens/internal/viz"
)

// ViewService manages saved camera and position arrangements
type ViewService struct {
	store    repository.ViewStore
	eventBus *EventBus
}

// NewViewService creates a new view service
func NewViewService(store repository.ViewStore, eventBus *EventBus) *ViewService {
	return &ViewService{store: store, eventBus: eventBus}
}

// SaveView validates and persists a view. Zoom is clamped to the same
// range the camera enforces so a restored view is always valid.
func (s *ViewService) SaveView(ctx context.Context, view *domain.SavedView) error {
	if view.Name == "" {
		return fmt.Errorf("view name required")
	}
	if view.Zoom < viz.DefaultZoomMin {
		view.Zoom = viz.DefaultZoomMin
	}
	if view.Zoom > viz.DefaultZoomMax {
		view.Zoom = viz.DefaultZoomMax
	}

	if err := s.store.SaveView(ctx, view); err != nil {
		return err
	}

	s.eventBus.Publish(Event{
		Type:    EventViewSaved,
		Payload: map[string]string{"name": view.Name},
	})

	return nil
}

// GetView retrieves a view by name
func (s *ViewService) GetView(ctx context.Context, name string) (*domain.SavedView, error) {
	view, err := s.store.GetView(ctx, name)
	if err != nil {
		return nil, err
	}
	if view == nil {
		return nil, fmt.Errorf("view %s not found", name)
	}
	return view, nil
}

// ListViews returns all saved views
func (s *ViewService) ListViews(ctx context.Context) ([]domain.SavedView, error) {
	return s.store.ListViews(ctx)
}

// DeleteView removes a view by name
func (s *ViewService) DeleteView(ctx context.Context, name string) error {
	if err := s.store.DeleteView(ctx, name); err != nil {
		return err
	}

	s.eventBus.Publish(Event{
		Type:    EventViewDeleted,
		Payload: map[string]string{"name": name},
	})

	return nil
}
