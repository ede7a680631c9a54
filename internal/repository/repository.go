package repository

import (
	"context"

	"threatlens/internal/domain"
)

// ViewStore defines the interface for saved-view persistence
type ViewStore interface {
	// SaveView inserts or replaces a view by name
	SaveView(ctx context.Context, view *domain.SavedView) error

	// GetView returns the view with the given name, or nil if absent
	GetView(ctx context.Context, name string) (*domain.SavedView, error)

	// ListViews returns all saved views ordered by name
	ListViews(ctx context.Context) ([]domain.SavedView, error)

	// DeleteView removes a view; deleting an absent view is not an error
	DeleteView(ctx context.Context, name string) error

	// Close releases resources
	Close() error
}
