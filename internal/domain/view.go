package domain

import "time"

// SavedView captures a named camera state and a set of node positions
// so an operator can return to a hand-tuned arrangement
type SavedView struct {
	Name      string              `json:"name"`
	Zoom      float64             `json:"zoom"`
	Pan       Position            `json:"pan"`
	Positions map[string]Position `json:"positions,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// NewSavedView creates a view with initialized positions
func NewSavedView(name string) *SavedView {
	return &SavedView{
		Name:      name,
		Zoom:      1.0,
		Positions: make(map[string]Position),
	}
}
