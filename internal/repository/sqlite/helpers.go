package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"threatlens/internal/domain"
)

// viewRow holds all columns from a saved_views query for scanning
type viewRow struct {
	Name          string
	Zoom          float64
	PanX          float64
	PanY          float64
	PositionsJSON sql.NullString
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// scanArgs returns pointers to all fields for sql.Scan().
// MUST match the SELECT column order:
// name, zoom, pan_x, pan_y, positions, created_at, updated_at
func (r *viewRow) scanArgs() []interface{} {
	return []interface{}{
		&r.Name,
		&r.Zoom,
		&r.PanX,
		&r.PanY,
		&r.PositionsJSON,
		&r.CreatedAt,
		&r.UpdatedAt,
	}
}

// toDomain converts the scanned row to a domain.SavedView
func (r *viewRow) toDomain() (*domain.SavedView, error) {
	view := &domain.SavedView{
		Name:      r.Name,
		Zoom:      r.Zoom,
		Pan:       domain.Position{X: r.PanX, Y: r.PanY},
		Positions: make(map[string]domain.Position),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}

	if r.PositionsJSON.Valid && r.PositionsJSON.String != "" {
		if err := json.Unmarshal([]byte(r.PositionsJSON.String), &view.Positions); err != nil {
			return nil, fmt.Errorf("unmarshal positions: %w", err)
		}
	}

	return view, nil
}

// marshalPositions marshals the position map to a nullable JSON string.
// Empty maps store as NULL rather than "{}".
func marshalPositions(positions map[string]domain.Position) (sql.NullString, error) {
	if len(positions) == 0 {
		return sql.NullString{}, nil
	}

	data, err := json.Marshal(positions)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}
