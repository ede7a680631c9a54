package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"threatlens/internal/domain"
)

// newTestStore creates a SQLite view store in a temp directory
func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "views.db"))
	require.NoError(t, err)

	t.Cleanup(func() {
		store.Close()
	})
	return store
}

func sampleView(name string) *domain.SavedView {
	view := domain.NewSavedView(name)
	view.Zoom = 1.5
	view.Pan = domain.Position{X: -40, Y: 12}
	view.Positions["host1"] = domain.Position{X: 120, Y: 80}
	view.Positions["user1"] = domain.Position{X: 200, Y: 140}
	return view
}

func TestSaveAndGetView(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveView(ctx, sampleView("incident-42")))

	got, err := store.GetView(ctx, "incident-42")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "incident-42", got.Name)
	assert.Equal(t, 1.5, got.Zoom)
	assert.Equal(t, domain.Position{X: -40, Y: 12}, got.Pan)
	assert.Equal(t, domain.Position{X: 120, Y: 80}, got.Positions["host1"])
	assert.Len(t, got.Positions, 2)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestGetViewAbsent(t *testing.T) {
	store := newTestStore(t)

	got, err := store.GetView(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSaveViewUpsert(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveView(ctx, sampleView("main")))

	updated := sampleView("main")
	updated.Zoom = 0.5
	updated.Positions["proc1"] = domain.Position{X: 1, Y: 2}
	require.NoError(t, store.SaveView(ctx, updated))

	got, err := store.GetView(ctx, "main")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 0.5, got.Zoom)
	assert.Len(t, got.Positions, 3)

	views, err := store.ListViews(ctx)
	require.NoError(t, err)
	assert.Len(t, views, 1, "upsert must not duplicate rows")
}

func TestSaveViewRequiresName(t *testing.T) {
	store := newTestStore(t)
	err := store.SaveView(context.Background(), domain.NewSavedView(""))
	assert.Error(t, err)
}

func TestSaveViewEmptyPositions(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	view := domain.NewSavedView("bare")
	require.NoError(t, store.SaveView(ctx, view))

	got, err := store.GetView(ctx, "bare")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got.Positions)
	assert.Equal(t, 1.0, got.Zoom)
}

func TestListViewsOrdered(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"zulu", "alpha", "mike"} {
		require.NoError(t, store.SaveView(ctx, sampleView(name)))
	}

	views, err := store.ListViews(ctx)
	require.NoError(t, err)
	require.Len(t, views, 3)
	assert.Equal(t, "alpha", views[0].Name)
	assert.Equal(t, "mike", views[1].Name)
	assert.Equal(t, "zulu", views[2].Name)
}

func TestDeleteView(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveView(ctx, sampleView("gone")))
	require.NoError(t, store.DeleteView(ctx, "gone"))

	got, err := store.GetView(ctx, "gone")
	require.NoError(t, err)
	assert.Nil(t, got)

	// Deleting again is not an error
	assert.NoError(t, store.DeleteView(ctx, "gone"))
}
