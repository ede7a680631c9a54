package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"threatlens/internal/domain"
	"threatlens/internal/service"
)

type fakeViewStore struct {
	views map[string]domain.SavedView
}

func newFakeViewStore() *fakeViewStore {
	return &fakeViewStore{views: make(map[string]domain.SavedView)}
}

func (s *fakeViewStore) SaveView(_ context.Context, view *domain.SavedView) error {
	s.views[view.Name] = *view
	return nil
}

func (s *fakeViewStore) GetView(_ context.Context, name string) (*domain.SavedView, error) {
	view, ok := s.views[name]
	if !ok {
		return nil, nil
	}
	return &view, nil
}

func (s *fakeViewStore) ListViews(_ context.Context) ([]domain.SavedView, error) {
	out := make([]domain.SavedView, 0, len(s.views))
	for _, v := range s.views {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *fakeViewStore) DeleteView(_ context.Context, name string) error {
	delete(s.views, name)
	return nil
}

func (s *fakeViewStore) Close() error { return nil }

func newViewMux() (*http.ServeMux, *fakeViewStore) {
	store := newFakeViewStore()
	vh := NewViewHandler(service.NewViewService(store, service.NewEventBus()))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/views", vh.ListViews)
	mux.HandleFunc("POST /api/views", vh.SaveView)
	mux.HandleFunc("GET /api/views/{name}", vh.GetView)
	mux.HandleFunc("DELETE /api/views/{name}", vh.DeleteView)
	return mux, store
}

func TestSaveAndGetView(t *testing.T) {
	mux, _ := newViewMux()

	body := `{"name": "incident-42", "zoom": 1.5, "pan": {"x": 30, "y": -10}}`
	rec := doRequest(mux, http.MethodPost, "/api/views", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(mux, http.MethodGet, "/api/views/incident-42", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var view domain.SavedView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, "incident-42", view.Name)
	assert.Equal(t, 1.5, view.Zoom)
	assert.Equal(t, 30.0, view.Pan.X)
}

func TestSaveViewClampsZoom(t *testing.T) {
	mux, store := newViewMux()

	rec := doRequest(mux, http.MethodPost, "/api/views", `{"name": "far-out", "zoom": 99}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	saved := store.views["far-out"]
	assert.Equal(t, 3.0, saved.Zoom)
}

func TestSaveViewRejectsMissingName(t *testing.T) {
	mux, _ := newViewMux()

	rec := doRequest(mux, http.MethodPost, "/api/views", `{"zoom": 1.0}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(mux, http.MethodPost, "/api/views", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListViewsOrdered(t *testing.T) {
	mux, _ := newViewMux()

	for _, name := range []string{"zulu", "alpha", "mike"} {
		rec := doRequest(mux, http.MethodPost, "/api/views", `{"name": "`+name+`"}`)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := doRequest(mux, http.MethodGet, "/api/views", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var views []domain.SavedView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &views))
	require.Len(t, views, 3)
	assert.Equal(t, "alpha", views[0].Name)
	assert.Equal(t, "zulu", views[2].Name)
}

func TestGetViewNotFound(t *testing.T) {
	mux, _ := newViewMux()
	rec := doRequest(mux, http.MethodGet, "/api/views/absent", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteView(t *testing.T) {
	mux, store := newViewMux()

	rec := doRequest(mux, http.MethodPost, "/api/views", `{"name": "gone-soon"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(mux, http.MethodDelete, "/api/views/gone-soon", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, store.views)
}
