package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"threatlens/internal/domain"
	"threatlens/internal/service"
)

// ViewHandler manages saved camera and position arrangements
type ViewHandler struct {
	views *service.ViewService
}

// NewViewHandler creates a new view handler
func NewViewHandler(views *service.ViewService) *ViewHandler {
	return &ViewHandler{views: views}
}

// ListViews returns all saved views ordered by name
func (h *ViewHandler) ListViews(w http.ResponseWriter, r *http.Request) {
	views, err := h.views.ListViews(r.Context())
	if err != nil {
		log.Printf("Failed to list views: %v", err)
		writeError(w, "Failed to list views", err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, views, http.StatusOK)
}

// SaveView creates or replaces a saved view
func (h *ViewHandler) SaveView(w http.ResponseWriter, r *http.Request) {
	var view domain.SavedView
	if err := json.NewDecoder(r.Body).Decode(&view); err != nil {
		writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.views.SaveView(r.Context(), &view); err != nil {
		if strings.Contains(err.Error(), "required") {
			writeError(w, "Invalid view", err.Error(), http.StatusBadRequest)
			return
		}
		log.Printf("Failed to save view %s: %v", view.Name, err)
		writeError(w, "Failed to save view", err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, view, http.StatusCreated)
}

// GetView returns a saved view by name
func (h *ViewHandler) GetView(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if name == "" {
		writeError(w, "View name required", "", http.StatusBadRequest)
		return
	}

	view, err := h.views.GetView(r.Context(), name)
	if err != nil {
		writeError(w, "View not found", err.Error(), http.StatusNotFound)
		return
	}

	writeJSON(w, view, http.StatusOK)
}

// DeleteView removes a saved view by name
func (h *ViewHandler) DeleteView(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if name == "" {
		writeError(w, "View name required", "", http.StatusBadRequest)
		return
	}

	if err := h.views.DeleteView(r.Context(), name); err != nil {
		log.Printf("Failed to delete view %s: %v", name, err)
		writeError(w, "Failed to delete view", err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
