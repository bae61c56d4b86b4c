package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"reelvault/internal/models"
	"reelvault/internal/service"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type WatchlistService interface {
	ListByUser(ctx context.Context, userID primitive.ObjectID, status string) ([]models.WatchlistDoc, error)
	Add(ctx context.Context, ownerID primitive.ObjectID, data service.WatchlistAddData) (*models.WatchlistDoc, error)
	UpdateStatus(ctx context.Context, id, ownerID primitive.ObjectID, status string) (*models.WatchlistDoc, error)
	Remove(ctx context.Context, id, ownerID primitive.ObjectID) error
}

type WatchlistHandler struct {
	svc WatchlistService
}

func NewWatchlistHandler(s WatchlistService) *WatchlistHandler {
	return &WatchlistHandler{svc: s}
}

// @Summary Watchlist de un usuario
// @Tags watchlist
// @Security BearerAuth
// @Produce json
// @Param id path string true "userId dueño de la lista (ObjectID)"
// @Param status query string false "want-to-watch|watched"
// @Success 200 {object} map[string]any
// @Router /api/watchlist/{id} [get]
func (h *WatchlistHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid user id")
		return
	}

	status := r.URL.Query().Get("status")

	items, err := h.svc.ListByUser(r.Context(), userID, status)
	if err != nil {
		writeError(w, err)
		return
	}
	if items == nil {
		items = []models.WatchlistDoc{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"count":   len(items),
		"data":    items,
	})
}

type watchlistAddRequest struct {
	MovieID    int    `json:"movieId"`
	MovieTitle string `json:"movieTitle"`
	PosterPath string `json:"posterPath"`
	Status     string `json:"status"`
}

// @Summary Agregar película al watchlist
// @Tags watchlist
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body watchlistAddRequest true "datos"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Router /api/watchlist [post]
func (h *WatchlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	ownerID := UserIDFromContext(r.Context())

	var req watchlistAddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.svc.Add(r.Context(), ownerID, service.WatchlistAddData{
		MovieID:    req.MovieID,
		MovieTitle: req.MovieTitle,
		PosterPath: req.PosterPath,
		Status:     req.Status,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"data":    item,
	})
}

type watchlistStatusRequest struct {
	Status string `json:"status"`
}

// @Summary Cambiar estado de una entrada del watchlist
// @Tags watchlist
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "watchlistId (ObjectID)"
// @Param body body watchlistStatusRequest true "nuevo estado"
// @Success 200 {object} map[string]any
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/watchlist/{id} [patch]
func (h *WatchlistHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid watchlist item id")
		return
	}
	ownerID := UserIDFromContext(r.Context())

	var req watchlistStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.svc.UpdateStatus(r.Context(), id, ownerID, req.Status)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    item,
	})
}

// @Summary Quitar película del watchlist
// @Tags watchlist
// @Security BearerAuth
// @Produce json
// @Param id path string true "watchlistId (ObjectID)"
// @Success 200 {object} map[string]any
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/watchlist/{id} [delete]
func (h *WatchlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid watchlist item id")
		return
	}
	ownerID := UserIDFromContext(r.Context())

	if err := h.svc.Remove(r.Context(), id, ownerID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "movie removed from watchlist",
	})
}
