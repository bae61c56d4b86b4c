package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"reelvault/internal/models"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RatingService interface {
	AddOrUpdate(ctx context.Context, ownerID primitive.ObjectID, movieID, rating int) (*models.RatingDoc, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID, limit, offset int) ([]models.RatingDoc, int64, error)
	ListByMovie(ctx context.Context, movieID, limit, offset int) ([]models.RatingDoc, int64, *models.RatingStats, error)
	GetOne(ctx context.Context, userID primitive.ObjectID, movieID int) (*models.RatingDoc, error)
	Delete(ctx context.Context, id, ownerID primitive.ObjectID) error
}

type RatingHandler struct {
	svc RatingService
}

func NewRatingHandler(s RatingService) *RatingHandler { return &RatingHandler{svc: s} }

// @Summary Ratings de un usuario (paginado)
// @Tags ratings
// @Produce json
// @Param userId path string true "userId (ObjectID)"
// @Param page query int false "página (default: 1)"
// @Param limit query int false "límite (default: 20)"
// @Success 200 {object} listResponse
// @Router /api/ratings/user/{userId} [get]
func (h *RatingHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "userId"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid user id")
		return
	}

	page, limit, offset := parsePagination(r, 20)

	docs, total, err := h.svc.ListByUser(r.Context(), userID, limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}
	if docs == nil {
		docs = []models.RatingDoc{}
	}

	writeJSON(w, http.StatusOK, newListResponse(docs, len(docs), total, page, limit))
}

// @Summary Ratings de una película con promedio y cantidad
// @Tags ratings
// @Produce json
// @Param movieId path int true "movieId del catálogo"
// @Param page query int false "página (default: 1)"
// @Param limit query int false "límite (default: 20)"
// @Success 200 {object} map[string]any
// @Router /api/ratings/movie/{movieId} [get]
func (h *RatingHandler) ListByMovie(w http.ResponseWriter, r *http.Request) {
	movieID, err := strconv.Atoi(chi.URLParam(r, "movieId"))
	if err != nil || movieID <= 0 {
		writeMessage(w, http.StatusBadRequest, "invalid movie id")
		return
	}

	page, limit, offset := parsePagination(r, 20)

	docs, total, stats, err := h.svc.ListByMovie(r.Context(), movieID, limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}
	if docs == nil {
		docs = []models.RatingDoc{}
	}

	resp := newListResponse(docs, len(docs), total, page, limit)
	writeJSON(w, http.StatusOK, map[string]any{
		"success":       resp.Success,
		"count":         resp.Count,
		"total":         resp.Total,
		"page":          resp.Page,
		"pages":         resp.Pages,
		"averageRating": stats.Average,
		"ratingCount":   stats.Count,
		"data":          resp.Data,
	})
}

// @Summary Rating de un usuario para una película
// @Tags ratings
// @Produce json
// @Param userId path string true "userId (ObjectID)"
// @Param movieId path int true "movieId del catálogo"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Router /api/ratings/user/{userId}/movie/{movieId} [get]
func (h *RatingHandler) GetUserMovieRating(w http.ResponseWriter, r *http.Request) {
	userID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "userId"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid user id")
		return
	}
	movieID, err := strconv.Atoi(chi.URLParam(r, "movieId"))
	if err != nil || movieID <= 0 {
		writeMessage(w, http.StatusBadRequest, "invalid movie id")
		return
	}

	doc, err := h.svc.GetOne(r.Context(), userID, movieID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    doc,
	})
}

type ratingRequest struct {
	MovieID int `json:"movieId"`
	Rating  int `json:"rating"`
}

// @Summary Crear o pisar rating (upsert)
// @Tags ratings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body ratingRequest true "datos"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Router /api/ratings [post]
func (h *RatingHandler) AddOrUpdate(w http.ResponseWriter, r *http.Request) {
	ownerID := UserIDFromContext(r.Context())

	var req ratingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	doc, err := h.svc.AddOrUpdate(r.Context(), ownerID, req.MovieID, req.Rating)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"data":    doc,
	})
}

// @Summary Borrar rating propio
// @Tags ratings
// @Security BearerAuth
// @Produce json
// @Param id path string true "ratingId (ObjectID)"
// @Success 200 {object} map[string]any
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/ratings/{id} [delete]
func (h *RatingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid rating id")
		return
	}
	ownerID := UserIDFromContext(r.Context())

	if err := h.svc.Delete(r.Context(), id, ownerID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "rating deleted",
	})
}
