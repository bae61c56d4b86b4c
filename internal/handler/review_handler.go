package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"reelvault/internal/models"
	"reelvault/internal/service"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReviewService interface {
	ListAll(ctx context.Context, rating, limit, offset int) ([]models.ReviewDoc, int64, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID, limit, offset int) ([]models.ReviewDoc, int64, error)
	ListByMovie(ctx context.Context, movieID, rating, limit, offset int) ([]models.ReviewDoc, int64, error)
	Create(ctx context.Context, ownerID primitive.ObjectID, username string, data service.ReviewCreateData) (*models.ReviewDoc, error)
	Update(ctx context.Context, id, ownerID primitive.ObjectID, reviewText string, rating int) (*models.ReviewDoc, error)
	Delete(ctx context.Context, id, ownerID primitive.ObjectID) error
}

// UsernameResolver saca el username snapshot que guarda cada review.
type UsernameResolver interface {
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.UserDoc, error)
}

type ReviewHandler struct {
	svc   ReviewService
	users UsernameResolver
}

func NewReviewHandler(s ReviewService, users UsernameResolver) *ReviewHandler {
	return &ReviewHandler{svc: s, users: users}
}

// @Summary Listar reviews (paginado, filtro opcional por rating)
// @Tags reviews
// @Produce json
// @Param rating query int false "filtrar por rating exacto (1-5)"
// @Param page query int false "página (default: 1)"
// @Param limit query int false "límite (default: 10)"
// @Success 200 {object} listResponse
// @Router /api/reviews [get]
func (h *ReviewHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	rating, _ := strconv.Atoi(r.URL.Query().Get("rating"))
	page, limit, offset := parsePagination(r, 10)

	docs, total, err := h.svc.ListAll(r.Context(), rating, limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}
	if docs == nil {
		docs = []models.ReviewDoc{}
	}

	writeJSON(w, http.StatusOK, newListResponse(docs, len(docs), total, page, limit))
}

// @Summary Reviews de un usuario (paginado)
// @Tags reviews
// @Produce json
// @Param userId path string true "userId (ObjectID)"
// @Param page query int false "página (default: 1)"
// @Param limit query int false "límite (default: 10)"
// @Success 200 {object} listResponse
// @Router /api/reviews/user/{userId} [get]
func (h *ReviewHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "userId"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid user id")
		return
	}

	page, limit, offset := parsePagination(r, 10)

	docs, total, err := h.svc.ListByUser(r.Context(), userID, limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}
	if docs == nil {
		docs = []models.ReviewDoc{}
	}

	writeJSON(w, http.StatusOK, newListResponse(docs, len(docs), total, page, limit))
}

// @Summary Reviews de una película (paginado, filtro opcional por rating)
// @Tags reviews
// @Produce json
// @Param movieId path int true "movieId del catálogo"
// @Param rating query int false "filtrar por rating exacto (1-5)"
// @Param page query int false "página (default: 1)"
// @Param limit query int false "límite (default: 10)"
// @Success 200 {object} listResponse
// @Router /api/reviews/movie/{movieId} [get]
func (h *ReviewHandler) ListByMovie(w http.ResponseWriter, r *http.Request) {
	movieID, err := strconv.Atoi(chi.URLParam(r, "movieId"))
	if err != nil || movieID <= 0 {
		writeMessage(w, http.StatusBadRequest, "invalid movie id")
		return
	}

	rating, _ := strconv.Atoi(r.URL.Query().Get("rating"))
	page, limit, offset := parsePagination(r, 10)

	docs, total, err := h.svc.ListByMovie(r.Context(), movieID, rating, limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}
	if docs == nil {
		docs = []models.ReviewDoc{}
	}

	writeJSON(w, http.StatusOK, newListResponse(docs, len(docs), total, page, limit))
}

type reviewCreateRequest struct {
	MovieID    int    `json:"movieId"`
	MovieTitle string `json:"movieTitle"`
	PosterPath string `json:"posterPath"`
	ReviewText string `json:"reviewText"`
	Rating     int    `json:"rating"`
}

// @Summary Publicar review
// @Tags reviews
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body reviewCreateRequest true "datos"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Router /api/reviews [post]
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID := UserIDFromContext(r.Context())

	var req reviewCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.users.GetUserByID(r.Context(), ownerID)
	if err != nil {
		writeError(w, err)
		return
	}

	rev, err := h.svc.Create(r.Context(), ownerID, u.Username, service.ReviewCreateData{
		MovieID:    req.MovieID,
		MovieTitle: req.MovieTitle,
		PosterPath: req.PosterPath,
		ReviewText: req.ReviewText,
		Rating:     req.Rating,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"data":    rev,
	})
}

type reviewUpdateRequest struct {
	ReviewText string `json:"reviewText"`
	Rating     int    `json:"rating"`
}

// @Summary Editar review propia
// @Tags reviews
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "reviewId (ObjectID)"
// @Param body body reviewUpdateRequest true "datos"
// @Success 200 {object} map[string]any
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/reviews/{id} [put]
func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid review id")
		return
	}
	ownerID := UserIDFromContext(r.Context())

	var req reviewUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rev, err := h.svc.Update(r.Context(), id, ownerID, req.ReviewText, req.Rating)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    rev,
	})
}

// @Summary Borrar review propia
// @Tags reviews
// @Security BearerAuth
// @Produce json
// @Param id path string true "reviewId (ObjectID)"
// @Success 200 {object} map[string]any
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/reviews/{id} [delete]
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid review id")
		return
	}
	ownerID := UserIDFromContext(r.Context())

	if err := h.svc.Delete(r.Context(), id, ownerID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "review deleted",
	})
}
