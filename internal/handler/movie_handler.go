package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

// CatalogService es el gateway al catálogo externo visto desde el handler.
type CatalogService interface {
	Search(ctx context.Context, query string, page int) (json.RawMessage, error)
	Details(ctx context.Context, movieID int) (json.RawMessage, error)
	Popular(ctx context.Context, page int) (json.RawMessage, error)
	Trending(ctx context.Context, timeWindow string) (json.RawMessage, error)
	Credits(ctx context.Context, movieID int) (json.RawMessage, error)
	Suggest(ctx context.Context, query string, limit int) ([]json.RawMessage, error)
}

type MovieHandler struct {
	svc CatalogService
}

func NewMovieHandler(s CatalogService) *MovieHandler { return &MovieHandler{svc: s} }

func writeRaw(w http.ResponseWriter, raw json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(raw)
}

// @Summary Buscar películas en el catálogo
// @Tags movies
// @Produce json
// @Param query query string true "texto de búsqueda"
// @Param page query int false "página (default: 1)"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Router /api/movies/search [get]
func (h *MovieHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))

	raw, err := h.svc.Search(r.Context(), query, page)
	if err != nil {
		writeError(w, err)
		return
	}
	writeRaw(w, raw)
}

// @Summary Populares del catálogo
// @Tags movies
// @Produce json
// @Param page query int false "página (default: 1)"
// @Success 200 {object} map[string]any
// @Router /api/movies/popular [get]
func (h *MovieHandler) Popular(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))

	raw, err := h.svc.Popular(r.Context(), page)
	if err != nil {
		writeError(w, err)
		return
	}
	writeRaw(w, raw)
}

// @Summary Tendencias del catálogo
// @Tags movies
// @Produce json
// @Param timeWindow query string false "day|week (default: day)"
// @Success 200 {object} map[string]any
// @Router /api/movies/trending [get]
func (h *MovieHandler) Trending(w http.ResponseWriter, r *http.Request) {
	timeWindow := r.URL.Query().Get("timeWindow")

	raw, err := h.svc.Trending(r.Context(), timeWindow)
	if err != nil {
		writeError(w, err)
		return
	}
	writeRaw(w, raw)
}

// @Summary Detalle de película
// @Tags movies
// @Produce json
// @Param id path int true "movieId del catálogo"
// @Success 200 {object} map[string]any
// @Router /api/movies/{id} [get]
func (h *MovieHandler) Details(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))

	raw, err := h.svc.Details(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeRaw(w, raw)
}

// @Summary Créditos (cast y crew) de película
// @Tags movies
// @Produce json
// @Param id path int true "movieId del catálogo"
// @Success 200 {object} map[string]any
// @Router /api/movies/{id}/credits [get]
func (h *MovieHandler) Credits(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))

	raw, err := h.svc.Credits(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeRaw(w, raw)
}

// ==================== typeahead por WebSocket ====================

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

const suggestionLimit = 5

type suggestRequest struct {
	Seq   int    `json:"seq"`
	Query string `json:"query"`
}

type suggestResponse struct {
	Seq     int               `json:"seq"`
	Results []json.RawMessage `json:"results,omitempty"`
	Error   string            `json:"error,omitempty"`
}

// @Summary Sugerencias de búsqueda en tiempo real (WebSocket)
// @Description El cliente manda {seq, query} y recibe {seq, results}. El
// @Description seq le permite descartar respuestas que llegan tarde.
// @Tags movies
// @Router /api/movies/ws/search [get]
func (h *MovieHandler) SearchWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "could not open websocket")
		return
	}
	defer conn.Close()

	for {
		var req suggestRequest
		if err := conn.ReadJSON(&req); err != nil {
			return
		}

		results, err := h.svc.Suggest(r.Context(), req.Query, suggestionLimit)
		if err != nil {
			_ = conn.WriteJSON(suggestResponse{Seq: req.Seq, Error: "search failed"})
			continue
		}
		_ = conn.WriteJSON(suggestResponse{Seq: req.Seq, Results: results})
	}
}
