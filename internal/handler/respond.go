package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"reelvault/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

// writeError es el único punto donde la taxonomía de errores del
// service se traduce a status HTTP. Lo no anticipado es 500 con
// mensaje genérico: el texto interno se loguea, nunca se devuelve.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrDuplicate):
		writeMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		writeMessage(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, service.ErrInvalidToken):
		writeMessage(w, http.StatusUnauthorized, "invalid token")
	case errors.Is(err, service.ErrForbidden):
		writeMessage(w, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrNotFound):
		writeMessage(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrCatalogUnavailable):
		writeMessage(w, http.StatusBadGateway, "movie catalog is unavailable, try again later")
	default:
		log.Printf("[http] error no manejado: %v", err)
		writeMessage(w, http.StatusInternalServerError, "internal server error")
	}
}

// listResponse es el sobre común de los listados paginados.
type listResponse struct {
	Success bool  `json:"success"`
	Count   int   `json:"count"`
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	Pages   int   `json:"pages"`
	Data    any   `json:"data"`
}

func newListResponse(data any, count int, total int64, page, limit int) listResponse {
	pages := int((total + int64(limit) - 1) / int64(limit))
	return listResponse{
		Success: true,
		Count:   count,
		Total:   total,
		Page:    page,
		Pages:   pages,
		Data:    data,
	}
}

// parsePagination lee page/limit estilo 1-based con defaults.
func parsePagination(r *http.Request, defLimit int) (page, limit, offset int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	if page <= 0 {
		page = 1
	}
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = defLimit
	}
	return page, limit, (page - 1) * limit
}
