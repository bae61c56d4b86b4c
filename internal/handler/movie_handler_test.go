package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"reelvault/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMovieSearchPassthrough(t *testing.T) {
	svc := new(mockCatalogService)
	h := NewMovieHandler(svc)

	upstream := `{"page":1,"results":[{"id":438631,"title":"Dune"}],"total_pages":1,"total_results":1}`
	svc.On("Search", mock.Anything, "dune", 2).Return(json.RawMessage(upstream), nil)

	r := httptest.NewRequest(http.MethodGet, "/api/movies/search?query=dune&page=2", nil)
	w := httptest.NewRecorder()

	h.Search(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, upstream, w.Body.String())
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
}

func TestMovieSearchMissingQuery(t *testing.T) {
	svc := new(mockCatalogService)
	h := NewMovieHandler(svc)

	svc.On("Search", mock.Anything, "", 0).
		Return(nil, fmt.Errorf("%w: search query is required", service.ErrValidation))

	r := httptest.NewRequest(http.MethodGet, "/api/movies/search", nil)
	w := httptest.NewRecorder()

	h.Search(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMovieDetailsUpstreamDown(t *testing.T) {
	svc := new(mockCatalogService)
	h := NewMovieHandler(svc)

	svc.On("Details", mock.Anything, 438631).Return(nil, service.ErrCatalogUnavailable)

	r := withURLParam(httptest.NewRequest(http.MethodGet, "/api/movies/438631", nil), "id", "438631")
	w := httptest.NewRecorder()

	h.Details(w, r)

	// la caída del catálogo se reporta como bad gateway, sin detalle interno
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "movie catalog is unavailable, try again later", decodeBody(w)["message"])
}

func TestMovieTrendingDefaultWindow(t *testing.T) {
	svc := new(mockCatalogService)
	h := NewMovieHandler(svc)

	svc.On("Trending", mock.Anything, "").Return(json.RawMessage(`{"results":[]}`), nil)

	r := httptest.NewRequest(http.MethodGet, "/api/movies/trending", nil)
	w := httptest.NewRecorder()

	h.Trending(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}
