package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"reelvault/internal/cache"
	"reelvault/internal/models"
)

// TTLs de cache por tipo de listado (segundos)
const (
	cacheTTLPopular  = 600
	cacheTTLTrending = 600
	cacheTTLDetails  = 3600
)

// CatalogService es un passthrough al catálogo externo (TMDB): valida
// parámetros localmente, delega, y re-emite la respuesta sin tocarla.
type CatalogService struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewCatalogService(apiKey, baseURL string) *CatalogService {
	return &CatalogService{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (s *CatalogService) Search(ctx context.Context, query string, page int) (json.RawMessage, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: search query is required", ErrValidation)
	}
	if page <= 0 {
		page = 1
	}
	return s.get(ctx, "/search/movie", url.Values{
		"query": {query},
		"page":  {strconv.Itoa(page)},
	})
}

func (s *CatalogService) Details(ctx context.Context, movieID int) (json.RawMessage, error) {
	if movieID <= 0 {
		return nil, fmt.Errorf("%w: movie id is required", ErrValidation)
	}
	key := fmt.Sprintf("catalog:details:%d", movieID)
	return s.getCached(ctx, key, cacheTTLDetails, fmt.Sprintf("/movie/%d", movieID), nil)
}

func (s *CatalogService) Popular(ctx context.Context, page int) (json.RawMessage, error) {
	if page <= 0 {
		page = 1
	}
	key := fmt.Sprintf("catalog:popular:%d", page)
	return s.getCached(ctx, key, cacheTTLPopular, "/movie/popular", url.Values{
		"page": {strconv.Itoa(page)},
	})
}

func (s *CatalogService) Trending(ctx context.Context, timeWindow string) (json.RawMessage, error) {
	if timeWindow == "" {
		timeWindow = "day"
	}
	if timeWindow != "day" && timeWindow != "week" {
		return nil, fmt.Errorf("%w: timeWindow must be day or week", ErrValidation)
	}
	key := "catalog:trending:" + timeWindow
	return s.getCached(ctx, key, cacheTTLTrending, "/trending/movie/"+timeWindow, nil)
}

func (s *CatalogService) Credits(ctx context.Context, movieID int) (json.RawMessage, error) {
	if movieID <= 0 {
		return nil, fmt.Errorf("%w: movie id is required", ErrValidation)
	}
	return s.get(ctx, fmt.Sprintf("/movie/%d/credits", movieID), nil)
}

// Suggest devuelve hasta `limit` resultados de búsqueda, para el
// typeahead. Única operación que sí parsea la página del catálogo.
func (s *CatalogService) Suggest(ctx context.Context, query string, limit int) ([]json.RawMessage, error) {
	raw, err := s.Search(ctx, query, 1)
	if err != nil {
		return nil, err
	}

	var page models.SearchPage
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, fmt.Errorf("%w: bad upstream payload", ErrCatalogUnavailable)
	}
	if limit > 0 && len(page.Results) > limit {
		page.Results = page.Results[:limit]
	}
	return page.Results, nil
}

// ==================== HTTP hacia el catálogo ====================

func (s *CatalogService) getCached(
	ctx context.Context,
	cacheKey string,
	ttlSeconds int,
	path string,
	params url.Values,
) (json.RawMessage, error) {

	var cached json.RawMessage
	if ok, err := cache.GetJSON(ctx, cacheKey, &cached); err == nil && ok {
		return cached, nil
	}

	raw, err := s.get(ctx, path, params)
	if err != nil {
		return nil, err
	}

	if err := cache.SetJSON(ctx, cacheKey, raw, ttlSeconds); err != nil {
		log.Printf("[catalog] no se pudo cachear %s: %v", cacheKey, err)
	}
	return raw, nil
}

// get hace el GET al catálogo. Cualquier falla upstream se colapsa en
// ErrCatalogUnavailable: el detalle se loguea, no se propaga al cliente.
func (s *CatalogService) get(ctx context.Context, path string, params url.Values) (json.RawMessage, error) {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", s.apiKey)

	reqURL := s.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("[catalog] error llamando a %s: %v", path, err)
		return nil, ErrCatalogUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("[catalog] %s devolvió status %d", path, resp.StatusCode)
		return nil, ErrCatalogUnavailable
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("[catalog] error leyendo respuesta de %s: %v", path, err)
		return nil, ErrCatalogUnavailable
	}
	return json.RawMessage(body), nil
}
