package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// TokenStore guarda el bearer token entre sesiones. *Prefs lo implementa.
type TokenStore interface {
	Token() string
	SetToken(token string) error
	ClearToken() error
}

// APIError es un error devuelto por el server con su status y mensaje.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// Client habla con el REST API de ReelVault. Adjunta el bearer token
// cuando hay uno; ante un 401 limpia el token guardado y dispara
// OnUnauthorized (el hook de "volver al login").
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenStore

	OnUnauthorized func()
}

func New(baseURL string, tokens TokenStore) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		tokens:  tokens,
	}
}

// ==================== tipos de respuesta ====================

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Bio      string `json:"bio,omitempty"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type Movie struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	PosterPath  string  `json:"poster_path"`
	ReleaseDate string  `json:"release_date"`
	VoteAverage float64 `json:"vote_average"`
}

type SearchResult struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

type WatchlistItem struct {
	ID         string `json:"id"`
	UserID     string `json:"userId"`
	MovieID    int    `json:"movieId"`
	MovieTitle string `json:"movieTitle"`
	PosterPath string `json:"posterPath"`
	Status     string `json:"status"`
}

type watchlistEnvelope struct {
	Success bool            `json:"success"`
	Count   int             `json:"count"`
	Data    []WatchlistItem `json:"data"`
}

type itemEnvelope struct {
	Success bool          `json:"success"`
	Data    WatchlistItem `json:"data"`
}

// ==================== auth ====================

func (c *Client) Register(ctx context.Context, username, email, password, bio string) (*AuthResponse, error) {
	var out AuthResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/register", nil, map[string]string{
		"username": username,
		"email":    email,
		"password": password,
		"bio":      bio,
	}, &out)
	if err != nil {
		return nil, err
	}
	if err := c.tokens.SetToken(out.Token); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var out AuthResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, map[string]string{
		"email":    email,
		"password": password,
	}, &out)
	if err != nil {
		return nil, err
	}
	if err := c.tokens.SetToken(out.Token); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Logout() error {
	return c.tokens.ClearToken()
}

// ==================== catálogo ====================

func (c *Client) SearchMovies(ctx context.Context, query string, page int) (*SearchResult, error) {
	q := url.Values{"query": {query}}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	var out SearchResult
	if err := c.do(ctx, http.MethodGet, "/api/movies/search", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) PopularMovies(ctx context.Context, page int) (*SearchResult, error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	var out SearchResult
	if err := c.do(ctx, http.MethodGet, "/api/movies/popular", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) TrendingMovies(ctx context.Context, timeWindow string) (*SearchResult, error) {
	q := url.Values{}
	if timeWindow != "" {
		q.Set("timeWindow", timeWindow)
	}
	var out SearchResult
	if err := c.do(ctx, http.MethodGet, "/api/movies/trending", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ==================== watchlist ====================

func (c *Client) Watchlist(ctx context.Context, userID, status string) ([]WatchlistItem, error) {
	q := url.Values{}
	if status != "" {
		q.Set("status", status)
	}
	var out watchlistEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/watchlist/"+userID, q, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) AddToWatchlist(ctx context.Context, movieID int, title, posterPath string) (*WatchlistItem, error) {
	var out itemEnvelope
	err := c.do(ctx, http.MethodPost, "/api/watchlist", nil, map[string]any{
		"movieId":    movieID,
		"movieTitle": title,
		"posterPath": posterPath,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (c *Client) SetWatchlistStatus(ctx context.Context, id, status string) (*WatchlistItem, error) {
	var out itemEnvelope
	err := c.do(ctx, http.MethodPatch, "/api/watchlist/"+id, nil, map[string]string{
		"status": status,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (c *Client) RemoveFromWatchlist(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/watchlist/"+id, nil, nil, nil)
}

// ==================== ratings ====================

func (c *Client) SubmitRating(ctx context.Context, movieID, rating int) error {
	return c.do(ctx, http.MethodPost, "/api/ratings", nil, map[string]int{
		"movieId": movieID,
		"rating":  rating,
	}, nil)
}

// ==================== transporte ====================

func (c *Client) do(
	ctx context.Context,
	method, path string,
	query url.Values,
	body, out any,
) error {

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var buf *bytes.Buffer
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		buf = bytes.NewBuffer(b)
	} else {
		buf = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, buf)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		// token vencido o inválido: se limpia y se avisa a la UI
		_ = c.tokens.ClearToken()
		if c.OnUnauthorized != nil {
			c.OnUnauthorized()
		}
	}

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: apiErr.Message}
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
