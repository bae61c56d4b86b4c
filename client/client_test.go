package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPrefs(t *testing.T) *Prefs {
	t.Helper()
	p, err := LoadPrefs(filepath.Join(t.TempDir(), "prefs.json"))
	require.NoError(t, err)
	return p
}

func TestClientAttachesBearerToken(t *testing.T) {
	prefs := newTestPrefs(t)
	require.NoError(t, prefs.SetToken("un.token.jwt"))

	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"count":0,"data":[]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, prefs)
	_, err := c.Watchlist(context.Background(), "64f000000000000000000001", "")
	require.NoError(t, err)
	assert.Equal(t, "Bearer un.token.jwt", gotAuth)
}

func TestClientLoginStoresToken(t *testing.T) {
	prefs := newTestPrefs(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"nuevo.token.jwt","user":{"id":"64f000000000000000000001","username":"cinefilo","email":"cine@example.com"}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, prefs)
	out, err := c.Login(context.Background(), "cine@example.com", "secreto1")
	require.NoError(t, err)
	assert.Equal(t, "cinefilo", out.User.Username)
	assert.Equal(t, "nuevo.token.jwt", prefs.Token())
}

func TestClientUnauthorizedClearsTokenAndNotifies(t *testing.T) {
	prefs := newTestPrefs(t)
	require.NoError(t, prefs.SetToken("token.vencido"))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"invalid token"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, prefs)
	kicked := false
	c.OnUnauthorized = func() { kicked = true }

	_, err := c.Watchlist(context.Background(), "64f000000000000000000001", "")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "invalid token", apiErr.Message)

	// el token guardado se limpia y la UI vuelve al login
	assert.Empty(t, prefs.Token())
	assert.True(t, kicked)
}

func TestClientDecodesAPIError(t *testing.T) {
	prefs := newTestPrefs(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"duplicate: movie already in watchlist"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, prefs)
	_, err := c.AddToWatchlist(context.Background(), 438631, "Dune", "/poster.jpg")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Contains(t, apiErr.Message, "already in watchlist")
}

func TestClientSearchMovies(t *testing.T) {
	prefs := newTestPrefs(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/movies/search", r.URL.Path)
		assert.Equal(t, "dune", r.URL.Query().Get("query"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"page":1,"results":[{"id":438631,"title":"Dune"}],"total_pages":1,"total_results":1}`))
	}))
	defer srv.Close()

	c := New(srv.URL, prefs)
	out, err := c.SearchMovies(context.Background(), "dune", 0)
	require.NoError(t, err)
	require.Len(t, out.Results, 1)
	assert.Equal(t, "Dune", out.Results[0].Title)
}
