package client

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder junta las entregas de callbacks de forma segura.
type recorder struct {
	mu          sync.Mutex
	suggestions []string
	results     []string
}

func (r *recorder) onSuggestions(query string, _ []Movie) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.suggestions = append(r.suggestions, query)
}

func (r *recorder) onResults(query string, _ []Movie) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, query)
}

func (r *recorder) snapshotResults() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.results...)
}

func (r *recorder) snapshotSuggestions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.suggestions...)
}

func TestSearcherDebouncesRapidTyping(t *testing.T) {
	var mu sync.Mutex
	var queries []string
	search := func(ctx context.Context, query string) ([]Movie, error) {
		mu.Lock()
		queries = append(queries, query)
		mu.Unlock()
		return []Movie{{ID: 438631, Title: "Dune"}}, nil
	}

	rec := &recorder{}
	s := NewSearcher(search, rec.onSuggestions, rec.onResults)
	s.suggestDelay = 10 * time.Millisecond
	s.searchDelay = 20 * time.Millisecond
	defer s.Close()

	ctx := context.Background()
	// tecleo rápido: cada tecla llega antes de que venza el debounce
	s.Input(ctx, "d")
	s.Input(ctx, "du")
	s.Input(ctx, "dun")

	time.Sleep(150 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	// solo la query final tocó el backend (una vez por cada timer)
	require.NotEmpty(t, queries)
	for _, q := range queries {
		assert.Equal(t, "dun", q)
	}
	assert.Equal(t, []string{"dun"}, rec.snapshotResults())

	suggestions := rec.snapshotSuggestions()
	require.NotEmpty(t, suggestions)
	assert.Equal(t, "dun", suggestions[len(suggestions)-1])
}

func TestSearcherSuggestionCap(t *testing.T) {
	many := make([]Movie, 9)
	search := func(ctx context.Context, query string) ([]Movie, error) {
		return many, nil
	}

	var mu sync.Mutex
	var got []Movie
	done := make(chan struct{})
	s := NewSearcher(search, func(_ string, movies []Movie) {
		mu.Lock()
		got = movies
		mu.Unlock()
		close(done)
	}, nil)
	s.suggestDelay = 5 * time.Millisecond
	s.searchDelay = time.Hour // que no dispare la búsqueda completa
	defer s.Close()

	s.Input(context.Background(), "dune")

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("nunca llegaron las sugerencias")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, got, SuggestLimit)
}

func TestSearcherEmptyQueryClearsImmediately(t *testing.T) {
	search := func(ctx context.Context, query string) ([]Movie, error) {
		return []Movie{{Title: "Dune"}}, nil
	}

	rec := &recorder{}
	s := NewSearcher(search, rec.onSuggestions, rec.onResults)
	s.suggestDelay = 5 * time.Millisecond
	s.searchDelay = 10 * time.Millisecond
	defer s.Close()

	ctx := context.Background()
	s.Input(ctx, "dune")
	time.Sleep(50 * time.Millisecond)

	s.Input(ctx, "")
	time.Sleep(50 * time.Millisecond)

	results := rec.snapshotResults()
	require.Len(t, results, 2)
	assert.Equal(t, "dune", results[0])
	// borrar el input limpia la grilla sin esperar debounce
	assert.Equal(t, "", results[1])
}

func TestSearcherDropsStaleResponses(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	search := func(ctx context.Context, query string) ([]Movie, error) {
		if query == "dune" {
			close(started)
			<-release // la primera búsqueda se queda colgada
		}
		return []Movie{{Title: query}}, nil
	}

	rec := &recorder{}
	s := NewSearcher(search, nil, rec.onResults)
	s.suggestDelay = time.Hour // solo interesa el timer de búsqueda
	s.searchDelay = 5 * time.Millisecond
	defer s.Close()

	ctx := context.Background()
	s.Input(ctx, "dune")
	<-started // la búsqueda vieja ya está en vuelo

	s.Input(ctx, "dune part two")
	time.Sleep(50 * time.Millisecond)

	// recién ahora termina la búsqueda vieja: llega tarde y se descarta
	close(release)
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, []string{"dune part two"}, rec.snapshotResults())
}

func TestSearcherCloseStopsCallbacks(t *testing.T) {
	search := func(ctx context.Context, query string) ([]Movie, error) {
		return []Movie{{Title: query}}, nil
	}

	rec := &recorder{}
	s := NewSearcher(search, rec.onSuggestions, rec.onResults)
	s.suggestDelay = 5 * time.Millisecond
	s.searchDelay = 10 * time.Millisecond

	ctx := context.Background()
	s.Input(ctx, "dune")
	s.Close()

	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, rec.snapshotResults())
	assert.Empty(t, rec.snapshotSuggestions())

	// Input después de Close es un no-op
	s.Input(ctx, "dune part two")
	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, rec.snapshotResults())
}
