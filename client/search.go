package client

import (
	"context"
	"sync"
	"time"
)

// Delays de los dos debounce: sugerencias rápidas, búsqueda completa
// más lenta para no saturar el catálogo.
const (
	SuggestDelay = 200 * time.Millisecond
	SearchDelay  = 500 * time.Millisecond

	// máximo de sugerencias en el dropdown
	SuggestLimit = 5

	// mínimo de caracteres para pedir sugerencias
	suggestMinChars = 2
)

// SearchFunc resuelve una query a resultados (normalmente Client.SearchMovies).
type SearchFunc func(ctx context.Context, query string) ([]Movie, error)

// Searcher maneja la búsqueda tipo type-ahead con dos timers de
// debounce independientes: uno para la lista de sugerencias y otro
// para la grilla de resultados. Cada tecleo cancela y reinicia ambos.
// Cada disparo lleva un número de generación: una respuesta que llega
// tarde (de una generación vieja) se descarta en vez de pisar una más
// fresca.
type Searcher struct {
	search SearchFunc

	onSuggestions func(query string, movies []Movie)
	onResults     func(query string, movies []Movie)

	suggestDelay time.Duration
	searchDelay  time.Duration

	mu           sync.Mutex
	suggestTimer *time.Timer
	searchTimer  *time.Timer
	suggestGen   uint64
	searchGen    uint64
	closed       bool
}

func NewSearcher(
	search SearchFunc,
	onSuggestions func(query string, movies []Movie),
	onResults func(query string, movies []Movie),
) *Searcher {
	return &Searcher{
		search:        search,
		onSuggestions: onSuggestions,
		onResults:     onResults,
		suggestDelay:  SuggestDelay,
		searchDelay:   SearchDelay,
	}
}

// Input registra un tecleo. Cancela los timers pendientes (un timer
// cancelado nunca ejecuta su callback) y los reinicia con la query
// nueva. Query vacía limpia sugerencias y resultados al instante.
func (s *Searcher) Input(ctx context.Context, query string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	s.stopTimersLocked()
	s.suggestGen++
	s.searchGen++

	if query == "" {
		sg, rg := s.suggestGen, s.searchGen
		go s.deliverSuggestions(sg, query, nil)
		go s.deliverResults(rg, query, nil)
		return
	}

	if len([]rune(query)) >= suggestMinChars {
		gen := s.suggestGen
		s.suggestTimer = time.AfterFunc(s.suggestDelay, func() {
			s.fireSuggest(ctx, gen, query)
		})
	} else {
		gen := s.suggestGen
		go s.deliverSuggestions(gen, query, nil)
	}

	gen := s.searchGen
	s.searchTimer = time.AfterFunc(s.searchDelay, func() {
		s.fireSearch(ctx, gen, query)
	})
}

// Close cancela cualquier búsqueda pendiente; el Searcher no vuelve
// a invocar callbacks después de esto.
func (s *Searcher) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.stopTimersLocked()
	s.suggestGen++
	s.searchGen++
}

func (s *Searcher) stopTimersLocked() {
	if s.suggestTimer != nil {
		s.suggestTimer.Stop()
		s.suggestTimer = nil
	}
	if s.searchTimer != nil {
		s.searchTimer.Stop()
		s.searchTimer = nil
	}
}

func (s *Searcher) fireSuggest(ctx context.Context, gen uint64, query string) {
	movies, err := s.search(ctx, query)
	if err != nil {
		movies = nil
	}
	if len(movies) > SuggestLimit {
		movies = movies[:SuggestLimit]
	}
	s.deliverSuggestions(gen, query, movies)
}

func (s *Searcher) fireSearch(ctx context.Context, gen uint64, query string) {
	movies, err := s.search(ctx, query)
	if err != nil {
		movies = nil
	}
	s.deliverResults(gen, query, movies)
}

func (s *Searcher) deliverSuggestions(gen uint64, query string, movies []Movie) {
	s.mu.Lock()
	stale := s.closed || gen != s.suggestGen
	s.mu.Unlock()
	if stale || s.onSuggestions == nil {
		return
	}
	s.onSuggestions(query, movies)
}

func (s *Searcher) deliverResults(gen uint64, query string, movies []Movie) {
	s.mu.Lock()
	stale := s.closed || gen != s.searchGen
	s.mu.Unlock()
	if stale || s.onResults == nil {
		return
	}
	s.onResults(query, movies)
}
