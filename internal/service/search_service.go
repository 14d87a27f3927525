package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mentorhub/mentorhub-bot/internal/model"
)

// ErrEmptyQuery is returned for blank input; it never reaches the network.
var ErrEmptyQuery = errors.New("search query is empty")

// DefaultSearchDebounce matches the 300ms the dashboard search has always used.
const DefaultSearchDebounce = 300 * time.Millisecond

type searchAPI interface {
	Search(ctx context.Context, session, query string) (*model.SearchResults, error)
}

// SearchService debounces dashboard search input. Each fired request carries
// a generation number; a response belonging to a superseded generation is
// dropped, so a slow early request can never overwrite newer results.
type SearchService struct {
	api      searchAPI
	logger   *zap.Logger
	debounce time.Duration

	mu         sync.Mutex
	timer      *time.Timer
	generation uint64
}

func NewSearchService(api searchAPI, debounce time.Duration, logger *zap.Logger) *SearchService {
	if debounce <= 0 {
		debounce = DefaultSearchDebounce
	}
	return &SearchService{api: api, debounce: debounce, logger: logger}
}

// Query schedules a search for query after the debounce window, replacing any
// previously scheduled one. deliver is called once with the results or the
// error; it is never called for a query that got superseded.
func (s *SearchService) Query(ctx context.Context, session, query string, deliver func(*model.SearchResults, error)) error {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return ErrEmptyQuery
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	gen := s.generation

	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, func() {
		s.run(ctx, session, trimmed, gen, deliver)
	})
	return nil
}

func (s *SearchService) run(ctx context.Context, session, query string, gen uint64, deliver func(*model.SearchResults, error)) {
	results, err := s.api.Search(ctx, session, query)

	s.mu.Lock()
	current := s.generation
	s.mu.Unlock()

	if gen != current {
		s.logger.Debug("Dropping stale search response",
			zap.String("query", query),
			zap.Uint64("generation", gen),
			zap.Uint64("current", current))
		return
	}

	if err != nil {
		deliver(nil, err)
		return
	}
	deliver(results, nil)
}

// Reset cancels any pending search. Called on dialog teardown.
func (s *SearchService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
