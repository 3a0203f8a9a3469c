package application

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/bnema/driver-partner-cli/internal/domain"
)

const (
	DefaultPageSize  = 10
	DefaultFirstPage = 1
)

type Page[T domain.Identifiable] struct {
	Items   []T
	HasMore bool
}

type Pager[T domain.Identifiable] interface {
	FetchPage(ctx context.Context, pageSize, page int) (Page[T], error)
}

type PagerFunc[T domain.Identifiable] func(ctx context.Context, pageSize, page int) (Page[T], error)

func (f PagerFunc[T]) FetchPage(ctx context.Context, pageSize, page int) (Page[T], error) {
	return f(ctx, pageSize, page)
}

type SyncState[T domain.Identifiable] struct {
	Items   []T
	Page    int
	HasMore bool
	Loading bool
}

// Synchronizer accumulates a remote paginated list. Items keep first-seen
// order and never repeat a key; the page cursor only advances after a
// non-empty fetch.
type Synchronizer[T domain.Identifiable] struct {
	pager    Pager[T]
	pageSize int
	logger   *slog.Logger

	mu         sync.Mutex
	items      []T
	seen       map[string]struct{}
	page       int
	hasMore    bool
	loading    bool
	autoLoaded bool
	closed     bool
}

func NewSynchronizer[T domain.Identifiable](pager Pager[T], pageSize int, logger *slog.Logger) *Synchronizer[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Synchronizer[T]{
		pager:    pager,
		pageSize: pageSize,
		logger:   logger,
		seen:     map[string]struct{}{},
		page:     DefaultFirstPage,
		hasMore:  true,
	}
}

// LoadMore fetches the next page. It reports false without fetching while a
// fetch is in flight, after exhaustion, or once closed. A failed fetch leaves
// items, cursor and hasMore untouched.
func (s *Synchronizer[T]) LoadMore(ctx context.Context) (bool, error) {
	s.mu.Lock()
	if s.closed || s.loading || !s.hasMore {
		s.mu.Unlock()
		return false, nil
	}
	s.loading = true
	page := s.page
	s.mu.Unlock()

	result, err := s.pager.FetchPage(ctx, s.pageSize, page)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false

	if s.closed {
		s.logger.Debug("dropping page for closed list", "page", page)
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("fetch page %d: %w", page, err)
	}

	if len(result.Items) == 0 {
		s.hasMore = false
		s.logger.Debug("list exhausted", "page", page)
		return true, nil
	}

	added := s.appendUnique(result.Items)
	s.page = page + 1
	s.hasMore = result.HasMore
	s.logger.Debug("page applied", "page", page, "received", len(result.Items), "added", added, "has_more", s.hasMore)

	return true, nil
}

// LoadIfEmpty performs the automatic first load the first time the list is
// observed empty.
func (s *Synchronizer[T]) LoadIfEmpty(ctx context.Context) (bool, error) {
	s.mu.Lock()
	if s.autoLoaded || len(s.items) > 0 {
		s.mu.Unlock()
		return false, nil
	}
	s.autoLoaded = true
	s.mu.Unlock()

	return s.LoadMore(ctx)
}

func (s *Synchronizer[T]) State() SyncState[T] {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]T, len(s.items))
	copy(items, s.items)

	return SyncState[T]{
		Items:   items,
		Page:    s.page,
		HasMore: s.hasMore,
		Loading: s.loading,
	}
}

func (s *Synchronizer[T]) Items() []T {
	return s.State().Items
}

// Close detaches the list from its consumer; in-flight responses are dropped.
func (s *Synchronizer[T]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
}

func (s *Synchronizer[T]) appendUnique(items []T) int {
	added := 0
	for _, item := range items {
		key := item.Key()
		if _, ok := s.seen[key]; ok {
			continue
		}
		s.seen[key] = struct{}{}
		s.items = append(s.items, item)
		added++
	}
	return added
}
