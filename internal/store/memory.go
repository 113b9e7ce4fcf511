package store

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/rcliao/recipe-match/internal/filter"
	"github.com/rcliao/recipe-match/internal/model"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore is an in-process Store. Recipes are returned in insertion
// order. It is safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	order   []string
	byID    map[string]model.Recipe
	entropy *rand.Rand
}

// NewMemoryStore returns a MemoryStore holding the given recipes.
func NewMemoryStore(recipes ...model.Recipe) *MemoryStore {
	s := &MemoryStore{
		byID:    map[string]model.Recipe{},
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, r := range recipes {
		s.put(r)
	}
	return s
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *MemoryStore) Find(ctx context.Context, f filter.Filter, limit int) ([]model.Recipe, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Recipe
	for _, id := range s.order {
		r := s.byID[id]
		if !f.Match(r) {
			continue
		}
		out = append(out, r)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (s *MemoryStore) Put(ctx context.Context, r model.Recipe) (*model.Recipe, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.put(r)
	return &out, nil
}

// put must be called with mu held (or before the store is shared).
func (s *MemoryStore) put(r model.Recipe) model.Recipe {
	if r.ID == "" {
		r.ID = ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	if _, ok := s.byID[r.ID]; !ok {
		s.order = append(s.order, r.ID)
	}
	s.byID[r.ID] = r
	return r
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*model.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return &r, nil
}

func (s *MemoryStore) List(ctx context.Context, p ListParams) ([]model.Recipe, error) {
	return s.Find(ctx, listFilter(p), listLimit(p.Limit))
}

func (s *MemoryStore) Search(ctx context.Context, p SearchParams) ([]model.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	limit := listLimit(p.Limit)
	var out []model.Recipe
	for _, id := range s.order {
		r := s.byID[id]
		if !matchText(r, p.Query) {
			continue
		}
		out = append(out, r)
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (s *MemoryStore) Rm(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(s.byID, id)
	for i, o := range s.order {
		if o == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *MemoryStore) ExportAll(ctx context.Context) ([]model.Recipe, error) {
	return s.Find(ctx, filter.And(), 0)
}

func (s *MemoryStore) Import(ctx context.Context, recipes []model.Recipe) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range recipes {
		s.put(r)
	}
	return len(recipes), nil
}

func (s *MemoryStore) Stats(ctx context.Context) (*Stats, error) {
	all, err := s.ExportAll(ctx)
	if err != nil {
		return nil, err
	}
	return tally("memory", all), nil
}

func (s *MemoryStore) Close() error { return nil }

// matchText mirrors the SQLite LIKE search for the in-process backends.
func matchText(r model.Recipe, query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(r.Name), q) || strings.Contains(strings.ToLower(r.Description), q) {
		return true
	}
	for _, ing := range r.Ingredients {
		if strings.Contains(strings.ToLower(ing), q) {
			return true
		}
	}
	return false
}
