package store

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/oklog/ulid/v2"

	"github.com/rcliao/recipe-match/internal/filter"
	"github.com/rcliao/recipe-match/internal/model"
)

var _ Store = (*BadgerStore)(nil)

const recipeKeyPrefix = "recipe:"

// BadgerStore implements Store on an embedded BadgerDB. Filters are
// evaluated in process while iterating the recipe prefix in key order.
type BadgerStore struct {
	db      *badger.DB
	path    string
	entropy *rand.Rand
}

// NewBadgerStore opens a BadgerDB at dir. An empty dir opens an
// in-memory database.
func NewBadgerStore(dir string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &BadgerStore{
		db:      db,
		path:    dir,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

func recipeKey(id string) []byte {
	return []byte(recipeKeyPrefix + id)
}

func (s *BadgerStore) Ping(ctx context.Context) error {
	if s.db.IsClosed() {
		return errors.New("badger: database closed")
	}
	return ctx.Err()
}

func (s *BadgerStore) prepare(r model.Recipe) (model.Recipe, []byte, error) {
	if r.ID == "" {
		r.ID = ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	data, err := json.Marshal(r)
	if err != nil {
		return r, nil, fmt.Errorf("marshal recipe: %w", err)
	}
	return r, data, nil
}

func (s *BadgerStore) Put(ctx context.Context, r model.Recipe) (*model.Recipe, error) {
	r, data, err := s.prepare(r)
	if err != nil {
		return nil, err
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(recipeKey(r.ID), data); err != nil {
			return fmt.Errorf("set recipe: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *BadgerStore) Get(ctx context.Context, id string) (*model.Recipe, error) {
	var r model.Recipe
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(recipeKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		if err != nil {
			return fmt.Errorf("get recipe: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &r)
		})
	})
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// each walks every stored recipe in key order until fn returns false.
func (s *BadgerStore) each(ctx context.Context, fn func(model.Recipe) bool) error {
	return s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(recipeKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var r model.Recipe
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &r)
			})
			if err != nil {
				return fmt.Errorf("decode %s: %w", it.Item().Key(), err)
			}
			if !fn(r) {
				return nil
			}
		}
		return nil
	})
}

func (s *BadgerStore) Find(ctx context.Context, f filter.Filter, limit int) ([]model.Recipe, error) {
	var out []model.Recipe
	err := s.each(ctx, func(r model.Recipe) bool {
		if f.Match(r) {
			out = append(out, r)
		}
		return limit <= 0 || len(out) < limit
	})
	return out, err
}

func (s *BadgerStore) List(ctx context.Context, p ListParams) ([]model.Recipe, error) {
	return s.Find(ctx, listFilter(p), listLimit(p.Limit))
}

func (s *BadgerStore) Search(ctx context.Context, p SearchParams) ([]model.Recipe, error) {
	limit := listLimit(p.Limit)
	var out []model.Recipe
	err := s.each(ctx, func(r model.Recipe) bool {
		if matchText(r, p.Query) {
			out = append(out, r)
		}
		return len(out) < limit
	})
	return out, err
}

func (s *BadgerStore) Rm(ctx context.Context, id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		key := recipeKey(id)
		if _, err := txn.Get(key); errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		} else if err != nil {
			return err
		}
		return txn.Delete(key)
	})
}

func (s *BadgerStore) ExportAll(ctx context.Context) ([]model.Recipe, error) {
	return s.Find(ctx, filter.And(), 0)
}

// Import writes recipes through a WriteBatch.
func (s *BadgerStore) Import(ctx context.Context, recipes []model.Recipe) (int, error) {
	wb := s.db.NewWriteBatch()

	for _, r := range recipes {
		r, data, err := s.prepare(r)
		if err != nil {
			wb.Cancel()
			return 0, err
		}
		if err := wb.Set(recipeKey(r.ID), data); err != nil {
			wb.Cancel()
			return 0, fmt.Errorf("batch set: %w", err)
		}
	}
	if err := wb.Flush(); err != nil {
		return 0, fmt.Errorf("flush batch: %w", err)
	}
	return len(recipes), nil
}

func (s *BadgerStore) Stats(ctx context.Context) (*Stats, error) {
	all, err := s.ExportAll(ctx)
	if err != nil {
		return nil, err
	}
	st := tally("badger", all)
	st.DBPath = s.path
	if s.path != "" {
		lsm, vlog := s.db.Size()
		st.DBSizeBytes = lsm + vlog
	}
	return st, nil
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}
