package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/recipe-match/internal/filter"
	"github.com/rcliao/recipe-match/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dir := t.TempDir()
	s, err := NewSQLiteStore(filepath.Join(dir, "test.db"))
	require.NoError(t, err, "create store")
	t.Cleanup(func() { s.Close() })
	return s
}

// fixture returns recipes whose ids and created_at agree on ordering so
// every backend returns them in the same order.
func fixture() []model.Recipe {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rs := []model.Recipe{
		{ID: "r01", Name: "Veggie Omelette", Minutes: 15,
			Ingredients: []string{"eggs", "spinach", "milk"},
			Tags:        []string{"breakfast", "vegetarian", "easy"},
			Nutrition:   model.Nutrition{Calories: 320}},
		{ID: "r02", Name: "Overnight Oats", Minutes: 5,
			Ingredients: []string{"oats", "almond milk", "banana"},
			Tags:        []string{"breakfast", "vegan", "vegetarian", "easy"},
			Nutrition:   model.Nutrition{Calories: 280}},
		{ID: "r03", Name: "Shrimp Scampi", Minutes: 35,
			Ingredients: []string{"shrimp", "butter", "linguine"},
			Tags:        []string{"dinner", "main-dish", "seafood", "italian"},
			Nutrition:   model.Nutrition{Calories: 640}},
		{ID: "r04", Name: "Eggplant Parmesan", Minutes: 75,
			Ingredients: []string{"eggplant", "mozzarella", "tomato sauce"},
			Tags:        []string{"dinner", "main-dish", "vegetarian", "italian"},
			Nutrition:   model.Nutrition{Calories: 520}},
		{ID: "r05", Name: "Lentil Soup", Minutes: 50,
			Ingredients: []string{"lentils", "carrot", "celery"},
			Tags:        []string{"lunch", "soup", "vegan", "vegetarian"},
			Nutrition:   model.Nutrition{Calories: 310}},
		{ID: "r06", Name: "Slow Brisket", Minutes: 240,
			Ingredients: []string{"beef brisket", "onion"},
			Tags:        []string{"dinner", "main-dish"},
			Nutrition:   model.Nutrition{Calories: 900}},
	}
	for i := range rs {
		rs[i].CreatedAt = base.Add(time.Duration(i) * time.Minute)
	}
	return rs
}

func seedStore(t *testing.T, s Store) {
	t.Helper()
	n, err := s.Import(context.Background(), fixture())
	require.NoError(t, err, "import")
	require.Equal(t, len(fixture()), n)
}

func TestPutAndGet(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	r, err := s.Put(ctx, model.Recipe{
		Name: "Toast", Minutes: 3,
		Ingredients: []string{"bread", "butter"},
		Tags:        []string{"breakfast"},
		Nutrition:   model.Nutrition{Calories: 180, Fat: 9},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, r.ID)
	assert.False(t, r.CreatedAt.IsZero(), "created_at should be set")

	got, err := s.Get(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Toast", got.Name)
	assert.Equal(t, 3, got.Minutes)
	assert.Equal(t, model.Nutrition{Calories: 180, Fat: 9}, got.Nutrition)
	assert.Equal(t, []string{"bread", "butter"}, got.Ingredients)
	assert.True(t, r.CreatedAt.Equal(got.CreatedAt))
}

func TestGetMissing(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPutReplacesTags(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.Put(ctx, model.Recipe{ID: "x", Name: "Stew", Tags: []string{"dinner", "main-dish"}})
	require.NoError(t, err)
	_, err = s.Put(ctx, model.Recipe{ID: "x", Name: "Stew", Tags: []string{"lunch", "soup"}})
	require.NoError(t, err)

	got, err := s.List(ctx, ListParams{Tags: []string{"dinner"}})
	require.NoError(t, err)
	assert.Empty(t, got, "stale tag rows should be cleared")

	got, err = s.List(ctx, ListParams{Tags: []string{"lunch", "soup"}})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Stew", got[0].Name)
}

func TestList(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	seedStore(t, s)

	all, err := s.List(ctx, ListParams{})
	require.NoError(t, err)
	assert.Len(t, all, 6)

	veg, err := s.List(ctx, ListParams{Tags: []string{"vegetarian", "dinner"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"r04"}, ids(veg))

	limited, err := s.List(ctx, ListParams{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestRm(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	seedStore(t, s)

	require.NoError(t, s.Rm(ctx, "r03"))
	_, err := s.Get(ctx, "r03")
	assert.ErrorIs(t, err, ErrNotFound)

	seafood, err := s.List(ctx, ListParams{Tags: []string{"seafood"}})
	require.NoError(t, err)
	assert.Empty(t, seafood, "tag rows should be removed by cascade")

	assert.ErrorIs(t, s.Rm(ctx, "r03"), ErrNotFound)
}

func TestDBPathCreation(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "recipes.db")
	s, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer s.Close()
	assert.FileExists(t, dbPath)
}

func TestRenderSQLRejectsUnknownField(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Find(context.Background(), filter.In(filter.Field("name"), "Toast"), 0)
	assert.Error(t, err, "name is not a list field")
}

func TestCorruptRowSurfacesError(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	seedStore(t, s)

	_, err := s.db.ExecContext(ctx, `UPDATE recipes SET ingredients = 'not json' WHERE id = 'r02'`)
	require.NoError(t, err)

	_, err = s.Get(ctx, "r02")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode ingredients")

	_, err = s.Find(ctx, filter.All(filter.FieldTags, "breakfast"), 0)
	assert.Error(t, err, "a corrupt row must not come back with empty ingredients")

	_, err = s.db.ExecContext(ctx, `UPDATE recipes SET created_at = 'yesterday' WHERE id = 'r05'`)
	require.NoError(t, err)
	_, err = s.Get(ctx, "r05")
	assert.ErrorContains(t, err, "created_at")
}

func ids(rs []model.Recipe) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.ID
	}
	return out
}
