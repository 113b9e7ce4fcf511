package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/recipe-match/internal/filter"
)

func backends(t *testing.T) map[string]Store {
	t.Helper()
	b, err := NewBadgerStore("")
	require.NoError(t, err, "open badger")
	t.Cleanup(func() { b.Close() })

	out := map[string]Store{
		"sqlite": newTestStore(t),
		"memory": NewMemoryStore(),
		"badger": b,
	}
	for _, s := range out {
		seedStore(t, s)
	}
	return out
}

func TestFindParity(t *testing.T) {
	cases := []struct {
		name  string
		f     filter.Filter
		limit int
		want  []string
	}{
		{"empty", filter.And(), 0, []string{"r01", "r02", "r03", "r04", "r05", "r06"}},
		{"limit", filter.And(), 2, []string{"r01", "r02"}},
		{"all tags", filter.All(filter.FieldTags, "vegetarian", "italian"), 0, []string{"r04"}},
		{"in tags", filter.In(filter.FieldTags, "soup", "seafood"), 0, []string{"r03", "r05"}},
		{"empty in", filter.In(filter.FieldTags), 0, nil},
		{"nin tags", filter.Nin(filter.FieldTags, "vegetarian"), 0, []string{"r03", "r06"}},
		{"nin ids", filter.Nin(filter.FieldID, "r01", "r02", "r03"), 0, []string{"r04", "r05", "r06"}},
		{"minutes band", filter.Between(filter.FieldMinutes, 30, 60), 0, []string{"r03", "r05"}},
		{"open minutes", filter.AtLeast(filter.FieldMinutes, 120), 0, []string{"r06"}},
		{"calories", filter.Between(filter.FieldCalories, 300, 600), 0, []string{"r01", "r04", "r05"}},
		{"ingredient screen", filter.NoneContaining(filter.FieldIngredients, "EGG", "milk"), 0, []string{"r03", "r05", "r06"}},
		{"conjunction", filter.And(
			filter.All(filter.FieldTags, "dinner", "main-dish"),
			filter.Nin(filter.FieldTags, "seafood"),
			filter.Between(filter.FieldMinutes, 60, 90),
		), 0, []string{"r04"}},
	}

	for name, s := range backends(t) {
		for _, tc := range cases {
			t.Run(name+"/"+tc.name, func(t *testing.T) {
				got, err := s.Find(context.Background(), tc.f, tc.limit)
				require.NoError(t, err)
				assert.Equal(t, nonEmpty(tc.want), ids(got))
			})
		}
	}
}

func TestFindOne(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			r, err := FindOne(ctx, s, filter.All(filter.FieldTags, "lunch"))
			require.NoError(t, err)
			assert.Equal(t, "r05", r.ID)

			_, err = FindOne(ctx, s, filter.All(filter.FieldTags, "brunch"))
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestBackendMaintenance(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.Ping(ctx))
			require.NoError(t, s.Rm(ctx, "r01"))
			assert.ErrorIs(t, s.Rm(ctx, "r01"), ErrNotFound)

			found, err := s.Search(ctx, SearchParams{Query: "OATS"})
			require.NoError(t, err)
			assert.Equal(t, []string{"r02"}, ids(found))

			st, err := s.Stats(ctx)
			require.NoError(t, err)
			assert.Equal(t, 5, st.TotalRecipes)
			assert.Equal(t, name, st.Backend)
		})
	}
}

// nonEmpty maps a nil want to the nil slice ids() returns for no results.
func nonEmpty(want []string) []string {
	if len(want) == 0 {
		return []string{}
	}
	return want
}
