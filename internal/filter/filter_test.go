package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rcliao/recipe-match/internal/model"
)

var pancakes = model.Recipe{
	ID:          "r1",
	Name:        "Pancakes",
	Minutes:     25,
	Ingredients: []string{"2 Eggs", "1 cup flour", "1 cup Milk"},
	Tags:        []string{"breakfast", "vegetarian", "easy"},
	Nutrition:   model.Nutrition{Calories: 420},
}

func TestMatch_TagOperators(t *testing.T) {
	tests := []struct {
		name string
		f    Filter
		want bool
	}{
		{"all present", All(FieldTags, "breakfast", "vegetarian"), true},
		{"all missing one", All(FieldTags, "breakfast", "vegan"), false},
		{"all empty", All(FieldTags), true},
		{"in one", In(FieldTags, "vegan", "easy"), true},
		{"in none", In(FieldTags, "vegan", "dinner"), false},
		{"in empty", In(FieldTags), false},
		{"nin clean", Nin(FieldTags, "nuts", "seafood"), true},
		{"nin hit", Nin(FieldTags, "easy"), false},
		{"id nin", Nin(FieldID, "r2", "r3"), true},
		{"id nin hit", Nin(FieldID, "r1"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.f.Match(pancakes), "Match(%s)", tt.f)
		})
	}
}

func TestMatch_Ranges(t *testing.T) {
	assert.True(t, Between(FieldMinutes, 0, 30).Match(pancakes), "25 minutes is within 0-30")
	assert.False(t, Between(FieldMinutes, 30, 60).Match(pancakes), "25 minutes is not within 30-60")
	assert.True(t, Between(FieldCalories, 420, 420).Match(pancakes), "bounds are inclusive")
	assert.False(t, AtLeast(FieldMinutes, 120).Match(pancakes), "25 minutes does not satisfy >= 120")
}

func TestMatch_NoneContainingIgnoresCase(t *testing.T) {
	assert.False(t, NoneContaining(FieldIngredients, "egg").Match(pancakes), "'egg' hits '2 Eggs'")
	assert.False(t, NoneContaining(FieldIngredients, "MILK").Match(pancakes), "'MILK' hits '1 cup Milk'")
	assert.True(t, NoneContaining(FieldIngredients, "peanut", "almond").Match(pancakes))
}

func TestMatch_And(t *testing.T) {
	f := And(All(FieldTags, "breakfast"), Between(FieldMinutes, 0, 30), Nin(FieldTags, "nuts"))
	assert.True(t, f.Match(pancakes))

	f = And(f, In(FieldTags, "italian"))
	assert.False(t, f.Match(pancakes))
	assert.Len(t, f.Clauses, 4, "nested And flattens")

	assert.True(t, And().Match(pancakes), "empty conjunction matches everything")
}

func TestDocument(t *testing.T) {
	got := And(All(FieldTags, "vegan"), Between(FieldCalories, 100, 200)).String()
	for _, want := range []string{`"$and"`, `"$all":["vegan"]`, `"nutrition.calories"`, `"$gte":100`, `"$lte":200`} {
		assert.Contains(t, got, want)
	}

	assert.NotContains(t, And(In(FieldTags, "lunch")).String(), "$and", "single clause is not wrapped")
	assert.Equal(t, "{}", And().String())
	assert.Contains(t, NoneContaining(FieldIngredients, "egg").String(), `"$regex":"egg"`)
}
