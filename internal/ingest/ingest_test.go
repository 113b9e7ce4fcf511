package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/recipe-match/internal/model"
)

func TestParseDuration(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"1 hrs 20 mins", 80, true},
		{"45 mins", 45, true},
		{"2 hours", 120, true},
		{"1 hr", 60, true},
		{"90", 90, true},
		{"", 0, false},
		{"overnight", 0, false},
	}
	for _, tc := range cases {
		got, ok := ParseDuration(tc.in)
		assert.Equal(t, tc.want, got, "ParseDuration(%q)", tc.in)
		assert.Equal(t, tc.ok, ok, "ParseDuration(%q) ok", tc.in)
	}
}

func TestParseNutritionLabel(t *testing.T) {
	label := "Calories 350 | Total Fat 12g | Saturated Fat 4.5g | Sodium 300mg | Total Carbohydrate 40g | Sugars 6g | Protein 8g"
	n := ParseNutritionLabel(label)

	want := model.Nutrition{
		Calories: 350, Fat: 12, SaturatedFat: 4.5, Sodium: 300,
		Carbohydrate: 40, Sugar: 6, Protein: 8,
	}
	assert.Equal(t, want, n)
}

func TestParseNutritionLabel_Partial(t *testing.T) {
	n := ParseNutritionLabel("calories: 210")
	assert.Equal(t, model.Nutrition{Calories: 210}, n, "missing values stay zero")
}

func TestSplitDirections(t *testing.T) {
	text := "1. Preheat oven to 350 degrees.\n\n2) Mix flour and sugar.\nStep 3: Bake for 20 minutes."
	steps := SplitDirections(text, DefaultStepOptions())

	want := []string{"Preheat oven to 350 degrees.", "Mix flour and sugar.", "Bake for 20 minutes."}
	assert.Equal(t, want, steps)
}

func TestSplitDirections_Empty(t *testing.T) {
	assert.Nil(t, SplitDirections("  \n ", DefaultStepOptions()))
}

func TestSplitDirections_LongParagraph(t *testing.T) {
	sentence := "Stir the sauce gently over low heat until it thickens. "
	text := strings.Repeat(sentence, 10)
	steps := SplitDirections(text, StepOptions{MaxStepLen: 120})

	require.GreaterOrEqual(t, len(steps), 2, "paragraph should be split")
	for _, s := range steps {
		assert.LessOrEqual(t, len(s), 120)
	}
}

func TestRead_ArrayAndLines(t *testing.T) {
	array := `[{"_id": "a", "name": "Pancakes", "calories": 420}, {"id": "b", "name": "Waffles"}]`
	got, err := Read(strings.NewReader(array))
	require.NoError(t, err, "read array")
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, 420.0, got[0].Calories())

	lines := "{\"name\": \"Soup\"}\n\n{\"name\": \"Salad\"}\n"
	got, err = Read(strings.NewReader(lines))
	require.NoError(t, err, "read lines")
	require.Len(t, got, 2)
	assert.Equal(t, "Salad", got[1].Name)

	_, err = Read(strings.NewReader("{bad"))
	assert.Error(t, err)
}

func TestPrepare(t *testing.T) {
	in := New(nil)
	raw := []model.Recipe{
		{
			Name:           "  Roast Chicken ",
			TotalTime:      "1 hrs 30 mins",
			NutritionLabel: "Calories 540 | Protein 45g",
			Directions:     "Season the bird.\nRoast until golden.",
			Tags:           []string{"Dinner", "Main Dish", "dinner", ""},
			Ingredients:    []string{" chicken ", "salt", ""},
		},
		{Name: ""},
		{Name: "Bad Time", Minutes: -5},
	}

	ok, rejected := in.Prepare(raw)
	require.Len(t, ok, 1)
	require.Len(t, rejected, 2)
	assert.Equal(t, 1, rejected[0].Index)
	assert.Equal(t, 2, rejected[1].Index)

	r := ok[0]
	assert.Equal(t, "Roast Chicken", r.Name)
	assert.Equal(t, 90, r.Minutes)
	assert.Equal(t, 540.0, r.Calories())
	assert.Equal(t, 45.0, r.Nutrition.Protein)
	assert.Len(t, r.Steps, 2)
	assert.Equal(t, []string{"dinner", "main-dish"}, r.Tags)
	assert.Equal(t, []string{"chicken", "salt"}, r.Ingredients)
}
