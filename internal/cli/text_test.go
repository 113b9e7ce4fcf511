package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/recipe-match/internal/model"
	"github.com/rcliao/recipe-match/internal/preference"
	"github.com/rcliao/recipe-match/internal/recommend"
)

func TestWritePlanText(t *testing.T) {
	plan := &recommend.Plan{
		Meals: []string{"breakfast", "dinner"},
		Recipes: map[string][]model.Recipe{
			"breakfast": {{
				ID: "r1", Name: "Shakshuka", Minutes: 25,
				Ingredients: []string{"eggs", "tomatoes", "onion", "cumin"},
				Tags:        []string{"breakfast", "vegetarian", "easy", "middle-eastern"},
				Nutrition:   model.Nutrition{Calories: 410},
			}},
			"dinner": {},
		},
		Warnings: []string{`calories="99": not a known band`},
	}

	var buf bytes.Buffer
	writePlanText(&buf, plan)
	out := buf.String()

	for _, want := range []string{
		"BREAKFAST",
		"1. Shakshuka [r1]",
		"Time: 25 minutes",
		"Calories: 410",
		"Ingredients: eggs, tomatoes, onion...",
		"Key Features: vegetarian, easy",
		"DINNER",
		"(no matching recipe)",
		"WARNINGS",
	} {
		assert.Contains(t, out, want)
	}
	assert.Less(t, strings.Index(out, "BREAKFAST"), strings.Index(out, "DINNER"), "meals print in request order")
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"1", "7", "vegan"}, splitList(" 1, 7,,vegan "))
	assert.Nil(t, splitList(""))
}

func TestReadAnswers_NumericFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "answers.json")
	data := `{"diet":[1,7],"calories":3,"time":2,"meals":[1,3],"dishes":[1,5],"skill":{"level":1}}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cmd := &cobra.Command{Use: "recommend"}
	addAnswerFlags(cmd)
	require.NoError(t, cmd.Flags().Set("answers", path))
	require.NoError(t, cmd.Flags().Set("time", "4"))

	a, err := readAnswers(cmd)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "7"}, a.Diet)
	assert.Equal(t, "3", a.Calories)
	assert.Equal(t, "4", a.Time, "flags override the file")
	assert.Equal(t, []string{"1", "3"}, a.Meals)
	assert.Empty(t, a.Skill)

	c, warnings := preference.Normalize(a, preference.DefaultOptions())
	assert.Equal(t, []string{"vegetarian"}, c.DietTags)
	assert.Equal(t, []string{"eggs_dairy"}, c.AllergyTags)
	assert.Equal(t, []string{"main-dish", "soup"}, c.Dishes)
	require.Len(t, warnings, 1)
	assert.Equal(t, "skill", warnings[0].Field)
}
