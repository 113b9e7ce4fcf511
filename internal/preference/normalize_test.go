package preference

import (
	"testing"

	"github.com/goccy/go-json"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_Defaults(t *testing.T) {
	c, warnings := Normalize(Answers{}, DefaultOptions())

	assert.Empty(t, warnings)
	assert.Equal(t, []string{Breakfast, Lunch, Dinner}, c.Meals)
	assert.Equal(t, []string{DefaultDish}, c.Dishes)
	assert.Nil(t, c.CalorieBand)
	assert.Nil(t, c.TimeBand)
	assert.Empty(t, c.DietTags)
	assert.Empty(t, c.AllergyTags)
	assert.Empty(t, c.CuisineTags)
	assert.False(t, c.Beginner)
}

func TestNormalize_Codes(t *testing.T) {
	c, warnings := Normalize(Answers{
		Diet:     []string{"1", "4", "7"},
		Calories: "3",
		Time:     "2",
		Cuisine:  []string{"4", "15", "14"},
		Skill:    "1",
		Meals:    []string{"1", "3", "3"},
		Dishes:   []string{"1", "5"},
	}, DefaultOptions())

	assert.Empty(t, warnings)
	assert.Equal(t, []string{"vegetarian", "gluten-free"}, c.DietTags)
	assert.Equal(t, []string{"eggs_dairy"}, c.AllergyTags)
	assert.Contains(t, c.AllergyIngredients, "egg")
	assert.Contains(t, c.AllergyIngredients, "yogurt")
	require.NotNil(t, c.CalorieBand)
	assert.Equal(t, Band{1600, 1800}, *c.CalorieBand)
	require.NotNil(t, c.TimeBand)
	assert.Equal(t, Band{30, 60}, *c.TimeBand)
	assert.Equal(t, []string{"italian", "chinese"}, c.CuisineTags)
	assert.True(t, c.Beginner)
	assert.Equal(t, []string{Breakfast, Lunch}, c.Meals, "meals are deduplicated in order")
	assert.Equal(t, []string{"main-dish", "soup"}, c.Dishes)
}

func TestNormalize_Names(t *testing.T) {
	c, warnings := Normalize(Answers{
		Diet:    []string{"Vegan", "seafood"},
		Cuisine: []string{"Middle Eastern", "any"},
		Skill:   "beginner",
		Meals:   []string{"Dinner"},
		Dishes:  []string{"soups-stews", "side-dishes"},
	}, DefaultOptions())

	assert.Empty(t, warnings)
	assert.Equal(t, []string{"vegan"}, c.DietTags)
	assert.Equal(t, []string{"seafood"}, c.AllergyTags)
	assert.Equal(t, []string{"middle-eastern"}, c.CuisineTags)
	assert.True(t, c.Beginner)
	assert.Equal(t, []string{Dinner}, c.Meals)
	assert.Equal(t, []string{"soup", "side-dish"}, c.Dishes)
}

func TestNormalize_NoRestrictionShortCircuits(t *testing.T) {
	c, _ := Normalize(Answers{Diet: []string{"1", "10", "9"}}, DefaultOptions())
	assert.Empty(t, c.DietTags)
	assert.Empty(t, c.AllergyTags)
	assert.Empty(t, c.AllergyIngredients)
}

func TestNormalize_MalformedCodesFailSoft(t *testing.T) {
	c, warnings := Normalize(Answers{
		Calories: "lots",
		Time:     "42",
		Diet:     []string{"paleo"},
		Meals:    []string{"9"},
	}, DefaultOptions())

	assert.Nil(t, c.CalorieBand)
	assert.Nil(t, c.TimeBand)
	assert.Empty(t, c.DietTags)
	assert.Equal(t, DefaultMeals, c.Meals)
	require.Len(t, warnings, 4)
	assert.Equal(t, "diet", warnings[0].Field)
	assert.Equal(t, "calories", warnings[1].Field)
	assert.Equal(t, "time", warnings[2].Field)
	assert.Equal(t, "meals", warnings[3].Field)
}

func TestNormalize_NoneBands(t *testing.T) {
	for _, v := range []string{"", "none", "7"} {
		c, w := Normalize(Answers{Calories: v}, DefaultOptions())
		assert.Nil(t, c.CalorieBand, "calories %q", v)
		assert.Empty(t, w)
	}
	c, _ := Normalize(Answers{Time: "5"}, DefaultOptions())
	require.NotNil(t, c.TimeBand)
	assert.True(t, c.TimeBand.Open())
}

func TestNormalize_IngredientScreeningDisabled(t *testing.T) {
	c, _ := Normalize(Answers{Diet: []string{"9"}}, Options{})
	assert.Equal(t, []string{"nuts"}, c.AllergyTags)
	assert.Empty(t, c.AllergyIngredients)
}

func TestNormalize_LiteralDefaults(t *testing.T) {
	c, warnings := Normalize(Answers{
		Diet:    []string{"1", "No Restriction"},
		Cuisine: []string{"Any Cuisine"},
	}, DefaultOptions())

	assert.Empty(t, warnings)
	assert.Empty(t, c.DietTags)
	assert.Empty(t, c.CuisineTags)
}

func TestAnswers_NumericCodes(t *testing.T) {
	var a Answers
	require.NoError(t, json.Unmarshal([]byte(`{"diet":[1,7],"calories":3,"time":"abc"}`), &a))
	assert.Equal(t, []string{"1", "7"}, a.Diet)
	assert.Equal(t, "3", a.Calories)

	c, warnings := Normalize(a, DefaultOptions())
	assert.Equal(t, []string{"vegetarian"}, c.DietTags)
	assert.Equal(t, []string{"eggs_dairy"}, c.AllergyTags)
	require.NotNil(t, c.CalorieBand)
	assert.Equal(t, Band{1600, 1800}, *c.CalorieBand)
	assert.Nil(t, c.TimeBand)
	require.Len(t, warnings, 1)
	assert.Equal(t, "time", warnings[0].Field)
}

func TestAnswers_MixedShapes(t *testing.T) {
	var a Answers
	data := `{"diet":"2","time":2.0,"meals":[1,"dinner",{"x":1},null],"skill":true,"cuisine":{"a":1},"dishes":5}`
	require.NoError(t, json.Unmarshal([]byte(data), &a))

	assert.Equal(t, []string{"2"}, a.Diet)
	assert.Equal(t, "2", a.Time)
	assert.Equal(t, []string{"1", "dinner"}, a.Meals)
	assert.Equal(t, []string{"5"}, a.Dishes)
	assert.Empty(t, a.Skill)
	assert.Empty(t, a.Cuisine)

	c, warnings := Normalize(a, DefaultOptions())
	assert.Equal(t, []string{"vegan"}, c.DietTags)
	require.NotNil(t, c.TimeBand)
	assert.Equal(t, Band{30, 60}, *c.TimeBand)
	assert.Equal(t, []string{Breakfast, Dinner}, c.Meals)
	assert.Equal(t, []string{"soup"}, c.Dishes)
	assert.False(t, c.Beginner)

	require.Len(t, warnings, 3)
	assert.Equal(t, "cuisine", warnings[0].Field)
	assert.Equal(t, "skill", warnings[1].Field)
	assert.Equal(t, "meals", warnings[2].Field)
}

func TestAnswers_NotAnObject(t *testing.T) {
	var a Answers
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &a))
}
