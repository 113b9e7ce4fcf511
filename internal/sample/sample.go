// Package sample generates a synthetic recipe corpus for demos and tests.
// Tags, ingredients and calories are kept consistent with each other so the
// corpus exercises every filter the recommender builds.
package sample

import (
	"fmt"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/rcliao/recipe-match/internal/model"
	"github.com/rcliao/recipe-match/internal/preference"
)

// Generator produces deterministic recipes from a seed.
type Generator struct {
	faker *gofakeit.Faker
}

// New returns a Generator seeded with seed.
func New(seed int64) *Generator {
	return &Generator{faker: gofakeit.New(seed)}
}

var mealDishes = map[string][]string{
	preference.Breakfast: {"main-dish", "side-dish", "beverage"},
	preference.Brunch:    {"main-dish", "side-dish", "dessert"},
	preference.Lunch:     {"main-dish", "side-dish", "soup", "appetizer", "beverage"},
	preference.Dinner:    {"main-dish", "side-dish", "soup", "appetizer", "dessert"},
}

// kcal ranges per dish, tuned so most fall inside an allocated window.
var dishCalories = map[string][2]float64{
	"main-dish": {350, 1100},
	"side-dish": {100, 450},
	"soup":      {150, 450},
	"appetizer": {100, 350},
	"dessert":   {200, 600},
	"beverage":  {40, 250},
}

var allergenIngredients = map[string][]string{
	"eggs_dairy": {"eggs", "whole milk", "cheddar cheese", "butter", "greek yogurt"},
	"seafood":    {"salmon fillet", "shrimp", "canned tuna", "clams"},
	"nuts":       {"almonds", "peanut butter", "walnuts", "cashews"},
}

var meats = []string{"chicken thighs", "ground beef", "pork loin", "bacon", "turkey breast"}

var pantry = []string{"olive oil", "garlic", "onion", "salt", "black pepper", "rice", "flour", "tomatoes", "lemon"}

// Recipe generates one recipe.
func (g *Generator) Recipe() model.Recipe {
	f := g.faker
	meal := f.RandomString(preference.DefaultMeals)
	if f.IntRange(0, 9) == 0 {
		meal = preference.Brunch
	}
	dish := f.RandomString(mealDishes[meal])

	tags := []string{meal, dish}
	var ingredients []string

	vegetarian := f.IntRange(0, 9) < 4
	if vegetarian {
		tags = append(tags, "vegetarian")
		if f.Bool() {
			tags = append(tags, "vegan")
		}
	} else {
		ingredients = append(ingredients, f.RandomString(meats))
	}
	if f.IntRange(0, 4) == 0 {
		tags = append(tags, "gluten-free")
	}

	for _, allergen := range []string{"eggs_dairy", "seafood", "nuts"} {
		if f.IntRange(0, 5) != 0 {
			continue
		}
		if allergen == "seafood" && vegetarian {
			continue
		}
		if allergen == "eggs_dairy" && hasTag(tags, "vegan") {
			continue
		}
		tags = append(tags, allergen)
		ingredients = append(ingredients, f.RandomString(allergenIngredients[allergen]))
	}

	tags = append(tags, f.RandomString(preference.Cuisines()))
	if f.Bool() {
		tags = append(tags, "easy")
	}

	ingredients = append(ingredients, f.Vegetable(), f.RandomString(pantry), f.RandomString(pantry))

	kcal := dishCalories[dish]
	steps := make([]string, f.IntRange(2, 6))
	for i := range steps {
		steps[i] = f.Sentence(f.IntRange(6, 14))
	}

	return model.Recipe{
		Name:        g.name(meal, dish),
		Minutes:     f.IntRange(5, 180),
		Description: f.Sentence(12),
		Ingredients: ingredients,
		Steps:       steps,
		Tags:        tags,
		Nutrition: model.Nutrition{
			Calories:     float64(int(f.Float64Range(kcal[0], kcal[1]))),
			Fat:          float64(f.IntRange(0, 60)),
			Sugar:        float64(f.IntRange(0, 80)),
			Sodium:       float64(f.IntRange(0, 90)),
			Protein:      float64(f.IntRange(0, 120)),
			SaturatedFat: float64(f.IntRange(0, 70)),
			Carbohydrate: float64(f.IntRange(0, 40)),
		},
	}
}

// Corpus generates n recipes.
func (g *Generator) Corpus(n int) []model.Recipe {
	out := make([]model.Recipe, n)
	for i := range out {
		out[i] = g.Recipe()
	}
	return out
}

func (g *Generator) name(meal, dish string) string {
	f := g.faker
	switch {
	case dish == "dessert":
		return f.Dessert()
	case dish == "beverage":
		return f.Drink()
	case meal == preference.Breakfast || meal == preference.Brunch:
		return f.Breakfast()
	case meal == preference.Lunch:
		return f.Lunch()
	case dish == "main-dish":
		return f.Dinner()
	}
	return fmt.Sprintf("%s %s", f.Adjective(), f.Vegetable())
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
