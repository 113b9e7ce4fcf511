// Package model defines the core recipe data types.
package model

import (
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// Recipe represents a stored recipe document.
type Recipe struct {
	ID          string    `json:"id"`
	Name        string    `json:"name" validate:"required"`
	Minutes     int       `json:"minutes" validate:"gte=0"`
	Description string    `json:"description,omitempty"`
	Ingredients []string  `json:"ingredients,omitempty"`
	Steps       []string  `json:"steps,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	Nutrition   Nutrition `json:"nutrition"`
	CreatedAt   time.Time `json:"created_at,omitempty"`

	// Raw import fields, resolved by the ingest package and never stored.
	NutritionLabel string `json:"-"`
	TotalTime      string `json:"-"`
	Directions     string `json:"-"`
}

// Nutrition holds per-serving nutrition values. Only Calories is used for filtering.
type Nutrition struct {
	Calories     float64 `json:"calories" validate:"gte=0"`
	Fat          float64 `json:"fat,omitempty"`
	Sugar        float64 `json:"sugar,omitempty"`
	Sodium       float64 `json:"sodium,omitempty"`
	Protein      float64 `json:"protein,omitempty"`
	SaturatedFat float64 `json:"saturated_fat,omitempty"`
	Carbohydrate float64 `json:"carbohydrate,omitempty"`
}

// Calories returns the recipe's calorie count.
func (r Recipe) Calories() float64 {
	return r.Nutrition.Calories
}

// HasTag reports whether the recipe carries tag (case-insensitive).
func (r Recipe) HasTag(tag string) bool {
	for _, t := range r.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// WithTags returns a copy of r with any missing tags appended.
func (r Recipe) WithTags(tags ...string) Recipe {
	out := r
	out.Tags = append([]string(nil), r.Tags...)
	for _, t := range tags {
		if t != "" && !out.HasTag(t) {
			out.Tags = append(out.Tags, t)
		}
	}
	return out
}

// recipeJSON is the permissive wire shape accepted on decode.
type recipeJSON struct {
	ID          string          `json:"id"`
	MongoID     string          `json:"_id"`
	Name        string          `json:"name"`
	Minutes     int             `json:"minutes"`
	Description string          `json:"description"`
	Ingredients []string        `json:"ingredients"`
	Steps       []string        `json:"steps"`
	Tags        []string        `json:"tags"`
	Nutrition   json.RawMessage `json:"nutrition"`
	Calories    *float64        `json:"calories"`
	CreatedAt   time.Time       `json:"created_at"`
	TotalTime   string          `json:"total_time"`
	Directions  string          `json:"directions"`
}

// UnmarshalJSON accepts calories nested under nutrition, flattened at the top
// level, or as the first element of a Food.com style nutrition list. A
// nutrition string is kept as a label for best-effort parsing later.
func (r *Recipe) UnmarshalJSON(data []byte) error {
	var raw recipeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*r = Recipe{
		ID:          raw.ID,
		Name:        raw.Name,
		Minutes:     raw.Minutes,
		Description: raw.Description,
		Ingredients: raw.Ingredients,
		Steps:       raw.Steps,
		Tags:        raw.Tags,
		CreatedAt:   raw.CreatedAt,
		TotalTime:   raw.TotalTime,
		Directions:  raw.Directions,
	}
	if r.ID == "" {
		r.ID = raw.MongoID
	}

	if err := r.Nutrition.decode(raw.Nutrition, &r.NutritionLabel); err != nil {
		return err
	}
	if raw.Calories != nil && r.Nutrition.Calories == 0 {
		r.Nutrition.Calories = *raw.Calories
	}
	return nil
}

func (n *Nutrition) decode(raw json.RawMessage, label *string) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	switch raw[0] {
	case '{':
		type plain Nutrition
		var p plain
		if err := json.Unmarshal(raw, &p); err != nil {
			return err
		}
		*n = Nutrition(p)
	case '[':
		// Food.com order: calories, fat, sugar, sodium, protein, saturated fat, carbs (PDV).
		var vals []float64
		if err := json.Unmarshal(raw, &vals); err != nil {
			return err
		}
		fields := []*float64{&n.Calories, &n.Fat, &n.Sugar, &n.Sodium, &n.Protein, &n.SaturatedFat, &n.Carbohydrate}
		for i := 0; i < len(vals) && i < len(fields); i++ {
			*fields[i] = vals[i]
		}
	case '"':
		return json.Unmarshal(raw, label)
	}
	return nil
}
