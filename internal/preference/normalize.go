// Package preference turns raw questionnaire answers into typed recipe
// constraints. Answers are numeric codes or literal tag names; anything
// unrecognised is skipped and reported as a Warning rather than an error.
package preference

import (
	"fmt"
	"strings"
)

// Constraints is the normalised, read-only form of Answers.
type Constraints struct {
	DietTags           []string `json:"diet_tags,omitempty"`
	AllergyTags        []string `json:"allergy_tags,omitempty"`
	AllergyIngredients []string `json:"allergy_ingredients,omitempty"`
	CuisineTags        []string `json:"cuisine_tags,omitempty"`
	Meals              []string `json:"meals"`
	Dishes             []string `json:"dishes"`
	CalorieBand        *Band    `json:"calorie_band,omitempty"`
	TimeBand           *Band    `json:"time_band,omitempty"`
	Beginner           bool     `json:"beginner"`
}

// Warning describes an answer that was ignored or defaulted.
type Warning struct {
	Field  string `json:"field"`
	Value  string `json:"value"`
	Reason string `json:"reason"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s=%q: %s", w.Field, w.Value, w.Reason)
}

// Options tunes normalisation.
type Options struct {
	// IngredientScreening expands allergy markers into ingredient substrings.
	IngredientScreening bool
}

// DefaultOptions returns the default normalisation options.
func DefaultOptions() Options {
	return Options{IngredientScreening: true}
}

// Normalize maps answers to constraints. It never fails.
func Normalize(a Answers, opts Options) (Constraints, []Warning) {
	n := normalizer{warnings: append([]Warning(nil), a.invalid...)}
	c := Constraints{}

	n.diet(a.Diet, &c, opts)
	c.CalorieBand = n.band("calories", a.Calories, calorieBands, calorieNone)
	c.TimeBand = n.band("time", a.Time, timeBands, timeNone)
	c.CuisineTags = n.cuisine(a.Cuisine)
	c.Beginner = n.skill(a.Skill)
	c.Meals = n.list("meals", a.Meals, meals, nil)
	c.Dishes = n.list("dishes", a.Dishes, dishes, dishAliases)

	if len(c.Meals) == 0 {
		c.Meals = append([]string(nil), DefaultMeals...)
	}
	if len(c.Dishes) == 0 {
		c.Dishes = []string{DefaultDish}
	}
	return c, n.warnings
}

type normalizer struct {
	warnings []Warning
}

func (n *normalizer) warn(field, value, reason string) {
	n.warnings = append(n.warnings, Warning{Field: field, Value: value, Reason: reason})
}

func (n *normalizer) diet(values []string, c *Constraints, opts Options) {
	var include, allergies []string
	for _, raw := range values {
		v := canonical(raw)
		if v == "" {
			continue
		}
		if v == dietNoRestriction || v == "none" || v == "no-restriction" {
			c.DietTags, c.AllergyTags, c.AllergyIngredients = nil, nil, nil
			return
		}
		if tag, ok := lookup(v, dietInclusions, nil); ok {
			include = appendUnique(include, tag)
			continue
		}
		if tag, ok := lookup(v, allergyMarkers, allergyAliases); ok {
			allergies = appendUnique(allergies, tag)
			continue
		}
		n.warn("diet", raw, "unknown selection")
	}

	c.DietTags = include
	c.AllergyTags = allergies
	if opts.IngredientScreening {
		for _, a := range allergies {
			for _, ing := range AllergyIngredients[a] {
				c.AllergyIngredients = appendUnique(c.AllergyIngredients, ing)
			}
		}
	}
}

func (n *normalizer) band(field, raw string, table map[string]Band, none string) *Band {
	v := canonical(raw)
	if v == "" || v == none || v == "none" {
		return nil
	}
	b, ok := table[v]
	if !ok {
		n.warn(field, raw, "not a known band, treating as no restriction")
		return nil
	}
	return &b
}

func (n *normalizer) cuisine(values []string) []string {
	var out []string
	for _, raw := range values {
		v := canonical(raw)
		if v == "" || v == cuisineAny || v == "any" || v == "any-cuisine" {
			continue
		}
		tag, ok := lookup(v, cuisines, nil)
		if !ok {
			n.warn("cuisine", raw, "unknown cuisine")
			continue
		}
		out = appendUnique(out, tag)
	}
	return out
}

func (n *normalizer) skill(raw string) bool {
	v := canonical(raw)
	return v == skillBeginner || v == "beginner"
}

func (n *normalizer) list(field string, values []string, table, aliases map[string]string) []string {
	var out []string
	for _, raw := range values {
		v := canonical(raw)
		if v == "" {
			continue
		}
		tag, ok := lookup(v, table, aliases)
		if !ok {
			n.warn(field, raw, "unknown selection")
			continue
		}
		out = appendUnique(out, tag)
	}
	return out
}

// lookup resolves v as a numeric code, a canonical tag name, or an alias.
func lookup(v string, table, aliases map[string]string) (string, bool) {
	if tag, ok := table[v]; ok {
		return tag, true
	}
	if tag, ok := aliases[v]; ok {
		return tag, true
	}
	for _, tag := range table {
		if tag == v {
			return tag, true
		}
	}
	return "", false
}

func canonical(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "_", "-")
	if s == "eggs-dairy" {
		return "eggs_dairy"
	}
	return s
}

func appendUnique(list []string, v string) []string {
	for _, x := range list {
		if x == v {
			return list
		}
	}
	return append(list, v)
}
