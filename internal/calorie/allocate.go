// Package calorie distributes a daily calorie band across meals and, for
// lunch and dinner, across the selected dish types.
package calorie

import (
	"math"

	"github.com/rcliao/recipe-match/internal/preference"
)

// Weight is the proportionality range of one meal or dish.
type Weight struct {
	Min float64 `json:"min" mapstructure:"min"`
	Max float64 `json:"max" mapstructure:"max"`
}

// Window is an inclusive calorie range in whole kcal.
type Window struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Tables holds the weight ranges used for allocation.
type Tables struct {
	Meals    map[string]Weight
	Dishes   map[string]Weight
	Fallback Weight
}

// DefaultTables returns the canonical weight tables.
func DefaultTables() Tables {
	return Tables{
		Meals: map[string]Weight{
			preference.Breakfast: {0.9, 1.1},
			preference.Brunch:    {1.8, 2.1},
			preference.Lunch:     {2.1, 2.5},
			preference.Dinner:    {1.9, 2.3},
		},
		Dishes: map[string]Weight{
			"main-dish": {2.0, 2.1},
			"side-dish": {0.9, 1.0},
			"dessert":   {0.8, 0.9},
			"appetizer": {0.6, 0.7},
			"soup":      {0.7, 0.8},
			"beverage":  {0.3, 0.3},
		},
		Fallback: Weight{1.0, 1.0},
	}
}

// Allocation maps meals, and dishes within lunch and dinner, to calorie windows.
// A zero Allocation means no calorie constraint applies anywhere.
type Allocation struct {
	Meals  map[string]Window            `json:"meals,omitempty"`
	Dishes map[string]map[string]Window `json:"dishes,omitempty"`
}

// Empty reports whether no windows were allocated.
func (a Allocation) Empty() bool {
	return len(a.Meals) == 0
}

// Window returns the window for a slot. For lunch and dinner the dish window is
// returned; otherwise the meal window.
func (a Allocation) Window(meal, dish string) (Window, bool) {
	if preference.HasDishes(meal) {
		w, ok := a.Dishes[meal][dish]
		return w, ok
	}
	w, ok := a.Meals[meal]
	return w, ok
}

// Allocate computes calorie windows for c. Each share's lower bound divides by
// the sum of the selected upper weights and its upper bound by the sum of the
// selected lower weights, so windows are wider than a proportional split.
func Allocate(c preference.Constraints, t Tables) Allocation {
	if c.CalorieBand == nil {
		return Allocation{}
	}

	a := Allocation{
		Meals:  split(c.CalorieBand.Min, c.CalorieBand.Max, c.Meals, t.Meals, t.Fallback),
		Dishes: map[string]map[string]Window{},
	}
	for _, meal := range c.Meals {
		if !preference.HasDishes(meal) {
			continue
		}
		mw := a.Meals[meal]
		a.Dishes[meal] = split(float64(mw.Min), float64(mw.Max), c.Dishes, t.Dishes, t.Fallback)
	}
	return a
}

func split(lo, hi float64, names []string, weights map[string]Weight, fallback Weight) map[string]Window {
	var sumMin, sumMax float64
	for _, name := range names {
		w := weightOf(name, weights, fallback)
		sumMin += w.Min
		sumMax += w.Max
	}

	out := make(map[string]Window, len(names))
	if sumMin <= 0 || sumMax <= 0 {
		return out
	}
	for _, name := range names {
		w := weightOf(name, weights, fallback)
		out[name] = Window{
			Min: int(math.Floor(lo * w.Min / sumMax)),
			Max: int(math.Floor(hi * w.Max / sumMin)),
		}
	}
	return out
}

func weightOf(name string, weights map[string]Weight, fallback Weight) Weight {
	if w, ok := weights[name]; ok {
		return w
	}
	return fallback
}
