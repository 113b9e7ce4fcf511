package recommend

import (
	"github.com/rcliao/recipe-match/internal/calorie"
	"github.com/rcliao/recipe-match/internal/filter"
	"github.com/rcliao/recipe-match/internal/preference"
)

// Constraint identifies the kind of a query clause so relaxation can drop
// whole kinds at once.
type Constraint string

const (
	ConstraintDiet        Constraint = "diet"
	ConstraintAllergy     Constraint = "allergy"
	ConstraintIngredients Constraint = "allergy-ingredients"
	ConstraintSlot        Constraint = "slot"
	ConstraintMeal        Constraint = "meal"
	ConstraintSkill       Constraint = "skill"
	ConstraintCuisine     Constraint = "cuisine"
	ConstraintTime        Constraint = "time"
	ConstraintCalories    Constraint = "calories"
	ConstraintUsed        Constraint = "used"
)

// Slot is one recipe position in a plan. Dish is empty for breakfast and brunch.
type Slot struct {
	Meal string `json:"meal"`
	Dish string `json:"dish,omitempty"`
}

// Tag returns the tag a recipe must carry to fill the slot: the dish for
// lunch and dinner, the meal otherwise.
func (s Slot) Tag() string {
	if preference.HasDishes(s.Meal) && s.Dish != "" {
		return s.Dish
	}
	return s.Meal
}

func (s Slot) String() string {
	if s.Dish == "" {
		return s.Meal
	}
	return s.Meal + "/" + s.Dish
}

type clause struct {
	kind Constraint
	f    filter.Filter
}

// Builder accumulates the clauses for one slot. It never runs queries.
type Builder struct {
	clauses []clause
}

// NewBuilder collects every clause that applies to slot given the
// constraints, the calorie allocation and the ids already used.
func NewBuilder(c preference.Constraints, alloc calorie.Allocation, slot Slot, used []string) *Builder {
	b := &Builder{}

	if len(c.DietTags) > 0 {
		b.Add(ConstraintDiet, filter.All(filter.FieldTags, c.DietTags...))
	}
	if len(c.AllergyTags) > 0 {
		b.Add(ConstraintAllergy, filter.Nin(filter.FieldTags, c.AllergyTags...))
	}
	if len(c.AllergyIngredients) > 0 {
		b.Add(ConstraintIngredients, filter.NoneContaining(filter.FieldIngredients, c.AllergyIngredients...))
	}

	b.Add(ConstraintSlot, filter.All(filter.FieldTags, slot.Tag()))
	b.Add(ConstraintMeal, filter.All(filter.FieldTags, slot.Meal))

	if c.Beginner {
		b.Add(ConstraintSkill, filter.In(filter.FieldTags, preference.BeginnerTags...))
	}
	if len(c.CuisineTags) > 0 {
		b.Add(ConstraintCuisine, filter.In(filter.FieldTags, c.CuisineTags...))
	}
	if tb := c.TimeBand; tb != nil {
		if tb.Open() {
			b.Add(ConstraintTime, filter.AtLeast(filter.FieldMinutes, tb.Min))
		} else {
			b.Add(ConstraintTime, filter.Between(filter.FieldMinutes, tb.Min, tb.Max))
		}
	}
	if w, ok := alloc.Window(slot.Meal, slot.Dish); ok {
		b.Add(ConstraintCalories, filter.Between(filter.FieldCalories, float64(w.Min), float64(w.Max)))
	}
	if len(used) > 0 {
		b.Add(ConstraintUsed, filter.Nin(filter.FieldID, used...))
	}

	return b
}

// Add appends a clause of the given kind.
func (b *Builder) Add(kind Constraint, f filter.Filter) *Builder {
	b.clauses = append(b.clauses, clause{kind: kind, f: f})
	return b
}

// Filter returns the conjunction of the clauses whose kind keep accepts.
func (b *Builder) Filter(keep func(Constraint) bool) filter.Filter {
	var fs []filter.Filter
	for _, c := range b.clauses {
		if keep(c.kind) {
			fs = append(fs, c.f)
		}
	}
	return filter.And(fs...)
}

// Kinds lists the constraint kinds present, in insertion order.
func (b *Builder) Kinds() []Constraint {
	out := make([]Constraint, len(b.clauses))
	for i, c := range b.clauses {
		out[i] = c.kind
	}
	return out
}

func except(kinds ...Constraint) func(Constraint) bool {
	return func(k Constraint) bool {
		for _, d := range kinds {
			if k == d {
				return false
			}
		}
		return true
	}
}

func only(kinds ...Constraint) func(Constraint) bool {
	return func(k Constraint) bool {
		for _, d := range kinds {
			if k == d {
				return true
			}
		}
		return false
	}
}
