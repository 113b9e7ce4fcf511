package recommend

import (
	"context"

	"go.uber.org/zap"

	"github.com/rcliao/recipe-match/internal/model"
)

// Level is how far a slot's query was relaxed before it matched.
type Level int

const (
	LevelExact Level = iota
	LevelNoCuisine
	LevelNoCalories
	LevelNoTime
	LevelNoDiet
	LevelSlotOnly
	LevelMealOnly
	LevelFallback
	LevelNone
)

var levelNames = [...]string{
	LevelExact:      "exact",
	LevelNoCuisine:  "no-cuisine",
	LevelNoCalories: "no-calories",
	LevelNoTime:     "no-time",
	LevelNoDiet:     "no-diet",
	LevelSlotOnly:   "slot-only",
	LevelMealOnly:   "meal-only",
	LevelFallback:   "fallback",
	LevelNone:       "none",
}

func (l Level) String() string {
	if l < 0 || int(l) >= len(levelNames) {
		return "unknown"
	}
	return levelNames[l]
}

// MarshalText renders the level name in JSON output.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

type rung struct {
	level Level
	keep  func(Constraint) bool
}

var exact = rung{LevelExact, except(ConstraintMeal)}

// ladder is strictly cumulative until the last two rungs, which query a
// single tag with allergy screening ignored.
var ladder = []rung{
	{LevelNoCuisine, except(ConstraintMeal, ConstraintCuisine, ConstraintSkill)},
	{LevelNoCalories, except(ConstraintMeal, ConstraintCuisine, ConstraintSkill, ConstraintCalories)},
	{LevelNoTime, except(ConstraintMeal, ConstraintCuisine, ConstraintSkill, ConstraintCalories, ConstraintTime)},
	{LevelNoDiet, except(ConstraintMeal, ConstraintCuisine, ConstraintSkill, ConstraintCalories, ConstraintTime, ConstraintDiet)},
	{LevelSlotOnly, only(ConstraintSlot, ConstraintUsed)},
	{LevelMealOnly, only(ConstraintMeal, ConstraintUsed)},
}

// fallback ignores the slot entirely but keeps allergy screening.
var fallback = rung{LevelFallback, only(ConstraintAllergy, ConstraintIngredients, ConstraintUsed)}

// relax walks the ladder after the exact query found nothing. Rungs whose
// filter was already tried are skipped. ok is false when every rung came back
// empty.
func (s *session) relax(ctx context.Context, slot Slot, b *Builder, tried map[string]bool) (model.Recipe, Level, bool, error) {
	for _, r := range ladder {
		rec, ok, err := s.try(ctx, b, r, tried)
		if err != nil {
			return model.Recipe{}, r.level, false, err
		}
		if ok {
			s.log.Info("constraints relaxed",
				zap.String("slot", slot.String()),
				zap.Stringer("level", r.level),
				zap.String("recipe_id", rec.ID))
			return rec, r.level, true, nil
		}
	}
	return model.Recipe{}, LevelNone, false, nil
}
