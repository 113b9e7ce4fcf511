package recommend

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/rcliao/recipe-match/internal/calorie"
	"github.com/rcliao/recipe-match/internal/model"
	"github.com/rcliao/recipe-match/internal/preference"
	"github.com/rcliao/recipe-match/internal/store"
)

// session is the state of one Recommend call. Nothing in it outlives the
// request.
type session struct {
	coll     store.Collection
	rng      Rand
	log      *zap.Logger
	rec      Recorder
	limit    int
	degraded bool

	c     preference.Constraints
	alloc calorie.Allocation

	used     map[string]struct{}
	usedIDs  []string
	recipes  map[string][]model.Recipe
	slots    []SlotOutcome
	warnings []string
}

func (s *session) markUsed(id string) {
	if _, ok := s.used[id]; ok {
		return
	}
	s.used[id] = struct{}{}
	s.usedIDs = append(s.usedIDs, id)
}

// fill finds one recipe for slot: exact query, then the relaxation ladder,
// then the generic fallback when enabled. A slot nothing matches stays empty.
func (s *session) fill(ctx context.Context, slot Slot) error {
	b := NewBuilder(s.c, s.alloc, slot, s.usedIDs)
	tried := map[string]bool{}

	rec, ok, err := s.try(ctx, b, exact, tried)
	if err != nil {
		return fmt.Errorf("fill %s: %w", slot, err)
	}
	level := LevelExact

	if !ok {
		rec, level, ok, err = s.relax(ctx, slot, b, tried)
		if err != nil {
			return fmt.Errorf("relax %s: %w", slot, err)
		}
	}

	degraded := false
	if !ok && s.degraded {
		rec, ok, err = s.try(ctx, b, fallback, tried)
		if err != nil {
			return fmt.Errorf("fallback %s: %w", slot, err)
		}
		if ok {
			level, degraded = LevelFallback, true
			rec = rec.WithTags(slot.Meal, slot.Dish)
			msg := fmt.Sprintf("%s: no recipe matched any relaxation level, using %q as a generic fallback", slot, rec.Name)
			s.warnings = append(s.warnings, msg)
			s.log.Warn("degraded fallback",
				zap.String("slot", slot.String()),
				zap.String("recipe_id", rec.ID))
		}
	}

	out := SlotOutcome{Meal: slot.Meal, Dish: slot.Dish, Level: LevelNone}
	if !ok {
		s.log.Debug("slot left empty", zap.String("slot", slot.String()))
		s.rec.SlotEmpty(slot.Meal)
		s.slots = append(s.slots, out)
		return nil
	}

	s.markUsed(rec.ID)
	s.recipes[slot.Meal] = append(s.recipes[slot.Meal], rec)

	out.RecipeID = rec.ID
	out.Level = level
	out.Filled = true
	out.Degraded = degraded
	s.slots = append(s.slots, out)

	s.log.Debug("slot filled",
		zap.String("slot", slot.String()),
		zap.String("recipe_id", rec.ID),
		zap.Stringer("level", level))
	s.rec.SlotFilled(slot.Meal, level.String())
	return nil
}

// try runs the rung's filter unless an identical filter was already tried,
// and picks one candidate uniformly at random.
func (s *session) try(ctx context.Context, b *Builder, r rung, tried map[string]bool) (model.Recipe, bool, error) {
	f := b.Filter(r.keep)
	key := f.String()
	if tried[key] {
		return model.Recipe{}, false, nil
	}
	tried[key] = true

	candidates, err := s.coll.Find(ctx, f, s.limit)
	if err != nil {
		return model.Recipe{}, false, err
	}
	s.log.Debug("query",
		zap.Stringer("level", r.level),
		zap.String("filter", key),
		zap.Int("candidates", len(candidates)))
	if len(candidates) == 0 {
		return model.Recipe{}, false, nil
	}
	return candidates[s.rng.Intn(len(candidates))], true, nil
}
