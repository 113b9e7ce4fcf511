// Package recommend fills a meal plan from a recipe collection. Each slot is
// queried with every constraint first; when nothing matches, constraints are
// dropped in a fixed order until a recipe is found or the ladder runs out.
package recommend

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/rcliao/recipe-match/internal/calorie"
	"github.com/rcliao/recipe-match/internal/model"
	"github.com/rcliao/recipe-match/internal/preference"
	"github.com/rcliao/recipe-match/internal/store"
)

// ErrCorpusUnavailable is returned when the recipe collection cannot be reached.
var ErrCorpusUnavailable = errors.New("recipe corpus unavailable")

// Rand is the randomness the engine consumes. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// Recorder receives slot outcomes. internal/metrics provides a Prometheus
// implementation.
type Recorder interface {
	Request(status string)
	SlotFilled(meal, level string)
	SlotEmpty(meal string)
}

type nopRecorder struct{}

func (nopRecorder) Request(string)            {}
func (nopRecorder) SlotFilled(string, string) {}
func (nopRecorder) SlotEmpty(string)          {}

// Options tunes the engine.
type Options struct {
	// CandidateLimit caps how many matches are fetched per query before one
	// is picked at random.
	CandidateLimit int
	// IngredientScreening also excludes recipes whose ingredients mention an
	// allergen.
	IngredientScreening bool
	// DegradedFallback fills otherwise empty slots with any unused recipe
	// that passes allergy screening.
	DegradedFallback bool
	Tables           calorie.Tables
}

// DefaultOptions returns the engine defaults.
func DefaultOptions() Options {
	return Options{
		CandidateLimit:      25,
		IngredientScreening: true,
		DegradedFallback:    true,
		Tables:              calorie.DefaultTables(),
	}
}

// Config wires an Engine's collaborators. Zero values get defaults.
type Config struct {
	Options Options
	Rand    Rand
	Logger  *zap.Logger
	Metrics Recorder
}

// SlotOutcome records how one slot was filled.
type SlotOutcome struct {
	Meal     string `json:"meal"`
	Dish     string `json:"dish,omitempty"`
	RecipeID string `json:"recipe_id,omitempty"`
	Level    Level  `json:"level"`
	Filled   bool   `json:"filled"`
	Degraded bool   `json:"degraded,omitempty"`
}

// Plan is the result of one Recommend call. Recipes holds an entry for every
// requested meal, possibly empty.
type Plan struct {
	Meals       []string                  `json:"meals"`
	Recipes     map[string][]model.Recipe `json:"recipes"`
	Slots       []SlotOutcome             `json:"slots"`
	Warnings    []string                  `json:"warnings,omitempty"`
	Constraints preference.Constraints    `json:"constraints"`
	Allocation  calorie.Allocation        `json:"allocation"`
}

// Engine recommends recipes from a collection. It is not safe for
// concurrent use because it owns a single random source.
type Engine struct {
	coll store.Collection
	opts Options
	rng  Rand
	log  *zap.Logger
	rec  Recorder
}

// NewEngine returns an Engine over coll.
func NewEngine(coll store.Collection, cfg Config) *Engine {
	e := &Engine{
		coll: coll,
		opts: cfg.Options,
		rng:  cfg.Rand,
		log:  cfg.Logger,
		rec:  cfg.Metrics,
	}
	if e.opts.CandidateLimit <= 0 {
		e.opts.CandidateLimit = DefaultOptions().CandidateLimit
	}
	if e.opts.Tables.Meals == nil {
		e.opts.Tables = calorie.DefaultTables()
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if e.log == nil {
		e.log = zap.NewNop()
	}
	if e.rec == nil {
		e.rec = nopRecorder{}
	}
	return e
}

func (e *Engine) constraints(a preference.Answers) (preference.Constraints, []string) {
	c, warns := preference.Normalize(a, preference.Options{IngredientScreening: e.opts.IngredientScreening})
	var msgs []string
	for _, w := range warns {
		e.log.Warn("answer ignored",
			zap.String("field", w.Field),
			zap.String("value", w.Value),
			zap.String("reason", w.Reason))
		msgs = append(msgs, w.String())
	}
	return c, msgs
}

// Recommend fills one recipe per slot: a single slot for breakfast and
// brunch, one per requested dish for lunch and dinner. No recipe appears
// twice in a plan. When the collection is unreachable the returned plan is
// empty and the error wraps ErrCorpusUnavailable.
func (e *Engine) Recommend(ctx context.Context, a preference.Answers) (*Plan, error) {
	c, warnings := e.constraints(a)
	plan := &Plan{
		Meals:       c.Meals,
		Warnings:    warnings,
		Constraints: c,
	}

	if err := e.coll.Ping(ctx); err != nil {
		e.log.Error("corpus unavailable", zap.Error(err))
		e.rec.Request("unavailable")
		plan.Recipes = assemble(c.Meals, nil, e.rng)
		return plan, fmt.Errorf("%w: %v", ErrCorpusUnavailable, err)
	}

	plan.Allocation = calorie.Allocate(c, e.opts.Tables)

	s := &session{
		coll:     e.coll,
		rng:      e.rng,
		log:      e.log,
		rec:      e.rec,
		limit:    e.opts.CandidateLimit,
		degraded: e.opts.DegradedFallback,
		c:        c,
		alloc:    plan.Allocation,
		used:     map[string]struct{}{},
		recipes:  map[string][]model.Recipe{},
	}

	for _, slot := range slots(c) {
		if err := s.fill(ctx, slot); err != nil {
			e.rec.Request("error")
			return nil, err
		}
	}

	plan.Recipes = assemble(c.Meals, s.recipes, e.rng)
	plan.Slots = s.slots
	plan.Warnings = append(plan.Warnings, s.warnings...)
	e.rec.Request("ok")

	e.log.Info("recommendation complete",
		zap.Strings("meals", c.Meals),
		zap.Int("slots", len(s.slots)),
		zap.Int("filled", len(s.usedIDs)))
	return plan, nil
}

// slots expands meals into slots in request order.
func slots(c preference.Constraints) []Slot {
	var out []Slot
	for _, meal := range c.Meals {
		if !preference.HasDishes(meal) {
			out = append(out, Slot{Meal: meal})
			continue
		}
		for _, dish := range c.Dishes {
			out = append(out, Slot{Meal: meal, Dish: dish})
		}
	}
	return out
}

// SlotQuery lists the filter documents a slot would be queried with.
type SlotQuery struct {
	Slot
	Window  *calorie.Window `json:"window,omitempty"`
	Queries []LevelQuery    `json:"queries"`
}

// LevelQuery is one rung's filter document.
type LevelQuery struct {
	Level  Level          `json:"level"`
	Filter map[string]any `json:"filter"`
}

// Explanation is the result of Explain.
type Explanation struct {
	Constraints preference.Constraints `json:"constraints"`
	Allocation  calorie.Allocation     `json:"allocation"`
	Slots       []SlotQuery            `json:"slots"`
	Warnings    []string               `json:"warnings,omitempty"`
}

// Explain returns the filters each slot would try, in order, without running
// any query. Rungs that repeat an earlier filter are omitted. The used-id
// clause is absent because it depends on earlier picks.
func (e *Engine) Explain(a preference.Answers) *Explanation {
	c, warnings := e.constraints(a)
	alloc := calorie.Allocate(c, e.opts.Tables)
	ex := &Explanation{Constraints: c, Allocation: alloc, Warnings: warnings}

	rungs := append([]rung{exact}, ladder...)
	if e.opts.DegradedFallback {
		rungs = append(rungs, fallback)
	}

	for _, slot := range slots(c) {
		b := NewBuilder(c, alloc, slot, nil)
		sq := SlotQuery{Slot: slot}
		if w, ok := alloc.Window(slot.Meal, slot.Dish); ok {
			sq.Window = &w
		}
		seen := map[string]bool{}
		for _, r := range rungs {
			f := b.Filter(r.keep)
			if seen[f.String()] {
				continue
			}
			seen[f.String()] = true
			sq.Queries = append(sq.Queries, LevelQuery{Level: r.level, Filter: f.Document()})
		}
		ex.Slots = append(ex.Slots, sq)
	}
	return ex
}
