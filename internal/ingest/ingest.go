// Package ingest reads recipe files for import and fills in the fields the
// engine filters on from whatever raw shape the source provided.
package ingest

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/rcliao/recipe-match/internal/model"
)

// Rejection describes a recipe that failed validation.
type Rejection struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	Err   string `json:"error"`
}

// Ingester normalises and validates recipes before they are stored.
type Ingester struct {
	validate *validator.Validate
	log      *zap.Logger
	steps    StepOptions
}

// New returns an Ingester. A nil logger discards output.
func New(log *zap.Logger) *Ingester {
	if log == nil {
		log = zap.NewNop()
	}
	return &Ingester{
		validate: validator.New(),
		log:      log,
		steps:    DefaultStepOptions(),
	}
}

// Read decodes a JSON array of recipes or one recipe object per line.
func Read(r io.Reader) ([]model.Recipe, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	if data[0] == '[' {
		var recipes []model.Recipe
		if err := json.Unmarshal(data, &recipes); err != nil {
			return nil, fmt.Errorf("parse JSON array: %w", err)
		}
		return recipes, nil
	}

	var recipes []model.Recipe
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := bytes.TrimSpace(sc.Bytes())
		if len(text) == 0 {
			continue
		}
		var rec model.Recipe
		if err := json.Unmarshal(text, &rec); err != nil {
			return nil, fmt.Errorf("parse line %d: %w", line, err)
		}
		recipes = append(recipes, rec)
	}
	return recipes, sc.Err()
}

// Normalize fills minutes, nutrition and steps from their raw text forms
// when the structured field is empty, and cleans tags and ingredients.
func (in *Ingester) Normalize(r *model.Recipe) {
	if r.Minutes == 0 && r.TotalTime != "" {
		if m, ok := ParseDuration(r.TotalTime); ok {
			r.Minutes = m
		} else {
			in.log.Debug("unreadable duration", zap.String("recipe", r.Name), zap.String("total_time", r.TotalTime))
		}
	}
	if r.Nutrition.Calories == 0 && r.NutritionLabel != "" {
		r.Nutrition = ParseNutritionLabel(r.NutritionLabel)
	}
	if len(r.Steps) == 0 && r.Directions != "" {
		r.Steps = SplitDirections(r.Directions, in.steps)
	}

	r.Name = strings.TrimSpace(r.Name)
	r.Tags = cleanList(r.Tags, true)
	r.Ingredients = cleanList(r.Ingredients, false)
}

// Prepare normalises every recipe and splits them into valid recipes and
// rejections.
func (in *Ingester) Prepare(recipes []model.Recipe) ([]model.Recipe, []Rejection) {
	var ok []model.Recipe
	var rejected []Rejection
	for i := range recipes {
		r := recipes[i]
		in.Normalize(&r)
		if err := in.validate.Struct(r); err != nil {
			in.log.Warn("recipe rejected", zap.Int("index", i), zap.String("name", r.Name), zap.Error(err))
			rejected = append(rejected, Rejection{Index: i, Name: r.Name, Err: err.Error()})
			continue
		}
		ok = append(ok, r)
	}
	return ok, rejected
}

// cleanList trims entries and drops empties and duplicates. Tags are also
// lowercased with spaces turned into dashes.
func cleanList(list []string, tag bool) []string {
	var out []string
	seen := map[string]bool{}
	for _, v := range list {
		v = strings.TrimSpace(v)
		if tag {
			v = strings.ReplaceAll(strings.ToLower(v), " ", "-")
		}
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
