package store

import (
	"context"
	"os"
	"sort"

	"github.com/rcliao/recipe-match/internal/model"
)

// Stats holds corpus statistics.
type Stats struct {
	Backend      string     `json:"backend"`
	DBPath       string     `json:"db_path,omitempty"`
	DBSizeBytes  int64      `json:"db_size_bytes,omitempty"`
	TotalRecipes int        `json:"total_recipes"`
	AvgMinutes   float64    `json:"avg_minutes"`
	AvgCalories  float64    `json:"avg_calories"`
	Tags         []TagStats `json:"tags"`
}

// TagStats holds per-tag counts.
type TagStats struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// Stats returns database statistics.
func (s *SQLiteStore) Stats(ctx context.Context) (*Stats, error) {
	st := &Stats{Backend: "sqlite", DBPath: s.path}

	if info, err := os.Stat(s.path); err == nil {
		st.DBSizeBytes = info.Size()
	}

	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(AVG(minutes), 0), COALESCE(AVG(calories), 0) FROM recipes`,
	).Scan(&st.TotalRecipes, &st.AvgMinutes, &st.AvgCalories)
	if err != nil {
		return st, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT tag, COUNT(*) AS cnt
		FROM recipe_tags
		GROUP BY tag ORDER BY cnt DESC, tag`)
	if err != nil {
		return st, err
	}
	defer rows.Close()

	for rows.Next() {
		var ts TagStats
		if err := rows.Scan(&ts.Tag, &ts.Count); err != nil {
			return st, err
		}
		st.Tags = append(st.Tags, ts)
	}

	return st, rows.Err()
}

// tally builds Stats from a full scan for the in-process backends.
func tally(backend string, recipes []model.Recipe) *Stats {
	st := &Stats{Backend: backend, TotalRecipes: len(recipes)}
	counts := map[string]int{}
	var minutes, calories float64
	for _, r := range recipes {
		minutes += float64(r.Minutes)
		calories += r.Calories()
		seen := map[string]bool{}
		for _, t := range r.Tags {
			if !seen[t] {
				seen[t] = true
				counts[t]++
			}
		}
	}
	if len(recipes) > 0 {
		st.AvgMinutes = minutes / float64(len(recipes))
		st.AvgCalories = calories / float64(len(recipes))
	}
	for tag, n := range counts {
		st.Tags = append(st.Tags, TagStats{Tag: tag, Count: n})
	}
	sort.Slice(st.Tags, func(i, j int) bool {
		if st.Tags[i].Count != st.Tags[j].Count {
			return st.Tags[i].Count > st.Tags[j].Count
		}
		return st.Tags[i].Tag < st.Tags[j].Tag
	})
	return st
}
