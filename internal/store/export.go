package store

import (
	"context"

	"github.com/rcliao/recipe-match/internal/model"
)

// ExportAll returns every recipe in insertion order.
func (s *SQLiteStore) ExportAll(ctx context.Context) ([]model.Recipe, error) {
	return s.query(ctx, `SELECT `+recipeColumns+` FROM recipes r ORDER BY r.created_at, r.id`)
}

// Import stores recipes in a single transaction. Existing ids are replaced.
func (s *SQLiteStore) Import(ctx context.Context, recipes []model.Recipe) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	imported := 0
	for _, r := range recipes {
		if _, err := s.put(ctx, tx, r); err != nil {
			return 0, err
		}
		imported++
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return imported, nil
}
