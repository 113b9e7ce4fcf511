package store

import (
	"context"

	"github.com/rcliao/recipe-match/internal/model"
)

// Search finds recipes whose name, description or any ingredient contains
// the query substring.
func (s *SQLiteStore) Search(ctx context.Context, p SearchParams) ([]model.Recipe, error) {
	query := "%" + p.Query + "%"

	sql := `
		SELECT ` + recipeColumns + `
		FROM recipes r
		WHERE r.name LIKE ? OR r.description LIKE ?
		   OR EXISTS (SELECT 1 FROM json_each(r.ingredients) j WHERE j.value LIKE ?)
		ORDER BY r.created_at, r.id
		LIMIT ?`

	return s.query(ctx, sql, query, query, query, listLimit(p.Limit))
}
