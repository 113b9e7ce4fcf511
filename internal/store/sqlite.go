package store

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/rcliao/recipe-match/internal/filter"
	"github.com/rcliao/recipe-match/internal/model"
)

var _ Store = (*SQLiteStore)(nil)

// timeFormat is fixed width so created_at sorts lexically.
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

const recipeColumns = `r.id, r.name, r.minutes, r.description, r.ingredients, r.steps, r.tags, r.nutrition, r.created_at`

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db      *sql.DB
	path    string
	entropy *rand.Rand
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		path:    dbPath,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS recipes (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		minutes     INTEGER NOT NULL DEFAULT 0,
		description TEXT,
		ingredients TEXT NOT NULL DEFAULT '[]',
		steps       TEXT NOT NULL DEFAULT '[]',
		tags        TEXT NOT NULL DEFAULT '[]',
		calories    REAL NOT NULL DEFAULT 0,
		nutrition   TEXT,
		created_at  TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_recipes_minutes ON recipes(minutes);
	CREATE INDEX IF NOT EXISTS idx_recipes_calories ON recipes(calories);
	CREATE INDEX IF NOT EXISTS idx_recipes_created ON recipes(created_at, id);

	CREATE TABLE IF NOT EXISTS recipe_tags (
		recipe_id TEXT NOT NULL REFERENCES recipes(id) ON DELETE CASCADE,
		tag       TEXT NOT NULL,
		PRIMARY KEY (recipe_id, tag)
	);
	CREATE INDEX IF NOT EXISTS idx_recipe_tags_tag ON recipe_tags(tag);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Ping checks the database connection.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteStore) Put(ctx context.Context, r model.Recipe) (*model.Recipe, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	out, err := s.put(ctx, tx, r)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SQLiteStore) put(ctx context.Context, tx *sql.Tx, r model.Recipe) (*model.Recipe, error) {
	if r.ID == "" {
		r.ID = s.newID()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}

	ingredients, err := encodeColumn(r.ID, "ingredients", nonNil(r.Ingredients))
	if err != nil {
		return nil, err
	}
	steps, err := encodeColumn(r.ID, "steps", nonNil(r.Steps))
	if err != nil {
		return nil, err
	}
	tags, err := encodeColumn(r.ID, "tags", nonNil(r.Tags))
	if err != nil {
		return nil, err
	}
	nutrition, err := encodeColumn(r.ID, "nutrition", r.Nutrition)
	if err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO recipes (id, name, minutes, description, ingredients, steps, tags, calories, nutrition, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name = excluded.name, minutes = excluded.minutes, description = excluded.description,
		   ingredients = excluded.ingredients, steps = excluded.steps, tags = excluded.tags,
		   calories = excluded.calories, nutrition = excluded.nutrition`,
		r.ID, r.Name, r.Minutes, r.Description, ingredients, steps, tags,
		r.Calories(), nutrition, r.CreatedAt.UTC().Format(timeFormat))
	if err != nil {
		return nil, fmt.Errorf("insert recipe: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM recipe_tags WHERE recipe_id = ?`, r.ID); err != nil {
		return nil, fmt.Errorf("clear tags: %w", err)
	}
	for _, tag := range r.Tags {
		_, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO recipe_tags (recipe_id, tag) VALUES (?, ?)`, r.ID, tag)
		if err != nil {
			return nil, fmt.Errorf("insert tag: %w", err)
		}
	}

	return &r, nil
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (*model.Recipe, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+recipeColumns+` FROM recipes r WHERE r.id = ?`, id)
	r, err := scanRecipe(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// Find renders f to SQL and returns up to limit matches ordered by insertion.
func (s *SQLiteStore) Find(ctx context.Context, f filter.Filter, limit int) ([]model.Recipe, error) {
	where, args, err := renderSQL(f)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = -1
	}

	query := `SELECT ` + recipeColumns + ` FROM recipes r WHERE ` + where +
		` ORDER BY r.created_at, r.id LIMIT ?`
	args = append(args, limit)

	return s.query(ctx, query, args...)
}

func (s *SQLiteStore) List(ctx context.Context, p ListParams) ([]model.Recipe, error) {
	return s.Find(ctx, listFilter(p), listLimit(p.Limit))
}

func (s *SQLiteStore) Rm(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM recipes WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) query(ctx context.Context, query string, args ...interface{}) ([]model.Recipe, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recipes []model.Recipe
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, r)
	}
	return recipes, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRecipe(row scanner) (model.Recipe, error) {
	var r model.Recipe
	var description, nutrition sql.NullString
	var ingredients, steps, tags, createdAt string

	err := row.Scan(
		&r.ID, &r.Name, &r.Minutes, &description, &ingredients, &steps, &tags, &nutrition, &createdAt,
	)
	if err != nil {
		return r, err
	}

	r.Description = description.String
	if r.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return r, fmt.Errorf("recipe %s: created_at: %w", r.ID, err)
	}
	if err := decodeColumn(r.ID, "ingredients", ingredients, &r.Ingredients); err != nil {
		return r, err
	}
	if err := decodeColumn(r.ID, "steps", steps, &r.Steps); err != nil {
		return r, err
	}
	if err := decodeColumn(r.ID, "tags", tags, &r.Tags); err != nil {
		return r, err
	}
	if nutrition.Valid {
		if err := decodeColumn(r.ID, "nutrition", nutrition.String, &r.Nutrition); err != nil {
			return r, err
		}
	}

	return r, nil
}

func encodeColumn(id, name string, v interface{}) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("recipe %s: encode %s: %w", id, name, err)
	}
	return string(data), nil
}

func decodeColumn(id, name, data string, dst interface{}) error {
	if err := json.Unmarshal([]byte(data), dst); err != nil {
		return fmt.Errorf("recipe %s: decode %s: %w", id, name, err)
	}
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// renderSQL translates a filter tree into a WHERE fragment over alias r.
func renderSQL(f filter.Filter) (string, []interface{}, error) {
	switch f.Op {
	case filter.OpAnd:
		if len(f.Clauses) == 0 {
			return "1=1", nil, nil
		}
		parts := make([]string, 0, len(f.Clauses))
		var args []interface{}
		for _, c := range f.Clauses {
			part, a, err := renderSQL(c)
			if err != nil {
				return "", nil, err
			}
			parts = append(parts, "("+part+")")
			args = append(args, a...)
		}
		return strings.Join(parts, " AND "), args, nil

	case filter.OpAll:
		if len(f.Values) == 0 {
			return "1=1", nil, nil
		}
		parts := make([]string, 0, len(f.Values))
		var args []interface{}
		for _, v := range f.Values {
			part, a, err := memberSQL(f.Field, []string{v})
			if err != nil {
				return "", nil, err
			}
			parts = append(parts, part)
			args = append(args, a...)
		}
		return strings.Join(parts, " AND "), args, nil

	case filter.OpIn:
		if len(f.Values) == 0 {
			return "1=0", nil, nil
		}
		return memberSQL(f.Field, f.Values)

	case filter.OpNin:
		if len(f.Values) == 0 {
			return "1=1", nil, nil
		}
		part, args, err := memberSQL(f.Field, f.Values)
		if err != nil {
			return "", nil, err
		}
		return "NOT " + part, args, nil

	case filter.OpRange:
		col, err := scalarColumn(f.Field)
		if err != nil {
			return "", nil, err
		}
		where := []string{"1=1"}
		var args []interface{}
		if f.Min != nil {
			where = append(where, col+" >= ?")
			args = append(args, *f.Min)
		}
		if f.Max != nil {
			where = append(where, col+" <= ?")
			args = append(args, *f.Max)
		}
		return strings.Join(where, " AND "), args, nil

	case filter.OpNone:
		src, err := listSource(f.Field)
		if err != nil {
			return "", nil, err
		}
		if len(f.Values) == 0 {
			return "1=1", nil, nil
		}
		conds := make([]string, len(f.Values))
		args := make([]interface{}, len(f.Values))
		for i, v := range f.Values {
			conds[i] = "instr(lower(x.v), ?) > 0"
			args[i] = strings.ToLower(v)
		}
		return fmt.Sprintf("NOT EXISTS (SELECT 1 FROM %s WHERE %s)", src, strings.Join(conds, " OR ")), args, nil
	}
	return "", nil, fmt.Errorf("unsupported filter op %q", f.Op)
}

// memberSQL renders "field holds at least one of values".
func memberSQL(field filter.Field, values []string) (string, []interface{}, error) {
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(values)), ",")
	args := make([]interface{}, len(values))
	for i, v := range values {
		args[i] = v
	}

	if field == filter.FieldID {
		return "r.id IN (" + placeholders + ")", args, nil
	}
	src, err := listSource(field)
	if err != nil {
		return "", nil, err
	}
	return fmt.Sprintf("EXISTS (SELECT 1 FROM %s WHERE x.v IN (%s))", src, placeholders), args, nil
}

// listSource returns a row source exposing a list field's elements as x.v.
func listSource(field filter.Field) (string, error) {
	switch field {
	case filter.FieldTags:
		return "(SELECT t.tag AS v FROM recipe_tags t WHERE t.recipe_id = r.id) x", nil
	case filter.FieldIngredients:
		return "(SELECT j.value AS v FROM json_each(r.ingredients) j) x", nil
	}
	return "", fmt.Errorf("field %q is not a list", field)
}

func scalarColumn(field filter.Field) (string, error) {
	switch field {
	case filter.FieldMinutes:
		return "r.minutes", nil
	case filter.FieldCalories:
		return "r.calories", nil
	}
	return "", fmt.Errorf("field %q is not numeric", field)
}
