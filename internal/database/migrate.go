package database

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
)

//go:embed migrations/001_initial.up.sql
var initialSchemaSQL string

// EnsureSchema applies the initial schema when the users or documents
// table is missing. The embedded SQL is idempotent.
func (db *DB) EnsureSchema(ctx context.Context) error {
	if db == nil || db.Pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}

	missing, err := db.missingTables(ctx)
	if err != nil {
		return fmt.Errorf("inspect schema: %w", err)
	}
	if len(missing) == 0 {
		slog.Info("database schema ensured")
		return nil
	}

	slog.Info("applying initial schema", "missing_tables", missing)
	if _, err := db.Pool.Exec(ctx, initialSchemaSQL); err != nil {
		return fmt.Errorf("apply initial schema: %w", err)
	}

	missing, err = db.missingTables(ctx)
	if err != nil {
		return fmt.Errorf("re-inspect schema: %w", err)
	}
	if len(missing) > 0 {
		return fmt.Errorf("schema initialization incomplete, still missing: %v", missing)
	}

	slog.Info("database schema ensured")
	return nil
}

func (db *DB) missingTables(ctx context.Context) ([]string, error) {
	required := []string{"users", "documents"}

	rows, err := db.Pool.Query(ctx, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = 'public'
		  AND table_name = ANY($1)
	`, required)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	present := map[string]bool{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		present[name] = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var missing []string
	for _, name := range required {
		if !present[name] {
			missing = append(missing, name)
		}
	}
	return missing, nil
}
