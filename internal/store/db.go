// Package store persists pipeline records into SQLite through bun. The
// reconciler performs checksum-gated idempotent upserts, one transaction per
// source file, and owns the denormalized counters.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "github.com/mattn/go-sqlite3"
)

// Open connects to the SQLite database at dsn and wraps it in bun. Foreign
// key enforcement is required by the reconciler, so `_fk=1` is appended when
// the DSN does not already carry it.
func Open(dsn string) (*bun.DB, error) {
	if !strings.Contains(dsn, "_fk=") {
		if strings.Contains(dsn, "?") {
			dsn += "&_fk=1"
		} else {
			dsn += "?_fk=1"
		}
	}

	sqlDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", dsn, err)
	}
	// SQLite allows a single writer; a larger pool only produces lock errors.
	sqlDB.SetMaxOpenConns(1)

	return bun.NewDB(sqlDB, sqlitedialect.New()), nil
}

// RunMigrations executes every embedded .sql file in lexical order. Files
// are split on the `---bun:split` marker so each statement runs separately.
func RunMigrations(ctx context.Context, db *bun.DB, fsys fs.FS) error {
	var paths []string
	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !d.IsDir() && strings.HasSuffix(path, ".sql") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("store: walk migrations: %w", err)
	}
	sort.Strings(paths)

	for _, path := range paths {
		content, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("store: read migration %s: %w", path, err)
		}
		for _, chunk := range strings.Split(string(content), "---bun:split") {
			chunk = strings.TrimSpace(chunk)
			if chunk == "" {
				continue
			}
			if _, err := db.ExecContext(ctx, chunk); err != nil {
				return fmt.Errorf("store: apply migration %s: %w", path, err)
			}
		}
	}
	return nil
}
