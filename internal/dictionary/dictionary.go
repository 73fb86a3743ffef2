// internal/dictionary/dictionary.go
//
// SQLite-backed dictionary used as a game.Validator.
// Responsibilities:
//   - Opening SQLite with safe defaults (WAL, busy timeout, foreign keys).
//   - Applying the embedded sql/*.sql migrations (idempotent, recorded in _migrations).
//   - Importing word lists and answering membership checks.
//
// The dictionary is read-mostly: words are imported once (e.g. at startup from
// the configured word lists) and then only queried.
package dictionary

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

//go:embed sql/*.sql
var migrations embed.FS

// DB is a handle to the dictionary database.
type DB struct {
	sql *sql.DB
}

// Open opens (and creates if missing) the dictionary at dsn and applies migrations.
func Open(dsn string) (*DB, error) {
	// Ensure directory exists for ./data/dictionary.db, etc.
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &DB{sql: db}, nil
}

// Close releases the database.
func (d *DB) Close() error { return d.sql.Close() }

// migrate applies the embedded migrations in lexical order, each in its own
// transaction, skipping those already recorded in _migrations.
func migrate(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	files, err := fs.Glob(migrations, "sql/*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		var done int
		err := db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, f).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", f).Msg("already applied")
			continue
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("query _migrations: %w", err)
		}

		sqlBytes, err := migrations.ReadFile(f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(string(sqlBytes)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", f, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", f, err)
		}
		log.Info().Str("migration", f).Msg("applied")
	}
	return nil
}

// Import inserts words, lowercased, ignoring duplicates. Answers are also
// flagged so they can be told apart from guess-only words.
// Returns the number of new rows.
func (d *DB) Import(ctx context.Context, words []string, answer bool) (int, error) {
	tx, err := d.sql.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO words (word, answer) VALUES (?, ?)
		ON CONFLICT(word) DO UPDATE SET answer = MAX(answer, excluded.answer)`)
	if err != nil {
		_ = tx.Rollback()
		return 0, err
	}
	defer stmt.Close()

	before, err := countTx(ctx, tx)
	if err != nil {
		_ = tx.Rollback()
		return 0, err
	}
	flag := 0
	if answer {
		flag = 1
	}
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if _, err := stmt.ExecContext(ctx, w, flag); err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("insert %q: %w", w, err)
		}
	}
	after, err := countTx(ctx, tx)
	if err != nil {
		_ = tx.Rollback()
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return after - before, nil
}

func countTx(ctx context.Context, tx *sql.Tx) (int, error) {
	var n int
	err := tx.QueryRowContext(ctx, `SELECT COUNT(1) FROM words`).Scan(&n)
	return n, err
}

// Validate implements game.Validator: a word is valid if it is in the dictionary.
// Database errors are returned as-is so the engine reports them as a service failure.
func (d *DB) Validate(ctx context.Context, word string) (bool, error) {
	var one int
	err := d.sql.QueryRowContext(ctx, `SELECT 1 FROM words WHERE word=?`, strings.ToLower(word)).Scan(&one)
	switch {
	case err == sql.ErrNoRows:
		return false, nil
	case err != nil:
		return false, fmt.Errorf("dictionary lookup: %w", err)
	}
	return true, nil
}

// Stats returns counts of stored words: (answers, total).
func (d *DB) Stats(ctx context.Context) (answers int, total int, err error) {
	err = d.sql.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(answer), 0), COUNT(1) FROM words`,
	).Scan(&answers, &total)
	return answers, total, err
}
