package store

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/dshills/trilex/internal/dictionary"
)

//go:embed migrations/*.sql
var migrations embed.FS

// SQLite stores the dictionary in one table ordered by a position column.
type SQLite struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens or creates the database at path and applies the schema.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, &StoreError{Backend: "sqlite", Op: "open", Err: err}
	}
	s, err := NewSQLite(db, path)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewSQLite wraps an open database and applies the schema.
func NewSQLite(db *sql.DB, path string) (*SQLite, error) {
	if err := InitDB(db); err != nil {
		return nil, &StoreError{Backend: "sqlite", Op: "migrate", Err: err}
	}
	return &SQLite{db: db, path: path}, nil
}

// InitDB runs the embedded migrations in file name order.
func InitDB(db *sql.DB) error {
	names, err := fs.Glob(migrations, "migrations/*.sql")
	if err != nil {
		return err
	}
	sort.Strings(names)
	for _, name := range names {
		data, err := migrations.ReadFile(name)
		if err != nil {
			return err
		}
		for _, stmt := range strings.Split(string(data), ";") {
			stmt = strings.TrimSpace(stmt)
			if stmt == "" {
				continue
			}
			if _, err := db.Exec(stmt); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
		}
	}
	return nil
}

// Name implements Store.
func (s *SQLite) Name() string {
	return "sqlite:" + s.path
}

// Load implements Store.
func (s *SQLite) Load(ctx context.Context) (dictionary.Snapshot, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key, korean, description, english, arabic, verified FROM entries ORDER BY position, key`)
	if err != nil {
		return dictionary.Snapshot{}, &StoreError{Backend: "sqlite", Op: "load", Err: err}
	}
	defer rows.Close()

	snap := dictionary.NewSnapshot()
	for rows.Next() {
		var (
			key, ko, desc, en, ar string
			verified              bool
		)
		if err := rows.Scan(&key, &ko, &desc, &en, &ar, &verified); err != nil {
			return dictionary.Snapshot{}, &StoreError{Backend: "sqlite", Op: "load", Err: err}
		}
		snap.Korean.Set(key, ko)
		snap.Descriptions.Set(key, desc)
		snap.English.Set(key, en)
		snap.Arabic.Set(key, ar)
		snap.Verified.Set(key, verified)
	}
	if err := rows.Err(); err != nil {
		return dictionary.Snapshot{}, &StoreError{Backend: "sqlite", Op: "load", Err: err}
	}
	return snap, nil
}

// Save implements Store. The table is replaced in a single transaction.
func (s *SQLite) Save(ctx context.Context, snap dictionary.Snapshot) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &StoreError{Backend: "sqlite", Op: "save", Err: err}
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
			err = &StoreError{Backend: "sqlite", Op: "save", Err: err}
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM entries`); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO entries (key, position, korean, description, english, arabic, verified)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for pos, key := range snap.Korean.Keys() {
		ko, _ := snap.Korean.Get(key)
		desc, _ := snap.Descriptions.Get(key)
		en, _ := snap.English.Get(key)
		ar, _ := snap.Arabic.Get(key)
		verified, _ := snap.Verified.Get(key)
		if _, err = stmt.ExecContext(ctx, key, pos, ko, desc, en, ar, verified); err != nil {
			return fmt.Errorf("insert %q: %w", key, err)
		}
	}
	return tx.Commit()
}

// Close implements Store.
func (s *SQLite) Close() error {
	return s.db.Close()
}
