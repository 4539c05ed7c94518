package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"shopsmart/internal/shopping"
)

type Store struct {
	db *sql.DB
}

func Open(dbPath string) (*Store, error) {
	if dbPath == "" {
		return nil, errors.New("db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, err
	}
	// modernc.org/sqlite registers as "sqlite" and wants a file: DSN.
	dsn := sqliteDSN(dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS items (
	position INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	amount INTEGER NOT NULL DEFAULT 0,
	image_url TEXT DEFAULT NULL,
	created_at TEXT NOT NULL DEFAULT ''
);`
	if _, err := s.db.Exec(ddl); err != nil {
		return err
	}
	return s.ensureItemColumns()
}

// ensureItemColumns upgrades databases written before date_added was stored.
func (s *Store) ensureItemColumns() error {
	required := map[string]string{
		"date_added": "ALTER TABLE items ADD COLUMN date_added INTEGER NOT NULL DEFAULT 0;",
	}
	existing := map[string]struct{}{}
	rows, err := s.db.Query(`PRAGMA table_info(items);`)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var cid int
		var name, ctype string
		var notnull, pk int
		var dflt sql.NullString
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk); err != nil {
			return err
		}
		existing[name] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	for col, alter := range required {
		if _, ok := existing[col]; ok {
			continue
		}
		if _, err := s.db.Exec(alter); err != nil {
			return err
		}
	}
	return nil
}

// LoadItems returns the saved list in its original order. Rows without a
// date_added fall back to created_at, then to the load time.
func (s *Store) LoadItems(ctx context.Context) ([]shopping.Item, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, amount, image_url, date_added, created_at FROM items ORDER BY position;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	now := time.Now()
	var items []shopping.Item
	for rows.Next() {
		var it shopping.Item
		var image sql.NullString
		var createdStr string
		if err := rows.Scan(&it.Name, &it.Amount, &image, &it.DateAdded, &createdStr); err != nil {
			return nil, err
		}
		if image.Valid {
			it.ImageURL = image.String
		}
		if it.DateAdded == 0 {
			if created, err := time.Parse(time.RFC3339, createdStr); err == nil {
				it.DateAdded = created.UnixMilli()
			} else {
				it.DateAdded = now.UnixMilli()
			}
		}
		if it.Amount < 0 {
			it.Amount = 0
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// SaveItems replaces the stored list with items in a single transaction.
// Saving the same list twice leaves the same rows behind.
func (s *Store) SaveItems(ctx context.Context, items []shopping.Item) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM items;`); err != nil {
		tx.Rollback()
		return fmt.Errorf("clear items: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO items (position, name, amount, image_url, date_added, created_at) VALUES (?, ?, ?, ?, ?, ?);`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()
	for i, it := range items {
		image := sql.NullString{}
		if it.ImageURL != "" {
			image = sql.NullString{String: it.ImageURL, Valid: true}
		}
		created := it.Added().UTC().Format(time.RFC3339)
		if _, err := stmt.ExecContext(ctx, i, it.Name, it.Amount, image, it.DateAdded, created); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert item %q: %w", it.Name, err)
		}
	}
	return tx.Commit()
}

func sqliteDSN(path string) string {
	if strings.HasPrefix(path, "file:") {
		return path
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		path = abs
	}
	u := url.URL{
		Scheme: "file",
		Path:   path,
	}
	q := u.Query()
	q.Set("mode", "rwc")
	q.Set("_pragma", "busy_timeout(5000)")
	u.RawQuery = q.Encode()
	return u.String()
}
