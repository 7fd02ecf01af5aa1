package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"catalog-dashboard/models"
	"catalog-dashboard/utils"
)

const titleColumns = 13

// PostgresStore keeps the cleaned catalog in a PostgreSQL table. It is both a
// TitleWriter (export) and a TitleSource (serving the exported catalog back).
type PostgresStore struct {
	db   *sql.DB
	name string
}

// NewPostgresStore opens a connection to PostgreSQL, waits for it to accept
// pings, runs schema migrations, and returns a ready-to-use store.
func NewPostgresStore(ctx context.Context, dsn string, retry *utils.RetryConfig) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	if err := retry.Do(ctx, "postgres ping", func() error { return db.PingContext(ctx) }); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}

	ps := &PostgresStore{db: db, name: "postgres:titles"}
	if err := ps.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return ps, nil
}

func (ps *PostgresStore) migrate(ctx context.Context) error {
	_, err := ps.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS titles (
			id           BIGINT PRIMARY KEY,
			show_id      TEXT    NOT NULL DEFAULT '',
			title        TEXT    NOT NULL DEFAULT '',
			type         TEXT    NOT NULL,
			director     TEXT    NOT NULL DEFAULT '',
			cast_members TEXT    NOT NULL DEFAULT '',
			country      TEXT    NOT NULL DEFAULT '',
			date_added   DATE,
			release_year INTEGER,
			rating       TEXT    NOT NULL DEFAULT '',
			duration     TEXT    NOT NULL DEFAULT '',
			listed_in    TEXT    NOT NULL,
			description  TEXT    NOT NULL DEFAULT ''
		);

		CREATE INDEX IF NOT EXISTS idx_titles_type         ON titles(type);
		CREATE INDEX IF NOT EXISTS idx_titles_release_year ON titles(release_year);
		CREATE INDEX IF NOT EXISTS idx_titles_country      ON titles(country);
	`)
	return err
}

func (ps *PostgresStore) Name() string { return ps.name }

// Write replaces the table contents with the given titles in one transaction.
// An empty slice leaves the table empty.
func (ps *PostgresStore) Write(ctx context.Context, titles []models.Title) error {
	tx, err := ps.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM titles"); err != nil {
		return fmt.Errorf("postgres: clear: %w", err)
	}

	const batchSize = 200
	for i := 0; i < len(titles); i += batchSize {
		end := i + batchSize
		if end > len(titles) {
			end = len(titles)
		}
		batch := titles[i:end]
		if _, err := tx.ExecContext(ctx, buildInsertQuery(len(batch)), insertArgs(batch)...); err != nil {
			return fmt.Errorf("postgres: insert batch at %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	return nil
}

// buildInsertQuery returns a multi-row INSERT with n rows of placeholders.
func buildInsertQuery(n int) string {
	valueStrings := make([]string, 0, n)
	for idx := 0; idx < n; idx++ {
		base := idx * titleColumns
		ph := make([]string, titleColumns)
		for c := range ph {
			ph[c] = "$" + strconv.Itoa(base+c+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(ph, ",")+")")
	}

	return fmt.Sprintf(`
		INSERT INTO titles (id, show_id, title, type, director, cast_members, country,
			date_added, release_year, rating, duration, listed_in, description)
		VALUES %s
		ON CONFLICT (id) DO NOTHING
	`, strings.Join(valueStrings, ","))
}

func insertArgs(batch []models.Title) []any {
	args := make([]any, 0, len(batch)*titleColumns)
	for _, t := range batch {
		var added, year any
		if t.DateAdded != nil {
			added = *t.DateAdded
		}
		if t.ReleaseYear != nil {
			year = *t.ReleaseYear
		}
		args = append(args,
			t.ID, t.ShowID, t.Title, t.Type, t.Director, t.Cast, t.Country,
			added, year, t.Rating, t.Duration, t.ListedIn, t.Description)
	}
	return args
}

// ReadRaw returns the stored catalog as raw rows so it passes through the
// same cleaning as a CSV source.
func (ps *PostgresStore) ReadRaw(ctx context.Context) ([]*models.RawTitle, error) {
	rows, err := ps.db.QueryContext(ctx, `
		SELECT show_id, title, type, director, cast_members, country,
		       date_added, release_year, rating, duration, listed_in, description
		FROM titles
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch all: %w", err)
	}
	defer rows.Close()

	var raw []*models.RawTitle
	for rows.Next() {
		r := &models.RawTitle{}
		var added sql.NullTime
		var year sql.NullInt64
		if err := rows.Scan(
			&r.ShowID, &r.Title, &r.Type, &r.Director, &r.Cast, &r.Country,
			&added, &year, &r.Rating, &r.Duration, &r.ListedIn, &r.Description,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		if added.Valid {
			r.DateAdded = added.Time.Format(time.DateOnly)
		}
		if year.Valid {
			r.ReleaseYear = strconv.FormatInt(year.Int64, 10)
		}
		raw = append(raw, r)
	}
	return raw, rows.Err()
}

func (ps *PostgresStore) Close() error {
	return ps.db.Close()
}
