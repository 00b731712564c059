package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/SingSongScreamAlong/ok-box-box/pkg/profile"
)

// SQLiteStore persists discipline profiles in a SQLite database. Profiles are
// stored as JSON documents keyed by ID; the category is indexed separately
// for lookup. The store implements profile.Source so a registry can load
// straight from it.
type SQLiteStore struct {
	db *sql.DB
}

// Config configures the SQLite profile store.
type Config struct {
	// DBPath is the path to the SQLite database file.
	DBPath string

	// BusyTimeout is how long to wait for locks before failing.
	// Default: 5 seconds.
	BusyTimeout time.Duration
}

// Open opens (creating if necessary) a SQLite profile store.
func Open(cfg Config) (*SQLiteStore, error) {
	if cfg.DBPath == "" {
		return nil, fmt.Errorf("db path cannot be empty")
	}
	if cfg.BusyTimeout == 0 {
		cfg.BusyTimeout = 5 * time.Second
	}

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=%d&_synchronous=NORMAL",
		cfg.DBPath, int(cfg.BusyTimeout.Milliseconds()))

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS discipline_profiles (
		id TEXT PRIMARY KEY,
		category TEXT NOT NULL,
		document TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_profiles_category ON discipline_profiles(category);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Put validates and upserts a profile.
func (s *SQLiteStore) Put(ctx context.Context, p *profile.Profile) error {
	if p == nil || p.ID == "" {
		return fmt.Errorf("profile ID cannot be empty")
	}
	if err := p.Validate(); err != nil {
		return err
	}

	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to serialize profile %q: %w", p.ID, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO discipline_profiles (id, category, document, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			category = excluded.category,
			document = excluded.document,
			updated_at = excluded.updated_at`,
		p.ID, string(p.Category), string(doc), time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to store profile %q: %w", p.ID, err)
	}
	return nil
}

// Get returns the profile with the given ID.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*profile.Profile, error) {
	var doc string
	err := s.db.QueryRowContext(ctx,
		`SELECT document FROM discipline_profiles WHERE id = ?`, id,
	).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &profile.NotFoundError{Key: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load profile %q: %w", id, err)
	}

	return decodeProfile(doc)
}

// List returns all stored profiles, optionally filtered by category. An empty
// category returns everything.
func (s *SQLiteStore) List(ctx context.Context, cat profile.Category) ([]*profile.Profile, error) {
	query := `SELECT document FROM discipline_profiles ORDER BY id`
	args := []any{}
	if cat != "" {
		query = `SELECT document FROM discipline_profiles WHERE category = ? ORDER BY id`
		args = append(args, string(cat))
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*profile.Profile
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("failed to scan profile row: %w", err)
		}
		p, err := decodeProfile(doc)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// Delete removes a profile by ID.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM discipline_profiles WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete profile %q: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return &profile.NotFoundError{Key: id}
	}
	return nil
}

// LoadProfiles implements profile.Source.
func (s *SQLiteStore) LoadProfiles(ctx context.Context) ([]*profile.Profile, error) {
	return s.List(ctx, "")
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func decodeProfile(doc string) (*profile.Profile, error) {
	var p profile.Profile
	if err := json.Unmarshal([]byte(doc), &p); err != nil {
		return nil, fmt.Errorf("failed to decode stored profile: %w", err)
	}
	return &p, nil
}
