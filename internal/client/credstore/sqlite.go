package credstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/crmclient/internal/client/migrations"
	"github.com/dmitrijs2005/crmclient/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/crmclient/internal/common"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps the token in the local metadata table.
type SQLiteStore struct {
	db   *sql.DB
	repo metadata.Repository
}

// RunMigrations applies the embedded schema to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// OpenSQLite opens (creating if needed) the database at dsn and migrates it.
func OpenSQLite(ctx context.Context, dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dsn, err)
	}
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		return nil, errors.Join(err, db.Close())
	}
	return NewSQLiteStore(db), nil
}

// NewSQLiteStore wraps an already migrated database.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db, repo: metadata.NewSQLiteRepository(db)}
}

func (s *SQLiteStore) Save(ctx context.Context, token string) error {
	if err := validateToken(token); err != nil {
		return err
	}
	return s.repo.Put(ctx, common.TokenStorageKey, token)
}

func (s *SQLiteStore) Load(ctx context.Context) (string, bool, error) {
	return s.repo.Lookup(ctx, common.TokenStorageKey)
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	return s.repo.Remove(ctx, common.TokenStorageKey)
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
