package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"neotrack/internal/storage"
)

const table = "local_storage"

const schema = `
CREATE TABLE IF NOT EXISTS local_storage (
    item_key   TEXT PRIMARY KEY,
    item_value TEXT NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type Store struct {
	db *pgxpool.Pool
}

var _ storage.Store = (*Store)(nil)

// New connects to dsn and creates the table if it is missing.
func New(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, errors.New("empty postgres dsn")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: pool}, nil
}

func (s *Store) Close() error {
	s.db.Close()
	return nil
}

func (s *Store) GetItem(ctx context.Context, key string) (string, bool, error) {
	query, args, err := psql.Select("item_value").
		From(table).
		Where(sq.Eq{"item_key": key}).
		ToSql()
	if err != nil {
		return "", false, fmt.Errorf("build select: %w", err)
	}

	var value string
	err = s.db.QueryRow(ctx, query, args...).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get item %s: %w", key, err)
	}
	return value, true, nil
}

func (s *Store) SetItem(ctx context.Context, key, value string) error {
	if err := storage.ValidateKey(key); err != nil {
		return err
	}
	query, args, err := upsertQuery(key, value)
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}
	if _, err := s.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("set item %s: %w", key, err)
	}
	return nil
}

func (s *Store) RemoveItem(ctx context.Context, key string) error {
	query, args, err := psql.Delete(table).Where(sq.Eq{"item_key": key}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}
	if _, err := s.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("remove item %s: %w", key, err)
	}
	return nil
}

func upsertQuery(key, value string) (string, []any, error) {
	return psql.Insert(table).
		Columns("item_key", "item_value").
		Values(key, value).
		Suffix("ON CONFLICT (item_key) DO UPDATE SET item_value = EXCLUDED.item_value, updated_at = NOW()").
		ToSql()
}
