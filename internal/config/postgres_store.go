package config

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// PostgresStoreConfig holds configuration for the PostgreSQL-backed document store.
type PostgresStoreConfig struct {
	DSN string
	// Table defaults to "app_config".
	Table string
	// ID selects the row holding the document (default: "default").
	ID string
}

// PostgresStore keeps the document in a single row. The column is TEXT rather
// than JSONB because JSONB does not preserve object key order, and the registry
// relies on insertion order.
type PostgresStore struct {
	db     *sql.DB
	table  string
	id     string
	logger *zap.Logger
}

// NewPostgresStore opens the database and creates the table if needed.
func NewPostgresStore(ctx context.Context, cfg PostgresStoreConfig, logger *zap.Logger) (*PostgresStore, error) {
	if cfg.DSN == "" {
		return nil, errors.New("postgres DSN is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	table := cfg.Table
	if table == "" {
		table = "app_config"
	}
	id := cfg.ID
	if id == "" {
		id = "default"
	}

	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	s := &PostgresStore{db: db, table: pq.QuoteIdentifier(table), id: id, logger: logger}
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id TEXT PRIMARY KEY,
		document TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`, s.table)
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", s.table, err)
	}
	return s, nil
}

// Close closes the database handle.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// Seed inserts doc only when the row does not exist yet. It reports whether it wrote.
func (s *PostgresStore) Seed(ctx context.Context, doc []byte) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		fmt.Sprintf(`INSERT INTO %s (id, document) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING`, s.table),
		s.id, string(doc))
	if err != nil {
		return false, fmt.Errorf("failed to seed app config: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *PostgresStore) LoadAppConfig(ctx context.Context) ([]byte, error) {
	var doc string
	err := s.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT document FROM %s WHERE id = $1`, s.table), s.id).Scan(&doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: row %s", ErrDocumentNotFound, s.id)
		}
		return nil, fmt.Errorf("failed to read app config: %w", err)
	}
	return []byte(doc), nil
}

func (s *PostgresStore) SaveAppConfig(ctx context.Context, doc []byte) error {
	if !gjson.ValidBytes(doc) {
		return errors.New("refusing to save invalid JSON app config")
	}
	_, err := s.db.ExecContext(ctx, fmt.Sprintf(`INSERT INTO %s (id, document) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET document = EXCLUDED.document, updated_at = now()`, s.table),
		s.id, string(doc))
	if err != nil {
		return fmt.Errorf("failed to write app config: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpdateAppConfig(ctx context.Context, fn UpdateFunc) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				s.logger.Warn("rollback failed", zap.Error(rbErr))
			}
		}
	}()

	var current string
	err = tx.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT document FROM %s WHERE id = $1 FOR UPDATE`, s.table), s.id).Scan(&current)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: row %s", ErrDocumentNotFound, s.id)
		}
		return fmt.Errorf("failed to lock app config: %w", err)
	}

	next, err := fn([]byte(current))
	if err != nil {
		return err
	}
	if !gjson.ValidBytes(next) {
		err = errors.New("refusing to save invalid JSON app config")
		return err
	}

	if _, err = tx.ExecContext(ctx,
		fmt.Sprintf(`UPDATE %s SET document = $2, updated_at = now() WHERE id = $1`, s.table),
		s.id, string(next)); err != nil {
		return fmt.Errorf("failed to write app config: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit app config: %w", err)
	}
	return nil
}

var _ AppConfigService = (*PostgresStore)(nil)
