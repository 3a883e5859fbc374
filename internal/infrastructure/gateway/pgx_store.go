package gateway

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/soumyadeepdutta/tamperproof-users/internal/domain/proof"
)

// DescriptorCommitAcknowledged marks results whose transaction the store
// acknowledged as committed.
const DescriptorCommitAcknowledged = "store-commit-acknowledged"

const currentTxIDSQL = "SELECT pg_current_xact_id()::text"

type PgxStore struct {
	mu   sync.RWMutex
	pool *pgxpool.Pool
	cfg  *pgxpool.Config
}

// Connect logs in to the store and verifies the session with a ping.
func Connect(ctx context.Context, creds Credentials) (*PgxStore, error) {
	cfg, err := pgxpool.ParseConfig(creds.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: parse store url: %v", ErrAuthenticationFailed, err)
	}
	if creds.User != "" {
		cfg.ConnConfig.User = creds.User
	}
	if creds.Password != "" {
		cfg.ConnConfig.Password = creds.Password
	}
	if creds.Database != "" {
		cfg.ConnConfig.Database = creds.Database
	}

	pool, err := openPool(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &PgxStore{pool: pool, cfg: cfg}, nil
}

func openPool(ctx context.Context, cfg *pgxpool.Config) (*pgxpool.Pool, error) {
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthenticationFailed, err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		if pgCode(err) == "3D000" {
			return nil, fmt.Errorf("%w: %w", ErrStatementFailed, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrAuthenticationFailed, err)
	}
	return pool, nil
}

func (s *PgxStore) current() *pgxpool.Pool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pool
}

// Execute runs a mutating statement in its own transaction and reports the
// store's transaction id for it.
func (s *PgxStore) Execute(ctx context.Context, stmt Statement) (ExecResult, error) {
	tx, err := s.current().Begin(ctx)
	if err != nil {
		return ExecResult{}, classify(err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, stmt.Text, stmt.arguments()...)
	if err != nil {
		return ExecResult{}, classify(err)
	}

	var txID string
	if err := tx.QueryRow(ctx, currentTxIDSQL).Scan(&txID); err != nil {
		return ExecResult{}, classify(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return ExecResult{}, classify(err)
	}

	return ExecResult{
		AffectedRows: tag.RowsAffected(),
		Proof: proof.Proof{
			Verified:      true,
			TransactionID: txID,
			Descriptor:    DescriptorCommitAcknowledged,
		},
	}, nil
}

func (s *PgxStore) Query(ctx context.Context, stmt Statement) (QueryResult, error) {
	rows, err := s.current().Query(ctx, stmt.Text, stmt.arguments()...)
	if err != nil {
		return QueryResult{}, classify(err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return QueryResult{}, classify(err)
		}
		out = append(out, Row(values))
	}
	if err := rows.Err(); err != nil {
		return QueryResult{}, classify(err)
	}

	fields := rows.FieldDescriptions()
	columns := make([]string, len(fields))
	for i, f := range fields {
		columns[i] = f.Name
	}

	return QueryResult{
		Columns: columns,
		Rows:    out,
		Proof:   proof.Proof{Verified: true, Descriptor: DescriptorCommitAcknowledged},
	}, nil
}

func (s *PgxStore) CreateDatabase(ctx context.Context, name string) error {
	if _, err := s.current().Exec(ctx, "CREATE DATABASE "+pgx.Identifier{name}.Sanitize()); err != nil {
		return classify(err)
	}
	return nil
}

// UseDatabase reconnects the session to another database. The previous pool is
// closed only after the new one answers a ping.
func (s *PgxStore) UseDatabase(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cfg.ConnConfig.Database == name {
		return nil
	}

	cfg := s.cfg.Copy()
	cfg.ConnConfig.Database = name

	pool, err := openPool(ctx, cfg)
	if err != nil {
		return err
	}

	old := s.pool
	s.pool = pool
	s.cfg = cfg
	old.Close()
	return nil
}

func (s *PgxStore) Close() {
	s.current().Close()
}

func (stmt Statement) arguments() []any {
	if stmt.Named != nil {
		return []any{pgx.NamedArgs(stmt.Named)}
	}
	return stmt.Args
}

func classify(err error) error {
	switch pgCode(err) {
	case "28P01", "28000":
		return fmt.Errorf("%w: %w", ErrAuthenticationFailed, err)
	case "42P04", "42P07", "42710":
		return fmt.Errorf("%w: %w", ErrAlreadyExists, err)
	}
	return fmt.Errorf("%w: %w", ErrStatementFailed, err)
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
