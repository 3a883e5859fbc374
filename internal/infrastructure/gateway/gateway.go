// Package gateway is the boundary to the external record store. It speaks
// PostgreSQL wire protocol through pgx and exposes statement-level execute and
// query calls, mapping engine failures onto a small set of error kinds.
package gateway

import (
	"context"
	"errors"

	"github.com/soumyadeepdutta/tamperproof-users/internal/domain/proof"
)

var (
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrStatementFailed      = errors.New("statement failed")
	ErrAlreadyExists        = errors.New("already exists")
)

// Statement is SQL text plus either named parameters (@name) or positional
// arguments ($n). Named takes precedence when both are set.
type Statement struct {
	Text  string
	Named map[string]any
	Args  []any
}

func SQL(text string, args ...any) Statement {
	return Statement{Text: text, Args: args}
}

func Named(text string, params map[string]any) Statement {
	return Statement{Text: text, Named: params}
}

type ExecResult struct {
	AffectedRows int64
	Proof        proof.Proof
}

type Row []any

type QueryResult struct {
	Columns []string
	Rows    []Row
	Proof   proof.Proof
}

type Credentials struct {
	URL      string
	User     string
	Password string
	Database string
}

// Store is the statement interface the application layer depends on.
type Store interface {
	Execute(ctx context.Context, stmt Statement) (ExecResult, error)
	Query(ctx context.Context, stmt Statement) (QueryResult, error)
}

// Admin covers database-level operations used during setup.
type Admin interface {
	CreateDatabase(ctx context.Context, name string) error
	UseDatabase(ctx context.Context, name string) error
}

// IgnoreExists swallows ErrAlreadyExists for idempotent setup steps.
func IgnoreExists(err error) error {
	if errors.Is(err, ErrAlreadyExists) {
		return nil
	}
	return err
}
