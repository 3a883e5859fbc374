package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/soumyadeepdutta/tamperproof-users/internal/domain/dataset"
	"github.com/soumyadeepdutta/tamperproof-users/internal/infrastructure/gateway"
)

const CandidatesTable = "candidates"

var userSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
    id VARCHAR(64) PRIMARY KEY,
    name VARCHAR(256) NOT NULL,
    email VARCHAR(320) NOT NULL,
    created_at BIGINT NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_users_email ON users (email)`,
	`CREATE INDEX IF NOT EXISTS idx_users_created_at ON users (created_at)`,
	`CREATE TABLE IF NOT EXISTS users_history (
    revision BIGSERIAL PRIMARY KEY,
    id VARCHAR(64) NOT NULL,
    name VARCHAR(256) NOT NULL,
    email VARCHAR(320) NOT NULL,
    created_at BIGINT NOT NULL,
    operation VARCHAR(16) NOT NULL,
    tx_id TEXT NOT NULL DEFAULT pg_current_xact_id()::text,
    recorded_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`,
	`CREATE INDEX IF NOT EXISTS idx_users_history_id ON users_history (id, revision)`,
	`CREATE OR REPLACE FUNCTION users_history_capture() RETURNS trigger AS $$
BEGIN
    INSERT INTO users_history (id, name, email, created_at, operation)
    VALUES (NEW.id, NEW.name, NEW.email, NEW.created_at, TG_OP);
    RETURN NEW;
END;
$$ LANGUAGE plpgsql`,
	`CREATE OR REPLACE TRIGGER users_history_capture
    AFTER INSERT OR UPDATE ON users
    FOR EACH ROW EXECUTE FUNCTION users_history_capture()`,
}

func candidateSchema() []string {
	cols := make([]string, 0, len(dataset.Columns)+2)
	cols = append(cols, "id BIGSERIAL PRIMARY KEY")
	for _, c := range dataset.Columns {
		colType := "VARCHAR(512)"
		if c == "remarks" {
			colType = "TEXT"
		}
		cols = append(cols, pgx.Identifier{c}.Sanitize()+" "+colType)
	}
	cols = append(cols, "imported_at TIMESTAMPTZ NOT NULL DEFAULT NOW()")

	table := pgx.Identifier{CandidatesTable}.Sanitize()
	return []string{
		fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n    %s\n)", table, strings.Join(cols, ",\n    ")),
		fmt.Sprintf("CREATE INDEX IF NOT EXISTS idx_candidates_application_id ON %s (application_id)", table),
		fmt.Sprintf("CREATE INDEX IF NOT EXISTS idx_candidates_email ON %s (email)", table),
	}
}

func applySchema(ctx context.Context, store gateway.Store, statements []string) error {
	for _, stmt := range statements {
		if _, err := store.Execute(ctx, gateway.SQL(stmt)); gateway.IgnoreExists(err) != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
