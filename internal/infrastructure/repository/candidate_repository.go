package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/soumyadeepdutta/tamperproof-users/internal/domain/dataset"
	"github.com/soumyadeepdutta/tamperproof-users/internal/infrastructure/gateway"
)

type CandidateRepository struct {
	store   gateway.Store
	builder InsertBuilder
}

func NewCandidateRepository(store gateway.Store) *CandidateRepository {
	return &CandidateRepository{
		store:   store,
		builder: NewInsertBuilder(CandidatesTable, dataset.Columns),
	}
}

func (r *CandidateRepository) EnsureSchema(ctx context.Context) error {
	return applySchema(ctx, r.store, candidateSchema())
}

func (r *CandidateRepository) InsertBatch(ctx context.Context, batch dataset.Batch) (int64, error) {
	if batch.Len() == 0 {
		return 0, nil
	}

	rows := make([][]*string, len(batch.Records))
	for i, rec := range batch.Records {
		rows[i] = rec.Values
	}

	res, err := r.store.Execute(ctx, r.builder.Build(rows))
	if err != nil {
		return 0, fmt.Errorf("insert batch at offset %d: %w", batch.Offset, err)
	}
	return res.AffectedRows, nil
}

func (r *CandidateRepository) CountRecords(ctx context.Context) (int64, error) {
	res, err := r.store.Query(ctx, gateway.SQL("SELECT COUNT(*) FROM "+pgx.Identifier{CandidatesTable}.Sanitize()))
	if err != nil {
		return 0, fmt.Errorf("count candidates: %w", err)
	}
	if len(res.Rows) != 1 {
		return 0, fmt.Errorf("count candidates: expected 1 row, got %d", len(res.Rows))
	}

	var n int64
	if err := gateway.Scan(res.Rows[0], &n); err != nil {
		return 0, fmt.Errorf("count candidates: %w", err)
	}
	return n, nil
}

func (r *CandidateRepository) SampleRecords(ctx context.Context, limit int) ([]dataset.Record, error) {
	if limit <= 0 {
		return nil, nil
	}

	quoted := make([]string, len(dataset.Columns))
	for i, c := range dataset.Columns {
		quoted[i] = pgx.Identifier{c}.Sanitize()
	}
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY id LIMIT $1",
		strings.Join(quoted, ", "), pgx.Identifier{CandidatesTable}.Sanitize())

	res, err := r.store.Query(ctx, gateway.SQL(query, limit))
	if err != nil {
		return nil, fmt.Errorf("sample candidates: %w", err)
	}

	out := make([]dataset.Record, 0, len(res.Rows))
	for _, row := range res.Rows {
		rec, err := decodeRecord(row)
		if err != nil {
			return nil, fmt.Errorf("sample candidates: %w", err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func decodeRecord(row gateway.Row) (dataset.Record, error) {
	rec := dataset.NewRecord()
	dest := make([]any, len(rec.Values))
	for i := range rec.Values {
		dest[i] = &rec.Values[i]
	}
	if err := gateway.Scan(row, dest...); err != nil {
		return dataset.Record{}, err
	}
	return rec, nil
}
