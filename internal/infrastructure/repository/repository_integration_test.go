package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/soumyadeepdutta/tamperproof-users/internal/domain/dataset"
	domain "github.com/soumyadeepdutta/tamperproof-users/internal/domain/user"
	"github.com/soumyadeepdutta/tamperproof-users/internal/infrastructure/gateway"
	"github.com/soumyadeepdutta/tamperproof-users/internal/infrastructure/repository"
)

func connectIntegration(t *testing.T) *gateway.PgxStore {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL is not set")
	}

	store, err := gateway.Connect(context.Background(), gateway.Credentials{URL: dsn})
	if err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	t.Cleanup(store.Close)
	return store
}

func TestUserRepositoryIntegration(t *testing.T) {
	store := connectIntegration(t)
	ctx := context.Background()
	repo := repository.NewUserRepository(store)

	if err := repo.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensure schema failed: %v", err)
	}
	if err := repo.EnsureSchema(ctx); err != nil {
		t.Fatalf("second ensure schema failed: %v", err)
	}

	id := fmt.Sprintf("it-%d", time.Now().UnixNano())
	u, err := domain.NewUser(id, "Alice", "alice@example.com", time.Now())
	if err != nil {
		t.Fatalf("new user failed: %v", err)
	}

	p, err := repo.Create(ctx, u)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if p.TransactionID == "" {
		t.Fatal("expected a transaction id")
	}

	got, _, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.ID != u.ID || got.Name != u.Name || got.Email != u.Email || !got.CreatedAt.Equal(u.CreatedAt) {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, u)
	}

	u.Name = "Alice B"
	if _, err := repo.Update(ctx, u); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	revs, _, err := repo.History(ctx, id)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(revs) != 2 || revs[0].Operation != "INSERT" || revs[1].User.Name != "Alice B" {
		t.Fatalf("unexpected history: %+v", revs)
	}

	if _, _, err := repo.GetByID(ctx, id+"-missing"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestCandidateRepositoryIntegration(t *testing.T) {
	store := connectIntegration(t)
	ctx := context.Background()
	repo := repository.NewCandidateRepository(store)

	if err := repo.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensure schema failed: %v", err)
	}

	before, err := repo.CountRecords(ctx)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}

	records := make([]dataset.Record, 3)
	for i := range records {
		rec := dataset.NewRecord()
		rec.Set("application_id", dataset.StringPtr(fmt.Sprintf("IT-%d", i)))
		rec.Set("remarks", dataset.StringPtr("it's fine"))
		records[i] = rec
	}

	n, err := repo.InsertBatch(ctx, dataset.Batch{Records: records})
	if err != nil {
		t.Fatalf("insert batch failed: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 affected rows, got %d", n)
	}

	after, err := repo.CountRecords(ctx)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if after-before != 3 {
		t.Fatalf("expected 3 new rows, got %d", after-before)
	}

	sample, err := repo.SampleRecords(ctx, 1)
	if err != nil {
		t.Fatalf("sample failed: %v", err)
	}
	if len(sample) != 1 {
		t.Fatalf("expected 1 sampled record, got %d", len(sample))
	}
}
