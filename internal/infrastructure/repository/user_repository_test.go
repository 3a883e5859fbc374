package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soumyadeepdutta/tamperproof-users/internal/domain/proof"
	domain "github.com/soumyadeepdutta/tamperproof-users/internal/domain/user"
	"github.com/soumyadeepdutta/tamperproof-users/internal/infrastructure/gateway"
	"github.com/soumyadeepdutta/tamperproof-users/internal/infrastructure/repository"
)

var createdAt = time.Date(2026, 2, 3, 4, 5, 6, 7_000_000, time.UTC)

func userRow(id, name string) gateway.Row {
	return gateway.Row{id, name, id + "@example.com", createdAt.UnixMilli()}
}

func TestUserRepositoryCreateUsesNamedParams(t *testing.T) {
	store := &fakeStore{execResult: []execReply{{res: gateway.ExecResult{AffectedRows: 1, Proof: proof.Proof{Verified: true, TransactionID: "771"}}}}}
	repo := repository.NewUserRepository(store)

	p, err := repo.Create(context.Background(), domain.User{ID: "u1", Name: "Alice", Email: "alice@example.com", CreatedAt: createdAt})
	require.NoError(t, err)
	assert.Equal(t, "771", p.TransactionID)

	require.Len(t, store.executed, 1)
	assert.Equal(t, map[string]any{
		"id":         "u1",
		"name":       "Alice",
		"email":      "alice@example.com",
		"created_at": createdAt.UnixMilli(),
	}, store.executed[0].Named)
}

func TestUserRepositoryCreateWrapsStoreError(t *testing.T) {
	store := &fakeStore{execResult: []execReply{{err: gateway.ErrStatementFailed}}}
	repo := repository.NewUserRepository(store)

	_, err := repo.Create(context.Background(), domain.User{ID: "u1"})
	require.ErrorIs(t, err, gateway.ErrStatementFailed)
}

func TestUserRepositoryGetByID(t *testing.T) {
	store := &fakeStore{queryReply: []queryReply{{res: gateway.QueryResult{Rows: []gateway.Row{userRow("u1", "Alice")}}}}}
	repo := repository.NewUserRepository(store)

	u, _, err := repo.GetByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)
	assert.Equal(t, "Alice", u.Name)
	assert.True(t, u.CreatedAt.Equal(createdAt))
	assert.Equal(t, map[string]any{"id": "u1"}, store.queried[0].Named)
}

func TestUserRepositoryGetByIDNotFound(t *testing.T) {
	repo := repository.NewUserRepository(&fakeStore{})

	_, _, err := repo.GetByID(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserRepositoryGetByIDDecodeError(t *testing.T) {
	store := &fakeStore{queryReply: []queryReply{{res: gateway.QueryResult{Rows: []gateway.Row{{"u1", "Alice"}}}}}}
	repo := repository.NewUserRepository(store)

	_, _, err := repo.GetByID(context.Background(), "u1")
	var decodeErr *gateway.DecodeError
	require.True(t, errors.As(err, &decodeErr), "got %v", err)
}

func TestUserRepositoryList(t *testing.T) {
	store := &fakeStore{queryReply: []queryReply{{res: gateway.QueryResult{Rows: []gateway.Row{userRow("u2", "Bob"), userRow("u1", "Alice")}}}}}
	repo := repository.NewUserRepository(store)

	users, _, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "u2", users[0].ID)
	assert.Contains(t, store.queried[0].Text, "ORDER BY created_at DESC")
}

func TestUserRepositoryUpdateNoRows(t *testing.T) {
	store := &fakeStore{execResult: []execReply{{res: gateway.ExecResult{AffectedRows: 0}}}}
	repo := repository.NewUserRepository(store)

	_, err := repo.Update(context.Background(), domain.User{ID: "gone", Name: "X", Email: "x@example.com"})
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserRepositoryHistory(t *testing.T) {
	recorded := time.Date(2026, 2, 3, 4, 5, 7, 0, time.UTC)
	rows := []gateway.Row{
		append(gateway.Row{int64(1), "INSERT", "700", recorded}, userRow("u1", "Alice")...),
		append(gateway.Row{int64(2), "UPDATE", "701", recorded}, userRow("u1", "X")...),
	}
	store := &fakeStore{queryReply: []queryReply{{res: gateway.QueryResult{Rows: rows}}}}
	repo := repository.NewUserRepository(store)

	revs, _, err := repo.History(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, revs, 2)
	assert.Equal(t, "INSERT", revs[0].Operation)
	assert.Equal(t, "701", revs[1].TransactionID)
	assert.Equal(t, "X", revs[1].User.Name)
	assert.Equal(t, "u1", revs[1].User.ID)
}

func TestUserRepositoryPing(t *testing.T) {
	ok := &fakeStore{queryReply: []queryReply{{res: gateway.QueryResult{Rows: []gateway.Row{{int32(1)}}}}}}
	require.NoError(t, repository.NewUserRepository(ok).Ping(context.Background()))

	down := &fakeStore{queryReply: []queryReply{{err: gateway.ErrStatementFailed}}}
	require.Error(t, repository.NewUserRepository(down).Ping(context.Background()))
}

func TestUserRepositoryEnsureSchema(t *testing.T) {
	store := &fakeStore{}
	require.NoError(t, repository.NewUserRepository(store).EnsureSchema(context.Background()))
	require.NotEmpty(t, store.executed)
	assert.Contains(t, store.executed[0].Text, "CREATE TABLE IF NOT EXISTS users")
}
