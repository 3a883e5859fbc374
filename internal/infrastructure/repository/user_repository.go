package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/soumyadeepdutta/tamperproof-users/internal/domain/proof"
	domain "github.com/soumyadeepdutta/tamperproof-users/internal/domain/user"
	"github.com/soumyadeepdutta/tamperproof-users/internal/infrastructure/gateway"
)

const (
	insertUserSQL = `INSERT INTO users (id, name, email, created_at) VALUES (@id, @name, @email, @created_at)`
	selectUserSQL = `SELECT id, name, email, created_at FROM users WHERE id = @id`
	listUsersSQL  = `SELECT id, name, email, created_at FROM users ORDER BY created_at DESC`
	updateUserSQL = `UPDATE users SET name = @name, email = @email WHERE id = @id`
	historySQL    = `SELECT revision, operation, tx_id, recorded_at, id, name, email, created_at
FROM users_history WHERE id = @id ORDER BY revision`
	pingSQL = `SELECT 1`
)

type UserRepository struct {
	store gateway.Store
}

func NewUserRepository(store gateway.Store) *UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) EnsureSchema(ctx context.Context) error {
	return applySchema(ctx, r.store, userSchema)
}

func (r *UserRepository) Create(ctx context.Context, u domain.User) (proof.Proof, error) {
	res, err := r.store.Execute(ctx, gateway.Named(insertUserSQL, map[string]any{
		"id":         u.ID,
		"name":       u.Name,
		"email":      u.Email,
		"created_at": u.CreatedAt.UnixMilli(),
	}))
	if err != nil {
		return proof.Proof{}, fmt.Errorf("insert user: %w", err)
	}
	return res.Proof, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (domain.User, proof.Proof, error) {
	res, err := r.store.Query(ctx, gateway.Named(selectUserSQL, map[string]any{"id": id}))
	if err != nil {
		return domain.User{}, proof.Proof{}, fmt.Errorf("get user by id: %w", err)
	}
	if len(res.Rows) == 0 {
		return domain.User{}, proof.Proof{}, domain.ErrUserNotFound
	}

	u, err := decodeUser(res.Rows[0])
	if err != nil {
		return domain.User{}, proof.Proof{}, fmt.Errorf("get user by id: %w", err)
	}
	return u, res.Proof, nil
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, proof.Proof, error) {
	res, err := r.store.Query(ctx, gateway.SQL(listUsersSQL))
	if err != nil {
		return nil, proof.Proof{}, fmt.Errorf("list users: %w", err)
	}

	users := make([]domain.User, 0, len(res.Rows))
	for _, row := range res.Rows {
		u, err := decodeUser(row)
		if err != nil {
			return nil, proof.Proof{}, fmt.Errorf("list users: %w", err)
		}
		users = append(users, u)
	}
	return users, res.Proof, nil
}

func (r *UserRepository) Update(ctx context.Context, u domain.User) (proof.Proof, error) {
	res, err := r.store.Execute(ctx, gateway.Named(updateUserSQL, map[string]any{
		"id":    u.ID,
		"name":  u.Name,
		"email": u.Email,
	}))
	if err != nil {
		return proof.Proof{}, fmt.Errorf("update user: %w", err)
	}
	if res.AffectedRows == 0 {
		return proof.Proof{}, domain.ErrUserNotFound
	}
	return res.Proof, nil
}

func (r *UserRepository) History(ctx context.Context, id string) ([]domain.Revision, proof.Proof, error) {
	res, err := r.store.Query(ctx, gateway.Named(historySQL, map[string]any{"id": id}))
	if err != nil {
		return nil, proof.Proof{}, fmt.Errorf("user history: %w", err)
	}

	revisions := make([]domain.Revision, 0, len(res.Rows))
	for _, row := range res.Rows {
		if len(row) < 4 {
			return nil, proof.Proof{}, fmt.Errorf("user history: %w", &gateway.DecodeError{Index: len(row), Want: "revision row"})
		}
		var rev domain.Revision
		if err := gateway.Scan(row[:4], &rev.Revision, &rev.Operation, &rev.TransactionID, &rev.RecordedAt); err != nil {
			return nil, proof.Proof{}, fmt.Errorf("user history: %w", err)
		}
		u, err := decodeUser(row[4:])
		if err != nil {
			return nil, proof.Proof{}, fmt.Errorf("user history: %w", err)
		}
		rev.RecordedAt = rev.RecordedAt.UTC()
		rev.User = u
		revisions = append(revisions, rev)
	}
	return revisions, res.Proof, nil
}

func (r *UserRepository) Ping(ctx context.Context) error {
	res, err := r.store.Query(ctx, gateway.SQL(pingSQL))
	if err != nil {
		return err
	}
	if len(res.Rows) != 1 {
		return fmt.Errorf("ping: expected 1 row, got %d", len(res.Rows))
	}
	return nil
}

func decodeUser(row gateway.Row) (domain.User, error) {
	var (
		u         domain.User
		createdAt int64
	)
	if err := gateway.Scan(row, &u.ID, &u.Name, &u.Email, &createdAt); err != nil {
		return domain.User{}, err
	}
	u.CreatedAt = time.UnixMilli(createdAt).UTC()
	return u, nil
}
