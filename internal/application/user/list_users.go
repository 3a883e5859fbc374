package user

import (
	"context"
	"fmt"

	"github.com/soumyadeepdutta/tamperproof-users/internal/domain/proof"
	domain "github.com/soumyadeepdutta/tamperproof-users/internal/domain/user"
)

type ListUsersOutput struct {
	Users []UserOutput
	Proof proof.Proof
}

// ListUsers returns every user, newest first. There is no pagination.
type ListUsers interface {
	Execute(ctx context.Context) (ListUsersOutput, error)
}

type listUsers struct {
	store domain.Store
}

func NewListUsers(store domain.Store) ListUsers {
	return &listUsers{store: store}
}

func (uc *listUsers) Execute(ctx context.Context) (ListUsersOutput, error) {
	users, p, err := uc.store.List(ctx)
	if err != nil {
		return ListUsersOutput{}, fmt.Errorf("%w: %v", ErrListUsers, err)
	}

	out := make([]UserOutput, 0, len(users))
	for _, u := range users {
		out = append(out, toUserOutput(u))
	}
	return ListUsersOutput{Users: out, Proof: p}, nil
}
