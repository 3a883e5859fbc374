package user

import (
	"context"
	"fmt"
	"time"

	"github.com/soumyadeepdutta/tamperproof-users/internal/domain/proof"
	domain "github.com/soumyadeepdutta/tamperproof-users/internal/domain/user"
)

type CreateUserInput struct {
	ID    string
	Name  string
	Email string
}

type CreateUserOutput struct {
	User  UserOutput
	Proof proof.Proof
}

type CreateUser interface {
	Execute(ctx context.Context, in CreateUserInput) (CreateUserOutput, error)
}

type createUser struct {
	store domain.Store
	now   func() time.Time
}

func NewCreateUser(store domain.Store) CreateUser {
	return &createUser{store: store, now: time.Now}
}

func (uc *createUser) Execute(ctx context.Context, in CreateUserInput) (CreateUserOutput, error) {
	u, err := domain.NewUser(in.ID, in.Name, in.Email, uc.now())
	if err != nil {
		return CreateUserOutput{}, fmt.Errorf("%w: %v", ErrInvalidUserInput, err)
	}

	p, err := uc.store.Create(ctx, u)
	if err != nil {
		return CreateUserOutput{}, fmt.Errorf("%w: %v", ErrCreateFailed, err)
	}

	return CreateUserOutput{User: toUserOutput(u), Proof: p}, nil
}
