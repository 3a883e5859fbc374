package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/soumyadeepdutta/tamperproof-users/internal/domain/proof"
	domain "github.com/soumyadeepdutta/tamperproof-users/internal/domain/user"
)

type GetUserByIDInput struct {
	ID string
}

type GetUserByIDOutput struct {
	User  UserOutput
	Proof proof.Proof
}

type GetUserByID interface {
	Execute(ctx context.Context, in GetUserByIDInput) (GetUserByIDOutput, error)
}

type getUserByID struct {
	store domain.Store
}

func NewGetUserByID(store domain.Store) GetUserByID {
	return &getUserByID{store: store}
}

func (uc *getUserByID) Execute(ctx context.Context, in GetUserByIDInput) (GetUserByIDOutput, error) {
	if err := domain.ValidateID(in.ID); err != nil {
		return GetUserByIDOutput{}, ErrInvalidUserID
	}

	u, p, err := uc.store.GetByID(ctx, in.ID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return GetUserByIDOutput{}, ErrUserNotFound
		}
		return GetUserByIDOutput{}, fmt.Errorf("%w: %v", ErrGetUserByID, err)
	}

	return GetUserByIDOutput{User: toUserOutput(u), Proof: p}, nil
}
