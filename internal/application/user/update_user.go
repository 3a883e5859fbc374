package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/soumyadeepdutta/tamperproof-users/internal/domain/proof"
	domain "github.com/soumyadeepdutta/tamperproof-users/internal/domain/user"
)

type UpdateUserInput struct {
	ID    string
	Name  *string
	Email *string
}

type UpdateUserOutput struct {
	User  UserOutput
	Proof proof.Proof
}

type UpdateUser interface {
	Execute(ctx context.Context, in UpdateUserInput) (UpdateUserOutput, error)
}

type updateUser struct {
	store domain.Store
}

func NewUpdateUser(store domain.Store) UpdateUser {
	return &updateUser{store: store}
}

// Execute reads the user, applies the changes and reads it back so the
// response reflects what the store holds.
func (uc *updateUser) Execute(ctx context.Context, in UpdateUserInput) (UpdateUserOutput, error) {
	if err := domain.ValidateID(in.ID); err != nil {
		return UpdateUserOutput{}, ErrInvalidUserID
	}

	changes := domain.Changes{Name: in.Name, Email: in.Email}
	if changes.Empty() {
		return UpdateUserOutput{}, ErrInvalidUpdate
	}

	current, _, err := uc.store.GetByID(ctx, in.ID)
	if err != nil {
		return UpdateUserOutput{}, uc.mapErr(err)
	}

	updated, err := current.Apply(changes)
	if err != nil {
		return UpdateUserOutput{}, fmt.Errorf("%w: %v", ErrInvalidUserInput, err)
	}

	p, err := uc.store.Update(ctx, updated)
	if err != nil {
		return UpdateUserOutput{}, uc.mapErr(err)
	}

	stored, _, err := uc.store.GetByID(ctx, in.ID)
	if err != nil {
		return UpdateUserOutput{}, uc.mapErr(err)
	}

	return UpdateUserOutput{User: toUserOutput(stored), Proof: p}, nil
}

func (uc *updateUser) mapErr(err error) error {
	if errors.Is(err, domain.ErrUserNotFound) {
		return ErrUserNotFound
	}
	return fmt.Errorf("%w: %v", ErrUpdateUser, err)
}
