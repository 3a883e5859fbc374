package user

import (
	"context"
	"fmt"

	"github.com/soumyadeepdutta/tamperproof-users/internal/domain/proof"
	domain "github.com/soumyadeepdutta/tamperproof-users/internal/domain/user"
)

type GetUserHistoryInput struct {
	ID string
}

type GetUserHistoryOutput struct {
	Revisions []RevisionOutput
	Proof     proof.Proof
}

// GetUserHistory returns the store's revisions for a user in revision order.
// An unknown id yields an empty history.
type GetUserHistory interface {
	Execute(ctx context.Context, in GetUserHistoryInput) (GetUserHistoryOutput, error)
}

type getUserHistory struct {
	store domain.Store
}

func NewGetUserHistory(store domain.Store) GetUserHistory {
	return &getUserHistory{store: store}
}

func (uc *getUserHistory) Execute(ctx context.Context, in GetUserHistoryInput) (GetUserHistoryOutput, error) {
	if err := domain.ValidateID(in.ID); err != nil {
		return GetUserHistoryOutput{}, ErrInvalidUserID
	}

	revisions, p, err := uc.store.History(ctx, in.ID)
	if err != nil {
		return GetUserHistoryOutput{}, fmt.Errorf("%w: %v", ErrGetUserHistory, err)
	}

	out := make([]RevisionOutput, 0, len(revisions))
	for _, rev := range revisions {
		out = append(out, RevisionOutput{
			Revision:      rev.Revision,
			Operation:     rev.Operation,
			TransactionID: rev.TransactionID,
			RecordedAt:    rev.RecordedAt,
			User:          toUserOutput(rev.User),
		})
	}
	return GetUserHistoryOutput{Revisions: out, Proof: p}, nil
}
