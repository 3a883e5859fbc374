package user

import (
	"context"

	"github.com/soumyadeepdutta/tamperproof-users/internal/domain/proof"
)

type Store interface {
	Create(ctx context.Context, u User) (proof.Proof, error)
	GetByID(ctx context.Context, id string) (User, proof.Proof, error)
	List(ctx context.Context) ([]User, proof.Proof, error)
	Update(ctx context.Context, u User) (proof.Proof, error)
	History(ctx context.Context, id string) ([]Revision, proof.Proof, error)
	Ping(ctx context.Context) error
}
