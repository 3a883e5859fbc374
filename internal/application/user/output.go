package user

import (
	"time"

	domain "github.com/soumyadeepdutta/tamperproof-users/internal/domain/user"
)

type UserOutput struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt int64  `json:"createdAt"`
}

type RevisionOutput struct {
	Revision      int64      `json:"revision"`
	Operation     string     `json:"operation"`
	TransactionID string     `json:"transactionId"`
	RecordedAt    time.Time  `json:"recordedAt"`
	User          UserOutput `json:"user"`
}

func toUserOutput(u domain.User) UserOutput {
	return UserOutput{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.UnixMilli(),
	}
}
