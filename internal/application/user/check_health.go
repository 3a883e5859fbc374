package user

import (
	"context"

	domain "github.com/soumyadeepdutta/tamperproof-users/internal/domain/user"
	"github.com/soumyadeepdutta/tamperproof-users/internal/observability"
)

type CheckHealthOutput struct {
	Healthy bool   `json:"healthy"`
	Error   string `json:"error,omitempty"`
}

type CheckHealth interface {
	Execute(ctx context.Context) CheckHealthOutput
}

type checkHealth struct {
	store domain.Store
}

func NewCheckHealth(store domain.Store) CheckHealth {
	return &checkHealth{store: store}
}

func (uc *checkHealth) Execute(ctx context.Context) CheckHealthOutput {
	if err := uc.store.Ping(ctx); err != nil {
		observability.Logf(ctx, "health check failed: %v", err)
		return CheckHealthOutput{Healthy: false, Error: err.Error()}
	}
	return CheckHealthOutput{Healthy: true}
}
