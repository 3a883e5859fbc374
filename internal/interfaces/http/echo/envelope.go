package echo

import (
	"github.com/labstack/echo/v4"

	"github.com/soumyadeepdutta/tamperproof-users/internal/domain/proof"
)

type tamperProof struct {
	Verified           bool   `json:"verified"`
	TransactionID      string `json:"transactionId,omitempty"`
	CryptographicProof string `json:"cryptographicProof"`
}

type apiResponse struct {
	Success     bool         `json:"success"`
	Data        any          `json:"data,omitempty"`
	TamperProof *tamperProof `json:"tamperProof,omitempty"`
	Error       string       `json:"error,omitempty"`
}

// respondWithProof forwards the store's proof markers unchanged.
func respondWithProof(c echo.Context, status int, data any, p proof.Proof) error {
	return c.JSON(status, apiResponse{
		Success: true,
		Data:    data,
		TamperProof: &tamperProof{
			Verified:           p.Verified,
			TransactionID:      p.TransactionID,
			CryptographicProof: p.Descriptor,
		},
	})
}

func respond(c echo.Context, status int, data any) error {
	return c.JSON(status, apiResponse{Success: true, Data: data})
}

func respondError(c echo.Context, status int, message string) error {
	return c.JSON(status, apiResponse{Success: false, Error: message})
}
