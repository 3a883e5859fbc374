package echo

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	app "github.com/soumyadeepdutta/tamperproof-users/internal/application/user"
	"github.com/soumyadeepdutta/tamperproof-users/internal/observability"
)

type UserUseCases struct {
	Create  app.CreateUser
	Get     app.GetUserByID
	List    app.ListUsers
	Update  app.UpdateUser
	History app.GetUserHistory
	Health  app.CheckHealth
}

type UserHandler struct {
	uc UserUseCases
}

type createUserRequest struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type updateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

func NewUserHandler(uc UserUseCases) *UserHandler {
	return &UserHandler{uc: uc}
}

func (h *UserHandler) CreateUser(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}

	out, err := h.uc.Create.Execute(c.Request().Context(), app.CreateUserInput{
		ID:    req.ID,
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		return h.fail(c, err, "failed to create user")
	}

	return respondWithProof(c, http.StatusCreated, out.User, out.Proof)
}

func (h *UserHandler) GetUserByID(c echo.Context) error {
	out, err := h.uc.Get.Execute(c.Request().Context(), app.GetUserByIDInput{
		ID: c.Param("id"),
	})
	if err != nil {
		return h.fail(c, err, "failed to get user")
	}

	return respondWithProof(c, http.StatusOK, out.User, out.Proof)
}

func (h *UserHandler) ListUsers(c echo.Context) error {
	out, err := h.uc.List.Execute(c.Request().Context())
	if err != nil {
		return h.fail(c, err, "failed to list users")
	}

	return respondWithProof(c, http.StatusOK, out.Users, out.Proof)
}

func (h *UserHandler) UpdateUser(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}

	out, err := h.uc.Update.Execute(c.Request().Context(), app.UpdateUserInput{
		ID:    c.Param("id"),
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		return h.fail(c, err, "failed to update user")
	}

	return respondWithProof(c, http.StatusOK, out.User, out.Proof)
}

func (h *UserHandler) GetUserHistory(c echo.Context) error {
	out, err := h.uc.History.Execute(c.Request().Context(), app.GetUserHistoryInput{
		ID: c.Param("id"),
	})
	if err != nil {
		return h.fail(c, err, "failed to get user history")
	}

	return respondWithProof(c, http.StatusOK, out.Revisions, out.Proof)
}

func (h *UserHandler) Health(c echo.Context) error {
	out := h.uc.Health.Execute(c.Request().Context())
	if !out.Healthy {
		return respondError(c, http.StatusInternalServerError, "record store unreachable")
	}
	return respond(c, http.StatusOK, out)
}

func (h *UserHandler) fail(c echo.Context, err error, internalMessage string) error {
	switch {
	case errors.Is(err, app.ErrInvalidUserID):
		return respondError(c, http.StatusBadRequest, "id must be 1-64 letters, digits, '_' or '-'")
	case errors.Is(err, app.ErrInvalidUserInput):
		return respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, app.ErrInvalidUpdate):
		return respondError(c, http.StatusBadRequest, "at least one of name or email is required")
	case errors.Is(err, app.ErrUserNotFound):
		return respondError(c, http.StatusNotFound, "user not found")
	}

	observability.Logf(c.Request().Context(), "%s %s: %v", c.Request().Method, c.Path(), err)
	return respondError(c, http.StatusInternalServerError, internalMessage)
}
