package testutils

import (
	"net/http"

	"github.com/chapterprep/chapterprep/pkg/auth"
	"github.com/chapterprep/chapterprep/pkg/models"
	"github.com/chapterprep/chapterprep/pkg/users"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type handler struct {
	db *bun.DB
}

type createUserRequest struct {
	Username string  `json:"username" mod:"trim" validate:"required"`
	Password string  `json:"password" validate:"required"`
	Email    *string `json:"email,omitempty" mod:"trim,lcase" validate:"omitempty,email"`
}

type createUserResponse struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// createUser seeds a user without the registration rules.
// POST /test/users.
func (h *handler) createUser(c echo.Context) error {
	ctx := c.Request().Context()

	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return errors.WithStack(err)
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return errors.Wrap(err, "failed to hash password")
	}

	email := req.Username + "@example.com"
	if req.Email != nil && *req.Email != "" {
		email = *req.Email
	}

	user, err := users.NewService(h.db).Create(ctx, users.CreateUserOptions{
		Username:     req.Username,
		Email:        email,
		PasswordHash: hashedPassword,
	})
	if err != nil {
		return err
	}

	return errors.WithStack(c.JSON(http.StatusCreated, createUserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}))
}

type deleteAllUsersResponse struct {
	Deleted int `json:"deleted"`
}

// deleteAllUsers removes every user; their books, chapters and words
// cascade.
// DELETE /test/users.
func (h *handler) deleteAllUsers(c echo.Context) error {
	ctx := c.Request().Context()

	result, err := h.db.NewDelete().
		Model((*models.User)(nil)).
		Where("1=1").
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to delete users")
	}

	deleted, _ := result.RowsAffected()

	return errors.WithStack(c.JSON(http.StatusOK, deleteAllUsersResponse{
		Deleted: int(deleted),
	}))
}
