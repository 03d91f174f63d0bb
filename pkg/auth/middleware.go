package auth

import (
	"strings"

	"github.com/chapterprep/chapterprep/pkg/errcodes"
	"github.com/chapterprep/chapterprep/pkg/models"
	"github.com/labstack/echo/v4"
)

// Context keys set by Authenticate.
const (
	ContextKeyUserID   = "user_id"
	ContextKeyUsername = "username"
	ContextKeyUser     = "user"
)

// Middleware provides authentication middleware.
type Middleware struct {
	authService *Service
}

// NewMiddleware creates a new auth middleware.
func NewMiddleware(authService *Service) *Middleware {
	return &Middleware{
		authService: authService,
	}
}

// Authenticate requires an "Authorization: Bearer <token>" header naming a
// user that still exists, and stores that user on the context.
func (m *Middleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if !ok {
			return unauthorized(c, "Not authenticated.")
		}

		user, err := m.authService.Authenticate(c.Request().Context(), token)
		if err != nil {
			if errcodes.IsCode(err, "unauthorized") {
				c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
			}
			return err
		}

		c.Set(ContextKeyUserID, user.ID)
		c.Set(ContextKeyUsername, user.Username)
		c.Set(ContextKeyUser, user)

		return next(c)
	}
}

// CurrentUser returns the user stored by Authenticate.
func CurrentUser(c echo.Context) (*models.User, error) {
	user, ok := c.Get(ContextKeyUser).(*models.User)
	if !ok {
		return nil, errcodes.Unauthorized("Not authenticated.")
	}
	return user, nil
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func unauthorized(c echo.Context, msg string) error {
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
	return errcodes.Unauthorized(msg)
}
