package auth

import (
	"context"
	"net/http"
	"testing"

	"github.com/chapterprep/chapterprep/pkg/errcodes"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareAuthenticate(t *testing.T) {
	t.Parallel()

	svc, userService := setupTestService(t)
	m := NewMiddleware(svc)
	ctx := context.Background()

	bob, err := svc.Register(ctx, RegisterOptions{Username: "bob", Email: "bob@x.com", Password: "password1"})
	require.NoError(t, err)
	_, token, err := svc.Login(ctx, "bob", "password1")
	require.NoError(t, err)

	reached := false
	next := func(c echo.Context) error {
		reached = true
		assert.Equal(t, bob.ID, c.Get(ContextKeyUserID))
		assert.Equal(t, "bob", c.Get(ContextKeyUsername))
		user, err := CurrentUser(c)
		require.NoError(t, err)
		assert.Equal(t, bob.ID, user.ID)
		return c.NoContent(http.StatusNoContent)
	}

	t.Run("valid token", func(t *testing.T) {
		c, rr := newTestContext(t, "", echo.MIMEApplicationJSON, http.MethodGet, "/chapters")
		c.Request().Header.Set(echo.HeaderAuthorization, "Bearer "+token)

		require.NoError(t, m.Authenticate(next)(c))
		assert.True(t, reached)
		assert.Equal(t, http.StatusNoContent, rr.Code)
	})

	rejections := map[string]string{
		"missing header": "",
		"wrong scheme":   "Basic Ym9iOnBhc3N3b3JkMQ==",
		"empty token":    "Bearer ",
		"garbage token":  "Bearer not.a.token",
		"tampered token": "Bearer " + token + "x",
	}
	for name, header := range rejections {
		header := header
		t.Run(name, func(t *testing.T) {
			c, rr := newTestContext(t, "", echo.MIMEApplicationJSON, http.MethodGet, "/chapters")
			if header != "" {
				c.Request().Header.Set(echo.HeaderAuthorization, header)
			}

			err := m.Authenticate(func(echo.Context) error {
				t.Fatal("handler should not be reached")
				return nil
			})(c)
			assert.True(t, errcodes.IsCode(err, "unauthorized"))
			assert.Equal(t, "Bearer", rr.Header().Get(echo.HeaderWWWAuthenticate))
		})
	}

	t.Run("deleted user", func(t *testing.T) {
		require.NoError(t, userService.Delete(ctx, bob.ID))

		c, rr := newTestContext(t, "", echo.MIMEApplicationJSON, http.MethodGet, "/chapters")
		c.Request().Header.Set(echo.HeaderAuthorization, "Bearer "+token)

		err := m.Authenticate(next)(c)
		assert.True(t, errcodes.IsCode(err, "unauthorized"))
		assert.Equal(t, "Bearer", rr.Header().Get(echo.HeaderWWWAuthenticate))
	})
}
