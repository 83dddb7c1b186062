package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-manager-api/pkg/token"
	"task-manager-api/pkg/utils"
)

func TestExtractBearer(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"", ""},
		{"Bearer", ""},
		{"Bearer abc", "abc"},
		{"Bearer   abc  ", "abc"},
		{"Token abc", "abc"},
		{"Bearer abc def", "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.want, extractBearer(tt.header))
		})
	}
}

func newGatedApp(tokens *token.Manager, gateHandler fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Get("/private", gateHandler, func(c *fiber.Ctx) error {
		identity, err := utils.GetUserFromContext(c)
		if err != nil {
			return err
		}
		return c.SendString(identity.UserID.String())
	})
	return app
}

func TestProtectedPassesIdentityThrough(t *testing.T) {
	tokens := token.NewManager("secret")
	userID := uuid.New()
	raw, err := tokens.Issue(userID, "alice")
	require.NoError(t, err)

	app := newGatedApp(tokens, Protected(tokens))

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+raw)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// the query parameter only counts on the websocket gate
	req = httptest.NewRequest(http.MethodGet, "/private?token="+raw, nil)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedWebSocketAcceptsQueryToken(t *testing.T) {
	tokens := token.NewManager("secret")
	raw, err := tokens.Issue(uuid.New(), "alice")
	require.NoError(t, err)

	app := newGatedApp(tokens, ProtectedWebSocket(tokens))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/private?token="+raw, nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/private?token=nope", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/private", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
