package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/repository/memory"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "guard-test-secret"

type brokenFinder struct{}

func (brokenFinder) FindByID(context.Context, uuid.UUID) (*models.User, error) {
	return nil, errors.New("connection refused")
}

func guardedApp(finder UserFinder) *fiber.App {
	tokens := auth.NewTokenService(secret, 0)
	app := fiber.New()
	app.Get("/me", AccessGuard(tokens, finder), func(c *fiber.Ctx) error {
		user, err := identity.User(c)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"id": user.ID, "email": user.Email})
	})
	return app
}

func call(t *testing.T, app *fiber.App, authz string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest("GET", "/me", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	return resp.StatusCode, body
}

func seedUser(t *testing.T, users *memory.Users) *models.User {
	t.Helper()
	user := &models.User{ID: uuid.New(), Name: "Alice", Email: "alice@x.io"}
	require.NoError(t, users.Create(context.Background(), user))
	return user
}

func TestAccessGuard_ValidToken(t *testing.T) {
	users := memory.NewUsers()
	user := seedUser(t, users)
	token, err := auth.NewTokenService(secret, 0).Issue(user.ID)
	require.NoError(t, err)

	status, body := call(t, guardedApp(users), "Bearer "+token)
	assert.Equal(t, 200, status)
	assert.Equal(t, user.ID.String(), body["id"])
	assert.Equal(t, "alice@x.io", body["email"])
}

func TestAccessGuard_Rejects(t *testing.T) {
	users := memory.NewUsers()
	user := seedUser(t, users)

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(-31 * 24 * time.Hour)),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}).SignedString([]byte(secret))
	require.NoError(t, err)

	foreign, err := auth.NewTokenService("another-secret", 0).Issue(user.ID)
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	ghost, err := auth.NewTokenService(secret, 0).Issue(uuid.New())
	require.NoError(t, err)

	cases := map[string]string{
		"missing header":    "",
		"not bearer":        "Basic abc",
		"garbage":           "Bearer not.a.token",
		"expired":           "Bearer " + expired,
		"wrong secret":      "Bearer " + foreign,
		"alg none":          "Bearer " + unsigned,
		"user not in store": "Bearer " + ghost,
	}
	app := guardedApp(users)
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			status, body := call(t, app, header)
			assert.Equal(t, 401, status)
			assert.Equal(t, true, body["error"])
		})
	}
}

func TestAccessGuard_StoreFailure(t *testing.T) {
	token, err := auth.NewTokenService(secret, 0).Issue(uuid.New())
	require.NoError(t, err)

	status, body := call(t, guardedApp(brokenFinder{}), "Bearer "+token)
	assert.Equal(t, 500, status)
	assert.Equal(t, "Internal server error", body["message"])
}
