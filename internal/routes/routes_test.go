package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/mail"
	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/repository/memory"
	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/resources"
	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/resources/budgets"
	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/resources/dashboard"
	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/resources/investments"
	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/resources/transactions"
	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type inbox struct {
	mu   sync.Mutex
	last map[string]string
}

func (i *inbox) Send(_ context.Context, msg mail.Message) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	idx := strings.Index(msg.Body, "code is ")
	i.last[msg.To] = msg.Body[idx+len("code is ") : idx+len("code is ")+6]
	return nil
}

func (i *inbox) code(to string) string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.last[to]
}

type server struct {
	app   *fiber.App
	inbox *inbox
}

func newServer(t *testing.T) *server {
	t.Helper()
	cfg := &config.Config{AuthRateLimit: 1000, APIRateLimit: 1000}
	users := memory.NewUsers()
	txs := memory.NewOwned[transactions.Transaction]()
	bs := memory.NewOwned[budgets.Budget]()
	invs := memory.NewOwned[investments.Investment]()

	plugins := []resources.Plugin{transactions.New(txs), budgets.New(bs), investments.New(invs)}
	clearers := make([]services.DataClearer, 0, len(plugins))
	for _, p := range plugins {
		clearers = append(clearers, p)
	}

	box := &inbox{last: map[string]string{}}
	tokens := auth.NewTokenService("routes-test-jwt", 0)
	svc := services.NewAuthService(services.AuthDeps{
		Users:    users,
		Hasher:   auth.NewPasswordHasher(bcrypt.MinCost),
		Tokens:   tokens,
		OTP:      auth.NewOTPService("routes-test-otp", 0),
		Google:   auth.NewGoogleVerifier("", "", 0),
		Mailer:   box,
		Clearers: clearers,
	})

	app := fiber.New()
	Setup(app, cfg, middleware.AccessGuard(tokens, users),
		handlers.NewAuthHandler(svc), handlers.NewUserHandler(svc), handlers.NewHealthHandler(users),
		plugins, dashboard.New(txs, bs, invs))
	return &server{app: app, inbox: box}
}

func (s *server) call(t *testing.T, method, path, token, body string) (int, map[string]interface{}, string) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var obj map[string]interface{}
	_ = json.Unmarshal(raw, &obj)
	return resp.StatusCode, obj, string(raw)
}

func (s *server) register(t *testing.T, name, email, password string) (token, id string) {
	t.Helper()
	status, body, raw := s.call(t, "POST", "/api/auth/send-otp", "", `{"email":"`+email+`"}`)
	require.Equal(t, 200, status, raw)
	challenge := body["challengeToken"].(string)

	status, body, raw = s.call(t, "POST", "/api/auth/register", "", `{"name":"`+name+`","email":"`+email+
		`","password":"`+password+`","otp":"`+s.inbox.code(email)+`","challengeToken":"`+challenge+`"}`)
	require.Equal(t, 201, status, raw)
	user := body["user"].(map[string]interface{})
	return body["token"].(string), user["id"].(string)
}

func TestRegisterThenMe(t *testing.T) {
	s := newServer(t)
	token, id := s.register(t, "Alice", "alice@example.com", "correct-horse")

	status, _, raw := s.call(t, "GET", "/api/auth/me", token, "")
	require.Equal(t, 200, status)
	assert.JSONEq(t, `{"id":"`+id+`","name":"Alice","email":"alice@example.com","hasPassword":true}`, raw)
	assert.NotContains(t, raw, "password_hash")
	assert.NotContains(t, raw, "$2a$")

	status, body, _ := s.call(t, "GET", "/api/auth/me", "", "")
	assert.Equal(t, 401, status)
	assert.Equal(t, true, body["error"])
}

func TestRegister_Failures(t *testing.T) {
	s := newServer(t)
	s.register(t, "Alice", "alice@example.com", "correct-horse")

	status, body, _ := s.call(t, "POST", "/api/auth/register", "",
		`{"name":"A","email":"alice@example.com","password":"whatever1","otp":"000000","challengeToken":"x.1"}`)
	assert.Equal(t, 400, status)
	assert.Equal(t, services.ErrAlreadyExists.Error(), body["message"])

	status, _, _ = s.call(t, "POST", "/api/auth/register", "", `{"email":"bob@example.com"}`)
	assert.Equal(t, 400, status)

	status, _, _ = s.call(t, "POST", "/api/auth/register", "", `not json`)
	assert.Equal(t, 400, status)
}

func TestLogin(t *testing.T) {
	s := newServer(t)
	s.register(t, "Alice", "alice@example.com", "correct-horse")

	status, body, _ := s.call(t, "POST", "/api/auth/login", "", `{"email":"alice@example.com","password":"correct-horse"}`)
	require.Equal(t, 200, status)
	assert.NotEmpty(t, body["token"])

	status, wrong, _ := s.call(t, "POST", "/api/auth/login", "", `{"email":"alice@example.com","password":"battery-staple"}`)
	assert.Equal(t, 401, status)
	status, unknown, _ := s.call(t, "POST", "/api/auth/login", "", `{"email":"nobody@example.com","password":"battery-staple"}`)
	assert.Equal(t, 401, status)
	assert.Equal(t, wrong["message"], unknown["message"])
}

func TestGoogle_UnconfiguredIsUnavailable(t *testing.T) {
	s := newServer(t)

	status, _, _ := s.call(t, "POST", "/api/auth/google", "", `{"assertion":"eyJ.x.y"}`)
	assert.Equal(t, 503, status)

	status, _, _ = s.call(t, "POST", "/api/auth/google", "", `{}`)
	assert.Equal(t, 400, status)
}

func TestPasswordSettings(t *testing.T) {
	s := newServer(t)
	token, _ := s.register(t, "Alice", "alice@example.com", "correct-horse")

	status, body, _ := s.call(t, "POST", "/api/user/set-password", token, `{"newPassword":"another-pass"}`)
	assert.Equal(t, 400, status)
	assert.Equal(t, services.ErrPasswordAlreadySet.Error(), body["message"])

	status, _, _ = s.call(t, "POST", "/api/user/change-password", token, `{"currentPassword":"nope-nope","newPassword":"another-pass"}`)
	assert.Equal(t, 401, status)

	status, _, _ = s.call(t, "POST", "/api/user/change-password", token, `{"currentPassword":"correct-horse","newPassword":"short"}`)
	assert.Equal(t, 400, status)

	status, _, _ = s.call(t, "POST", "/api/user/change-password", token, `{"currentPassword":"correct-horse","newPassword":"another-pass"}`)
	require.Equal(t, 200, status)

	status, _, _ = s.call(t, "POST", "/api/auth/login", "", `{"email":"alice@example.com","password":"another-pass"}`)
	assert.Equal(t, 200, status)

	status, _, _ = s.call(t, "POST", "/api/user/change-password", "", `{}`)
	assert.Equal(t, 401, status)
}

func TestOwnershipAcrossUsers(t *testing.T) {
	s := newServer(t)
	alice, _ := s.register(t, "Alice", "alice@example.com", "correct-horse")
	bob, _ := s.register(t, "Bob", "bob@example.com", "correct-horse")

	status, created, raw := s.call(t, "POST", "/api/transactions", alice,
		`{"type":"expense","amount":42,"category":"Food","description":"Dinner","date":"2025-03-04"}`)
	require.Equal(t, 201, status, raw)
	path := "/api/transactions/" + created["id"].(string)

	status, _, raw = s.call(t, "GET", "/api/transactions", bob, "")
	require.Equal(t, 200, status)
	assert.JSONEq(t, `[]`, raw)

	for _, method := range []string{"GET", "PUT", "DELETE"} {
		status, _, _ := s.call(t, method, path, bob, `{"amount":1}`)
		assert.Equal(t, 404, status, method)
	}

	status, got, _ := s.call(t, "GET", path, alice, "")
	require.Equal(t, 200, status)
	assert.Equal(t, 42.0, got["amount"])

	status, _, _ = s.call(t, "GET", "/api/transactions", "", "")
	assert.Equal(t, 401, status)
}

func TestClearData(t *testing.T) {
	s := newServer(t)
	token, _ := s.register(t, "Alice", "alice@example.com", "correct-horse")

	for _, body := range []string{
		`{"type":"income","amount":100,"category":"Salary","description":"Pay","date":"2025-03-01"}`,
		`{"type":"expense","amount":20,"category":"Food","description":"Lunch","date":"2025-03-02"}`,
	} {
		status, _, raw := s.call(t, "POST", "/api/transactions", token, body)
		require.Equal(t, 201, status, raw)
	}
	status, _, raw := s.call(t, "POST", "/api/budget", token,
		`{"category":"Food","amount":300,"startDate":"2025-03-01","endDate":"2025-03-31"}`)
	require.Equal(t, 201, status, raw)

	status, body, _ := s.call(t, "DELETE", "/api/user/data", token, "")
	require.Equal(t, 200, status)
	deleted := body["deleted"].(map[string]interface{})
	assert.Equal(t, 2.0, deleted["transactions"])
	assert.Equal(t, 1.0, deleted["budgets"])
	assert.Equal(t, 0.0, deleted["investments"])

	status, _, raw = s.call(t, "GET", "/api/transactions", token, "")
	require.Equal(t, 200, status)
	assert.JSONEq(t, `[]`, raw)

	// the account survives
	status, _, _ = s.call(t, "GET", "/api/auth/me", token, "")
	assert.Equal(t, 200, status)
}

func TestDashboardAndHealth(t *testing.T) {
	s := newServer(t)
	token, _ := s.register(t, "Alice", "alice@example.com", "correct-horse")

	status, _, _ := s.call(t, "GET", "/api/dashboard?month=2025-03", token, "")
	assert.Equal(t, 200, status)
	status, _, _ = s.call(t, "GET", "/api/dashboard?month=03-2025", token, "")
	assert.Equal(t, 400, status)
	status, _, _ = s.call(t, "GET", "/api/dashboard", "", "")
	assert.Equal(t, 401, status)

	status, body, _ := s.call(t, "GET", "/api/health", "", "")
	assert.Equal(t, 200, status)
	assert.Equal(t, "ok", body["db"])
}
