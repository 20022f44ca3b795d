package httpserver

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"storefront/internal/models"
	"storefront/internal/service"
)

func TestRegisterSuccess(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/auth/register", "", map[string]string{
		"name":     "Test User",
		"email":    "user@example.com",
		"password": "Password1",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var user models.User
	decode(t, rec, &user)
	require.Equal(t, "user@example.com", user.Email)
	require.False(t, user.IsAdmin)

	// the password hash never leaves the server
	require.False(t, strings.Contains(rec.Body.String(), "Password1"))
	require.False(t, strings.Contains(rec.Body.String(), "PasswordHash"))
}

func TestRegisterValidationStatus(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/auth/register", "", map[string]string{
		"name":     "ab",
		"email":    "user@example.com",
		"password": "Password1",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Name must be at least 3 characters long", errMessage(t, rec))
}

func TestRegisterDuplicateStatus(t *testing.T) {
	env := newTestEnv(t)
	login(t, env, "user@example.com")

	rec := env.do(http.MethodPost, "/auth/register", "", map[string]string{
		"name":     "Test User",
		"email":    "user@example.com",
		"password": "Password1",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "User already exists", errMessage(t, rec))
}

func TestLoginFailures(t *testing.T) {
	env := newTestEnv(t)
	login(t, env, "user@example.com")

	rec := env.do(http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "nobody@example.com",
		"password": "Password1",
	})
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "User not found", errMessage(t, rec))

	rec = env.do(http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "user@example.com",
		"password": "WrongPassword1",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Invalid credentials", errMessage(t, rec))
}

func TestLoginReturnsUsableToken(t *testing.T) {
	env := newTestEnv(t)
	token := login(t, env, "user@example.com")

	rec := env.do(http.MethodGet, "/cart/getCart", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp cartResp
	decode(t, rec, &resp)
	require.Empty(t, resp.Items)
}

func TestListUsersUnguarded(t *testing.T) {
	env := newTestEnv(t)
	login(t, env, "user@example.com")

	rec := env.do(http.MethodGet, "/auth/users", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var users []models.User
	decode(t, rec, &users)
	require.Len(t, users, 1)
	require.Equal(t, "user@example.com", users[0].Email)
}

func TestAuthGates(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/cart/getCart", "", nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Equal(t, "Access denied", errMessage(t, rec))

	rec = env.do(http.MethodGet, "/cart/getCart", "not-a-jwt", nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Equal(t, "Invalid token", errMessage(t, rec))

	rec = env.do(http.MethodPost, "/orders", "", service.CreateOrderRequest{})
	require.Equal(t, http.StatusForbidden, rec.Code)
}
