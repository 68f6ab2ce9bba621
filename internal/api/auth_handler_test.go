package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/blogcraft/blog-backend/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testUsername      = "testuser"
	testPassword      = "testpassword123"
	testWrongPassword = "wrongpassword"
)

// newAuthEnv wires the auth routes on top of the shared test env.
func newAuthEnv(t *testing.T) *testEnv {
	t.Helper()
	env := newTestEnv()

	handler, err := NewAuthHandler(env.users, env.secret, WithBcryptCost(4))
	require.NoError(t, err)
	handler.RegisterRoutes(env.router)

	return env
}

func TestNewAuthHandlerRequiresSecret(t *testing.T) {
	env := newTestEnv()

	_, err := NewAuthHandler(env.users, "")
	assert.Error(t, err)
}

func TestLoginSuccess(t *testing.T) {
	env := newAuthEnv(t)
	user := env.addUser(testUsername, testPassword)

	w := doJSON(env, http.MethodPost, "/auth/login", "",
		jsonBody(t, payload{"username": testUsername, "password": testPassword}))
	require.Equal(t, http.StatusOK, w.Code)

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, testUsername, resp.User.Username)
	require.NotEmpty(t, resp.Token)

	// The issued token must identify the user
	claims, err := auth.ValidateToken(resp.Token, env.secret)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, testUsername, claims.Username)
}

func TestLoginWrongPassword(t *testing.T) {
	env := newAuthEnv(t)
	env.addUser(testUsername, testPassword)

	w := doJSON(env, http.MethodPost, "/auth/login", "",
		jsonBody(t, payload{"username": testUsername, "password": testWrongPassword}))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Invalid username or password", resp.Message)
}

func TestLoginUnknownUser(t *testing.T) {
	env := newAuthEnv(t)

	w := doJSON(env, http.MethodPost, "/auth/login", "",
		jsonBody(t, payload{"username": "nonexistent", "password": testPassword}))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Same message as a wrong password; no user-existence oracle
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Invalid username or password", resp.Message)
}

func TestLoginInvalidRequestFormat(t *testing.T) {
	env := newAuthEnv(t)

	tests := []struct {
		name string
		body payload
	}{
		{name: "Missing username", body: payload{"password": testPassword}},
		{name: "Missing password", body: payload{"username": testUsername}},
		{name: "Empty body", body: payload{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(env, http.MethodPost, "/auth/login", "", jsonBody(t, tt.body))
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestLogout(t *testing.T) {
	env := newAuthEnv(t)
	user := env.addUser(testUsername, testPassword)

	w := doJSON(env, http.MethodPost, "/auth/logout", env.tokenFor(user), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestLogoutRequiresToken(t *testing.T) {
	env := newAuthEnv(t)

	w := doJSON(env, http.MethodPost, "/auth/logout", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
