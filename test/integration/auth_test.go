//go:build integration

package integration

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoginFlow(t *testing.T) {
	env := newTestServer(t)
	env.register(t, "u@test.com", "pw1")

	t.Run("correct password returns a token", func(t *testing.T) {
		token := env.login(t, "u@test.com", "pw1")
		require.NotEmpty(t, token)
	})

	t.Run("wrong password returns 401 with a string body", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, env.server.URL+"/login", map[string]string{
			"email":    "u@test.com",
			"password": "wrong",
		}, "")
		defer resp.Body.Close()
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		var message string
		decodeBody(t, resp, &message)
		require.Equal(t, "Wrong email or password", message)
	})

	t.Run("unknown email returns the same 401", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, env.server.URL+"/login", map[string]string{
			"email":    "nobody@test.com",
			"password": "pw1",
		}, "")
		defer resp.Body.Close()
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("deactivated user cannot log in", func(t *testing.T) {
		created := env.register(t, "gone@test.com", "pw1")
		env.users.deactivate(created.ID)

		resp := doJSON(t, http.MethodPost, env.server.URL+"/login", map[string]string{
			"email":    "gone@test.com",
			"password": "pw1",
		}, "")
		defer resp.Body.Close()
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestRegisterConflict(t *testing.T) {
	env := newTestServer(t)
	env.register(t, "u@test.com", "pw1")

	resp := doJSON(t, http.MethodPost, env.server.URL+"/register", map[string]string{
		"email":    "u@test.com",
		"password": "pw2",
	}, "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	var body struct {
		Message    string `json:"message"`
		StatusCode int    `json:"status_code"`
	}
	decodeBody(t, resp, &body)
	require.Equal(t, http.StatusConflict, body.StatusCode)
	require.NotEmpty(t, body.Message)
}

func TestWhoAmI(t *testing.T) {
	env := newTestServer(t)
	created := env.register(t, "u@test.com", "pw1")

	t.Run("without a header", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, env.server.URL+"/who_am_i", nil, "")
		defer resp.Body.Close()
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("with a valid token", func(t *testing.T) {
		token := env.login(t, "u@test.com", "pw1")

		resp := doJSON(t, http.MethodGet, env.server.URL+"/who_am_i", nil, token)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			ID    int64  `json:"id"`
			Email string `json:"email"`
		}
		decodeBody(t, resp, &body)
		require.Equal(t, created.ID, body.ID)
		require.Equal(t, "u@test.com", body.Email)
	})

	t.Run("with a revoked token", func(t *testing.T) {
		token := env.login(t, "u@test.com", "pw1")

		logoutResp := doJSON(t, http.MethodPost, env.server.URL+"/logout", nil, token)
		defer logoutResp.Body.Close()
		require.Equal(t, http.StatusOK, logoutResp.StatusCode)

		resp := doJSON(t, http.MethodGet, env.server.URL+"/who_am_i", nil, token)
		defer resp.Body.Close()
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("with a garbage token", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, env.server.URL+"/who_am_i", nil, "garbage")
		defer resp.Body.Close()
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestLogoutIsIdempotent(t *testing.T) {
	env := newTestServer(t)
	env.register(t, "u@test.com", "pw1")
	token := env.login(t, "u@test.com", "pw1")

	first := doJSON(t, http.MethodPost, env.server.URL+"/logout", nil, token)
	defer first.Body.Close()
	require.Equal(t, http.StatusOK, first.StatusCode)

	// The token is now revoked, so a second logout with it fails the
	// auth gate, not the revocation itself.
	second := doJSON(t, http.MethodPost, env.server.URL+"/logout", nil, token)
	defer second.Body.Close()
	require.Equal(t, http.StatusUnauthorized, second.StatusCode)
}
