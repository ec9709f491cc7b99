package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"star-catalog-api/internal/model"
	"star-catalog-api/pkg/apierror"
)

type fakeAuthenticator struct {
	user model.User
	err  error
	seen string
}

func (f *fakeAuthenticator) Authenticate(_ context.Context, tokenString string) (model.User, error) {
	f.seen = tokenString
	if f.err != nil {
		return model.User{}, f.err
	}
	return f.user, nil
}

func TestRequireAuth(t *testing.T) {
	user := model.User{ID: 7, Email: "u@test.com", IsActive: true}

	newHandler := func(auth *fakeAuthenticator, inner http.HandlerFunc) http.Handler {
		return NewAuthMiddleware(auth).RequireAuth(inner)
	}

	t.Run("missing header is rejected", func(t *testing.T) {
		handler := newHandler(&fakeAuthenticator{user: user}, func(http.ResponseWriter, *http.Request) {
			t.Fatal("handler should not be reached")
		})

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/who_am_i", nil))

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		requireErrorShape(t, rec)
	})

	t.Run("non-bearer scheme is rejected", func(t *testing.T) {
		handler := newHandler(&fakeAuthenticator{user: user}, func(http.ResponseWriter, *http.Request) {
			t.Fatal("handler should not be reached")
		})

		req := httptest.NewRequest(http.MethodGet, "/who_am_i", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwdw==")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("empty bearer token is rejected", func(t *testing.T) {
		handler := newHandler(&fakeAuthenticator{user: user}, func(http.ResponseWriter, *http.Request) {
			t.Fatal("handler should not be reached")
		})

		req := httptest.NewRequest(http.MethodGet, "/who_am_i", nil)
		req.Header.Set("Authorization", "Bearer   ")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("authenticator failure propagates as 401", func(t *testing.T) {
		auth := &fakeAuthenticator{err: apierror.Unauthenticated()}
		handler := newHandler(auth, func(http.ResponseWriter, *http.Request) {
			t.Fatal("handler should not be reached")
		})

		req := httptest.NewRequest(http.MethodGet, "/who_am_i", nil)
		req.Header.Set("Authorization", "Bearer some-token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, "some-token", auth.seen)
		requireErrorShape(t, rec)
	})

	t.Run("valid token binds user and token to context", func(t *testing.T) {
		auth := &fakeAuthenticator{user: user}

		var gotUser model.User
		var gotToken string
		handler := newHandler(auth, func(w http.ResponseWriter, r *http.Request) {
			var ok bool
			gotUser, ok = UserFromContext(r.Context())
			require.True(t, ok)
			gotToken, ok = TokenFromContext(r.Context())
			require.True(t, ok)
			w.WriteHeader(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/who_am_i", nil)
		req.Header.Set("Authorization", "Bearer valid-token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, user, gotUser)
		require.Equal(t, "valid-token", gotToken)
	})
}

// requireErrorShape checks the uniform {message, status_code} body.
func requireErrorShape(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()

	var body struct {
		Message    string `json:"message"`
		StatusCode int    `json:"status_code"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body.Message)
	require.Equal(t, rec.Code, body.StatusCode)
}
