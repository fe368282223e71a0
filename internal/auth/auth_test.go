package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	v := NewVerifier("test-secret")

	token, err := v.Issue("alice", "Alice", time.Hour)
	require.NoError(t, err)

	claims, err := v.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, "Alice", claims.Name)
}

func TestParseRejects(t *testing.T) {
	v := NewVerifier("test-secret")

	t.Run("garbage", func(t *testing.T) {
		_, err := v.Parse("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewVerifier("other-secret")
		token, err := other.Issue("alice", "Alice", time.Hour)
		require.NoError(t, err)

		_, err = v.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		token, err := v.Issue("alice", "Alice", -time.Minute)
		require.NoError(t, err)

		_, err = v.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestMiddleware(t *testing.T) {
	v := NewVerifier("test-secret")

	var gotID, gotName string
	handler := v.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = UserID(r)
		gotName = UserName(r)
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("valid token passes through", func(t *testing.T) {
		token, err := v.Issue("alice", "Alice", time.Hour)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "alice", gotID)
		assert.Equal(t, "Alice", gotName)
	})

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("malformed token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer nope")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
