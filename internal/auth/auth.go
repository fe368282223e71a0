package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims defines the data carried inside an access token. Subject is the
// user id; Name is the display name snapshot taken at login.
type Claims struct {
	jwt.RegisteredClaims
	Name string `json:"name"`
}

// ErrInvalidToken is returned for tokens that fail parsing or verification.
var ErrInvalidToken = errors.New("invalid token")

// contextKey is a custom type to avoid key collisions in context.
type contextKey string

const (
	userIDKey   contextKey = "userID"
	userNameKey contextKey = "userName"
)

// Verifier validates HS256 bearer tokens and issues them for the CLI and
// seeder.
type Verifier struct {
	secret []byte
}

// NewVerifier creates a Verifier from the shared HMAC secret.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Parse verifies a raw token string and returns its claims.
func (v *Verifier) Parse(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Issue signs a token for a user, valid for the given duration.
func (v *Verifier) Issue(userID, userName string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Name: userName,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

// Middleware rejects requests without a valid "Authorization: Bearer" token
// and stores the caller's id and name in the request context.
func (v *Verifier) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			http.Error(w, "missing or invalid authorization header", http.StatusUnauthorized)
			return
		}
		claims, err := v.Parse(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), claims.Subject, claims.Name)))
	})
}

// UserID returns the authenticated user id from the request context.
func UserID(r *http.Request) string {
	id, _ := r.Context().Value(userIDKey).(string)
	return id
}

// UserName returns the authenticated display name from the request context.
func UserName(r *http.Request) string {
	name, _ := r.Context().Value(userNameKey).(string)
	return name
}

// WithUser returns a context carrying an authenticated user, for tests and
// internal calls.
func WithUser(ctx context.Context, userID, userName string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, userNameKey, userName)
}
