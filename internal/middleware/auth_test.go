package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bushboy/bookingswap/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret: "test-secret",
		Issuer:    "bookingswap",
	}
}

func mintToken(t *testing.T, cfg config.AuthConfig, subject string, expiresAt time.Time) string {
	t.Helper()

	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    cfg.Issuer,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(cfg.JWTSecret))
	require.NoError(t, err, "failed to sign test token")

	return signed
}

func TestAuth_ValidTokenAttachesUserID(t *testing.T) {
	cfg := testAuthConfig()
	userID := uuid.New()
	token := mintToken(t, cfg, userID.String(), time.Now().Add(time.Hour))

	var gotID uuid.UUID
	var gotOK bool
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, gotOK = UserID(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/history", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	Auth(cfg)(handler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.True(t, gotOK, "user id should be in context")
	assert.Equal(t, userID, gotID, "user id mismatch")
}

func TestAuth_RejectsBadRequests(t *testing.T) {
	cfg := testAuthConfig()

	tests := []struct {
		name   string
		header string
	}{
		{
			name:   "missing authorization header",
			header: "",
		},
		{
			name:   "not a bearer token",
			header: "Basic dXNlcjpwYXNz",
		},
		{
			name:   "garbage token",
			header: "Bearer not-a-jwt",
		},
		{
			name:   "expired token",
			header: "Bearer " + mintToken(t, cfg, uuid.New().String(), time.Now().Add(-time.Hour)),
		},
		{
			name:   "wrong issuer",
			header: "Bearer " + mintToken(t, config.AuthConfig{JWTSecret: cfg.JWTSecret, Issuer: "someone-else"}, uuid.New().String(), time.Now().Add(time.Hour)),
		},
		{
			name:   "wrong secret",
			header: "Bearer " + mintToken(t, config.AuthConfig{JWTSecret: "other-secret", Issuer: cfg.Issuer}, uuid.New().String(), time.Now().Add(time.Hour)),
		},
		{
			name:   "subject is not a uuid",
			header: "Bearer " + mintToken(t, cfg, "user-42", time.Now().Add(time.Hour)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlerCalled := false
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handlerCalled = true
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/history", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			Auth(cfg)(handler).ServeHTTP(rec, req)

			assert.False(t, handlerCalled, "handler must not run for rejected requests")
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), "unauthorized")
		})
	}
}

func TestAuth_RejectsNonHMACAlgorithm(t *testing.T) {
	cfg := testAuthConfig()

	claims := jwt.RegisteredClaims{
		Subject:   uuid.New().String(),
		Issuer:    cfg.Issuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err, "failed to sign test token")

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/history", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()

	Auth(cfg)(handler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
