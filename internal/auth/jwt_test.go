package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	tokens := NewTokenService("test-secret")

	tokenStr, err := tokens.Generate("user-123")
	require.NoError(t, err)

	claims, err := tokens.Validate(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.WithinDuration(t, time.Now().Add(TokenLifetime), claims.ExpiresAt.Time, time.Minute)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	tokenStr, err := NewTokenService("secret-one").Generate("user-123")
	require.NoError(t, err)

	_, err = NewTokenService("secret-two").Validate(tokenStr)
	assert.Error(t, err)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	secret := "test-secret"
	claims := &Claims{
		UserID: "user-123",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	tokenStr, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = NewTokenService(secret).Validate(tokenStr)
	assert.Error(t, err)
}

func TestMiddleware(t *testing.T) {
	tokens := NewTokenService("test-secret")

	validToken, err := tokens.Generate("user-123")
	require.NoError(t, err)

	cases := []struct {
		name        string
		authHeader  string
		wantStatus  int
		wantMessage string
		wantNext    bool
	}{
		{
			name:        "missing_header",
			authHeader:  "",
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Authorization header is missing",
		},
		{
			name:        "wrong_prefix",
			authHeader:  "Basic abc123",
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Invalid authorization format. Expected: Bearer <token>",
		},
		{
			name:        "empty_token",
			authHeader:  "Bearer ",
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Token is missing",
		},
		{
			name:        "tampered_token",
			authHeader:  "Bearer " + validToken + "x",
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Authentication failed",
		},
		{
			name:       "valid_token",
			authHeader: "Bearer " + validToken,
			wantStatus: http.StatusOK,
			wantNext:   true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var gotUserID string
			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				gotUserID = UserIDFromContext(r.Context())
			})

			req := httptest.NewRequest(http.MethodGet, "/news", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			rec := httptest.NewRecorder()

			tokens.Middleware()(next).ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Equal(t, tc.wantNext, nextCalled)

			if tc.wantNext {
				assert.Equal(t, "user-123", gotUserID)
				return
			}

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tc.wantMessage, body["message"])
			if tc.name == "tampered_token" {
				assert.NotEmpty(t, body["error"])
			}
		})
	}
}

func TestUserIDFromContextWithoutClaims(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, UserIDFromContext(req.Context()))
}
