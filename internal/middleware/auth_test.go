package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"

	"abctrack/internal/domain"
	"abctrack/internal/domain/models"
	"abctrack/internal/httputil"
)

// fakeVerifier accepts one known token.
type fakeVerifier struct {
	token  string
	userID string
}

func (f *fakeVerifier) VerifyToken(tokenString string) (*models.CaregiverClaims, error) {
	if tokenString != f.token {
		return nil, &domain.UnauthorizedError{Message: "invalid token"}
	}
	return &models.CaregiverClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: f.userID},
	}, nil
}

func (f *fakeVerifier) Close() error { return nil }

func TestAuthMiddleware(t *testing.T) {
	verifier := &fakeVerifier{token: "good-token", userID: "user-1"}

	var gotUserID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = httputil.GetUserID(r)
		w.WriteHeader(http.StatusOK)
	})
	handler := AuthMiddleware(verifier)(next)

	tests := []struct {
		name       string
		path       string
		authHeader string
		wantStatus int
		wantUserID string
	}{
		{"valid token", "/api/children", "Bearer good-token", http.StatusOK, "user-1"},
		{"missing header", "/api/children", "", http.StatusUnauthorized, ""},
		{"wrong scheme", "/api/children", "Basic good-token", http.StatusUnauthorized, ""},
		{"bad token", "/api/children", "Bearer bad-token", http.StatusUnauthorized, ""},
		{"health is open", "/health", "", http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotUserID = ""
			req := httptest.NewRequest("GET", tt.path, nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if gotUserID != tt.wantUserID {
				t.Errorf("user id = %q, want %q", gotUserID, tt.wantUserID)
			}
		})
	}
}
