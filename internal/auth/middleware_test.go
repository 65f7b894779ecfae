package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/promptsmith/promptsmith/internal/identity"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func TestAuthenticate_ValidToken(t *testing.T) {
	uid := uuid.New()
	tokenStr := signToken(t, testSecret, jwt.MapClaims{
		"sub":   uid.String(),
		"email": "dana@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	var got *identity.Identity
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = identity.FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	m := NewJWTMiddleware(testSecret)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tokenStr)
	rec := httptest.NewRecorder()
	m.Authenticate(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got == nil {
		t.Fatal("identity missing downstream")
	}
	if got.UserID != uid {
		t.Errorf("user id = %v, want %v", got.UserID, uid)
	}
	if got.Email != "dana@example.com" {
		t.Errorf("email = %q", got.Email)
	}
}

func TestAuthenticate_Rejections(t *testing.T) {
	m := NewJWTMiddleware(testSecret)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run for a rejected request")
	})

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Token abc"},
		{"garbage token", "Bearer not.a.jwt"},
		{
			"wrong secret",
			"Bearer " + signToken(t, "other-secret", jwt.MapClaims{
				"sub": uuid.New().String(),
				"exp": time.Now().Add(time.Hour).Unix(),
			}),
		},
		{
			"expired",
			"Bearer " + signToken(t, testSecret, jwt.MapClaims{
				"sub": uuid.New().String(),
				"exp": time.Now().Add(-time.Hour).Unix(),
			}),
		},
		{
			"non-uuid subject",
			"Bearer " + signToken(t, testSecret, jwt.MapClaims{
				"sub": "not-a-uuid",
				"exp": time.Now().Add(time.Hour).Unix(),
			}),
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			m.Authenticate(next).ServeHTTP(rec, req)
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}
		})
	}
}
