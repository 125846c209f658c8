package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

type stubSessions map[string]bool

func (s stubSessions) Active(sid string) bool { return s[sid] }

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func validClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"sid":  "session-1",
		"sub":  "1",
		"role": "client",
		"name": "John Client",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
}

// runAuth drives the middleware once and returns the recorder plus whether next ran.
func runAuth(t *testing.T, header string, sessions SessionChecker) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth("secret", sessions)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, called
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "secret", validClaims()))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := Auth("secret", stubSessions{"session-1": true})
	handler := mw(func(c echo.Context) error {
		called = true
		if c.Get("user_id") != "1" {
			t.Fatalf("user_id not set")
		}
		if c.Get("role") != "client" {
			t.Fatalf("role not set")
		}
		if c.Get("session_id") != "session-1" {
			t.Fatalf("session_id not set")
		}
		if c.Get("name") != "John Client" {
			t.Fatalf("name not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_NilSessionCheckerSkipsLookup(t *testing.T) {
	rec, called := runAuth(t, "Bearer "+signToken(t, "secret", validClaims()), nil)
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("expected pass-through, got %d (called=%v)", rec.Code, called)
	}
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	expired := validClaims()
	expired["exp"] = time.Now().Add(-time.Minute).Unix()
	noSession := validClaims()
	delete(noSession, "sid")
	noSubject := validClaims()
	delete(noSubject, "sub")
	noExpiry := validClaims()
	delete(noExpiry, "exp")

	tests := []struct {
		name     string
		header   string
		sessions SessionChecker
	}{
		{"missing header", "", nil},
		{"invalid header format", "Token abc", nil},
		{"not a token", "Bearer not-a-token", nil},
		{"wrong secret", "Bearer " + signToken(t, "other", validClaims()), nil},
		{"expired token", "Bearer " + signToken(t, "secret", expired), nil},
		{"missing sid", "Bearer " + signToken(t, "secret", noSession), nil},
		{"missing sub", "Bearer " + signToken(t, "secret", noSubject), nil},
		{"missing exp", "Bearer " + signToken(t, "secret", noExpiry), nil},
		{"logged out session", "Bearer " + signToken(t, "secret", validClaims()), stubSessions{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, called := runAuth(t, tt.header, tt.sessions)
			if called {
				t.Fatalf("should not reach next")
			}
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}

func TestAuthMiddleware_RejectsNonHS256(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, validClaims())
	signed, err := token.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	rec, called := runAuth(t, "Bearer "+signed, nil)
	if called || rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for HS512 token, got %d", rec.Code)
	}
}
