package handler

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/skilllink/marketplace/internal/core/domain"
)

func TestAuthHandler_Register_Success(t *testing.T) {
	f := newFixture(t)
	h := NewAuthHandler(f.auth, time.Hour)

	body := `{"name":"Ana Dev","email":"ana@example.com","password":"secret1","confirm_password":"secret1","role":"freelancer","skills":[" Go ","Go","Docker"],"hourly_rate":40}`
	c, rec := f.newContext(http.MethodPost, "/auth/register", body)

	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	resp := decode[authResponse](t, rec)
	if resp.Token == "" || resp.ExpiresIn != 3600 {
		t.Fatalf("unexpected token fields: %+v", resp)
	}
	u := resp.User
	if u.ID == "" || u.Name != "Ana Dev" || u.Role != "freelancer" {
		t.Fatalf("unexpected user payload: %+v", u)
	}
	if len(u.Skills) != 2 || u.Skills[0] != "Go" || u.Skills[1] != "Docker" {
		t.Fatalf("skills not normalized: %v", u.Skills)
	}
	if u.JoinedDate != time.Now().UTC().Format(dateLayout) {
		t.Fatalf("expected joined today, got %s", u.JoinedDate)
	}

	claims := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(resp.Token, claims, func(*jwt.Token) (any, error) { return []byte(testSecret), nil }); err != nil {
		t.Fatalf("token does not verify: %v", err)
	}
	if claims["sub"] != u.ID || claims["role"] != "freelancer" {
		t.Fatalf("unexpected claims: %v", claims)
	}
}

func TestAuthHandler_Register_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"malformed json", `{"name":`, http.StatusBadRequest},
		{"missing name", `{"email":"a@example.com","password":"secret1","confirm_password":"secret1","role":"client"}`, http.StatusUnprocessableEntity},
		{"bad email", `{"name":"A","email":"nope","password":"secret1","confirm_password":"secret1","role":"client"}`, http.StatusUnprocessableEntity},
		{"short password", `{"name":"A","email":"a@example.com","password":"123","confirm_password":"123","role":"client"}`, http.StatusUnprocessableEntity},
		{"password mismatch", `{"name":"A","email":"a@example.com","password":"secret1","confirm_password":"secret2","role":"client"}`, http.StatusUnprocessableEntity},
		{"unknown role", `{"name":"A","email":"a@example.com","password":"secret1","confirm_password":"secret1","role":"admin"}`, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			c, _ := f.newContext(http.MethodPost, "/auth/register", tt.body)
			err := NewAuthHandler(f.auth, time.Hour).Register(c)
			if got := httpCode(err); got != tt.want {
				t.Fatalf("expected %d, got %d (%v)", tt.want, got, err)
			}
		})
	}
}

func TestAuthHandler_Register_UserExists(t *testing.T) {
	f := newFixture(t)
	body := `{"name":"John","email":"john@example.com","password":"secret1","confirm_password":"secret1","role":"client"}`
	c, _ := f.newContext(http.MethodPost, "/auth/register", body)

	err := NewAuthHandler(f.auth, time.Hour).Register(c)
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthHandler_Login(t *testing.T) {
	f := newFixture(t)
	h := NewAuthHandler(f.auth, time.Hour)

	c, rec := f.newContext(http.MethodPost, "/auth/login", `{"email":"sarah@example.com","password":"anything","role":"freelancer"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decode[authResponse](t, rec)
	if resp.User.ID != "2" || resp.User.Role != "freelancer" {
		t.Fatalf("unexpected user: %+v", resp.User)
	}
}

func TestAuthHandler_Login_WrongRole(t *testing.T) {
	f := newFixture(t)
	c, _ := f.newContext(http.MethodPost, "/auth/login", `{"email":"john@example.com","password":"x","role":"freelancer"}`)

	err := NewAuthHandler(f.auth, time.Hour).Login(c)
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_LogoutEndsSession(t *testing.T) {
	f := newFixture(t)
	h := NewAuthHandler(f.auth, time.Hour)
	cl := f.client(t)

	c, rec := f.newContext(http.MethodPost, "/auth/logout", "", withClaims(cl))
	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if f.auth.Active(cl.sessionID) {
		t.Fatal("session still active after logout")
	}

	c, _ = f.newContext(http.MethodGet, "/v1/me", "", withClaims(cl))
	if err := h.Me(c); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound after logout, got %v", err)
	}
}

func TestAuthHandler_MeRequiresClaims(t *testing.T) {
	f := newFixture(t)
	c, _ := f.newContext(http.MethodGet, "/v1/me", "")
	err := NewAuthHandler(f.auth, time.Hour).Me(c)
	if got := httpCode(err); got != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d (%v)", got, err)
	}
}

func TestAuthHandler_UpdateMe(t *testing.T) {
	f := newFixture(t)
	h := NewAuthHandler(f.auth, time.Hour)
	cl := f.freelancer(t)

	c, rec := f.newContext(http.MethodPatch, "/v1/me", `{"bio":"Go specialist","skills":["Go","Kubernetes"],"hourly_rate":95}`, withClaims(cl))
	if err := h.UpdateMe(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	resp := decode[userResponse](t, rec)
	if resp.Bio != "Go specialist" || resp.HourlyRate == nil || *resp.HourlyRate != 95 {
		t.Fatalf("update not applied: %+v", resp)
	}
	if resp.Name != "Sarah Developer" {
		t.Fatalf("untouched field changed: %q", resp.Name)
	}

	// A second session over the same account sees the change.
	other := f.freelancer(t)
	c, rec = f.newContext(http.MethodGet, "/v1/me", "", withClaims(other))
	if err := h.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := decode[userResponse](t, rec); got.Bio != "Go specialist" {
		t.Fatalf("profile not shared across sessions: %+v", got)
	}
}

func TestAuthHandler_UpdateMe_Validation(t *testing.T) {
	f := newFixture(t)
	c, _ := f.newContext(http.MethodPatch, "/v1/me", `{"email":"not-an-email"}`, withClaims(f.client(t)))
	err := NewAuthHandler(f.auth, time.Hour).UpdateMe(c)
	if got := httpCode(err); got != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d (%v)", got, err)
	}
}

func TestAuthHandler_UpdateMe_EmailTaken(t *testing.T) {
	f := newFixture(t)
	res, err := f.auth.Register(t.Context(), domain.RegisterInput{Name: "Mallory", Email: "mallory@example.com", Role: domain.RoleClient})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	mallory := claims{userID: res.User.ID, role: res.User.Role, sessionID: res.SessionID, name: res.User.Name}
	h := NewAuthHandler(f.auth, time.Hour)

	c, _ := f.newContext(http.MethodPatch, "/v1/me", `{"email":"john@example.com"}`, withClaims(mallory))
	if err := h.UpdateMe(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}

	// John can still sign in as the only john@example.com client.
	if john := f.client(t); john.userID != "1" {
		t.Fatalf("login resolved to %q, want seeded client", john.userID)
	}
	c, rec := f.newContext(http.MethodGet, "/v1/me", "", withClaims(mallory))
	if err := h.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := decode[userResponse](t, rec); got.Email != "mallory@example.com" {
		t.Fatalf("rejected update changed the email to %q", got.Email)
	}
}
