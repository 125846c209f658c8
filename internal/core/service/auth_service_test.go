package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/skilllink/marketplace/internal/core/domain"
	"github.com/skilllink/marketplace/internal/infrastructure/db/memory"
)

func newAuthService() *AuthService {
	dir := memory.NewUserDirectory(memory.SeedUsers()...)
	return NewAuthService(dir, "secret", time.Hour, discardLogger)
}

func parseClaims(t *testing.T, token string) jwt.MapClaims {
	t.Helper()
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	return claims
}

func TestAuthService_Login_IssuesToken(t *testing.T) {
	svc := newAuthService()

	res, err := svc.Login(context.Background(), "sarah@example.com", "pw", domain.RoleFreelancer)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.Token == "" || res.SessionID == "" {
		t.Fatalf("expected token and session id: %+v", res)
	}
	if res.User.ID != "2" {
		t.Fatalf("unexpected user: %+v", res.User)
	}

	claims := parseClaims(t, res.Token)
	if claims["sid"] != res.SessionID || claims["sub"] != "2" || claims["role"] != "freelancer" {
		t.Fatalf("unexpected claims: %v", claims)
	}
	if !svc.Active(res.SessionID) {
		t.Fatalf("session should be active")
	}
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	svc := newAuthService()
	if _, err := svc.Login(context.Background(), "sarah@example.com", "pw", domain.RoleClient); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_SessionsAreIndependent(t *testing.T) {
	svc := newAuthService()
	client, _ := svc.Login(context.Background(), "john@example.com", "", domain.RoleClient)
	freelancer, _ := svc.Login(context.Background(), "sarah@example.com", "", domain.RoleFreelancer)

	if err := svc.Logout(context.Background(), client.SessionID); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if svc.Active(client.SessionID) {
		t.Fatalf("logged out session must be inactive")
	}
	user, err := svc.Profile(context.Background(), freelancer.SessionID)
	if err != nil || user.ID != "2" {
		t.Fatalf("other session affected by logout: %v %+v", err, user)
	}
	if err := svc.Logout(context.Background(), client.SessionID); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestAuthService_RegisterThenUpdateProfile(t *testing.T) {
	svc := newAuthService()
	res, err := svc.Register(context.Background(), domain.RegisterInput{
		Name: "Nina", Email: "nina@example.com", Password: "secret1", Role: domain.RoleFreelancer,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	bio := "Illustrator"
	updated, err := svc.UpdateProfile(context.Background(), res.SessionID, domain.ProfileUpdate{Bio: &bio})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Bio != bio {
		t.Fatalf("bio not updated: %+v", updated)
	}

	// A later login sees the same record.
	again, err := svc.Login(context.Background(), "nina@example.com", "", domain.RoleFreelancer)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if again.User.Bio != bio {
		t.Fatalf("profile update not visible to new session")
	}
}

func TestAuthService_ExpiredSession(t *testing.T) {
	svc := newAuthService()
	res, _ := svc.Login(context.Background(), "john@example.com", "", domain.RoleClient)

	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if svc.Active(res.SessionID) {
		t.Fatalf("session past its ttl must be inactive")
	}
	if _, err := svc.Profile(context.Background(), res.SessionID); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}
