package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/skilllink/marketplace/internal/core/domain"
	"github.com/skilllink/marketplace/internal/core/service"
	"github.com/skilllink/marketplace/internal/infrastructure/db/memory"
)

const testSecret = "secret"

// fixture wires the real in-memory stores behind the handlers.
type fixture struct {
	e     *echo.Echo
	auth  *service.AuthService
	store *service.MarketplaceStore
	idem  *memory.IdempotencyStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	dir := memory.NewUserDirectory(memory.SeedUsers()...)
	return &fixture{
		e:     e,
		auth:  service.NewAuthService(dir, testSecret, time.Hour, zerolog.Nop()),
		store: service.NewMarketplaceStore(zerolog.Nop(), nil, memory.SeedJobs()...),
		idem:  memory.NewIdempotencyStore(),
	}
}

func (f *fixture) jobs() *JobHandler {
	return NewJobHandler(f.store, f.auth, f.idem, time.Hour, zerolog.Nop())
}

func (f *fixture) bids() *BidHandler {
	return NewBidHandler(f.store, f.auth, f.idem, time.Hour, zerolog.Nop())
}

// signIn opens a session the way the Auth middleware would see it.
func (f *fixture) signIn(t *testing.T, email string, role domain.Role) claims {
	t.Helper()
	res, err := f.auth.Login(context.Background(), email, "", role)
	if err != nil {
		t.Fatalf("login %s/%s: %v", email, role, err)
	}
	return claims{userID: res.User.ID, role: res.User.Role, sessionID: res.SessionID, name: res.User.Name}
}

func (f *fixture) client(t *testing.T) claims {
	return f.signIn(t, "john@example.com", domain.RoleClient)
}

func (f *fixture) freelancer(t *testing.T) claims {
	return f.signIn(t, "sarah@example.com", domain.RoleFreelancer)
}

type reqOpt func(*http.Request, echo.Context)

func withClaims(cl claims) reqOpt {
	return func(_ *http.Request, c echo.Context) {
		c.Set(ctxUserID, cl.userID)
		c.Set(ctxRole, string(cl.role))
		c.Set(ctxSessionID, cl.sessionID)
		c.Set(ctxName, cl.name)
	}
}

func withParam(name, value string) reqOpt {
	return func(_ *http.Request, c echo.Context) {
		c.SetParamNames(name)
		c.SetParamValues(value)
	}
}

func withHeader(name, value string) reqOpt {
	return func(r *http.Request, _ echo.Context) {
		r.Header.Set(name, value)
	}
}

func (f *fixture) newContext(method, target, body string, opts ...reqOpt) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := f.e.NewContext(req, rec)
	for _, o := range opts {
		o(req, c)
	}
	return c, rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
	return v
}

// httpCode returns the status carried by an *echo.HTTPError, or 0.
func httpCode(err error) int {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	return 0
}
