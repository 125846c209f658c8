package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/skilllink/marketplace/internal/api/metrics"
	"github.com/skilllink/marketplace/internal/core/ports"
)

const (
	idempotencyHeader = "Idempotency-Key"
	// reservationTTL bounds how long a crashed create keeps its key blocked.
	reservationTTL = time.Minute
)

// idempotency scopes client keys per user and resource so two users can
// reuse the same key without colliding. Store failures never fail the
// request: the create proceeds without replay protection.
type idempotency struct {
	store ports.IdempotencyStore
	ttl   time.Duration
	log   zerolog.Logger
}

func (i idempotency) key(c echo.Context, resource, userID string) string {
	k := c.Request().Header.Get(idempotencyHeader)
	if k == "" || i.store == nil {
		return ""
	}
	return resource + ":" + userID + ":" + k
}

// reserve claims key before the create runs. It returns the id created by an
// earlier request with the same key, or 409 while that request is still in
// flight. An empty id with a nil error means the caller owns the key.
func (i idempotency) reserve(ctx context.Context, resource, key string) (string, error) {
	if key == "" {
		return "", nil
	}
	id, reserved, err := i.store.Reserve(ctx, key, reservationTTL)
	if err != nil {
		i.log.Warn().Err(err).Str("resource", resource).Msg("idempotency reserve failed")
		return "", nil
	}
	if reserved {
		return "", nil
	}
	if id == "" {
		return "", echo.NewHTTPError(http.StatusConflict, "a request with this Idempotency-Key is still in progress")
	}
	metrics.IdempotentReplaysTotal.WithLabelValues(resource).Inc()
	return id, nil
}

func (i idempotency) complete(ctx context.Context, resource, key, id string) {
	if key == "" {
		return
	}
	if err := i.store.Complete(ctx, key, id, i.ttl); err != nil {
		i.log.Warn().Err(err).Str("resource", resource).Msg("idempotency complete failed")
	}
}

func (i idempotency) release(ctx context.Context, resource, key string) {
	if key == "" {
		return
	}
	if err := i.store.Release(ctx, key); err != nil {
		i.log.Warn().Err(err).Str("resource", resource).Msg("idempotency release failed")
	}
}
