package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/skilllink/marketplace/internal/api/metrics"
	"github.com/skilllink/marketplace/internal/core/domain"
	"github.com/skilllink/marketplace/internal/core/ports"
)

// BidHandler serves the freelancer-side bid operations.
type BidHandler struct {
	store ports.MarketplaceStore
	auth  ports.AuthService
	idem  idempotency
}

func NewBidHandler(store ports.MarketplaceStore, auth ports.AuthService, idem ports.IdempotencyStore, idemTTL time.Duration, log zerolog.Logger) *BidHandler {
	return &BidHandler{
		store: store,
		auth:  auth,
		idem:  idempotency{store: idem, ttl: idemTTL, log: log},
	}
}

// Submit handles POST /v1/jobs/:id/bids.
//
// @Summary      Bid on a job
// @Tags         bids
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id               path      string            true   "Job id"
// @Param        Idempotency-Key  header    string            false  "Idempotency key to prevent duplicate bids"
// @Param        body             body      submitBidRequest  true   "Bid details"
// @Success      201              {object}  bidResponse
// @Success      200              {object}  bidResponse
// @Failure      400              {object}  errorResponse
// @Failure      403              {object}  errorResponse
// @Failure      404              {object}  errorResponse
// @Failure      409              {object}  errorResponse
// @Failure      422              {object}  errorResponse
// @Router       /v1/jobs/{id}/bids [post]
func (h *BidHandler) Submit(c echo.Context) error {
	cl, err := ctxClaims(c)
	if err != nil {
		return err
	}
	var req submitBidRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	ctx := c.Request().Context()
	me, err := h.auth.Profile(ctx, cl.sessionID)
	if err != nil {
		return err
	}

	key := h.idem.key(c, "bid", cl.userID)
	prior, err := h.idem.reserve(ctx, "bid", key)
	if err != nil {
		return err
	}
	if prior != "" {
		if bid, found := findBid(h.store.BidsByFreelancer(cl.userID), prior); found {
			return c.JSON(http.StatusOK, toBidResponse(bid))
		}
	}

	bid, err := h.store.SubmitBid(domain.BidDraft{
		JobID:            c.Param("id"),
		FreelancerID:     me.ID,
		FreelancerName:   me.Name,
		FreelancerAvatar: me.Avatar,
		Amount:           req.Amount,
		Proposal:         req.Proposal,
		DeliveryDays:     req.DeliveryDays,
	})
	if err != nil {
		h.idem.release(ctx, "bid", key)
		return err
	}
	h.idem.complete(ctx, "bid", key, bid.ID)
	metrics.BidsSubmittedTotal.Inc()

	return c.JSON(http.StatusCreated, toBidResponse(bid))
}

// Mine handles GET /v1/bids/mine.
//
// @Summary      List my bids
// @Tags         bids
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  bidListResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/bids/mine [get]
func (h *BidHandler) Mine(c echo.Context) error {
	cl, err := ctxClaims(c)
	if err != nil {
		return err
	}
	bids := h.store.BidsByFreelancer(cl.userID)
	return c.JSON(http.StatusOK, bidListResponse{Bids: toBidResponses(bids), Total: len(bids)})
}

func findBid(bids []domain.Bid, id string) (domain.Bid, bool) {
	for _, b := range bids {
		if b.ID == id {
			return b, true
		}
	}
	return domain.Bid{}, false
}
