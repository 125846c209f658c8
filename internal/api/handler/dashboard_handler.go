package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/skilllink/marketplace/internal/core/domain"
	"github.com/skilllink/marketplace/internal/core/ports"
)

// recentLimit caps the recent jobs / bids shown on the dashboard.
const recentLimit = 5

type DashboardHandler struct {
	store ports.MarketplaceStore
	auth  ports.AuthService
}

func NewDashboardHandler(store ports.MarketplaceStore, auth ports.AuthService) *DashboardHandler {
	return &DashboardHandler{store: store, auth: auth}
}

// Get handles GET /v1/dashboard. Clients get their job figures, freelancers
// their bid figures and profile stats.
//
// @Summary      Role-specific dashboard
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dashboardResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/dashboard [get]
func (h *DashboardHandler) Get(c echo.Context) error {
	cl, err := ctxClaims(c)
	if err != nil {
		return err
	}
	me, err := h.auth.Profile(c.Request().Context(), cl.sessionID)
	if err != nil {
		return err
	}

	resp := dashboardResponse{User: toUserResponse(me)}
	switch me.Role {
	case domain.RoleClient:
		resp.Client = h.clientView(me.ID)
	case domain.RoleFreelancer:
		resp.Freelancer = h.freelancerView(me)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *DashboardHandler) clientView(clientID string) *clientDashboard {
	sum := h.store.ClientSummary(clientID)
	recent := make([]jobResponse, 0, recentLimit)
	for _, j := range h.store.Jobs() {
		if len(recent) == recentLimit {
			break
		}
		if j.PostedBy == clientID {
			recent = append(recent, toJobResponse(j))
		}
	}
	return &clientDashboard{
		Posted:      sum.Posted,
		Open:        sum.Open,
		InProgress:  sum.InProgress,
		Completed:   sum.Completed,
		TotalBudget: sum.TotalBudget,
		RecentJobs:  recent,
	}
}

func (h *DashboardHandler) freelancerView(me *domain.User) *freelancerDashboard {
	bids := h.store.BidsByFreelancer(me.ID)
	view := &freelancerDashboard{
		TotalBids:  len(bids),
		Rating:     me.Rating,
		RecentBids: make([]bidResponse, 0, recentLimit),
	}
	if me.CompletedJobs != nil {
		view.CompletedJobs = *me.CompletedJobs
	}
	for _, b := range bids {
		if b.Status == domain.BidPending {
			view.PendingBids++
		}
	}
	// Bids are stored oldest first; show the newest.
	for i := len(bids) - 1; i >= 0 && len(view.RecentBids) < recentLimit; i-- {
		view.RecentBids = append(view.RecentBids, toBidResponse(bids[i]))
	}
	return view
}
