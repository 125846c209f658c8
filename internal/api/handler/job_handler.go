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

// JobHandler serves the job catalog and the client-side job operations.
type JobHandler struct {
	store ports.MarketplaceStore
	auth  ports.AuthService
	idem  idempotency
}

func NewJobHandler(store ports.MarketplaceStore, auth ports.AuthService, idem ports.IdempotencyStore, idemTTL time.Duration, log zerolog.Logger) *JobHandler {
	return &JobHandler{
		store: store,
		auth:  auth,
		idem:  idempotency{store: idem, ttl: idemTTL, log: log},
	}
}

// List handles GET /v1/jobs.
//
// @Summary      Search jobs
// @Description  Text search over title and description (case-insensitive), any-of skill match and inclusive budget range. Results are newest first.
// @Tags         jobs
// @Produce      json
// @Param        q           query     string  false  "Substring of title or description"
// @Param        skills      query     string  false  "Comma-separated skills; a job matches if it has any of them"
// @Param        min_budget  query     number  false  "Inclusive lower bound (default 0)"
// @Param        max_budget  query     number  false  "Inclusive upper bound (default 10000)"
// @Success      200         {object}  jobListResponse
// @Failure      400         {object}  errorResponse
// @Router       /v1/jobs [get]
func (h *JobHandler) List(c echo.Context) error {
	crit, err := parseCriteria(c)
	if err != nil {
		return err
	}
	jobs := h.store.Search(crit)
	metrics.JobSearchResults.Observe(float64(len(jobs)))

	return c.JSON(http.StatusOK, jobListResponse{
		Jobs:     toJobResponses(jobs),
		Total:    len(jobs),
		Criteria: toCriteriaResponse(crit),
	})
}

// Get handles GET /v1/jobs/:id.
//
// @Summary      Get a job
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job id"
// @Success      200  {object}  jobResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/jobs/{id} [get]
func (h *JobHandler) Get(c echo.Context) error {
	job, err := h.store.Job(c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toJobResponse(job))
}

// Create handles POST /v1/jobs. A repeated Idempotency-Key returns the job
// created by the first request with 200 instead of posting a duplicate.
//
// @Summary      Post a job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string            false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      createJobRequest  true   "Job details"
// @Success      201              {object}  jobResponse
// @Success      200              {object}  jobResponse
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Failure      403              {object}  errorResponse
// @Failure      409              {object}  errorResponse
// @Failure      422              {object}  errorResponse
// @Router       /v1/jobs [post]
func (h *JobHandler) Create(c echo.Context) error {
	cl, err := ctxClaims(c)
	if err != nil {
		return err
	}
	var req createJobRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	// Name comes from the profile; the token's name claim is fixed at login.
	ctx := c.Request().Context()
	me, err := h.auth.Profile(ctx, cl.sessionID)
	if err != nil {
		return err
	}
	draft, err := toJobDraft(req, me)
	if err != nil {
		return err
	}

	key := h.idem.key(c, "job", cl.userID)
	prior, err := h.idem.reserve(ctx, "job", key)
	if err != nil {
		return err
	}
	if prior != "" {
		if job, err := h.store.Job(prior); err == nil {
			return c.JSON(http.StatusOK, toJobResponse(job))
		}
	}

	job := h.store.AddJob(draft)
	h.idem.complete(ctx, "job", key, job.ID)
	metrics.JobsPostedTotal.WithLabelValues(string(job.BudgetType)).Inc()

	c.Response().Header().Set(echo.HeaderLocation, "/v1/jobs/"+job.ID)
	return c.JSON(http.StatusCreated, toJobResponse(job))
}

// Update handles PATCH /v1/jobs/:id. Only the posting client may edit.
//
// @Summary      Update a job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Job id"
// @Param        body  body      updateJobRequest  true  "Fields to change"
// @Success      200   {object}  jobResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/jobs/{id} [patch]
func (h *JobHandler) Update(c echo.Context) error {
	cl, err := ctxClaims(c)
	if err != nil {
		return err
	}
	var req updateJobRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	update, err := toJobUpdate(req)
	if err != nil {
		return err
	}

	id := c.Param("id")
	if err := h.authorizeOwner(id, cl); err != nil {
		return err
	}
	job, err := h.store.UpdateJob(id, update)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toJobResponse(job))
}

// Delete handles DELETE /v1/jobs/:id. Only the posting client may delete.
//
// @Summary      Delete a job
// @Tags         jobs
// @Security     BearerAuth
// @Param        id  path  string  true  "Job id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/jobs/{id} [delete]
func (h *JobHandler) Delete(c echo.Context) error {
	cl, err := ctxClaims(c)
	if err != nil {
		return err
	}
	id := c.Param("id")
	if err := h.authorizeOwner(id, cl); err != nil {
		return err
	}
	if err := h.store.DeleteJob(id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Bids handles GET /v1/jobs/:id/bids. Only the posting client sees them.
//
// @Summary      List bids on a job
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Job id"
// @Success      200  {object}  bidListResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/jobs/{id}/bids [get]
func (h *JobHandler) Bids(c echo.Context) error {
	cl, err := ctxClaims(c)
	if err != nil {
		return err
	}
	id := c.Param("id")
	if err := h.authorizeOwner(id, cl); err != nil {
		return err
	}
	bids := h.store.BidsForJob(id)
	return c.JSON(http.StatusOK, bidListResponse{Bids: toBidResponses(bids), Total: len(bids)})
}

func (h *JobHandler) authorizeOwner(jobID string, cl claims) error {
	job, err := h.store.Job(jobID)
	if err != nil {
		return err
	}
	if job.PostedBy != cl.userID {
		return domain.ErrForbidden
	}
	return nil
}
