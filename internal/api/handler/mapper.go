package handler

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/skilllink/marketplace/internal/core/domain"
)

const dateLayout = "2006-01-02"

// --- Request → domain ---

func toRegisterInput(req registerRequest) domain.RegisterInput {
	return domain.RegisterInput{
		Name:       strings.TrimSpace(req.Name),
		Email:      strings.TrimSpace(req.Email),
		Password:   req.Password,
		Role:       domain.Role(req.Role),
		Avatar:     req.Avatar,
		Bio:        req.Bio,
		Skills:     domain.NormalizeSkills(req.Skills),
		HourlyRate: req.HourlyRate,
		Portfolio:  toPortfolio(req.Portfolio),
	}
}

func toProfileUpdate(req updateProfileRequest) domain.ProfileUpdate {
	u := domain.ProfileUpdate{
		Name:       req.Name,
		Email:      req.Email,
		Avatar:     req.Avatar,
		Bio:        req.Bio,
		Skills:     req.Skills,
		HourlyRate: req.HourlyRate,
	}
	if req.Portfolio != nil {
		items := toPortfolio(*req.Portfolio)
		u.Portfolio = &items
	}
	return u
}

func toPortfolio(items []portfolioItemRequest) []domain.PortfolioItem {
	if len(items) == 0 {
		return nil
	}
	out := make([]domain.PortfolioItem, len(items))
	for i, it := range items {
		out[i] = domain.PortfolioItem{
			ID:          it.ID,
			Title:       it.Title,
			Description: it.Description,
			Image:       it.Image,
			URL:         it.URL,
		}
		if out[i].ID == "" {
			out[i].ID = strconv.Itoa(i + 1)
		}
	}
	return out
}

func toJobDraft(req createJobRequest, poster *domain.User) (domain.JobDraft, error) {
	deadline, err := time.Parse(dateLayout, req.Deadline)
	if err != nil {
		return domain.JobDraft{}, echo.NewHTTPError(http.StatusUnprocessableEntity, "deadline must be a date in 2006-01-02 format")
	}
	return domain.JobDraft{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Budget:      req.Budget,
		BudgetType:  domain.BudgetType(req.BudgetType),
		Deadline:    deadline,
		PostedBy:    poster.ID,
		ClientName:  poster.Name,
		Skills:      req.Skills,
	}, nil
}

func toJobUpdate(req updateJobRequest) (domain.JobUpdate, error) {
	u := domain.JobUpdate{
		Title:       req.Title,
		Description: req.Description,
		Budget:      req.Budget,
		Skills:      req.Skills,
	}
	if req.BudgetType != nil {
		bt := domain.BudgetType(*req.BudgetType)
		u.BudgetType = &bt
	}
	if req.Status != nil {
		st := domain.JobStatus(*req.Status)
		u.Status = &st
	}
	if req.Deadline != nil {
		d, err := time.Parse(dateLayout, *req.Deadline)
		if err != nil {
			return domain.JobUpdate{}, echo.NewHTTPError(http.StatusUnprocessableEntity, "deadline must be a date in 2006-01-02 format")
		}
		u.Deadline = &d
	}
	return u, nil
}

// parseCriteria reads q, skills, min_budget and max_budget from the query
// string. Absent values fall back to the default criteria. skills may be
// repeated or comma separated.
func parseCriteria(c echo.Context) (domain.Criteria, error) {
	crit := domain.DefaultCriteria()
	crit.Query = strings.TrimSpace(c.QueryParam("q"))

	var skills []string
	for _, raw := range c.QueryParams()["skills"] {
		skills = append(skills, strings.Split(raw, ",")...)
	}
	crit.Skills = domain.NormalizeSkills(skills)

	var err error
	if crit.MinBudget, err = floatParam(c, "min_budget", crit.MinBudget); err != nil {
		return domain.Criteria{}, err
	}
	if crit.MaxBudget, err = floatParam(c, "max_budget", crit.MaxBudget); err != nil {
		return domain.Criteria{}, err
	}
	return crit, nil
}

func floatParam(c echo.Context, name string, fallback float64) (float64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("%s must be a number", name))
	}
	return v, nil
}

// --- Domain → response ---

func toUserResponse(u *domain.User) userResponse {
	resp := userResponse{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Role:          string(u.Role),
		Avatar:        u.Avatar,
		Bio:           u.Bio,
		Skills:        u.Skills,
		HourlyRate:    u.HourlyRate,
		Rating:        u.Rating,
		CompletedJobs: u.CompletedJobs,
		JoinedDate:    u.JoinedDate.Format(dateLayout),
	}
	if resp.Skills == nil {
		resp.Skills = []string{}
	}
	for _, p := range u.Portfolio {
		resp.Portfolio = append(resp.Portfolio, portfolioItemResponse{
			ID:          p.ID,
			Title:       p.Title,
			Description: p.Description,
			Image:       p.Image,
			URL:         p.URL,
		})
	}
	return resp
}

func toJobResponse(j domain.Job) jobResponse {
	skills := j.Skills
	if skills == nil {
		skills = []string{}
	}
	return jobResponse{
		ID:          j.ID,
		Title:       j.Title,
		Description: j.Description,
		Budget:      j.Budget,
		BudgetType:  string(j.BudgetType),
		Deadline:    j.Deadline.Format(dateLayout),
		Status:      string(j.Status),
		PostedBy:    j.PostedBy,
		ClientName:  j.ClientName,
		Skills:      skills,
		CreatedAt:   j.CreatedAt,
		BidCount:    j.BidCount,
		Links: jobLinks{
			Self: "/v1/jobs/" + j.ID,
			Bids: "/v1/jobs/" + j.ID + "/bids",
		},
	}
}

func toJobResponses(jobs []domain.Job) []jobResponse {
	out := make([]jobResponse, len(jobs))
	for i, j := range jobs {
		out[i] = toJobResponse(j)
	}
	return out
}

func toBidResponse(b domain.Bid) bidResponse {
	return bidResponse{
		ID:               b.ID,
		JobID:            b.JobID,
		FreelancerID:     b.FreelancerID,
		FreelancerName:   b.FreelancerName,
		FreelancerAvatar: b.FreelancerAvatar,
		Amount:           b.Amount,
		Proposal:         b.Proposal,
		DeliveryDays:     b.DeliveryDays,
		CreatedAt:        b.CreatedAt,
		Status:           string(b.Status),
	}
}

func toBidResponses(bids []domain.Bid) []bidResponse {
	out := make([]bidResponse, len(bids))
	for i, b := range bids {
		out[i] = toBidResponse(b)
	}
	return out
}

func toCriteriaResponse(c domain.Criteria) searchCriteriaResponse {
	skills := c.Skills
	if skills == nil {
		skills = []string{}
	}
	return searchCriteriaResponse{
		Query:     c.Query,
		Skills:    skills,
		MinBudget: c.MinBudget,
		MaxBudget: c.MaxBudget,
	}
}
