package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth / profile ---

type portfolioItemRequest struct {
	ID          string `json:"id"`
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description"`
	Image       string `json:"image"`
	URL         string `json:"url"         validate:"omitempty,url"`
}

type registerRequest struct {
	Name            string                 `json:"name"             validate:"required"`
	Email           string                 `json:"email"            validate:"required,email"`
	Password        string                 `json:"password"         validate:"required,min=6"`
	ConfirmPassword string                 `json:"confirm_password" validate:"required,eqfield=Password"`
	Role            string                 `json:"role"             validate:"required,oneof=client freelancer"`
	Avatar          string                 `json:"avatar"`
	Bio             string                 `json:"bio"`
	Skills          []string               `json:"skills"`
	HourlyRate      *float64               `json:"hourly_rate"      validate:"omitempty,gte=0"`
	Portfolio       []portfolioItemRequest `json:"portfolio"        validate:"omitempty,dive"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"     validate:"required,oneof=client freelancer"`
}

type updateProfileRequest struct {
	Name       *string                 `json:"name"        validate:"omitempty,min=1"`
	Email      *string                 `json:"email"       validate:"omitempty,email"`
	Avatar     *string                 `json:"avatar"`
	Bio        *string                 `json:"bio"`
	Skills     *[]string               `json:"skills"`
	HourlyRate *float64                `json:"hourly_rate" validate:"omitempty,gte=0"`
	Portfolio  *[]portfolioItemRequest `json:"portfolio"   validate:"omitempty,dive"`
}

type portfolioItemResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image,omitempty"`
	URL         string `json:"url,omitempty"`
}

type userResponse struct {
	ID            string                  `json:"id"`
	Name          string                  `json:"name"`
	Email         string                  `json:"email"`
	Role          string                  `json:"role"`
	Avatar        string                  `json:"avatar,omitempty"`
	Bio           string                  `json:"bio,omitempty"`
	Skills        []string                `json:"skills"`
	HourlyRate    *float64                `json:"hourly_rate,omitempty"`
	Rating        *float64                `json:"rating,omitempty"`
	CompletedJobs *int                    `json:"completed_jobs,omitempty"`
	Portfolio     []portfolioItemResponse `json:"portfolio,omitempty"`
	JoinedDate    string                  `json:"joined_date"`
}

type authResponse struct {
	Token     string       `json:"token"`
	ExpiresIn int64        `json:"expires_in"`
	User      userResponse `json:"user"`
}

// --- Jobs ---

type createJobRequest struct {
	Title       string   `json:"title"       validate:"required"`
	Description string   `json:"description" validate:"required"`
	Budget      float64  `json:"budget"      validate:"required,gt=0"`
	BudgetType  string   `json:"budget_type" validate:"required,oneof=fixed hourly"`
	Deadline    string   `json:"deadline"    validate:"required,datetime=2006-01-02"`
	Skills      []string `json:"skills"`
}

type updateJobRequest struct {
	Title       *string   `json:"title"       validate:"omitempty,min=1"`
	Description *string   `json:"description" validate:"omitempty,min=1"`
	Budget      *float64  `json:"budget"      validate:"omitempty,gt=0"`
	BudgetType  *string   `json:"budget_type" validate:"omitempty,oneof=fixed hourly"`
	Deadline    *string   `json:"deadline"    validate:"omitempty,datetime=2006-01-02"`
	Status      *string   `json:"status"      validate:"omitempty,oneof=open in_progress completed cancelled"`
	Skills      *[]string `json:"skills"`
}

type jobLinks struct {
	Self string `json:"self"`
	Bids string `json:"bids"`
}

type jobResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Budget      float64   `json:"budget"`
	BudgetType  string    `json:"budget_type"`
	Deadline    string    `json:"deadline"`
	Status      string    `json:"status"`
	PostedBy    string    `json:"posted_by"`
	ClientName  string    `json:"client_name"`
	Skills      []string  `json:"skills"`
	CreatedAt   time.Time `json:"created_at"`
	BidCount    int       `json:"bid_count"`
	Links       jobLinks  `json:"_links"`
}

type searchCriteriaResponse struct {
	Query     string   `json:"q"`
	Skills    []string `json:"skills"`
	MinBudget float64  `json:"min_budget"`
	MaxBudget float64  `json:"max_budget"`
}

type jobListResponse struct {
	Jobs     []jobResponse          `json:"jobs"`
	Total    int                    `json:"total"`
	Criteria searchCriteriaResponse `json:"criteria"`
}

// --- Bids ---

type submitBidRequest struct {
	Amount       float64 `json:"amount"        validate:"required,gt=0"`
	Proposal     string  `json:"proposal"      validate:"required"`
	DeliveryDays int     `json:"delivery_days" validate:"required,min=1"`
}

type bidResponse struct {
	ID               string    `json:"id"`
	JobID            string    `json:"job_id"`
	FreelancerID     string    `json:"freelancer_id"`
	FreelancerName   string    `json:"freelancer_name"`
	FreelancerAvatar string    `json:"freelancer_avatar,omitempty"`
	Amount           float64   `json:"amount"`
	Proposal         string    `json:"proposal"`
	DeliveryDays     int       `json:"delivery_days"`
	CreatedAt        time.Time `json:"created_at"`
	Status           string    `json:"status"`
}

type bidListResponse struct {
	Bids  []bidResponse `json:"bids"`
	Total int           `json:"total"`
}

// --- Dashboard ---

type clientDashboard struct {
	Posted      int           `json:"posted"`
	Open        int           `json:"open"`
	InProgress  int           `json:"in_progress"`
	Completed   int           `json:"completed"`
	TotalBudget float64       `json:"total_budget"`
	RecentJobs  []jobResponse `json:"recent_jobs"`
}

type freelancerDashboard struct {
	TotalBids     int           `json:"total_bids"`
	PendingBids   int           `json:"pending_bids"`
	CompletedJobs int           `json:"completed_jobs"`
	Rating        *float64      `json:"rating,omitempty"`
	RecentBids    []bidResponse `json:"recent_bids"`
}

type dashboardResponse struct {
	User       userResponse         `json:"user"`
	Client     *clientDashboard     `json:"client,omitempty"`
	Freelancer *freelancerDashboard `json:"freelancer,omitempty"`
}
