package domain

import (
	"slices"
	"time"
)

// Role identifies which side of the marketplace a user acts on.
type Role string

const (
	RoleClient     Role = "client"
	RoleFreelancer Role = "freelancer"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleClient || r == RoleFreelancer
}

// PortfolioItem is a piece of past work shown on a freelancer profile.
type PortfolioItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image,omitempty"`
	URL         string `json:"url,omitempty"`
}

// User models a registered marketplace participant.
// Role is fixed at registration; everything else may change via ProfileUpdate.
type User struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	Role          Role            `json:"role"`
	Avatar        string          `json:"avatar,omitempty"`
	Bio           string          `json:"bio,omitempty"`
	Skills        []string        `json:"skills,omitempty"`
	HourlyRate    *float64        `json:"hourly_rate,omitempty"`
	Rating        *float64        `json:"rating,omitempty"`
	CompletedJobs *int            `json:"completed_jobs,omitempty"`
	Portfolio     []PortfolioItem `json:"portfolio,omitempty"`
	JoinedDate    time.Time       `json:"joined_date"`
	PasswordHash  string          `json:"-"`
}

// Clone returns a deep copy so callers never share slices with a store.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.Skills = slices.Clone(u.Skills)
	c.Portfolio = slices.Clone(u.Portfolio)
	if u.HourlyRate != nil {
		v := *u.HourlyRate
		c.HourlyRate = &v
	}
	if u.Rating != nil {
		v := *u.Rating
		c.Rating = &v
	}
	if u.CompletedJobs != nil {
		v := *u.CompletedJobs
		c.CompletedJobs = &v
	}
	return &c
}

// ProfileUpdate is a partial update of a user profile. Nil fields are left untouched.
type ProfileUpdate struct {
	Name          *string
	Email         *string
	Avatar        *string
	Bio           *string
	Skills        *[]string
	HourlyRate    *float64
	Rating        *float64
	CompletedJobs *int
	Portfolio     *[]PortfolioItem
}

// Apply merges the non-nil fields of p into u.
func (p ProfileUpdate) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Avatar != nil {
		u.Avatar = *p.Avatar
	}
	if p.Bio != nil {
		u.Bio = *p.Bio
	}
	if p.Skills != nil {
		u.Skills = NormalizeSkills(*p.Skills)
	}
	if p.HourlyRate != nil {
		v := *p.HourlyRate
		u.HourlyRate = &v
	}
	if p.Rating != nil {
		v := *p.Rating
		u.Rating = &v
	}
	if p.CompletedJobs != nil {
		v := *p.CompletedJobs
		u.CompletedJobs = &v
	}
	if p.Portfolio != nil {
		u.Portfolio = slices.Clone(*p.Portfolio)
	}
}

// RegisterInput carries the profile data of a new account.
type RegisterInput struct {
	Name       string
	Email      string
	Password   string
	Role       Role
	Avatar     string
	Bio        string
	Skills     []string
	HourlyRate *float64
	Portfolio  []PortfolioItem
}
