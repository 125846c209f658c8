package domain

import (
	"slices"
	"strings"
	"time"
)

// JobStatus represents the lifecycle state of a job.
type JobStatus string

const (
	JobOpen       JobStatus = "open"
	JobInProgress JobStatus = "in_progress"
	JobCompleted  JobStatus = "completed"
	JobCancelled  JobStatus = "cancelled"
)

// validTransitions defines the allowed job lifecycle transitions.
var validTransitions = map[JobStatus][]JobStatus{
	JobOpen:       {JobInProgress, JobCancelled},
	JobInProgress: {JobCompleted, JobCancelled},
}

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s JobStatus) CanTransitionTo(next JobStatus) bool {
	return slices.Contains(validTransitions[s], next)
}

// BudgetType tells whether a job budget is a lump sum or an hourly rate.
type BudgetType string

const (
	BudgetFixed  BudgetType = "fixed"
	BudgetHourly BudgetType = "hourly"
)

// Job is a posted work request. PostedBy and ClientName are captured at
// creation time and never re-joined against the directory.
type Job struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Budget      float64    `json:"budget"`
	BudgetType  BudgetType `json:"budget_type"`
	Deadline    time.Time  `json:"deadline"`
	Status      JobStatus  `json:"status"`
	PostedBy    string     `json:"posted_by"`
	ClientName  string     `json:"client_name"`
	Skills      []string   `json:"skills"`
	CreatedAt   time.Time  `json:"created_at"`
	BidCount    int        `json:"bid_count"`
}

// Clone returns a copy that shares no slices with j.
func (j Job) Clone() Job {
	j.Skills = slices.Clone(j.Skills)
	return j
}

// JobDraft carries the caller-supplied fields of a new job.
type JobDraft struct {
	Title       string
	Description string
	Budget      float64
	BudgetType  BudgetType
	Deadline    time.Time
	PostedBy    string
	ClientName  string
	Skills      []string
}

// JobUpdate is a partial update of a job. Nil fields are left untouched.
type JobUpdate struct {
	Title       *string
	Description *string
	Budget      *float64
	BudgetType  *BudgetType
	Deadline    *time.Time
	Status      *JobStatus
	Skills      *[]string
}

// Apply merges the non-nil fields of u into j. A status change must be a
// valid lifecycle transition; setting the current status again is accepted.
func (u JobUpdate) Apply(j *Job) error {
	if u.Status != nil && *u.Status != j.Status && !j.Status.CanTransitionTo(*u.Status) {
		return ErrInvalidTransition
	}
	if u.Title != nil {
		j.Title = *u.Title
	}
	if u.Description != nil {
		j.Description = *u.Description
	}
	if u.Budget != nil {
		j.Budget = *u.Budget
	}
	if u.BudgetType != nil {
		j.BudgetType = *u.BudgetType
	}
	if u.Deadline != nil {
		j.Deadline = *u.Deadline
	}
	if u.Status != nil {
		j.Status = *u.Status
	}
	if u.Skills != nil {
		j.Skills = NormalizeSkills(*u.Skills)
	}
	return nil
}

// NormalizeSkills trims each skill and drops blanks and repeats, keeping
// first-seen order.
func NormalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s == "" || slices.Contains(out, s) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// ClientSummary aggregates the jobs posted by one client.
type ClientSummary struct {
	Posted      int     `json:"posted"`
	Open        int     `json:"open"`
	InProgress  int     `json:"in_progress"`
	Completed   int     `json:"completed"`
	TotalBudget float64 `json:"total_budget"`
}
