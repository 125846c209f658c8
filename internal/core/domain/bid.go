package domain

import "time"

// BidStatus represents the state of a freelancer's offer.
type BidStatus string

const (
	BidPending  BidStatus = "pending"
	BidAccepted BidStatus = "accepted"
	BidRejected BidStatus = "rejected"
)

// Bid is a freelancer's offer against a job. Freelancer identity is
// denormalized at submission time.
type Bid struct {
	ID               string    `json:"id"`
	JobID            string    `json:"job_id"`
	FreelancerID     string    `json:"freelancer_id"`
	FreelancerName   string    `json:"freelancer_name"`
	FreelancerAvatar string    `json:"freelancer_avatar,omitempty"`
	Amount           float64   `json:"amount"`
	Proposal         string    `json:"proposal"`
	DeliveryDays     int       `json:"delivery_days"`
	CreatedAt        time.Time `json:"created_at"`
	Status           BidStatus `json:"status"`
}

// BidDraft carries the caller-supplied fields of a new bid.
type BidDraft struct {
	JobID            string
	FreelancerID     string
	FreelancerName   string
	FreelancerAvatar string
	Amount           float64
	Proposal         string
	DeliveryDays     int
}
