package domain

import "time"

// ActivityKind names a marketplace mutation recorded in the activity log.
type ActivityKind string

const (
	ActivityUserRegistered ActivityKind = "user_registered"
	ActivityUserLoggedIn   ActivityKind = "user_logged_in"
	ActivityProfileUpdated ActivityKind = "profile_updated"
	ActivityJobPosted      ActivityKind = "job_posted"
	ActivityJobUpdated     ActivityKind = "job_updated"
	ActivityJobDeleted     ActivityKind = "job_deleted"
	ActivityBidSubmitted   ActivityKind = "bid_submitted"
)

// ActivityEvent is an audit record of a single mutation.
// Key groups events that must be processed in order (a job id or user id).
type ActivityEvent struct {
	Kind      ActivityKind
	Key       string
	ActorID   string
	JobID     string
	BidID     string
	Timestamp time.Time
}
