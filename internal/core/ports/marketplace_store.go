package ports

import "github.com/skilllink/marketplace/internal/core/domain"

// MarketplaceStore owns the job catalog, submitted bids and the active
// filter criteria. Every read returns copies.
type MarketplaceStore interface {
	AddJob(draft domain.JobDraft) domain.Job
	UpdateJob(jobID string, update domain.JobUpdate) (domain.Job, error)
	DeleteJob(jobID string) error
	SetJobs(jobs []domain.Job)
	Job(jobID string) (domain.Job, error)
	Jobs() []domain.Job

	SubmitBid(draft domain.BidDraft) (domain.Bid, error)
	Bids() []domain.Bid
	BidsForJob(jobID string) []domain.Bid
	BidsByFreelancer(freelancerID string) []domain.Bid

	SetSearchQuery(query string)
	SetSelectedSkills(skills []string)
	SetBudgetRange(min, max float64)
	ResetFilters()
	Criteria() domain.Criteria
	FilteredJobs() []domain.Job
	Search(criteria domain.Criteria) []domain.Job

	ClientSummary(clientID string) domain.ClientSummary
}
