package service

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/skilllink/marketplace/internal/core/domain"
	"github.com/skilllink/marketplace/internal/core/ports"
)

var _ ports.MarketplaceStore = (*MarketplaceStore)(nil)

// MarketplaceStore owns the job catalog (newest first), every submitted bid
// and the active filter criteria. A single lock guards all three, so a bid
// and the bid count it increments are always observed together.
type MarketplaceStore struct {
	log    zerolog.Logger
	events ports.ActivityPublisher
	now    func() time.Time

	mu       sync.RWMutex
	jobs     []*domain.Job
	bids     []*domain.Bid
	criteria domain.Criteria
}

// NewMarketplaceStore returns a store holding seed as its initial catalog.
func NewMarketplaceStore(log zerolog.Logger, events ports.ActivityPublisher, seed ...domain.Job) *MarketplaceStore {
	if events == nil {
		events = ports.NopPublisher{}
	}
	s := &MarketplaceStore{
		log:      log,
		events:   events,
		now:      time.Now,
		criteria: domain.DefaultCriteria(),
	}
	s.jobs = cloneIn(seed)
	return s
}

// AddJob publishes a new open job at the head of the catalog.
func (s *MarketplaceStore) AddJob(draft domain.JobDraft) domain.Job {
	now := s.now().UTC()
	job := &domain.Job{
		ID:          uuid.NewString(),
		Title:       draft.Title,
		Description: draft.Description,
		Budget:      draft.Budget,
		BudgetType:  draft.BudgetType,
		Deadline:    draft.Deadline,
		Status:      domain.JobOpen,
		PostedBy:    draft.PostedBy,
		ClientName:  draft.ClientName,
		Skills:      domain.NormalizeSkills(draft.Skills),
		CreatedAt:   now,
	}

	s.mu.Lock()
	s.jobs = slices.Insert(s.jobs, 0, job)
	out := job.Clone()
	s.mu.Unlock()

	s.events.Publish(domain.ActivityEvent{
		Kind:      domain.ActivityJobPosted,
		Key:       job.ID,
		ActorID:   job.PostedBy,
		JobID:     job.ID,
		Timestamp: now,
	})
	s.log.Info().Str("job_id", job.ID).Str("posted_by", job.PostedBy).Msg("job posted")
	return out
}

// UpdateJob merges update into the job with jobID.
func (s *MarketplaceStore) UpdateJob(jobID string, update domain.JobUpdate) (domain.Job, error) {
	s.mu.Lock()
	i := s.indexOf(jobID)
	if i < 0 {
		s.mu.Unlock()
		return domain.Job{}, domain.ErrJobNotFound
	}
	// Apply on a copy so a rejected transition leaves the catalog untouched.
	updated := s.jobs[i].Clone()
	if err := update.Apply(&updated); err != nil {
		s.mu.Unlock()
		return domain.Job{}, err
	}
	s.jobs[i] = &updated
	out := updated.Clone()
	s.mu.Unlock()

	s.events.Publish(domain.ActivityEvent{
		Kind:      domain.ActivityJobUpdated,
		Key:       jobID,
		ActorID:   out.PostedBy,
		JobID:     jobID,
		Timestamp: s.now().UTC(),
	})
	return out, nil
}

// DeleteJob removes the job with jobID from the catalog. Its bids are kept.
func (s *MarketplaceStore) DeleteJob(jobID string) error {
	s.mu.Lock()
	i := s.indexOf(jobID)
	if i < 0 {
		s.mu.Unlock()
		return domain.ErrJobNotFound
	}
	postedBy := s.jobs[i].PostedBy
	s.jobs = slices.Delete(s.jobs, i, i+1)
	s.mu.Unlock()

	s.events.Publish(domain.ActivityEvent{
		Kind:      domain.ActivityJobDeleted,
		Key:       jobID,
		ActorID:   postedBy,
		JobID:     jobID,
		Timestamp: s.now().UTC(),
	})
	s.log.Info().Str("job_id", jobID).Msg("job deleted")
	return nil
}

// SetJobs replaces the whole catalog. Order is kept as given.
func (s *MarketplaceStore) SetJobs(jobs []domain.Job) {
	fresh := cloneIn(jobs)
	s.mu.Lock()
	s.jobs = fresh
	s.mu.Unlock()
}

func (s *MarketplaceStore) Job(jobID string) (domain.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(jobID)
	if i < 0 {
		return domain.Job{}, domain.ErrJobNotFound
	}
	return s.jobs[i].Clone(), nil
}

// Jobs returns the full catalog in display order.
func (s *MarketplaceStore) Jobs() []domain.Job {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Job, len(s.jobs))
	for i, j := range s.jobs {
		out[i] = j.Clone()
	}
	return out
}

// SubmitBid records a pending bid and increments the target job's bid count
// in the same critical section. A bid for an unknown job is rejected.
func (s *MarketplaceStore) SubmitBid(draft domain.BidDraft) (domain.Bid, error) {
	now := s.now().UTC()
	bid := &domain.Bid{
		ID:               uuid.NewString(),
		JobID:            draft.JobID,
		FreelancerID:     draft.FreelancerID,
		FreelancerName:   draft.FreelancerName,
		FreelancerAvatar: draft.FreelancerAvatar,
		Amount:           draft.Amount,
		Proposal:         draft.Proposal,
		DeliveryDays:     draft.DeliveryDays,
		CreatedAt:        now,
		Status:           domain.BidPending,
	}

	s.mu.Lock()
	i := s.indexOf(draft.JobID)
	if i < 0 {
		s.mu.Unlock()
		s.log.Debug().Str("job_id", draft.JobID).Msg("bid rejected: unknown job")
		return domain.Bid{}, domain.ErrJobNotFound
	}
	s.bids = append(s.bids, bid)
	s.jobs[i].BidCount++
	out := *bid
	s.mu.Unlock()

	s.events.Publish(domain.ActivityEvent{
		Kind:      domain.ActivityBidSubmitted,
		Key:       draft.JobID,
		ActorID:   draft.FreelancerID,
		JobID:     draft.JobID,
		BidID:     bid.ID,
		Timestamp: now,
	})
	s.log.Info().Str("bid_id", bid.ID).Str("job_id", bid.JobID).Str("freelancer_id", bid.FreelancerID).Msg("bid submitted")
	return out, nil
}

// Bids returns every submitted bid in submission order.
func (s *MarketplaceStore) Bids() []domain.Bid {
	return s.bidsWhere(func(*domain.Bid) bool { return true })
}

func (s *MarketplaceStore) BidsForJob(jobID string) []domain.Bid {
	return s.bidsWhere(func(b *domain.Bid) bool { return b.JobID == jobID })
}

func (s *MarketplaceStore) BidsByFreelancer(freelancerID string) []domain.Bid {
	return s.bidsWhere(func(b *domain.Bid) bool { return b.FreelancerID == freelancerID })
}

func (s *MarketplaceStore) SetSearchQuery(query string) {
	s.mu.Lock()
	s.criteria.Query = query
	s.mu.Unlock()
}

func (s *MarketplaceStore) SetSelectedSkills(skills []string) {
	s.mu.Lock()
	s.criteria.Skills = slices.Clone(skills)
	s.mu.Unlock()
}

// SetBudgetRange sets the inclusive budget bounds.
func (s *MarketplaceStore) SetBudgetRange(min, max float64) {
	s.mu.Lock()
	s.criteria.MinBudget = min
	s.criteria.MaxBudget = max
	s.mu.Unlock()
}

// ResetFilters restores the default criteria.
func (s *MarketplaceStore) ResetFilters() {
	s.mu.Lock()
	s.criteria = domain.DefaultCriteria()
	s.mu.Unlock()
}

func (s *MarketplaceStore) Criteria() domain.Criteria {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.criteria.Clone()
}

// FilteredJobs evaluates the stored criteria against the full catalog.
func (s *MarketplaceStore) FilteredJobs() []domain.Job {
	return s.Search(s.Criteria())
}

// Search evaluates criteria against the full catalog without touching the
// stored criteria. Results keep catalog order.
func (s *MarketplaceStore) Search(criteria domain.Criteria) []domain.Job {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Job, 0, len(s.jobs))
	for _, j := range s.jobs {
		if criteria.Matches(*j) {
			out = append(out, j.Clone())
		}
	}
	return out
}

// ClientSummary aggregates the jobs posted by clientID.
func (s *MarketplaceStore) ClientSummary(clientID string) domain.ClientSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var sum domain.ClientSummary
	for _, j := range s.jobs {
		if j.PostedBy != clientID {
			continue
		}
		sum.Posted++
		sum.TotalBudget += j.Budget
		switch j.Status {
		case domain.JobOpen:
			sum.Open++
		case domain.JobInProgress:
			sum.InProgress++
		case domain.JobCompleted:
			sum.Completed++
		}
	}
	return sum
}

func (s *MarketplaceStore) indexOf(jobID string) int {
	return slices.IndexFunc(s.jobs, func(j *domain.Job) bool { return j.ID == jobID })
}

func (s *MarketplaceStore) bidsWhere(keep func(*domain.Bid) bool) []domain.Bid {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Bid, 0, len(s.bids))
	for _, b := range s.bids {
		if keep(b) {
			out = append(out, *b)
		}
	}
	return out
}

func cloneIn(jobs []domain.Job) []*domain.Job {
	out := make([]*domain.Job, len(jobs))
	for i := range jobs {
		j := jobs[i].Clone()
		out[i] = &j
	}
	return out
}
