package domain

import (
	"slices"
	"strings"
)

// Default budget bounds applied when no range has been chosen.
const (
	DefaultMinBudget = 0
	DefaultMaxBudget = 10000
)

// Criteria is the active search and filter state over the job catalog.
type Criteria struct {
	Query     string
	Skills    []string
	MinBudget float64
	MaxBudget float64
}

// DefaultCriteria matches every job whose budget lies in the default range.
func DefaultCriteria() Criteria {
	return Criteria{MinBudget: DefaultMinBudget, MaxBudget: DefaultMaxBudget}
}

// Clone returns a copy that shares no slices with c.
func (c Criteria) Clone() Criteria {
	c.Skills = slices.Clone(c.Skills)
	return c
}

// Matches reports whether j passes all three filters: free-text search over
// title and description, any-of skill intersection, and inclusive budget range.
func (c Criteria) Matches(j Job) bool {
	return c.matchesQuery(j) && c.matchesSkills(j) && c.matchesBudget(j)
}

func (c Criteria) matchesQuery(j Job) bool {
	if c.Query == "" {
		return true
	}
	q := strings.ToLower(c.Query)
	return strings.Contains(strings.ToLower(j.Title), q) ||
		strings.Contains(strings.ToLower(j.Description), q)
}

func (c Criteria) matchesSkills(j Job) bool {
	if len(c.Skills) == 0 {
		return true
	}
	for _, s := range c.Skills {
		if slices.Contains(j.Skills, s) {
			return true
		}
	}
	return false
}

func (c Criteria) matchesBudget(j Job) bool {
	return j.Budget >= c.MinBudget && j.Budget <= c.MaxBudget
}
