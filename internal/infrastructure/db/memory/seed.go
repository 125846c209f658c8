package memory

import (
	"time"

	"github.com/skilllink/marketplace/internal/core/domain"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T { return &v }

// SeedUsers returns the demo accounts loaded at startup. They carry no
// password hash, so any password is accepted for them.
func SeedUsers() []*domain.User {
	return []*domain.User{
		{
			ID:         "1",
			Name:       "John Client",
			Email:      "john@example.com",
			Role:       domain.RoleClient,
			JoinedDate: day(2024, time.January, 15),
			Avatar:     "https://images.pexels.com/photos/1300402/pexels-photo-1300402.jpeg?auto=compress&cs=tinysrgb&w=100&h=100&fit=crop",
		},
		{
			ID:            "2",
			Name:          "Sarah Developer",
			Email:         "sarah@example.com",
			Role:          domain.RoleFreelancer,
			Bio:           "Full-stack developer with 5+ years experience",
			Skills:        []string{"React", "Node.js", "Python", "MongoDB"},
			HourlyRate:    ptr(45.0),
			Rating:        ptr(4.9),
			CompletedJobs: ptr(127),
			JoinedDate:    day(2023, time.August, 22),
			Avatar:        "https://images.pexels.com/photos/1181690/pexels-photo-1181690.jpeg?auto=compress&cs=tinysrgb&w=100&h=100&fit=crop",
			Portfolio: []domain.PortfolioItem{
				{
					ID:          "1",
					Title:       "E-commerce Platform",
					Description: "Built a full-stack e-commerce platform with React and Node.js",
					Image:       "https://images.pexels.com/photos/230544/pexels-photo-230544.jpeg?auto=compress&cs=tinysrgb&w=400&h=250&fit=crop",
				},
			},
		},
	}
}

// SeedJobs returns the demo catalog, newest first.
func SeedJobs() []domain.Job {
	return []domain.Job{
		{
			ID:          "1",
			Title:       "Build a React E-commerce Website",
			Description: "I need a modern e-commerce website built with React and Node.js. The website should include product catalog, shopping cart, user authentication, and payment integration.",
			Budget:      2500,
			BudgetType:  domain.BudgetFixed,
			Deadline:    day(2024, time.March, 15),
			Status:      domain.JobOpen,
			PostedBy:    "1",
			ClientName:  "John Client",
			Skills:      []string{"React", "Node.js", "MongoDB", "Payment Integration"},
			CreatedAt:   day(2024, time.January, 10),
			BidCount:    12,
		},
		{
			ID:          "2",
			Title:       "Mobile App UI/UX Design",
			Description: "Design a modern mobile app interface for a fitness tracking application. Need wireframes, mockups, and interactive prototypes.",
			Budget:      65,
			BudgetType:  domain.BudgetHourly,
			Deadline:    day(2024, time.February, 28),
			Status:      domain.JobOpen,
			PostedBy:    "1",
			ClientName:  "John Client",
			Skills:      []string{"UI/UX Design", "Figma", "Mobile Design"},
			CreatedAt:   day(2024, time.January, 8),
			BidCount:    8,
		},
		{
			ID:          "3",
			Title:       "WordPress Blog Setup",
			Description: "Set up a professional WordPress blog with custom theme, plugins, and SEO optimization. Need it completed within 1 week.",
			Budget:      800,
			BudgetType:  domain.BudgetFixed,
			Deadline:    day(2024, time.February, 20),
			Status:      domain.JobOpen,
			PostedBy:    "1",
			ClientName:  "John Client",
			Skills:      []string{"WordPress", "PHP", "SEO"},
			CreatedAt:   day(2024, time.January, 5),
			BidCount:    15,
		},
	}
}
