package domain

import "github.com/google/uuid"

type AdminStats struct {
	RefugeeCount        int64             `json:"refugee_count"`
	RequestCount        int64             `json:"request_count"`
	PendingRequestCount int64             `json:"pending_request_count"`
	DonationTotal       float64           `json:"donation_total"`
	RecentRequests      []Request         `json:"recent_requests"`
	Errors              map[string]string `json:"errors,omitempty"`
}

type CaseworkerStats struct {
	TotalCases         int64             `json:"total_cases"`
	PendingAssessments int64             `json:"pending_assessments"`
	ActiveReferrals    int64             `json:"active_referrals"`
	ActivePlans        int64             `json:"active_plans"`
	UpcomingEvents     int64             `json:"upcoming_events"`
	OverdueAssessments []Assessment      `json:"overdue_assessments"`
	Errors             map[string]string `json:"errors,omitempty"`
}

type RefugeeOverview struct {
	HouseholdID     *uuid.UUID        `json:"household_id,omitempty"`
	Caseworker      *ProfileSummary   `json:"caseworker,omitempty"`
	GoalsCompleted  int               `json:"goals_completed"`
	GoalsTotal      int               `json:"goals_total"`
	Progress        int               `json:"progress"`
	PendingRequests []Request         `json:"pending_requests"`
	UpcomingEvents  []CommunityEvent  `json:"upcoming_events"`
	Errors          map[string]string `json:"errors,omitempty"`
}
