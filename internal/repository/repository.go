package repository

import (
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	Profile      ProfileRepository
	Account      AccountRepository
	Session      SessionRepository
	Household    HouseholdRepository
	Request      RequestRepository
	Assessment   AssessmentRepository
	Referral     ReferralRepository
	CaseNote     CaseNoteRepository
	Plan         PlanRepository
	Event        EventRepository
	Catalog      CatalogRepository
	Notification NotificationRepository
	AuditLog     AuditLogRepository
	Document     DocumentRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		Profile:      NewProfileRepository(db),
		Account:      NewAccountRepository(db),
		Session:      NewSessionRepository(db),
		Household:    NewHouseholdRepository(db),
		Request:      NewRequestRepository(db),
		Assessment:   NewAssessmentRepository(db),
		Referral:     NewReferralRepository(db),
		CaseNote:     NewCaseNoteRepository(db),
		Plan:         NewPlanRepository(db),
		Event:        NewEventRepository(db),
		Catalog:      NewCatalogRepository(db),
		Notification: NewNotificationRepository(db),
		AuditLog:     NewAuditLogRepository(db),
		Document:     NewDocumentRepository(db),
	}
}
