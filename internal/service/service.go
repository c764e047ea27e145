package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"refugee-portal/internal/config"
	"refugee-portal/internal/repository"
	"refugee-portal/internal/service/assessment"
	"refugee-portal/internal/service/audit"
	"refugee-portal/internal/service/auth"
	"refugee-portal/internal/service/casenote"
	"refugee-portal/internal/service/catalog"
	"refugee-portal/internal/service/dashboard"
	"refugee-portal/internal/service/document"
	"refugee-portal/internal/service/email"
	"refugee-portal/internal/service/event"
	"refugee-portal/internal/service/export"
	"refugee-portal/internal/service/household"
	"refugee-portal/internal/service/notification"
	"refugee-portal/internal/service/plan"
	"refugee-portal/internal/service/profile"
	"refugee-portal/internal/service/referral"
	"refugee-portal/internal/service/request"
)

type Services struct {
	Auth         auth.Service
	Profile      profile.Service
	Household    household.Service
	Request      request.Service
	Assessment   assessment.Service
	Referral     referral.Service
	CaseNote     casenote.Service
	Plan         plan.Service
	Event        event.Service
	Catalog      catalog.Service
	Dashboard    dashboard.Service
	Notification notification.Service
	Audit        audit.Service
	Document     document.Service
	Export       export.Service
	Email        email.Service
}

func NewServices(repos *repository.Repositories, redis *redis.Client, minioClient *minio.Client, cfg *config.Config, log *zap.Logger) *Services {
	emailService := email.NewService(cfg, log.Named("email"))
	dashboardService := dashboard.NewService(repos, redis, cfg.DashboardCacheTTL, log.Named("dashboard"))
	authService := auth.NewService(repos.Account, repos.Profile, repos.Session, emailService, dashboardService, cfg, log.Named("auth"))
	notificationService := notification.NewService(repos.Notification, repos.Profile, repos.Account, emailService, log.Named("notification"))

	return &Services{
		Auth:         authService,
		Profile:      profile.NewService(repos.Profile, repos.AuditLog, dashboardService, log.Named("profile")),
		Household:    household.NewService(repos.Household, repos.Profile, repos.AuditLog, notificationService, dashboardService, log.Named("household")),
		Request:      request.NewService(repos.Request, repos.Profile, repos.AuditLog, notificationService, dashboardService, log.Named("request")),
		Assessment:   assessment.NewService(repos.Assessment, repos.Household, repos.AuditLog, dashboardService, log.Named("assessment")),
		Referral:     referral.NewService(repos.Referral, repos.Household, repos.AuditLog, dashboardService, log.Named("referral")),
		CaseNote:     casenote.NewService(repos.CaseNote, repos.Household, repos.AuditLog, log.Named("casenote")),
		Plan:         plan.NewService(repos.Plan, repos.Household, repos.AuditLog, dashboardService, log.Named("plan")),
		Event:        event.NewService(repos.Event, repos.Household, notificationService, dashboardService, log.Named("event")),
		Catalog:      catalog.NewService(repos.Catalog, dashboardService, log.Named("catalog")),
		Dashboard:    dashboardService,
		Notification: notificationService,
		Audit:        audit.NewService(repos.AuditLog),
		Document:     document.NewService(repos.Document, repos.Profile, minioClient, cfg, log.Named("document")),
		Export:       export.NewService(repos.Household, repos.Request, repos.Profile, log.Named("export")),
		Email:        emailService,
	}
}
