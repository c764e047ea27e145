package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"refugee-portal/internal/config"
	"refugee-portal/internal/domain"
	"refugee-portal/internal/handler"
	"refugee-portal/internal/middleware"
	"refugee-portal/internal/pkg/i18n"
	applog "refugee-portal/internal/pkg/logger"
	"refugee-portal/internal/repository"
	"refugee-portal/internal/service"
	"refugee-portal/internal/service/auth"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	zl, err := applog.New(cfg.LogLevel, cfg.LogFormat, cfg.ServiceName)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zl.Sync()

	if err := cfg.Validate(); err != nil {
		zl.Fatal("invalid configuration", zap.Error(err))
	}
	if err := i18n.Load(); err != nil {
		zl.Fatal("failed to load locales", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := config.NewPostgresDB(ctx, cfg)
	if err != nil {
		zl.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if cfg.RunMigrations {
		if err := config.RunMigrations(db, zl); err != nil {
			zl.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis, err := config.NewRedisClient(ctx, cfg)
	if err != nil {
		zl.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer redis.Close()

	minioClient, err := config.NewMinIOClient(ctx, cfg, zl)
	if err != nil {
		zl.Fatal("failed to connect to object storage", zap.Error(err))
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, redis, minioClient, cfg, zl)
	handlers := handler.NewHandlers(services)

	app := fiber.New(fiber.Config{
		AppName:      cfg.ServiceName,
		ErrorHandler: middleware.NewErrorHandler(zl),
		BodyLimit:    domain.MaxDocumentSize + 1<<20,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, apikey, X-Service-Key",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))
	app.Use(middleware.RequestInfo())

	setupRoutes(app, handlers, services.Auth, db, cfg)

	go func() {
		zl.Info("server starting", zap.String("port", cfg.Port), zap.String("environment", cfg.Environment))
		if err := app.Listen(":" + cfg.Port); err != nil {
			zl.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zl.Info("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		zl.Error("shutdown failed", zap.Error(err))
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, authService auth.Service, db *sqlx.DB, cfg *config.Config) {
	app.Get("/health", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable", "database": err.Error()})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	requireAuth := middleware.AuthRequired(authService)
	perm := middleware.RequirePermission

	authGroup := app.Group("/auth", middleware.APIKey(cfg.PublicAPIKey))
	authGroup.Post("/signup", h.Auth.SignUp)
	authGroup.Post("/signin", h.Auth.SignIn)
	authGroup.Post("/refresh", h.Auth.Refresh)
	authGroup.Post("/signout", h.Auth.SignOut)
	authGroup.Post("/forgot-password", h.Auth.ForgotPassword)
	authGroup.Post("/reset-password", h.Auth.ResetPassword)
	authGroup.Get("/verify-email", h.Auth.VerifyEmail)
	authGroup.Post("/resend-verification", h.Auth.ResendVerificationEmail)
	authGroup.Get("/session", requireAuth, h.Auth.Session)
	authGroup.Get("/landing", requireAuth, h.Auth.Landing)

	v1 := app.Group("/api/v1", middleware.APIKey(cfg.PublicAPIKey), requireAuth)

	profiles := v1.Group("/profiles")
	profiles.Get("/me", h.Profile.Me)
	profiles.Patch("/me", h.Profile.UpdateMe)
	profiles.Get("/", perm(middleware.PermViewProfiles), h.Profile.List)
	profiles.Get("/:id", h.Profile.Get)
	profiles.Patch("/:id", h.Profile.Update)
	profiles.Get("/:id/documents", perm(middleware.PermDocuments), h.Document.List)
	profiles.Post("/:id/documents", perm(middleware.PermDocuments), h.Document.Upload)

	documents := v1.Group("/documents", perm(middleware.PermDocuments))
	documents.Get("/:id", h.Document.Get)
	documents.Delete("/:id", h.Document.Delete)

	households := v1.Group("/households", perm(middleware.PermViewHouseholds))
	households.Get("/", h.Household.List)
	households.Get("/:id", h.Household.Get)
	households.Post("/", perm(middleware.PermManageHouseholds), h.Household.Create)
	households.Patch("/:id", perm(middleware.PermManageHouseholds), h.Household.Update)
	households.Post("/:id/assign", perm(middleware.PermManageHouseholds), h.Household.AssignCaseworker)
	households.Post("/:id/close", perm(middleware.PermManageHouseholds), h.Household.Close)
	households.Post("/:id/members", perm(middleware.PermManageHouseholds), h.Household.AddMember)
	households.Put("/:id/head", perm(middleware.PermManageHouseholds), h.Household.SetHead)
	households.Get("/:id/notes", perm(middleware.PermManageCasework), h.Casework.ListNotes)
	households.Post("/:id/notes", perm(middleware.PermManageCasework), h.Casework.CreateNote)

	requests := v1.Group("/requests", perm(middleware.PermCreateRequest))
	requests.Post("/", h.Request.Create)
	requests.Get("/", h.Request.List)
	requests.Get("/:id", h.Request.Get)
	requests.Post("/:id/review", perm(middleware.PermReviewRequest), h.Request.Review)

	assessments := v1.Group("/assessments", perm(middleware.PermManageCasework))
	assessments.Get("/", h.Casework.ListAssessments)
	assessments.Post("/", h.Casework.CreateAssessment)
	assessments.Get("/:id", h.Casework.GetAssessment)
	assessments.Patch("/:id", h.Casework.UpdateAssessment)
	assessments.Delete("/:id", h.Casework.DeleteAssessment)

	referrals := v1.Group("/referrals", perm(middleware.PermManageCasework))
	referrals.Get("/", h.Casework.ListReferrals)
	referrals.Post("/", h.Casework.CreateReferral)
	referrals.Get("/:id", h.Casework.GetReferral)
	referrals.Patch("/:id", h.Casework.UpdateReferral)
	referrals.Delete("/:id", h.Casework.DeleteReferral)

	plans := v1.Group("/plans", perm(middleware.PermViewPlans))
	plans.Get("/", h.Plan.List)
	plans.Get("/:id", h.Plan.Get)
	plans.Get("/:id/goals", h.Plan.ListGoals)
	plans.Post("/", perm(middleware.PermManagePlans), h.Plan.Create)
	plans.Patch("/:id", perm(middleware.PermManagePlans), h.Plan.Update)
	plans.Delete("/:id", perm(middleware.PermManagePlans), h.Plan.Delete)
	plans.Post("/:id/goals", perm(middleware.PermManagePlans), h.Plan.CreateGoal)

	goals := v1.Group("/goals", perm(middleware.PermManagePlans))
	goals.Patch("/:goalId", h.Plan.UpdateGoal)
	goals.Delete("/:goalId", h.Plan.DeleteGoal)

	events := v1.Group("/events", perm(middleware.PermViewEvents))
	events.Get("/", h.Event.List)
	events.Get("/:id", h.Event.Get)
	events.Post("/", perm(middleware.PermManageEvents), h.Event.Create)
	events.Patch("/:id", perm(middleware.PermManageEvents), h.Event.Update)
	events.Delete("/:id", perm(middleware.PermManageEvents), h.Event.Delete)
	events.Post("/:id/participants", perm(middleware.PermRegisterEvent), h.Event.Register)
	events.Get("/:id/participants", perm(middleware.PermManageEvents), h.Event.ListParticipants)
	events.Patch("/:id/participants/:householdId", perm(middleware.PermManageEvents), h.Event.MarkAttendance)

	services := v1.Group("/services", perm(middleware.PermViewServices))
	services.Get("/", h.Catalog.ListServices)
	services.Post("/", perm(middleware.PermManageServices), h.Catalog.CreateService)
	services.Delete("/:id", perm(middleware.PermManageServices), h.Catalog.DeleteService)

	donations := v1.Group("/donations", perm(middleware.PermDonate))
	donations.Get("/", h.Catalog.ListDonations)
	donations.Post("/", h.Catalog.Donate)

	dashboard := v1.Group("/dashboard")
	dashboard.Get("/admin", perm(middleware.PermAdminDashboard), h.Dashboard.Admin)
	dashboard.Get("/caseworker", perm(middleware.PermCaseworkerStats), h.Dashboard.Caseworker)
	dashboard.Get("/refugee", perm(middleware.PermRefugeeOverview), h.Dashboard.Refugee)

	notifications := v1.Group("/notifications")
	notifications.Get("/", h.Notification.List)
	notifications.Get("/unread-count", h.Notification.GetUnreadCount)
	notifications.Patch("/:id/read", h.Notification.MarkAsRead)
	notifications.Post("/mark-all-read", h.Notification.MarkAllAsRead)

	audit := v1.Group("/audit")
	audit.Get("/recent", perm(middleware.PermViewAuditLogs), h.Audit.GetRecentActivities)
	audit.Get("/:entity/:id", perm(middleware.PermEntityHistory), h.Audit.GetEntityHistory)

	v1.Get("/export/caseload.xlsx", perm(middleware.PermExport), h.Export.Caseload)
}
