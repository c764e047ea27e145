package dashboard

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"refugee-portal/internal/domain"
	"refugee-portal/internal/repository"
)

const (
	keyPrefix         = "dashboard:"
	adminKey          = keyPrefix + "admin"
	recentRequests    = 5
	overdueLimit      = 5
	overviewListLimit = 5
)

// Invalidator drops cached dashboard figures after writes that change them.
type Invalidator interface {
	Invalidate(ctx context.Context)
}

type Service interface {
	Invalidator
	GetAdminStats(ctx context.Context) (*domain.AdminStats, error)
	GetCaseworkerStats(ctx context.Context, actor domain.Actor) (*domain.CaseworkerStats, error)
	GetRefugeeOverview(ctx context.Context, actor domain.Actor) (*domain.RefugeeOverview, error)
}

type service struct {
	repos *repository.Repositories
	redis *redis.Client
	ttl   time.Duration
	log   *zap.Logger
}

func NewService(repos *repository.Repositories, redis *redis.Client, ttl time.Duration, log *zap.Logger) Service {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &service{
		repos: repos,
		redis: redis,
		ttl:   ttl,
		log:   log,
	}
}

// collector runs metric queries concurrently. A failing metric is logged and
// recorded by name while the others still complete.
type collector struct {
	wg   sync.WaitGroup
	mu   sync.Mutex
	errs map[string]string
	log  *zap.Logger
}

func newCollector(log *zap.Logger) *collector {
	return &collector{errs: make(map[string]string), log: log}
}

func (c *collector) run(ctx context.Context, metric string, fn func(ctx context.Context) error) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		if err := fn(ctx); err != nil {
			c.log.Warn("dashboard metric failed", zap.String("metric", metric), zap.Error(err))
			c.mu.Lock()
			c.errs[metric] = err.Error()
			c.mu.Unlock()
		}
	}()
}

func (c *collector) wait() map[string]string {
	c.wg.Wait()
	if len(c.errs) == 0 {
		return nil
	}
	return c.errs
}

func (s *service) GetAdminStats(ctx context.Context) (*domain.AdminStats, error) {
	var stats domain.AdminStats
	if s.fromCache(ctx, adminKey, &stats) {
		return &stats, nil
	}

	pending := domain.RequestPending
	c := newCollector(s.log)
	c.run(ctx, "refugee_count", func(ctx context.Context) (err error) {
		stats.RefugeeCount, err = s.repos.Profile.CountByRole(ctx, domain.RoleRefugee)
		return
	})
	c.run(ctx, "request_count", func(ctx context.Context) (err error) {
		stats.RequestCount, err = s.repos.Request.Count(ctx, nil)
		return
	})
	c.run(ctx, "pending_request_count", func(ctx context.Context) (err error) {
		stats.PendingRequestCount, err = s.repos.Request.Count(ctx, &pending)
		return
	})
	c.run(ctx, "donation_total", func(ctx context.Context) (err error) {
		stats.DonationTotal, err = s.repos.Catalog.SumDonations(ctx)
		return
	})
	c.run(ctx, "recent_requests", func(ctx context.Context) (err error) {
		stats.RecentRequests, err = s.repos.Request.ListRecent(ctx, recentRequests)
		return
	})
	stats.Errors = c.wait()

	if stats.RecentRequests == nil {
		stats.RecentRequests = []domain.Request{}
	}
	if stats.Errors == nil {
		s.toCache(ctx, adminKey, &stats)
	}
	return &stats, nil
}

func (s *service) GetCaseworkerStats(ctx context.Context, actor domain.Actor) (*domain.CaseworkerStats, error) {
	if !actor.IsStaff() {
		return nil, domain.ErrForbidden
	}

	// Caseworkers see their own caseload; admins and NGO staff see everything.
	var caseworkerID *uuid.UUID
	key := keyPrefix + "caseworker:all"
	if actor.Role == domain.RoleCaseworker {
		id := actor.ProfileID
		caseworkerID = &id
		key = keyPrefix + "caseworker:" + id.String()
	}

	var stats domain.CaseworkerStats
	if s.fromCache(ctx, key, &stats) {
		return &stats, nil
	}

	today := domain.Today()
	c := newCollector(s.log)
	c.run(ctx, "total_cases", func(ctx context.Context) (err error) {
		stats.TotalCases, err = s.repos.Household.Count(ctx, caseworkerID)
		return
	})
	c.run(ctx, "pending_assessments", func(ctx context.Context) (err error) {
		stats.PendingAssessments, err = s.repos.Assessment.CountPending(ctx, caseworkerID)
		return
	})
	c.run(ctx, "active_referrals", func(ctx context.Context) (err error) {
		stats.ActiveReferrals, err = s.repos.Referral.CountActive(ctx, caseworkerID)
		return
	})
	c.run(ctx, "active_plans", func(ctx context.Context) (err error) {
		stats.ActivePlans, err = s.repos.Plan.CountActive(ctx, caseworkerID)
		return
	})
	c.run(ctx, "upcoming_events", func(ctx context.Context) (err error) {
		stats.UpcomingEvents, err = s.repos.Event.CountUpcoming(ctx, today)
		return
	})
	c.run(ctx, "overdue_assessments", func(ctx context.Context) (err error) {
		stats.OverdueAssessments, err = s.repos.Assessment.ListOverdue(ctx, caseworkerID, today, overdueLimit)
		return
	})
	stats.Errors = c.wait()

	if stats.OverdueAssessments == nil {
		stats.OverdueAssessments = []domain.Assessment{}
	}
	if stats.Errors == nil {
		s.toCache(ctx, key, &stats)
	}
	return &stats, nil
}

func (s *service) GetRefugeeOverview(ctx context.Context, actor domain.Actor) (*domain.RefugeeOverview, error) {
	overview := &domain.RefugeeOverview{HouseholdID: actor.HouseholdID}
	today := domain.Today()
	pending := domain.RequestPending
	active := domain.EventActive
	page := domain.PaginationParams{Page: 1, PageSize: overviewListLimit}

	c := newCollector(s.log)
	if actor.HouseholdID != nil {
		householdID := *actor.HouseholdID
		c.run(ctx, "caseworker", func(ctx context.Context) error {
			household, err := s.repos.Household.GetByID(ctx, householdID)
			if err != nil || household == nil || household.CaseworkerID == nil {
				return err
			}
			caseworker, err := s.repos.Profile.GetByID(ctx, *household.CaseworkerID)
			if err != nil || caseworker == nil {
				return err
			}
			overview.Caseworker = caseworker.Summary()
			return nil
		})
		c.run(ctx, "goals", func(ctx context.Context) (err error) {
			overview.GoalsCompleted, overview.GoalsTotal, err = s.repos.Plan.GoalCounts(ctx, householdID)
			return
		})
	}
	c.run(ctx, "pending_requests", func(ctx context.Context) (err error) {
		overview.PendingRequests, _, err = s.repos.Request.List(ctx, domain.RequestFilter{UserID: &actor.ProfileID, Status: &pending}, page)
		return
	})
	c.run(ctx, "upcoming_events", func(ctx context.Context) (err error) {
		overview.UpcomingEvents, _, err = s.repos.Event.List(ctx, domain.EventFilter{From: &today, PublishedOnly: true, Status: &active}, page)
		return
	})
	overview.Errors = c.wait()

	overview.Progress = domain.ProgressOf(overview.GoalsCompleted, overview.GoalsTotal)
	if overview.PendingRequests == nil {
		overview.PendingRequests = []domain.Request{}
	}
	if overview.UpcomingEvents == nil {
		overview.UpcomingEvents = []domain.CommunityEvent{}
	}
	return overview, nil
}

func (s *service) Invalidate(ctx context.Context) {
	if s.redis == nil {
		return
	}

	iter := s.redis.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		s.log.Warn("failed to scan dashboard cache", zap.Error(err))
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := s.redis.Del(ctx, keys...).Err(); err != nil {
		s.log.Warn("failed to invalidate dashboard cache", zap.Error(err))
	}
}

func (s *service) fromCache(ctx context.Context, key string, dst interface{}) bool {
	if s.redis == nil {
		return false
	}
	cached, err := s.redis.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(cached), dst) == nil
}

func (s *service) toCache(ctx context.Context, key string, v interface{}) {
	if s.redis == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, key, data, s.ttl).Err(); err != nil {
		s.log.Warn("failed to cache dashboard stats", zap.String("key", key), zap.Error(err))
	}
}
