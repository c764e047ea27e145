package request

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"refugee-portal/internal/domain"
	"refugee-portal/internal/mocks"
	"refugee-portal/internal/pkg/validate"
)

type fixture struct {
	requests *mocks.RequestRepository
	profiles *mocks.ProfileRepository
	audit    *mocks.AuditLogRepository
	notif    *mocks.NotificationService
	cache    *mocks.DashboardInvalidator
	svc      Service
}

func newFixture() *fixture {
	f := &fixture{
		requests: new(mocks.RequestRepository),
		profiles: new(mocks.ProfileRepository),
		audit:    new(mocks.AuditLogRepository),
		notif:    new(mocks.NotificationService),
		cache:    new(mocks.DashboardInvalidator),
	}
	f.audit.On("Create", mock.Anything, mock.Anything).Return(nil).Maybe()
	f.cache.On("Invalidate", mock.Anything).Maybe()
	f.profiles.On("GetByID", mock.Anything, mock.Anything).Return(nil, nil).Maybe()
	f.svc = NewService(f.requests, f.profiles, f.audit, f.notif, f.cache, zap.NewNop())
	return f
}

var (
	refugee  = domain.Actor{ProfileID: uuid.New(), Role: domain.RoleRefugee}
	reviewer = domain.Actor{ProfileID: uuid.New(), Role: domain.RoleCaseworker}
)

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes and starts pending", func(t *testing.T) {
		f := newFixture()
		f.requests.On("Create", ctx, mock.MatchedBy(func(r *domain.Request) bool {
			return r.Type == "food" && r.Urgency == "high" &&
				r.Status == domain.RequestPending && r.UserID == refugee.ProfileID
		})).Return(nil).Once()

		req, err := f.svc.Create(ctx, refugee, domain.CreateRequestInput{Type: "Food", Urgency: "HIGH", Description: "Need groceries"})
		require.NoError(t, err)
		assert.Equal(t, domain.RequestPending, req.Status)
		f.requests.AssertExpectations(t)
		f.cache.AssertCalled(t, "Invalidate", ctx)
	})

	t.Run("unknown type is rejected", func(t *testing.T) {
		f := newFixture()

		_, err := f.svc.Create(ctx, refugee, domain.CreateRequestInput{Type: "spaceship", Urgency: "low", Description: "Please"})
		var verr *validate.Error
		require.True(t, errors.As(err, &verr))
		assert.Contains(t, verr.Fields, "type")
		f.requests.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestList(t *testing.T) {
	ctx := context.Background()

	t.Run("refugee sees only own requests", func(t *testing.T) {
		f := newFixture()
		someoneElse := uuid.New()
		f.requests.On("List", ctx, mock.MatchedBy(func(filter domain.RequestFilter) bool {
			return filter.UserID != nil && *filter.UserID == refugee.ProfileID
		}), mock.Anything).Return([]domain.Request{}, int64(0), nil).Once()

		_, err := f.svc.List(ctx, refugee, domain.RequestFilter{UserID: &someoneElse}, domain.DefaultPagination())
		require.NoError(t, err)
		f.requests.AssertExpectations(t)
	})

	t.Run("staff filters pass through", func(t *testing.T) {
		f := newFixture()
		status := domain.RequestPending
		f.requests.On("List", ctx, domain.RequestFilter{Status: &status}, mock.Anything).
			Return([]domain.Request{{ID: uuid.New(), UserID: refugee.ProfileID}}, int64(1), nil).Once()

		page, err := f.svc.List(ctx, reviewer, domain.RequestFilter{Status: &status}, domain.DefaultPagination())
		require.NoError(t, err)
		assert.Equal(t, int64(1), page.TotalItems)
	})
}

func TestGetByIDHidesOtherUsersRequests(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	id := uuid.New()
	f.requests.On("GetByID", ctx, id).Return(&domain.Request{ID: id, UserID: uuid.New()}, nil).Once()

	_, err := f.svc.GetByID(ctx, refugee, id)
	assert.ErrorIs(t, err, domain.ErrRequestNotFound)
}

func TestReview(t *testing.T) {
	ctx := context.Background()
	pendingRequest := func() *domain.Request {
		return &domain.Request{ID: uuid.New(), UserID: refugee.ProfileID, Type: "food", Status: domain.RequestPending}
	}

	t.Run("pending request is approved and requester notified", func(t *testing.T) {
		f := newFixture()
		req := pendingRequest()
		note := "Voucher issued"
		notified := make(chan *domain.Request, 1)

		f.requests.On("GetByID", ctx, req.ID).Return(req, nil).Once()
		f.requests.On("Review", ctx, mock.MatchedBy(func(r *domain.Request) bool {
			return r.Status == domain.RequestApproved && *r.ReviewedBy == reviewer.ProfileID
		})).Return(true, nil).Once()
		f.notif.On("NotifyRequestDecision", mock.Anything, mock.Anything).Return(nil).Once().Run(func(args mock.Arguments) {
			notified <- args.Get(1).(*domain.Request)
		})

		reviewed, err := f.svc.Review(ctx, reviewer, req.ID, domain.ReviewRequestInput{Status: "Approved", Note: &note})
		require.NoError(t, err)
		assert.Equal(t, domain.RequestApproved, reviewed.Status)

		select {
		case got := <-notified:
			assert.Equal(t, domain.RequestApproved, got.Status)
			assert.Equal(t, &note, got.ReviewNote)
		case <-time.After(time.Second):
			t.Fatal("requester was not notified")
		}
		f.audit.AssertCalled(t, "Create", ctx, mock.MatchedBy(func(l *domain.AuditLog) bool {
			return l.Action == domain.AuditReview && l.EntityID == req.ID
		}))
	})

	t.Run("decided request cannot be reviewed again", func(t *testing.T) {
		for _, status := range []domain.RequestStatus{domain.RequestApproved, domain.RequestRejected} {
			f := newFixture()
			req := pendingRequest()
			req.Status = status
			f.requests.On("GetByID", ctx, req.ID).Return(req, nil).Once()

			_, err := f.svc.Review(ctx, reviewer, req.ID, domain.ReviewRequestInput{Status: domain.RequestApproved})
			assert.ErrorIs(t, err, domain.ErrInvalidTransition)
			f.requests.AssertNotCalled(t, "Review", mock.Anything, mock.Anything)
		}
	})

	t.Run("lost race is reported as invalid transition", func(t *testing.T) {
		f := newFixture()
		req := pendingRequest()
		f.requests.On("GetByID", ctx, req.ID).Return(req, nil).Once()
		f.requests.On("Review", ctx, mock.Anything).Return(false, nil).Once()

		_, err := f.svc.Review(ctx, reviewer, req.ID, domain.ReviewRequestInput{Status: domain.RequestRejected})
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
		f.notif.AssertNotCalled(t, "NotifyRequestDecision", mock.Anything, mock.Anything)
	})

	t.Run("reviewer cannot decide own request", func(t *testing.T) {
		f := newFixture()
		req := pendingRequest()
		req.UserID = reviewer.ProfileID
		f.requests.On("GetByID", ctx, req.ID).Return(req, nil).Once()

		_, err := f.svc.Review(ctx, reviewer, req.ID, domain.ReviewRequestInput{Status: domain.RequestApproved})
		assert.ErrorIs(t, err, domain.ErrSelfReview)
	})

	t.Run("pending is not a decision", func(t *testing.T) {
		f := newFixture()

		_, err := f.svc.Review(ctx, reviewer, uuid.New(), domain.ReviewRequestInput{Status: domain.RequestPending})
		var verr *validate.Error
		assert.True(t, errors.As(err, &verr))
	})

	t.Run("refugee cannot review", func(t *testing.T) {
		f := newFixture()

		_, err := f.svc.Review(ctx, refugee, uuid.New(), domain.ReviewRequestInput{Status: domain.RequestApproved})
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}
