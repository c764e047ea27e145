package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"refugee-portal/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestCheckConnection(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		}))
		defer srv.Close()

		c := New(srv.URL, "key", zap.NewNop())
		assert.NoError(t, c.CheckConnection(context.Background()))
	})

	t.Run("unavailable database", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		}))
		defer srv.Close()

		c := New(srv.URL, "key", zap.NewNop())
		assert.True(t, IsStatus(c.CheckConnection(context.Background()), http.StatusServiceUnavailable))
	})

	t.Run("gives up when the caller deadline passes", func(t *testing.T) {
		release := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		defer srv.Close()
		defer close(release)

		c := New(srv.URL, "key", zap.NewNop())
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		start := time.Now()
		err := c.CheckConnection(ctx)
		assert.ErrorIs(t, err, ErrUnreachable)
		assert.Less(t, time.Since(start), ConnectionTimeout)
	})
}

func TestHeadersAndErrorDecoding(t *testing.T) {
	var gotKey, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get(APIKeyHeader)
		gotAuth = r.Header.Get("Authorization")
		writeJSON(w, http.StatusConflict, map[string]string{
			"code":    "CONFLICT",
			"message": "event has reached its participant limit",
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "public-key", zap.NewNop(), WithTokenProvider(func() string { return "access-1" }))
	_, err := c.RegisterForEvent(context.Background(), uuid.New(), domain.RegisterParticipantInput{HouseholdID: uuid.New()})

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "CONFLICT", apiErr.Code)
	assert.Equal(t, "event has reached its participant limit", err.Error())
	assert.Equal(t, "public-key", gotKey)
	assert.Equal(t, "Bearer access-1", gotAuth)
}

func TestListUnwrapsPages(t *testing.T) {
	hh := domain.Household{ID: uuid.New(), Status: domain.HouseholdActive}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/households", r.URL.Path)
		assert.Equal(t, "active", r.URL.Query().Get("status"))
		writeJSON(w, http.StatusOK, domain.NewPaginatedResponse([]domain.Household{hh}, 1, 20, 1))
	}))
	defer srv.Close()

	c := New(srv.URL, "key", zap.NewNop())
	got, err := c.ListHouseholds(context.Background(), Query{"status": "active"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, hh.ID, got[0].ID)
}

func TestListFollowsNextPage(t *testing.T) {
	var requested []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		requested = append(requested, q.Get("page"))
		assert.Equal(t, "100", q.Get("page_size"))
		assert.Equal(t, "pending", q.Get("status"))

		n, _ := strconv.Atoi(q.Get("page"))
		size := 100
		if n == 3 {
			size = 7
		}
		data := make([]domain.Request, size)
		for i := range data {
			data[i] = domain.Request{ID: uuid.New()}
		}
		writeJSON(w, http.StatusOK, domain.NewPaginatedResponse(data, n, 100, 207))
	}))
	defer srv.Close()

	c := New(srv.URL, "key", zap.NewNop())
	got, err := c.ListRequests(context.Background(), Query{"status": "pending"})
	require.NoError(t, err)
	assert.Len(t, got, 207)
	assert.Equal(t, []string{"1", "2", "3"}, requested)
}

func TestListExplicitPageFetchesOnlyThatPage(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "5", r.URL.Query().Get("page_size"))
		writeJSON(w, http.StatusOK, domain.NewPaginatedResponse(make([]domain.Profile, 5), 2, 5, 40))
	}))
	defer srv.Close()

	c := New(srv.URL, "key", zap.NewNop())
	got, err := c.ListProfiles(context.Background(), Query{"page": "2", "page_size": "5"})
	require.NoError(t, err)
	assert.Len(t, got, 5)
	assert.Equal(t, 1, calls)
}

func TestGetByIDRoutes(t *testing.T) {
	id := uuid.New()
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		writeJSON(w, http.StatusOK, map[string]string{"id": id.String()})
	}))
	defer srv.Close()

	c := New(srv.URL, "key", zap.NewNop())
	ctx := context.Background()

	a, err := c.GetAssessment(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, a.ID)
	_, err = c.GetReferral(ctx, id)
	require.NoError(t, err)
	_, err = c.GetEvent(ctx, id)
	require.NoError(t, err)
	r, err := c.GetRequest(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, r.ID)

	assert.Equal(t, []string{
		"/api/v1/assessments/" + id.String(),
		"/api/v1/referrals/" + id.String(),
		"/api/v1/events/" + id.String(),
		"/api/v1/requests/" + id.String(),
	}, paths)
}

func TestSignUpSendsServiceKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/signup", r.URL.Path)
		assert.Equal(t, "service-secret", r.Header.Get(ServiceKeyHeader))

		var in domain.SignUpInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		writeJSON(w, http.StatusCreated, domain.AuthResult{Profile: &domain.Profile{ID: uuid.New(), FullName: in.FullName, Role: in.Role}})
	}))
	defer srv.Close()

	c := New(srv.URL, "key", zap.NewNop())
	res, err := c.SignUp(context.Background(), domain.SignUpInput{
		Email:    "ops@example.org",
		Password: "correct-horse",
		FullName: "Ops Admin",
		Role:     domain.RoleAdmin,
	}, "service-secret")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, res.Profile.Role)
	assert.Nil(t, res.Tokens)
}
