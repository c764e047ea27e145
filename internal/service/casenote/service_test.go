package casenote

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"refugee-portal/internal/domain"
	"refugee-portal/internal/mocks"
)

func TestList(t *testing.T) {
	ctx := context.Background()
	householdID := uuid.New()

	tests := []struct {
		name      string
		role      domain.Role
		sensitive bool
		wantErr   error
	}{
		{name: "caseworker sees sensitive notes", role: domain.RoleCaseworker, sensitive: true},
		{name: "admin sees sensitive notes", role: domain.RoleAdmin, sensitive: true},
		{name: "ngo staff sees only general notes", role: domain.RoleNGO, sensitive: false},
		{name: "refugee cannot list", role: domain.RoleRefugee, wantErr: domain.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notes := new(mocks.CaseNoteRepository)
			svc := NewService(notes, new(mocks.HouseholdRepository), new(mocks.AuditLogRepository), zap.NewNop())

			if tt.wantErr == nil {
				notes.On("ListByHousehold", ctx, householdID, tt.sensitive, mock.Anything).Return([]domain.CaseNote{}, int64(0), nil).Once()
			}

			_, err := svc.List(ctx, domain.Actor{ProfileID: uuid.New(), Role: tt.role}, householdID, domain.DefaultPagination())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			notes.AssertExpectations(t)
		})
	}
}

func TestCreateKeepsSensitiveContentOutOfAudit(t *testing.T) {
	ctx := context.Background()
	notes := new(mocks.CaseNoteRepository)
	households := new(mocks.HouseholdRepository)
	audit := new(mocks.AuditLogRepository)
	svc := NewService(notes, households, audit, zap.NewNop())

	householdID := uuid.New()
	actor := domain.Actor{ProfileID: uuid.New(), Role: domain.RoleCaseworker}

	households.On("GetByID", ctx, householdID).Return(&domain.Household{ID: householdID}, nil).Once()
	notes.On("Create", ctx, mock.MatchedBy(func(n *domain.CaseNote) bool {
		return n.Category == "general" && n.AuthorID == actor.ProfileID && n.Content == "Disclosed history"
	})).Return(nil).Once()
	audit.On("Create", ctx, mock.MatchedBy(func(l *domain.AuditLog) bool {
		return len(l.NewValue) > 0 && !strings.Contains(string(l.NewValue), "Disclosed history")
	})).Return(nil).Once()

	note, err := svc.Create(ctx, actor, householdID, domain.CreateCaseNoteInput{IsSensitive: true, Content: "Disclosed history"})
	require.NoError(t, err)
	assert.Equal(t, "Disclosed history", note.Content)
	audit.AssertExpectations(t)
}
