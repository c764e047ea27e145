package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type EmailService struct {
	mock.Mock
}

func (m *EmailService) SendEmailVerification(ctx context.Context, toEmail, fullName, verificationToken string) error {
	args := m.Called(ctx, toEmail, fullName, verificationToken)
	return args.Error(0)
}

func (m *EmailService) SendPasswordResetEmail(ctx context.Context, toEmail, fullName, resetToken string) error {
	args := m.Called(ctx, toEmail, fullName, resetToken)
	return args.Error(0)
}

func (m *EmailService) SendRequestDecisionEmail(ctx context.Context, toEmail, fullName, requestType, status string, note *string) error {
	args := m.Called(ctx, toEmail, fullName, requestType, status, note)
	return args.Error(0)
}

func (m *EmailService) SendHouseholdAssignedEmail(ctx context.Context, toEmail, fullName, householdID string, address *string) error {
	args := m.Called(ctx, toEmail, fullName, householdID, address)
	return args.Error(0)
}
