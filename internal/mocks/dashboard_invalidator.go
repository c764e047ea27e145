package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type DashboardInvalidator struct {
	mock.Mock
}

func (m *DashboardInvalidator) Invalidate(ctx context.Context) {
	m.Called(ctx)
}
