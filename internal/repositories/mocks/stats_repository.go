package mocks

import (
	"context"

	"github.com/knah1d/shopease/internal/models"
	"github.com/stretchr/testify/mock"
)

type StatsRepository struct {
	mock.Mock
}

func (m *StatsRepository) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	ret := m.Called(ctx)

	stats, _ := ret.Get(0).(*models.DashboardStats)

	return stats, ret.Error(1)
}
