package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type RateLimitRepository struct {
	mock.Mock
}

func (m *RateLimitRepository) CheckLoginRateLimit(ctx context.Context, identifier string) (bool, int, int, error) {
	ret := m.Called(ctx, identifier)

	return ret.Bool(0), ret.Int(1), ret.Int(2), ret.Error(3)
}
