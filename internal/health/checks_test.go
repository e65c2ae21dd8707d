package health_test

import (
	"context"
	"testing"

	"github.com/knah1d/shopease/internal/config"
	"github.com/knah1d/shopease/internal/health"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProbe bool

func (s stubProbe) Available() bool { return bool(s) }

func TestGatewayCheck(t *testing.T) {
	t.Run("Success - Breaker Closed", func(t *testing.T) {
		assert.NoError(t, health.GatewayCheck(stubProbe(true))(context.Background()))
	})

	t.Run("Failure - Breaker Open", func(t *testing.T) {
		assert.ErrorIs(t, health.GatewayCheck(stubProbe(false))(context.Background()), health.ErrGatewayUnavailable)
	})

	t.Run("Failure - No Client", func(t *testing.T) {
		assert.Error(t, health.GatewayCheck(nil)(context.Background()))
	})
}

func TestNewHealthHandler(t *testing.T) {
	// Arrange
	cfg := &config.Config{}

	// Act
	h, err := health.NewHealthHandler(cfg, "test", &health.Endpoints{Gateway: stubProbe(true)})

	// Assert
	require.NoError(t, err)
	assert.NotNil(t, h.Handler())
}
