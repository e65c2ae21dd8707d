package health

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hellofresh/health-go/v5"
	"github.com/hellofresh/health-go/v5/checks/postgres"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
	"github.com/knah1d/shopease/internal/config"
)

var ErrGatewayUnavailable = errors.New("payment gateway circuit is open")

// GatewayProbe is satisfied by the SSLCommerz client.
type GatewayProbe interface {
	Available() bool
}

type Endpoints struct {
	Gateway GatewayProbe
}

func NewHealthHandler(cfg *config.Config, version string, endpoints *Endpoints) (*health.Health, error) {
	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    "shopease",
			Version: version,
		}),
		health.WithSystemInfo(),
		health.WithChecks(
			health.Config{
				Name:      "database",
				Timeout:   3 * time.Second,
				SkipOnErr: false,
				Check: postgres.New(postgres.Config{
					DSN: cfg.Database.GetDSN(),
				}),
			},
			health.Config{
				Name:      "redis",
				Timeout:   2 * time.Second,
				SkipOnErr: false,
				Check: healthRedis.New(healthRedis.Config{
					DSN: cfg.RedisConnect.GetDSN(),
				}),
			},
			health.Config{
				Name:    "sslcommerz",
				Timeout: time.Second,
				// An open breaker degrades payments only; the rest of the API keeps serving.
				SkipOnErr: true,
				Check:     GatewayCheck(endpoints.Gateway),
			},
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}

func GatewayCheck(probe GatewayProbe) health.CheckFunc {
	return func(context.Context) error {
		if probe == nil {
			return errors.New("payment gateway client is not initialized")
		}

		if !probe.Available() {
			return ErrGatewayUnavailable
		}

		return nil
	}
}
