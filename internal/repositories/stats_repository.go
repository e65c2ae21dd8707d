package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/knah1d/shopease/internal/models"
	"github.com/knah1d/shopease/internal/utils"
)

type StatsRepository interface {
	DashboardStats(ctx context.Context) (*models.DashboardStats, error)
}

type statsRepository struct {
	DB *sql.DB
}

func NewStatsRepo(db *sql.DB) StatsRepository {
	return &statsRepository{DB: db}
}

func (r *statsRepository) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM users WHERE active),
			(SELECT COUNT(*) FROM users WHERE role IN ('CUSTOMER', 'BOTH')),
			(SELECT COUNT(*) FROM users WHERE role IN ('SELLER', 'BOTH')),
			(SELECT COUNT(*) FROM users WHERE role = 'ADMIN'),
			(SELECT COUNT(*) FROM products),
			(SELECT COUNT(*) FROM orders),
			(SELECT COUNT(*) FROM categories)`

	stats := &models.DashboardStats{}

	err := r.DB.QueryRowContext(dbCtx, query).Scan(&stats.TotalUsers, &stats.ActiveUsers, &stats.TotalCustomers,
		&stats.TotalSellers, &stats.TotalAdmins, &stats.TotalProducts, &stats.TotalOrders, &stats.TotalCategories)
	if err != nil {
		return nil, fmt.Errorf("failed to load dashboard stats: %w", err)
	}

	return stats, nil
}
