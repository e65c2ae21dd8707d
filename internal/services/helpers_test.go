package service_test

import (
	"errors"
	"testing"

	appErrors "github.com/knah1d/shopease/internal/errors"
	"github.com/knah1d/shopease/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertAppError(t *testing.T, err error, code string) *appErrors.AppError {
	t.Helper()

	var appErr *appErrors.AppError

	require.Error(t, err)
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)

	return appErr
}

func money(t *testing.T, amount, currency string) models.Money {
	t.Helper()

	m, err := models.MoneyFromString(amount, currency)
	require.NoError(t, err)

	return m
}

func newTestProduct(t *testing.T, id string, price string, stock int) *models.Product {
	t.Helper()

	p, err := models.NewProduct(id, "Widget "+id, "A widget", money(t, price, "USD"), stock, "Gadgets", "")
	require.NoError(t, err)

	return p
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
