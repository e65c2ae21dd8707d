package handlers

import (
	"net/http"

	"github.com/knah1d/shopease/internal/api/middleware"
	"github.com/knah1d/shopease/internal/errors"
	"github.com/knah1d/shopease/internal/models"
	"github.com/knah1d/shopease/internal/utils/response"
)

func currentClaims(w http.ResponseWriter, r *http.Request) (*models.Claims, bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		response.Error(w, r, errors.UnauthorizedError("Authentication required"))

		return nil, false
	}

	return claims, true
}

// canActFor reports whether the caller may act on resources owned by ownerID.
func canActFor(claims *models.Claims, ownerID string) bool {
	return claims.UserID == ownerID || claims.Role == models.RoleAdmin
}
