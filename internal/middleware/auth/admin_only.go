package auth

import (
	"net/http"

	"github.com/Skotchmaster/pos_system/internal/models"
	"github.com/labstack/echo/v4"
)

// RequireAdmin is RequireLogin plus a role gate.
func (t *TokenService) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := t.claimsFromHeader(c)
		if err != nil {
			return err
		}
		if role, _ := claims["role"].(string); role != models.RoleAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "not enough rights")
		}
		setUserContext(c, claims)
		return next(c)
	}
}
