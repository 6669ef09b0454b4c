package handlers

import (
	"net/http"

	"github.com/Skotchmaster/pos_system/internal/repo"
	"github.com/labstack/echo/v4"
)

type DashboardHandler struct {
	Repo *repo.GormRepo
}

func (h *DashboardHandler) GetStats(c echo.Context) error {
	stats, err := h.Repo.GetDashboardStats(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, stats)
}
