package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Skotchmaster/pos_system/internal/middleware/auth"
	"github.com/Skotchmaster/pos_system/internal/mykafka"
	"github.com/Skotchmaster/pos_system/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type ShiftHandler struct {
	Shifts   *service.ShiftService
	Producer *mykafka.Producer
}

func (h *ShiftHandler) GetCurrent(c echo.Context) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}

	shift, err := h.Shifts.Current(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if shift == nil {
		return c.JSON(http.StatusNotFound, Response{Status: "error", Message: "no open shift"})
	}
	return c.JSON(http.StatusOK, shift)
}

func (h *ShiftHandler) Open(c echo.Context) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}

	var req struct {
		OpeningCash decimal.Decimal `json:"opening_cash"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}
	if req.OpeningCash.IsNegative() {
		return c.JSON(http.StatusBadRequest, Response{Status: "error", Message: "opening cash must be >= 0"})
	}

	shift, err := h.Shifts.Open(c.Request().Context(), userID, req.OpeningCash)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	publishEvent(c, h.Producer, "shift_events", fmt.Sprint(userID), map[string]any{
		"type":    "shift_opened",
		"userID":  userID,
		"shiftID": shift.ID,
	})

	return c.JSON(http.StatusOK, shift)
}

func (h *ShiftHandler) Close(c echo.Context) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}

	var req struct {
		ClosingCash decimal.Decimal `json:"closing_cash"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	shift, err := h.Shifts.Close(c.Request().Context(), userID, req.ClosingCash)
	if err != nil {
		if errors.Is(err, service.ErrNoOpenShift) {
			return c.JSON(http.StatusNotFound, Response{Status: "error", Message: "no open shift found"})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	publishEvent(c, h.Producer, "shift_events", fmt.Sprint(userID), map[string]any{
		"type":    "shift_closed",
		"userID":  userID,
		"shiftID": shift.ID,
	})

	return c.JSON(http.StatusOK, shift)
}
