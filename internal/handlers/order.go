package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Skotchmaster/pos_system/internal/middleware/auth"
	"github.com/Skotchmaster/pos_system/internal/mykafka"
	"github.com/Skotchmaster/pos_system/internal/repo"
	"github.com/Skotchmaster/pos_system/internal/service"
	"github.com/Skotchmaster/pos_system/internal/util"
	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	Orders   *service.OrderService
	Repo     *repo.GormRepo
	Producer *mykafka.Producer
}

type orderFailure struct {
	Status    string `json:"status"`
	Code      string `json:"code"`
	Message   string `json:"message"`
	ProductID uint   `json:"product_id,omitempty"`
}

// Create maps the coordinator's precondition failures to distinct responses;
// only genuine persistence errors become a 500.
func (h *OrderHandler) Create(c echo.Context) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}

	var req service.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	resp, err := h.Orders.CreateOrder(c.Request().Context(), req, userID)
	if err != nil {
		var oos *service.OutOfStockError
		switch {
		case errors.Is(err, service.ErrNoOpenShift):
			return c.JSON(http.StatusConflict, orderFailure{
				Status:  "error",
				Code:    "no_open_shift",
				Message: "you do not have an open shift, open a shift first",
			})
		case errors.As(err, &oos):
			return c.JSON(http.StatusConflict, orderFailure{
				Status:    "error",
				Code:      "out_of_stock",
				Message:   oos.Error(),
				ProductID: oos.ProductID,
			})
		case errors.Is(err, service.ErrInsufficientPayment):
			return c.JSON(http.StatusUnprocessableEntity, orderFailure{
				Status:  "error",
				Code:    "insufficient_payment",
				Message: "paid amount does not cover the total",
			})
		case errors.Is(err, service.ErrValidation):
			return errorResponse(c, http.StatusBadRequest, err)
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to create order")
		}
	}

	publishEvent(c, h.Producer, "order_events", fmt.Sprint(userID), map[string]any{
		"type":        "order_created",
		"userID":      userID,
		"orderNumber": resp.OrderNumber,
		"total":       resp.Total.String(),
	})

	return c.JSON(http.StatusOK, resp)
}

func (h *OrderHandler) GetAll(c echo.Context) error {
	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	orders, total, err := h.Repo.ListOrders(c.Request().Context(), limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": orders,
		"meta": map[string]any{
			"page":  page,
			"size":  limit,
			"total": total,
		},
	})
}

func (h *OrderHandler) GetByID(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, Response{Status: "error", Message: "invalid id"})
	}

	detail, err := h.Repo.GetOrderDetail(c.Request().Context(), uint(id))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if detail == nil {
		return c.JSON(http.StatusNotFound, Response{Status: "error", Message: "order not found"})
	}
	return c.JSON(http.StatusOK, detail)
}
