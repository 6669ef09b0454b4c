package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Skotchmaster/pos_system/internal/logging"
	"github.com/Skotchmaster/pos_system/internal/models"
	"github.com/Skotchmaster/pos_system/internal/repo"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CreateOrderItemRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

type CreateOrderRequest struct {
	CustomerID     *uint                    `json:"customer_id"`
	Items          []CreateOrderItemRequest `json:"items"`
	Discount       decimal.Decimal          `json:"discount"` // percent
	PaymentMethod  string                   `json:"payment_method"`
	PaidAmount     decimal.Decimal          `json:"paid_amount"`
	TransactionRef *string                  `json:"transaction_ref"`
}

type CreateOrderResponse struct {
	OrderNumber string          `json:"order_number"`
	Total       decimal.Decimal `json:"total"`
	Change      decimal.Decimal `json:"change"`
}

// pendingItem is a priced cart line held between validation and commit.
// NewStockLevel is what the stock counter should read after the decrement;
// the commit re-checks it with a guarded update.
type pendingItem struct {
	ProductID     uint
	UnitPrice     decimal.Decimal
	Quantity      int
	LineTotal     decimal.Decimal
	NewStockLevel int
}

type OrderService struct {
	DB     *gorm.DB
	Repo   *repo.GormRepo
	Shifts *ShiftService
}

// CreateOrder runs one checkout: shift gate, pricing against current product
// rows, totals, then a single transaction that writes the order header, its
// items, the payment and the stock decrements. Either all of that commits or
// none of it is visible.
func (svc *OrderService) CreateOrder(ctx context.Context, req CreateOrderRequest, userID uint) (*CreateOrderResponse, error) {
	l := logging.FromContext(ctx).With("svc", "order.create", "user_id", userID)

	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: items required", ErrValidation)
	}
	if req.PaymentMethod == "" {
		req.PaymentMethod = "Cash"
	}

	shift, err := svc.Shifts.Current(ctx, userID)
	if err != nil {
		return nil, err
	}
	if shift == nil {
		return nil, ErrNoOpenShift
	}

	pending, err := svc.priceAndValidate(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	lineTotals := make([]decimal.Decimal, len(pending))
	for i, it := range pending {
		lineTotals[i] = it.LineTotal
	}
	totals, err := CalculateTotals(lineTotals, req.Discount, req.PaidAmount)
	if err != nil {
		return nil, err
	}

	// Two attempts: the random suffix makes an order-number collision almost
	// impossible, but the unique index is authoritative, so one retry before
	// failing loudly.
	var orderNumber string
	for attempt := 0; ; attempt++ {
		orderNumber = newOrderNumber()
		err = svc.commit(ctx, shift, req, pending, totals, orderNumber, userID)
		if err == nil {
			break
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) && attempt == 0 {
			continue
		}
		return nil, err
	}

	l.Info("order_created",
		"order_number", orderNumber,
		"shift_id", shift.ID,
		"total", totals.Total.String(),
		"items", len(pending))

	return &CreateOrderResponse{
		OrderNumber: orderNumber,
		Total:       totals.Total,
		Change:      totals.Change,
	}, nil
}

// priceAndValidate resolves every cart line against the product's current
// price and stock. It only reads; a line that cannot be filled fails the
// whole cart before anything is written.
func (svc *OrderService) priceAndValidate(ctx context.Context, items []CreateOrderItemRequest) ([]pendingItem, error) {
	pending := make([]pendingItem, 0, len(items))
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be > 0", ErrValidation)
		}

		product, err := svc.Repo.GetActiveProduct(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, &OutOfStockError{ProductID: item.ProductID}
		}
		if product.StockQuantity < item.Quantity {
			return nil, &OutOfStockError{ProductID: product.ID, Name: product.Name}
		}

		qty := decimal.NewFromInt(int64(item.Quantity))
		pending = append(pending, pendingItem{
			ProductID:     product.ID,
			UnitPrice:     product.Price,
			Quantity:      item.Quantity,
			LineTotal:     product.Price.Mul(qty),
			NewStockLevel: product.StockQuantity - item.Quantity,
		})
	}
	return pending, nil
}

// commit is the all-or-nothing phase. Any error, including a stock guard
// losing to a concurrent checkout, rolls the whole transaction back.
func (svc *OrderService) commit(ctx context.Context, shift *models.Shift, req CreateOrderRequest, pending []pendingItem, totals Totals, orderNumber string, userID uint) error {
	return svc.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order := models.Order{
			OrderNumber:    orderNumber,
			ShiftID:        shift.ID,
			UserID:         userID,
			CustomerID:     req.CustomerID,
			Subtotal:       totals.Subtotal,
			Tax:            totals.Tax,
			Discount:       totals.Discount,
			Total:          totals.Total,
			PaidAmount:     req.PaidAmount,
			PaymentMethod:  req.PaymentMethod,
			TransactionRef: req.TransactionRef,
			Status:         models.OrderStatusCompleted,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for _, it := range pending {
			item := models.OrderItem{
				OrderID:   order.ID,
				ProductID: it.ProductID,
				UnitPrice: it.UnitPrice,
				Quantity:  it.Quantity,
				LineTotal: it.LineTotal,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}

			ok, err := svc.Repo.DecrementStock(tx, it.ProductID, it.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				// A concurrent order took the stock between validation and
				// here; abort the entire checkout.
				return &OutOfStockError{ProductID: it.ProductID}
			}
		}

		payment := models.Payment{
			OrderID:        order.ID,
			Method:         req.PaymentMethod,
			Amount:         req.PaidAmount,
			TransactionRef: req.TransactionRef,
		}
		return tx.Create(&payment).Error
	})
}

// newOrderNumber keeps the human-readable timestamp form and appends a short
// random suffix so two checkouts in the same second stay distinct.
func newOrderNumber() string {
	suffix := strings.ToUpper(uuid.NewString()[:4])
	return fmt.Sprintf("ORD-%s-%s", time.Now().Format("20060102150405"), suffix)
}
