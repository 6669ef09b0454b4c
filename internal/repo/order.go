package repo

import (
	"context"
	"errors"
	"time"

	"github.com/Skotchmaster/pos_system/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderDetail struct {
	Order  models.Order       `json:"order"`
	Items  []models.OrderItem `json:"items"`
	Change decimal.Decimal    `json:"change"`
}

func (r *GormRepo) ListOrders(ctx context.Context, limit, offset int) ([]models.Order, int64, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Order{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	err := r.DB.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *GormRepo) GetOrderDetail(ctx context.Context, id uint) (*OrderDetail, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var items []models.OrderItem
	if err := r.DB.WithContext(ctx).Where("order_id = ?", id).Find(&items).Error; err != nil {
		return nil, err
	}

	return &OrderDetail{
		Order:  order,
		Items:  items,
		Change: order.PaidAmount.Sub(order.Total),
	}, nil
}

type DashboardStats struct {
	TodaySales       decimal.Decimal  `json:"today_sales"`
	TodayOrders      int64            `json:"today_orders"`
	LowStockProducts []models.Product `json:"low_stock_products"`
}

func (r *GormRepo) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var count int64
	if err := r.DB.WithContext(ctx).
		Model(&models.Order{}).
		Where("created_at >= ?", startOfDay).
		Count(&count).Error; err != nil {
		return nil, err
	}

	var totals []decimal.Decimal
	if err := r.DB.WithContext(ctx).
		Model(&models.Order{}).
		Where("created_at >= ?", startOfDay).
		Pluck("total", &totals).Error; err != nil {
		return nil, err
	}
	sales := decimal.Zero
	for _, t := range totals {
		sales = sales.Add(t)
	}

	lowStock, err := r.LowStockProducts(ctx)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		TodaySales:       sales,
		TodayOrders:      count,
		LowStockProducts: lowStock,
	}, nil
}
