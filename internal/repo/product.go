package repo

import (
	"context"
	"errors"

	"github.com/Skotchmaster/pos_system/internal/models"
	"gorm.io/gorm"
)

// GetActiveProduct returns the product with its current price and stock, or
// nil when it does not exist or was soft-deleted.
func (r *GormRepo) GetActiveProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	err := r.DB.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// DecrementStock takes quantity units off a product's stock inside tx. It is
// guarded: the update only applies while enough stock remains, so two
// concurrent checkouts can never drive the counter below zero. Returns false
// when the guard lost, in which case the caller must roll the whole
// transaction back.
func (r *GormRepo) DecrementStock(tx *gorm.DB, productID uint, quantity int) (bool, error) {
	res := tx.Model(&models.Product{}).
		Where("id = ? AND stock_quantity >= ?", productID, quantity).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", quantity))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// LowStockProducts lists active products at or below their minimum quantity,
// lowest stock first.
func (r *GormRepo) LowStockProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := r.DB.WithContext(ctx).
		Where("stock_quantity <= min_quantity AND is_active = ?", true).
		Order("stock_quantity ASC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}
