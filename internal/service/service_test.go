package service

import (
	"testing"

	"github.com/Skotchmaster/pos_system/internal/config"
	"github.com/Skotchmaster/pos_system/internal/models"
	"github.com/Skotchmaster/pos_system/internal/repo"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// newTestDB opens an in-memory sqlite database capped at one connection so
// concurrent transactions serialize instead of hitting sqlite lock errors.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := config.Migrate(db); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}
	return db
}

func newServices(t *testing.T) (*gorm.DB, *ShiftService, *OrderService) {
	t.Helper()
	db := newTestDB(t)
	r := repo.New(db)
	shifts := &ShiftService{Repo: r}
	orders := &OrderService{DB: db, Repo: r, Shifts: shifts}
	return db, shifts, orders
}

func createProduct(t *testing.T, db *gorm.DB, sku, name, price string, stock int) models.Product {
	t.Helper()
	p := models.Product{
		SKU:           sku,
		Name:          name,
		Price:         dec(price),
		StockQuantity: stock,
		IsActive:      true,
	}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("failed to create product: %v", err)
	}
	return p
}

func openShiftFor(t *testing.T, shifts *ShiftService, userID uint) *models.Shift {
	t.Helper()
	shift, err := shifts.Open(t.Context(), userID, decimal.NewFromInt(100))
	if err != nil {
		t.Fatalf("failed to open shift: %v", err)
	}
	return shift
}
