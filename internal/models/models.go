package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	ShiftStatusOpen   = "Open"
	ShiftStatusClosed = "Closed"

	OrderStatusCompleted = "Completed"

	RoleAdmin   = "admin"
	RoleCashier = "cashier"
)

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string `gorm:"unique;not null"          json:"username"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	FullName     string `json:"full_name"`
	Role         string `gorm:"not null;default:cashier" json:"role"`
	IsActive     bool   `gorm:"not null;default:true"    json:"is_active"`
}

type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"      json:"id"`
	Token     string `gorm:"unique;not null" json:"token"`
	UserID    uint   `gorm:"index;not null"  json:"user_id"`
	ExpiresAt int64  `gorm:"not null"        json:"expires_at"`
	Revoked   bool   `gorm:"default:false"   json:"revoked"`
}

type Category struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"unique;not null"          json:"name"`
	Description string `json:"description"`
}

type Product struct {
	ID            uint            `gorm:"primaryKey;autoIncrement"    json:"id"`
	CategoryID    *uint           `gorm:"index"                       json:"category_id"`
	SKU           string          `gorm:"column:sku;unique;not null"  json:"sku"`
	Name          string          `gorm:"not null"                    json:"name"`
	Description   string          `json:"description"`
	Barcode       string          `gorm:"index"                       json:"barcode"`
	Price         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	StockQuantity int             `gorm:"not null;default:0"          json:"stock_quantity"`
	MinQuantity   int             `gorm:"not null;default:0"          json:"min_quantity"`
	IsActive      bool            `gorm:"not null;default:true"       json:"is_active"`
}

// Shift is a cashier's working session. ActiveUserID mirrors UserID while the
// shift is open and is cleared on close; its unique index is what keeps two
// concurrent opens for the same user from creating two open rows.
type Shift struct {
	ID           uint             `gorm:"primaryKey;autoIncrement"    json:"id"`
	UserID       uint             `gorm:"index;not null"              json:"user_id"`
	ActiveUserID *uint            `gorm:"uniqueIndex"                 json:"-"`
	StartTime    time.Time        `gorm:"not null"                    json:"start_time"`
	EndTime      *time.Time       `json:"end_time"`
	OpeningCash  decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"opening_cash"`
	ClosingCash  *decimal.Decimal `gorm:"type:decimal(12,2)"          json:"closing_cash"`
	Status       string           `gorm:"not null;default:Open"       json:"status"`
}

// Order rows are append only: created once inside the checkout transaction,
// never mutated afterwards.
type Order struct {
	ID             uint            `gorm:"primaryKey;autoIncrement"    json:"id"`
	OrderNumber    string          `gorm:"uniqueIndex;not null"        json:"order_number"`
	ShiftID        uint            `gorm:"index;not null"              json:"shift_id"`
	UserID         uint            `gorm:"index;not null"              json:"user_id"`
	CustomerID     *uint           `json:"customer_id"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	Tax            decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"tax"`
	Discount       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"discount"`
	Total          decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	PaidAmount     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"paid_amount"`
	PaymentMethod  string          `gorm:"not null"                    json:"payment_method"`
	TransactionRef *string         `json:"transaction_ref"`
	Status         string          `gorm:"not null"                    json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
}

// OrderItem snapshots the unit price at sale time so historical orders keep
// their value when the product price changes later.
type OrderItem struct {
	ID        uint            `gorm:"primaryKey;autoIncrement"    json:"id"`
	OrderID   uint            `gorm:"index;not null"              json:"order_id"`
	ProductID uint            `gorm:"not null"                    json:"product_id"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	Quantity  int             `gorm:"not null;check:quantity>0"   json:"quantity"`
	LineTotal decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"line_total"`
}

type Payment struct {
	ID             uint            `gorm:"primaryKey;autoIncrement"    json:"id"`
	OrderID        uint            `gorm:"uniqueIndex;not null"        json:"order_id"`
	Method         string          `gorm:"not null"                    json:"method"`
	Amount         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	TransactionRef *string         `json:"transaction_ref"`
	CreatedAt      time.Time       `json:"created_at"`
}
