package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order statuses. Transitions are validated in the order service; see
// service.OrderTransitions.
const (
	OrderPending   = "pending"
	OrderPaid      = "paid"
	OrderShipped   = "shipped"
	OrderDelivered = "delivered"
	OrderCancelled = "cancelled"
)

// Order is a customer purchase managed from the orders admin page.
// Orders are created by the storefront; the back office only reads them and
// advances their status.
type Order struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Number        string    `gorm:"uniqueIndex;not null"`
	CustomerName  string    `gorm:"not null"`
	CustomerEmail string    `gorm:"not null"`
	Status        string    `gorm:"type:varchar(20);not null;default:'pending'"`
	Total         decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Items         []OrderItem     `gorm:"foreignKey:OrderID"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (Order) TableName() string { return "orders" }

// OrderItem is one line of an order. ProductName and UnitPrice are snapshots
// taken at purchase time — later product edits must not rewrite history.
type OrderItem struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderID     uuid.UUID  `gorm:"type:uuid;index;not null"`
	ProductID   *uuid.UUID `gorm:"type:uuid"`
	ProductName string     `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Quantity    int             `gorm:"not null"`
}

func (OrderItem) TableName() string { return "order_items" }
