package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale records are append-only. Nothing in the engine updates or
// deletes a row once it has been written.
type Sale struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID      uuid.UUID       `gorm:"index" json:"user_id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2)" json:"price"`
	Total       decimal.Decimal `gorm:"type:decimal(12,2)" json:"total"`
	Timestamp   time.Time       `gorm:"type:timestamp;index" json:"timestamp"`
}
