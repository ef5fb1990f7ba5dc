package entities

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID      uuid.UUID       `gorm:"uniqueIndex:idx_user_barcode" json:"user_id"`
	Name        string          `json:"name"`
	Barcode     *string         `gorm:"uniqueIndex:idx_user_barcode" json:"barcode,omitempty"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2)" json:"price"`
	Quantity    int             `json:"quantity"`
	Description string          `gorm:"type:text" json:"description"`
	ImageURL    string          `json:"image_url,omitempty"`

	Timestamp
}
