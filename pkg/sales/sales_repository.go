package sales

import (
	"StockScan-Backend/entities"
	"context"

	"gorm.io/gorm"
)

type (
	// SalesRepository only appends and lists. The ledger has no update
	// or delete; corrections are compensated outside this engine.
	SalesRepository interface {
		AppendSale(ctx context.Context, sale *entities.Sale) error
		GetSalesByUser(ctx context.Context, userID string) ([]*entities.Sale, error)
	}

	salesRepository struct {
		db *gorm.DB
	}
)

func NewSalesRepository(db *gorm.DB) SalesRepository {
	return &salesRepository{db: db}
}

func (r *salesRepository) AppendSale(ctx context.Context, sale *entities.Sale) error {
	return r.db.WithContext(ctx).Create(sale).Error
}

func (r *salesRepository) GetSalesByUser(ctx context.Context, userID string) ([]*entities.Sale, error) {
	var sales []*entities.Sale
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp desc").
		Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}
