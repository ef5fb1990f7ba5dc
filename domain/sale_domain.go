package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

var (
	MessageSuccessRecordSale = "sale recorded successfully"
	MessageSuccessGetSales   = "sales retrieved successfully"

	MessageFailedRecordSale = "failed to record sale"
	MessageFailedGetSales   = "failed to retrieve sales"
)

type (
	RecordSaleRequest struct {
		ProductID string `json:"product_id" validate:"required,uuid"`
		Quantity  int    `json:"quantity" validate:"required,min=1"`
	}

	SaleResponse struct {
		ID          string          `json:"id"`
		ProductID   string          `json:"product_id"`
		ProductName string          `json:"product_name"`
		Quantity    int             `json:"quantity"`
		Price       decimal.Decimal `json:"price"`
		Total       decimal.Decimal `json:"total"`
		Timestamp   time.Time       `json:"timestamp"`
	}
)
