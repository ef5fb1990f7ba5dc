package domain

import (
	"errors"
	"mime/multipart"
	"time"

	"github.com/shopspring/decimal"
)

var (
	MessageSuccessAddProduct      = "product added successfully"
	MessageSuccessMergeProduct    = "product quantity updated"
	MessageSuccessUpdateProduct   = "product updated successfully"
	MessageSuccessDeleteProduct   = "product deleted successfully"
	MessageSuccessGetProducts     = "products retrieved successfully"
	MessageSuccessGetProductStats = "product statistics retrieved successfully"
	MessageSuccessRestockProduct  = "product restocked successfully"
	MessageSuccessSellProduct     = "product sold successfully"
	MessageSuccessUploadImage     = "product image uploaded successfully"
	MessageSuccessFindByBarcode   = "barcode lookup completed"

	MessageFailedAddProduct      = "failed to add product"
	MessageFailedUpdateProduct   = "failed to update product"
	MessageFailedDeleteProduct   = "failed to delete product"
	MessageFailedGetProducts     = "failed to retrieve products"
	MessageFailedGetProductStats = "failed to retrieve product statistics"
	MessageFailedRestockProduct  = "failed to restock product"
	MessageFailedSellProduct     = "failed to sell product"
	MessageFailedUploadImage     = "failed to upload product image"
	MessageFailedFindByBarcode   = "failed to look up barcode"

	ErrProductNotFound    = errors.New("product not found")
	ErrDuplicateBarcode   = errors.New("a product with this barcode already exists for this user")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrDemoWriteForbidden = errors.New("demo account is read-only")
	ErrInvalidQuantity    = errors.New("quantity must be positive")
	ErrInvalidPrice       = errors.New("price must not be negative")
)

type (
	AddProductRequest struct {
		Name        string          `json:"name" validate:"required"`
		Barcode     string          `json:"barcode" validate:"omitempty"`
		Category    string          `json:"category" validate:"required"`
		Price       decimal.Decimal `json:"price"`
		Quantity    int             `json:"quantity" validate:"min=0"`
		Description string          `json:"description"`
	}

	UpdateProductRequest struct {
		Name        string           `json:"name" validate:"omitempty"`
		Category    string           `json:"category" validate:"omitempty"`
		Price       *decimal.Decimal `json:"price" validate:"omitempty"`
		Quantity    *int             `json:"quantity" validate:"omitempty,min=0"`
		Description string           `json:"description" validate:"omitempty"`
	}

	QuantityDeltaRequest struct {
		Delta int `json:"delta" validate:"required,min=1"`
	}

	UploadProductImageRequest struct {
		ProductID string                `json:"product_id" form:"product_id" validate:"required,uuid"`
		Image     *multipart.FileHeader `json:"image" form:"image" validate:"required"`
	}

	ProductResponse struct {
		ID          string          `json:"id"`
		Name        string          `json:"name"`
		Barcode     string          `json:"barcode,omitempty"`
		Category    string          `json:"category"`
		Price       decimal.Decimal `json:"price"`
		Quantity    int             `json:"quantity"`
		Description string          `json:"description"`
		ImageURL    string          `json:"image_url,omitempty"`
		CreatedAt   time.Time       `json:"created_at"`
	}

	// AddProductResponse reports whether the add was merged into an
	// existing product with the same barcode.
	AddProductResponse struct {
		Product ProductResponse `json:"product"`
		Merged  bool            `json:"merged"`
	}

	ProductStatsResponse struct {
		TotalProducts int             `json:"total_products"`
		TotalValue    decimal.Decimal `json:"total_value"`
		OutOfStock    int             `json:"out_of_stock"`
		Categories    int             `json:"categories"`
	}
)
