package product

import (
	"StockScan-Backend/domain"
	"StockScan-Backend/entities"
	"StockScan-Backend/internal/utils/storage"
	"StockScan-Backend/pkg/search"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type (
	ProductService interface {
		AddProduct(ctx context.Context, req domain.AddProductRequest, userID string) (domain.AddProductResponse, error)
		GetProducts(ctx context.Context, userID string, query string) ([]domain.ProductResponse, error)
		GetProductByID(ctx context.Context, id string, userID string) (domain.ProductResponse, error)
		GetProductStats(ctx context.Context, userID string) (domain.ProductStatsResponse, error)
		FindByBarcode(ctx context.Context, barcode string, userID string) (*domain.ProductResponse, error)
		UpdateProduct(ctx context.Context, id string, req domain.UpdateProductRequest, userID string) (domain.ProductResponse, error)
		DeleteProduct(ctx context.Context, id string, userID string) error
		Restock(ctx context.Context, id string, delta int, userID string) (domain.ProductResponse, error)
		Sell(ctx context.Context, id string, delta int, userID string) (domain.ProductResponse, error)
		UploadProductImage(ctx context.Context, req domain.UploadProductImageRequest, userID string) error
	}

	productService struct {
		productRepository ProductRepository
		searchIndex       search.Index
		s3                storage.AwsS3
		demoUserID        string
	}
)

func NewProductService(productRepository ProductRepository, searchIndex search.Index, s3 storage.AwsS3, demoUserID string) ProductService {
	return &productService{
		productRepository: productRepository,
		searchIndex:       searchIndex,
		s3:                s3,
		demoUserID:        demoUserID,
	}
}

// guardDemoUser rejects writes under the shared demo identity. It runs
// before any fetch or quantity logic so a rejected call leaves no
// partial state behind.
func (s *productService) guardDemoUser(userID string) error {
	if s.demoUserID != "" && userID == s.demoUserID {
		return domain.ErrDemoWriteForbidden
	}
	return nil
}

func (s *productService) AddProduct(ctx context.Context, req domain.AddProductRequest, userID string) (domain.AddProductResponse, error) {
	if err := s.guardDemoUser(userID); err != nil {
		return domain.AddProductResponse{}, err
	}

	if req.Quantity < 0 {
		return domain.AddProductResponse{}, domain.ErrInvalidQuantity
	}
	if req.Price.IsNegative() {
		return domain.AddProductResponse{}, domain.ErrInvalidPrice
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.AddProductResponse{}, domain.ErrParseUUID
	}

	// Manual add with a barcode that already exists for this user merges
	// into the existing product: the submitted quantity is added and all
	// other submitted fields are discarded.
	if req.Barcode != "" {
		existing, err := s.productRepository.GetProductByUserAndBarcode(ctx, userID, req.Barcode)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.AddProductResponse{}, err
		}
		if existing != nil {
			existing.Quantity += req.Quantity
			if err := s.productRepository.UpdateProduct(ctx, existing); err != nil {
				return domain.AddProductResponse{}, err
			}
			s.refreshIndex(ctx, userID)
			return domain.AddProductResponse{Product: toProductResponse(existing), Merged: true}, nil
		}
	}

	product := &entities.Product{
		ID:          uuid.New(),
		UserID:      userUUID,
		Name:        req.Name,
		Category:    req.Category,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Description: req.Description,
	}
	if req.Barcode != "" {
		barcode := req.Barcode
		product.Barcode = &barcode
	}

	if err := s.productRepository.AddProduct(ctx, product); err != nil {
		// Concurrent creates can still trip the storage-level (user,
		// barcode) constraint after the pre-check above.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.AddProductResponse{}, domain.ErrDuplicateBarcode
		}
		return domain.AddProductResponse{}, err
	}

	s.refreshIndex(ctx, userID)
	return domain.AddProductResponse{Product: toProductResponse(product)}, nil
}

func (s *productService) GetProducts(ctx context.Context, userID string, query string) ([]domain.ProductResponse, error) {
	products, err := s.productRepository.GetProductsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	response := make([]domain.ProductResponse, 0, len(products))
	for _, item := range products {
		response = append(response, toProductResponse(item))
	}

	// The index is rebuilt from the snapshot just fetched, never reused
	// across a mutation boundary.
	s.searchIndex.Rebuild(userID, response)

	if query == "" {
		return response, nil
	}
	return s.searchIndex.Search(userID, query), nil
}

func (s *productService) GetProductByID(ctx context.Context, id string, userID string) (domain.ProductResponse, error) {
	product, err := s.ownedProduct(ctx, id, userID)
	if err != nil {
		return domain.ProductResponse{}, err
	}
	return toProductResponse(product), nil
}

func (s *productService) GetProductStats(ctx context.Context, userID string) (domain.ProductStatsResponse, error) {
	products, err := s.productRepository.GetProductsByUser(ctx, userID)
	if err != nil {
		return domain.ProductStatsResponse{}, err
	}

	stats := domain.ProductStatsResponse{
		TotalProducts: len(products),
		TotalValue:    decimal.Zero,
	}
	categories := make(map[string]struct{})
	for _, p := range products {
		stats.TotalValue = stats.TotalValue.Add(p.Price.Mul(decimal.NewFromInt(int64(p.Quantity))))
		if p.Quantity == 0 {
			stats.OutOfStock++
		}
		categories[p.Category] = struct{}{}
	}
	stats.Categories = len(categories)

	return stats, nil
}

// FindByBarcode returns nil without error when no product of this user
// matches; a miss is an expected outcome, not a failure.
func (s *productService) FindByBarcode(ctx context.Context, barcode string, userID string) (*domain.ProductResponse, error) {
	product, err := s.productRepository.GetProductByUserAndBarcode(ctx, userID, barcode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	response := toProductResponse(product)
	return &response, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id string, req domain.UpdateProductRequest, userID string) (domain.ProductResponse, error) {
	if err := s.guardDemoUser(userID); err != nil {
		return domain.ProductResponse{}, err
	}

	product, err := s.ownedProduct(ctx, id, userID)
	if err != nil {
		return domain.ProductResponse{}, err
	}

	if req.Name != "" {
		product.Name = req.Name
	}
	if req.Category != "" {
		product.Category = req.Category
	}
	if req.Description != "" {
		product.Description = req.Description
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return domain.ProductResponse{}, domain.ErrInvalidPrice
		}
		product.Price = *req.Price
	}
	if req.Quantity != nil {
		if *req.Quantity < 0 {
			return domain.ProductResponse{}, domain.ErrInvalidQuantity
		}
		product.Quantity = *req.Quantity
	}

	if err := s.productRepository.UpdateProduct(ctx, product); err != nil {
		return domain.ProductResponse{}, err
	}

	s.refreshIndex(ctx, userID)
	return toProductResponse(product), nil
}

func (s *productService) DeleteProduct(ctx context.Context, id string, userID string) error {
	if err := s.guardDemoUser(userID); err != nil {
		return err
	}

	product, err := s.ownedProduct(ctx, id, userID)
	if err != nil {
		return err
	}

	if product.ImageURL != "" && s.s3 != nil {
		objectKey := s.s3.GetObjectKeyFromLink(product.ImageURL)
		if objectKey != "" {
			_ = s.s3.DeleteFile(objectKey)
		}
	}

	if err := s.productRepository.DeleteProduct(ctx, id); err != nil {
		return err
	}

	s.refreshIndex(ctx, userID)
	return nil
}

func (s *productService) Restock(ctx context.Context, id string, delta int, userID string) (domain.ProductResponse, error) {
	if err := s.guardDemoUser(userID); err != nil {
		return domain.ProductResponse{}, err
	}
	if delta <= 0 {
		return domain.ProductResponse{}, domain.ErrInvalidQuantity
	}

	product, err := s.ownedProduct(ctx, id, userID)
	if err != nil {
		return domain.ProductResponse{}, err
	}

	product.Quantity += delta
	if err := s.productRepository.UpdateProduct(ctx, product); err != nil {
		return domain.ProductResponse{}, err
	}

	s.refreshIndex(ctx, userID)
	return toProductResponse(product), nil
}

func (s *productService) Sell(ctx context.Context, id string, delta int, userID string) (domain.ProductResponse, error) {
	if err := s.guardDemoUser(userID); err != nil {
		return domain.ProductResponse{}, err
	}
	if delta <= 0 {
		return domain.ProductResponse{}, domain.ErrInvalidQuantity
	}

	product, err := s.ownedProduct(ctx, id, userID)
	if err != nil {
		return domain.ProductResponse{}, err
	}

	if product.Quantity < delta {
		return domain.ProductResponse{}, domain.ErrInsufficientStock
	}

	product.Quantity -= delta
	if err := s.productRepository.UpdateProduct(ctx, product); err != nil {
		return domain.ProductResponse{}, err
	}

	s.refreshIndex(ctx, userID)
	return toProductResponse(product), nil
}

func (s *productService) UploadProductImage(ctx context.Context, req domain.UploadProductImageRequest, userID string) error {
	if err := s.guardDemoUser(userID); err != nil {
		return err
	}

	product, err := s.ownedProduct(ctx, req.ProductID, userID)
	if err != nil {
		return err
	}

	fileName := fmt.Sprintf("product-%s", product.ID.String())
	var objectKey string
	var uploadErr error

	if product.ImageURL != "" {
		existingKey := s.s3.GetObjectKeyFromLink(product.ImageURL)
		if existingKey != "" {
			objectKey, uploadErr = s.s3.UpdateFile(existingKey, req.Image, storage.AllowImage...)
		} else {
			objectKey, uploadErr = s.s3.UploadFile(fileName, req.Image, "products", storage.AllowImage...)
		}
	} else {
		objectKey, uploadErr = s.s3.UploadFile(fileName, req.Image, "products", storage.AllowImage...)
	}

	if uploadErr != nil {
		return uploadErr
	}

	product.ImageURL = s.s3.GetPublicLinkKey(objectKey)
	if err := s.productRepository.UpdateProduct(ctx, product); err != nil {
		return err
	}

	s.refreshIndex(ctx, userID)
	return nil
}

func (s *productService) ownedProduct(ctx context.Context, id string, userID string) (*entities.Product, error) {
	product, err := s.productRepository.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}
	if product.UserID.String() != userID {
		return nil, domain.ErrProductNotFound
	}
	return product, nil
}

// refreshIndex rebuilds the user's search shard from a fresh snapshot.
// Rebuild failures only leave the index one mutation behind the store,
// and the next fetch rebuilds it again.
func (s *productService) refreshIndex(ctx context.Context, userID string) {
	products, err := s.productRepository.GetProductsByUser(ctx, userID)
	if err != nil {
		return
	}
	response := make([]domain.ProductResponse, 0, len(products))
	for _, item := range products {
		response = append(response, toProductResponse(item))
	}
	s.searchIndex.Rebuild(userID, response)
}

func toProductResponse(product *entities.Product) domain.ProductResponse {
	response := domain.ProductResponse{
		ID:          product.ID.String(),
		Name:        product.Name,
		Category:    product.Category,
		Price:       product.Price,
		Quantity:    product.Quantity,
		Description: product.Description,
		ImageURL:    product.ImageURL,
		CreatedAt:   product.CreatedAt,
	}
	if product.Barcode != nil {
		response.Barcode = *product.Barcode
	}
	return response
}
