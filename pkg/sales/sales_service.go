package sales

import (
	"StockScan-Backend/domain"
	"StockScan-Backend/entities"
	"StockScan-Backend/pkg/product"
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type (
	SalesService interface {
		RecordSale(ctx context.Context, req domain.RecordSaleRequest, userID string) (domain.SaleResponse, error)
		GetSales(ctx context.Context, userID string) ([]domain.SaleResponse, error)
	}

	salesService struct {
		salesRepository SalesRepository
		productService  product.ProductService
	}
)

func NewSalesService(salesRepository SalesRepository, productService product.ProductService) SalesService {
	return &salesService{
		salesRepository: salesRepository,
		productService:  productService,
	}
}

// RecordSale decrements stock first and appends the ledger entry only
// when the decrement succeeded, so an insufficient-stock sale leaves
// neither a mutation nor a ledger row behind. Name and unit price are
// captured at sale time and stay fixed under later product edits.
func (s *salesService) RecordSale(ctx context.Context, req domain.RecordSaleRequest, userID string) (domain.SaleResponse, error) {
	sold, err := s.productService.GetProductByID(ctx, req.ProductID, userID)
	if err != nil {
		return domain.SaleResponse{}, err
	}

	if _, err := s.productService.Sell(ctx, req.ProductID, req.Quantity, userID); err != nil {
		return domain.SaleResponse{}, err
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.SaleResponse{}, domain.ErrParseUUID
	}
	productUUID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return domain.SaleResponse{}, domain.ErrParseUUID
	}

	sale := &entities.Sale{
		ID:          uuid.New(),
		UserID:      userUUID,
		ProductID:   productUUID,
		ProductName: sold.Name,
		Quantity:    req.Quantity,
		Price:       sold.Price,
		Total:       sold.Price.Mul(decimal.NewFromInt(int64(req.Quantity))),
		Timestamp:   time.Now(),
	}

	if err := s.salesRepository.AppendSale(ctx, sale); err != nil {
		return domain.SaleResponse{}, err
	}

	return toSaleResponse(sale), nil
}

func (s *salesService) GetSales(ctx context.Context, userID string) ([]domain.SaleResponse, error) {
	sales, err := s.salesRepository.GetSalesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	response := make([]domain.SaleResponse, 0, len(sales))
	for _, sale := range sales {
		response = append(response, toSaleResponse(sale))
	}
	return response, nil
}

func toSaleResponse(sale *entities.Sale) domain.SaleResponse {
	return domain.SaleResponse{
		ID:          sale.ID.String(),
		ProductID:   sale.ProductID.String(),
		ProductName: sale.ProductName,
		Quantity:    sale.Quantity,
		Price:       sale.Price,
		Total:       sale.Total,
		Timestamp:   sale.Timestamp,
	}
}
