package product

import (
	"StockScan-Backend/domain"
	"StockScan-Backend/entities"
	"StockScan-Backend/pkg/search"
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type fakeProductRepository struct {
	products map[string]*entities.Product
}

func newFakeProductRepository() *fakeProductRepository {
	return &fakeProductRepository{products: make(map[string]*entities.Product)}
}

func (r *fakeProductRepository) AddProduct(_ context.Context, product *entities.Product) error {
	if product.Barcode != nil {
		for _, existing := range r.products {
			if existing.UserID == product.UserID && existing.Barcode != nil && *existing.Barcode == *product.Barcode {
				return gorm.ErrDuplicatedKey
			}
		}
	}
	clone := *product
	r.products[product.ID.String()] = &clone
	return nil
}

func (r *fakeProductRepository) GetProductByID(_ context.Context, id string) (*entities.Product, error) {
	product, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *product
	return &clone, nil
}

func (r *fakeProductRepository) GetProductsByUser(_ context.Context, userID string) ([]*entities.Product, error) {
	var out []*entities.Product
	for _, product := range r.products {
		if product.UserID.String() == userID {
			clone := *product
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeProductRepository) GetProductByUserAndBarcode(_ context.Context, userID string, barcode string) (*entities.Product, error) {
	for _, product := range r.products {
		if product.UserID.String() == userID && product.Barcode != nil && *product.Barcode == barcode {
			clone := *product
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeProductRepository) UpdateProduct(_ context.Context, product *entities.Product) error {
	clone := *product
	r.products[product.ID.String()] = &clone
	return nil
}

func (r *fakeProductRepository) DeleteProduct(_ context.Context, id string) error {
	delete(r.products, id)
	return nil
}

var (
	ownerID = uuid.New().String()
	otherID = uuid.New().String()
	demoID  = uuid.New().String()
)

func newTestService(repo ProductRepository) ProductService {
	return NewProductService(repo, search.NewIndex(search.DefaultMaxRank), nil, demoID)
}

func seedProduct(t *testing.T, repo *fakeProductRepository, userID string, name string, barcode string, quantity int) *entities.Product {
	t.Helper()
	product := &entities.Product{
		ID:       uuid.New(),
		UserID:   uuid.MustParse(userID),
		Name:     name,
		Category: "snacks",
		Price:    decimal.NewFromInt(10),
		Quantity: quantity,
	}
	if barcode != "" {
		b := barcode
		product.Barcode = &b
	}
	if err := repo.AddProduct(context.Background(), product); err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return product
}

func TestAddProductMergesOnExistingBarcode(t *testing.T) {
	repo := newFakeProductRepository()
	service := newTestService(repo)
	existing := seedProduct(t, repo, ownerID, "Cola", "123456", 4)

	res, err := service.AddProduct(context.Background(), domain.AddProductRequest{
		Name:     "Completely Different Name",
		Barcode:  "123456",
		Category: "drinks",
		Price:    decimal.NewFromInt(99),
		Quantity: 3,
	}, ownerID)
	if err != nil {
		t.Fatalf("AddProduct: %v", err)
	}

	if !res.Merged {
		t.Fatalf("expected merge, got new product")
	}
	if res.Product.ID != existing.ID.String() {
		t.Fatalf("merged into wrong product: %s", res.Product.ID)
	}
	if res.Product.Quantity != 7 {
		t.Fatalf("quantity = %d, want 7", res.Product.Quantity)
	}
	// Only quantity merges; every other submitted field is discarded.
	if res.Product.Name != "Cola" {
		t.Fatalf("name = %q, want existing name preserved", res.Product.Name)
	}
	if !res.Product.Price.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("price = %s, want existing price preserved", res.Product.Price)
	}
}

// blindLookupRepository simulates losing the merge pre-check race: the
// barcode lookup misses but the insert still trips the storage-level
// (user, barcode) constraint.
type blindLookupRepository struct {
	*fakeProductRepository
}

func (r *blindLookupRepository) GetProductByUserAndBarcode(_ context.Context, _ string, _ string) (*entities.Product, error) {
	return nil, gorm.ErrRecordNotFound
}

func TestAddProductDuplicateBarcodeRace(t *testing.T) {
	inner := newFakeProductRepository()
	repo := &blindLookupRepository{fakeProductRepository: inner}
	service := newTestService(repo)
	seedProduct(t, inner, ownerID, "Cola", "123456", 1)

	_, err := service.AddProduct(context.Background(), domain.AddProductRequest{
		Name:     "Cola Again",
		Barcode:  "123456",
		Category: "drinks",
		Quantity: 1,
	}, ownerID)
	if !errors.Is(err, domain.ErrDuplicateBarcode) {
		t.Fatalf("err = %v, want ErrDuplicateBarcode", err)
	}
}

func TestAddProductSameBarcodeDifferentOwners(t *testing.T) {
	repo := newFakeProductRepository()
	service := newTestService(repo)
	seedProduct(t, repo, otherID, "Their Cola", "123456", 4)

	res, err := service.AddProduct(context.Background(), domain.AddProductRequest{
		Name:     "My Cola",
		Barcode:  "123456",
		Category: "drinks",
		Quantity: 2,
	}, ownerID)
	if err != nil {
		t.Fatalf("AddProduct: %v", err)
	}
	if res.Merged {
		t.Fatalf("must not merge across owners")
	}
	if res.Product.Name != "My Cola" {
		t.Fatalf("name = %q", res.Product.Name)
	}
}

func TestRestockAddsDelta(t *testing.T) {
	repo := newFakeProductRepository()
	service := newTestService(repo)
	product := seedProduct(t, repo, ownerID, "Cola", "123456", 4)

	res, err := service.Restock(context.Background(), product.ID.String(), 3, ownerID)
	if err != nil {
		t.Fatalf("Restock: %v", err)
	}
	if res.Quantity != 7 {
		t.Fatalf("quantity = %d, want 7", res.Quantity)
	}
}

func TestSellInsufficientStockLeavesQuantityUntouched(t *testing.T) {
	repo := newFakeProductRepository()
	service := newTestService(repo)
	product := seedProduct(t, repo, ownerID, "Cola", "123456", 2)

	_, err := service.Sell(context.Background(), product.ID.String(), 5, ownerID)
	if !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("err = %v, want ErrInsufficientStock", err)
	}

	stored, _ := repo.GetProductByID(context.Background(), product.ID.String())
	if stored.Quantity != 2 {
		t.Fatalf("quantity mutated to %d on failed sale", stored.Quantity)
	}
}

func TestSellDecrementsQuantity(t *testing.T) {
	repo := newFakeProductRepository()
	service := newTestService(repo)
	product := seedProduct(t, repo, ownerID, "Cola", "123456", 4)

	res, err := service.Sell(context.Background(), product.ID.String(), 4, ownerID)
	if err != nil {
		t.Fatalf("Sell: %v", err)
	}
	if res.Quantity != 0 {
		t.Fatalf("quantity = %d, want 0", res.Quantity)
	}
}

func TestInvalidDeltasRejected(t *testing.T) {
	repo := newFakeProductRepository()
	service := newTestService(repo)
	product := seedProduct(t, repo, ownerID, "Cola", "123456", 4)

	for _, delta := range []int{0, -1} {
		if _, err := service.Restock(context.Background(), product.ID.String(), delta, ownerID); !errors.Is(err, domain.ErrInvalidQuantity) {
			t.Fatalf("Restock(%d) err = %v, want ErrInvalidQuantity", delta, err)
		}
		if _, err := service.Sell(context.Background(), product.ID.String(), delta, ownerID); !errors.Is(err, domain.ErrInvalidQuantity) {
			t.Fatalf("Sell(%d) err = %v, want ErrInvalidQuantity", delta, err)
		}
	}
}

func TestCrossOwnerAccessReportsNotFound(t *testing.T) {
	repo := newFakeProductRepository()
	service := newTestService(repo)
	product := seedProduct(t, repo, otherID, "Their Cola", "123456", 4)

	if _, err := service.GetProductByID(context.Background(), product.ID.String(), ownerID); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("err = %v, want ErrProductNotFound", err)
	}
	if _, err := service.Restock(context.Background(), product.ID.String(), 1, ownerID); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("err = %v, want ErrProductNotFound", err)
	}
	if err := service.DeleteProduct(context.Background(), product.ID.String(), ownerID); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("err = %v, want ErrProductNotFound", err)
	}
}

func TestDemoUserWritesForbidden(t *testing.T) {
	repo := newFakeProductRepository()
	service := newTestService(repo)
	product := seedProduct(t, repo, demoID, "Demo Cola", "123456", 4)

	writes := map[string]error{}
	_, err := service.AddProduct(context.Background(), domain.AddProductRequest{Name: "X", Category: "y"}, demoID)
	writes["AddProduct"] = err
	_, err = service.UpdateProduct(context.Background(), product.ID.String(), domain.UpdateProductRequest{Name: "X"}, demoID)
	writes["UpdateProduct"] = err
	writes["DeleteProduct"] = service.DeleteProduct(context.Background(), product.ID.String(), demoID)
	_, err = service.Restock(context.Background(), product.ID.String(), 1, demoID)
	writes["Restock"] = err
	_, err = service.Sell(context.Background(), product.ID.String(), 1, demoID)
	writes["Sell"] = err

	for op, err := range writes {
		if !errors.Is(err, domain.ErrDemoWriteForbidden) {
			t.Fatalf("%s err = %v, want ErrDemoWriteForbidden", op, err)
		}
	}

	stored, _ := repo.GetProductByID(context.Background(), product.ID.String())
	if stored.Quantity != 4 {
		t.Fatalf("demo guard mutated quantity to %d", stored.Quantity)
	}
}

func TestDemoUserReadsAllowed(t *testing.T) {
	repo := newFakeProductRepository()
	service := newTestService(repo)
	seedProduct(t, repo, demoID, "Demo Cola", "123456", 4)

	products, err := service.GetProducts(context.Background(), demoID, "")
	if err != nil {
		t.Fatalf("GetProducts: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("len = %d, want 1", len(products))
	}

	match, err := service.FindByBarcode(context.Background(), "123456", demoID)
	if err != nil || match == nil {
		t.Fatalf("FindByBarcode: match=%v err=%v", match, err)
	}
}

func TestFindByBarcodeMissIsNotAnError(t *testing.T) {
	repo := newFakeProductRepository()
	service := newTestService(repo)

	match, err := service.FindByBarcode(context.Background(), "999", ownerID)
	if err != nil {
		t.Fatalf("FindByBarcode: %v", err)
	}
	if match != nil {
		t.Fatalf("match = %+v, want nil", match)
	}
}

func TestGetProductStats(t *testing.T) {
	repo := newFakeProductRepository()
	service := newTestService(repo)

	seedProduct(t, repo, ownerID, "Cola", "1", 4)
	seedProduct(t, repo, ownerID, "Chips", "2", 0)
	seedProduct(t, repo, ownerID, "Soda", "3", 2)
	seedProduct(t, repo, otherID, "Their Cola", "4", 9)

	stats, err := service.GetProductStats(context.Background(), ownerID)
	if err != nil {
		t.Fatalf("GetProductStats: %v", err)
	}
	if stats.TotalProducts != 3 {
		t.Fatalf("total = %d, want 3", stats.TotalProducts)
	}
	if stats.OutOfStock != 1 {
		t.Fatalf("out of stock = %d, want 1", stats.OutOfStock)
	}
	if stats.Categories != 1 {
		t.Fatalf("categories = %d, want 1", stats.Categories)
	}
	if !stats.TotalValue.Equal(decimal.NewFromInt(60)) {
		t.Fatalf("total value = %s, want 60", stats.TotalValue)
	}
}

func TestUpdateProductPartialFields(t *testing.T) {
	repo := newFakeProductRepository()
	service := newTestService(repo)
	product := seedProduct(t, repo, ownerID, "Cola", "123456", 4)

	newPrice := decimal.NewFromInt(25)
	res, err := service.UpdateProduct(context.Background(), product.ID.String(), domain.UpdateProductRequest{
		Price: &newPrice,
	}, ownerID)
	if err != nil {
		t.Fatalf("UpdateProduct: %v", err)
	}
	if !res.Price.Equal(newPrice) {
		t.Fatalf("price = %s, want 25", res.Price)
	}
	if res.Name != "Cola" || res.Quantity != 4 {
		t.Fatalf("untouched fields changed: %+v", res)
	}

	negative := decimal.NewFromInt(-1)
	if _, err := service.UpdateProduct(context.Background(), product.ID.String(), domain.UpdateProductRequest{Price: &negative}, ownerID); !errors.Is(err, domain.ErrInvalidPrice) {
		t.Fatalf("err = %v, want ErrInvalidPrice", err)
	}
}
