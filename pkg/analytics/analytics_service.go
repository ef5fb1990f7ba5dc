package analytics

import (
	"StockScan-Backend/domain"
	"StockScan-Backend/entities"
	"StockScan-Backend/pkg/product"
	"StockScan-Backend/pkg/sales"
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

const dayFormat = "2006-01-02"

// Number of products reported in the top-sellers rollup.
const topProductCount = 5

type (
	// AnalyticsService aggregates the sales ledger into rollups. It is
	// read-only: it never mutates the ledger or the catalog, and a report
	// is a best-effort snapshot with respect to concurrent mutations.
	AnalyticsService interface {
		GetSalesReport(ctx context.Context, userID string, dateRange string) (domain.SalesReportResponse, error)
	}

	analyticsService struct {
		salesRepository   sales.SalesRepository
		productRepository product.ProductRepository
	}
)

func NewAnalyticsService(salesRepository sales.SalesRepository, productRepository product.ProductRepository) AnalyticsService {
	return &analyticsService{
		salesRepository:   salesRepository,
		productRepository: productRepository,
	}
}

func (s *analyticsService) GetSalesReport(ctx context.Context, userID string, dateRange string) (domain.SalesReportResponse, error) {
	now := time.Now()
	var start time.Time
	switch dateRange {
	case domain.RangeWeek:
		start = now.AddDate(0, 0, -7)
	case domain.RangeMonth:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	case domain.RangeYear:
		start = now.AddDate(0, 0, -365)
	default:
		return domain.SalesReportResponse{}, domain.ErrInvalidDateRange
	}

	ledger, err := s.salesRepository.GetSalesByUser(ctx, userID)
	if err != nil {
		return domain.SalesReportResponse{}, err
	}

	window := make([]*entities.Sale, 0, len(ledger))
	for _, sale := range ledger {
		if sale.Timestamp.Before(start) || sale.Timestamp.After(now) {
			continue
		}
		window = append(window, sale)
	}
	// The ledger lists newest-first; aggregation wants chronological
	// order so top-product ties resolve by first appearance.
	sort.SliceStable(window, func(a, b int) bool {
		return window[a].Timestamp.Before(window[b].Timestamp)
	})

	products, err := s.productRepository.GetProductsByUser(ctx, userID)
	if err != nil {
		return domain.SalesReportResponse{}, err
	}
	categoryByProduct := make(map[string]string, len(products))
	for _, p := range products {
		categoryByProduct[p.ID.String()] = p.Category
	}

	report := domain.SalesReportResponse{
		Range:             dateRange,
		TotalRevenue:      decimal.Zero,
		AverageOrderValue: decimal.Zero,
		RevenueByHour:     zeroBuckets(24),
		RevenueByWeekday:  zeroBuckets(7),
	}

	daily := make(map[string]*domain.DailySalesPoint)
	type productAgg struct {
		quantity int
		revenue  decimal.Decimal
		firstIdx int
	}
	byProduct := make(map[string]*productAgg)
	productOrder := make([]string, 0)
	byCategory := make(map[string]decimal.Decimal)
	categoryOrder := make([]string, 0)

	for i, sale := range window {
		report.TotalRevenue = report.TotalRevenue.Add(sale.Total)
		report.TotalItemsSold += sale.Quantity

		day := sale.Timestamp.Format(dayFormat)
		point, ok := daily[day]
		if !ok {
			point = &domain.DailySalesPoint{Date: day, Revenue: decimal.Zero}
			daily[day] = point
		}
		point.Revenue = point.Revenue.Add(sale.Total)
		point.Items += sale.Quantity

		agg, ok := byProduct[sale.ProductName]
		if !ok {
			agg = &productAgg{revenue: decimal.Zero, firstIdx: i}
			byProduct[sale.ProductName] = agg
			productOrder = append(productOrder, sale.ProductName)
		}
		agg.quantity += sale.Quantity
		agg.revenue = agg.revenue.Add(sale.Total)

		hour := sale.Timestamp.Hour()
		report.RevenueByHour[hour] = report.RevenueByHour[hour].Add(sale.Total)
		weekday := int(sale.Timestamp.Weekday())
		report.RevenueByWeekday[weekday] = report.RevenueByWeekday[weekday].Add(sale.Total)

		// A sale whose product was deleted since still counts in the raw
		// totals above, but has no category to attribute revenue to.
		if category, ok := categoryByProduct[sale.ProductID.String()]; ok {
			if _, seen := byCategory[category]; !seen {
				byCategory[category] = decimal.Zero
				categoryOrder = append(categoryOrder, category)
			}
			byCategory[category] = byCategory[category].Add(sale.Total)
		}
	}

	if len(window) > 0 {
		report.AverageOrderValue = report.TotalRevenue.
			Div(decimal.NewFromInt(int64(len(window)))).
			Round(2)
	}

	// Every calendar day in the window appears in the series, zero-sale
	// days included.
	for day := truncateToDay(start); !day.After(now); day = day.AddDate(0, 0, 1) {
		key := day.Format(dayFormat)
		if point, ok := daily[key]; ok {
			report.Daily = append(report.Daily, *point)
			continue
		}
		report.Daily = append(report.Daily, domain.DailySalesPoint{Date: key, Revenue: decimal.Zero})
	}

	top := make([]domain.ProductSales, 0, len(productOrder))
	for _, name := range productOrder {
		agg := byProduct[name]
		top = append(top, domain.ProductSales{Name: name, Quantity: agg.quantity, Revenue: agg.revenue})
	}
	sort.SliceStable(top, func(a, b int) bool {
		if top[a].Quantity != top[b].Quantity {
			return top[a].Quantity > top[b].Quantity
		}
		return byProduct[top[a].Name].firstIdx < byProduct[top[b].Name].firstIdx
	})
	if len(top) > topProductCount {
		top = top[:topProductCount]
	}
	report.TopProducts = top

	categories := make([]domain.CategoryRevenue, 0, len(categoryOrder))
	for _, category := range categoryOrder {
		categories = append(categories, domain.CategoryRevenue{Category: category, Revenue: byCategory[category]})
	}
	sort.SliceStable(categories, func(a, b int) bool {
		return categories[a].Revenue.GreaterThan(categories[b].Revenue)
	})
	report.RevenueByCategory = categories

	return report, nil
}

func zeroBuckets(n int) []decimal.Decimal {
	buckets := make([]decimal.Decimal, n)
	for i := range buckets {
		buckets[i] = decimal.Zero
	}
	return buckets
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
