package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	MessageSuccessGetSalesReport = "sales report retrieved successfully"
	MessageFailedGetSalesReport  = "failed to retrieve sales report"

	ErrInvalidDateRange = errors.New("invalid date range")
)

// Date ranges accepted by the sales report.
const (
	RangeWeek  = "week"
	RangeMonth = "month"
	RangeYear  = "year"
)

type (
	DailySalesPoint struct {
		Date    string          `json:"date"`
		Revenue decimal.Decimal `json:"revenue"`
		Items   int             `json:"items"`
	}

	ProductSales struct {
		Name     string          `json:"name"`
		Quantity int             `json:"quantity"`
		Revenue  decimal.Decimal `json:"revenue"`
	}

	CategoryRevenue struct {
		Category string          `json:"category"`
		Revenue  decimal.Decimal `json:"revenue"`
	}

	SalesReportResponse struct {
		Range             string            `json:"range"`
		TotalRevenue      decimal.Decimal   `json:"total_revenue"`
		TotalItemsSold    int               `json:"total_items_sold"`
		AverageOrderValue decimal.Decimal   `json:"average_order_value"`
		Daily             []DailySalesPoint `json:"daily"`
		TopProducts       []ProductSales    `json:"top_products"`
		RevenueByHour     []decimal.Decimal `json:"revenue_by_hour"`
		RevenueByWeekday  []decimal.Decimal `json:"revenue_by_weekday"`
		RevenueByCategory []CategoryRevenue `json:"revenue_by_category"`
	}
)
