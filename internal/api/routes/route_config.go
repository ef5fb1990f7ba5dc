package routes

import (
	"StockScan-Backend/internal/api/handlers"
	"StockScan-Backend/internal/middleware"
	"StockScan-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App              *fiber.App
	ProductHandler   handlers.ProductHandler
	SalesHandler     handlers.SalesHandler
	AnalyticsHandler handlers.AnalyticsHandler
	ScanHandler      handlers.ScanHandler
	Middleware       middleware.Middleware
	JWTService       jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.Products()
	c.Sales()
	c.Analytics()
	c.Scan()
	c.GuestRoute()
}

func (c *Config) Products() {
	products := c.App.Group("/api/v1/products", c.Middleware.AuthMiddleware(c.JWTService))
	products.Get("/stats", c.ProductHandler.GetProductStats)
	products.Get("/barcode/:barcode", c.ProductHandler.FindByBarcode)

	// Basic CRUD operations
	products.Post("", c.ProductHandler.AddProduct)
	products.Get("", c.ProductHandler.GetProducts)
	products.Get("/:id", c.ProductHandler.GetProductDetails)
	products.Put("/:id", c.ProductHandler.UpdateProduct)
	products.Delete("/:id", c.ProductHandler.DeleteProduct)

	// Stock movements
	products.Post("/:id/restock", c.ProductHandler.RestockProduct)
	products.Post("/:id/sell", c.ProductHandler.SellProduct)
	products.Post("/image", c.ProductHandler.UploadProductImage)
}

func (c *Config) Sales() {
	sales := c.App.Group("/api/v1/sales", c.Middleware.AuthMiddleware(c.JWTService))
	sales.Post("", c.SalesHandler.RecordSale)
	sales.Get("", c.SalesHandler.GetSales)
}

func (c *Config) Analytics() {
	analytics := c.App.Group("/api/v1/analytics", c.Middleware.AuthMiddleware(c.JWTService))
	analytics.Get("/sales", c.AnalyticsHandler.GetSalesReport)
}

func (c *Config) Scan() {
	scan := c.App.Group("/api/v1/scan", c.Middleware.AuthMiddleware(c.JWTService))
	scan.Post("/mode", c.ScanHandler.SetScanMode)
	scan.Post("/barcode", c.ScanHandler.ScanBarcode)
	scan.Post("/image", c.ScanHandler.UploadBarcodeImage)
	scan.Get("/session", c.ScanHandler.GetScanSession)
	scan.Delete("/session", c.ScanHandler.ResetScanSession)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
