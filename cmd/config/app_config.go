package config

import (
	"StockScan-Backend/internal/api/handlers"
	"StockScan-Backend/internal/api/routes"
	"StockScan-Backend/internal/middleware"
	"StockScan-Backend/internal/utils"
	"StockScan-Backend/internal/utils/storage"
	"StockScan-Backend/pkg/analytics"
	"StockScan-Backend/pkg/jwt"
	"StockScan-Backend/pkg/product"
	"StockScan-Backend/pkg/sales"
	"StockScan-Backend/pkg/scan"
	"StockScan-Backend/pkg/search"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()
	searchIndex := search.NewIndex(search.DefaultMaxRank)
	decoder := scan.NewBarcodeDecoder()

	// Repository
	productRepository := product.NewProductRepository(db)
	salesRepository := sales.NewSalesRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	productService := product.NewProductService(
		productRepository,
		searchIndex,
		s3,
		utils.GetConfig("DEMO_USER_ID"),
	)
	salesService := sales.NewSalesService(salesRepository, productService)
	analyticsService := analytics.NewAnalyticsService(salesRepository, productRepository)
	scanManager := scan.NewManager(productService, salesService, decoder)

	// Handler
	productHandler := handlers.NewProductHandler(productService, validator)
	salesHandler := handlers.NewSalesHandler(salesService, validator)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	scanHandler := handlers.NewScanHandler(scanManager, validator)

	// routes
	routesConfig := routes.Config{
		App:              app,
		ProductHandler:   productHandler,
		SalesHandler:     salesHandler,
		AnalyticsHandler: analyticsHandler,
		ScanHandler:      scanHandler,
		Middleware:       middlewares,
		JWTService:       jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
