package router

import (
	"database/sql"

	"estoque_backend/internal/handlers"
	"estoque_backend/internal/middleware"
	"estoque_backend/internal/repositories"
	"estoque_backend/internal/services"
	"estoque_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// Setup wires repositories, services and handlers and registers every route.
func Setup(engine *gin.Engine, db *sql.DB) error {
	// Initialize Repositories
	productRepo := repositories.NewProductRepository(db)
	quoteRepo := repositories.NewQuoteRepository(db)
	receiptRepo := repositories.NewReceiptRepository(db)
	maintenanceRepo := repositories.NewMaintenanceRepository(db)
	settingRepo := repositories.NewSettingRepository(db)

	// Initialize Services
	if err := utils.InitJWTSecret(); err != nil {
		return err
	}
	authService, err := services.NewAuthService(utils.Getenv("ACCESS_PASSWORD", ""))
	if err != nil {
		return err
	}
	productService := services.NewProductService(productRepo, db)
	purchasingService := services.NewPurchasingService(productRepo, settingRepo)
	quoteService := services.NewQuoteService(quoteRepo, purchasingService, db)
	receiptService := services.NewReceiptService(receiptRepo, quoteRepo, productRepo, db)
	maintenanceService := services.NewMaintenanceService(maintenanceRepo, settingRepo, db)
	abcService := services.NewABCService(productRepo)
	reportService := services.NewReportService(quoteRepo, productRepo)

	// Initialize Handlers
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(productService)
	purchasingHandler := handlers.NewPurchasingHandler(purchasingService)
	quoteHandler := handlers.NewQuoteHandler(quoteService)
	receiptHandler := handlers.NewReceiptHandler(receiptService)
	maintenanceHandler := handlers.NewMaintenanceHandler(maintenanceService)
	reportHandler := handlers.NewReportHandler(reportService, abcService)
	settingHandler := handlers.NewSettingHandler(settingRepo, db)

	apiV1 := engine.Group("/api/v1")

	// The login route is the only public one.
	SetupAuthRoutes(apiV1, authHandler)

	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware())
	{
		SetupProductRoutes(authenticated, productHandler)
		SetupPurchasingRoutes(authenticated, purchasingHandler)
		SetupQuoteRoutes(authenticated, quoteHandler)
		SetupReceiptRoutes(authenticated, receiptHandler)
		SetupMaintenanceRoutes(authenticated, maintenanceHandler)
		SetupReportRoutes(authenticated, reportHandler)
		SetupSettingRoutes(authenticated, settingHandler)
	}

	return nil
}
