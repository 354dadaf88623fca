package router

import (
	"estoque_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes sets up the authentication routes.
func SetupAuthRoutes(apiGroup *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	authRoutes := apiGroup.Group("/auth")
	{
		authRoutes.POST("/login", authHandler.Login)
	}
}

// SetupProductRoutes sets up the product and stock routes.
func SetupProductRoutes(authenticatedGroup *gin.RouterGroup, productHandler *handlers.ProductHandler) {
	productRoutes := authenticatedGroup.Group("/products")
	{
		productRoutes.POST("", productHandler.CreateProduct)
		productRoutes.GET("", productHandler.GetProducts)
		productRoutes.GET("/:id", productHandler.GetProductByID)
		productRoutes.PUT("/:id", productHandler.UpdateProduct)
		productRoutes.DELETE("/:id", productHandler.DeleteProduct)
	}
	authenticatedGroup.GET("/stock", productHandler.GetStock)
}

// SetupPurchasingRoutes sets up the purchase-need computation route.
func SetupPurchasingRoutes(authenticatedGroup *gin.RouterGroup, purchasingHandler *handlers.PurchasingHandler) {
	authenticatedGroup.GET("/purchase-needs", purchasingHandler.GetPurchaseNeeds)
}

// SetupQuoteRoutes sets up the quote routes.
func SetupQuoteRoutes(authenticatedGroup *gin.RouterGroup, quoteHandler *handlers.QuoteHandler) {
	quoteRoutes := authenticatedGroup.Group("/quotes")
	{
		quoteRoutes.POST("", quoteHandler.GenerateQuote)
		quoteRoutes.GET("/lines", quoteHandler.GetQuoteLines)
		quoteRoutes.GET("/:quote_number", quoteHandler.GetQuoteByNumber)
		quoteRoutes.DELETE("/lines/:id", quoteHandler.DeleteQuoteLine)
	}
}

// SetupReceiptRoutes sets up the delivery receipt routes.
func SetupReceiptRoutes(authenticatedGroup *gin.RouterGroup, receiptHandler *handlers.ReceiptHandler) {
	receiptRoutes := authenticatedGroup.Group("/receipts")
	{
		receiptRoutes.POST("", receiptHandler.RecordReceipt)
		receiptRoutes.GET("", receiptHandler.GetReceiptLines)
	}
}

// SetupMaintenanceRoutes sets up the air-conditioning maintenance routes.
func SetupMaintenanceRoutes(authenticatedGroup *gin.RouterGroup, maintenanceHandler *handlers.MaintenanceHandler) {
	maintenanceRoutes := authenticatedGroup.Group("/maintenance-units")
	{
		maintenanceRoutes.POST("", maintenanceHandler.CreateUnit)
		maintenanceRoutes.GET("", maintenanceHandler.GetUnits)
		maintenanceRoutes.GET("/overview", maintenanceHandler.GetOverview)
		maintenanceRoutes.GET("/:id", maintenanceHandler.GetUnitByID)
		maintenanceRoutes.PUT("/:id", maintenanceHandler.UpdateUnit)
		maintenanceRoutes.DELETE("/:id", maintenanceHandler.DeleteUnit)
		maintenanceRoutes.POST("/:id/services", maintenanceHandler.RegisterService)
	}
}

// SetupReportRoutes sets up the closing report and ABC routes.
func SetupReportRoutes(authenticatedGroup *gin.RouterGroup, reportHandler *handlers.ReportHandler) {
	reportRoutes := authenticatedGroup.Group("/reports")
	{
		reportRoutes.GET("/closing", reportHandler.GetClosingReport)
		reportRoutes.GET("/closing/export", reportHandler.ExportClosingReport)
		reportRoutes.GET("/abc", reportHandler.GetABCClassification)
		reportRoutes.GET("/abc/export", reportHandler.ExportABCClassification)
	}
}

// SetupSettingRoutes sets up the application setting routes.
func SetupSettingRoutes(authenticatedGroup *gin.RouterGroup, settingHandler *handlers.SettingHandler) {
	settingRoutes := authenticatedGroup.Group("/settings")
	{
		settingRoutes.GET("", settingHandler.GetSettings)
		settingRoutes.GET("/:key", settingHandler.GetSettingByKey)
		settingRoutes.PUT("", settingHandler.UpsertSetting)
		settingRoutes.DELETE("/:key", settingHandler.DeleteSettingByKey)
	}
}
