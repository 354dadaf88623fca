package main

import (
	"log"
	"net/http"
	"os"
	"strings"

	"estoque_backend/internal/database"
	router_pkg "estoque_backend/internal/router"
	"estoque_backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	utils.LoadEnvFile("")
	utils.InitLogger()

	// Load database configuration from environment variables
	dbHost := utils.Getenv("DB_HOST", "localhost")
	dbPort := utils.Getenv("DB_PORT", "5432")
	dbUser := utils.Getenv("DB_USER", "estoque_user")
	dbPassword := utils.Getenv("DB_PASSWORD", "estoque_password")
	dbName := utils.Getenv("DB_NAME", "estoque_db")
	dbSSLMode := utils.Getenv("DB_SSLMODE", "disable")
	dbSchemaPath := utils.Getenv("DB_SCHEMA_PATH", "db/schema.sql")

	if err := database.InitDB(dbHost, dbPort, dbUser, dbPassword, dbName, dbSSLMode, dbSchemaPath); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	router := gin.Default()
	router.Use(utils.GinLogger())

	// CORS configuration
	corsAllowedOriginsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	var allowedOrigins []string
	if corsAllowedOriginsEnv != "" {
		allowedOrigins = strings.Split(corsAllowedOriginsEnv, ",")
	} else {
		allowedOrigins = []string{"http://localhost:3000", "http://localhost:3001"}
	}

	config := cors.DefaultConfig()
	config.AllowOrigins = allowedOrigins
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.AllowCredentials = true
	router.Use(cors.New(config))

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	if err := router_pkg.Setup(router, database.GetDB()); err != nil {
		log.Fatalf("Failed to set up routes: %v", err)
	}

	port := utils.Getenv("PORT", "8080")
	utils.LogInfo("Server starting", map[string]interface{}{"port": port})

	if err := router.Run(":" + port); err != nil {
		utils.LogError(err, "Failed to start server")
		log.Fatalf("Failed to start server: %v", err)
	}
}
