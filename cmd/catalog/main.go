package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"library-catalog/pkg/catalog"
	"library-catalog/pkg/database"
)

var (
	db         *gorm.DB
	categories *catalog.CategoryStore
	items      *catalog.ItemStore
)

func main() {
	log.Println("Starting catalog service...")

	db = database.InitCatalogDB()
	categories = catalog.NewCategoryStore(db)
	items = catalog.NewItemStore(db)

	server := gin.New()
	server.Use(requestLogger(), gin.Recovery())

	server.GET("/", hello)

	server.GET("/categories", getCategories)
	server.GET("/categories/:id", getCategory)
	server.POST("/categories", createCategory)
	server.PUT("/categories/:id", updateCategory)
	server.DELETE("/categories/:id", deleteCategory)
	server.GET("/categories/:id/items", getCategoryItems)

	server.GET("/libraryitems", getLibraryItems)
	server.GET("/libraryitems/:id", getLibraryItem)
	server.POST("/libraryitems", createLibraryItem)
	server.PUT("/libraryitems/:id", updateLibraryItem)
	server.POST("/libraryitems/:id/borrow", borrowLibraryItem)
	server.POST("/libraryitems/:id/return", returnLibraryItem)
	server.DELETE("/libraryitems/:id", deleteLibraryItem)

	server.GET("/manage/health", healthCheck)

	port := getEnv("PORT", "8080")
	log.Printf("Catalog service starting on :%s", port)
	if err := server.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.New().String()
		c.Set("requestID", requestID)
		start := time.Now()
		log.Printf("[%s %s %s] Started.", c.Request.Method, c.Request.URL.Path, requestID)
		c.Next()
		log.Printf("[%s %s %s] Finished with %d in %v.",
			c.Request.Method, c.Request.URL.Path, requestID, c.Writer.Status(), time.Since(start))
	}
}

func hello(c *gin.Context) {
	c.String(http.StatusOK, "Hello World!")
}

func healthCheck(c *gin.Context) {
	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "DOWN",
			"details": "Database connection failed",
			"error":   err.Error(),
		})
		return
	}
	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "DOWN",
			"details": "Database ping failed",
			"error":   err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "UP"})
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
