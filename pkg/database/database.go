package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"library-catalog/pkg/models"
)

// InitCatalogDB opens the catalog database and runs the idempotent schema
// migration. The default is an embedded SQLite file; set DB_DRIVER=postgres
// to run against a server instead.
func InitCatalogDB() *gorm.DB {
	driver := getEnv("DB_DRIVER", "sqlite")

	var db *gorm.DB
	var err error

	switch driver {
	case "sqlite":
		path := getEnv("DB_PATH", "LibraryCatalog.db")
		log.Printf("Opening catalog database: %s", path)
		db, err = gorm.Open(sqlite.Open(path), &gorm.Config{})
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
	case "postgres":
		host := getEnv("DB_HOST", "postgres")
		port := getEnv("DB_PORT", "5432")
		user := getEnv("DB_USER", "program")
		password := getEnv("DB_PASSWORD", "test")
		dbname := getEnv("DB_NAME", "catalog")

		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			host, user, password, dbname, port)

		log.Printf("Connecting to catalog database: %s@%s:%s/%s", user, host, port, dbname)

		maxRetries := 10
		for i := 0; i < maxRetries; i++ {
			db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
			if err == nil {
				break
			}
			log.Printf("Database connection attempt %d/%d failed: %v", i+1, maxRetries, err)
			if i < maxRetries-1 {
				time.Sleep(5 * time.Second)
			}
		}
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
	default:
		log.Fatalf("Unknown DB_DRIVER: %s", driver)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		log.Fatalf("Database ping failed: %v", err)
	}

	if err := db.AutoMigrate(&models.Category{}, &models.LibraryItem{}); err != nil {
		log.Fatalf("Database migration failed: %v", err)
	}

	log.Println("Database connection established successfully")
	return db
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
