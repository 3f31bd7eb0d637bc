package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// LoadEnv reads the .env file if one is present next to the binary.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}
}

// InitDB opens the database selected by DB_DRIVER/DB_DSN. The default is
// the on-disk SQLite file the system ships with; MySQL is available for
// multi-terminal deployments that outgrow it.
func InitDB() (*gorm.DB, error) {
	driver := os.Getenv("DB_DRIVER")
	dsn := os.Getenv("DB_DSN")

	switch driver {
	case "mysql":
		if dsn == "" {
			dsn = "root:@tcp(127.0.0.1:3306)/rota600?charset=utf8mb4&parseTime=True&loc=Local"
		}
		return gorm.Open(mysql.Open(dsn), &gorm.Config{})
	default:
		if dsn == "" {
			dsn = "database.sqlite"
		}
		return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	}
}
