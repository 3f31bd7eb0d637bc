package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/rota600-pos/config"
	"github.com/yeremiapane/rota600-pos/database"
	"github.com/yeremiapane/rota600-pos/models"
	"github.com/yeremiapane/rota600-pos/router"
	"github.com/yeremiapane/rota600-pos/utils"
	"gorm.io/gorm"
)

func init() {
	config.LoadEnv()
	utils.InitLogger()
}

func main() {
	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	utils.InitDB(db)

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)

	if err := database.SeedTables(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to seed tables: %v", err)
	}

	r := router.SetupRouter(db)
	r.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run("0.0.0.0:" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.Table{},
		&models.Product{},
		&models.OrderLine{},
		&models.RevenueRecord{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}
