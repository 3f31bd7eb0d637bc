package router

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/rota600-pos/controllers"
	"github.com/yeremiapane/rota600-pos/middlewares"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())
	// must run before the routes are registered, or the handler chains
	// are built without it
	r.Use(middlewares.NewRateLimiter(50, 25).RateLimit())

	// Serve the waiter/cashier/kitchen pages when they sit next to the
	// binary; API-only deployments simply skip this.
	workDir, _ := os.Getwd()
	frontendPath := filepath.Join(workDir, "frontend")
	if _, err := os.Stat(frontendPath); err == nil {
		r.Static("/frontend", frontendPath)
		r.GET("/", func(c *gin.Context) {
			c.Redirect(http.StatusMovedPermanently, "/frontend/index.html")
		})
	}

	productCtrl := controllers.NewProductController(db)
	tableCtrl := controllers.NewTableController(db)
	orderCtrl := controllers.NewOrderController(db)
	billingCtrl := controllers.NewBillingController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Live updates for every connected display
	r.GET("/ws", controllers.WSHandler)

	// TABLES
	r.GET("/tables", tableCtrl.GetAllTables)
	r.POST("/tables/:table_id/reset", tableCtrl.ResetTable)

	// ORDER LINES
	r.GET("/tables/:table_id/lines", orderCtrl.GetTableLines)
	r.POST("/tables/:table_id/lines", orderCtrl.AddLine)
	r.DELETE("/tables/:table_id/lines/:line_id", orderCtrl.RemoveLine)
	r.POST("/tables/:table_id/close-request", orderCtrl.RequestClosing)

	// BILLING
	r.POST("/tables/:table_id/finalize", billingCtrl.FinalizeAccount)

	// CATALOG
	r.GET("/products", productCtrl.GetAllProducts)
	r.POST("/products", productCtrl.SaveProduct)

	return r
}
