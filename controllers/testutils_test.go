package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/rota600-pos/controllers"
	"github.com/yeremiapane/rota600-pos/models"
	"github.com/yeremiapane/rota600-pos/utils"
)

// setupTestDB opens a per-test in-memory SQLite database and migrates the
// four core models.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	utils.InitLogger()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&models.Table{},
		&models.Product{},
		&models.OrderLine{},
		&models.RevenueRecord{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

// setupRouter registers the same routes the production router wires, minus
// static serving and middlewares.
func setupRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	productCtrl := controllers.NewProductController(db)
	tableCtrl := controllers.NewTableController(db)
	orderCtrl := controllers.NewOrderController(db)
	billingCtrl := controllers.NewBillingController(db)

	r.GET("/tables", tableCtrl.GetAllTables)
	r.POST("/tables/:table_id/reset", tableCtrl.ResetTable)
	r.GET("/tables/:table_id/lines", orderCtrl.GetTableLines)
	r.POST("/tables/:table_id/lines", orderCtrl.AddLine)
	r.DELETE("/tables/:table_id/lines/:line_id", orderCtrl.RemoveLine)
	r.POST("/tables/:table_id/close-request", orderCtrl.RequestClosing)
	r.POST("/tables/:table_id/finalize", billingCtrl.FinalizeAccount)
	r.GET("/products", productCtrl.GetAllProducts)
	r.POST("/products", productCtrl.SaveProduct)

	return r
}

func seedTable(t *testing.T, db *gorm.DB, id uint, status string, consumption float64) models.Table {
	t.Helper()
	table := models.Table{ID: id, Status: status, Consumption: consumption}
	if err := db.Create(&table).Error; err != nil {
		t.Fatalf("failed to seed table %d: %v", id, err)
	}
	return table
}

func performRequest(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf *bytes.Buffer
	if body != nil {
		payload, _ := json.Marshal(body)
		buf = bytes.NewBuffer(payload)
	} else {
		buf = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return response
}
