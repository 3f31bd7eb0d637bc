package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yeremiapane/rota600-pos/models"
)

func TestAddLineFirstLineStartsConsumption(t *testing.T) {
	db := setupTestDB(t)
	seedTable(t, db, 5, models.TableStatusEmpty, 0)
	db.Create(&models.Product{Name: "Coke", Price: 5.00, Stock: 20, Category: "Drinks"})

	r := setupRouter(db)
	w := performRequest(r, "POST", "/tables/5/lines", map[string]interface{}{
		"product_name": "Coke",
		"unit_price":   5.00,
		"quantity":     2,
		"note":         "",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var table models.Table
	assert.NoError(t, db.First(&table, 5).Error)
	assert.Equal(t, models.TableStatusConsuming, table.Status)
	assert.Equal(t, 10.00, table.Consumption)

	var product models.Product
	assert.NoError(t, db.Where("name = ?", "Coke").First(&product).Error)
	assert.Equal(t, 18, product.Stock)

	var line models.OrderLine
	assert.NoError(t, db.Where("table_id = ?", 5).First(&line).Error)
	assert.Equal(t, 10.00, line.Value)
	assert.Equal(t, 2, line.Quantity)
	assert.Equal(t, "Coke", line.ProductName)
}

func TestAddLineStockFloorsAtZero(t *testing.T) {
	db := setupTestDB(t)
	seedTable(t, db, 1, models.TableStatusEmpty, 0)
	db.Create(&models.Product{Name: "Fries", Price: 8.00, Stock: 1, Category: "Sides"})

	r := setupRouter(db)
	w := performRequest(r, "POST", "/tables/1/lines", map[string]interface{}{
		"product_name": "Fries",
		"unit_price":   8.00,
		"quantity":     3,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var product models.Product
	assert.NoError(t, db.Where("name = ?", "Fries").First(&product).Error)
	assert.Equal(t, 0, product.Stock)
}

func TestAddLineStockFollowsSalesAcrossTables(t *testing.T) {
	db := setupTestDB(t)
	seedTable(t, db, 1, models.TableStatusEmpty, 0)
	seedTable(t, db, 2, models.TableStatusEmpty, 0)
	db.Create(&models.Product{Name: "Coke", Price: 5.00, Stock: 5, Category: "Drinks"})

	r := setupRouter(db)
	for _, tableID := range []int{1, 2} {
		w := performRequest(r, "POST", fmt.Sprintf("/tables/%d/lines", tableID), map[string]interface{}{
			"product_name": "Coke",
			"unit_price":   5.00,
			"quantity":     2,
		})
		assert.Equal(t, http.StatusCreated, w.Code)
	}

	var product models.Product
	assert.NoError(t, db.Where("name = ?", "Coke").First(&product).Error)
	assert.Equal(t, 1, product.Stock)

	// a third sale larger than the remainder empties the stock
	w := performRequest(r, "POST", "/tables/1/lines", map[string]interface{}{
		"product_name": "Coke",
		"unit_price":   5.00,
		"quantity":     2,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NoError(t, db.Where("name = ?", "Coke").First(&product).Error)
	assert.Equal(t, 0, product.Stock)
}

func TestAddLineFrozenProductKeepsStock(t *testing.T) {
	db := setupTestDB(t)
	seedTable(t, db, 2, models.TableStatusEmpty, 0)
	db.Create(&models.Product{Name: "Draft Beer", Price: 6.00, Stock: 10, Frozen: true})

	r := setupRouter(db)
	w := performRequest(r, "POST", "/tables/2/lines", map[string]interface{}{
		"product_name": "Draft Beer",
		"unit_price":   6.00,
		"quantity":     4,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var product models.Product
	assert.NoError(t, db.Where("name = ?", "Draft Beer").First(&product).Error)
	assert.Equal(t, 10, product.Stock)
}

func TestAddLineUnknownProductStillRecordsSale(t *testing.T) {
	db := setupTestDB(t)
	seedTable(t, db, 3, models.TableStatusEmpty, 0)

	r := setupRouter(db)
	w := performRequest(r, "POST", "/tables/3/lines", map[string]interface{}{
		"product_name": "Off-menu special",
		"unit_price":   12.50,
		"quantity":     1,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var table models.Table
	assert.NoError(t, db.First(&table, 3).Error)
	assert.Equal(t, 12.50, table.Consumption)
}

func TestAddLineUnknownTableIsNoOp(t *testing.T) {
	db := setupTestDB(t)

	r := setupRouter(db)
	w := performRequest(r, "POST", "/tables/99/lines", map[string]interface{}{
		"product_name": "Coke",
		"unit_price":   5.00,
		"quantity":     1,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	var count int64
	db.Model(&models.OrderLine{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestAddLineRejectedWhileClosing(t *testing.T) {
	db := setupTestDB(t)
	seedTable(t, db, 4, models.TableStatusClosing, 25.00)

	r := setupRouter(db)
	w := performRequest(r, "POST", "/tables/4/lines", map[string]interface{}{
		"product_name": "Coke",
		"unit_price":   5.00,
		"quantity":     1,
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	var count int64
	db.Model(&models.OrderLine{}).Where("table_id = ?", 4).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestAddLineConsumptionMatchesLineSum(t *testing.T) {
	db := setupTestDB(t)
	seedTable(t, db, 6, models.TableStatusEmpty, 0)

	r := setupRouter(db)
	for i := 1; i <= 3; i++ {
		w := performRequest(r, "POST", "/tables/6/lines", map[string]interface{}{
			"product_name": fmt.Sprintf("Item %d", i),
			"unit_price":   float64(i) * 2.5,
			"quantity":     i,
		})
		assert.Equal(t, http.StatusCreated, w.Code)
	}

	var total float64
	db.Model(&models.OrderLine{}).Where("table_id = ?", 6).
		Select("COALESCE(SUM(value), 0)").Scan(&total)

	var table models.Table
	assert.NoError(t, db.First(&table, 6).Error)
	assert.Equal(t, total, table.Consumption)
}

func TestRemoveLastLineEmptiesTable(t *testing.T) {
	db := setupTestDB(t)
	seedTable(t, db, 5, models.TableStatusConsuming, 10.00)
	line := models.OrderLine{TableID: 5, ProductName: "Coke", Value: 10.00, Quantity: 2}
	db.Create(&line)

	r := setupRouter(db)
	w := performRequest(r, "DELETE", fmt.Sprintf("/tables/5/lines/%d", line.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var table models.Table
	assert.NoError(t, db.First(&table, 5).Error)
	assert.Equal(t, models.TableStatusEmpty, table.Status)
	assert.Equal(t, 0.00, table.Consumption)

	var count int64
	db.Model(&models.OrderLine{}).Where("table_id = ?", 5).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestRemoveLineKeepsStatusWhileLinesRemain(t *testing.T) {
	db := setupTestDB(t)
	seedTable(t, db, 7, models.TableStatusClosing, 18.00)
	keep := models.OrderLine{TableID: 7, ProductName: "Burger", Value: 12.00, Quantity: 1}
	drop := models.OrderLine{TableID: 7, ProductName: "Coke", Value: 6.00, Quantity: 1}
	db.Create(&keep)
	db.Create(&drop)

	r := setupRouter(db)
	w := performRequest(r, "DELETE", fmt.Sprintf("/tables/7/lines/%d", drop.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var table models.Table
	assert.NoError(t, db.First(&table, 7).Error)
	assert.Equal(t, models.TableStatusClosing, table.Status)
	assert.Equal(t, 12.00, table.Consumption)
}

func TestRemoveLineWrongTableIsNoOp(t *testing.T) {
	db := setupTestDB(t)
	seedTable(t, db, 8, models.TableStatusConsuming, 5.00)
	seedTable(t, db, 9, models.TableStatusConsuming, 7.00)
	line := models.OrderLine{TableID: 9, ProductName: "Coke", Value: 7.00, Quantity: 1}
	db.Create(&line)

	r := setupRouter(db)
	w := performRequest(r, "DELETE", fmt.Sprintf("/tables/8/lines/%d", line.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var count int64
	db.Model(&models.OrderLine{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestRequestClosing(t *testing.T) {
	db := setupTestDB(t)
	seedTable(t, db, 10, models.TableStatusConsuming, 33.00)

	r := setupRouter(db)
	w := performRequest(r, "POST", "/tables/10/close-request", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var table models.Table
	assert.NoError(t, db.First(&table, 10).Error)
	assert.Equal(t, models.TableStatusClosing, table.Status)
	// pure status write, the total stays
	assert.Equal(t, 33.00, table.Consumption)
}

func TestRequestClosingOnEmptyTableRejected(t *testing.T) {
	db := setupTestDB(t)
	seedTable(t, db, 11, models.TableStatusEmpty, 0)

	r := setupRouter(db)
	w := performRequest(r, "POST", "/tables/11/close-request", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	var table models.Table
	assert.NoError(t, db.First(&table, 11).Error)
	assert.Equal(t, models.TableStatusEmpty, table.Status)
}

func TestGetTableLines(t *testing.T) {
	db := setupTestDB(t)
	seedTable(t, db, 12, models.TableStatusConsuming, 15.00)
	db.Create(&models.OrderLine{TableID: 12, ProductName: "Coke", Value: 5.00, Quantity: 1})
	db.Create(&models.OrderLine{TableID: 12, ProductName: "Fries", Value: 10.00, Quantity: 1})

	r := setupRouter(db)
	w := performRequest(r, "GET", "/tables/12/lines", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	response := decodeResponse(t, w)
	data := response["data"].(map[string]interface{})
	lines := data["lines"].([]interface{})
	assert.Len(t, lines, 2)
}
