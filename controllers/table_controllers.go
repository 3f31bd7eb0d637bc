package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/rota600-pos/hub"
	"github.com/yeremiapane/rota600-pos/locks"
	"github.com/yeremiapane/rota600-pos/models"
	"github.com/yeremiapane/rota600-pos/utils"
	"gorm.io/gorm"
)

type TableController struct {
	DB *gorm.DB
}

func NewTableController(db *gorm.DB) *TableController {
	return &TableController{DB: db}
}

// GetAllTables -> the whole floor ordered by table id.
func (tc *TableController) GetAllTables(c *gin.Context) {
	var tables []models.Table
	if err := tc.DB.Order("id asc").Find(&tables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// ResetTable -> cashier action: drop every line, zero the total and put
// the table back to empty, without recording any revenue.
func (tc *TableController) ResetTable(c *gin.Context) {
	tableID, err := parseIDParam(c, "table_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	locks.LockTable(tableID)
	defer locks.UnlockTable(tableID)

	var table models.Table
	if err := tc.DB.First(&table, tableID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("table %d not found", tableID))
		return
	}

	err = tc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("table_id = ?", tableID).Delete(&models.OrderLine{}).Error; err != nil {
			return err
		}
		table.Status = models.TableStatusEmpty
		table.Consumption = 0
		return tx.Save(&table).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	hub.PublishGlobalSnapshot(tc.DB)
	hub.PublishTableLines(tableID, nil)
	utils.InfoLogger.Printf("Table %d reset", tableID)
	utils.RespondJSON(c, http.StatusOK, "Table reset", table)
}
