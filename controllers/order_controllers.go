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

type OrderController struct {
	DB *gorm.DB
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{DB: db}
}

// GetTableLines -> current lines of one table, insertion order.
func (oc *OrderController) GetTableLines(c *gin.Context) {
	tableID, err := parseIDParam(c, "table_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var lines []models.OrderLine
	if err := oc.DB.Where("table_id = ?", tableID).Find(&lines).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Table lines", gin.H{
		"table_id": tableID,
		"lines":    lines,
	})
}

// AddLine -> records a sale on a table. Inserts the line, decrements stock
// of the matching product (frozen products excluded, floored at zero) and
// recomputes the table total, all in one transaction under the table lock.
// Tables in closing status refuse new lines until reset or finalized.
func (oc *OrderController) AddLine(c *gin.Context) {
	tableID, err := parseIDParam(c, "table_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var req struct {
		ProductName string  `json:"product_name" binding:"required"`
		UnitPrice   float64 `json:"unit_price" binding:"gte=0"`
		Quantity    int     `json:"quantity" binding:"required,gt=0"`
		Note        string  `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	locks.LockTable(tableID)
	defer locks.UnlockTable(tableID)

	var table models.Table
	if err := oc.DB.First(&table, tableID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("table %d not found", tableID))
		return
	}
	if table.Status == models.TableStatusClosing {
		utils.RespondError(c, http.StatusConflict,
			fmt.Errorf("table %d is closing, no new lines until it is reset or finalized", tableID))
		return
	}

	line := models.OrderLine{
		TableID:     tableID,
		ProductName: req.ProductName,
		Value:       req.UnitPrice * float64(req.Quantity),
		Quantity:    req.Quantity,
		Note:        req.Note,
	}

	err = oc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&line).Error; err != nil {
			return err
		}

		// Stock follows the sale when the product is tracked by name.
		// Guarded single-statement updates keep the decrement atomic when
		// the same product sells concurrently from different tables: a
		// sale bigger than the remaining stock empties it, anything else
		// subtracts in place. The two conditions never match the same row.
		if err := tx.Model(&models.Product{}).
			Where("name = ? AND frozen = ? AND stock < ?", req.ProductName, false, req.Quantity).
			Update("stock", 0).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Product{}).
			Where("name = ? AND frozen = ? AND stock >= ?", req.ProductName, false, req.Quantity).
			Update("stock", gorm.Expr("stock - ?", req.Quantity)).Error; err != nil {
			return err
		}

		total, err := sumTableLines(tx, tableID)
		if err != nil {
			return err
		}
		table.Consumption = total
		table.Status = models.TableStatusConsuming
		return tx.Save(&table).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	broadcastTable(oc.DB, tableID)
	utils.InfoLogger.Printf("Line added to table %d: %s x%d (%s)",
		tableID, req.ProductName, req.Quantity, utils.FormatCurrency(line.Value))
	utils.RespondJSON(c, http.StatusCreated, "Order line added", line)
}

// RemoveLine -> deletes one line and recomputes the table total. A table
// whose total reaches exactly zero drops back to empty; otherwise its
// status is left as is.
func (oc *OrderController) RemoveLine(c *gin.Context) {
	tableID, err := parseIDParam(c, "table_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	lineID, err := parseIDParam(c, "line_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	locks.LockTable(tableID)
	defer locks.UnlockTable(tableID)

	var table models.Table
	if err := oc.DB.First(&table, tableID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("table %d not found", tableID))
		return
	}

	var line models.OrderLine
	if err := oc.DB.Where("id = ? AND table_id = ?", lineID, tableID).First(&line).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("line %d not found on table %d", lineID, tableID))
		return
	}

	err = oc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.OrderLine{}, line.ID).Error; err != nil {
			return err
		}

		total, err := sumTableLines(tx, tableID)
		if err != nil {
			return err
		}
		table.Consumption = total
		if total == 0 {
			table.Status = models.TableStatusEmpty
		}
		return tx.Save(&table).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	broadcastTable(oc.DB, tableID)
	utils.InfoLogger.Printf("Line %d removed from table %d (total now %s)",
		lineID, tableID, utils.FormatCurrency(table.Consumption))
	utils.RespondJSON(c, http.StatusOK, "Order line removed", table)
}

// RequestClosing -> flags a consuming table as waiting for the bill. Pure
// status write, lines and total untouched.
func (oc *OrderController) RequestClosing(c *gin.Context) {
	tableID, err := parseIDParam(c, "table_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	locks.LockTable(tableID)
	defer locks.UnlockTable(tableID)

	var table models.Table
	if err := oc.DB.First(&table, tableID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("table %d not found", tableID))
		return
	}
	if table.Status != models.TableStatusConsuming {
		utils.RespondError(c, http.StatusConflict,
			fmt.Errorf("table %d is %s, only a consuming table can request closing", tableID, table.Status))
		return
	}

	table.Status = models.TableStatusClosing
	if err := oc.DB.Save(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	hub.PublishGlobalSnapshot(oc.DB)
	utils.InfoLogger.Printf("Table %d requested closing (total %s)",
		tableID, utils.FormatCurrency(table.Consumption))
	utils.RespondJSON(c, http.StatusOK, "Closing requested", table)
}
