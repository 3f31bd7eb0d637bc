package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/rota600-pos/hub"
	"github.com/yeremiapane/rota600-pos/locks"
	"github.com/yeremiapane/rota600-pos/models"
	"github.com/yeremiapane/rota600-pos/utils"
	"gorm.io/gorm"
)

type BillingController struct {
	DB *gorm.DB
}

func NewBillingController(db *gorm.DB) *BillingController {
	return &BillingController{DB: db}
}

// FinalizeAccount -> closes a table's account: appends the daily revenue
// record, drops the table's lines and resets it, in one transaction under
// the table lock. The charged total comes from the cashier and may differ
// from the ledger total (discounts); a divergence is logged, not rejected.
func (bc *BillingController) FinalizeAccount(c *gin.Context) {
	tableID, err := parseIDParam(c, "table_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var req struct {
		Total         float64 `json:"total" binding:"gte=0"`
		PaymentMethod string  `json:"payment_method" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	locks.LockTable(tableID)
	defer locks.UnlockTable(tableID)

	var table models.Table
	if err := bc.DB.First(&table, tableID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("table %d not found", tableID))
		return
	}
	ledgerTotal := table.Consumption

	now := time.Now()
	record := models.RevenueRecord{
		Total:         req.Total,
		PaymentMethod: req.PaymentMethod,
		Date:          now.Format("2006-01-02"),
		Time:          now.Format("15:04:05"),
	}

	err = bc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
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

	hub.PublishGlobalSnapshot(bc.DB)
	hub.PublishTableLines(tableID, nil)

	if ledgerTotal != req.Total {
		utils.InfoLogger.Printf("Table %d charged %s against a ledger total of %s",
			tableID, utils.FormatCurrency(req.Total), utils.FormatCurrency(ledgerTotal))
	}
	utils.InfoLogger.Printf("Account finalized for table %d: %s via %s",
		tableID, utils.FormatCurrency(record.Total), record.PaymentMethod)
	utils.RespondJSON(c, http.StatusCreated, "Account finalized", record)
}
