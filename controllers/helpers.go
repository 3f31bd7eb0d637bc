package controllers

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/rota600-pos/hub"
	"github.com/yeremiapane/rota600-pos/models"
	"github.com/yeremiapane/rota600-pos/utils"
	"gorm.io/gorm"
)

// parseIDParam reads a positive integer path parameter.
func parseIDParam(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return uint(id), nil
}

// sumTableLines recomputes a table's total from its active lines.
func sumTableLines(tx *gorm.DB, tableID uint) (float64, error) {
	var total float64
	err := tx.Model(&models.OrderLine{}).
		Where("table_id = ?", tableID).
		Select("COALESCE(SUM(value), 0)").
		Scan(&total).Error
	return total, err
}

// broadcastTable republishes the global snapshot plus the line snapshot of
// one table. Called only after a committed mutation.
func broadcastTable(db *gorm.DB, tableID uint) {
	hub.PublishGlobalSnapshot(db)

	var lines []models.OrderLine
	if err := db.Where("table_id = ?", tableID).Find(&lines).Error; err != nil {
		utils.ErrorLogger.Printf("Reading lines of table %d for broadcast failed: %v", tableID, err)
		return
	}
	hub.PublishTableLines(tableID, lines)
}
