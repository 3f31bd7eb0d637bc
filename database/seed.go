package database

import (
	"github.com/yeremiapane/rota600-pos/models"
	"github.com/yeremiapane/rota600-pos/utils"
	"gorm.io/gorm"
)

// TableCount is the fixed size of the floor. Tables 1..TableCount are
// created once and never deleted.
const TableCount = 50

// SeedTables inserts any missing table rows. Re-running it leaves existing
// tables untouched, so it is safe to call on every boot.
func SeedTables(db *gorm.DB) error {
	var existing int64
	if err := db.Model(&models.Table{}).Count(&existing).Error; err != nil {
		return err
	}

	for id := uint(1); id <= TableCount; id++ {
		table := models.Table{
			ID:          id,
			Status:      models.TableStatusEmpty,
			Consumption: 0,
		}
		if err := db.FirstOrCreate(&table, "id = ?", id).Error; err != nil {
			return err
		}
	}

	if existing < TableCount {
		utils.InfoLogger.Printf("Seeded tables: %d existing, floor size %d", existing, TableCount)
	}
	return nil
}
