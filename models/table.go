package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Table statuses. A table starts empty, turns consuming when the first
// order line lands on it and closing once the bill has been requested.
const (
	TableStatusEmpty     = "empty"
	TableStatusConsuming = "consuming"
	TableStatusClosing   = "closing"
)

type Table struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Status      string    `gorm:"type:varchar(20);not null;default:'empty'" json:"status"`
	Consumption float64   `gorm:"type:decimal(10,2);not null;default:0.00" json:"consumption"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

// ValidTableStatus reports whether s is one of the known statuses.
func ValidTableStatus(s string) bool {
	switch s {
	case TableStatusEmpty, TableStatusConsuming, TableStatusClosing:
		return true
	}
	return false
}

// BeforeSave rejects status values outside the known set so a bad value
// never reaches the database.
func (t *Table) BeforeSave(tx *gorm.DB) error {
	if !ValidTableStatus(t.Status) {
		return fmt.Errorf("invalid table status %q", t.Status)
	}
	return nil
}
