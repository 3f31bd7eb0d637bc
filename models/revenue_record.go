package models

import "time"

// RevenueRecord is appended once per closed account and never mutated.
// Date keys the daily aggregate ("2006-01-02").
type RevenueRecord struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Total         float64   `gorm:"type:decimal(10,2);not null" json:"total"`
	PaymentMethod string    `gorm:"type:varchar(50);not null" json:"payment_method"`
	Date          string    `gorm:"type:varchar(10);not null;index" json:"date"`
	Time          string    `gorm:"type:varchar(8);not null" json:"time"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
}
