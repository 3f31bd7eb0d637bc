package models

import "time"

type Product struct {
	ID    uint    `gorm:"primaryKey" json:"id"`
	Name  string  `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
	Price float64 `gorm:"type:decimal(10,2);not null" json:"price"`
	// Stock is decremented on every sale, floored at zero. Frozen products
	// (draft beer, self-service items) skip stock tracking entirely.
	Stock     int       `gorm:"not null;default:0" json:"stock"`
	Category  string    `gorm:"type:varchar(100)" json:"category"`
	Frozen    bool      `gorm:"not null;default:false" json:"frozen"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
