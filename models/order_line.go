package models

import "time"

type OrderLine struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	TableID uint `gorm:"not null;index" json:"table_id"`
	// ProductName is a copy of the product's name at the time of the sale,
	// not a foreign key. Renaming a product must not rewrite old lines.
	ProductName string    `gorm:"type:varchar(255);not null" json:"product_name"`
	Value       float64   `gorm:"type:decimal(10,2);not null" json:"value"`
	Quantity    int       `gorm:"not null;default:1" json:"quantity"`
	Note        string    `gorm:"type:text" json:"note"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}
