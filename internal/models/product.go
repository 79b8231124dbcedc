package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a product in the catalogue.
type Product struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	Name         string          `json:"name" gorm:"type:varchar(100);not null"`
	Price        decimal.Decimal `json:"price" gorm:"type:numeric(10,2);not null"`
	Availability bool            `json:"availability" gorm:"not null;default:true"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// ProductAttributes holds the client-supplied fields of a product.
type ProductAttributes struct {
	Name         string
	Price        decimal.Decimal
	Availability bool
}
