package handlers

import (
	"productapi/internal/models"
	"productapi/internal/validation"

	"github.com/shopspring/decimal"
)

// Response envelopes. Success bodies carry "data", failures "error" or
// "errors", never both.

type ProductResponse struct {
	Data models.Product `json:"data"`
}

type ProductListResponse struct {
	Data []models.Product `json:"data"`
}

type MessageResponse struct {
	Data string `json:"data" example:"Producto eliminado"`
}

type ErrorResponse struct {
	Error string `json:"error" example:"Producto no encontrado"`
}

type ValidationErrorResponse struct {
	Errors []validation.FieldError `json:"errors"`
}

// ProductCreateRequest documents the body of POST /api/products.
type ProductCreateRequest struct {
	Name  string          `json:"name" maxLength:"100" example:"Monitor Curvo de 49 Pulgadas"`
	Price decimal.Decimal `json:"price" swaggertype:"number" example:"300"`
}

// ProductUpdateRequest documents the body of PUT /api/products/{id}.
type ProductUpdateRequest struct {
	Name         string          `json:"name" maxLength:"100" example:"Monitor Curvo de 49 Pulgadas"`
	Price        decimal.Decimal `json:"price" swaggertype:"number" example:"399"`
	Availability bool            `json:"availability" example:"true"`
}

// ProductAvailabilityRequest documents the body of PATCH /api/products/{id}.
type ProductAvailabilityRequest struct {
	Availability bool `json:"availability" example:"false"`
}
