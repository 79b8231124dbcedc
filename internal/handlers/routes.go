package handlers

import "productapi/internal/validation"

// Messages returned to clients.
const (
	msgProductNotFound = "Producto no encontrado"
	msgProductDeleted  = "Producto eliminado"
	msgAPIRoot         = "Desde la API"
)

// Column limits of the products table.
const (
	maxProductNameLength = 100
	maxProductPrice      = "99999999.99"
)

var productIDRules = []validation.Rule{
	validation.Param("id").IsInt("El valor tiene que ser numerico"),
	validation.Param("id").IsPositive("ID no valido"),
}

var productNameRules = []validation.Rule{
	validation.Body("name").NotEmpty("El nombre del producto es obligatorio"),
	validation.Body("name").MaxLength(maxProductNameLength, "El nombre del producto no puede superar los 100 caracteres"),
}

var productPriceRules = []validation.Rule{
	validation.Body("price").IsNumeric("Valor no valido"),
	validation.Body("price").NotEmpty("El precio del producto es obligatorio"),
	validation.Body("price").IsPositive("Precio no valido"),
	validation.Body("price").IsAtMost(maxProductPrice, "Precio no valido"),
}

var productAvailabilityRules = []validation.Rule{
	validation.Body("availability").IsBoolean("Valor para disponibilidad no valido"),
}

func concatRules(sets ...[]validation.Rule) []validation.Rule {
	var rules []validation.Rule
	for _, s := range sets {
		rules = append(rules, s...)
	}
	return rules
}

var (
	createProductRules = concatRules(productNameRules, productPriceRules)
	updateProductRules = concatRules(productNameRules, productPriceRules, productAvailabilityRules)
)
