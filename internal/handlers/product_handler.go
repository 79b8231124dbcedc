package handlers

import (
	"errors"

	"productapi/internal/middleware"
	"productapi/internal/models"
	"productapi/internal/repositories"
	"productapi/internal/services"
	"productapi/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
	logger  *zap.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, logger *zap.Logger) *ProductHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers the product routes. Routes addressing one product
// gate on the id before any body rule runs.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	validID := []fiber.Handler{validation.Validate(productIDRules...), middleware.HandleInputErrors}

	products := router.Group("/products")
	products.Get("/", h.HandleGetProducts)
	products.Get("/:id", append(validID, h.HandleGetProductByID)...)
	products.Post("/",
		validation.Validate(createProductRules...),
		middleware.HandleInputErrors,
		h.HandleCreateProduct,
	)
	products.Put("/:id", append(validID,
		validation.Validate(updateProductRules...),
		middleware.HandleInputErrors,
		h.HandleUpdateProduct,
	)...)
	products.Patch("/:id", append(validID,
		validation.Validate(productAvailabilityRules...),
		middleware.HandleInputErrors,
		h.HandleUpdateAvailability,
	)...)
	products.Delete("/:id", append(validID, h.HandleDeleteProduct)...)
}

// HandleGetProducts retrieves all products.
//
//	@Summary	List products
//	@Tags		Products
//	@Produce	json
//	@Success	200	{object}	ProductListResponse
//	@Router		/api/products [get]
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(ProductListResponse{Data: products})
}

// HandleGetProductByID retrieves a single product by its ID.
//
//	@Summary	Get a product by ID
//	@Tags		Products
//	@Produce	json
//	@Param		id	path		int	true	"Product ID"
//	@Success	200	{object}	ProductResponse
//	@Failure	400	{object}	ValidationErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/api/products/{id} [get]
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return err
	}
	product, err := h.service.GetProductByID(c.UserContext(), id)
	if err != nil {
		return h.productError(c, err)
	}
	return c.JSON(ProductResponse{Data: *product})
}

// HandleCreateProduct creates a new product.
//
//	@Summary	Create a product
//	@Tags		Products
//	@Accept		json
//	@Produce	json
//	@Param		product	body		ProductCreateRequest	true	"Product data"
//	@Success	201		{object}	ProductResponse
//	@Failure	400		{object}	ValidationErrorResponse
//	@Router		/api/products [post]
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	attrs, err := productAttributes(c, false)
	if err != nil {
		return err
	}
	product, err := h.service.CreateProduct(c.UserContext(), attrs)
	if err != nil {
		return err
	}
	h.logger.Debug("product created", zap.Uint("id", product.ID))
	return c.Status(fiber.StatusCreated).JSON(ProductResponse{Data: *product})
}

// HandleUpdateProduct overwrites name, price and availability of a product.
//
//	@Summary	Update a product
//	@Tags		Products
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int						true	"Product ID"
//	@Param		product	body		ProductUpdateRequest	true	"Product data"
//	@Success	200		{object}	ProductResponse
//	@Failure	400		{object}	ValidationErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Router		/api/products/{id} [put]
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return err
	}
	attrs, err := productAttributes(c, true)
	if err != nil {
		return err
	}
	product, err := h.service.UpdateProduct(c.UserContext(), id, attrs)
	if err != nil {
		return h.productError(c, err)
	}
	return c.JSON(ProductResponse{Data: *product})
}

// HandleUpdateAvailability sets the availability of a product.
//
//	@Summary	Update product availability
//	@Tags		Products
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int							true	"Product ID"
//	@Param		product	body		ProductAvailabilityRequest	true	"New availability"
//	@Success	200		{object}	ProductResponse
//	@Failure	400		{object}	ValidationErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Router		/api/products/{id} [patch]
func (h *ProductHandler) HandleUpdateAvailability(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return err
	}
	in, err := validation.InputFrom(c)
	if err != nil {
		return err
	}
	availability, err := in.Bool("availability")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	product, err := h.service.UpdateAvailability(c.UserContext(), id, availability)
	if err != nil {
		return h.productError(c, err)
	}
	return c.JSON(ProductResponse{Data: *product})
}

// HandleDeleteProduct deletes a product by its ID.
//
//	@Summary	Delete a product
//	@Tags		Products
//	@Produce	json
//	@Param		id	path		int	true	"Product ID"
//	@Success	200	{object}	MessageResponse
//	@Failure	400	{object}	ValidationErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/api/products/{id} [delete]
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteProduct(c.UserContext(), id); err != nil {
		return h.productError(c, err)
	}
	return c.JSON(MessageResponse{Data: msgProductDeleted})
}

// productError answers 404 for a missing product and hands anything else to
// the app's error handler.
func (h *ProductHandler) productError(c *fiber.Ctx, err error) error {
	if errors.Is(err, repositories.ErrProductNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: msgProductNotFound})
	}
	return err
}

func productID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "ID no valido")
	}
	return uint(id), nil
}

func productAttributes(c *fiber.Ctx, withAvailability bool) (models.ProductAttributes, error) {
	in, err := validation.InputFrom(c)
	if err != nil {
		return models.ProductAttributes{}, err
	}
	price, err := in.Decimal("price")
	if err != nil {
		return models.ProductAttributes{}, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	attrs := models.ProductAttributes{Name: in.String("name"), Price: price.Round(2), Availability: true}
	if withAvailability {
		if attrs.Availability, err = in.Bool("availability"); err != nil {
			return models.ProductAttributes{}, fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
	}
	return attrs, nil
}
