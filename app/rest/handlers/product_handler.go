package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"product-service/app/domain"
	"product-service/app/port"
	apperrors "product-service/app/utils/errors"
)

// ProductHandler serves the product catalogue of the authenticated user
type ProductHandler struct {
	products port.ProductUsecase
	logger   *slog.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(products port.ProductUsecase, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		products: products,
		logger:   logger.With("component", "product_handler"),
	}
}

// ProductRequest is the body of product create and update requests
type ProductRequest struct {
	Name  string  `json:"name" validate:"required"`
	Stock int     `json:"stock" validate:"gte=0"`
	Price float64 `json:"price" validate:"gte=0"`
}

func (r ProductRequest) input() domain.ProductInput {
	return domain.ProductInput{Name: r.Name, Stock: r.Stock, Price: r.Price}
}

// ProductFilterRequest is the body of POST /products/filter. Absent fields
// match every product.
type ProductFilterRequest struct {
	Name      *string    `json:"name"`
	Stock     *int       `json:"stock"`
	Price     *float64   `json:"price"`
	ID        *int       `json:"id"`
	CreatedAt *time.Time `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// MessageResponse carries a plain confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

// ListProducts returns every product owned by the caller
func (h *ProductHandler) ListProducts(c echo.Context) error {
	user, err := domain.GetUserFromContext(c.Request().Context())
	if err != nil {
		return err
	}

	products, err := h.products.ListProducts(c.Request().Context(), user.ID)
	if err != nil {
		return failWith(err, apperrors.MsgInternalError)
	}
	return c.JSON(http.StatusOK, nonNil(products))
}

// GetProduct returns one product owned by the caller
func (h *ProductHandler) GetProduct(c echo.Context) error {
	user, err := domain.GetUserFromContext(c.Request().Context())
	if err != nil {
		return err
	}

	productID, err := productIDParam(c)
	if err != nil {
		return err
	}

	product, err := h.products.GetProduct(c.Request().Context(), user.ID, productID)
	if err != nil {
		return failWith(err, apperrors.MsgInternalError)
	}
	return c.JSON(http.StatusOK, product)
}

// SearchProducts runs a partial-match search over the caller's products
func (h *ProductHandler) SearchProducts(c echo.Context) error {
	user, err := domain.GetUserFromContext(c.Request().Context())
	if err != nil {
		return err
	}

	var req ProductFilterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	products, err := h.products.SearchProducts(c.Request().Context(), user.ID, domain.ProductFilter{
		Name:      req.Name,
		Stock:     req.Stock,
		Price:     req.Price,
		ID:        req.ID,
		CreatedAt: req.CreatedAt,
		UpdatedAt: req.UpdatedAt,
	})
	if err != nil {
		return failWith(err, apperrors.MsgInternalError)
	}
	return c.JSON(http.StatusOK, nonNil(products))
}

// CreateProduct adds a product for the caller
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	user, err := domain.GetUserFromContext(c.Request().Context())
	if err != nil {
		return err
	}

	var req ProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	product, err := h.products.CreateProduct(c.Request().Context(), user.ID, req.input())
	if err != nil {
		return failWith(err, "Error registering product.")
	}

	return c.JSON(http.StatusCreated, product)
}

// UpdateProduct replaces the editable fields of one of the caller's products
func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	user, err := domain.GetUserFromContext(c.Request().Context())
	if err != nil {
		return err
	}

	productID, err := productIDParam(c)
	if err != nil {
		return err
	}

	var req ProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.products.UpdateProduct(c.Request().Context(), user.ID, productID, req.input()); err != nil {
		return failWith(err, "Error updating product.")
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Product Update"})
}

// DeleteProduct removes one of the caller's products
func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	user, err := domain.GetUserFromContext(c.Request().Context())
	if err != nil {
		return err
	}

	productID, err := productIDParam(c)
	if err != nil {
		return err
	}

	if err := h.products.DeleteProduct(c.Request().Context(), user.ID, productID); err != nil {
		return failWith(err, "Error deleting product.")
	}
	return c.NoContent(http.StatusNoContent)
}

func productIDParam(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrCodeValidationFailed, "id must be an integer", err)
	}
	return id, nil
}

func nonNil(products []*domain.Product) []*domain.Product {
	if products == nil {
		return []*domain.Product{}
	}
	return products
}
