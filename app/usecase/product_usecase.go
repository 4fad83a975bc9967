package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"product-service/app/domain"
	"product-service/app/port"
)

// ProductUseCase implements product management for a single owner
type ProductUseCase struct {
	products port.ProductRepository
	logger   *slog.Logger
}

// NewProductUseCase creates a new ProductUseCase instance
func NewProductUseCase(products port.ProductRepository, logger *slog.Logger) *ProductUseCase {
	return &ProductUseCase{
		products: products,
		logger:   logger.With("component", "product_usecase"),
	}
}

// ListProducts returns every product owned by userID
func (uc *ProductUseCase) ListProducts(ctx context.Context, userID int) ([]*domain.Product, error) {
	return uc.products.GetProducts(ctx, domain.ProductsOwnedBy(userID))
}

// GetProduct returns one product of userID, or ErrProductNotFound
func (uc *ProductUseCase) GetProduct(ctx context.Context, userID, productID int) (*domain.Product, error) {
	products, err := uc.products.GetProducts(ctx, domain.ProductOwnedBy(userID, productID))
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, domain.ErrProductNotFound
	}
	return products[0], nil
}

// SearchProducts runs filter scoped to userID regardless of filter.UserID.
func (uc *ProductUseCase) SearchProducts(ctx context.Context, userID int, filter domain.ProductFilter) ([]*domain.Product, error) {
	filter.UserID = &userID
	return uc.products.SearchProducts(ctx, filter)
}

// CreateProduct stores a product whose name is unique for userID and
// returns it as persisted.
func (uc *ProductUseCase) CreateProduct(ctx context.Context, userID int, input domain.ProductInput) (*domain.Product, error) {
	taken, err := uc.nameTaken(ctx, userID, input.Name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrProductAlreadyExists
	}

	id, err := uc.products.InsertProduct(ctx, userID, input)
	if err != nil {
		return nil, err
	}
	if id == 0 {
		return nil, fmt.Errorf("failed to register product: %w", domain.ErrPersistenceFailed)
	}

	uc.logger.Info("product created", "user_id", userID, "product_id", id)
	return uc.GetProduct(ctx, userID, id)
}

// UpdateProduct replaces a product. Renaming onto another product of the
// same owner is rejected.
func (uc *ProductUseCase) UpdateProduct(ctx context.Context, userID, productID int, input domain.ProductInput) error {
	existing, err := uc.GetProduct(ctx, userID, productID)
	if err != nil {
		return err
	}

	if input.Name != existing.Name {
		taken, err := uc.nameTaken(ctx, userID, input.Name)
		if err != nil {
			return err
		}
		if taken {
			return domain.ErrProductNameTaken
		}
	}

	updated, err := uc.products.UpdateProduct(ctx, userID, productID, input)
	if err != nil {
		return err
	}
	if !updated {
		return fmt.Errorf("failed to update product: %w", domain.ErrPersistenceFailed)
	}
	return nil
}

// DeleteProduct removes a product owned by userID
func (uc *ProductUseCase) DeleteProduct(ctx context.Context, userID, productID int) error {
	if _, err := uc.GetProduct(ctx, userID, productID); err != nil {
		return err
	}

	deleted, err := uc.products.DeleteProduct(ctx, userID, productID)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("failed to delete product: %w", domain.ErrPersistenceFailed)
	}

	uc.logger.Info("product deleted", "user_id", userID, "product_id", productID)
	return nil
}

func (uc *ProductUseCase) nameTaken(ctx context.Context, userID int, name string) (bool, error) {
	products, err := uc.products.GetProducts(ctx, domain.ProductFilter{Name: &name, UserID: &userID})
	if err != nil {
		return false, err
	}
	return len(products) > 0, nil
}
