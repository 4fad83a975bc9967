package port

//go:generate mockgen -source=product_port.go -destination=../mocks/mock_product_port.go

import (
	"context"

	"product-service/app/domain"
)

// ProductUsecase defines product management scoped to one owner
type ProductUsecase interface {
	ListProducts(ctx context.Context, userID int) ([]*domain.Product, error)
	GetProduct(ctx context.Context, userID, productID int) (*domain.Product, error)
	SearchProducts(ctx context.Context, userID int, filter domain.ProductFilter) ([]*domain.Product, error)
	CreateProduct(ctx context.Context, userID int, input domain.ProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, userID, productID int, input domain.ProductInput) error
	DeleteProduct(ctx context.Context, userID, productID int) error
}

// ProductRepository defines product data access backed by stored procedures
type ProductRepository interface {
	GetProducts(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error)
	SearchProducts(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error)
	// InsertProduct returns the new id, or 0 when the store created nothing.
	InsertProduct(ctx context.Context, userID int, input domain.ProductInput) (int, error)
	UpdateProduct(ctx context.Context, userID, productID int, input domain.ProductInput) (bool, error)
	DeleteProduct(ctx context.Context, userID, productID int) (bool, error)
}
