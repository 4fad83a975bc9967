package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"product-service/app/domain"
	"product-service/app/port"
)

const (
	productColumns = `id, name, stock, price::FLOAT8, user_id, created_at, updated_at`

	getProductsQuery = `
		SELECT ` + productColumns + `
		FROM get_products($1::TEXT, $2::INTEGER, $3::NUMERIC, $4::INTEGER, $5::TIMESTAMPTZ, $6::TIMESTAMPTZ, $7::INTEGER)`

	searchProductsQuery = `
		SELECT ` + productColumns + `
		FROM get_search_products($1::TEXT, $2::INTEGER, $3::NUMERIC, $4::INTEGER, $5::TIMESTAMPTZ, $6::TIMESTAMPTZ, $7::INTEGER)`

	insertProductQuery = `SELECT insert_products($1::TEXT, $2::INTEGER, $3::NUMERIC, $4::INTEGER)`

	updateProductQuery = `SELECT update_products($1::TEXT, $2::INTEGER, $3::NUMERIC, $4::INTEGER, $5::INTEGER)`

	deleteProductQuery = `SELECT delete_products($1::INTEGER, $2::INTEGER)`
)

// ProductRepository implements port.ProductRepository on the product stored procedures
type ProductRepository struct {
	db     DatabaseIface
	logger *slog.Logger
}

// NewProductRepository creates a new PostgreSQL product repository
func NewProductRepository(db DatabaseIface, logger *slog.Logger) port.ProductRepository {
	return &ProductRepository{
		db:     db,
		logger: logger.With("component", "product_repository"),
	}
}

// GetProducts returns products matching every non-nil filter field exactly.
func (r *ProductRepository) GetProducts(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error) {
	return r.queryProducts(ctx, getProductsQuery, filter)
}

// SearchProducts returns products whose name contains filter.Name and whose
// numeric and time fields are at least the given values.
func (r *ProductRepository) SearchProducts(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error) {
	return r.queryProducts(ctx, searchProductsQuery, filter)
}

// InsertProduct stores a product for userID and returns its id. A zero id
// means the procedure created nothing.
func (r *ProductRepository) InsertProduct(ctx context.Context, userID int, input domain.ProductInput) (int, error) {
	var id *int
	err := r.db.QueryRow(ctx, insertProductQuery,
		input.Name,
		input.Stock,
		input.Price,
		userID,
	).Scan(&id)
	if err != nil {
		r.logger.Error("failed to insert product", "user_id", userID, "error", err)
		return 0, fmt.Errorf("failed to insert product: %w", err)
	}

	if id == nil {
		return 0, nil
	}
	return *id, nil
}

func (r *ProductRepository) UpdateProduct(ctx context.Context, userID, productID int, input domain.ProductInput) (bool, error) {
	var updated *bool
	err := r.db.QueryRow(ctx, updateProductQuery,
		input.Name,
		input.Stock,
		input.Price,
		userID,
		productID,
	).Scan(&updated)
	if err != nil {
		r.logger.Error("failed to update product", "product_id", productID, "error", err)
		return false, fmt.Errorf("failed to update product: %w", err)
	}

	return updated != nil && *updated, nil
}

func (r *ProductRepository) DeleteProduct(ctx context.Context, userID, productID int) (bool, error) {
	var deleted *bool
	err := r.db.QueryRow(ctx, deleteProductQuery, productID, userID).Scan(&deleted)
	if err != nil {
		r.logger.Error("failed to delete product", "product_id", productID, "error", err)
		return false, fmt.Errorf("failed to delete product: %w", err)
	}

	return deleted != nil && *deleted, nil
}

func (r *ProductRepository) queryProducts(ctx context.Context, query string, filter domain.ProductFilter) ([]*domain.Product, error) {
	rows, err := r.db.Query(ctx, query,
		filter.Name,
		filter.Stock,
		filter.Price,
		filter.ID,
		filter.CreatedAt,
		filter.UpdatedAt,
		filter.UserID,
	)
	if err != nil {
		r.logger.Error("failed to query products", "error", err)
		return nil, fmt.Errorf("failed to get products: %w", err)
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}

	return products, nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	product := &domain.Product{}
	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Stock,
		&product.Price,
		&product.UserID,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return product, nil
}
