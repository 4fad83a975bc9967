package domain

import "time"

// Product is an inventory item owned by a single user.
type Product struct {
	ID        int        `json:"id"`
	Name      string     `json:"name"`
	Stock     int        `json:"stock"`
	Price     float64    `json:"price"`
	UserID    int        `json:"user_id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// ProductFilter selects products. Nil fields match every row; UserID scopes
// the query to one owner.
type ProductFilter struct {
	Name      *string
	Stock     *int
	Price     *float64
	ID        *int
	CreatedAt *time.Time
	UpdatedAt *time.Time
	UserID    *int
}

// ProductInput is the user-editable part of a product.
type ProductInput struct {
	Name  string
	Stock int
	Price float64
}

// ProductOwnedBy returns a filter for a single product of one owner.
func ProductOwnedBy(userID, productID int) ProductFilter {
	return ProductFilter{ID: &productID, UserID: &userID}
}

// ProductsOwnedBy returns a filter for every product of one owner.
func ProductsOwnedBy(userID int) ProductFilter {
	return ProductFilter{UserID: &userID}
}
