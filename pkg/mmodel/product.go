package mmodel

import "time"

// Product is a licensed software package, e.g. "ansys" or "abaqus". Feature
// names are scoped per Product via the "product.feature" key.
type Product struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateProductInput is the create-schema for Product.
type CreateProductInput struct {
	Name string `json:"name" validate:"required,max=256"`
}

// UpdateProductInput is the partial-update schema for Product.
type UpdateProductInput struct {
	Name string `json:"name" validate:"required,max=256"`
}
