package model

import "time"

// ProductType is a top-level kind of product that can be customised, such
// as "Mountain Bike". It corresponds to a row in the `product_types` table.
// Deleting a product type cascades to its part categories.
//
// Fields:
//  ID          – primary key identifier.
//  Name        – globally unique display name.
//  Description – optional free text (nil when unset).
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type ProductType struct {
	ID          uint64    // product_types.id
	Name        string    // product_types.name
	Description *string   // product_types.description (nullable)
	CreatedAt   time.Time // product_types.created_at
	UpdatedAt   time.Time // product_types.updated_at
}
