package model

import "time"

// PartCategory groups interchangeable parts within a product type, e.g.
// "Frame" or "Wheels". Rows live in `part_categories`; DisplayOrder controls
// the order categories are presented in.
type PartCategory struct {
	ID            uint64    // part_categories.id
	ProductTypeID uint64    // part_categories.product_type_id
	Name          string    // part_categories.name
	DisplayOrder  int       // part_categories.display_order
	CreatedAt     time.Time // part_categories.created_at
	UpdatedAt     time.Time // part_categories.updated_at
}
