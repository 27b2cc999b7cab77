package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PartOption is a concrete choice within a part category, e.g. a 29-inch
// wheel, with its base price and stock status. Rows live in `part_options`.
// BasePrice maps to a DECIMAL(10,2) column and is kept exact.
type PartOption struct {
	ID             uint64          // part_options.id
	PartCategoryID uint64          // part_options.part_category_id
	Name           string          // part_options.name
	BasePrice      decimal.Decimal // part_options.base_price
	IsInStock      bool            // part_options.is_in_stock
	CreatedAt      time.Time       // part_options.created_at
	UpdatedAt      time.Time       // part_options.updated_at
}
