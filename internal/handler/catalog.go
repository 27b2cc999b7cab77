package handler

import (
	"context"

	"github.com/iliyamo/bike-catalog-admin/internal/model"
	"github.com/iliyamo/bike-catalog-admin/internal/queue"
)

// ProductTypeStore is the persistence the product type endpoints need.
type ProductTypeStore interface {
	Create(ctx context.Context, pt *model.ProductType) error
	GetByID(ctx context.Context, id uint64) (*model.ProductType, error)
	List(ctx context.Context, skip, limit int) ([]*model.ProductType, error)
	Update(ctx context.Context, pt *model.ProductType) error
	Delete(ctx context.Context, id uint64) (*model.ProductType, error)
}

// PartCategoryStore is the persistence the part category endpoints need.
type PartCategoryStore interface {
	Create(ctx context.Context, pc *model.PartCategory) error
	GetByID(ctx context.Context, id uint64) (*model.PartCategory, error)
	ListByProductType(ctx context.Context, productTypeID uint64, skip, limit int) ([]*model.PartCategory, error)
	Update(ctx context.Context, pc *model.PartCategory) error
	Delete(ctx context.Context, id uint64) (*model.PartCategory, error)
}

// PartOptionStore is the persistence the part option endpoints need.
type PartOptionStore interface {
	Create(ctx context.Context, po *model.PartOption) error
	GetByID(ctx context.Context, id uint64) (*model.PartOption, error)
	ListByCategory(ctx context.Context, partCategoryID uint64, skip, limit int) ([]*model.PartOption, error)
	Update(ctx context.Context, po *model.PartOption) error
	Delete(ctx context.Context, id uint64) (*model.PartOption, error)
}

// CatalogHandler bundles the stores behind the catalog CRUD endpoints. Every
// route it serves sits behind middleware.AdminAuth.
type CatalogHandler struct {
	ProductTypes   ProductTypeStore
	PartCategories PartCategoryStore
	PartOptions    PartOptionStore
	Events         queue.Publisher
}

// NewCatalogHandler constructs a CatalogHandler and panics if a store is nil.
// A nil publisher disables catalog events.
func NewCatalogHandler(pt ProductTypeStore, pc PartCategoryStore, po PartOptionStore, events queue.Publisher) *CatalogHandler {
	if pt == nil || pc == nil || po == nil {
		panic("nil store passed to NewCatalogHandler")
	}
	if events == nil {
		events = queue.NopPublisher{}
	}
	return &CatalogHandler{ProductTypes: pt, PartCategories: pc, PartOptions: po, Events: events}
}
