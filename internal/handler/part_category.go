package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/bike-catalog-admin/internal/model"
	"github.com/iliyamo/bike-catalog-admin/internal/queue"
	"github.com/iliyamo/bike-catalog-admin/internal/repository"
)

const detailPartCategoryNotFound = "PartCategory not found"

type partCategoryCreateReq struct {
	Name          string  `json:"name"`
	DisplayOrder  *int    `json:"display_order"`
	ProductTypeID *uint64 `json:"product_type_id"`
}

type partCategoryUpdateReq struct {
	Name          *string `json:"name"`
	DisplayOrder  *int    `json:"display_order"`
	ProductTypeID *uint64 `json:"product_type_id"`
}

type partCategoryResp struct {
	ID            uint64 `json:"id"`
	Name          string `json:"name"`
	DisplayOrder  int    `json:"display_order"`
	ProductTypeID uint64 `json:"product_type_id"`
}

func toPartCategoryResp(pc *model.PartCategory) partCategoryResp {
	return partCategoryResp{ID: pc.ID, Name: pc.Name, DisplayOrder: pc.DisplayOrder, ProductTypeID: pc.ProductTypeID}
}

// productTypeMissing answers 404 when the referenced product type does not
// exist. It returns handled=false when the product type was found.
func (h *CatalogHandler) productTypeMissing(c echo.Context, id uint64) (handled bool, err error) {
	ctx, cancel := requestContext(c)
	defer cancel()
	if _, err := h.ProductTypes.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProductTypeNotFound) {
			return true, detail(c, http.StatusNotFound, fmt.Sprintf("ProductType with id %d not found.", id))
		}
		return true, internalError(c, "get product type", err)
	}
	return false, nil
}

// CreatePartCategory handles POST /api/v1/admin/part-categories.
func (h *CatalogHandler) CreatePartCategory(c echo.Context) error {
	var req partCategoryCreateReq
	if err := c.Bind(&req); err != nil {
		return detail(c, http.StatusUnprocessableEntity, "invalid request body")
	}
	name, ok := validName(req.Name)
	if !ok {
		return detail(c, http.StatusUnprocessableEntity, "name is required (max 100 characters)")
	}
	if req.ProductTypeID == nil || *req.ProductTypeID == 0 {
		return detail(c, http.StatusUnprocessableEntity, "product_type_id is required")
	}
	if handled, err := h.productTypeMissing(c, *req.ProductTypeID); handled {
		return err
	}

	pc := &model.PartCategory{Name: name, ProductTypeID: *req.ProductTypeID}
	if req.DisplayOrder != nil {
		pc.DisplayOrder = *req.DisplayOrder
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.PartCategories.Create(ctx, pc); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return detail(c, http.StatusConflict, "Part category creation failed. Check constraints.")
		}
		return internalError(c, "create part category", err)
	}
	publish(c, h.Events, queue.ResourcePartCategory, queue.ActionCreated, pc.ID)
	return c.JSON(http.StatusCreated, toPartCategoryResp(pc))
}

// ListPartCategories handles GET /api/v1/admin/part-categories. The
// product_type_id filter is mandatory.
func (h *CatalogHandler) ListPartCategories(c echo.Context) error {
	ptID, present, ok := queryID(c, "product_type_id")
	if !ok {
		return detail(c, http.StatusUnprocessableEntity, "invalid product_type_id")
	}
	if !present {
		return detail(c, http.StatusBadRequest, "Query parameter 'product_type_id' is required.")
	}
	skip, limit, ok := pagination(c)
	if !ok {
		return detail(c, http.StatusUnprocessableEntity, "invalid skip or limit")
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	items, err := h.PartCategories.ListByProductType(ctx, ptID, skip, limit)
	if err != nil {
		return internalError(c, "list part categories", err)
	}
	out := make([]partCategoryResp, 0, len(items))
	for _, pc := range items {
		out = append(out, toPartCategoryResp(pc))
	}
	return c.JSON(http.StatusOK, out)
}

// GetPartCategory handles GET /api/v1/admin/part-categories/:id.
func (h *CatalogHandler) GetPartCategory(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return detail(c, http.StatusUnprocessableEntity, "invalid id")
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	pc, err := h.PartCategories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPartCategoryNotFound) {
			return detail(c, http.StatusNotFound, detailPartCategoryNotFound)
		}
		return internalError(c, "get part category", err)
	}
	return c.JSON(http.StatusOK, toPartCategoryResp(pc))
}

// UpdatePartCategory handles PUT /api/v1/admin/part-categories/:id. Moving a
// category to another product type re-checks that the target exists.
func (h *CatalogHandler) UpdatePartCategory(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return detail(c, http.StatusUnprocessableEntity, "invalid id")
	}
	var req partCategoryUpdateReq
	if err := c.Bind(&req); err != nil {
		return detail(c, http.StatusUnprocessableEntity, "invalid request body")
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	pc, err := h.PartCategories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPartCategoryNotFound) {
			return detail(c, http.StatusNotFound, detailPartCategoryNotFound)
		}
		return internalError(c, "get part category", err)
	}
	if req.Name != nil {
		name, ok := validName(*req.Name)
		if !ok {
			return detail(c, http.StatusUnprocessableEntity, "name must be 1-100 characters")
		}
		pc.Name = name
	}
	if req.DisplayOrder != nil {
		pc.DisplayOrder = *req.DisplayOrder
	}
	if req.ProductTypeID != nil && *req.ProductTypeID != pc.ProductTypeID {
		if handled, err := h.productTypeMissing(c, *req.ProductTypeID); handled {
			return err
		}
		pc.ProductTypeID = *req.ProductTypeID
	}

	if err := h.PartCategories.Update(ctx, pc); err != nil {
		switch {
		case errors.Is(err, repository.ErrPartCategoryNotFound):
			return detail(c, http.StatusNotFound, detailPartCategoryNotFound)
		case errors.Is(err, repository.ErrConflict):
			return detail(c, http.StatusConflict, "Part category update failed. Check constraints.")
		default:
			return internalError(c, "update part category", err)
		}
	}
	publish(c, h.Events, queue.ResourcePartCategory, queue.ActionUpdated, pc.ID)
	return c.JSON(http.StatusOK, toPartCategoryResp(pc))
}

// DeletePartCategory handles DELETE /api/v1/admin/part-categories/:id. Its
// options are removed with it.
func (h *CatalogHandler) DeletePartCategory(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return detail(c, http.StatusUnprocessableEntity, "invalid id")
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	pc, err := h.PartCategories.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPartCategoryNotFound) {
			return detail(c, http.StatusNotFound, detailPartCategoryNotFound)
		}
		return internalError(c, "delete part category", err)
	}
	publish(c, h.Events, queue.ResourcePartCategory, queue.ActionDeleted, pc.ID)
	return c.JSON(http.StatusOK, toPartCategoryResp(pc))
}
