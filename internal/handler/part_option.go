package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/iliyamo/bike-catalog-admin/internal/model"
	"github.com/iliyamo/bike-catalog-admin/internal/queue"
	"github.com/iliyamo/bike-catalog-admin/internal/repository"
)

const detailPartOptionNotFound = "PartOption not found"

// maxPrice is the largest value a DECIMAL(10,2) column holds.
var maxPrice = decimal.RequireFromString("99999999.99")

// price renders a decimal as a bare JSON number with two fraction digits.
type price decimal.Decimal

func (p price) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(p).StringFixed(2)), nil
}

type partOptionCreateReq struct {
	Name           string           `json:"name"`
	BasePrice      *decimal.Decimal `json:"base_price"`
	IsInStock      *bool            `json:"is_in_stock"`
	PartCategoryID *uint64          `json:"part_category_id"`
}

type partOptionUpdateReq struct {
	Name           *string          `json:"name"`
	BasePrice      *decimal.Decimal `json:"base_price"`
	IsInStock      *bool            `json:"is_in_stock"`
	PartCategoryID *uint64          `json:"part_category_id"`
}

type partOptionResp struct {
	ID             uint64 `json:"id"`
	Name           string `json:"name"`
	BasePrice      price  `json:"base_price"`
	IsInStock      bool   `json:"is_in_stock"`
	PartCategoryID uint64 `json:"part_category_id"`
}

func toPartOptionResp(po *model.PartOption) partOptionResp {
	return partOptionResp{
		ID:             po.ID,
		Name:           po.Name,
		BasePrice:      price(po.BasePrice),
		IsInStock:      po.IsInStock,
		PartCategoryID: po.PartCategoryID,
	}
}

// validPrice accepts non-negative amounts with at most two decimals that fit
// the column.
func validPrice(d decimal.Decimal) bool {
	return !d.IsNegative() && d.LessThanOrEqual(maxPrice) && d.Equal(d.Truncate(2))
}

// CreatePartOption handles POST /api/v1/admin/part-options.
func (h *CatalogHandler) CreatePartOption(c echo.Context) error {
	var req partOptionCreateReq
	if err := c.Bind(&req); err != nil {
		return detail(c, http.StatusUnprocessableEntity, "invalid request body")
	}
	name, ok := validName(req.Name)
	if !ok {
		return detail(c, http.StatusUnprocessableEntity, "name is required (max 100 characters)")
	}
	if req.BasePrice == nil || !validPrice(*req.BasePrice) {
		return detail(c, http.StatusUnprocessableEntity, "base_price must be a non-negative amount with at most two decimals")
	}
	if req.PartCategoryID == nil || *req.PartCategoryID == 0 {
		return detail(c, http.StatusUnprocessableEntity, "part_category_id is required")
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if _, err := h.PartCategories.GetByID(ctx, *req.PartCategoryID); err != nil {
		if errors.Is(err, repository.ErrPartCategoryNotFound) {
			return detail(c, http.StatusNotFound, fmt.Sprintf("PartCategory with id %d not found.", *req.PartCategoryID))
		}
		return internalError(c, "get part category", err)
	}

	po := &model.PartOption{
		Name:           name,
		BasePrice:      *req.BasePrice,
		IsInStock:      true,
		PartCategoryID: *req.PartCategoryID,
	}
	if req.IsInStock != nil {
		po.IsInStock = *req.IsInStock
	}
	if err := h.PartOptions.Create(ctx, po); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return detail(c, http.StatusConflict, "Part option creation failed. Check constraints.")
		}
		return internalError(c, "create part option", err)
	}
	publish(c, h.Events, queue.ResourcePartOption, queue.ActionCreated, po.ID)
	return c.JSON(http.StatusCreated, toPartOptionResp(po))
}

// ListPartOptions handles GET /api/v1/admin/part-options. The
// part_category_id filter is mandatory.
func (h *CatalogHandler) ListPartOptions(c echo.Context) error {
	pcID, present, ok := queryID(c, "part_category_id")
	if !ok {
		return detail(c, http.StatusUnprocessableEntity, "invalid part_category_id")
	}
	if !present {
		return detail(c, http.StatusBadRequest, "Query parameter 'part_category_id' is required.")
	}
	skip, limit, ok := pagination(c)
	if !ok {
		return detail(c, http.StatusUnprocessableEntity, "invalid skip or limit")
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	items, err := h.PartOptions.ListByCategory(ctx, pcID, skip, limit)
	if err != nil {
		return internalError(c, "list part options", err)
	}
	out := make([]partOptionResp, 0, len(items))
	for _, po := range items {
		out = append(out, toPartOptionResp(po))
	}
	return c.JSON(http.StatusOK, out)
}

// GetPartOption handles GET /api/v1/admin/part-options/:id.
func (h *CatalogHandler) GetPartOption(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return detail(c, http.StatusUnprocessableEntity, "invalid id")
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	po, err := h.PartOptions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPartOptionNotFound) {
			return detail(c, http.StatusNotFound, detailPartOptionNotFound)
		}
		return internalError(c, "get part option", err)
	}
	return c.JSON(http.StatusOK, toPartOptionResp(po))
}

// UpdatePartOption handles PUT /api/v1/admin/part-options/:id. Name, price
// and stock status may change; the owning category may not.
func (h *CatalogHandler) UpdatePartOption(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return detail(c, http.StatusUnprocessableEntity, "invalid id")
	}
	var req partOptionUpdateReq
	if err := c.Bind(&req); err != nil {
		return detail(c, http.StatusUnprocessableEntity, "invalid request body")
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	po, err := h.PartOptions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPartOptionNotFound) {
			return detail(c, http.StatusNotFound, detailPartOptionNotFound)
		}
		return internalError(c, "get part option", err)
	}
	if req.PartCategoryID != nil {
		return detail(c, http.StatusBadRequest, "Changing the part category of an option is not allowed via this endpoint.")
	}
	if req.Name != nil {
		name, ok := validName(*req.Name)
		if !ok {
			return detail(c, http.StatusUnprocessableEntity, "name must be 1-100 characters")
		}
		po.Name = name
	}
	if req.BasePrice != nil {
		if !validPrice(*req.BasePrice) {
			return detail(c, http.StatusUnprocessableEntity, "base_price must be a non-negative amount with at most two decimals")
		}
		po.BasePrice = *req.BasePrice
	}
	if req.IsInStock != nil {
		po.IsInStock = *req.IsInStock
	}

	if err := h.PartOptions.Update(ctx, po); err != nil {
		switch {
		case errors.Is(err, repository.ErrPartOptionNotFound):
			return detail(c, http.StatusNotFound, detailPartOptionNotFound)
		case errors.Is(err, repository.ErrConflict):
			return detail(c, http.StatusConflict, "Part option update failed. Check constraints.")
		default:
			return internalError(c, "update part option", err)
		}
	}
	publish(c, h.Events, queue.ResourcePartOption, queue.ActionUpdated, po.ID)
	return c.JSON(http.StatusOK, toPartOptionResp(po))
}

// DeletePartOption handles DELETE /api/v1/admin/part-options/:id.
func (h *CatalogHandler) DeletePartOption(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return detail(c, http.StatusUnprocessableEntity, "invalid id")
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	po, err := h.PartOptions.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPartOptionNotFound) {
			return detail(c, http.StatusNotFound, detailPartOptionNotFound)
		}
		return internalError(c, "delete part option", err)
	}
	publish(c, h.Events, queue.ResourcePartOption, queue.ActionDeleted, po.ID)
	return c.JSON(http.StatusOK, toPartOptionResp(po))
}
