package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/bike-catalog-admin/internal/model"
	"github.com/iliyamo/bike-catalog-admin/internal/queue"
	"github.com/iliyamo/bike-catalog-admin/internal/repository"
)

const detailProductTypeNotFound = "ProductType not found"

type productTypeCreateReq struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type productTypeUpdateReq struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type productTypeResp struct {
	ID          uint64  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func toProductTypeResp(pt *model.ProductType) productTypeResp {
	return productTypeResp{ID: pt.ID, Name: pt.Name, Description: pt.Description}
}

// validName trims name and checks it is non-empty and fits the column.
func validName(name string) (string, bool) {
	name = strings.TrimSpace(name)
	return name, name != "" && len([]rune(name)) <= maxNameLen
}

// CreateProductType handles POST /api/v1/admin/product-types.
func (h *CatalogHandler) CreateProductType(c echo.Context) error {
	var req productTypeCreateReq
	if err := c.Bind(&req); err != nil {
		return detail(c, http.StatusUnprocessableEntity, "invalid request body")
	}
	name, ok := validName(req.Name)
	if !ok {
		return detail(c, http.StatusUnprocessableEntity, "name is required (max 100 characters)")
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	pt := &model.ProductType{Name: name, Description: req.Description}
	if err := h.ProductTypes.Create(ctx, pt); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return detail(c, http.StatusConflict, fmt.Sprintf("ProductType with name '%s' already exists.", name))
		}
		return internalError(c, "create product type", err)
	}
	publish(c, h.Events, queue.ResourceProductType, queue.ActionCreated, pt.ID)
	return c.JSON(http.StatusCreated, toProductTypeResp(pt))
}

// ListProductTypes handles GET /api/v1/admin/product-types.
func (h *CatalogHandler) ListProductTypes(c echo.Context) error {
	skip, limit, ok := pagination(c)
	if !ok {
		return detail(c, http.StatusUnprocessableEntity, "invalid skip or limit")
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	items, err := h.ProductTypes.List(ctx, skip, limit)
	if err != nil {
		return internalError(c, "list product types", err)
	}
	out := make([]productTypeResp, 0, len(items))
	for _, pt := range items {
		out = append(out, toProductTypeResp(pt))
	}
	return c.JSON(http.StatusOK, out)
}

// GetProductType handles GET /api/v1/admin/product-types/:id.
func (h *CatalogHandler) GetProductType(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return detail(c, http.StatusUnprocessableEntity, "invalid id")
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	pt, err := h.ProductTypes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductTypeNotFound) {
			return detail(c, http.StatusNotFound, detailProductTypeNotFound)
		}
		return internalError(c, "get product type", err)
	}
	return c.JSON(http.StatusOK, toProductTypeResp(pt))
}

// UpdateProductType handles PUT /api/v1/admin/product-types/:id. Fields left
// out of the body keep their stored values.
func (h *CatalogHandler) UpdateProductType(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return detail(c, http.StatusUnprocessableEntity, "invalid id")
	}
	var req productTypeUpdateReq
	if err := c.Bind(&req); err != nil {
		return detail(c, http.StatusUnprocessableEntity, "invalid request body")
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	pt, err := h.ProductTypes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductTypeNotFound) {
			return detail(c, http.StatusNotFound, detailProductTypeNotFound)
		}
		return internalError(c, "get product type", err)
	}
	if req.Name != nil {
		name, ok := validName(*req.Name)
		if !ok {
			return detail(c, http.StatusUnprocessableEntity, "name must be 1-100 characters")
		}
		pt.Name = name
	}
	if req.Description != nil {
		pt.Description = req.Description
	}

	if err := h.ProductTypes.Update(ctx, pt); err != nil {
		switch {
		case errors.Is(err, repository.ErrProductTypeNotFound):
			return detail(c, http.StatusNotFound, detailProductTypeNotFound)
		case errors.Is(err, repository.ErrConflict):
			return detail(c, http.StatusConflict, fmt.Sprintf("ProductType with name '%s' already exists.", pt.Name))
		default:
			return internalError(c, "update product type", err)
		}
	}
	publish(c, h.Events, queue.ResourceProductType, queue.ActionUpdated, pt.ID)
	return c.JSON(http.StatusOK, toProductTypeResp(pt))
}

// DeleteProductType handles DELETE /api/v1/admin/product-types/:id and
// returns the deleted row.
func (h *CatalogHandler) DeleteProductType(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return detail(c, http.StatusUnprocessableEntity, "invalid id")
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	pt, err := h.ProductTypes.Delete(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrProductTypeNotFound):
			return detail(c, http.StatusNotFound, detailProductTypeNotFound)
		case errors.Is(err, repository.ErrConflict):
			return detail(c, http.StatusConflict, "ProductType is still referenced.")
		default:
			return internalError(c, "delete product type", err)
		}
	}
	publish(c, h.Events, queue.ResourceProductType, queue.ActionDeleted, pt.ID)
	return c.JSON(http.StatusOK, toProductTypeResp(pt))
}
