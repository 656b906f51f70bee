package handlers

import (
	"resq-food-backend/domain"
	"resq-food-backend/internal/api/presenters"
	"resq-food-backend/pkg/catalog"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type (
	CatalogHandler interface {
		GetCatalog(c *fiber.Ctx) error
	}

	catalogHandler struct {
		catalogService catalog.CatalogService
	}
)

func NewCatalogHandler(catalogService catalog.CatalogService) CatalogHandler {
	return &catalogHandler{catalogService: catalogService}
}

func (h *catalogHandler) GetCatalog(c *fiber.Ctx) error {
	query := domain.CatalogQuery{
		Search:   c.Query("search"),
		Category: c.Query("category"),
	}

	if lat, err := strconv.ParseFloat(c.Query("lat"), 64); err == nil {
		if lng, err := strconv.ParseFloat(c.Query("lng"), 64); err == nil {
			query.Latitude = &lat
			query.Longitude = &lng
		}
	}

	items, err := h.catalogService.GetCatalog(c.Context(), query)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetCatalog, err)
	}

	return presenters.SuccessResponse(c, items, fiber.StatusOK, domain.MessageSuccessGetCatalog)
}
