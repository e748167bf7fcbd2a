package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"store-locator-service/internal/app/service"
	"store-locator-service/internal/transport/httpserver/dto"
	"store-locator-service/internal/transport/httpserver/middleware"
	"store-locator-service/internal/validator"
)

// StoreHandler handles store search and admin store-management requests.
type StoreHandler struct {
	stores    *service.StoreService
	validator *validator.Validator
	logger    *zap.Logger
}

// NewStoreHandler creates a new StoreHandler.
func NewStoreHandler(stores *service.StoreService, v *validator.Validator, logger *zap.Logger) *StoreHandler {
	return &StoreHandler{
		stores:    stores,
		validator: v,
		logger:    logger,
	}
}

// Search handles GET /api/v1/stores/search
func (h *StoreHandler) Search(c *fiber.Ctx) error {
	var req dto.SearchStoresRequest
	if err := c.QueryParser(&req); err != nil {
		return badRequest(c, "invalid query parameters", "INVALID_PARAMS")
	}

	if err := h.validator.Validate(&req); err != nil {
		return validationError(c, err)
	}

	result, err := h.stores.Search(c.Context(), req.ToSearchParams())
	if err != nil {
		return domainError(c, h.logger, err)
	}

	return c.JSON(dto.FromSearchStoresResult(result))
}

// SearchNearby handles GET /api/v1/stores/nearby
//
// Same as Search but centered on the caller's saved location. Responds 404
// with code NO_LOCATION when the user has never reported one.
func (h *StoreHandler) SearchNearby(c *fiber.Ctx) error {
	var req dto.NearbyStoresRequest
	if err := c.QueryParser(&req); err != nil {
		return badRequest(c, "invalid query parameters", "INVALID_PARAMS")
	}

	if err := h.validator.Validate(&req); err != nil {
		return validationError(c, err)
	}

	result, err := h.stores.SearchFromUserLocation(c.Context(), middleware.UserID(c), req.ToSearchParams())
	if err != nil {
		return domainError(c, h.logger, err)
	}

	return c.JSON(dto.FromSearchStoresResult(result))
}

// GetByID handles GET /api/v1/stores/:id
func (h *StoreHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "id is required", "MISSING_ID")
	}

	store, err := h.stores.GetByID(c.Context(), id)
	if err != nil {
		return domainError(c, h.logger, err)
	}

	return c.JSON(dto.FromDomainStore(store))
}

// List handles GET /api/v1/stores
func (h *StoreHandler) List(c *fiber.Ctx) error {
	var req dto.PageRequest
	if err := c.QueryParser(&req); err != nil {
		return badRequest(c, "invalid query parameters", "INVALID_PARAMS")
	}

	if err := h.validator.Validate(&req); err != nil {
		return validationError(c, err)
	}

	page, size := normalizePage(req.PageIndex, req.PageSize)

	stores, total, err := h.stores.List(c.Context(), page, size)
	if err != nil {
		return domainError(c, h.logger, err)
	}

	resp := dto.StoreListResponse{
		Stores:     make([]dto.StoreResponse, len(stores)),
		Pagination: dto.NewPaginationMeta(total, page, size),
	}
	for i := range stores {
		resp.Stores[i] = dto.FromDomainStore(&stores[i])
	}

	return c.JSON(resp)
}

// Create handles POST /api/v1/admin/stores
func (h *StoreHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateStoreRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body", "INVALID_BODY")
	}

	if err := h.validator.Validate(&req); err != nil {
		return validationError(c, err)
	}

	store := req.ToDomain()
	if err := h.stores.Create(c.Context(), store); err != nil {
		return domainError(c, h.logger, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.FromDomainStore(store))
}

// Update handles PUT /api/v1/admin/stores/:id
func (h *StoreHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "id is required", "MISSING_ID")
	}

	var req dto.UpdateStoreRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body", "INVALID_BODY")
	}

	if err := h.validator.Validate(&req); err != nil {
		return validationError(c, err)
	}

	store, err := h.stores.GetByID(c.Context(), id)
	if err != nil {
		return domainError(c, h.logger, err)
	}

	req.Apply(store)
	if err := h.stores.Update(c.Context(), store); err != nil {
		return domainError(c, h.logger, err)
	}

	return c.JSON(dto.FromDomainStore(store))
}

// Deactivate handles DELETE /api/v1/admin/stores/:id
func (h *StoreHandler) Deactivate(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "id is required", "MISSING_ID")
	}

	if err := h.stores.Deactivate(c.Context(), id); err != nil {
		return domainError(c, h.logger, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
