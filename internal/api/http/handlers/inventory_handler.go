package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/labtrack/internal/api/dto"
	"github.com/spec-kit/labtrack/internal/domain"
	"github.com/spec-kit/labtrack/internal/repository"
	"github.com/spec-kit/labtrack/internal/service"
	apperrors "github.com/spec-kit/labtrack/pkg/util/errorutil"
)

// InventoryHandler manages stock endpoints.
type InventoryHandler struct {
	inventory *service.InventoryService
}

// NewInventoryHandler constructs handler.
func NewInventoryHandler(inventoryService *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventory: inventoryService}
}

// List handles GET /inventory.
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	filter := repository.InventoryFilter{LowStockOnly: c.QueryBool("low_stock", false)}
	if raw := c.Query("category"); raw != "" {
		category := domain.InventoryCategory(raw)
		if !category.Valid() {
			return apperrors.NewValidationError("invalid fields: category", map[string]any{"category": "unknown category"})
		}
		filter.Category = &category
	}
	items, err := h.inventory.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	out := make([]dto.InventoryItemResponse, 0, len(items))
	for i := range items {
		out = append(out, inventoryItemResponse(&items[i]))
	}
	return c.JSON(out)
}

// Get handles GET /inventory/:id.
func (h *InventoryHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	item, err := h.inventory.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(inventoryItemResponse(item))
}

// Create handles POST /inventory.
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateInventoryItemRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}
	item, err := h.inventory.Create(c.UserContext(), service.InventoryItemInput{
		Name:         req.ItemName,
		Code:         req.ItemCode,
		Category:     req.Category,
		Quantity:     req.Quantity,
		Unit:         req.Unit,
		MinThreshold: req.Threshold(),
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(inventoryItemResponse(item))
}

// Adjust handles PUT /inventory/:id. quantity_change is read from the query
// string first, then from the JSON body.
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	actorID, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req dto.AdjustInventoryRequest
	if len(c.Body()) > 0 {
		if err := parseBody(c, &req); err != nil {
			return err
		}
	}
	if raw := c.Query("quantity_change"); raw != "" {
		change, err := strconv.Atoi(raw)
		if err != nil {
			return apperrors.NewValidationError("invalid fields: quantity_change", map[string]any{"quantity_change": "must be an integer"})
		}
		req.QuantityChange = &change
	}
	if raw := c.Query("reason"); raw != "" && req.Reason == nil {
		req.Reason = &raw
	}
	if err := req.Validate(); err != nil {
		return err
	}

	item, err := h.inventory.Adjust(c.UserContext(), actorID, id, *req.QuantityChange, req.Reason)
	if err != nil {
		return err
	}
	return c.JSON(inventoryItemResponse(item))
}

// Transactions handles GET /inventory/:id/transactions.
func (h *InventoryHandler) Transactions(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	entries, err := h.inventory.Transactions(c.UserContext(), id)
	if err != nil {
		return err
	}
	out := make([]dto.InventoryTransactionResponse, 0, len(entries))
	for i := range entries {
		out = append(out, transactionResponse(&entries[i]))
	}
	return c.JSON(out)
}
