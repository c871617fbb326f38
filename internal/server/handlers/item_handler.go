package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/domain/models"
	"github.com/mamadbah2/stockroom/internal/service/inventory"
	"github.com/mamadbah2/stockroom/internal/service/reporting"
)

// ItemHandler adapts the inventory and reporting services to HTTP.
type ItemHandler struct {
	inventory *inventory.Service
	reporting *reporting.Service
	logger    *zap.Logger
}

// NewItemHandler constructs the HTTP handler adapter.
func NewItemHandler(inv *inventory.Service, rep *reporting.Service, logger *zap.Logger) *ItemHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ItemHandler{inventory: inv, reporting: rep, logger: logger}
}

// List returns all items ordered by identifier.
func (h *ItemHandler) List(c *gin.Context) {
	items, err := h.inventory.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// Get returns a single item by id.
func (h *ItemHandler) Get(c *gin.Context) {
	id, ok := h.itemID(c)
	if !ok {
		return
	}

	item, err := h.inventory.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// Create adds a new item.
func (h *ItemHandler) Create(c *gin.Context) {
	var req models.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	item, err := h.inventory.Create(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Item added successfully", "id": item.ID})
}

// Update applies a partial edit to an item.
func (h *ItemHandler) Update(c *gin.Context) {
	id, ok := h.itemID(c)
	if !ok {
		return
	}

	var req models.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid update payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	if _, err := h.inventory.Update(c.Request.Context(), id, req); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item updated successfully"})
}

// Delete removes an item and its operation history.
func (h *ItemHandler) Delete(c *gin.Context) {
	id, ok := h.itemID(c)
	if !ok {
		return
	}

	if err := h.inventory.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item deleted successfully"})
}

// ApplyOperation records a stock-in or stock-out movement.
func (h *ItemHandler) ApplyOperation(c *gin.Context) {
	id, ok := h.itemID(c)
	if !ok {
		return
	}

	var req models.OperationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid operation payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	result, err := h.inventory.ApplyOperation(c.Request.Context(), id, req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":      "Operation recorded successfully",
		"new_quantity": result.NewQuantity,
		"status":       result.Status,
	})
}

// SetStatus assigns an item status directly.
func (h *ItemHandler) SetStatus(c *gin.Context) {
	id, ok := h.itemID(c)
	if !ok {
		return
	}

	var req models.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid status payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	if _, err := h.inventory.SetStatus(c.Request.Context(), id, req.Status); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Status updated successfully"})
}

// Search returns items whose name contains the keyword query parameter.
func (h *ItemHandler) Search(c *gin.Context) {
	items, err := h.inventory.Search(c.Request.Context(), c.Query("keyword"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// LowStockReport returns items at or under their restock threshold.
func (h *ItemHandler) LowStockReport(c *gin.Context) {
	entries, err := h.reporting.LowStockReport(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *ItemHandler) itemID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid item id"})
		return 0, false
	}
	return id, true
}

// respondError maps domain errors to HTTP status codes. Anything outside the
// known taxonomy is a storage failure and stays opaque to the caller.
func (h *ItemHandler) respondError(c *gin.Context, err error) {
	switch {
	case models.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, models.ErrInvalidStatus), errors.Is(err, models.ErrInvalidOperationType):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, models.ErrInsufficientStock):
		c.JSON(http.StatusBadRequest, gin.H{"message": "insufficient stock"})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "item not found"})
	default:
		h.logger.Error("request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal storage error"})
	}
}
