package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem is a tracked stock unit with its restock threshold and status.
type InventoryItem struct {
	ID                int64           `json:"id"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	Quantity          int             `json:"quantity"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	LowStockThreshold int             `json:"low_stock_threshold"`
	Status            Status          `json:"status"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// LowStockEntry is the trimmed item view returned by the low-stock report.
type LowStockEntry struct {
	ID                int64  `json:"id"`
	Name              string `json:"name"`
	Quantity          int    `json:"quantity"`
	LowStockThreshold int    `json:"low_stock_threshold"`
	Status            Status `json:"status"`
}

// CreateItemRequest carries the payload for item creation. Pointer fields
// distinguish "absent" from zero values so required-field checks work.
type CreateItemRequest struct {
	Name              string           `json:"name"`
	Description       string           `json:"description"`
	Quantity          *int             `json:"quantity"`
	UnitPrice         *decimal.Decimal `json:"unit_price"`
	LowStockThreshold *int             `json:"low_stock_threshold"`
}

// UpdateItemRequest carries a partial item edit. Only non-nil fields are
// applied. A supplied status is set verbatim; a quantity-only edit does not
// recompute status.
type UpdateItemRequest struct {
	Name              *string          `json:"name"`
	Description       *string          `json:"description"`
	Quantity          *int             `json:"quantity"`
	UnitPrice         *decimal.Decimal `json:"unit_price"`
	LowStockThreshold *int             `json:"low_stock_threshold"`
	Status            *string          `json:"status"`
}

// StatusUpdateRequest assigns an item status directly.
type StatusUpdateRequest struct {
	Status string `json:"status"`
}
