package models

import "time"

// OperationType distinguishes stock-in from stock-out events.
type OperationType string

const (
	OperationIn  OperationType = "in"
	OperationOut OperationType = "out"
)

// ParseOperationType validates a raw operation type value.
func ParseOperationType(raw string) (OperationType, error) {
	switch OperationType(raw) {
	case OperationIn, OperationOut:
		return OperationType(raw), nil
	default:
		return "", ErrInvalidOperationType
	}
}

// InventoryOperation is an append-only record of a stock movement. Operations
// are never mutated after creation.
type InventoryOperation struct {
	ID            int64         `json:"id"`
	ItemID        int64         `json:"item_id"`
	OperationType OperationType `json:"operation_type"`
	Quantity      int           `json:"quantity"`
	OperationTime time.Time     `json:"operation_time"`
	Notes         string        `json:"notes"`
}

// OperationRequest carries the payload for a stock in/out request.
type OperationRequest struct {
	OperationType string `json:"operation_type"`
	Quantity      int    `json:"quantity"`
	Notes         string `json:"notes"`
}

// OperationResult reports the item state after a stock movement was applied.
type OperationResult struct {
	NewQuantity int    `json:"new_quantity"`
	Status      Status `json:"status"`
}
