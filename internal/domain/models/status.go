package models

// Status is the stock-level state of an item.
type Status string

const (
	StatusNormal      Status = "normal"
	StatusNeedRestock Status = "need_restock"
	StatusRestocking  Status = "restocking"
)

// ParseStatus validates a raw status value against the three known states.
func ParseStatus(raw string) (Status, error) {
	switch Status(raw) {
	case StatusNormal, StatusNeedRestock, StatusRestocking:
		return Status(raw), nil
	default:
		return "", ErrInvalidStatus
	}
}

// ComputeStatus derives the status for a directly edited or freshly created
// item from its quantity and threshold. It never yields restocking: a direct
// edit overrides any replenishment in progress.
func ComputeStatus(quantity, threshold int) Status {
	if quantity <= threshold {
		return StatusNeedRestock
	}
	return StatusNormal
}

// NextStatusIn returns the status after a stock-in leaves the item at
// newQuantity. An item awaiting restock moves to restocking as soon as any
// shipment arrives, even if the threshold is not yet cleared; a restocking
// item returns to normal only once quantity exceeds the threshold.
func NextStatusIn(current Status, newQuantity, threshold int) Status {
	switch current {
	case StatusNeedRestock:
		return StatusRestocking
	case StatusRestocking:
		if newQuantity > threshold {
			return StatusNormal
		}
		return StatusRestocking
	default:
		return current
	}
}

// NextStatusOut returns the status after a stock-out leaves the item at
// newQuantity. Dropping to or below the threshold flags the item for restock;
// otherwise the current status is kept.
func NextStatusOut(current Status, newQuantity, threshold int) Status {
	if newQuantity <= threshold {
		return StatusNeedRestock
	}
	return current
}
