package inventory

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/domain/models"
	repo "github.com/mamadbah2/stockroom/internal/repository/sqlite"
)

// Service implements the inventory use cases: item CRUD, name search and the
// stock in/out workflow with its status transitions.
type Service struct {
	repo   repo.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires an inventory service over the storage repository.
func NewService(repository repo.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repository, logger: logger, now: time.Now}
}

// Create validates the payload, derives the initial status from quantity vs.
// threshold and persists the new item.
func (s *Service) Create(ctx context.Context, req models.CreateItemRequest) (*models.InventoryItem, error) {
	if req.Name == "" {
		return nil, models.Validationf("name is required")
	}
	if req.Quantity == nil || req.UnitPrice == nil || req.LowStockThreshold == nil {
		return nil, models.Validationf("quantity, unit_price and low_stock_threshold are required")
	}
	if *req.Quantity < 0 {
		return nil, models.Validationf("quantity must not be negative")
	}
	if req.UnitPrice.IsNegative() {
		return nil, models.Validationf("unit_price must not be negative")
	}
	if *req.LowStockThreshold < 0 {
		return nil, models.Validationf("low_stock_threshold must not be negative")
	}

	now := s.now().UTC()
	item := models.InventoryItem{
		Name:              req.Name,
		Description:       req.Description,
		Quantity:          *req.Quantity,
		UnitPrice:         *req.UnitPrice,
		LowStockThreshold: *req.LowStockThreshold,
		Status:            models.ComputeStatus(*req.Quantity, *req.LowStockThreshold),
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	id, err := s.repo.CreateItem(ctx, item)
	if err != nil {
		return nil, err
	}
	item.ID = id

	s.logger.Info("item created",
		zap.Int64("item_id", id),
		zap.String("name", item.Name),
		zap.String("status", string(item.Status)))
	return &item, nil
}

// Get loads one item by id.
func (s *Service) Get(ctx context.Context, id int64) (*models.InventoryItem, error) {
	return s.repo.GetItem(ctx, id)
}

// List returns all items ordered by identifier.
func (s *Service) List(ctx context.Context) ([]models.InventoryItem, error) {
	return s.repo.ListItems(ctx)
}

// Search returns items whose name contains keyword. An empty keyword yields
// an empty result rather than a full dump.
func (s *Service) Search(ctx context.Context, keyword string) ([]models.InventoryItem, error) {
	if keyword == "" {
		return []models.InventoryItem{}, nil
	}
	return s.repo.SearchItems(ctx, keyword)
}

// Update applies a partial edit. A supplied status is set verbatim; the
// threshold rule is NOT re-run for a quantity-only edit. That asymmetry with
// the operation workflow is a deliberate business rule.
func (s *Service) Update(ctx context.Context, id int64, req models.UpdateItemRequest) (*models.InventoryItem, error) {
	if req.Name != nil && *req.Name == "" {
		return nil, models.Validationf("name must not be empty")
	}
	if req.Quantity != nil && *req.Quantity < 0 {
		return nil, models.Validationf("quantity must not be negative")
	}
	if req.UnitPrice != nil && req.UnitPrice.IsNegative() {
		return nil, models.Validationf("unit_price must not be negative")
	}
	if req.LowStockThreshold != nil && *req.LowStockThreshold < 0 {
		return nil, models.Validationf("low_stock_threshold must not be negative")
	}

	var status *models.Status
	if req.Status != nil {
		parsed, err := models.ParseStatus(*req.Status)
		if err != nil {
			return nil, err
		}
		status = &parsed
	}

	item, err := s.repo.Mutate(ctx, id, func(item *models.InventoryItem) (*models.InventoryOperation, error) {
		if req.Name != nil {
			item.Name = *req.Name
		}
		if req.Description != nil {
			item.Description = *req.Description
		}
		if req.Quantity != nil {
			item.Quantity = *req.Quantity
		}
		if req.UnitPrice != nil {
			item.UnitPrice = *req.UnitPrice
		}
		if req.LowStockThreshold != nil {
			item.LowStockThreshold = *req.LowStockThreshold
		}
		if status != nil {
			item.Status = *status
		}
		item.UpdatedAt = s.now().UTC()
		return nil, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("item updated", zap.Int64("item_id", id))
	return item, nil
}

// SetStatus assigns one of the three statuses directly, with no recomputation.
func (s *Service) SetStatus(ctx context.Context, id int64, raw string) (*models.InventoryItem, error) {
	status, err := models.ParseStatus(raw)
	if err != nil {
		return nil, err
	}

	item, err := s.repo.Mutate(ctx, id, func(item *models.InventoryItem) (*models.InventoryOperation, error) {
		item.Status = status
		item.UpdatedAt = s.now().UTC()
		return nil, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("item status set", zap.Int64("item_id", id), zap.String("status", raw))
	return item, nil
}

// Delete removes an item and its operation history.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeleteItem(ctx, id); err != nil {
		return err
	}
	s.logger.Info("item deleted", zap.Int64("item_id", id))
	return nil
}

// ApplyOperation records a stock movement: the item mutation and the log
// entry commit as one transaction. Stock-out larger than the current quantity
// fails with ErrInsufficientStock and persists nothing.
func (s *Service) ApplyOperation(ctx context.Context, id int64, req models.OperationRequest) (*models.OperationResult, error) {
	opType, err := models.ParseOperationType(req.OperationType)
	if err != nil {
		return nil, err
	}
	if req.Quantity <= 0 {
		return nil, models.Validationf("operation quantity must be a positive integer")
	}

	item, err := s.repo.Mutate(ctx, id, func(item *models.InventoryItem) (*models.InventoryOperation, error) {
		switch opType {
		case models.OperationIn:
			item.Quantity += req.Quantity
			item.Status = models.NextStatusIn(item.Status, item.Quantity, item.LowStockThreshold)
		case models.OperationOut:
			if req.Quantity > item.Quantity {
				return nil, models.ErrInsufficientStock
			}
			item.Quantity -= req.Quantity
			item.Status = models.NextStatusOut(item.Status, item.Quantity, item.LowStockThreshold)
		}

		now := s.now().UTC()
		item.UpdatedAt = now
		return &models.InventoryOperation{
			ItemID:        item.ID,
			OperationType: opType,
			Quantity:      req.Quantity,
			OperationTime: now,
			Notes:         req.Notes,
		}, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("operation applied",
		zap.Int64("item_id", id),
		zap.String("operation_type", string(opType)),
		zap.Int("quantity", req.Quantity),
		zap.Int("new_quantity", item.Quantity),
		zap.String("status", string(item.Status)))

	return &models.OperationResult{NewQuantity: item.Quantity, Status: item.Status}, nil
}
