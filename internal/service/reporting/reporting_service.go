package reporting

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/domain/models"
)

// ItemSource provides the storage reads the reporting service needs.
type ItemSource interface {
	LowStockItems(ctx context.Context) ([]models.InventoryItem, error)
}

// Service exposes lightweight stock-level analytics.
type Service struct {
	repo   ItemSource
	logger *zap.Logger
}

// NewService wires a new reporting service instance.
func NewService(repository ItemSource, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repository, logger: logger}
}

// LowStockReport returns every item whose quantity is at or below its
// threshold, regardless of the cached status field.
func (s *Service) LowStockReport(ctx context.Context) ([]models.LowStockEntry, error) {
	items, err := s.repo.LowStockItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("load low stock items: %w", err)
	}

	entries := make([]models.LowStockEntry, 0, len(items))
	for _, item := range items {
		entries = append(entries, models.LowStockEntry{
			ID:                item.ID,
			Name:              item.Name,
			Quantity:          item.Quantity,
			LowStockThreshold: item.LowStockThreshold,
			Status:            item.Status,
		})
	}
	return entries, nil
}

// Summary formats a one-line low-stock overview for the scheduler snapshot.
func (s *Service) Summary(ctx context.Context) (string, error) {
	entries, err := s.LowStockReport(ctx)
	if err != nil {
		return "", err
	}

	if len(entries) == 0 {
		return "Low stock summary: all items above threshold.", nil
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, fmt.Sprintf("%s (%d/%d)", e.Name, e.Quantity, e.LowStockThreshold))
	}
	return fmt.Sprintf("Low stock summary: %d item(s) need attention: %s.", len(entries), strings.Join(names, ", ")), nil
}
