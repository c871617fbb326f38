package reporting

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/stockroom/internal/domain/models"
)

type stubSource struct {
	items []models.InventoryItem
	err   error
}

func (s *stubSource) LowStockItems(ctx context.Context) ([]models.InventoryItem, error) {
	return s.items, s.err
}

func TestLowStockReport(t *testing.T) {
	svc := NewService(&stubSource{items: []models.InventoryItem{
		{ID: 1, Name: "flour", Quantity: 2, LowStockThreshold: 5, Status: models.StatusNeedRestock},
		{ID: 3, Name: "salt", Quantity: 5, LowStockThreshold: 5, Status: models.StatusNormal},
	}}, nil)

	entries, err := svc.LowStockReport(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, models.LowStockEntry{ID: 1, Name: "flour", Quantity: 2, LowStockThreshold: 5, Status: models.StatusNeedRestock}, entries[0])
	assert.Equal(t, int64(3), entries[1].ID)
}

func TestLowStockReport_StorageFailure(t *testing.T) {
	svc := NewService(&stubSource{err: errors.New("disk gone")}, nil)

	_, err := svc.LowStockReport(context.Background())
	assert.Error(t, err)
}

func TestSummary(t *testing.T) {
	svc := NewService(&stubSource{}, nil)

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Low stock summary: all items above threshold.", summary)

	svc = NewService(&stubSource{items: []models.InventoryItem{
		{ID: 1, Name: "flour", Quantity: 2, LowStockThreshold: 5},
		{ID: 2, Name: "sugar", Quantity: 0, LowStockThreshold: 3},
	}}, nil)

	summary, err = svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Low stock summary: 2 item(s) need attention: flour (2/5), sugar (0/3).", summary)
}
