package stockroom

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/stockroom/internal/domain/models"
	"github.com/mamadbah2/stockroom/internal/repository/sqlite"
	"github.com/mamadbah2/stockroom/internal/server/handlers"
	"github.com/mamadbah2/stockroom/internal/server/router"
	"github.com/mamadbah2/stockroom/internal/service/inventory"
	"github.com/mamadbah2/stockroom/internal/service/reporting"
)

// newTestClient spins up the full service on a temporary database and returns
// a client pointed at it.
func newTestClient(t *testing.T) *Client {
	t.Helper()

	path := filepath.Join(t.TempDir(), "inventory.db")
	repo, err := sqlite.New(context.Background(), path, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	inventorySvc := inventory.NewService(repo, nil)
	reportingSvc := reporting.NewService(repo, nil)
	handler := handlers.NewItemHandler(inventorySvc, reportingSvc, nil)

	srv := httptest.NewServer(router.New(handler, "", nil))
	t.Cleanup(srv.Close)

	return NewClient(srv.URL)
}

func newItem(name string, quantity, threshold int) models.CreateItemRequest {
	price := decimal.NewFromFloat(2.75)
	return models.CreateItemRequest{
		Name:              name,
		Description:       "e2e fixture",
		Quantity:          &quantity,
		UnitPrice:         &price,
		LowStockThreshold: &threshold,
	}
}

func TestItemLifecycle(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	id, err := client.CreateItem(ctx, newItem("flour", 10, 5))
	require.NoError(t, err)
	require.Positive(t, id)

	item, err := client.GetItem(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "flour", item.Name)
	assert.Equal(t, 10, item.Quantity)
	assert.Equal(t, models.StatusNormal, item.Status)
	assert.True(t, item.UnitPrice.Equal(decimal.NewFromFloat(2.75)))
	assert.False(t, item.CreatedAt.IsZero())

	// Stock-out of 6 drops to 4, at/below threshold 5 -> need_restock.
	result, err := client.ApplyOperation(ctx, id, models.OperationRequest{OperationType: "out", Quantity: 6, Notes: "order #81"})
	require.NoError(t, err)
	assert.Equal(t, 4, result.NewQuantity)
	assert.Equal(t, models.StatusNeedRestock, result.Status)

	// First shipment arriving: restocking even though 5 <= threshold.
	result, err = client.ApplyOperation(ctx, id, models.OperationRequest{OperationType: "in", Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, 5, result.NewQuantity)
	assert.Equal(t, models.StatusRestocking, result.Status)

	report, err := client.LowStockReport(ctx)
	require.NoError(t, err)
	require.Len(t, report, 1)
	assert.Equal(t, id, report[0].ID)
	assert.Equal(t, models.StatusRestocking, report[0].Status)

	// Replenishment clears the threshold.
	result, err = client.ApplyOperation(ctx, id, models.OperationRequest{OperationType: "in", Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, 8, result.NewQuantity)
	assert.Equal(t, models.StatusNormal, result.Status)

	report, err = client.LowStockReport(ctx)
	require.NoError(t, err)
	assert.Empty(t, report)

	name := "bread flour"
	require.NoError(t, client.UpdateItem(ctx, id, models.UpdateItemRequest{Name: &name}))

	items, err := client.SearchItems(ctx, "bread")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "bread flour", items[0].Name)

	items, err = client.SearchItems(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, items, "empty keyword must not dump all items")

	require.NoError(t, client.SetStatus(ctx, id, "restocking"))
	item, err = client.GetItem(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusRestocking, item.Status)

	require.NoError(t, client.DeleteItem(ctx, id))

	_, err = client.GetItem(ctx, id)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestCreateItem_MissingFields(t *testing.T) {
	client := newTestClient(t)

	_, err := client.CreateItem(context.Background(), models.CreateItemRequest{Name: "flour"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}

func TestApplyOperation_Failures(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	id, err := client.CreateItem(ctx, newItem("flour", 4, 2))
	require.NoError(t, err)

	_, err = client.ApplyOperation(ctx, id, models.OperationRequest{OperationType: "out", Quantity: 9})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient stock")

	// The failed stock-out must leave the item untouched.
	item, err := client.GetItem(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 4, item.Quantity)
	assert.Equal(t, models.StatusNormal, item.Status)

	_, err = client.ApplyOperation(ctx, id, models.OperationRequest{OperationType: "transfer", Quantity: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")

	_, err = client.ApplyOperation(ctx, 404, models.OperationRequest{OperationType: "in", Quantity: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestSetStatus_InvalidValue(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	id, err := client.CreateItem(ctx, newItem("flour", 4, 2))
	require.NoError(t, err)

	err = client.SetStatus(ctx, id, "sold_out")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid status")
}

func TestDeleteItem_Missing(t *testing.T) {
	client := newTestClient(t)

	err := client.DeleteItem(context.Background(), 99)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}
