// Package stockroom provides a typed Go client for the stockroom HTTP API.
package stockroom

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/stockroom/internal/domain/models"
)

// Client exposes the stockroom API operations to Go callers.
type Client struct {
	httpClient *resty.Client
}

// NewClient builds an API client targeting the given base URL.
func NewClient(baseURL string) *Client {
	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	return &Client{httpClient: restyClient}
}

// apiError mirrors the service's JSON error body.
type apiError struct {
	Message string `json:"message"`
}

// createResponse mirrors the item-creation response body.
type createResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

// operationResponse mirrors the stock-operation response body.
type operationResponse struct {
	Message     string        `json:"message"`
	NewQuantity int           `json:"new_quantity"`
	Status      models.Status `json:"status"`
}

// ListItems returns every item known to the service.
func (c *Client) ListItems(ctx context.Context) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&items).
		SetError(&apiError{}).
		Get("/api/items")
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}
	return items, nil
}

// GetItem fetches a single item by id.
func (c *Client) GetItem(ctx context.Context, id int64) (*models.InventoryItem, error) {
	item := new(models.InventoryItem)
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(item).
		SetError(&apiError{}).
		Get(fmt.Sprintf("/api/items/%d", id))
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}
	return item, nil
}

// CreateItem creates a new item and returns its assigned identifier.
func (c *Client) CreateItem(ctx context.Context, req models.CreateItemRequest) (int64, error) {
	result := new(createResponse)
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(result).
		SetError(&apiError{}).
		Post("/api/items")
	if err := checkResponse(resp, err); err != nil {
		return 0, err
	}
	return result.ID, nil
}

// UpdateItem applies a partial edit to an item.
func (c *Client) UpdateItem(ctx context.Context, id int64, req models.UpdateItemRequest) error {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(req).
		SetError(&apiError{}).
		Put(fmt.Sprintf("/api/items/%d", id))
	return checkResponse(resp, err)
}

// DeleteItem removes an item and its operation history.
func (c *Client) DeleteItem(ctx context.Context, id int64) error {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetError(&apiError{}).
		Delete(fmt.Sprintf("/api/items/%d", id))
	return checkResponse(resp, err)
}

// ApplyOperation records a stock-in or stock-out movement and returns the
// resulting quantity and status.
func (c *Client) ApplyOperation(ctx context.Context, id int64, req models.OperationRequest) (*models.OperationResult, error) {
	result := new(operationResponse)
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(result).
		SetError(&apiError{}).
		Post(fmt.Sprintf("/api/items/%d/operation", id))
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}
	return &models.OperationResult{NewQuantity: result.NewQuantity, Status: result.Status}, nil
}

// SetStatus assigns an item status directly.
func (c *Client) SetStatus(ctx context.Context, id int64, status string) error {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(models.StatusUpdateRequest{Status: status}).
		SetError(&apiError{}).
		Put(fmt.Sprintf("/api/items/%d/status", id))
	return checkResponse(resp, err)
}

// SearchItems returns items whose name contains keyword.
func (c *Client) SearchItems(ctx context.Context, keyword string) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("keyword", keyword).
		SetResult(&items).
		SetError(&apiError{}).
		Get("/api/items/search")
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}
	return items, nil
}

// LowStockReport returns items at or under their restock threshold.
func (c *Client) LowStockReport(ctx context.Context) ([]models.LowStockEntry, error) {
	var entries []models.LowStockEntry
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&entries).
		SetError(&apiError{}).
		Get("/api/reports/low-stock")
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}
	return entries, nil
}

func checkResponse(resp *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("stockroom api request: %w", err)
	}
	if resp.IsError() {
		if apiErr, ok := resp.Error().(*apiError); ok && apiErr.Message != "" {
			return fmt.Errorf("stockroom api: %s (status %d)", apiErr.Message, resp.StatusCode())
		}
		return fmt.Errorf("stockroom api: unexpected status %d", resp.StatusCode())
	}
	return nil
}
