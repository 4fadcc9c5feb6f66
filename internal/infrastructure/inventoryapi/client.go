// Package inventoryapi implements the InventoryGateway port over the remote
// shop inventory REST API.
package inventoryapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dukahub/reception-api/internal/domain/entity"
	"github.com/dukahub/reception-api/internal/domain/gateway"
	"github.com/dukahub/reception-api/pkg/apperror"
)

// Client talks to the remote inventory API. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ gateway.InventoryGateway = (*Client)(nil)

// NewClient creates a client for the given base URL, e.g.
// "https://api.example.com/api".
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// errorBody is the remote API's error envelope. Older endpoints use
// "error", newer ones "message"; accept both.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, ok := TokenFromContext(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperror.NewAppError(apperror.ErrUpstream.Code, fmt.Sprintf("inventory API unreachable: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var remote errorBody
		raw, _ := io.ReadAll(resp.Body)
		message := ""
		if json.Unmarshal(raw, &remote) == nil {
			if remote.Message != "" {
				message = remote.Message
			} else {
				message = remote.Error
			}
		}
		return apperror.NewUpstreamError(resp.StatusCode, message)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperror.NewAppError(apperror.ErrUpstream.Code, fmt.Sprintf("decode inventory API response: %v", err))
	}
	return nil
}

// ListProducts fetches the shop's product catalog.
func (c *Client) ListProducts(ctx context.Context, shopID string) ([]entity.Product, error) {
	var products []entity.Product
	if err := c.do(ctx, http.MethodGet, "/shops/"+shopID+"/inventory/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// CreateProduct creates a product on the remote API and returns the full
// created entity, server-assigned id included.
func (c *Client) CreateProduct(ctx context.Context, shopID string, payload *entity.ProductPayload) (*entity.Product, error) {
	var product entity.Product
	if err := c.do(ctx, http.MethodPost, "/shops/"+shopID+"/inventory/products", payload, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// ListSuppliers fetches the shop's suppliers.
func (c *Client) ListSuppliers(ctx context.Context, shopID string) ([]entity.Supplier, error) {
	var suppliers []entity.Supplier
	if err := c.do(ctx, http.MethodGet, "/shops/"+shopID+"/inventory/suppliers", nil, &suppliers); err != nil {
		return nil, err
	}
	return suppliers, nil
}

// CreateSupplier creates a supplier from a bare name.
func (c *Client) CreateSupplier(ctx context.Context, shopID string, payload *entity.SupplierPayload) (*entity.Supplier, error) {
	var supplier entity.Supplier
	if err := c.do(ctx, http.MethodPost, "/shops/"+shopID+"/inventory/suppliers", payload, &supplier); err != nil {
		return nil, err
	}
	return &supplier, nil
}

// ListReceptions fetches all receptions of a shop.
func (c *Client) ListReceptions(ctx context.Context, shopID string) ([]entity.Reception, error) {
	var receptions []entity.Reception
	if err := c.do(ctx, http.MethodGet, "/shops/"+shopID+"/inventory/receptions", nil, &receptions); err != nil {
		return nil, err
	}
	return receptions, nil
}

// GetReception fetches a single reception with its lines.
func (c *Client) GetReception(ctx context.Context, shopID, receptionID string) (*entity.Reception, error) {
	var reception entity.Reception
	if err := c.do(ctx, http.MethodGet, "/shops/"+shopID+"/inventory/receptions/"+receptionID, nil, &reception); err != nil {
		return nil, err
	}
	return &reception, nil
}

// CreateReception submits a new reception.
func (c *Client) CreateReception(ctx context.Context, shopID string, payload *entity.ReceptionPayload) (*entity.Reception, error) {
	var reception entity.Reception
	if err := c.do(ctx, http.MethodPost, "/shops/"+shopID+"/inventory/receptions", payload, &reception); err != nil {
		return nil, err
	}
	return &reception, nil
}

// UpdateReception replaces a persisted reception.
func (c *Client) UpdateReception(ctx context.Context, shopID, receptionID string, payload *entity.ReceptionPayload) (*entity.Reception, error) {
	var reception entity.Reception
	if err := c.do(ctx, http.MethodPut, "/shops/"+shopID+"/inventory/receptions/"+receptionID, payload, &reception); err != nil {
		return nil, err
	}
	return &reception, nil
}

// DeleteReception deletes a reception.
func (c *Client) DeleteReception(ctx context.Context, shopID, receptionID string) error {
	return c.do(ctx, http.MethodDelete, "/shops/"+shopID+"/inventory/receptions/"+receptionID, nil, nil)
}
