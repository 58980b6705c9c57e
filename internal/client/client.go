// Package client provides a typed HTTP client for the inventory API.
//
// Network and decode failures on advisory calls are swallowed and replaced
// with conservative defaults (unavailable / success:false) so callers never
// crash on a transient error; failures are logged instead.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"void-shop/internal/model"

	"github.com/rs/zerolog"
)

const (
	localBaseURL   = "http://localhost:8080/api"
	defaultBaseURL = "https://void-shop-api.onrender.com/api"
)

// ResolveBaseURL picks the API base URL from the host the client runs
// against: local development hosts use the local server, everything else the
// deployed endpoint.
func ResolveBaseURL(hostname string) string {
	if hostname == "localhost" || hostname == "127.0.0.1" {
		return localBaseURL
	}
	return defaultBaseURL
}

// Client calls the inventory API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// New creates a new API client. A nil httpClient falls back to a default
// client with no timeout.
func New(baseURL string, httpClient *http.Client, logger zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger.With().Str("component", "api-client").Logger(),
	}
}

// ProductDetail is the response of a single-product lookup.
type ProductDetail struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	SoldOut   bool    `json:"soldOut"`
}

// PurchaseOutcome is the decoded result of a purchase attempt, success or
// failure.
type PurchaseOutcome struct {
	Success     bool   `json:"success"`
	NewQuantity int    `json:"newQuantity"`
	SoldOut     bool   `json:"soldOut"`
	Message     string `json:"message"`
	Error       string `json:"error"`
}

// ResetOutcome is the decoded result of an inventory reset.
type ResetOutcome struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

// UpdateOutcome is the decoded result of a quantity update.
type UpdateOutcome struct {
	Success bool   `json:"success"`
	Product struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
		SoldOut   bool   `json:"soldOut"`
	} `json:"product"`
	Error string `json:"error"`
}

// GetInventory fetches the full inventory snapshot. Errors are returned so
// the caller (typically the watcher) can degrade to its own safe default.
func (c *Client) GetInventory(ctx context.Context) (map[string]model.InventoryEntry, error) {
	var inventory map[string]model.InventoryEntry
	if err := c.getJSON(ctx, c.baseURL+"/inventory", &inventory); err != nil {
		c.logger.Warn().Err(err).Msg("failed to fetch inventory")
		return nil, err
	}
	return inventory, nil
}

// GetProduct fetches a single product.
func (c *Client) GetProduct(ctx context.Context, productID string) (*ProductDetail, error) {
	var product ProductDetail
	if err := c.getJSON(ctx, c.baseURL+"/inventory/"+productID, &product); err != nil {
		c.logger.Warn().Err(err).Str("product_id", productID).Msg("failed to fetch product")
		return nil, err
	}
	return &product, nil
}

// CheckAvailability reports whether a product can be bought. Any failure
// degrades to {available:false, soldOut:true}.
func (c *Client) CheckAvailability(ctx context.Context, productID string) model.Availability {
	var availability model.Availability
	err := c.getJSON(ctx, c.baseURL+"/inventory/"+productID+"/available", &availability)
	if err != nil {
		c.logger.Warn().Err(err).Str("product_id", productID).Msg("availability check failed, assuming sold out")
		return model.Availability{Available: false, SoldOut: true}
	}
	return availability
}

// Purchase attempts to buy one unit. Transport failures are reported as an
// unsuccessful outcome, never as a panic or a nil result.
func (c *Client) Purchase(ctx context.Context, productID string) PurchaseOutcome {
	var outcome PurchaseOutcome
	err := c.postJSON(ctx, c.baseURL+"/inventory/"+productID+"/purchase", nil, &outcome)
	if err != nil {
		c.logger.Warn().Err(err).Str("product_id", productID).Msg("purchase request failed")
		return PurchaseOutcome{Success: false, Error: err.Error()}
	}
	return outcome
}

// Reset sets every product's quantity back to the default.
func (c *Client) Reset(ctx context.Context) ResetOutcome {
	var outcome ResetOutcome
	err := c.postJSON(ctx, c.baseURL+"/inventory/reset", nil, &outcome)
	if err != nil {
		c.logger.Warn().Err(err).Msg("reset request failed")
		return ResetOutcome{Success: false, Error: err.Error()}
	}
	return outcome
}

// UpdateQuantity overwrites a product's quantity.
func (c *Client) UpdateQuantity(ctx context.Context, productID string, quantity int) UpdateOutcome {
	body, _ := json.Marshal(map[string]int{"quantity": quantity})

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+"/inventory/"+productID, bytes.NewReader(body))
	if err != nil {
		return UpdateOutcome{Success: false, Error: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")

	var outcome UpdateOutcome
	if err := c.do(req, &outcome); err != nil {
		c.logger.Warn().Err(err).Str("product_id", productID).Msg("update request failed")
		return UpdateOutcome{Success: false, Error: err.Error()}
	}
	return outcome
}

// getJSON performs a GET and decodes a 2xx response into out.
func (c *Client) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// postJSON performs a POST and decodes the response body into out
// regardless of status, since the API encodes purchase failures in the body.
func (c *Client) postJSON(ctx context.Context, url string, body io.Reader, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

// do executes a request and decodes the body into out whatever the status.
func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return json.NewDecoder(resp.Body).Decode(out)
}
