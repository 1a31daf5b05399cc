package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"vendor-service/internal/model"
)

// VendorClient is an HTTP client for the vendor service API. Token is only
// required for the admin write operations.
type VendorClient struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

// Stats represents the vendor statistics response
type Stats struct {
	TotalVendors  int64 `json:"total_vendors"`
	ActiveVendors int64 `json:"active_vendors"`
	Categories    int   `json:"categories"`
}

// ErrorResponse represents an error payload from the vendor service
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewVendorClient creates a new vendor client instance
func NewVendorClient(baseURL string) *VendorClient {
	return &VendorClient{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// ListVendors fetches all active vendors
func (c *VendorClient) ListVendors() ([]model.Vendor, error) {
	var vendors []model.Vendor
	if err := c.do(http.MethodGet, "/api/vendors", nil, &vendors, "failed to fetch vendors"); err != nil {
		return nil, err
	}
	return vendors, nil
}

// GetVendor fetches a single vendor by id
func (c *VendorClient) GetVendor(id uint) (*model.Vendor, error) {
	var vendor model.Vendor
	path := fmt.Sprintf("/api/vendors/%d", id)
	if err := c.do(http.MethodGet, path, nil, &vendor, "failed to fetch vendor"); err != nil {
		return nil, err
	}
	return &vendor, nil
}

// SearchVendors fetches active vendors matching the query
func (c *VendorClient) SearchVendors(query string) ([]model.Vendor, error) {
	var vendors []model.Vendor
	path := "/api/vendors/search?q=" + url.QueryEscape(query)
	if err := c.do(http.MethodGet, path, nil, &vendors, "failed to search vendors"); err != nil {
		return nil, err
	}
	return vendors, nil
}

// CreateVendor creates a new vendor (admin only)
func (c *VendorClient) CreateVendor(vendor *model.Vendor) (*model.Vendor, error) {
	var created model.Vendor
	if err := c.do(http.MethodPost, "/api/vendors", vendor, &created, "failed to add vendor"); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateVendor applies a partial update to a vendor (admin only)
func (c *VendorClient) UpdateVendor(id uint, patch *model.VendorUpdate) (*model.Vendor, error) {
	var updated model.Vendor
	path := fmt.Sprintf("/api/vendors/%d", id)
	if err := c.do(http.MethodPut, path, patch, &updated, "failed to update vendor"); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteVendor soft-deletes a vendor (admin only)
func (c *VendorClient) DeleteVendor(id uint) error {
	path := fmt.Sprintf("/api/vendors/%d", id)
	return c.do(http.MethodDelete, path, nil, nil, "failed to delete vendor")
}

// GetStats fetches the vendor statistics overview (admin only)
func (c *VendorClient) GetStats() (*Stats, error) {
	var stats Stats
	if err := c.do(http.MethodGet, "/api/vendors/stats/overview", nil, &stats, "failed to fetch vendor stats"); err != nil {
		return nil, err
	}
	return &stats, nil
}

// do issues a request and decodes the response. Failures surface as a generic
// message; the underlying kind is not discriminated beyond success/failure.
func (c *VendorClient) do(method, path string, body, out interface{}, failMsg string) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: %w", failMsg, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: %w", failMsg, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", failMsg, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: %w", failMsg, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error != "" {
			return fmt.Errorf("%s: %s", failMsg, errResp.Error)
		}
		return fmt.Errorf("%s: status %d", failMsg, resp.StatusCode)
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("%s: %w", failMsg, err)
		}
	}
	return nil
}
