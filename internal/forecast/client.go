// Package forecast is a thin HTTP client for the external forecast service.
// The forecasting model itself is opaque; this client only fetches the
// actual/forecast series pair for one risk endpoint.
package forecast

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ITS-ERP/qms-risk-backend/internal/risk"
)

// Series is the forecast service's response shape.
type Series struct {
	ActualData   []risk.SeriesPoint `json:"actual_data"`
	ForecastData []risk.SeriesPoint `json:"forecast_data"`
}

// Client calls the forecast service over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a forecast client. A non-positive timeout defaults to 10s.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Lookup fetches the series pair for one endpoint. codes carries the tenant
// identity field the service expects (industry_code, supplier_code or
// retail_code). Any transport or decode failure is returned as an error; the
// orchestration layer downgrades it to an "unavailable" prediction.
func (c *Client) Lookup(ctx context.Context, endpoint string, codes map[string]string) (*Series, error) {
	body := map[string]string{"endpoint": endpoint}
	for k, v := range codes {
		body[k] = v
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal forecast request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build forecast request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call forecast service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("forecast service returned %d", resp.StatusCode)
	}

	var series Series
	if err := json.NewDecoder(resp.Body).Decode(&series); err != nil {
		return nil, fmt.Errorf("decode forecast response: %w", err)
	}
	return &series, nil
}
