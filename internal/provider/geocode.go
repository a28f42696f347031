package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"aerodns/internal/platform/metrics"
	"aerodns/internal/region"
)

// HTTPGeocodeClient queries a reverse-geocode API:
//
//	GET {base}/v1/reverse?lat=..&lon=..
//	200 -> {"country_code":"FR","country":"France"} or {"water":"North Sea"}
type HTTPGeocodeClient struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// GeocodeOption configures an HTTPGeocodeClient.
type GeocodeOption func(*HTTPGeocodeClient)

func WithGeocodeLogger(logger *slog.Logger) GeocodeOption {
	return func(c *HTTPGeocodeClient) {
		c.logger = logger
	}
}

func WithGeocodeMetrics(m *metrics.Metrics) GeocodeOption {
	return func(c *HTTPGeocodeClient) {
		c.metrics = m
	}
}

func WithGeocodeHTTPClient(client *http.Client) GeocodeOption {
	return func(c *HTTPGeocodeClient) {
		c.client = client
	}
}

// NewHTTPGeocodeClient constructs a geocode client against the given base URL.
func NewHTTPGeocodeClient(baseURL string, timeout time.Duration, opts ...GeocodeOption) *HTTPGeocodeClient {
	c := &HTTPGeocodeClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type reverseResponse struct {
	CountryCode string `json:"country_code"`
	Country     string `json:"country"`
	Water       string `json:"water"`
}

func (c *HTTPGeocodeClient) Reverse(ctx context.Context, lat, lon float64) (region.Resolution, error) {
	start := time.Now()
	defer func() {
		c.metrics.ObserveProvider("geocode", time.Since(start))
	}()

	endpoint := fmt.Sprintf("%s/v1/reverse?lat=%f&lon=%f", c.baseURL, lat, lon)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return region.Resolution{}, newError("geocode", CategoryBadData, "build request", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return region.Resolution{}, newError("geocode", CategoryOutage, "reverse request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return region.Resolution{}, newError("geocode", CategoryRejected,
			fmt.Sprintf("reverse request returned %d", resp.StatusCode), nil)
	}

	var body reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return region.Resolution{}, newError("geocode", CategoryBadData, "decode reverse response", err)
	}

	res := region.Resolution{
		CountryCode: body.CountryCode,
		CountryName: body.Country,
		Water:       body.Water,
	}
	if res.CountryCode == "" && res.Water == "" {
		c.logger.Debug("reverse geocode unresolved", "lat", lat, "lon", lon)
	}
	return res, nil
}
