package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"aerodns/internal/platform/metrics"
)

// HTTPLocationClient queries a flight position API:
//
//	GET {base}/v1/position/{tail}
//	200 -> {"found":true,"lat":..,"lon":..,"callsign":..,"altitude":..}
//	404 -> aircraft unknown to the provider, treated as not observable
type HTTPLocationClient struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// LocationOption configures an HTTPLocationClient.
type LocationOption func(*HTTPLocationClient)

func WithLocationLogger(logger *slog.Logger) LocationOption {
	return func(c *HTTPLocationClient) {
		c.logger = logger
	}
}

func WithLocationMetrics(m *metrics.Metrics) LocationOption {
	return func(c *HTTPLocationClient) {
		c.metrics = m
	}
}

func WithLocationHTTPClient(client *http.Client) LocationOption {
	return func(c *HTTPLocationClient) {
		c.client = client
	}
}

// NewHTTPLocationClient constructs a location client against the given base
// URL.
func NewHTTPLocationClient(baseURL string, timeout time.Duration, opts ...LocationOption) *HTTPLocationClient {
	c := &HTTPLocationClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type positionResponse struct {
	Found       bool    `json:"found"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Callsign    string  `json:"callsign"`
	Altitude    float64 `json:"altitude"`
	GroundSpeed float64 `json:"ground_speed"`
	Error       string  `json:"error"`
}

func (c *HTTPLocationClient) Position(ctx context.Context, tail string) (Observation, error) {
	start := time.Now()
	defer func() {
		c.metrics.ObserveProvider("location", time.Since(start))
	}()

	endpoint := fmt.Sprintf("%s/v1/position/%s", c.baseURL, url.PathEscape(tail))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Observation{}, newError("location", CategoryBadData, "build request", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return Observation{}, newError("location", CategoryOutage, "position request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		// Provider does not know this airframe right now; same as not flying.
		c.logger.Debug("aircraft not observable", "tail", tail)
		return Observation{Found: false}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return Observation{}, newError("location", CategoryRejected,
			fmt.Sprintf("position request returned %d", resp.StatusCode), nil)
	}

	var body positionResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Observation{}, newError("location", CategoryBadData, "decode position response", err)
	}
	if body.Error != "" {
		return Observation{}, newError("location", CategoryRejected, body.Error, nil)
	}

	return Observation{
		Found:       body.Found,
		Lat:         body.Lat,
		Lon:         body.Lon,
		Callsign:    body.Callsign,
		Altitude:    body.Altitude,
		GroundSpeed: body.GroundSpeed,
		ObservedAt:  time.Now().UTC(),
	}, nil
}
