package openmeteo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/couchcryptid/forecast-lookup/internal/domain"
	"github.com/couchcryptid/forecast-lookup/internal/observability"
)

// Client implements domain.Geocoder and domain.ForecastFetcher against the
// Open-Meteo public APIs.
type Client struct {
	httpClient  *http.Client
	geocodeURL  string
	forecastURL string
	metrics     *observability.Metrics
	logger      *slog.Logger
}

// NewClient creates an Open-Meteo client for the given endpoints.
func NewClient(geocodeURL, forecastURL string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: timeout},
		geocodeURL:  geocodeURL,
		forecastURL: forecastURL,
		metrics:     metrics,
		logger:      logger,
	}
}

// Geocode resolves a location name to the best-match coordinates. The query
// requests a single candidate; the country filter is sent only when non-empty.
// A 2xx response with an empty results list is a domain.NotFoundError,
// anything non-2xx a transport error.
func (c *Client) Geocode(ctx context.Context, name, country string) (domain.GeocodeResult, error) {
	params := url.Values{
		"format": {"json"},
		"count":  {"1"},
		"name":   {name},
	}
	if country != "" {
		params.Set("country", country)
	}

	body, err := c.get(ctx, c.geocodeURL+"?"+params.Encode(), "geocoding")
	if err != nil {
		return domain.GeocodeResult{}, err
	}

	var decoded geocodeResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return domain.GeocodeResult{}, fmt.Errorf("decode geocoding response: %w", err)
	}
	if len(decoded.Results) == 0 {
		return domain.GeocodeResult{}, &domain.NotFoundError{Location: name}
	}

	first := decoded.Results[0]
	return domain.GeocodeResult{Latitude: first.Latitude, Longitude: first.Longitude}, nil
}

// FetchForecast retrieves forecast data for the given parameters and returns
// the response body re-indented with two spaces. Key order and number
// literals pass through untouched, so the output is byte-reproducible.
func (c *Client) FetchForecast(ctx context.Context, params domain.ForecastParams) (string, error) {
	q := url.Values{
		"latitude":         {formatCoord(params.Latitude)},
		"longitude":        {formatCoord(params.Longitude)},
		"current":          {params.Current},
		"daily":            {params.Daily},
		"timezone":         {params.Timezone},
		"start_date":       {params.StartDate},
		"end_date":         {params.EndDate},
		"temperature_unit": {params.TemperatureUnit},
	}

	body, err := c.get(ctx, c.forecastURL+"?"+q.Encode(), "forecast")
	if err != nil {
		return "", err
	}

	var out bytes.Buffer
	if err := json.Indent(&out, body, "", "  "); err != nil {
		return "", fmt.Errorf("indent forecast response: %w", err)
	}
	return out.String(), nil
}

func (c *Client) get(ctx context.Context, fullURL, service string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create %s request: %w", service, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.UpstreamDuration.WithLabelValues(service).Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.UpstreamRequests.WithLabelValues(service, "error").Inc()
		return nil, fmt.Errorf("%s request: %w", service, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.UpstreamRequests.WithLabelValues(service, "error").Inc()
		return nil, fmt.Errorf("read %s response: %w", service, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.metrics.UpstreamRequests.WithLabelValues(service, "error").Inc()
		return nil, fmt.Errorf("open-meteo %s API error: status %d: %s", service, resp.StatusCode, body)
	}

	c.metrics.UpstreamRequests.WithLabelValues(service, "success").Inc()
	return body, nil
}

// formatCoord renders a coordinate with the shortest representation that
// round-trips, so a latitude decoded as 52.52 goes back on the wire as "52.52".
func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Open-Meteo geocoding API response types.

type geocodeResponse struct {
	Results []geocodeResult `json:"results"`
}

type geocodeResult struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
