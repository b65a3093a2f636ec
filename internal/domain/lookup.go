package domain

import (
	"context"
	"fmt"
	"log/slog"
)

// Lookup performs the two-step forecast resolution: geocode the location,
// then fetch current and daily forecast data for the coordinates.
type Lookup struct {
	geocoder Geocoder
	fetcher  ForecastFetcher
	logger   *slog.Logger
}

// NewLookup creates a Lookup over the given geocoder and forecast fetcher.
func NewLookup(g Geocoder, f ForecastFetcher, logger *slog.Logger) *Lookup {
	return &Lookup{geocoder: g, fetcher: f, logger: logger}
}

// GetWeatherForecast resolves the request's location and returns the forecast
// body as indented JSON text. Geocoding must succeed before the forecast
// endpoint is contacted; any earlier failure aborts the remaining steps.
func (l *Lookup) GetWeatherForecast(ctx context.Context, req ForecastRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	geo, err := l.geocoder.Geocode(ctx, req.LocationName, req.Country)
	if err != nil {
		return "", fmt.Errorf("geocode: %w", err)
	}
	l.logger.Debug("location resolved",
		"location", req.LocationName,
		"lat", geo.Latitude,
		"lon", geo.Longitude,
	)

	out, err := l.fetcher.FetchForecast(ctx, BuildForecastParams(req, geo))
	if err != nil {
		return "", fmt.Errorf("fetch forecast: %w", err)
	}
	return out, nil
}
