package domain

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Temperature units accepted in a ForecastRequest.
const (
	UnitCelsius    = "celsius"
	UnitFahrenheit = "fahrenheit"
)

// Fixed Open-Meteo variable selectors requested for every lookup.
const (
	currentFields = "temperature_2m,rain,relative_humidity_2m,wind_speed_10m"
	dailyFields   = "temperature_2m_max,temperature_2m_min,rain_sum"
)

const dateLayout = "2006-01-02"

// ErrInvalidRequest marks validation failures on a ForecastRequest.
var ErrInvalidRequest = errors.New("invalid forecast request")

// ForecastRequest is the caller input for a forecast lookup.
type ForecastRequest struct {
	LocationName    string `json:"location_name"`
	Country         string `json:"country,omitempty"`
	StartDate       string `json:"start_date,omitempty"` // YYYY-MM-DD, UTC
	EndDate         string `json:"end_date,omitempty"`   // YYYY-MM-DD, UTC
	TemperatureUnit string `json:"temperature_unit,omitempty"`
}

// Validate checks required fields and formats. An empty temperature unit is
// allowed and treated as celsius.
func (r ForecastRequest) Validate() error {
	if r.LocationName == "" {
		return fmt.Errorf("%w: location_name is required", ErrInvalidRequest)
	}
	for _, d := range []struct{ name, value string }{
		{"start_date", r.StartDate},
		{"end_date", r.EndDate},
	} {
		if d.value == "" {
			continue
		}
		if _, err := time.Parse(dateLayout, d.value); err != nil {
			return fmt.Errorf("%w: %s must be YYYY-MM-DD, got %q", ErrInvalidRequest, d.name, d.value)
		}
	}
	switch r.TemperatureUnit {
	case "", UnitCelsius, UnitFahrenheit:
	default:
		return fmt.Errorf("%w: temperature_unit must be %q or %q, got %q",
			ErrInvalidRequest, UnitCelsius, UnitFahrenheit, r.TemperatureUnit)
	}
	return nil
}

// GeocodeResult is the best-match coordinate pair for a location name.
// It lives only for the duration of a single lookup and is never cached.
type GeocodeResult struct {
	Latitude  float64
	Longitude float64
}

// NotFoundError reports that geocoding returned zero candidates for a
// location. Distinct from transport failures: the upstream answered, it just
// knows no such place.
type NotFoundError struct {
	Location string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("location %q not found", e.Location)
}

// ForecastParams is the complete parameter set for a forecast fetch.
type ForecastParams struct {
	Latitude        float64
	Longitude       float64
	Current         string
	Daily           string
	Timezone        string
	StartDate       string
	EndDate         string
	TemperatureUnit string
}

// BuildForecastParams combines a validated request and a geocode result into
// forecast parameters. start_date and end_date each default independently to
// the current UTC date, re-derived at call time.
func BuildForecastParams(req ForecastRequest, geo GeocodeResult) ForecastParams {
	today := clock.Now().UTC().Format(dateLayout)

	start := req.StartDate
	if start == "" {
		start = today
	}
	end := req.EndDate
	if end == "" {
		end = today
	}
	unit := req.TemperatureUnit
	if unit == "" {
		unit = UnitCelsius
	}

	return ForecastParams{
		Latitude:        geo.Latitude,
		Longitude:       geo.Longitude,
		Current:         currentFields,
		Daily:           dailyFields,
		Timezone:        "UTC",
		StartDate:       start,
		EndDate:         end,
		TemperatureUnit: unit,
	}
}

// Geocoder resolves a place name to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, name, country string) (GeocodeResult, error)
}

// ForecastFetcher retrieves forecast data for a parameter set and returns it
// as formatted text.
type ForecastFetcher interface {
	FetchForecast(ctx context.Context, params ForecastParams) (string, error)
}
