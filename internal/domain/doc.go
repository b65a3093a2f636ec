// Package domain implements the forecast lookup core: request validation,
// forecast parameter construction, and the geocode-then-fetch sequence.
//
// # Upstream Conventions
//
// Locations are resolved with the Open-Meteo geocoding search API
// (https://open-meteo.com/en/docs/geocoding-api). The query always requests a
// single candidate (count=1) and the first element of the results array is
// taken as the best match; an optional country parameter narrows the search.
// An empty results array means the place name is unknown, which is a
// [NotFoundError] rather than a transport failure.
//
// Forecast data comes from the Open-Meteo forecast API
// (https://open-meteo.com/en/docs). Every lookup requests the same variable
// set:
//
//	current: temperature_2m, rain, relative_humidity_2m, wind_speed_10m
//	daily:   temperature_2m_max, temperature_2m_min, rain_sum
//
// Dates are calendar dates in UTC (YYYY-MM-DD) and the forecast timezone is
// pinned to UTC. When the caller omits start_date or end_date, each defaults
// independently to the current UTC date, computed fresh per invocation so a
// long-lived process never serves a stale "today".
//
// The forecast response body is treated as opaque: it is re-indented for
// readability and returned without any reinterpretation of its contents.
package domain
