package domain

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frozenClock(t *testing.T, iso string) {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, iso)
	require.NoError(t, err)
	SetClock(clockwork.NewFakeClockAt(ts))
	t.Cleanup(func() { SetClock(nil) })
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     ForecastRequest
		wantErr string
	}{
		{
			name: "minimal valid",
			req:  ForecastRequest{LocationName: "Berlin"},
		},
		{
			name: "all fields valid",
			req: ForecastRequest{
				LocationName:    "Berlin",
				Country:         "Germany",
				StartDate:       "2026-08-25",
				EndDate:         "2026-08-27",
				TemperatureUnit: UnitFahrenheit,
			},
		},
		{
			name:    "missing location",
			req:     ForecastRequest{Country: "Germany"},
			wantErr: "location_name",
		},
		{
			name:    "malformed start date",
			req:     ForecastRequest{LocationName: "Berlin", StartDate: "25-08-2026"},
			wantErr: "start_date",
		},
		{
			name:    "malformed end date",
			req:     ForecastRequest{LocationName: "Berlin", EndDate: "tomorrow"},
			wantErr: "end_date",
		},
		{
			name:    "unknown temperature unit",
			req:     ForecastRequest{LocationName: "Berlin", TemperatureUnit: "kelvin"},
			wantErr: "temperature_unit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidRequest)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestBuildForecastParams_DatesDefaultToToday(t *testing.T) {
	frozenClock(t, "2026-08-25T14:30:00Z")

	params := BuildForecastParams(ForecastRequest{LocationName: "Berlin"}, GeocodeResult{})

	assert.Equal(t, "2026-08-25", params.StartDate)
	assert.Equal(t, "2026-08-25", params.EndDate)
}

func TestBuildForecastParams_TodayCrossesUTCMidnight(t *testing.T) {
	// 23:59 UTC and 00:01 UTC the next day must produce different defaults.
	frozenClock(t, "2026-08-25T23:59:00Z")
	before := BuildForecastParams(ForecastRequest{LocationName: "Berlin"}, GeocodeResult{})

	frozenClock(t, "2026-08-26T00:01:00Z")
	after := BuildForecastParams(ForecastRequest{LocationName: "Berlin"}, GeocodeResult{})

	assert.Equal(t, "2026-08-25", before.StartDate)
	assert.Equal(t, "2026-08-26", after.StartDate)
}

func TestBuildForecastParams_DatesDefaultIndependently(t *testing.T) {
	frozenClock(t, "2026-08-25T14:30:00Z")

	onlyStart := BuildForecastParams(ForecastRequest{
		LocationName: "Berlin",
		StartDate:    "2026-08-20",
	}, GeocodeResult{})
	assert.Equal(t, "2026-08-20", onlyStart.StartDate)
	assert.Equal(t, "2026-08-25", onlyStart.EndDate, "end date defaults to today, not to start date")

	onlyEnd := BuildForecastParams(ForecastRequest{
		LocationName: "Berlin",
		EndDate:      "2026-08-30",
	}, GeocodeResult{})
	assert.Equal(t, "2026-08-25", onlyEnd.StartDate, "start date defaults to today, not to end date")
	assert.Equal(t, "2026-08-30", onlyEnd.EndDate)
}

func TestBuildForecastParams_VerbatimCopies(t *testing.T) {
	params := BuildForecastParams(ForecastRequest{
		LocationName:    "Berlin",
		StartDate:       "2026-08-25",
		EndDate:         "2026-08-26",
		TemperatureUnit: UnitFahrenheit,
	}, GeocodeResult{Latitude: 52.52, Longitude: 13.41})

	assert.Equal(t, 52.52, params.Latitude)
	assert.Equal(t, 13.41, params.Longitude)
	assert.Equal(t, UnitFahrenheit, params.TemperatureUnit)
	assert.Equal(t, "temperature_2m,rain,relative_humidity_2m,wind_speed_10m", params.Current)
	assert.Equal(t, "temperature_2m_max,temperature_2m_min,rain_sum", params.Daily)
	assert.Equal(t, "UTC", params.Timezone)
}

func TestBuildForecastParams_DefaultUnitIsCelsius(t *testing.T) {
	params := BuildForecastParams(ForecastRequest{LocationName: "Berlin"}, GeocodeResult{})
	assert.Equal(t, UnitCelsius, params.TemperatureUnit)
}

func TestBuildForecastParams_IdempotentForExplicitDates(t *testing.T) {
	req := ForecastRequest{
		LocationName:    "Berlin",
		Country:         "Germany",
		StartDate:       "2026-08-25",
		EndDate:         "2026-08-26",
		TemperatureUnit: UnitCelsius,
	}
	geo := GeocodeResult{Latitude: 52.52, Longitude: 13.41}

	assert.Equal(t, BuildForecastParams(req, geo), BuildForecastParams(req, geo))
}
