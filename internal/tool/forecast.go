package tool

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/couchcryptid/forecast-lookup/internal/domain"
)

// ForecastToolName is the registered name of the weather forecast tool.
const ForecastToolName = "getWeatherForecast"

// ForecastService resolves a forecast request to formatted text.
type ForecastService interface {
	GetWeatherForecast(ctx context.Context, req domain.ForecastRequest) (string, error)
}

// RegisterForecast adds the weather forecast tool to the registry. The tool
// declares admin permission; enforcement belongs to the hosting surface, the
// handler itself stays a plain callable.
func RegisterForecast(r *Registry, svc ForecastService) {
	def := Definition{
		Name:        ForecastToolName,
		Description: "Retrieve weather forecast from Open-Meteo",
		Permission:  PermissionAdmin,
	}
	r.Register(def, func(ctx context.Context, params json.RawMessage) (string, error) {
		var req domain.ForecastRequest
		if len(params) > 0 {
			if err := json.Unmarshal(params, &req); err != nil {
				return "", fmt.Errorf("%w: decode params: %v", domain.ErrInvalidRequest, err)
			}
		}
		return svc.GetWeatherForecast(ctx, req)
	})
}
