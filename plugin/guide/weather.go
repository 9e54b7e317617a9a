package guide

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tripnavi/tripnavi/internal/cache"
	"github.com/tripnavi/tripnavi/internal/geo"
)

// WeatherSnapshot is the current conditions at a coordinate.
type WeatherSnapshot struct {
	TemperatureC float64 `json:"temperatureC"`
	WindSpeedKmh float64 `json:"windSpeedKmh"`
	// WeatherCode is the WMO interpretation code reported by the provider.
	WeatherCode int    `json:"weatherCode"`
	ObservedAt  string `json:"observedAt"`
}

// WeatherResult is the typed outcome of a weather lookup.
type WeatherResult struct {
	Status  Status           `json:"status"`
	Weather *WeatherSnapshot `json:"weather,omitempty"`
}

// Weather returns current conditions for the coordinate. Concurrent lookups
// for the same rounded coordinate share one upstream fetch.
func (s *Service) Weather(ctx context.Context, coord geo.Coordinate) WeatherResult {
	if err := coord.Validate(); err != nil {
		slog.Debug("weather lookup rejected", "error", err)
		return WeatherResult{Status: StatusInvalidInput}
	}

	key := coord.Key()
	if res := s.weatherCache.Get(ctx, key); res.State == cache.Hit {
		snapshot := res.Value
		return WeatherResult{Status: StatusOK, Weather: &snapshot}
	}

	snapshot, err, _ := s.weatherGroup.Do(key, func() (WeatherSnapshot, error) {
		return s.fetchWeather(ctx, coord)
	})
	if err != nil {
		slog.Warn("weather fetch failed", "key", key, "error", err)
		return WeatherResult{Status: StatusUnavailable}
	}

	// Every waiter writes the same snapshot; last-writer-wins is fine because
	// the value is derived from an idempotent fetch.
	s.weatherCache.Set(ctx, key, snapshot)
	return WeatherResult{Status: StatusOK, Weather: &snapshot}
}

type openMeteoResponse struct {
	CurrentWeather struct {
		Temperature float64 `json:"temperature"`
		WindSpeed   float64 `json:"windspeed"`
		WeatherCode int     `json:"weathercode"`
		Time        string  `json:"time"`
	} `json:"current_weather"`
}

func (s *Service) fetchWeather(ctx context.Context, coord geo.Coordinate) (WeatherSnapshot, error) {
	url := fmt.Sprintf("%s/v1/forecast?latitude=%.4f&longitude=%.4f&current_weather=true",
		s.config.WeatherBaseURL, coord.Latitude, coord.Longitude)

	var resp openMeteoResponse
	if err := s.client.getJSON(ctx, url, &resp); err != nil {
		return WeatherSnapshot{}, err
	}

	return WeatherSnapshot{
		TemperatureC: resp.CurrentWeather.Temperature,
		WindSpeedKmh: resp.CurrentWeather.WindSpeed,
		WeatherCode:  resp.CurrentWeather.WeatherCode,
		ObservedAt:   resp.CurrentWeather.Time,
	}, nil
}
