// README: Weather adapter (OpenWeatherMap current + 5-day forecast) with mock fallback.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"journeo/internal/types"
)

var ErrNoAPIKey = errors.New("weather: api key not configured")

type Service struct {
	apiKey  string
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// NewService builds the adapter. Each remote call is bounded by timeout.
func NewService(apiKey, baseURL string, timeout time.Duration, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// Current returns current conditions for city (optionally narrowed by an ISO country code).
func (s *Service) Current(ctx context.Context, city, countryCode string) types.Result[Current] {
	var raw owmCurrent
	if err := s.get(ctx, "/weather", city, countryCode, &raw); err != nil {
		s.logger.Warn("weather current fallback", "city", city, "error", err)
		return types.Fallback(MockCurrent(city), err)
	}
	c := Current{
		City:          raw.Name,
		Country:       raw.Sys.Country,
		Temperature:   raw.Main.Temp,
		FeelsLike:     raw.Main.FeelsLike,
		Humidity:      raw.Main.Humidity,
		Pressure:      raw.Main.Pressure,
		WindSpeed:     raw.Wind.Speed,
		WindDirection: raw.Wind.Deg,
		Visibility:    raw.Visibility,
		Sunrise:       raw.Sys.Sunrise,
		Sunset:        raw.Sys.Sunset,
	}
	if len(raw.Weather) > 0 {
		c.Description = raw.Weather[0].Description
		c.Icon = raw.Weather[0].Icon
	}
	return types.Live(c)
}

// Forecast returns the 5-day / 3-hour forecast for city.
func (s *Service) Forecast(ctx context.Context, city, countryCode string) types.Result[Forecast] {
	var raw owmForecast
	if err := s.get(ctx, "/forecast", city, countryCode, &raw); err != nil {
		s.logger.Warn("weather forecast fallback", "city", city, "error", err)
		return types.Fallback(MockForecast(city), err)
	}
	f := Forecast{City: raw.City.Name, Country: raw.City.Country, Forecast: make([]Entry, 0, len(raw.List))}
	for _, item := range raw.List {
		e := Entry{
			DateTime:    item.Dt,
			Temperature: item.Main.Temp,
			FeelsLike:   item.Main.FeelsLike,
			Humidity:    item.Main.Humidity,
			WindSpeed:   item.Wind.Speed,
			Pop:         item.Pop,
		}
		if len(item.Weather) > 0 {
			e.Description = item.Weather[0].Description
			e.Icon = item.Weather[0].Icon
		}
		f.Forecast = append(f.Forecast, e)
	}
	return types.Live(f)
}

func (s *Service) get(ctx context.Context, path, city, countryCode string, out any) error {
	if s.apiKey == "" {
		return ErrNoAPIKey
	}
	location := city
	if countryCode != "" {
		location = city + "," + countryCode
	}
	q := url.Values{}
	q.Set("q", location)
	q.Set("appid", s.apiKey)
	q.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("weather: build request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("weather: do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("weather: unexpected status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("weather: read response: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("weather: unmarshal response: %w", err)
	}
	return nil
}
