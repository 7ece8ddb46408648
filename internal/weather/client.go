// Package weather fetches observations and forecasts from the Weather
// Underground (weather.com) v3 API and decodes them into typed records.
package weather

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/Bernardstanislas/wu-mqtt-bridge/internal/config"
	"github.com/Bernardstanislas/wu-mqtt-bridge/internal/units"
)

const (
	currentPath  = "/observations/current"
	forecastPath = "/forecast/daily/5day"
	hourlyPath   = "/forecast/hourly/2day"
)

var (
	// ErrFetch covers transport failures and non-2xx responses.
	ErrFetch = errors.New("weather fetch failed")
	// ErrData covers responses that decode badly or are missing
	// required fields.
	ErrData = errors.New("unexpected weather data")
)

type Client struct {
	baseURL     string
	geocode     string
	apiKey      string
	language    string
	units       units.System
	fetchHourly bool
	http        *http.Client
	logger      *slog.Logger
}

func NewClient(cfg config.Config, httpClient *http.Client, logger *slog.Logger) *Client {
	return &Client{
		baseURL:     cfg.BaseURL,
		geocode:     cfg.Geocode.String(),
		apiKey:      cfg.APIKey,
		language:    cfg.Language,
		units:       cfg.Units,
		fetchHourly: cfg.FetchHourly,
		http:        httpClient,
		logger:      logger,
	}
}

// FetchCurrent fetches the current observation. A response without a
// temperature is rejected as ErrData.
func (c *Client) FetchCurrent(ctx context.Context) (CurrentConditions, error) {
	body, err := c.get(ctx, currentPath)
	if err != nil {
		return CurrentConditions{}, err
	}
	return parseCurrent(body)
}

// FetchForecast fetches the daily forecast and returns exactly five
// days in ascending date order.
func (c *Client) FetchForecast(ctx context.Context) ([]DayForecast, error) {
	body, err := c.get(ctx, forecastPath)
	if err != nil {
		return nil, err
	}
	return parseForecast(body)
}

// FetchHourlyToday fetches the 2-day hourly forecast and keeps only
// the hours left in the current local day.
func (c *Client) FetchHourlyToday(ctx context.Context) ([]HourForecast, error) {
	body, err := c.get(ctx, hourlyPath)
	if err != nil {
		return nil, err
	}
	return parseHourly(body)
}

// FetchAll fetches current conditions, the daily forecast and, when
// hourly fetching is enabled, today's hourly forecast. The first
// failure aborts the bundle.
func (c *Client) FetchAll(ctx context.Context) (WeatherData, error) {
	current, err := c.FetchCurrent(ctx)
	if err != nil {
		return WeatherData{}, err
	}

	forecast, err := c.FetchForecast(ctx)
	if err != nil {
		return WeatherData{}, err
	}

	data := WeatherData{Current: current, Forecast: forecast}
	if c.fetchHourly {
		hourly, err := c.FetchHourlyToday(ctx)
		if err != nil {
			return WeatherData{}, err
		}
		data.HourlyToday = hourly
	}

	c.logger.Info("weather data fetched",
		"temperature", current.Temperature,
		"forecast_days", len(data.Forecast),
		"hourly_entries", len(data.HourlyToday),
	)
	return data, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	q := url.Values{}
	q.Set("geocode", c.geocode)
	q.Set("format", "json")
	q.Set("units", string(c.units))
	q.Set("language", c.language)
	q.Set("apiKey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request for %s: %v", ErrFetch, path, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %w", ErrFetch, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: GET %s: unexpected status %d", ErrFetch, path, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s response: %w", ErrFetch, path, err)
	}

	c.logger.Debug("weather api response", "path", path, "bytes", len(body))
	return body, nil
}
