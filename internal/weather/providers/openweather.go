package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weatherapp/internal/obs"
	"github.com/i474232898/weatherapp/internal/weather"
)

// DefaultOpenWeatherBaseURL hosts the geocoding and forecast endpoints.
const DefaultOpenWeatherBaseURL = "https://pro.openweathermap.org"

const (
	geocodePath     = "/geo/1.0/direct"
	currentPath     = "/data/2.5/weather"
	dailyPath       = "/data/2.5/forecast/daily"
	hourlyPath      = "/data/2.5/forecast/hourly"
	geocodeLimit    = 5
	dailyEntryCount = 7
)

var errMissingAPIKey = errors.New("openweather api key is not configured")

// OpenWeatherOptions tunes an OpenWeatherProvider. Zero values pick defaults.
type OpenWeatherOptions struct {
	BaseURL     string
	IconBaseURL string
	// Timeout bounds each provider call.
	Timeout time.Duration
	// Location is the zone forecast timestamps are converted to.
	Location *time.Location
}

// OpenWeatherProvider implements weather.Provider for OpenWeatherMap.
type OpenWeatherProvider struct {
	name        string
	apiKey      string
	baseURL     string
	iconBaseURL string
	loc         *time.Location
	httpCfg     HTTPClientConfig
	circuit     *gobreaker.CircuitBreaker
}

var _ weather.Provider = (*OpenWeatherProvider)(nil)

func NewOpenWeatherProvider(client *http.Client, apiKey string, opts OpenWeatherOptions) *OpenWeatherProvider {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultOpenWeatherBaseURL
	}
	iconBase := opts.IconBaseURL
	if iconBase == "" {
		iconBase = weather.DefaultIconBaseURL
	}
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}

	return &OpenWeatherProvider{
		name:        "openweathermap",
		apiKey:      apiKey,
		baseURL:     strings.TrimRight(baseURL, "/"),
		iconBaseURL: iconBase,
		loc:         loc,
		httpCfg: HTTPClientConfig{
			Client:  client,
			Timeout: opts.Timeout,
		},
		circuit: newBreaker("openweather"),
	}
}

// Name identifies the provider in logs.
func (p *OpenWeatherProvider) Name() string {
	return p.name
}

func (p *OpenWeatherProvider) endpoint(path string, values url.Values) string {
	values.Set("appid", p.apiKey)
	return fmt.Sprintf("%s%s?%s", p.baseURL, path, values.Encode())
}

func (p *OpenWeatherProvider) coordValues(loc weather.Location) url.Values {
	values := url.Values{}
	values.Set("lat", formatCoord(loc.Lat))
	values.Set("lon", formatCoord(loc.Lon))
	values.Set("units", "metric")
	return values
}

func (p *OpenWeatherProvider) get(ctx context.Context, op, rawURL string, target any) error {
	if p.apiKey == "" {
		return &weather.TransportError{Op: op, Err: errMissingAPIKey}
	}
	return getJSON(ctx, op, p.httpCfg, p.circuit, rawURL, target)
}

// Resolve geocodes query and trusts the provider's ranking: the first of up
// to five candidates wins.
func (p *OpenWeatherProvider) Resolve(ctx context.Context, query string) (_ weather.Location, err error) {
	const op = "openweather.resolve"
	defer obs.Time(ctx, op)(&err)

	query = strings.TrimSpace(query)
	if query == "" {
		return weather.Location{}, fmt.Errorf("%s: empty query: %w", op, weather.ErrNotFound)
	}

	values := url.Values{}
	values.Set("q", query)
	values.Set("limit", fmt.Sprintf("%d", geocodeLimit))

	var payload []struct {
		Name *string  `json:"name"`
		Lat  *float64 `json:"lat"`
		Lon  *float64 `json:"lon"`
	}
	if err := p.get(ctx, op, p.endpoint(geocodePath, values), &payload); err != nil {
		return weather.Location{}, err
	}

	if len(payload) == 0 {
		return weather.Location{}, fmt.Errorf("%s: %q: %w", op, query, weather.ErrNotFound)
	}

	first := payload[0]
	switch {
	case first.Name == nil:
		return weather.Location{}, weather.MissingField(op, "name")
	case first.Lat == nil:
		return weather.Location{}, weather.MissingField(op, "lat")
	case first.Lon == nil:
		return weather.Location{}, weather.MissingField(op, "lon")
	}

	return weather.Location{
		Name: *first.Name,
		Lat:  *first.Lat,
		Lon:  *first.Lon,
	}, nil
}

type owmCondition struct {
	ID          *int    `json:"id"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
}

// FetchCurrent returns current conditions. Rain is optional; every other
// field is required.
func (p *OpenWeatherProvider) FetchCurrent(ctx context.Context, loc weather.Location) (_ weather.WeatherRecord, err error) {
	const op = "openweather.current"
	defer obs.Time(ctx, op)(&err)

	var payload struct {
		Dt      *int64         `json:"dt"`
		Weather []owmCondition `json:"weather"`
		Main    struct {
			Temp *float64 `json:"temp"`
		} `json:"main"`
		Wind struct {
			Speed *float64 `json:"speed"`
			Deg   *float64 `json:"deg"`
		} `json:"wind"`
		Rain json.RawMessage `json:"rain"`
	}
	if err := p.get(ctx, op, p.endpoint(currentPath, p.coordValues(loc)), &payload); err != nil {
		return weather.WeatherRecord{}, err
	}

	if len(payload.Weather) == 0 {
		return weather.WeatherRecord{}, weather.MissingField(op, "weather[0]")
	}
	cond := payload.Weather[0]
	switch {
	case cond.Description == nil:
		return weather.WeatherRecord{}, weather.MissingField(op, "weather[0].description")
	case cond.ID == nil:
		return weather.WeatherRecord{}, weather.MissingField(op, "weather[0].id")
	case payload.Main.Temp == nil:
		return weather.WeatherRecord{}, weather.MissingField(op, "main.temp")
	case payload.Wind.Speed == nil:
		return weather.WeatherRecord{}, weather.MissingField(op, "wind.speed")
	case payload.Wind.Deg == nil:
		return weather.WeatherRecord{}, weather.MissingField(op, "wind.deg")
	}

	slug := deref(cond.Icon)
	observed := time.Now().In(p.loc)
	if payload.Dt != nil {
		observed = time.Unix(*payload.Dt, 0).In(p.loc)
	}

	return weather.WeatherRecord{
		Location: loc,
		Conditions: weather.Conditions{
			TemperatureC:     *payload.Main.Temp,
			Description:      *cond.Description,
			PrecipitationMm:  rainOneHour(payload.Rain),
			WindSpeedMs:      *payload.Wind.Speed,
			WindDirectionDeg: *payload.Wind.Deg,
			WindIcon:         weather.ClassifyWind(*payload.Wind.Deg).IconKey(),
			ConditionCode:    *cond.ID,
			IconSlug:         slug,
			IconKey:          weather.MapIcon(*cond.ID, slug),
			IconURL:          weather.IconURL(p.iconBaseURL, slug),
		},
		ObservedAt: observed,
	}, nil
}

func deref[T any](v *T) T {
	var zero T
	if v == nil {
		return zero
	}
	return *v
}
