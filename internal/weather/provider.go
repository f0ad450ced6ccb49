package weather

import (
	"context"
)

// Resolver turns free text into a canonical Location.
type Resolver interface {
	Resolve(ctx context.Context, query string) (Location, error)
}

// CurrentFetcher returns current conditions for a resolved location.
type CurrentFetcher interface {
	FetchCurrent(ctx context.Context, loc Location) (WeatherRecord, error)
}

// ForecastFetcher returns daily and hourly forecasts for a resolved location.
type ForecastFetcher interface {
	FetchDaily(ctx context.Context, loc Location) ([]ForecastEntry, error)
	FetchHourly(ctx context.Context, loc Location) ([]ForecastEntry, error)
}

// Provider is the full set of operations a weather source offers
// (e.g. OpenWeatherMap).
type Provider interface {
	Resolver
	CurrentFetcher
	ForecastFetcher
}
