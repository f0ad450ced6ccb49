package weather

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"
)

// Service resolves free-text queries and fetches weather for them.
type Service struct {
	provider Provider
}

// NewService creates a new Service.
func NewService(provider Provider) *Service {
	return &Service{provider: provider}
}

// Resolve delegates to the provider's geocoder.
func (s *Service) Resolve(ctx context.Context, query string) (Location, error) {
	return s.provider.Resolve(ctx, query)
}

// Report resolves query once, then fetches current, daily and hourly
// weather concurrently. The first failure cancels the other fetches and no
// partial report is returned.
func (s *Service) Report(ctx context.Context, query string) (Report, error) {
	loc, err := s.provider.Resolve(ctx, query)
	if err != nil {
		return Report{}, err
	}

	log.Printf("DEBUG: Report fetching weather for %s (%.4f, %.4f)", loc.Name, loc.Lat, loc.Lon)

	var (
		current WeatherRecord
		daily   []ForecastEntry
		hourly  []ForecastEntry
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := s.provider.FetchCurrent(gctx, loc)
		if err != nil {
			return err
		}
		current = r
		return nil
	})
	g.Go(func() error {
		d, err := s.provider.FetchDaily(gctx, loc)
		if err != nil {
			return err
		}
		daily = d
		return nil
	})
	g.Go(func() error {
		h, err := s.provider.FetchHourly(gctx, loc)
		if err != nil {
			return err
		}
		hourly = h
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Printf("ERROR: report for %s failed: %v", loc.Name, err)
		return Report{}, fmt.Errorf("report %q: %w", loc.Name, err)
	}

	return Report{
		Location: loc,
		Current:  current,
		Daily:    daily,
		Hourly:   hourly,
	}, nil
}

// Current resolves query and returns its current conditions.
func (s *Service) Current(ctx context.Context, query string) (WeatherRecord, error) {
	loc, err := s.provider.Resolve(ctx, query)
	if err != nil {
		return WeatherRecord{}, err
	}
	return s.provider.FetchCurrent(ctx, loc)
}

// Daily resolves query and returns the seven-day forecast.
func (s *Service) Daily(ctx context.Context, query string) (Location, []ForecastEntry, error) {
	loc, err := s.provider.Resolve(ctx, query)
	if err != nil {
		return Location{}, nil, err
	}
	entries, err := s.provider.FetchDaily(ctx, loc)
	if err != nil {
		return Location{}, nil, err
	}
	return loc, entries, nil
}

// Hourly resolves query and returns the full hourly forecast.
func (s *Service) Hourly(ctx context.Context, query string) (Location, []ForecastEntry, error) {
	loc, err := s.provider.Resolve(ctx, query)
	if err != nil {
		return Location{}, nil, err
	}
	entries, err := s.provider.FetchHourly(ctx, loc)
	if err != nil {
		return Location{}, nil, err
	}
	return loc, entries, nil
}
