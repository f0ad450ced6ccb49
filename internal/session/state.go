package session

import (
	"context"
	"log"
	"strings"

	"github.com/i474232898/weatherapp/internal/weather"
)

// DefaultFallbackLocation is stored whenever a requested location cannot be
// confirmed.
const DefaultFallbackLocation = "Helsinki"

// Checker is what State needs to confirm a location: it must geocode and
// current conditions must be retrievable for it.
type Checker interface {
	weather.Resolver
	weather.CurrentFetcher
}

// State tracks the currently selected location. It is not safe for
// concurrent use; Session adds the locking.
type State struct {
	checker  Checker
	fallback string
	current  string
}

// NewState returns a State with no location selected. An empty fallback
// selects DefaultFallbackLocation.
func NewState(checker Checker, fallback string) *State {
	if strings.TrimSpace(fallback) == "" {
		fallback = DefaultFallbackLocation
	}
	return &State{checker: checker, fallback: fallback}
}

// TrySetCurrentLocation resolves name and fetches its current conditions. On
// success name is stored as given. On any failure, including an empty name
// which never reaches the network, the fallback location is stored instead.
//
// Errors are deliberately swallowed here: the cause is logged and the caller
// only learns whether name was accepted.
func (s *State) TrySetCurrentLocation(ctx context.Context, name string) bool {
	chosen, ok := s.choose(ctx, name)
	s.current = chosen
	return ok
}

// choose runs the liveness check without storing the result.
func (s *State) choose(ctx context.Context, name string) (string, bool) {
	if strings.TrimSpace(name) == "" {
		return s.fallback, false
	}

	if err := s.check(ctx, name); err != nil {
		log.Printf("WARN: location %q rejected, falling back to %q: %v", name, s.fallback, err)
		return s.fallback, false
	}
	return name, true
}

func (s *State) check(ctx context.Context, name string) error {
	loc, err := s.checker.Resolve(ctx, name)
	if err != nil {
		return err
	}
	_, err = s.checker.FetchCurrent(ctx, loc)
	return err
}

// CurrentLocation returns the stored name, or "" before the first set.
func (s *State) CurrentLocation() string {
	return s.current
}

// Fallback returns the name stored when a location is rejected.
func (s *State) Fallback() string {
	return s.fallback
}
