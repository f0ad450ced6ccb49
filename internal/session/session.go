package session

import (
	"context"
	"sync"

	"github.com/i474232898/weatherapp/internal/store"
)

// Saver persists a snapshot of the session.
type Saver interface {
	Save(store.State) error
}

// Session serializes access to the favourites list and the selected
// location so the HTTP handlers and the autosave job can share them.
type Session struct {
	mu        sync.Mutex
	favorites *store.Favorites
	state     *State
	saver     Saver
}

func New(checker Checker, fallback string, saver Saver) *Session {
	return &Session{
		favorites: store.NewFavorites(),
		state:     NewState(checker, fallback),
		saver:     saver,
	}
}

func (s *Session) AddFavorite(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.favorites.Add(name)
}

func (s *Session) RemoveFavorite(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.favorites.Remove(name)
}

func (s *Session) ContainsFavorite(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.favorites.Contains(name)
}

func (s *Session) Favorites() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.favorites.List()
}

func (s *Session) ClearFavorites() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.favorites.Clear()
}

// SetLocation checks name without holding the lock; only storing the result
// is serialized. When setters race, the last one to finish wins.
func (s *Session) SetLocation(ctx context.Context, name string) bool {
	chosen, ok := s.state.choose(ctx, name)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.current = chosen
	return ok
}

func (s *Session) Location() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.CurrentLocation()
}

// Snapshot copies the current favourites and location.
func (s *Session) Snapshot() store.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return store.State{
		Favorites: s.favorites.List(),
		Location:  s.state.CurrentLocation(),
	}
}

// Restore replaces the favourites with st.Favorites and re-validates the
// saved location. An empty or stale location ends up on the fallback.
func (s *Session) Restore(ctx context.Context, st store.State) bool {
	s.mu.Lock()
	s.favorites.Replace(st.Favorites)
	s.mu.Unlock()

	return s.SetLocation(ctx, st.Location)
}

// Fallback is the location stored when a requested one is rejected.
func (s *Session) Fallback() string {
	return s.state.Fallback()
}

// Save writes a snapshot through the configured Saver. It is a no-op when
// the session was built without one.
func (s *Session) Save() error {
	if s.saver == nil {
		return nil
	}
	return s.saver.Save(s.Snapshot())
}
