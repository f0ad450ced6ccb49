package store

// Favorites is an ordered set of location names. Names match exactly,
// case-sensitively, and keep their insertion order.
//
// Favorites is not safe for concurrent use; callers that share it must
// synchronize (see session.Session).
type Favorites struct {
	names []string
	index map[string]struct{}
}

// NewFavorites creates a Favorites set holding names in order, skipping
// duplicates.
func NewFavorites(names ...string) *Favorites {
	f := &Favorites{index: make(map[string]struct{}, len(names))}
	f.Replace(names)
	return f
}

// Add appends name and reports whether it was not already present.
func (f *Favorites) Add(name string) bool {
	if f.index == nil {
		f.index = make(map[string]struct{})
	}
	if _, ok := f.index[name]; ok {
		return false
	}
	f.index[name] = struct{}{}
	f.names = append(f.names, name)
	return true
}

// Remove deletes name and reports whether it existed.
func (f *Favorites) Remove(name string) bool {
	if _, ok := f.index[name]; !ok {
		return false
	}
	delete(f.index, name)
	for i, n := range f.names {
		if n == name {
			f.names = append(f.names[:i], f.names[i+1:]...)
			break
		}
	}
	return true
}

func (f *Favorites) Contains(name string) bool {
	_, ok := f.index[name]
	return ok
}

// List returns a copy of the names in insertion order.
func (f *Favorites) List() []string {
	out := make([]string, len(f.names))
	copy(out, f.names)
	return out
}

func (f *Favorites) Len() int {
	return len(f.names)
}

func (f *Favorites) Clear() {
	f.names = nil
	f.index = make(map[string]struct{})
}

// Replace swaps the contents for names, keeping the first occurrence of any
// duplicate.
func (f *Favorites) Replace(names []string) {
	f.Clear()
	for _, n := range names {
		f.Add(n)
	}
}
