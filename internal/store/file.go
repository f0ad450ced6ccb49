package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
)

// FormatVersion is written to every saved state file. Files without a
// version are the legacy layout whose favourites value is a JSON string
// holding a JSON array.
const FormatVersion = 2

// ErrMalformedState marks a state file that is not a JSON object of the
// expected shape.
var ErrMalformedState = errors.New("malformed state file")

// PersistenceError wraps any failure to read, decode or write the state file.
type PersistenceError struct {
	Op   string
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("state %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// State is what survives between runs.
type State struct {
	Favorites []string `json:"favourites"`
	Location  string   `json:"location"`
}

type document struct {
	Version    int      `json:"version"`
	Favourites []string `json:"favourites"`
	Location   string   `json:"location"`
}

// Load reads the state file at path. A missing or empty file and missing
// fields all read as empty values; only a structurally invalid document is an
// error.
func Load(path string) (State, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return State{}, nil
	}
	if err != nil {
		return State{}, &PersistenceError{Op: "read", Path: path, Err: err}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return State{}, nil
	}

	malformed := func(format string, args ...any) error {
		return &PersistenceError{
			Op:   "decode",
			Path: path,
			Err:  fmt.Errorf("%w: %s", ErrMalformedState, fmt.Sprintf(format, args...)),
		}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return State{}, malformed("%v", err)
	}

	var st State

	if raw, ok := present(fields, "version"); ok {
		var v int
		if err := json.Unmarshal(raw, &v); err != nil {
			return State{}, malformed("version: %v", err)
		}
		if v > FormatVersion {
			return State{}, malformed("unsupported version %d", v)
		}
	}

	if raw, ok := present(fields, "location"); ok {
		if err := json.Unmarshal(raw, &st.Location); err != nil {
			return State{}, malformed("location: %v", err)
		}
	}

	if raw, ok := present(fields, "favourites"); ok {
		switch raw[0] {
		case '"':
			st.Favorites = decodeLegacyFavourites(path, raw)
		case '[':
			if err := json.Unmarshal(raw, &st.Favorites); err != nil {
				return State{}, malformed("favourites: %v", err)
			}
		default:
			return State{}, malformed("favourites: expected array or string")
		}
	}

	return st, nil
}

// decodeLegacyFavourites unwraps the double-encoded list. A broken inner
// document drops the favourites instead of failing the load.
func decodeLegacyFavourites(path string, raw json.RawMessage) []string {
	var inner string
	if err := json.Unmarshal(raw, &inner); err != nil || inner == "" {
		return nil
	}
	var names []string
	if err := json.Unmarshal([]byte(inner), &names); err != nil {
		log.Printf("WARN: ignoring unreadable favourites in %s: %v", path, err)
		return nil
	}
	return names
}

func present(fields map[string]json.RawMessage, key string) (json.RawMessage, bool) {
	raw, ok := fields[key]
	if !ok {
		return nil, false
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, false
	}
	return raw, true
}

// Save replaces the file at path with st. The file is truncated and the whole
// document rewritten; nothing is appended or patched.
func Save(path string, st State) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &PersistenceError{Op: "write", Path: path, Err: err}
		}
	}

	favs := st.Favorites
	if favs == nil {
		favs = []string{}
	}

	data, err := json.MarshalIndent(document{
		Version:    FormatVersion,
		Favourites: favs,
		Location:   st.Location,
	}, "", "  ")
	if err != nil {
		return &PersistenceError{Op: "encode", Path: path, Err: err}
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &PersistenceError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// FileStore binds Load and Save to one path.
type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

func (s *FileStore) Load() (State, error) {
	return Load(s.Path)
}

func (s *FileStore) Save(st State) error {
	return Save(s.Path, st)
}
