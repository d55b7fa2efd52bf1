// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package prefs persists small user preferences, currently only the theme.
package prefs

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// ThemeKey is the store key the theme is saved under
const ThemeKey = "regexlab-theme"

// 🎨 Theme is the display theme
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme accepts "light" or "dark"
func ParseTheme(s string) (Theme, error) {
	switch Theme(s) {
	case ThemeLight, ThemeDark:
		return Theme(s), nil
	default:
		return "", errors.Errorf("unknown theme %q (want light or dark)", s)
	}
}

// Toggle returns the other theme
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Icon is the toggle glyph shown for the theme
func (t Theme) Icon() string {
	if t == ThemeDark {
		return "🌙"
	}
	return "☀️"
}

func (t Theme) String() string { return string(t) }

// 💾 Store is a string key/value store that survives restarts
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// LoadTheme reads the saved theme. Missing or unreadable values fall back to light.
func LoadTheme(ctx context.Context, s Store) (Theme, error) {
	v, ok, err := s.Get(ctx, ThemeKey)
	if err != nil {
		return ThemeLight, errors.Errorf("loading theme: %w", err)
	}
	if !ok {
		return ThemeLight, nil
	}

	t, err := ParseTheme(v)
	if err != nil {
		zerolog.Ctx(ctx).Debug().Str("value", v).Msg("ignoring saved theme")
		return ThemeLight, nil
	}
	return t, nil
}

// SaveTheme persists t
func SaveTheme(ctx context.Context, s Store, t Theme) error {
	if err := s.Set(ctx, ThemeKey, t.String()); err != nil {
		return errors.Errorf("saving theme: %w", err)
	}
	return nil
}

// 📄 FileStore keeps preferences in a YAML file
type FileStore struct {
	path string
	mu   sync.Mutex
}

var _ Store = (*FileStore)(nil)

// NewFileStore stores preferences at path. An empty path uses DefaultPath.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return &FileStore{path: filepath.Clean(path)}, nil
}

// DefaultPath is prefs.yaml in the regexlab directory under the user config dir
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Errorf("finding user config dir: %w", err)
	}
	return filepath.Join(dir, "regexlab", "prefs.yaml"), nil
}

// Path returns the backing file
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	vals, err := s.read()
	if err != nil {
		return "", false, err
	}
	v, ok := vals[key]
	return v, ok, nil
}

func (s *FileStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	vals, err := s.read()
	var corrupt *corruptError
	switch {
	case errors.As(err, &corrupt):
		// a write replaces what cannot be read back
		zerolog.Ctx(ctx).Debug().Err(err).Str("path", s.path).Msg("overwriting unreadable prefs")
		vals = map[string]string{}
	case err != nil:
		return err
	}
	vals[key] = value

	data, err := yaml.Marshal(vals)
	if err != nil {
		return errors.Errorf("encoding prefs: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return errors.Errorf("creating prefs dir: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return errors.Errorf("writing temp prefs: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return errors.Errorf("renaming temp prefs: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", s.path).Str("key", key).Msg("saved preference")
	return nil
}

func (s *FileStore) read() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, errors.Errorf("reading prefs: %w", err)
	}

	vals := map[string]string{}
	if err := yaml.Unmarshal(data, &vals); err != nil {
		return nil, &corruptError{path: s.path, err: err}
	}
	if vals == nil {
		vals = map[string]string{}
	}
	return vals, nil
}

// corruptError is a prefs file that exists but does not hold a key/value map
type corruptError struct {
	path string
	err  error
}

func (e *corruptError) Error() string {
	return "parsing prefs " + e.path + ": " + e.err.Error()
}

func (e *corruptError) Unwrap() error { return e.err }

// 🧠 MemoryStore keeps preferences in memory
type MemoryStore struct {
	mu   sync.RWMutex
	vals map[string]string
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{vals: make(map[string]string)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.vals[key]
	return v, ok, nil
}

func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vals[key] = value
	return nil
}
