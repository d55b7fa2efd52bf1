package prefs

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTheme(t *testing.T) {
	assert.Equal(t, ThemeDark, ThemeLight.Toggle())
	assert.Equal(t, ThemeLight, ThemeDark.Toggle())
	assert.Equal(t, "☀️", ThemeLight.Icon())
	assert.Equal(t, "🌙", ThemeDark.Icon())

	got, err := ParseTheme("dark")
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, got)

	_, err = ParseTheme("blue")
	assert.Error(t, err)
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	th, err := LoadTheme(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, th, "default theme is light")

	require.NoError(t, SaveTheme(ctx, s, ThemeDark))
	th, err = LoadTheme(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, th)

	require.NoError(t, s.Set(ctx, ThemeKey, "purple"))
	th, err = LoadTheme(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, th, "unknown saved values fall back to light")
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "prefs.yaml")

	s, err := NewFileStore(path)
	require.NoError(t, err)
	assert.Equal(t, path, s.Path())

	_, ok, err := s.Get(ctx, ThemeKey)
	require.NoError(t, err)
	assert.False(t, ok, "missing file has no values")

	require.NoError(t, SaveTheme(ctx, s, ThemeDark))
	require.NoError(t, s.Set(ctx, "other", "x"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "regexlab-theme: dark")

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file should be renamed away")

	// a fresh store sees the persisted values
	s2, err := NewFileStore(path)
	require.NoError(t, err)
	th, err := LoadTheme(ctx, s2)
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, th)

	v, ok, err := s2.Get(ctx, "other")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "x", v)
}

func TestFileStoreCorrupt(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- one\n- two\n"), 0644))

	s, err := NewFileStore(path)
	require.NoError(t, err)

	_, err = LoadTheme(ctx, s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing prefs")

	// saving repairs the file
	require.NoError(t, SaveTheme(ctx, s, ThemeDark))
	got, err := LoadTheme(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, got)
}

func TestDefaultPath(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME is only honored on linux")
	}
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	got, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/xdg/regexlab/prefs.yaml", filepath.ToSlash(got))
}
