package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	require.Equal(t, 26, c.Len())

	e, ok := c.Lookup("vr_lite")
	require.True(t, ok)
	assert.Equal(t, "VR Phone Headset", e.DisplayName)
	assert.Equal(t, "VR headset phone 3D glasses", e.SearchQuery)

	e, ok = c.Lookup("3d_basic")
	require.True(t, ok, "numeric-leading keys must stay strings")
	assert.Equal(t, "3D Glasses 5-pack", e.DisplayName)

	_, ok = c.Lookup("unknown_sku")
	assert.False(t, ok)
}

func TestDisplayNameFallback(t *testing.T) {
	c := Default()
	assert.Equal(t, "Fidget Cube", c.DisplayName("fidget_cube"))
	assert.Equal(t, "mystery", c.DisplayName("mystery"))
}

func TestSKUsSorted(t *testing.T) {
	c, err := New(map[string]Entry{
		"b": {DisplayName: "B", SearchQuery: "b"},
		"a": {DisplayName: "A", SearchQuery: "a"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, c.SKUs())
}

func TestNewRejectsIncompleteEntries(t *testing.T) {
	_, err := New(map[string]Entry{"x": {DisplayName: "X"}})
	require.Error(t, err)
	_, err = New(map[string]Entry{"x": {SearchQuery: "x"}})
	require.Error(t, err)
	_, err = New(map[string]Entry{" ": {DisplayName: "X", SearchQuery: "x"}})
	require.Error(t, err)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mug:\n  name: Coffee Mug\n  searchQuery: ceramic mug 11oz\n"), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 1, c.Len())
	assert.Equal(t, "Coffee Mug", c.DisplayName("mug"))

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)

	c, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, 26, c.Len())
}

func TestParseInvalidYAML(t *testing.T) {
	_, err := Parse([]byte("mug: [unterminated"))
	require.Error(t, err)
}
