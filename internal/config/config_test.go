package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "test-defaults")

	c, err := LoadConfigFrom(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":8080", c.Port)
	assert.Equal(t, 35.6963, c.AnchorLat)
	assert.Equal(t, 139.7832, c.AnchorLng)
	assert.Equal(t, 500, c.SearchRadiusM)
	assert.Equal(t, "name:ja", c.LocalizedNameTag)
	assert.Equal(t, "data/transform.json", c.TransformPath)
	assert.Equal(t, 4, c.Workers)
	assert.Equal(t, "data/spawns.geojson", c.GeoJSONPath)
	assert.Empty(t, c.DBUrl)
}

func TestLoadConfig_EnvFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("APP_ENV", "staging")
	content := "PORT=:9090\nSEARCH_RADIUS_M=750\nDB_URL=postgres://localhost/spawns\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.staging"), []byte(content), 0o644))

	c, err := LoadConfigFrom(dir)
	require.NoError(t, err)

	assert.Equal(t, ":9090", c.Port)
	assert.Equal(t, 750, c.SearchRadiusM)
	assert.Equal(t, "postgres://localhost/spawns", c.DBUrl)
}

func TestLoadConfig_EnvironmentWins(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("APP_ENV", "staging")
	t.Setenv("PORT", ":7070")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.staging"), []byte("PORT=:9090\n"), 0o644))

	c, err := LoadConfigFrom(dir)
	require.NoError(t, err)

	assert.Equal(t, ":7070", c.Port)
	assert.Equal(t, "redis://localhost:6379/0", c.RedisUrl)
}
