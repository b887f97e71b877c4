package preferences

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/couchcryptid/quake-feed-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prefs.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestQueryConfig_Defaults(t *testing.T) {
	cfg, err := QueryConfig(Defaults)
	require.NoError(t, err)
	assert.Equal(t, domain.QueryConfig{MinMagnitude: "6", OrderBy: domain.OrderByMagnitude}, cfg)
}

func TestQueryConfig_MissingKey(t *testing.T) {
	_, err := QueryConfig(MapSource{KeyOrderBy: "time"})
	require.ErrorIs(t, err, domain.ErrInvalidConfig)
	assert.Contains(t, err.Error(), KeyMinMagnitude)

	_, err = QueryConfig(MapSource{KeyMinMagnitude: "5", KeyOrderBy: ""})
	require.ErrorIs(t, err, domain.ErrInvalidConfig)
	assert.Contains(t, err.Error(), KeyOrderBy)
}

func TestQueryConfig_Invalid(t *testing.T) {
	_, err := QueryConfig(MapSource{KeyMinMagnitude: "five", KeyOrderBy: "time"})
	require.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestChain_FirstSourceWins(t *testing.T) {
	t.Setenv("QUAKE_ORDER_BY", "time")

	src := Chain{nil, MapSource{KeyMinMagnitude: "3"}, DefaultEnv, Defaults}
	cfg, err := QueryConfig(src)
	require.NoError(t, err)

	assert.Equal(t, "3", cfg.MinMagnitude)
	assert.Equal(t, domain.OrderByTime, cfg.OrderBy)
}

func TestEnvSource_UnknownKey(t *testing.T) {
	_, ok := DefaultEnv.Lookup("color")
	assert.False(t, ok)
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, "min_magnitude = \"4.5\"\norder_by = \"time\"\n")

	src, err := LoadFile(path)
	require.NoError(t, err)

	cfg, err := QueryConfig(src)
	require.NoError(t, err)
	assert.Equal(t, domain.QueryConfig{MinMagnitude: "4.5", OrderBy: domain.OrderByTime}, cfg)
}

func TestLoadFile_NumericValues(t *testing.T) {
	path := writeFile(t, "min_magnitude = 5\n")

	src, err := LoadFile(path)
	require.NoError(t, err)

	v, ok := src.Lookup(KeyMinMagnitude)
	require.True(t, ok)
	assert.Equal(t, "5", v)
}

func TestLoadFile_Missing(t *testing.T) {
	src, err := LoadFile(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Empty(t, src)
}

func TestLoadFile_Invalid(t *testing.T) {
	_, err := LoadFile(writeFile(t, "min_magnitude = [1, 2]\n"))
	require.Error(t, err)

	_, err = LoadFile(writeFile(t, "min_magnitude = \n"))
	require.Error(t, err)
}
