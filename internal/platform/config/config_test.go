package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("RADIRU_TEST_VALUE", "x")
	assert.Equal(t, "x", GetEnv("RADIRU_TEST_VALUE", "fallback"))

	t.Setenv("RADIRU_TEST_VALUE", "")
	assert.Equal(t, "fallback", GetEnv("RADIRU_TEST_VALUE", "fallback"))
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("RADIRU_TEST_INT", "8081")
	assert.Equal(t, 8081, GetEnvInt("RADIRU_TEST_INT", 1))

	t.Setenv("RADIRU_TEST_INT", "nope")
	assert.Equal(t, 1, GetEnvInt("RADIRU_TEST_INT", 1))
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("RADIRU_TEST_DUR", "45s")
	assert.Equal(t, 45*time.Second, GetEnvDuration("RADIRU_TEST_DUR", time.Second))

	t.Run("invalid", func(t *testing.T) {
		t.Setenv("RADIRU_TEST_DUR", "soon")
		assert.Equal(t, time.Second, GetEnvDuration("RADIRU_TEST_DUR", time.Second))
	})

	t.Run("negative", func(t *testing.T) {
		t.Setenv("RADIRU_TEST_DUR", "-5s")
		assert.Equal(t, time.Second, GetEnvDuration("RADIRU_TEST_DUR", time.Second))
	})
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("RADIRU_TEST_FROM_FILE=loaded\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("RADIRU_TEST_FROM_FILE") })

	require.NoError(t, Load(path))
	assert.Equal(t, "loaded", GetEnv("RADIRU_TEST_FROM_FILE", ""))
}

func TestLoad_missing_file(t *testing.T) {
	assert.Error(t, Load(filepath.Join(t.TempDir(), "absent.env")))
}
