package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	require.Equal(t, ":4000", cfg.Server.Addr)
	require.Equal(t, 10*time.Second, cfg.Server.Timeout)
	require.True(t, cfg.Server.GraphiQL)
	require.True(t, cfg.Server.Introspection)
	require.EqualValues(t, 1<<20, cfg.Server.MaxBodyBytes)
	require.Empty(t, cfg.Server.CORSOrigins)
	require.Equal(t, "info", cfg.Logger.Level)
	require.Equal(t, "json", cfg.Logger.Encoder)
	require.Equal(t, "bookgraph", cfg.Tracing.ServiceName)
	require.True(t, cfg.Store.Seed)
	require.False(t, cfg.Store.StrictAuthorRefs)
}

func TestEnvironment(t *testing.T) {
	t.Setenv("BOOKGRAPH_ADDR", "127.0.0.1:8080")
	t.Setenv("BOOKGRAPH_TIMEOUT", "250ms")
	t.Setenv("BOOKGRAPH_CORS_ORIGINS", "http://a.example,http://b.example")
	t.Setenv("BOOKGRAPH_STRICT_AUTHOR_REFS", "true")
	t.Setenv("LOG_DEV_MODE", "true")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:8080", cfg.Server.Addr)
	require.Equal(t, 250*time.Millisecond, cfg.Server.Timeout)
	require.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.Server.CORSOrigins)
	require.True(t, cfg.Store.StrictAuthorRefs)
	require.True(t, cfg.Logger.DevMode)
}

func TestDotenvFile(t *testing.T) {
	// Registered so t.Setenv restores the variable godotenv sets below.
	t.Setenv("OTEL_SERVICE_NAME", "")
	os.Unsetenv("OTEL_SERVICE_NAME")
	t.Setenv("BOOKGRAPH_SEED", "true")

	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("OTEL_SERVICE_NAME=from-file\nBOOKGRAPH_SEED=false\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "from-file", cfg.Tracing.ServiceName)
	require.True(t, cfg.Store.Seed, "environment wins over the file")
}

func TestInvalidValue(t *testing.T) {
	t.Setenv("BOOKGRAPH_TIMEOUT", "soon")
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
}
