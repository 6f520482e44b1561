package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "3010", cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 5*time.Minute, cfg.Redis.PositionCacheTTL)
	assert.Equal(t, "local", cfg.Storage.Driver)
	assert.True(t, cfg.UsesDefaultSecret())
}

func TestLoadEnvOverride(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DATABASE_DRIVER", "memory")
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("RATELIMIT_BURST", "7")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.True(t, cfg.Database.IsMemory())
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, 7, cfg.RateLimit.Burst)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	path := filepath.Join(dir, "app.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: debug\n  format: json\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := Load("does-not-exist.yaml")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			Database: DatabaseConfig{Driver: "postgres"},
			Storage:  StorageConfig{Driver: "local"},
		}
	}

	c := base()
	assert.NoError(t, c.Validate())

	c = base()
	c.Database.Driver = "mysql"
	assert.Error(t, c.Validate())

	c = base()
	c.Storage.Driver = "s3"
	assert.Error(t, c.Validate())
	c.Storage.Bucket = "cvs"
	assert.NoError(t, c.Validate())

	c = base()
	c.Auth.Enabled = true
	assert.Error(t, c.Validate())
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", Name: "n", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=n sslmode=disable", d.DSN())
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (testing.T.Chdir requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
