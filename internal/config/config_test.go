package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
api:
  environment: production
  port: "9000"
  allowed_cors_domains:
    - https://eventpal.example
  jwt_signing_key: file-key
  jwt_ttl: 2h
storage:
  driver: sqlite
  sqlite_path: /tmp/eventpal.db
postgres:
  user: eventpal
  db: eventpal
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad_File(t *testing.T) {
	conf, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "production", conf.API.Environment)
	assert.Equal(t, "9000", conf.API.Port)
	assert.Equal(t, []string{"https://eventpal.example"}, conf.API.AllowedCORSDomains)
	assert.Equal(t, 2*time.Hour, conf.API.JWTTTL)
	assert.Equal(t, "sqlite", conf.Storage.Driver)
	assert.Equal(t, "eventpal_", conf.Storage.KeyPrefix)
	assert.Equal(t, "debug", conf.Gin.Mode)
	assert.Equal(t, "host=localhost port=5432 user=eventpal password= dbname=eventpal sslmode=disable", conf.Postgres.DSN())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("EVENTPAL_API_PORT", "7000")
	t.Setenv("EVENTPAL_API_JWT_SIGNING_KEY", "env-key")

	conf, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "7000", conf.API.Port)
	assert.Equal(t, "env-key", conf.API.JWTSigningKey)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("EVENTPAL_API_JWT_SIGNING_KEY", "env-key")

	conf, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)

	assert.Equal(t, "8080", conf.API.Port)
	assert.Equal(t, "memory", conf.Storage.Driver)
	assert.Equal(t, 24*time.Hour, conf.API.JWTTTL)
}

func TestLoad_Validation(t *testing.T) {
	_, err := Load(writeConfig(t, "api:\n  port: \"1\"\n"))
	assert.EqualError(t, err, "api.jwt_signing_key is required")

	_, err = Load(writeConfig(t, "api:\n  jwt_signing_key: k\nstorage:\n  driver: redis\n"))
	assert.EqualError(t, err, `unknown storage driver "redis"`)
}
