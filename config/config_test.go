package config_test

import (
	"testing"

	"github.com/forgelabs/appforge/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

func TestDecodeJWTSection(t *testing.T) {
	raw := `
jwt:
  secret: super-secret
  accessTTLMinutes: 15
  refreshTTLDays: 14
databaseResources:
  maindb:
    driver: postgres
    postgres:
      debug: true
      dsn: postgres://localhost/appforge
`

	var cfg config.Config
	err := yaml.Unmarshal([]byte(raw), &cfg)
	require.NoError(t, err)

	assert.Equal(t, "super-secret", cfg.JWT.Secret)
	assert.Equal(t, 15, cfg.JWT.AccessTTLMinutes)
	assert.Equal(t, 14, cfg.JWT.RefreshTTLDays)

	db, ok := cfg.DatabaseResources["maindb"]
	require.True(t, ok)
	assert.Equal(t, "postgres", db.Driver)
	assert.True(t, db.Postgres.Debug)
}
