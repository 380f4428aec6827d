package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppliesDefaults(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DATABASE_NAME", "")
	t.Setenv("PORT", "")
	t.Setenv("ALLOW_ORIGINS", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "wellcheck", cfg.DatabaseName)
	assert.Equal(t, "5001", cfg.Port)
	assert.Equal(t, "http://localhost:8080", cfg.AllowOrigins)
}

func TestLoadRequiresURIAndSecret(t *testing.T) {
	t.Setenv("MONGODB_URI", "")
	t.Setenv("JWT_SECRET", "test-secret")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("JWT_SECRET", "")
	_, err = Load()
	assert.Error(t, err)
}
