package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func Test_LoadFile_UsesDefaults_WhenFileIsMissing(t *testing.T) {
	// act
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))

	// assert
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "http://127.0.0.1:8000/api/", cfg.Backend.BaseURL)
	assert.True(t, decimal.NewFromInt(10).Equal(cfg.FinePerDay()))
	assert.Equal(t, 10*time.Second, cfg.BackendTimeout())
	assert.Equal(t, "₹", cfg.Display.Currency)
	assert.False(t, cfg.AuthEnabled())
	assert.False(t, cfg.Redis.Enabled)
	assert.False(t, cfg.Database.Enabled)
}

func Test_LoadFile_ReadsYAML(t *testing.T) {
	// arrange
	path := writeConfig(t, `
server:
  port: 9000
backend:
  base_url: http://books.internal/api/
  timeout_seconds: 3
fine:
  per_day: 12.5
database:
  enabled: true
  user: audit
  password: secret
  host: db
  port: 5433
  name: audit_db
`)

	// act
	cfg, err := LoadFile(path)

	// assert
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "http://books.internal/api/", cfg.Backend.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.BackendTimeout())
	assert.Equal(t, "12.5", cfg.FinePerDay().String())
	assert.Equal(t, "postgres://audit:secret@db:5433/audit_db?sslmode=disable", cfg.DatabaseURL())
}

func Test_LoadFile_EnvironmentOverridesFile(t *testing.T) {
	// arrange
	path := writeConfig(t, "backend:\n  base_url: http://from-file/api/\n")
	t.Setenv("BACKEND_URL", "http://from-env/api/")
	t.Setenv("PORT", "7070")

	// act
	cfg, err := LoadFile(path)

	// assert
	require.NoError(t, err)
	assert.Equal(t, "http://from-env/api/", cfg.Backend.BaseURL)
	assert.Equal(t, 7070, cfg.Server.Port)
}

func Test_LoadFile_RejectsNonNumericFine(t *testing.T) {
	// arrange
	path := writeConfig(t, "fine:\n  per_day: ten\n")

	// act
	_, err := LoadFile(path)

	// assert
	assert.ErrorContains(t, err, "fine.per_day")
}

func Test_Validate_RequiresJWTSecret_WhenAuthEnabled(t *testing.T) {
	// arrange
	path := writeConfig(t, "auth:\n  password_hash: $2a$08$abcdefghijklmnopqrstuv\n")
	t.Setenv("JWT_SECRET", "")

	// act
	_, err := LoadFile(path)

	// assert
	assert.ErrorContains(t, err, "jwt.secret")
}
