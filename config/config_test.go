package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/hack?sslmode=disable")
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("PUBLIC_URL", "https://hack.example/")
	t.Setenv("REDIS_ADDRESS", "localhost:6379")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, "https://hack.example", cfg.PublicURL)
	assert.Equal(t, 72*time.Hour, cfg.TokenTTL)
	assert.True(t, cfg.Redis.Enabled())
	assert.False(t, cfg.R2.Enabled())
}

func TestValidate(t *testing.T) {
	cfg := &Config{ServerPort: 70000, TokenTTL: time.Hour}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
	assert.Contains(t, err.Error(), "JWT_SECRET_KEY")
	assert.Contains(t, err.Error(), "SERVER_PORT")

	cfg = &Config{DatabaseURL: "x", JWTSecretKey: "y", ServerPort: 8080, TokenTTL: time.Hour,
		R2: R2Config{AccountID: "acc", BucketName: "b"}}
	assert.ErrorContains(t, cfg.Validate(), "R2 credentials")
}

func TestParseJudgingPresets(t *testing.T) {
	presets, err := ParseJudgingPresets([]byte(`
presets:
  default:
    - name: innovation
      weight: 2
    - name: design
`))
	require.NoError(t, err)

	criteria, ok := presets.Get("default")
	require.True(t, ok)
	require.Len(t, criteria, 2)
	assert.Equal(t, 2.0, criteria[0].Weight)
	assert.Equal(t, 1.0, criteria[1].Weight, "missing weight defaults to 1")

	_, err = ParseJudgingPresets([]byte("presets:\n  x:\n    - name: a\n    - name: a\n"))
	assert.ErrorContains(t, err, "duplicate")
}

func TestLoadJudgingPresetsFile(t *testing.T) {
	presets, err := LoadJudgingPresets("judging_presets.yaml")
	require.NoError(t, err)
	assert.Equal(t, []string{"ai-track", "beginner", "default"}, presets.Names())

	missing, err := LoadJudgingPresets(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Empty(t, missing)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("presets: [oops"), 0o600))
	_, err = LoadJudgingPresets(bad)
	assert.Error(t, err)
}
