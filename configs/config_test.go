package configs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyEnvOverridesDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SESSION_TTL_HOURS", "2")
	t.Setenv("MAX_UPLOAD_MB", "10")
	t.Setenv("CORS_ORIGINS", "http://a.local, ,http://b.local")
	t.Setenv("COOKIE_SECURE", "true")

	cfg := Defaults()
	applyEnv(&cfg)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, 2, cfg.SessionTTLHours)
	assert.Equal(t, int64(10*1024*1024), cfg.MaxUploadBytes())
	assert.Equal(t, []string{"http://a.local", "http://b.local"}, cfg.CORSOrigins)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, "Admin", cfg.DefaultAdminUsername)
}

func TestApplyEnvKeepsValueOnBadInt(t *testing.T) {
	t.Setenv("SESSION_TTL_HOURS", "soon")
	t.Setenv("MAX_UPLOAD_MB", "-3")

	cfg := Defaults()
	applyEnv(&cfg)

	assert.Equal(t, 24, cfg.SessionTTLHours)
	assert.Equal(t, int64(500), cfg.MaxUploadMB)
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "server_port: \"7000\"\nstorage_type: s3\ns3_bucket: signage\ncors_origins:\n  - http://display.local\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg := Defaults()
	require.NoError(t, loadYAML(path, &cfg))

	assert.Equal(t, "7000", cfg.ServerPort)
	assert.Equal(t, "s3", cfg.StorageType)
	assert.Equal(t, "signage", cfg.S3Bucket)
	assert.Equal(t, []string{"http://display.local"}, cfg.CORSOrigins)
	// 未出现在文件中的键保持默认值
	assert.Equal(t, "uploads", cfg.UploadFolder)
}
