package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		for _, k := range []string{"PORT", "MUSIC_DIR", "MAX_UPLOAD_BYTES", "WEBDAV_TIMEOUT_SECONDS", "CORS_ALLOWED_ORIGIN", "SQLITE_PATH", "REDIS_URL"} {
			t.Setenv(k, "")
		}
		t.Setenv("WEBDAV_URL", "https://dav.example.com/remote.php/webdav")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "3002", cfg.Port)
		assert.Equal(t, "/music", cfg.MusicDir)
		assert.Equal(t, int64(200*1024*1024), cfg.MaxUploadBytes)
		assert.Equal(t, 30*time.Second, cfg.WebDAVTimeout)
		assert.Equal(t, "*", cfg.CORSAllowedOrigin)
		assert.Equal(t, "musicquiz.db", cfg.SQLitePath)
		assert.Empty(t, cfg.RedisURL)
	})

	t.Run("missing webdav url", func(t *testing.T) {
		t.Setenv("WEBDAV_URL", "")

		_, err := Load()
		assert.ErrorIs(t, err, ErrMissingWebDAVURL)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("WEBDAV_URL", "http://localhost:8081")
		t.Setenv("WEBDAV_USERNAME", "alice")
		t.Setenv("WEBDAV_PASSWORD", "secret")
		t.Setenv("PORT", "5000")
		t.Setenv("MUSIC_DIR", "tracks/")
		t.Setenv("MAX_UPLOAD_BYTES", "1024")
		t.Setenv("WEBDAV_TIMEOUT_SECONDS", "5")
		t.Setenv("REDIS_URL", "redis://localhost:6379")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "5000", cfg.Port)
		assert.Equal(t, "alice", cfg.WebDAVUsername)
		assert.Equal(t, "secret", cfg.WebDAVPassword)
		assert.Equal(t, "/tracks", cfg.MusicDir)
		assert.Equal(t, int64(1024), cfg.MaxUploadBytes)
		assert.Equal(t, 5*time.Second, cfg.WebDAVTimeout)
		assert.Equal(t, "redis://localhost:6379", cfg.RedisURL)
	})

	t.Run("invalid numbers fall back", func(t *testing.T) {
		t.Setenv("WEBDAV_URL", "http://localhost:8081")
		t.Setenv("MAX_UPLOAD_BYTES", "lots")
		t.Setenv("WEBDAV_TIMEOUT_SECONDS", "-3")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, int64(defaultMaxUploadBytes), cfg.MaxUploadBytes)
		assert.Equal(t, defaultWebDAVTimeout, cfg.WebDAVTimeout)
	})
}
