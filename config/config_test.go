package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("SESSION_TTL", "")
	t.Setenv("PASSWORD_HASH_ITERATIONS", "")

	cfg := Load()
	assert.Equal(t, "postgres", cfg.StoreDriver)
	assert.False(t, cfg.UseMemoryStore())
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "session_id", cfg.SessionCookieName)
	assert.Equal(t, 600000, cfg.PasswordHashIterations)
	assert.Equal(t, "sha256", cfg.PasswordHashMethod)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "Memory")
	t.Setenv("SESSION_TTL", "90m")
	t.Setenv("ADMIN_BOOTSTRAP", "true")
	t.Setenv("PASSWORD_HASH_ITERATIONS", "not-a-number")

	cfg := Load()
	assert.True(t, cfg.UseMemoryStore())
	assert.Equal(t, 90*time.Minute, cfg.SessionTTL)
	assert.True(t, cfg.AdminBootstrap)
	assert.Equal(t, 600000, cfg.PasswordHashIterations, "invalid ints fall back to the default")
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "h", DBPort: "5432", DBName: "d", DBSSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@h:5432/d?sslmode=disable", cfg.PostgresDSN())
}

func TestSplitLists(t *testing.T) {
	cfg := &Config{CORSAllowedOrigins: " http://a , ,http://b", ElasticsearchAddrs: ""}
	assert.Equal(t, []string{"http://a", "http://b"}, cfg.CORSOrigins())
	assert.Empty(t, cfg.ESAddrs())
}
