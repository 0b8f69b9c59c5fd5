package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "0123456789abcdef0123456789abcdef"

func TestParseDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", secret)

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "postgres", cfg.StoreDriver)
	assert.Equal(t, "jwt", cfg.AuthProvider)
	assert.Equal(t, "gemini", cfg.AIProvider)
	assert.Equal(t, 60*time.Second, cfg.AITimeout)
	assert.NoError(t, cfg.Validate())
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "mongo")
	t.Setenv("AI_TIMEOUT", "15s")
	t.Setenv("AUTH_PROVIDER", "firebase")
	t.Setenv("FIREBASE_PROJECT_ID", "demo-project")
	t.Setenv("TIMEZONE", "Europe/Istanbul")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, "mongo", cfg.StoreDriver)
	assert.Equal(t, 15*time.Second, cfg.AITimeout)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "Europe/Istanbul", cfg.Location().String())
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{StoreDriver: "memory", AuthProvider: "jwt", JWTSecret: secret, AIProvider: "none"}
	}
	require.NoError(t, base().Validate())

	c := base()
	c.JWTSecret = "short"
	assert.Error(t, c.Validate())

	c = base()
	c.JWTSecret = ""
	assert.Error(t, c.Validate())

	c = base()
	c.StoreDriver = "sqlite"
	assert.Error(t, c.Validate())

	c = base()
	c.AuthProvider = "firebase"
	assert.Error(t, c.Validate(), "firebase needs a project id")

	c = base()
	c.AIProvider = "claude"
	assert.Error(t, c.Validate())
}

func TestLocationFallback(t *testing.T) {
	c := &Config{Timezone: "Not/AZone"}
	assert.Equal(t, time.Local, c.Location())
}

func TestLoggerConfig(t *testing.T) {
	c := &Config{LogLevel: "debug", LogFormat: "json", LogOutput: "both", LogPath: "/tmp/x"}
	lc := c.LoggerConfig()
	assert.Equal(t, "debug", lc.Level)
	assert.Equal(t, "json", lc.Format)
	assert.Equal(t, "both", lc.Output)
	assert.Equal(t, "/tmp/x", lc.Path)
}
