package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_parseEnv(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("environment overrides current values", func(t *testing.T) {
		os.Args = []string{"testbin"}
		t.Setenv("JWT_TOKEN_SECRET", "from-env")
		t.Setenv("ACCESS_TOKEN_TTL", "45m")
		t.Setenv("BCRYPT_COST", "8")

		cfg := &Config{}
		cfg.LoadDefaults()
		parseEnv(cfg)

		assert.Equal(t, "from-env", cfg.SecretKey)
		assert.Equal(t, 45*time.Minute, cfg.AccessTokenValidityDuration)
		assert.Equal(t, 8, cfg.BcryptCost)
		assert.Equal(t, ":8080", cfg.EndpointAddrHTTP, "unset variables keep the current value")
	})

	t.Run("dotenv file from flag", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "test.env")
		require.NoError(t, os.WriteFile(path, []byte("EVENTBOARD_ADDR=:7070\nLOG_LEVEL=debug\n"), 0o600))
		os.Args = []string{"testbin", "-env-file", path}
		t.Cleanup(func() {
			os.Unsetenv("EVENTBOARD_ADDR")
			os.Unsetenv("LOG_LEVEL")
		})

		cfg := &Config{}
		cfg.LoadDefaults()
		parseEnv(cfg)

		assert.Equal(t, ":7070", cfg.EndpointAddrHTTP)
		assert.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("missing dotenv file from flag panics", func(t *testing.T) {
		os.Args = []string{"testbin", "-env-file", filepath.Join(t.TempDir(), "missing.env")}

		require.Panics(t, func() { parseEnv(&Config{}) })
	})

	t.Run("bad value panics", func(t *testing.T) {
		os.Args = []string{"testbin"}
		t.Setenv("BCRYPT_COST", "lots")

		require.Panics(t, func() { parseEnv(&Config{}) })
	})
}
