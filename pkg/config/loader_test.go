package config_test

import (
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/loginlink/pkg/config"
	"github.com/dmitrymomot/loginlink/pkg/token"
)

type envConfig struct {
	Name    string        `env:"TEST_LOADER_NAME"`
	Port    int           `env:"TEST_LOADER_PORT"`
	Timeout time.Duration `env:"TEST_LOADER_TIMEOUT"`
}

type requiredConfig struct {
	Value string `env:"TEST_LOADER_REQUIRED,required"`
}

type customEnvConfig struct {
	String     string   `env:"TEST_CUSTOM_STRING"`
	Int        int      `env:"TEST_CUSTOM_INT"`
	Array      []string `env:"TEST_CUSTOM_ARRAY" envSeparator:","`
	WithQuotes string   `env:"TEST_CUSTOM_WITH_QUOTES"`
	Unique     string   `env:"TEST_OVERRIDE_UNIQUE"`
}

func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		// Register restoration, then remove for the duration of the test.
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoad(t *testing.T) {
	config.ResetCache()
	t.Setenv("TEST_LOADER_NAME", "loginlink")
	t.Setenv("TEST_LOADER_TIMEOUT", "5s")
	unsetEnv(t, "TEST_LOADER_PORT")

	cfg := envConfig{Port: 8080}
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "loginlink", cfg.Name)
	assert.Equal(t, 8080, cfg.Port, "unset variables keep pre-filled defaults")
	assert.Equal(t, 5*time.Second, cfg.Timeout)
}

func TestLoad_Cached(t *testing.T) {
	config.ResetCache()
	t.Setenv("TEST_LOADER_NAME", "first")

	var first envConfig
	require.NoError(t, config.Load(&first))

	t.Setenv("TEST_LOADER_NAME", "second")
	var cached envConfig
	require.NoError(t, config.Load(&cached))
	assert.Equal(t, "first", cached.Name)

	var reloaded envConfig
	require.NoError(t, config.ForceReload(&reloaded))
	assert.Equal(t, "second", reloaded.Name)
}

func TestLoad_Concurrent(t *testing.T) {
	config.ResetCache()
	t.Setenv("TEST_LOADER_NAME", "shared")

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var cfg envConfig
			if assert.NoError(t, config.Load(&cfg)) {
				assert.Equal(t, "shared", cfg.Name)
			}
		}()
	}
	wg.Wait()
}

func TestLoad_Errors(t *testing.T) {
	config.ResetCache()
	unsetEnv(t, "TEST_LOADER_REQUIRED")

	var cfg requiredConfig
	err := config.Load(&cfg)
	assert.ErrorIs(t, err, config.ErrParsingConfig)

	// Failures are not cached.
	t.Setenv("TEST_LOADER_REQUIRED", "present")
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "present", cfg.Value)

	assert.ErrorIs(t, config.Load[envConfig](nil), config.ErrNilPointer)
}

func TestMustLoad(t *testing.T) {
	config.ResetCache()
	unsetEnv(t, "TEST_LOADER_REQUIRED")

	assert.Panics(t, func() {
		var cfg requiredConfig
		config.MustLoad(&cfg)
	})
	assert.NotPanics(t, func() {
		var cfg envConfig
		config.MustLoad(&cfg)
	})
}

func TestLoadEnv(t *testing.T) {
	config.ResetCache()
	unsetEnv(t, "TEST_CUSTOM_STRING", "TEST_CUSTOM_INT", "TEST_CUSTOM_ARRAY", "TEST_CUSTOM_WITH_QUOTES", "TEST_OVERRIDE_UNIQUE")

	require.NoError(t, config.LoadEnv("testdata/.env.custom"))

	var cfg customEnvConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "custom_value", cfg.String)
	assert.Equal(t, 1234, cfg.Int)
	assert.Equal(t, []string{"item1", "item2", "item3"}, cfg.Array)
	assert.Equal(t, "quoted value", cfg.WithQuotes)
}

func TestLoadEnv_MultiplePaths(t *testing.T) {
	config.ResetCache()
	unsetEnv(t, "TEST_CUSTOM_STRING", "TEST_CUSTOM_INT", "TEST_CUSTOM_ARRAY", "TEST_CUSTOM_WITH_QUOTES", "TEST_OVERRIDE_UNIQUE")

	require.NoError(t, config.LoadEnv("testdata/.env.custom", "testdata/.env.override"))

	var cfg customEnvConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "override_value", cfg.String, "later files override earlier ones")
	assert.Equal(t, 1234, cfg.Int)
	assert.Equal(t, "unique_to_override", cfg.Unique)
}

func TestLoadEnv_ProcessEnvWins(t *testing.T) {
	config.ResetCache()
	unsetEnv(t, "TEST_CUSTOM_INT", "TEST_CUSTOM_ARRAY", "TEST_CUSTOM_WITH_QUOTES", "TEST_OVERRIDE_UNIQUE")
	t.Setenv("TEST_CUSTOM_STRING", "from_process")

	require.NoError(t, config.LoadEnv("testdata/.env.custom", "testdata/.env.override"))

	var cfg customEnvConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "from_process", cfg.String)
}

func TestLoadEnv_MissingFile(t *testing.T) {
	err := config.LoadEnv("testdata/does_not_exist.env")
	assert.ErrorIs(t, err, config.ErrLoadingEnvFile)

	assert.Panics(t, func() { config.MustLoadEnv("testdata/does_not_exist.env") })
}

func TestLoadFile(t *testing.T) {
	unsetEnv(t,
		"LOGINLINK_SIGNING_KEY",
		"LOGINLINK_VERIFICATION_KEYS",
		"LOGINLINK_SIGNATURE_SIZE",
		"LOGINLINK_MAX_AGE",
		"LOGINLINK_PACKER",
		"LOGINLINK_ONE_TIME",
	)
	t.Setenv("LOGINLINK_ONE_TIME", "true")

	cfg := token.DefaultConfig()
	require.NoError(t, config.LoadFile("testdata/loginlink.yaml", &cfg))

	assert.Equal(t, "yaml-key", cfg.SigningKey)
	assert.Equal(t, []string{"yaml-key", "retired-key"}, cfg.VerificationKeys)
	assert.Equal(t, 12, cfg.SignatureSize)
	assert.Equal(t, 15*time.Minute, cfg.MaxAge)
	assert.Equal(t, "int32", cfg.Packer, "defaults survive when the file is silent")
	assert.True(t, cfg.InvalidateOnPasswordChange)
	assert.True(t, cfg.OneTime, "environment overrides the file")
	require.NoError(t, cfg.Validate())
}

func TestLoadFile_EnvOverridesFile(t *testing.T) {
	unsetEnv(t, "LOGINLINK_VERIFICATION_KEYS", "LOGINLINK_SIGNATURE_SIZE", "LOGINLINK_PACKER", "LOGINLINK_ONE_TIME")
	t.Setenv("LOGINLINK_SIGNING_KEY", "env-key")
	t.Setenv("LOGINLINK_MAX_AGE", "1h")

	cfg := token.DefaultConfig()
	require.NoError(t, config.LoadFile("testdata/loginlink.yaml", &cfg))
	assert.Equal(t, "env-key", cfg.SigningKey)
	assert.Equal(t, time.Hour, cfg.MaxAge)
	assert.Equal(t, 12, cfg.SignatureSize)
}

func TestLoadFile_Errors(t *testing.T) {
	cfg := token.DefaultConfig()

	err := config.LoadFile("testdata/missing.yaml", &cfg)
	assert.ErrorIs(t, err, config.ErrReadingFile)

	err = config.LoadFile("testdata/invalid.yaml", &cfg)
	assert.ErrorIs(t, err, config.ErrParsingFile)
	assert.Equal(t, token.DefaultConfig(), cfg, "target is untouched on failure")

	assert.ErrorIs(t, config.LoadFile[token.Config]("testdata/loginlink.yaml", nil), config.ErrNilPointer)
}
