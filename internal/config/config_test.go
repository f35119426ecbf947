package config

import (
	"os"
	"strings"
	"testing"

	"github.com/gin-contrib/cors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configVars = []string{
	"APP_ENV", "APP_PORT", "APP_HOST", "BASE_PATH", "ALLOWED_ORIGINS", "LOG_LEVEL",
	"SESSION_SECRET", "BCRYPT_COST", "FIRST_USER_ADMIN", "DB_DRIVER", "DB_PORT",
	"DB_PATH", "SEED_SAMPLE_DATA",
}

// cleanupTestEnv unsets every variable LoadConfig reads
func cleanupTestEnv() {
	for _, v := range configVars {
		os.Unsetenv(v)
	}
}

func TestGetEnvWithDefault(t *testing.T) {
	testCases := []struct {
		name         string
		key          string
		defaultValue string
		envValue     string
		expected     string
	}{
		{
			name:         "should return env value when set",
			key:          "TEST_KEY",
			defaultValue: "default",
			envValue:     "from_env",
			expected:     "from_env",
		},
		{
			name:         "should return default when env not set",
			key:          "MISSING_KEY",
			defaultValue: "default_value",
			envValue:     "",
			expected:     "default_value",
		},
		{
			name:         "should return empty string default",
			key:          "EMPTY_KEY",
			defaultValue: "",
			envValue:     "",
			expected:     "",
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envValue != "" {
				os.Setenv(tt.key, tt.envValue)
				defer os.Unsetenv(tt.key)
			} else {
				os.Unsetenv(tt.key)
			}

			assert.Equal(t, tt.expected, GetEnvWithDefault(tt.key, tt.defaultValue))
		})
	}
}

func TestGetEnvAsType(t *testing.T) {
	t.Setenv("TYPED_INT", "12")
	t.Setenv("TYPED_BOOL", "true")
	t.Setenv("TYPED_BAD_INT", "twelve")

	assert.Equal(t, 12, GetEnvAsType("TYPED_INT", 10))
	assert.Equal(t, true, GetEnvAsType("TYPED_BOOL", false))
	assert.Equal(t, 10, GetEnvAsType("TYPED_BAD_INT", 10))
	assert.Equal(t, "fallback", GetEnvAsType("TYPED_MISSING", "fallback"))
}

func TestLoadConfig(t *testing.T) {
	t.Run("successful config load with all env vars", func(t *testing.T) {
		cleanupTestEnv()
		defer cleanupTestEnv()
		os.Setenv("APP_PORT", "4162")
		os.Setenv("APP_HOST", "0.0.0.0")
		os.Setenv("BASE_PATH", "app162/")
		os.Setenv("LOG_LEVEL", "debug")
		os.Setenv("SESSION_SECRET", "a-very-secret-session-key-for-tests")
		os.Setenv("BCRYPT_COST", "12")
		os.Setenv("FIRST_USER_ADMIN", "true")
		os.Setenv("DB_DRIVER", "MySQL")
		os.Setenv("ALLOWED_ORIGINS", "http://a.example, http://b.example")

		config, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, 4162, config.Port)
		assert.Equal(t, "0.0.0.0", config.Host)
		assert.Equal(t, "/app162", config.BasePath)
		assert.Equal(t, "debug", config.LogLevel)
		assert.Equal(t, 12, config.BcryptCost)
		assert.True(t, config.FirstUserAdmin)
		assert.Equal(t, "mysql", config.DBDriver)
		assert.Equal(t, "3306", config.DBPort)
		assert.Equal(t, []string{"http://a.example", "http://b.example"}, config.AllowedOrigins)
		assert.Equal(t, "0.0.0.0:4162", config.Addr())
	})

	t.Run("should fail with invalid port", func(t *testing.T) {
		cleanupTestEnv()
		defer cleanupTestEnv()
		os.Setenv("APP_PORT", "not_a_number")

		config, err := LoadConfig()
		assert.Error(t, err)
		assert.Nil(t, config)
	})

	t.Run("should fail with unsupported driver", func(t *testing.T) {
		cleanupTestEnv()
		defer cleanupTestEnv()
		os.Setenv("DB_DRIVER", "oracle")

		config, err := LoadConfig()
		assert.Error(t, err)
		assert.Nil(t, config)
	})

	t.Run("should fail with bcrypt cost out of range", func(t *testing.T) {
		cleanupTestEnv()
		defer cleanupTestEnv()
		os.Setenv("BCRYPT_COST", "2")

		_, err := LoadConfig()
		assert.Error(t, err)
	})

	t.Run("should require session secret in production", func(t *testing.T) {
		cleanupTestEnv()
		defer cleanupTestEnv()
		os.Setenv("APP_ENV", "production")

		_, err := LoadConfig()
		assert.Error(t, err)
	})

	t.Run("should fail with an origin missing its scheme", func(t *testing.T) {
		cleanupTestEnv()
		defer cleanupTestEnv()
		os.Setenv("ALLOWED_ORIGINS", "https://ok.example, example.com")

		config, err := LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "example.com")
		assert.Nil(t, config)
	})

	t.Run("accepted origins pass the cors validation", func(t *testing.T) {
		cleanupTestEnv()
		defer cleanupTestEnv()
		os.Setenv("ALLOWED_ORIGINS", "https://ok.example,http://localhost:3000")

		config, err := LoadConfig()
		require.NoError(t, err)
		assert.NoError(t, cors.Config{AllowOrigins: config.AllowedOrigins}.Validate())

		os.Setenv("ALLOWED_ORIGINS", "*")
		config, err = LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, []string{"*"}, config.AllowedOrigins)
	})

	t.Run("should use defaults when optional env vars not set", func(t *testing.T) {
		cleanupTestEnv()
		defer cleanupTestEnv()

		config, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, 8080, config.Port)
		assert.Equal(t, "localhost", config.Host)
		assert.Equal(t, "", config.BasePath)
		assert.Equal(t, "info", config.LogLevel)
		assert.Equal(t, "sqlite", config.DBDriver)
		assert.Equal(t, 10, config.BcryptCost)
		assert.False(t, config.FirstUserAdmin)
		assert.Empty(t, config.AllowedOrigins)
	})
}

func TestConfigStringMasksSecrets(t *testing.T) {
	c := &Config{DBPassword: "hunter2", SessionSecret: "s3cr3t-value"}
	s := c.String()
	assert.NotContains(t, s, "hunter2")
	assert.NotContains(t, s, "s3cr3t-value")
	assert.Equal(t, 2, strings.Count(s, "[REDACTED]"))
}

func TestNormalizeBasePath(t *testing.T) {
	for in, want := range map[string]string{
		"":          "",
		"/":         "",
		"app162":    "/app162",
		"/app162/":  "/app162",
		" /a/b/ ":   "/a/b",
	} {
		assert.Equal(t, want, NormalizeBasePath(in), "input %q", in)
	}
}

func BenchmarkGetEnvWithDefault(b *testing.B) {
	os.Setenv("BENCH_KEY", "test_value")
	defer os.Unsetenv("BENCH_KEY")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		GetEnvWithDefault("BENCH_KEY", "default")
	}
}
