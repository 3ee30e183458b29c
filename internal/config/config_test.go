package config

import (
	"os"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Env:                      "development",
		DBSSLMode:                "disable",
		JWTSecret:                "secure-secret-at-least-32-chars-long",
		JWTTTLHours:              168,
		DBPassword:               "secure-password",
		Port:                     "8080",
		DBConnMaxLifetimeMinutes: 5,
		RedisURL:                 "redis://localhost:6379",
		AdminPassword:            "Adm1n-Passw0rd!",
	}
}

func TestConfig_ValidateSSLMode(t *testing.T) {
	tests := []struct {
		name        string
		env         string
		sslMode     string
		expectError bool
	}{
		{"Production with empty SSL mode", "production", "", true},
		{"Production with disable SSL mode", "production", "disable", true},
		{"Production with require SSL mode", "production", "require", false},
		{"Prod with verify-full SSL mode", "prod", "verify-full", false},
		{"Development with disable SSL mode", "development", "disable", false},
		{"Test with empty SSL mode", "test", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			c.Env = tt.env
			c.DBSSLMode = tt.sslMode

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_ValidateProductionSecrets(t *testing.T) {
	t.Run("default jwt secret rejected", func(t *testing.T) {
		c := validConfig()
		c.Env = "production"
		c.DBSSLMode = "require"
		c.JWTSecret = defaultJWTSecret
		assert.Error(t, c.Validate())
	})

	t.Run("missing admin password rejected", func(t *testing.T) {
		c := validConfig()
		c.Env = "production"
		c.DBSSLMode = "require"
		c.AdminPassword = ""
		assert.Error(t, c.Validate())
	})

	t.Run("weak db password rejected", func(t *testing.T) {
		c := validConfig()
		c.Env = "production"
		c.DBSSLMode = "require"
		c.DBPassword = "password"
		assert.Error(t, c.Validate())
	})
}

func TestConfig_ValidateRejectsBadValues(t *testing.T) {
	c := validConfig()
	c.JWTTTLHours = 0
	assert.Error(t, c.Validate())

	c = validConfig()
	c.DBSchemaMode = "yolo"
	assert.Error(t, c.Validate())

	c = validConfig()
	c.Port = ""
	assert.Error(t, c.Validate())
}

func TestLoadConfig_Normalization(t *testing.T) {
	defer os.Unsetenv("APP_ENV")
	defer os.Unsetenv("DB_SSLMODE")
	defer os.Unsetenv("ADMIN_EMAIL")
	defer viper.Reset()

	os.Setenv("APP_ENV", "development")
	os.Setenv("DB_SSLMODE", "  DISABLE  ")
	os.Setenv("ADMIN_EMAIL", " Admin@Example.COM ")

	c, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "disable", c.DBSSLMode)
	assert.Equal(t, "admin@example.com", c.AdminEmail)
	assert.Equal(t, 168, c.JWTTTLHours)
	assert.Equal(t, "hybrid", c.DBSchemaMode)
}
