package config

import (
	"testing"

	v "github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setValid(t *testing.T) {
	t.Helper()

	v.Reset()
	t.Cleanup(v.Reset)

	Defaults()
	v.Set("jwt.secret", "secret")
	v.Set("llm.api_key", "key")
}

func TestDefaultsAreValid(t *testing.T) {
	setValid(t)

	require.NoError(t, Validate())
	assert.Equal(t, 8080, v.GetInt("host.port"))
	assert.Equal(t, "sqlite", v.GetString("database.driver"))
	assert.Equal(t, "bewerbung", v.GetString("database.name"))
	assert.Equal(t, "none", v.GetString("storage.type"))
	assert.Equal(t, 1, v.GetInt("llm.retries"))
	assert.Equal(t, int64(60), int64(v.GetDuration("llm.timeout").Seconds()))
}

func TestEnvBindings(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("MONGO_URL", "file.db")
	t.Setenv("EMERGENT_LLM_KEY", "from-env")
	t.Setenv("DB_NAME", "jobs")

	v.Reset()
	t.Cleanup(v.Reset)
	Defaults()

	assert.Equal(t, 9000, v.GetInt("host.port"))
	assert.Equal(t, "file.db", v.GetString("database.url"))
	assert.Equal(t, "jobs", v.GetString("database.name"))
	assert.Equal(t, "from-env", v.GetString("llm.api_key"))

	// The first name in a binding takes precedence
	t.Setenv("HOST_PORT", "9100")
	assert.Equal(t, 9100, v.GetInt("host.port"))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  any
	}{
		{"log level", "app.log_level", "verbose"},
		{"port", "host.port", 0},
		{"driver", "database.driver", "mongodb"},
		{"postgres without dsn", "database.driver", "postgres"},
		{"secret", "jwt.secret", ""},
		{"provider", "llm.provider", "emergent"},
		{"api key", "llm.api_key", ""},
		{"llm timeout", "llm.timeout", "0s"},
		{"retries", "llm.retries", -1},
		{"upload size", "upload.max_size", 0},
		{"rate limit", "security.rate_limit", -5},
		{"storage", "storage.type", "ftp"},
		{"s3 without bucket", "storage.type", "s3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setValid(t)
			v.Set(tt.key, tt.val)

			assert.Error(t, Validate())
		})
	}
}
