// Package config contains code to set the default values and read
// config files to be used throughout the whole application
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	v "github.com/spf13/viper"
)

var (
	configFile = pflag.String("config", "", "Path to a config.toml file")

	validLogLevels    = []string{"debug", "info", "warn", "error", "fatal"}
	validDrivers      = []string{"sqlite", "postgres"}
	validProviders    = []string{"openai", "googleai"}
	validStorageTypes = []string{"none", "local", "s3"}
)

// Setup prepares everything config-related so that the app can
// start working. Function will return an error if something
// is critically wrong and the application can't run because of
// that.
func Setup() error {
	pflag.Parse()
	v.BindPFlags(pflag.CommandLine)

	// A .env file is a convenience for local runs, real environment wins
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to read .env file, %w", err)
	}

	Defaults()

	if *configFile != "" {
		v.SetConfigFile(*configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound v.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file, %w", err)
		}
	}

	return Validate()
}

// Defaults binds every key to its environment variables and sets the
// default values. The first variable that is set wins.
func Defaults() {
	//
	// ENVS
	//
	v.BindEnv("app.log_level", "APP_LOG_LEVEL")

	v.BindEnv("host.port", "HOST_PORT", "PORT")
	v.BindEnv("host.cors", "CORS_ORIGINS", "HOST_CORS")

	v.BindEnv("database.driver", "DATABASE_DRIVER")
	v.BindEnv("database.url", "DATABASE_URL", "MONGO_URL")
	v.BindEnv("database.name", "DATABASE_NAME", "DB_NAME")

	v.BindEnv("jwt.secret", "JWT_SECRET")

	v.BindEnv("llm.provider", "LLM_PROVIDER")
	v.BindEnv("llm.api_key", "LLM_API_KEY", "EMERGENT_LLM_KEY")
	v.BindEnv("llm.model", "LLM_MODEL")
	v.BindEnv("llm.timeout", "LLM_TIMEOUT")
	v.BindEnv("llm.retries", "LLM_RETRIES")

	v.BindEnv("scraper.timeout", "SCRAPER_TIMEOUT")
	v.BindEnv("resume.timeout", "RESUME_TIMEOUT")

	v.BindEnv("upload.max_size", "UPLOAD_MAX_SIZE")
	v.BindEnv("security.rate_limit", "SECURITY_RATE_LIMIT")

	v.BindEnv("storage.type", "STORAGE_TYPE")
	v.BindEnv("storage.local_path", "STORAGE_LOCAL_PATH")

	v.BindEnv("aws.region", "AWS_REGION")
	v.BindEnv("aws.bucket", "AWS_BUCKET")
	v.BindEnv("aws.access_key_id", "AWS_ACCESS_KEY_ID")
	v.BindEnv("aws.secret_access_key", "AWS_SECRET_ACCESS_KEY")
	v.BindEnv("aws.endpoint", "AWS_ENDPOINT")

	//
	// Defaults
	//
	v.SetDefault("app.log_level", "info")

	v.SetDefault("host.port", 8080)
	v.SetDefault("host.cors", "*")

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.name", "bewerbung")

	v.SetDefault("llm.provider", "openai")
	v.SetDefault("llm.timeout", "60s")
	v.SetDefault("llm.retries", 1)

	v.SetDefault("scraper.timeout", "30s")
	v.SetDefault("resume.timeout", "30s")

	v.SetDefault("upload.max_size", 10)
	v.SetDefault("security.rate_limit", 10)

	v.SetDefault("storage.type", "none")
	v.SetDefault("storage.local_path", "./storage")
}

// Validate checks the loaded values
func Validate() error {
	if !slices.Contains(validLogLevels, v.GetString("app.log_level")) {
		return errors.New("invalid log level provided")
	}

	if v.GetInt("host.port") <= 0 {
		return errors.New("invalid port provided")
	}

	if !slices.Contains(validDrivers, v.GetString("database.driver")) {
		return errors.New("invalid database driver provided")
	}

	if v.GetString("database.driver") == "postgres" && v.GetString("database.url") == "" {
		return errors.New("database.url is required for postgres")
	}

	if v.GetString("jwt.secret") == "" {
		return errors.New("no JWT secret provided, set JWT_SECRET")
	}

	if !slices.Contains(validProviders, v.GetString("llm.provider")) {
		return errors.New("invalid llm provider provided")
	}

	if v.GetString("llm.api_key") == "" {
		return errors.New("no llm api key provided, set LLM_API_KEY")
	}

	if v.GetDuration("llm.timeout") <= 0 {
		return errors.New("llm.timeout must be bigger than 0")
	}

	if v.GetInt("llm.retries") < 0 {
		return errors.New("llm.retries can't be negative")
	}

	if v.GetDuration("scraper.timeout") <= 0 {
		return errors.New("scraper.timeout must be bigger than 0")
	}

	if v.GetDuration("resume.timeout") <= 0 {
		return errors.New("resume.timeout must be bigger than 0")
	}

	if v.GetInt("upload.max_size") <= 0 {
		return errors.New("upload.max_size must be bigger than 0")
	}

	if v.GetInt("security.rate_limit") < 0 {
		return errors.New("security.rate_limit can't be negative")
	}

	switch v.GetString("storage.type") {
	case "s3":
		if v.GetString("aws.bucket") == "" {
			return errors.New("bucket can't be empty")
		}
	case "local":
		if v.GetString("storage.local_path") == "" {
			return errors.New("storage.local_path can't be empty")
		}
	}

	if !slices.Contains(validStorageTypes, v.GetString("storage.type")) {
		return errors.New("invalid storage type provided")
	}

	return nil
}
