package utils

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App              AppConfig
	Database         DatabaseConfig
	IdentityProvider IdentityProviderConfig
	ProfileRetry     ProfileRetryConfig
	Session          SessionConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

// IdentityProviderConfig holds connection settings for the external
// identity provider (GoTrue-compatible HTTP API).
type IdentityProviderConfig struct {
	BaseURL          string
	AnonKey          string
	ServiceRoleKey   string
	EmailRedirectURL string
	Timeout          time.Duration
}

type ProfileRetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

type SessionConfig struct {
	ExpiryHours int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("IDP_TIMEOUT_SECONDS", 10)
	viper.SetDefault("PROFILE_RETRY_MAX_ATTEMPTS", 5)
	viper.SetDefault("PROFILE_RETRY_BASE_DELAY_MS", 1000)
	viper.SetDefault("SESSION_EXPIRY_HOURS", 24)
	viper.SetDefault("LOG_PATH", "logs/")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		IdentityProvider: IdentityProviderConfig{
			BaseURL:          viper.GetString("IDP_BASE_URL"),
			AnonKey:          viper.GetString("IDP_ANON_KEY"),
			ServiceRoleKey:   viper.GetString("IDP_SERVICE_ROLE_KEY"),
			EmailRedirectURL: viper.GetString("IDP_EMAIL_REDIRECT_URL"),
			Timeout:          time.Duration(viper.GetInt("IDP_TIMEOUT_SECONDS")) * time.Second,
		},
		ProfileRetry: ProfileRetryConfig{
			MaxAttempts: viper.GetInt("PROFILE_RETRY_MAX_ATTEMPTS"),
			BaseDelay:   time.Duration(viper.GetInt("PROFILE_RETRY_BASE_DELAY_MS")) * time.Millisecond,
		},
		Session: SessionConfig{
			ExpiryHours: viper.GetInt("SESSION_EXPIRY_HOURS"),
		},
	}

	return config, nil
}
