package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName           string
	AppEnv            string
	AppPort           string
	DatabaseURL       string
	RedisURL          string
	NATSURL           string
	EventChannelBase  string
	JWTSecret         string
	AccessTokenTTL    time.Duration
	AdminPIN          string
	SysAccessTokenTTL time.Duration
	DashboardCacheTTL time.Duration
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("EDUMENTOR")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "EduMentor API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("events.channel_base", "edumentor")
	v.SetDefault("auth.access_token_ttl", "12h")
	v.SetDefault("auth.sys_access_token_ttl", "30m")
	v.SetDefault("dashboard.cache_ttl", "5m")

	accessTTL, err := time.ParseDuration(v.GetString("auth.access_token_ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid access token ttl: %w", err)
	}

	sysTTL, err := time.ParseDuration(v.GetString("auth.sys_access_token_ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid sys access token ttl: %w", err)
	}

	cacheTTL, err := time.ParseDuration(v.GetString("dashboard.cache_ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid dashboard cache ttl: %w", err)
	}

	cfg := Config{
		AppName:           v.GetString("app.name"),
		AppEnv:            v.GetString("app.env"),
		AppPort:           v.GetString("app.port"),
		DatabaseURL:       v.GetString("database.url"),
		RedisURL:          v.GetString("redis.url"),
		NATSURL:           v.GetString("nats.url"),
		EventChannelBase:  v.GetString("events.channel_base"),
		JWTSecret:         v.GetString("jwt.secret"),
		AccessTokenTTL:    accessTTL,
		AdminPIN:          v.GetString("admin.pin"),
		SysAccessTokenTTL: sysTTL,
		DashboardCacheTTL: cacheTTL,
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	if cfg.AdminPIN == "" {
		return Config{}, fmt.Errorf("admin pin must be provided")
	}

	return cfg, nil
}
