package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	JWT        JWTConfig        `mapstructure:"jwt"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit"`
	Scheduling SchedulingConfig `mapstructure:"scheduling"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	MaxHeaderBytes int           `mapstructure:"max_header_bytes"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

type RedisConfig struct {
	// URL is empty when Redis is not deployed; the API falls back to
	// in-process locking, which is correct for a single instance.
	URL     string        `mapstructure:"url"`
	LockTTL time.Duration `mapstructure:"lock_ttl"`
}

type JWTConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Secret  string `mapstructure:"secret"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

type SchedulingConfig struct {
	CreateGrace       time.Duration `mapstructure:"create_grace"`
	PendingTTL        time.Duration `mapstructure:"pending_ttl"`
	DayStartHour      int           `mapstructure:"day_start_hour"`
	DayEndHour        int           `mapstructure:"day_end_hour"`
	IncludeSunday     bool          `mapstructure:"include_sunday"`
	MonthPreviewLimit int           `mapstructure:"month_preview_limit"`
	CacheTTL          time.Duration `mapstructure:"cache_ttl"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 15*time.Second)
	viper.SetDefault("server.write_timeout", 15*time.Second)
	viper.SetDefault("server.max_header_bytes", 1<<20)

	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.name", "agenda")
	viper.SetDefault("database.sslmode", "disable")

	viper.SetDefault("redis.lock_ttl", 10*time.Second)

	viper.SetDefault("rate_limit.requests_per_second", 100.0)
	viper.SetDefault("rate_limit.burst", 200)

	viper.SetDefault("scheduling.create_grace", 5*time.Minute)
	viper.SetDefault("scheduling.pending_ttl", 30*time.Minute)
	viper.SetDefault("scheduling.day_start_hour", 8)
	viper.SetDefault("scheduling.day_end_hour", 20)
	viper.SetDefault("scheduling.include_sunday", false)
	viper.SetDefault("scheduling.month_preview_limit", 3)
	viper.SetDefault("scheduling.cache_ttl", 30*time.Second)

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.pretty", false)
}
