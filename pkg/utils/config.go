package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Throttle ThrottleConfig
}

type AppConfig struct {
	Name           string
	Port           string
	Debug          bool
	LogPath        string
	MigrationsPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// ThrottleConfig holds per-minute request limits per throttle scope.
type ThrottleConfig struct {
	Anon         int
	User         int
	ReviewCreate int
	ReviewList   int
	ReviewDetail int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("MIGRATIONS_PATH", "migrations")
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("THROTTLE_ANON", 20)
	viper.SetDefault("THROTTLE_USER", 60)
	viper.SetDefault("THROTTLE_REVIEW_CREATE", 5)
	viper.SetDefault("THROTTLE_REVIEW_LIST", 30)
	viper.SetDefault("THROTTLE_REVIEW_DETAIL", 30)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:           viper.GetString("APP_NAME"),
			Port:           viper.GetString("PORT"),
			Debug:          viper.GetBool("DEBUG"),
			LogPath:        viper.GetString("LOG_PATH"),
			MigrationsPath: viper.GetString("MIGRATIONS_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASS"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Throttle: ThrottleConfig{
			Anon:         viper.GetInt("THROTTLE_ANON"),
			User:         viper.GetInt("THROTTLE_USER"),
			ReviewCreate: viper.GetInt("THROTTLE_REVIEW_CREATE"),
			ReviewList:   viper.GetInt("THROTTLE_REVIEW_LIST"),
			ReviewDetail: viper.GetInt("THROTTLE_REVIEW_DETAIL"),
		},
	}

	return config, nil
}
