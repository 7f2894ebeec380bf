package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr        string `mapstructure:"REDIS_ADDR"`
	RedisPassword    string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB     int    `mapstructure:"REDIS_CACHE_DB"`
	RedisTaskQueueDB int    `mapstructure:"REDIS_TASK_QUEUE_DB"`

	// Firebase / Google Cloud.
	FirebaseCredentials string `mapstructure:"FIREBASE_CREDENTIALS"`
	StorageBucket       string `mapstructure:"STORAGE_BUCKET"`
	PubSubProject       string `mapstructure:"PUBSUB_PROJECT"`
	PubSubSubscription  string `mapstructure:"PUBSUB_SUBSCRIPTION"`

	// Push scheduling.
	PushTimeZone     string `mapstructure:"PUSH_TIME_ZONE"`
	PushLogRetention int    `mapstructure:"PUSH_LOG_RETENTION_DAYS"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_TASK_QUEUE_DB", 1)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("FIREBASE_CREDENTIALS", "serviceAccountKey.json")
	viper.SetDefault("STORAGE_BUCKET", "stlc-church-app.appspot.com")
	viper.SetDefault("PUBSUB_PROJECT", "stlc-church-app")
	viper.SetDefault("PUBSUB_SUBSCRIPTION", "storage-finalize")
	viper.SetDefault("PUSH_TIME_ZONE", "Australia/Sydney")
	viper.SetDefault("PUSH_LOG_RETENTION_DAYS", 7)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
