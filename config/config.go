package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

// StripePlaceholderKey is the documented sample key shipped in config.example.yaml.
// A configured key equal to it never selects the live payment backend.
const StripePlaceholderKey = "sk_test_placeholder"

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	AppHost           string `mapstructure:"APP_HOST"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// MongoDB.
	DatabaseURL    string `mapstructure:"DATABASE_URL"`
	DatabaseName   string `mapstructure:"DATABASE_NAME"`
	DBTransactions bool   `mapstructure:"DB_TRANSACTIONS"`

	// Auth.
	JWTSecret   string `mapstructure:"JWT_SECRET"`
	JWTTTLHours int    `mapstructure:"JWT_TTL_HOURS"`

	// SMTP.
	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPUser     string `mapstructure:"SMTP_USER"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`
	SMTPFrom     string `mapstructure:"SMTP_FROM"`

	// Payments.
	StripeSecretKey string `mapstructure:"STRIPE_SECRET_KEY"`
	PaymentMode     string `mapstructure:"PAYMENT_MODE"` // "mock" or "live"; derived from the key when empty
	PaymentCurrency string `mapstructure:"PAYMENT_CURRENCY"`

	// CORS allow-list, comma separated.
	CORSOrigins string `mapstructure:"CORS_ORIGINS"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Booking lifecycle.
	PendingBookingTTLMin int `mapstructure:"PENDING_BOOKING_TTL_MIN"`

	// Optional integrations.
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`
	CloudinaryURL           string `mapstructure:"CLOUDINARY_URL"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func setDefaults() {
	viper.SetDefault("APP_PORT", "5000")
	viper.SetDefault("APP_HOST", "0.0.0.0")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "quickcourt")
	viper.SetDefault("DB_TRANSACTIONS", false)
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("JWT_TTL_HOURS", 168)
	viper.SetDefault("SMTP_HOST", "")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("SMTP_USER", "")
	viper.SetDefault("SMTP_PASSWORD", "")
	viper.SetDefault("SMTP_FROM", "QuickCourt <no-reply@quickcourt.app>")
	viper.SetDefault("STRIPE_SECRET_KEY", StripePlaceholderKey)
	viper.SetDefault("PAYMENT_MODE", "")
	viper.SetDefault("PAYMENT_CURRENCY", "inr")
	viper.SetDefault("CORS_ORIGINS", "http://localhost:5173")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("PENDING_BOOKING_TTL_MIN", 15)
	viper.SetDefault("FIREBASE_CREDENTIALS_FILE", "")
	viper.SetDefault("CLOUDINARY_URL", "")
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// CORSOriginList splits the configured allow-list.
func (c Config) CORSOriginList() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// LivePayments reports whether the Stripe backend should be used. An explicit
// PAYMENT_MODE wins; otherwise a real (non-placeholder) key selects live mode.
func (c Config) LivePayments() bool {
	switch strings.ToLower(c.PaymentMode) {
	case "live":
		return true
	case "mock":
		return false
	}
	return c.StripeSecretKey != "" && c.StripeSecretKey != StripePlaceholderKey
}
