package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Mail      MailConfig
	OTP       OTPConfig
	Admin     AdminSeedConfig
	Uploads   UploadsConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
	Redis     RedisConfig
	MQTT      MQTTConfig
}

type ServerConfig struct {
	Port        string
	Host        string
	Environment string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
	// Issuer is stamped into every token and required when verifying one.
	Issuer string
}

type MailConfig struct {
	Host           string
	Port           int
	Secure         bool
	User           string
	Password       string
	From           string
	FromName       string
	TimeoutSeconds int
}

type OTPConfig struct {
	TTLMinutes          int
	MaxAttempts         int
	SendLimit           int
	SendWindowMinutes   int
	CleanupIntervalMins int
}

// AdminSeedConfig describes the account created on first boot when the admin table is empty.
type AdminSeedConfig struct {
	Username    string
	Email       string
	Password    string
	ContactMail string
}

type UploadsConfig struct {
	Dir       string
	URLPrefix string
	MaxSizeMB int
}

type RateLimitConfig struct {
	GeneralRPS   float64 // Requests per second for general endpoints
	GeneralBurst int     // Burst size for general endpoints
	AuthRPS      float64 // Requests per second for login and code endpoints
	AuthBurst    int
}

type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int // seconds
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type MQTTConfig struct {
	Broker      string
	ClientID    string
	Username    string
	Password    string
	TopicPrefix string
}

func setDefaults() {
	viper.SetDefault("SERVER_PORT", "5000")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("JWT_EXPIRY_HOURS", 24)
	viper.SetDefault("JWT_ISSUER", "rumooz-api")
	viper.SetDefault("MAIL_PORT", 465)
	viper.SetDefault("MAIL_SECURE", true)
	viper.SetDefault("MAIL_FROM_NAME", "Rumooz Smart Solutions")
	viper.SetDefault("MAIL_TIMEOUT_SECONDS", 15)
	viper.SetDefault("OTP_TTL_MINUTES", 10)
	viper.SetDefault("OTP_MAX_ATTEMPTS", 5)
	viper.SetDefault("OTP_SEND_LIMIT", 3)
	viper.SetDefault("OTP_SEND_WINDOW_MINUTES", 10)
	viper.SetDefault("OTP_CLEANUP_INTERVAL_MINUTES", 30)
	viper.SetDefault("ADMIN_USERNAME", "rumooz")
	viper.SetDefault("ADMIN_PASSWORD", "admin123")
	viper.SetDefault("ADMIN_EMAIL", "info@rumooz.ae")
	viper.SetDefault("UPLOADS_DIR", "uploads")
	viper.SetDefault("UPLOADS_URL_PREFIX", "/uploads")
	viper.SetDefault("UPLOADS_MAX_SIZE_MB", 5)
	viper.SetDefault("RATE_LIMIT_GENERAL_RPS", 10)
	viper.SetDefault("RATE_LIMIT_GENERAL_BURST", 20)
	viper.SetDefault("RATE_LIMIT_AUTH_RPS", 0.2)
	viper.SetDefault("RATE_LIMIT_AUTH_BURST", 5)
	viper.SetDefault("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "OPTIONS"})
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"})
	viper.SetDefault("CORS_EXPOSED_HEADERS", []string{"X-Request-ID"})
	viper.SetDefault("CORS_MAX_AGE", 43200)
	viper.SetDefault("MQTT_CLIENT_ID", "rumooz-api")
	viper.SetDefault("MQTT_TOPIC_PREFIX", "rumooz/leads")
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	if homeDir, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(homeDir)
	}
	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		log.Printf("Warning: config file not found: %v. Falling back to environment variables only.", err)
	}

	config := &Config{
		Server: ServerConfig{
			Port:        viper.GetString("SERVER_PORT"),
			Host:        viper.GetString("SERVER_HOST"),
			Environment: viper.GetString("ENVIRONMENT"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			DBName:   viper.GetString("DB_NAME"),
			SSLMode:  viper.GetString("DB_SSLMODE"),
		},
		JWT: JWTConfig{
			Secret:      viper.GetString("JWT_SECRET"),
			ExpiryHours: viper.GetInt("JWT_EXPIRY_HOURS"),
			Issuer:      viper.GetString("JWT_ISSUER"),
		},
		Mail: MailConfig{
			Host:           viper.GetString("MAIL_HOST"),
			Port:           viper.GetInt("MAIL_PORT"),
			Secure:         viper.GetBool("MAIL_SECURE"),
			User:           viper.GetString("MAIL_USER"),
			Password:       viper.GetString("MAIL_PASS"),
			From:           viper.GetString("MAIL_FROM"),
			FromName:       viper.GetString("MAIL_FROM_NAME"),
			TimeoutSeconds: viper.GetInt("MAIL_TIMEOUT_SECONDS"),
		},
		OTP: OTPConfig{
			TTLMinutes:          viper.GetInt("OTP_TTL_MINUTES"),
			MaxAttempts:         viper.GetInt("OTP_MAX_ATTEMPTS"),
			SendLimit:           viper.GetInt("OTP_SEND_LIMIT"),
			SendWindowMinutes:   viper.GetInt("OTP_SEND_WINDOW_MINUTES"),
			CleanupIntervalMins: viper.GetInt("OTP_CLEANUP_INTERVAL_MINUTES"),
		},
		Admin: AdminSeedConfig{
			Username:    viper.GetString("ADMIN_USERNAME"),
			Email:       viper.GetString("ADMIN_EMAIL"),
			Password:    viper.GetString("ADMIN_PASSWORD"),
			ContactMail: viper.GetString("ADMIN_CONTACT_MAIL"),
		},
		Uploads: UploadsConfig{
			Dir:       viper.GetString("UPLOADS_DIR"),
			URLPrefix: viper.GetString("UPLOADS_URL_PREFIX"),
			MaxSizeMB: viper.GetInt("UPLOADS_MAX_SIZE_MB"),
		},
		RateLimit: RateLimitConfig{
			GeneralRPS:   viper.GetFloat64("RATE_LIMIT_GENERAL_RPS"),
			GeneralBurst: viper.GetInt("RATE_LIMIT_GENERAL_BURST"),
			AuthRPS:      viper.GetFloat64("RATE_LIMIT_AUTH_RPS"),
			AuthBurst:    viper.GetInt("RATE_LIMIT_AUTH_BURST"),
		},
		CORS: CORSConfig{
			AllowedOrigins:   getList("CORS_ALLOWED_ORIGINS"),
			AllowedMethods:   getList("CORS_ALLOWED_METHODS"),
			AllowedHeaders:   getList("CORS_ALLOWED_HEADERS"),
			ExposedHeaders:   getList("CORS_EXPOSED_HEADERS"),
			AllowCredentials: viper.GetBool("CORS_ALLOW_CREDENTIALS"),
			MaxAge:           viper.GetInt("CORS_MAX_AGE"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		MQTT: MQTTConfig{
			Broker:      viper.GetString("MQTT_BROKER"),
			ClientID:    viper.GetString("MQTT_CLIENT_ID"),
			Username:    viper.GetString("MQTT_USERNAME"),
			Password:    viper.GetString("MQTT_PASSWORD"),
			TopicPrefix: viper.GetString("MQTT_TOPIC_PREFIX"),
		},
	}

	if config.Admin.ContactMail == "" {
		config.Admin.ContactMail = config.Admin.Email
	}

	return config, nil
}

// getList reads comma separated values from the environment as well as list defaults.
func getList(key string) []string {
	var out []string
	for _, item := range viper.GetStringSlice(key) {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func (c *JWTConfig) TTL() time.Duration {
	return time.Duration(c.ExpiryHours) * time.Hour
}

func (c *OTPConfig) TTL() time.Duration {
	return time.Duration(c.TTLMinutes) * time.Minute
}

func (c *OTPConfig) SendWindow() time.Duration {
	return time.Duration(c.SendWindowMinutes) * time.Minute
}

func (c *OTPConfig) CleanupInterval() time.Duration {
	return time.Duration(c.CleanupIntervalMins) * time.Minute
}

func (c *MailConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Sender returns the envelope sender, falling back to the SMTP login.
func (c *MailConfig) Sender() string {
	if c.From != "" {
		return c.From
	}
	return c.User
}
