package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server     ServerConfig
	Logger     LoggerConfig
	Database   DatabaseConfig
	Auth       AuthConfig
	Gateways   GatewayConfig
	Settlement SettlementConfig
	Auction    AuctionConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	ConnMaxLifetime time.Duration
	MaxOpenConns    int
	MaxIdleConns    int
}

// AuthConfig holds bearer-token verification configuration
type AuthConfig struct {
	JWTSecret string
	Issuer    string
}

// GatewayConfig holds base URLs and per-call deadlines for the external
// payment and blockchain services
type GatewayConfig struct {
	PaymentBaseURL    string
	PaymentTimeout    time.Duration
	BlockchainBaseURL string
	BlockchainTimeout time.Duration
}

// SettlementConfig holds settlement saga tuning
type SettlementConfig struct {
	// NotifyTimeout bounds the fire-and-forget notification emit so a slow
	// notification backend cannot hold a settlement goroutine forever
	NotifyTimeout time.Duration
}

// AuctionConfig holds auction sweep configuration. Close-on-read keeps the
// state machine correct without the sweeper; the sweep only tightens the
// timing of loser notifications.
type AuctionConfig struct {
	SweepInterval time.Duration
	SweepEnabled  bool
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level string // debug, info, warn, error
}

// Load loads configuration from the environment with sensible defaults.
// A .env file in the working directory is honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load() //nolint:errcheck // a missing .env file is not an error

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			ReadTimeout:  getEnvAsDuration("SERVER_READ_TIMEOUT", "15s"),
			WriteTimeout: getEnvAsDuration("SERVER_WRITE_TIMEOUT", "15s"),
			IdleTimeout:  getEnvAsDuration("SERVER_IDLE_TIMEOUT", "60s"),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			DBName:          getEnv("DB_NAME", "bookingswap"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", "5m"),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", "dev-secret-do-not-use"),
			Issuer:    getEnv("JWT_ISSUER", "bookingswap"),
		},
		Gateways: GatewayConfig{
			PaymentBaseURL:    getEnv("PAYMENT_GATEWAY_URL", "http://localhost:9091"),
			PaymentTimeout:    getEnvAsDuration("PAYMENT_GATEWAY_TIMEOUT", "10s"),
			BlockchainBaseURL: getEnv("BLOCKCHAIN_GATEWAY_URL", "http://localhost:9092"),
			BlockchainTimeout: getEnvAsDuration("BLOCKCHAIN_GATEWAY_TIMEOUT", "20s"),
		},
		Settlement: SettlementConfig{
			NotifyTimeout: getEnvAsDuration("NOTIFY_TIMEOUT", "5s"),
		},
		Auction: AuctionConfig{
			SweepInterval: getEnvAsDuration("AUCTION_SWEEP_INTERVAL", "1m"),
			SweepEnabled:  getEnvAsBool("AUCTION_SWEEP_ENABLED", true),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port cannot be empty")
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host cannot be empty")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("database name cannot be empty")
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("jwt secret cannot be empty")
	}

	if c.Gateways.PaymentTimeout <= 0 {
		return fmt.Errorf("payment gateway timeout must be positive")
	}
	if c.Gateways.BlockchainTimeout <= 0 {
		return fmt.Errorf("blockchain gateway timeout must be positive")
	}

	if c.Auction.SweepEnabled && c.Auction.SweepInterval <= 0 {
		return fmt.Errorf("auction sweep interval must be positive when sweep is enabled")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	return nil
}

// DSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		// Fallback to parsing the default if provided value is invalid
		duration, err = time.ParseDuration(defaultValue)
		if err != nil {
			return 0
		}
	}
	return duration
}
