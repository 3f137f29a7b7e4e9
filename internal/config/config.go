package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"
	_ "time/tzdata" // venue zone must resolve on hosts without zoneinfo

	"github.com/joho/godotenv"

	"github.com/nekogravitycat/club-booking-backend/internal/pkg/request"
)

const PROD_STRING = "prod"

// Reaper modes.
const (
	ReaperInProcess = "inprocess"
	ReaperTemporal  = "temporal"
	ReaperOff       = "off"
)

// Config holds all application configuration loaded from environment.
type Config struct {
	IsProduction      bool
	ProdOrigins       string
	HTTPAddr          string
	DBDSN             string
	DBMaxConns        int
	JWTSecret         string
	JWTAccessTokenTTL time.Duration
	BcryptCost        int

	// Booking policy
	VenueTimezone    *time.Location
	BookingMinLead   time.Duration
	DefaultOpenTime  string
	DefaultCloseTime string
	HoldTTL          time.Duration
	SelectionIdleTTL time.Duration

	// Background jobs
	ReaperMode        string
	ReaperInterval    time.Duration
	TemporalHost      string
	TemporalTaskQueue string

	// Integrations
	AMQPURL              string
	AMQPExchange         string
	PaymentWebhookSecret string
}

// Load loads configuration from .env (optional) and environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	cfg := &Config{}
	var err error

	// Production origin (default: empty)
	cfg.ProdOrigins = getEnv("PROD_ORIGINS", "")

	// Application environment (default: dev)
	appEnvStr := getEnv("APP_ENV", "dev")
	cfg.IsProduction = appEnvStr == PROD_STRING

	// HTTP listen address (default: :8080)
	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")

	// Database DSN is required
	cfg.DBDSN = os.Getenv("DB_DSN")
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required")
	}

	cfg.DBMaxConns, err = getEnvAsInt("DB_MAX_CONNS", 10)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}

	// JWT secret is required for signing tokens
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	// JWT access token TTL, parse as time.Duration (e.g. "15m", "1h").
	cfg.JWTAccessTokenTTL, err = getEnvAsDuration("JWT_ACCESS_TOKEN_TTL", 15*time.Minute)
	if err != nil {
		return nil, err
	}

	// Bcrypt cost for password hashing (default: 12)
	cfg.BcryptCost, err = getEnvAsInt("BCRYPT_COST", 12)
	if err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %w", err)
	}

	// All slot arithmetic happens in the venue's zone.
	tzName := getEnv("VENUE_TIMEZONE", "Europe/Madrid")
	cfg.VenueTimezone, err = time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("invalid VENUE_TIMEZONE %q: %w", tzName, err)
	}

	cfg.BookingMinLead, err = getEnvAsDuration("BOOKING_MIN_LEAD", 2*time.Hour)
	if err != nil {
		return nil, err
	}

	// Fallback operating hours for court types without their own.
	cfg.DefaultOpenTime = getEnv("DEFAULT_OPEN_TIME", "08:00")
	cfg.DefaultCloseTime = getEnv("DEFAULT_CLOSE_TIME", "22:00")
	openHour, ok := request.WholeHour(cfg.DefaultOpenTime)
	if !ok {
		return nil, fmt.Errorf("invalid DEFAULT_OPEN_TIME %q: must be a whole hour", cfg.DefaultOpenTime)
	}
	closeHour, ok := request.WholeHour(cfg.DefaultCloseTime)
	if !ok {
		return nil, fmt.Errorf("invalid DEFAULT_CLOSE_TIME %q: must be a whole hour", cfg.DefaultCloseTime)
	}
	if openHour >= closeHour {
		return nil, fmt.Errorf("DEFAULT_OPEN_TIME must be before DEFAULT_CLOSE_TIME")
	}

	cfg.HoldTTL, err = getEnvAsDuration("HOLD_TTL", 15*time.Minute)
	if err != nil {
		return nil, err
	}

	cfg.SelectionIdleTTL, err = getEnvAsDuration("SELECTION_IDLE_TTL", 30*time.Minute)
	if err != nil {
		return nil, err
	}

	cfg.ReaperMode = getEnv("REAPER_MODE", ReaperInProcess)
	switch cfg.ReaperMode {
	case ReaperInProcess, ReaperTemporal, ReaperOff:
	default:
		return nil, fmt.Errorf("invalid REAPER_MODE %q", cfg.ReaperMode)
	}

	cfg.ReaperInterval, err = getEnvAsDuration("REAPER_INTERVAL", time.Minute)
	if err != nil {
		return nil, err
	}
	if cfg.ReaperInterval <= 0 {
		return nil, fmt.Errorf("invalid REAPER_INTERVAL: must be positive")
	}

	cfg.TemporalHost = getEnv("TEMPORAL_HOST", "localhost:7233")
	cfg.TemporalTaskQueue = getEnv("TEMPORAL_TASK_QUEUE", "club-booking-reaper")

	// Empty AMQP_URL disables event publishing.
	cfg.AMQPURL = getEnv("AMQP_URL", "")
	cfg.AMQPExchange = getEnv("AMQP_EXCHANGE", "club.bookings")

	cfg.PaymentWebhookSecret = getEnv("PAYMENT_WEBHOOK_SECRET", "")

	return cfg, nil
}

// getEnv returns the value of the environment variable if set,
// otherwise returns the provided default value.
func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer.
// It returns the default value if the variable is not set.
// It returns an error if the variable is set but is not a valid integer.
func getEnvAsInt(key string, defaultValue int) (int, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid integer: %w", key, valStr, err)
	}

	return val, nil
}

// getEnvAsDuration retrieves an environment variable as a time.Duration (e.g. "90s", "2h").
func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := time.ParseDuration(valStr)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if val < 0 {
		return 0, fmt.Errorf("invalid %s: must not be negative", key)
	}

	return val, nil
}
