package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Store
	StoreDriver string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string

	// Session tokens
	JWTSecret string
	JWTExpiry time.Duration

	// Email verification
	OTPSecret string
	OTPTTL    time.Duration

	BcryptCost int

	// Google sign-in
	GoogleClientID string
	GoogleJWKSURL  string
	GoogleTimeout  time.Duration

	// Mail
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	MailTimeout  time.Duration

	// Logging / error tracking
	LogLevel     string
	LogRetention time.Duration
	SentryDSN    string
	AppEnv       string

	// Server
	Port          string
	CORSOrigins   string
	AuthRateLimit int
	APIRateLimit  int
}

func Load() *Config {
	return &Config{
		StoreDriver: getEnv("STORE_DRIVER", "postgres"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", ""),
		DBName:      getEnv("DB_NAME", "fintrack"),
		DBSSLMode:   getEnv("DB_SSLMODE", "disable"),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTExpiry: parseDuration(getEnv("JWT_EXPIRY", "720h"), 30*24*time.Hour),

		OTPSecret: getEnv("OTP_SECRET", ""),
		OTPTTL:    parseDuration(getEnv("OTP_TTL", "5m"), 5*time.Minute),

		BcryptCost: parseInt(getEnv("BCRYPT_COST", "10"), 10),

		GoogleClientID: getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleJWKSURL:  getEnv("GOOGLE_JWKS_URL", "https://www.googleapis.com/oauth2/v3/certs"),
		GoogleTimeout:  parseDuration(getEnv("GOOGLE_TIMEOUT", "10s"), 10*time.Second),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:     getEnv("SMTP_FROM", ""),
		MailTimeout:  parseDuration(getEnv("MAIL_TIMEOUT", "10s"), 10*time.Second),

		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogRetention: parseDuration(getEnv("LOG_RETENTION", "720h"), 30*24*time.Hour),
		SentryDSN:    getEnv("SENTRY_DSN", ""),
		AppEnv:       getEnv("APP_ENV", "development"),

		Port:          getEnv("PORT", "8080"),
		CORSOrigins:   getEnv("CORS_ORIGINS", "*"),
		AuthRateLimit: parseInt(getEnv("AUTH_RATE_LIMIT", "10"), 10),
		APIRateLimit:  parseInt(getEnv("API_RATE_LIMIT", "60"), 60),
	}
}

// Validate reports every missing or inconsistent setting at once.
func (c *Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET environment variable is required"))
	}
	if c.OTPSecret == "" {
		errs = append(errs, errors.New("OTP_SECRET environment variable is required"))
	}
	switch c.StoreDriver {
	case "postgres":
		if c.DBPassword == "" {
			errs = append(errs, errors.New("DB_PASSWORD environment variable is required"))
		}
	case "memory":
	default:
		errs = append(errs, errors.New("STORE_DRIVER must be postgres or memory"))
	}
	if c.SMTPHost != "" && c.SMTPFrom == "" {
		errs = append(errs, errors.New("SMTP_FROM is required when SMTP_HOST is set"))
	}
	// codes are only logged without SMTP
	if c.IsProduction() && c.SMTPHost == "" {
		errs = append(errs, errors.New("SMTP_HOST is required in production"))
	}
	if c.IsProduction() && c.StoreDriver == "memory" {
		errs = append(errs, errors.New("STORE_DRIVER=memory is not allowed in production"))
	}
	return errors.Join(errs...)
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
