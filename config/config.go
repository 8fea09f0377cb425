package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Store drivers supported by the resource store factory
const (
	StoreDriverMongo    = "mongo"
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// Config represents the complete application configuration
type Config struct {
	Environment   string `env:"ENVIRONMENT" envDefault:"development"`
	Server        ServerConfig
	Store         StoreConfig
	Mongo         MongoConfig
	Database      DatabaseConfig
	Auth          AuthConfig
	Redis         RedisConfig
	Observability ObservabilityConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string        `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	Port            int           `env:"PORT" envDefault:"5500"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"30s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"60s"`
	AllowedOrigins  []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:*,http://127.0.0.1:*"`
}

// StoreConfig selects the resource store backend
type StoreConfig struct {
	Driver            string `env:"STORE_DRIVER" envDefault:"mongo"`
	ProductCollection string `env:"PRODUCT_COLLECTION" envDefault:"products"`
	CartCollection    string `env:"CART_COLLECTION" envDefault:"cartItems"`
}

// MongoConfig holds MongoDB connection settings.
// User and Password are spliced into URL when the URL carries no credentials.
type MongoConfig struct {
	URL             string        `env:"MONGODB_URL"`
	Database        string        `env:"MONGODB_DATABASE" envDefault:"sportsEquipment"`
	User            string        `env:"DB_USER"`
	Password        string        `env:"DB_PASS"`
	ConnectTimeout  time.Duration `env:"MONGODB_CONNECT_TIMEOUT" envDefault:"10s"`
	MaxPoolSize     uint64        `env:"MONGODB_MAX_POOL_SIZE" envDefault:"100"`
	MinPoolSize     uint64        `env:"MONGODB_MIN_POOL_SIZE" envDefault:"1"`
	MaxConnIdleTime time.Duration `env:"MONGODB_MAX_CONN_IDLE_TIME" envDefault:"300s"`
	RetryAttempts   int           `env:"MONGODB_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval   time.Duration `env:"MONGODB_RETRY_INTERVAL" envDefault:"5s"`
}

// DatabaseConfig holds PostgreSQL database configuration
type DatabaseConfig struct {
	ConnectionString string        `env:"DATABASE_URL"`
	MaxOpenConns     int           `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	MaxIdleConns     int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime  time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"5m"`
}

// AuthConfig holds credential issuing and session cookie settings
type AuthConfig struct {
	Secret         string        `env:"ACCESS_TOKEN_SECRET"`
	TokenTTL       time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"1h"`
	Issuer         string        `env:"TOKEN_ISSUER" envDefault:"sportsgear-api"`
	CookieName     string        `env:"SESSION_COOKIE_NAME" envDefault:"token"`
	CookieSecure   bool          `env:"SESSION_COOKIE_SECURE" envDefault:"false"`
	CookieSameSite string        `env:"SESSION_COOKIE_SAMESITE" envDefault:"strict"`
}

// RedisConfig holds the optional revocation list connection.
// An empty URL disables credential revocation on logout.
type RedisConfig struct {
	URL       string `env:"REDIS_URL"`
	KeyPrefix string `env:"REDIS_KEY_PREFIX" envDefault:"revoked:"`
}

// ObservabilityConfig holds logging configuration
type ObservabilityConfig struct {
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"` // json or console
}

// New creates a new Config instance by loading environment variables
func New() (*Config, error) {
	// .env is optional; real environment variables win over file values
	_ = godotenv.Load(".env")

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	cfg.Store.Driver = strings.ToLower(strings.TrimSpace(cfg.Store.Driver))
	cfg.Auth.CookieSameSite = strings.ToLower(strings.TrimSpace(cfg.Auth.CookieSameSite))

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if all required configuration fields are set
func (c *Config) Validate() error {
	if c.Auth.Secret == "" {
		return fmt.Errorf("ACCESS_TOKEN_SECRET is required")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("access token TTL must be positive")
	}
	if c.Auth.CookieName == "" {
		return fmt.Errorf("session cookie name is required")
	}
	switch c.Auth.CookieSameSite {
	case "strict", "lax", "none":
	default:
		return fmt.Errorf("unsupported SESSION_COOKIE_SAMESITE %q", c.Auth.CookieSameSite)
	}

	for _, origin := range c.Server.AllowedOrigins {
		switch strings.TrimSpace(origin) {
		case "*", "http://*", "https://*":
			return fmt.Errorf("CORS origin %q would expose credentialed routes to any site", origin)
		}
	}

	switch c.Store.Driver {
	case StoreDriverMongo:
		if c.Mongo.URL == "" {
			return fmt.Errorf("MONGODB_URL is required for the mongo store")
		}
		if c.Mongo.Database == "" {
			return fmt.Errorf("mongo database name is required")
		}
	case StoreDriverPostgres:
		if c.Database.ConnectionString == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres store")
		}
	case StoreDriverMemory:
		if c.IsProduction() {
			return fmt.Errorf("memory store is not allowed in production")
		}
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q", c.Store.Driver)
	}

	if c.Observability.LogLevel == "" {
		return fmt.Errorf("log level is required")
	}

	return nil
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Environment == "production" || c.Environment == "prod"
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development" || c.Environment == "dev"
}

// Address returns the HTTP server address
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ConnectionURI returns the MongoDB URI with DB_USER/DB_PASS applied when the
// configured URL has no userinfo of its own.
func (c *MongoConfig) ConnectionURI() (string, error) {
	u, err := url.Parse(c.URL)
	if err != nil {
		return "", fmt.Errorf("invalid MONGODB_URL: %w", err)
	}
	if u.User == nil && c.User != "" {
		u.User = url.UserPassword(c.User, c.Password)
	}
	return u.String(), nil
}

// LogString returns a safe string for logging (no credentials)
func (c *MongoConfig) LogString() string {
	u, err := url.Parse(c.URL)
	if err != nil {
		return "host=<unparseable MONGODB_URL>"
	}
	return fmt.Sprintf("host=%s database=%s", u.Host, c.Database)
}

// LogString returns a safe string for logging (no password)
func (c *DatabaseConfig) LogString() string {
	u, err := url.Parse(c.ConnectionString)
	if err != nil {
		return "host=<from DATABASE_URL>"
	}
	port := u.Port()
	if port == "" {
		port = "5432"
	}
	return fmt.Sprintf("host=%s port=%s database=%s", u.Hostname(), port, strings.TrimPrefix(u.Path, "/"))
}
