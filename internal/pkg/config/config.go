package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port         string `env:"PORT,          default=8080"`
	Env          string `env:"ENV,           default=development"`
	JWTSecret    string `env:"JWT_SECRET,    required"`
	CookieSecure bool   `env:"COOKIE_SECURE, default=false"`
	LogLevel     string `env:"LOG_LEVEL,     default=info"`

	Backend BackendConfig
	Session SessionConfig
	Mongo   MongoConfig
	Redis   RedisConfig
	Audit   AuditConfig
}

type BackendConfig struct {
	BaseURL string        `env:"BACKEND_BASE_URL, default=https://multisorteios.dev/msrifaadmin/api"`
	Timeout time.Duration `env:"BACKEND_TIMEOUT,  default=30s"`
}

type SessionConfig struct {
	TTL            time.Duration `env:"SESSION_TTL,          default=720h"`
	LayoutTTL      time.Duration `env:"LAYOUT_TTL,           default=2h"`
	IdleTimeout    time.Duration `env:"SESSION_IDLE_TIMEOUT, default=30m"`
	LoginPerMinute int           `env:"LOGIN_RATE_PER_MINUTE, default=10"`
	LoginBurst     int           `env:"LOGIN_RATE_BURST,      default=5"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=rifa_admin"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type AuditConfig struct {
	Workers int `env:"AUDIT_WORKERS, default=4"`
}

// IsProduction reports whether the service runs with ENV=production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadFrom(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadFrom reads configuration through the given lookuper.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	return &cfg, nil
}
