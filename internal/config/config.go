package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

type Config struct {
	DBHost          string        `env:"DB_HOST,default=localhost"`
	DBPort          string        `env:"DB_PORT,default=3306"`
	DBUser          string        `env:"DB_USER,default=bodymetrics"`
	DBPassword      string        `env:"DB_PASSWORD,default=bodymetrics_pass"`
	DBName          string        `env:"DB_NAME,default=bodymetrics"`
	JWTSecret       string        `env:"JWT_SECRET"`
	APIKey          string        `env:"API_KEY"`
	Port            string        `env:"PORT,default=8080"`
	AllowedOrigins  string        `env:"ALLOWED_ORIGINS,default=*"`
	LogLevel        string        `env:"LOG_LEVEL,default=info"`
	BMIRateLimit    int           `env:"BMI_RATE_LIMIT,default=60"`
	TrustProxy      bool          `env:"TRUST_PROXY,default=false"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`
}

// Load reads an optional .env file and decodes the environment into a Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("failed to decode environment: %w", err)
	}
	return &cfg, nil
}

// Validate reports settings the server cannot start without.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET environment variable must be set")
	}
	if c.BMIRateLimit <= 0 {
		return fmt.Errorf("BMI_RATE_LIMIT must be positive, got %d", c.BMIRateLimit)
	}
	return nil
}

func (c *Config) DSN() string {
	dsn := mysql.NewConfig()
	dsn.User = c.DBUser
	dsn.Passwd = c.DBPassword
	dsn.Net = "tcp"
	dsn.Addr = net.JoinHostPort(c.DBHost, c.DBPort)
	dsn.DBName = c.DBName
	dsn.ParseTime = true
	dsn.Params = map[string]string{"charset": "utf8mb4"}
	return dsn.FormatDSN()
}
