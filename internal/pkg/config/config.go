package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	HTTP        HTTPConfig
	Mongo       MongoConfig
	Redis       RedisConfig
	CommentRate CommentRateConfig
}

type HTTPConfig struct {
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT,  default=5s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT, default=10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,   default=5s"`
}

type MongoConfig struct {
	URI      string        `env:"MONGO_URI,     default=mongodb://localhost:27017"`
	Database string        `env:"MONGO_DB,      default=forum"`
	Timeout  time.Duration `env:"MONGO_TIMEOUT, default=10s"`
	MaxPool  uint64        `env:"MONGO_MAX_POOL_SIZE, default=100"`
}

type RedisConfig struct {
	Enabled  bool   `env:"REDIS_ENABLED, default=false"`
	Addr     string `env:"REDIS_ADDR,    default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,      default=0"`
}

// CommentRateConfig bounds how many comments one author may post per window.
// Only enforced when Redis is enabled.
type CommentRateConfig struct {
	Limit  int           `env:"COMMENT_RATE_LIMIT,  default=30"`
	Window time.Duration `env:"COMMENT_RATE_WINDOW, default=1m"`
}

// IsProduction reports whether ENV is "production".
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads an optional .env file (path from ENV_FILE), then configuration
// from environment variables using go-envconfig. Variables already set in the
// environment win over the file.
func Load() *Config {
	if err := loadDotEnv(os.Getenv("ENV_FILE")); err != nil {
		panic(fmt.Sprintf("config: failed to read env file: %v", err))
	}

	cfg, err := LoadFrom(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadFrom builds a Config from the given lookuper.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	if cfg.CommentRate.Limit <= 0 {
		return nil, fmt.Errorf("COMMENT_RATE_LIMIT must be positive, got %d", cfg.CommentRate.Limit)
	}
	return &cfg, nil
}

func loadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
