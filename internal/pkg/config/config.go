package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth  AuthConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type AuthConfig struct {
	AccessSecret  string        `env:"AT_SECRET"`
	AccessTTL     time.Duration `env:"AT_TTL,  default=15m"`
	RefreshSecret string        `env:"RT_SECRET"`
	RefreshTTL    time.Duration `env:"RT_TTL,  default=168h"`

	// RevocationBackend selects where revoked access tokens are tracked:
	// "memory" (process-local, cleared on restart) or "redis" (durable).
	RevocationBackend string `env:"REVOCATION_BACKEND, default=memory"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=profile_api"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
