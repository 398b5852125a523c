package config

import (
	"context"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWT   JWTConfig
	Hash  HashConfig
	Mongo MongoConfig
	Redis RedisConfig
	Audit AuditConfig
	Seed  SeedConfig
}

// JWTConfig carries the signing material for both token kinds. The two
// secrets must differ so a refresh token can never pass as an access token.
type JWTConfig struct {
	AccessSecret  string        `env:"JWT_ACCESS_SECRET"`
	RefreshSecret string        `env:"JWT_REFRESH_SECRET"`
	AccessTTL     time.Duration `env:"JWT_ACCESS_TTL,  default=1h"`
	RefreshTTL    time.Duration `env:"JWT_REFRESH_TTL, default=168h"`
}

type HashConfig struct {
	BcryptCost     int `env:"BCRYPT_COST,          default=12"`
	MaxConcurrency int `env:"HASH_MAX_CONCURRENCY, default=8"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=identity_service"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type AuditConfig struct {
	Workers int `env:"AUDIT_WORKERS, default=4"`
}

// SeedConfig feeds cmd/seed: one bootstrap account per user type.
type SeedConfig struct {
	MasterEmail    string `env:"MASTER_USER_EMAIL,    default=admin@dealerdesk.local"`
	MasterPassword string `env:"MASTER_USER_PASSWORD"`
	DealerEmail    string `env:"DEALER_USER_EMAIL,    default=dealer@dealerdesk.local"`
	DealerPassword string `env:"DEALER_USER_PASSWORD"`
	BrokerEmail    string `env:"BROKER_USER_EMAIL,    default=broker@dealerdesk.local"`
	BrokerPassword string `env:"BROKER_USER_PASSWORD"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
